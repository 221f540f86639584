package services

import (
	"fmt"
	"time"

	"freight-wms/idgen"
	"freight-wms/models"
	"freight-wms/repositories"

	"gorm.io/gorm"
)

// Location plan modes.
const (
	PlanModeBulk       = "bulk"
	PlanModeIndividual = "individual"
)

// LocationPlan says where new pallets go. Bulk mode puts every pallet in
// one location; individual mode maps pallet index to location and leaves
// unmapped indexes pending for a later call.
type LocationPlan struct {
	Mode      string         `json:"mode" validate:"required,oneof=bulk individual"`
	Location  string         `json:"location"`
	Locations map[int]string `json:"locations"`
}

func (p LocationPlan) locationFor(seq int) (string, bool) {
	switch p.Mode {
	case PlanModeBulk:
		if p.Location == "" {
			return "", false
		}
		return p.Location, true
	case PlanModeIndividual:
		loc, ok := p.Locations[seq]
		if loc == "" {
			return "", false
		}
		return loc, ok
	default:
		return "", false
	}
}

// PutawayService turns a received quantity for one demand line into
// physical pallet records. Calls are resumable: the received quantity is
// the cumulative total for the line, and only pallet indexes not yet on
// file are created.
type PutawayService struct {
	db       *gorm.DB
	units    *repositories.PutawayRepository
	demand   *repositories.DemandRepository
	resolver *ProvenanceResolver
}

func NewPutawayService(db *gorm.DB) *PutawayService {
	return &PutawayService{
		db:       db,
		units:    repositories.NewPutawayRepository(db),
		demand:   repositories.NewDemandRepository(db),
		resolver: NewProvenanceResolver(db),
	}
}

// PutAway materializes pallets for the demand line named by ref until
// the units on file sum to receivedQty, packingFactor units per pallet,
// the last new pallet carrying the remainder. Returns the records
// created by this call.
func (s *PutawayService) PutAway(ref ProvenanceRef, receivedQty, packingFactor int, plan LocationPlan, userID int) ([]models.PutawayRecord, error) {
	meta, err := s.resolver.ResolveRef(ref)
	if err != nil {
		return nil, err
	}
	if receivedQty <= 0 || packingFactor <= 0 {
		return []models.PutawayRecord{}, nil
	}

	existing, err := s.units.FindBySource(ref.Kind, ref.RefID, ref.LineIndex)
	if err != nil {
		return nil, err
	}
	placed := 0
	maxSeq := -1
	onFile := make(map[int]bool, len(existing))
	for _, u := range existing {
		placed += u.Quantity
		onFile[u.PalletSeq] = true
		if u.PalletSeq > maxSeq {
			maxSeq = u.PalletSeq
		}
	}

	// receivedQty is cumulative; only what the units on file do not
	// already cover gets new pallets
	remaining := receivedQty - placed
	if remaining <= 0 {
		return []models.PutawayRecord{}, nil
	}
	newCount := (remaining + packingFactor - 1) / packingFactor

	// pallet indexes skipped earlier for want of a location are reused
	// before the sequence is extended past the highest on file
	indexes := make([]int, 0, newCount)
	for seq := 0; seq <= maxSeq && len(indexes) < newCount; seq++ {
		if !onFile[seq] {
			indexes = append(indexes, seq)
		}
	}
	for next := maxSeq + 1; len(indexes) < newCount; next++ {
		indexes = append(indexes, next)
	}

	quantities := make([]int, newCount)
	for i := range quantities {
		quantities[i] = packingFactor
	}
	quantities[newCount-1] = remaining - packingFactor*(newCount-1)

	pending := 0
	var create []int
	var locations []string
	for i, seq := range indexes {
		loc, ok := plan.locationFor(seq)
		if !ok {
			pending++
			continue
		}
		create = append(create, i)
		locations = append(locations, loc)
	}

	if len(create) == 0 {
		return nil, fmt.Errorf("putaway: %d pallet(s) pending: %w", pending, ErrNoLocation)
	}

	pallets := idgen.GenerateLPNs(len(create))
	recDate := time.Now().Format("2006-01-02")
	lineIndex := ref.LineIndex
	if ref.Kind == models.SourceKindInboundLine {
		lineIndex = -1
	}

	records := make([]models.PutawayRecord, 0, len(create))
	for i, pos := range create {
		seq := indexes[pos]
		qty := quantities[pos]
		records = append(records, models.PutawayRecord{
			Pallet:          pallets[i],
			OwnerCode:       meta.OwnerCode,
			WhsCode:         meta.WhsCode,
			Location:        locations[i],
			ItemID:          meta.ItemID,
			ItemCode:        meta.ItemCode,
			Quantity:        qty,
			PalletSeq:       seq,
			RecDate:         recDate,
			SourceKind:      ref.Kind,
			SourceID:        ref.RefID,
			SourceLineIndex: lineIndex,
			Status:          models.UnitStatusInStock,
			CreatedBy:       userID,
		})
	}

	if err := s.units.CreateBatch(records); err != nil {
		return nil, err
	}

	if err := s.updateReceived(ref, meta, userID); err != nil {
		return nil, err
	}
	return records, nil
}

// updateReceived rewrites the cumulative received total on the demand
// line from the units on file, never by incrementing.
func (s *PutawayService) updateReceived(ref ProvenanceRef, meta *LineMeta, userID int) error {
	total, err := s.units.SumBySource(ref.Kind, ref.RefID, ref.LineIndex)
	if err != nil {
		return err
	}
	status := "partial"
	if total >= meta.ExpectedQty {
		status = "complete"
	}
	switch ref.Kind {
	case models.SourceKindInboundLine:
		return s.demand.UpdateInboundLineReceived(ref.RefID, total, status, userID)
	case models.SourceKindAllocationLine:
		alloc, err := s.demand.GetAllocationWithLines(ref.RefID)
		if err != nil {
			return err
		}
		line := alloc.Lines[ref.LineIndex]
		return s.demand.UpdateAllocationLineReceived(line.ID, total, status, userID)
	default:
		return fmt.Errorf("putaway: unknown source kind %q", ref.Kind)
	}
}

// CompleteInbound closes the job once every line is fully received.
func (s *PutawayService) CompleteInbound(jobID uint, userID int) error {
	var job models.InboundJob
	if err := s.db.Preload("Lines").First(&job, "id = ?", jobID).Error; err != nil {
		return err
	}
	if job.Status == "complete" {
		return nil
	}
	for _, line := range job.Lines {
		if line.QtyReceived < line.Quantity {
			return fmt.Errorf("inbound %s line %s: received %d of %d",
				job.InboundNo, line.ItemCode, line.QtyReceived, line.Quantity)
		}
	}
	return s.db.Model(&models.InboundJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     "complete",
		"updated_by": userID,
		"updated_at": time.Now(),
	}).Error
}
