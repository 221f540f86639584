package services

import (
	"errors"
	"fmt"

	"freight-wms/models"
	"freight-wms/repositories"

	"gorm.io/gorm"
)

// ProvenanceRef names one demand line by chain. For the inbound chain the
// RefID is the inbound line ID and LineIndex is negative; for the
// allocation chain the RefID is the allocation ID and LineIndex indexes
// its ordered line list.
type ProvenanceRef struct {
	Kind      string `json:"kind" validate:"required"`
	RefID     uint   `json:"ref_id" validate:"required"`
	LineIndex int    `json:"line_index"`
}

// LineMeta is the resolved view of a demand line: everything downstream
// engines need to validate a unit or describe it, regardless of which
// chain it came from.
type LineMeta struct {
	ItemID         int    `json:"item_id"`
	ItemCode       string `json:"item_code"`
	ItemName       string `json:"item_name"`
	BatchNo        string `json:"batch_no"`
	ExpiryDate     string `json:"expiry_date"`
	Attribute1     string `json:"attribute1"`
	Attribute2     string `json:"attribute2"`
	Uom            string `json:"uom"`
	UnitsPerPallet int    `json:"units_per_pallet"`
	ExpectedQty    int    `json:"expected_qty"`
	QtyReceived    int    `json:"qty_received"`
	JobID          uint   `json:"job_id"`
	JobNo          string `json:"job_no"`
	CustomerCode   string `json:"customer_code"`
	CustomerName   string `json:"customer_name"`
	CustomerRef    string `json:"customer_ref"`
	ContainerNo    string `json:"container_no"`
	WhsCode        string `json:"whs_code"`
	OwnerCode      string `json:"owner_code"`
}

// ProvenanceResolver maps a unit's source reference back to the demand
// line that produced it. There is no fallback chain: a reference that
// cannot be resolved is an error, never a silent default.
type ProvenanceResolver struct {
	demand *repositories.DemandRepository
	skus   map[string]*models.Sku
}

func NewProvenanceResolver(db *gorm.DB) *ProvenanceResolver {
	return &ProvenanceResolver{
		demand: repositories.NewDemandRepository(db),
		skus:   make(map[string]*models.Sku),
	}
}

func (p *ProvenanceResolver) Resolve(unit *models.PutawayRecord) (*LineMeta, error) {
	return p.ResolveRef(ProvenanceRef{
		Kind:      unit.SourceKind,
		RefID:     unit.SourceID,
		LineIndex: unit.SourceLineIndex,
	})
}

func (p *ProvenanceResolver) ResolveRef(ref ProvenanceRef) (*LineMeta, error) {
	switch ref.Kind {
	case models.SourceKindInboundLine:
		return p.resolveInbound(ref.RefID)
	case models.SourceKindAllocationLine:
		return p.resolveAllocation(ref.RefID, ref.LineIndex)
	default:
		return nil, fmt.Errorf("provenance: unknown source kind %q", ref.Kind)
	}
}

// ResolveAll resolves a batch of units, reusing header lookups. A unit
// whose provenance is broken yields a nil meta and its error at the same
// index; the healthy rest of the batch still resolves.
func (p *ProvenanceResolver) ResolveAll(units []models.PutawayRecord) ([]*LineMeta, []error) {
	metas := make([]*LineMeta, len(units))
	errs := make([]error, len(units))
	cache := make(map[string]*LineMeta)
	for i := range units {
		key := fmt.Sprintf("%s/%d/%d", units[i].SourceKind, units[i].SourceID, units[i].SourceLineIndex)
		if meta, ok := cache[key]; ok {
			metas[i] = meta
			continue
		}
		meta, err := p.Resolve(&units[i])
		if err != nil {
			errs[i] = err
			continue
		}
		cache[key] = meta
		metas[i] = meta
	}
	return metas, errs
}

func (p *ProvenanceResolver) resolveInbound(lineID uint) (*LineMeta, error) {
	line, err := p.demand.GetInboundLine(lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("provenance: inbound line %d: %w", lineID, ErrNotFound)
		}
		return nil, err
	}
	job, err := p.demand.GetInboundJob(line.InboundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("provenance: inbound job %d: %w", line.InboundID, ErrNotFound)
		}
		return nil, err
	}

	meta := &LineMeta{
		ItemID:         line.ItemID,
		ItemCode:       line.ItemCode,
		BatchNo:        line.BatchNo,
		ExpiryDate:     line.ExpiryDate,
		Attribute1:     line.Attribute1,
		Attribute2:     line.Attribute2,
		Uom:            line.Uom,
		UnitsPerPallet: line.UnitsPerPallet,
		ExpectedQty:    line.Quantity,
		QtyReceived:    line.QtyReceived,
		JobID:          job.ID,
		JobNo:          job.InboundNo,
		CustomerCode:   job.CustomerCode,
		CustomerName:   job.CustomerName,
		CustomerRef:    job.CustomerRef,
		ContainerNo:    job.ContainerNo,
		WhsCode:        job.WhsCode,
		OwnerCode:      job.OwnerCode,
	}
	p.fillFromSku(meta)
	return meta, nil
}

func (p *ProvenanceResolver) resolveAllocation(allocID uint, lineIndex int) (*LineMeta, error) {
	alloc, err := p.demand.GetAllocationWithLines(allocID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("provenance: allocation %d: %w", allocID, ErrNotFound)
		}
		return nil, err
	}
	if lineIndex < 0 || lineIndex >= len(alloc.Lines) {
		return nil, fmt.Errorf("provenance: allocation %d line %d of %d: %w",
			allocID, lineIndex, len(alloc.Lines), ErrInvalidIndex)
	}
	line := alloc.Lines[lineIndex]

	booking, err := p.demand.GetBooking(alloc.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("provenance: booking %d: %w", alloc.BookingID, ErrNotFound)
		}
		return nil, err
	}

	meta := &LineMeta{
		ItemID:         line.ItemID,
		ItemCode:       line.ItemCode,
		BatchNo:        line.BatchNo,
		ExpiryDate:     line.ExpiryDate,
		Attribute1:     line.Attribute1,
		Attribute2:     line.Attribute2,
		Uom:            line.Uom,
		UnitsPerPallet: line.UnitsPerPallet,
		ExpectedQty:    line.Quantity,
		QtyReceived:    line.QtyReceived,
		JobID:          booking.ID,
		JobNo:          booking.BookingNo,
		CustomerCode:   booking.CustomerCode,
		CustomerName:   booking.CustomerName,
		CustomerRef:    booking.CustomerRef,
		ContainerNo:    booking.ContainerNo,
		WhsCode:        booking.WhsCode,
		OwnerCode:      booking.OwnerCode,
	}
	p.fillFromSku(meta)
	return meta, nil
}

// fillFromSku fills name and blank attributes from the SKU master. Lines
// override the master, the master only backfills.
func (p *ProvenanceResolver) fillFromSku(meta *LineMeta) {
	sku, ok := p.skus[meta.ItemCode]
	if !ok {
		var err error
		sku, err = p.demand.GetSkuByCode(meta.ItemCode)
		if err != nil {
			return
		}
		p.skus[meta.ItemCode] = sku
	}
	meta.ItemName = sku.ItemName
	if meta.Uom == "" {
		meta.Uom = sku.Uom
	}
	if meta.UnitsPerPallet <= 0 {
		meta.UnitsPerPallet = sku.UnitsPerPallet
	}
	if meta.Attribute1 == "" {
		meta.Attribute1 = sku.Attribute1
	}
	if meta.Attribute2 == "" {
		meta.Attribute2 = sku.Attribute2
	}
}
