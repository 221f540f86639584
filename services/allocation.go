package services

import (
	"errors"
	"fmt"

	"freight-wms/models"
	"freight-wms/repositories"

	"gorm.io/gorm"
)

// Allocation modes.
const (
	AllocModeAuto   = "auto"
	AllocModeManual = "manual"
)

// AllocSelection narrows what an allocation call may claim. Manual mode
// claims exactly the named pallets; auto mode claims ascending pallets
// until Quantity is covered (or the line's remaining need when Quantity
// is zero).
type AllocSelection struct {
	Pallets  []string `json:"pallets"`
	Quantity int      `json:"quantity"`
}

type AllocationResult struct {
	LineID        uint          `json:"line_id"`
	Mode          string        `json:"mode"`
	QtyAllocated  int           `json:"qty_allocated"`
	QtyClaimed    int           `json:"qty_claimed"`
	OverProvision int           `json:"over_provision"`
	Units         []UnitOutcome `json:"units"`
	Warnings      []string      `json:"warnings,omitempty"`
}

// AllocationService claims whole physical units against outbound lines.
// A unit belongs to at most one line at a time; exclusivity is enforced
// by the store's conditional update, not by a read beforehand.
type AllocationService struct {
	db       *gorm.DB
	units    *repositories.PutawayRepository
	demand   *repositories.DemandRepository
	resolver *ProvenanceResolver
}

func NewAllocationService(db *gorm.DB) *AllocationService {
	return &AllocationService{
		db:       db,
		units:    repositories.NewPutawayRepository(db),
		demand:   repositories.NewDemandRepository(db),
		resolver: NewProvenanceResolver(db),
	}
}

func (s *AllocationService) Allocate(lineID uint, mode string, sel AllocSelection, userID int) (*AllocationResult, error) {
	line, err := s.demand.GetOutboundLine(lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("allocation: outbound line %d: %w", lineID, ErrNotFound)
		}
		return nil, err
	}

	result := &AllocationResult{LineID: lineID, Mode: mode}
	switch mode {
	case AllocModeManual:
		err = s.allocateManual(line, sel.Pallets, userID, result)
	case AllocModeAuto:
		err = s.allocateAuto(line, sel.Quantity, userID, result)
	default:
		return nil, fmt.Errorf("allocation: unknown mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	if err := s.refreshLineTotal(line, userID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// allocateManual claims the named pallets one by one. Bad pallets fail
// individually and are reported in the per-unit outcomes; a call where
// every pallet fails still returns the outcome list, not an error.
func (s *AllocationService) allocateManual(line *models.OutboundLine, pallets []string, userID int, result *AllocationResult) error {
	if len(pallets) == 0 {
		return fmt.Errorf("allocation: manual mode needs at least one pallet")
	}
	for _, pallet := range pallets {
		unit, err := s.units.FindByPallet(pallet)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Units = append(result.Units, failedOutcome(pallet, 0, ErrNotFound, "pallet not on file"))
				continue
			}
			return err
		}
		if outcome, ok := s.checkUnit(line, unit); !ok {
			result.Units = append(result.Units, outcome)
			continue
		}
		claimed, err := s.units.Claim(unit.ID, line.ID, userID)
		if err != nil {
			return err
		}
		if !claimed {
			result.Units = append(result.Units, failedOutcome(pallet, unit.Quantity, ErrConflict, "claimed concurrently"))
			continue
		}
		result.Units = append(result.Units, okOutcome(pallet, unit.Quantity))
		result.QtyClaimed += unit.Quantity
	}
	return nil
}

// checkUnit validates a candidate against the line before claiming. Claim
// state is re-checked atomically by the store; this only classifies what
// is knowable up front.
func (s *AllocationService) checkUnit(line *models.OutboundLine, unit *models.PutawayRecord) (UnitOutcome, bool) {
	if unit.Status == models.UnitStatusPicked {
		return failedOutcome(unit.Pallet, unit.Quantity, ErrConflict, "already picked"), false
	}
	if unit.AllocationID == line.ID {
		return failedOutcome(unit.Pallet, unit.Quantity, ErrConflict, "already allocated to this line"), false
	}
	if unit.AllocationID != 0 {
		return failedOutcome(unit.Pallet, unit.Quantity, ErrConflict, "allocated to another line"), false
	}
	if unit.ItemCode != line.ItemCode {
		return failedOutcome(unit.Pallet, unit.Quantity, ErrMismatch,
			fmt.Sprintf("item %s does not match line item %s", unit.ItemCode, line.ItemCode)), false
	}
	if line.BatchNo != "" {
		meta, err := s.resolver.Resolve(unit)
		if err != nil {
			return failedOutcome(unit.Pallet, unit.Quantity, err, "provenance unresolvable"), false
		}
		if meta.BatchNo != line.BatchNo {
			return failedOutcome(unit.Pallet, unit.Quantity, ErrMismatch,
				fmt.Sprintf("batch %s does not match line batch %s", meta.BatchNo, line.BatchNo)), false
		}
	}
	return UnitOutcome{}, true
}

// allocateAuto walks available units of the line's SKU in ascending
// pallet order and claims whole units until the target is covered. Whole
// units only, so the last claim may overshoot; the overshoot is reported,
// not an error.
func (s *AllocationService) allocateAuto(line *models.OutboundLine, requested int, userID int, result *AllocationResult) error {
	target := requested
	if target <= 0 {
		already, err := s.units.SumClaimedQty(line.ID)
		if err != nil {
			return err
		}
		target = line.Quantity - already
	}

	candidates, err := s.units.FindAvailableByItem(line.WhsCode, line.ItemCode)
	if err != nil {
		return err
	}

	// a line with no remaining need takes everything offered
	claimAll := target <= 0

	claimed := 0
	for i := range candidates {
		if !claimAll && claimed >= target {
			break
		}
		unit := &candidates[i]
		if line.BatchNo != "" {
			meta, err := s.resolver.Resolve(unit)
			if err != nil {
				return err
			}
			if meta.BatchNo != line.BatchNo {
				continue
			}
		}
		ok, err := s.units.Claim(unit.ID, line.ID, userID)
		if err != nil {
			return err
		}
		if !ok {
			// lost the race, move on
			continue
		}
		result.Units = append(result.Units, okOutcome(unit.Pallet, unit.Quantity))
		claimed += unit.Quantity
	}

	if claimed == 0 {
		return fmt.Errorf("allocation: item %s in %s: %w", line.ItemCode, line.WhsCode, ErrInsufficientSupply)
	}
	result.QtyClaimed = claimed
	if !claimAll && claimed < target {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("claimed %d of %d requested, supply exhausted", claimed, target))
	}
	return nil
}

// Release unclaims the named pallets from the line. Picked units are not
// releasable.
func (s *AllocationService) Release(lineID uint, pallets []string, userID int) (*AllocationResult, error) {
	line, err := s.demand.GetOutboundLine(lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("allocation: outbound line %d: %w", lineID, ErrNotFound)
		}
		return nil, err
	}

	result := &AllocationResult{LineID: lineID, Mode: "release"}
	for _, pallet := range pallets {
		unit, err := s.units.FindByPallet(pallet)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				result.Units = append(result.Units, failedOutcome(pallet, 0, ErrNotFound, "pallet not on file"))
				continue
			}
			return nil, err
		}
		released, err := s.units.Release(unit.ID, line.ID, userID)
		if err != nil {
			return nil, err
		}
		if !released {
			result.Units = append(result.Units, failedOutcome(pallet, unit.Quantity, ErrConflict, "not held by this line"))
			continue
		}
		result.Units = append(result.Units, okOutcome(pallet, unit.Quantity))
	}

	if err := s.refreshLineTotal(line, userID, result); err != nil {
		return nil, err
	}
	return result, nil
}

// refreshLineTotal recomputes the line's allocated total from the store
// and writes it back with a status derived from coverage.
func (s *AllocationService) refreshLineTotal(line *models.OutboundLine, userID int, result *AllocationResult) error {
	total, err := s.units.SumClaimedQty(line.ID)
	if err != nil {
		return err
	}
	result.QtyAllocated = total
	if total > line.Quantity {
		result.OverProvision = total - line.Quantity
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("allocated %d exceeds ordered %d by %d", total, line.Quantity, total-line.Quantity))
	}
	status := ""
	switch {
	case total == 0:
		status = "open"
	case total >= line.Quantity:
		status = "fully allocated"
	default:
		status = "partial allocated"
	}
	return s.demand.UpdateLineAllocated(line.ID, total, status, userID)
}
