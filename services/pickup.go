package services

import (
	"errors"
	"fmt"
	"time"

	"freight-wms/idgen"
	"freight-wms/models"
	"freight-wms/repositories"
	"freight-wms/types"

	"gorm.io/gorm"
)

// PickupService reconciles what was physically lifted against what was
// allocated. Each call appends one pickup record; quantities on the line
// are recomputed from the units afterwards.
type PickupService struct {
	db     *gorm.DB
	units  *repositories.PutawayRepository
	demand *repositories.DemandRepository
}

func NewPickupService(db *gorm.DB) *PickupService {
	return &PickupService{
		db:     db,
		units:  repositories.NewPutawayRepository(db),
		demand: repositories.NewDemandRepository(db),
	}
}

// RecordPickup marks the named pallets picked for the line and books one
// pickup record over them. bufferQty is loose quantity lifted on top of
// the whole pallets and may not be negative. Pallets that cannot be
// picked fail individually; the call fails only when none succeed.
func (s *PickupService) RecordPickup(lineID uint, pallets []string, bufferQty int, note string, userID int) (*models.PickupRecord, []UnitOutcome, error) {
	if bufferQty < 0 {
		return nil, nil, fmt.Errorf("pickup: negative buffer quantity %d", bufferQty)
	}
	line, err := s.demand.GetOutboundLine(lineID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("pickup: outbound line %d: %w", lineID, ErrNotFound)
		}
		return nil, nil, err
	}

	var outcomes []UnitOutcome
	var pickedUnits []models.PickupRecordUnit
	pickedQty := 0
	for _, pallet := range pallets {
		unit, err := s.units.FindByPallet(pallet)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				outcomes = append(outcomes, failedOutcome(pallet, 0, ErrNotFound, "pallet not on file"))
				continue
			}
			return nil, nil, err
		}
		if unit.AllocationID != line.ID {
			outcomes = append(outcomes, failedOutcome(pallet, unit.Quantity, ErrConflict, "not allocated to this line"))
			continue
		}
		picked, err := s.units.MarkPicked(unit.ID, line.ID, userID)
		if err != nil {
			return nil, nil, err
		}
		if !picked {
			outcomes = append(outcomes, failedOutcome(pallet, unit.Quantity, ErrConflict, "already picked"))
			continue
		}
		outcomes = append(outcomes, okOutcome(pallet, unit.Quantity))
		pickedQty += unit.Quantity
		pickedUnits = append(pickedUnits, models.PickupRecordUnit{
			PutawayRecordID: unit.ID,
			Pallet:          unit.Pallet,
			Quantity:        unit.Quantity,
		})
	}

	if len(pickedUnits) == 0 {
		return nil, outcomes, fmt.Errorf("pickup: no pallet could be picked for line %d: %w", lineID, ErrConflict)
	}

	record := &models.PickupRecord{
		ReferenceID:    types.SnowflakeID(idgen.GenerateID()),
		OutboundLineID: line.ID,
		OutboundID:     line.OutboundID,
		JobNo:          line.JobNo,
		ItemCode:       line.ItemCode,
		PickedQty:      pickedQty,
		BufferQty:      bufferQty,
		FinalQty:       pickedQty + bufferQty,
		Note:           note,
		CreatedBy:      userID,
		Units:          pickedUnits,
	}
	if err := s.db.Create(record).Error; err != nil {
		return nil, outcomes, err
	}

	total, err := s.units.SumPickedQty(line.ID)
	if err != nil {
		return nil, outcomes, err
	}
	status := "partial picked"
	if total >= line.Quantity {
		status = "picked"
	}
	if err := s.demand.UpdateLinePicked(line.ID, total, status, userID); err != nil {
		return nil, outcomes, err
	}

	// first pickup moves the job out of open
	if err := s.db.Model(&models.OutboundJob{}).
		Where("id = ? AND status = ?", line.OutboundID, "open").
		Update("status", "picking").Error; err != nil {
		return nil, outcomes, err
	}
	return record, outcomes, nil
}

// CompletePickup closes the job for dispatch. Every line must carry at
// least one pickup record; closing an already complete job is a no-op.
func (s *PickupService) CompletePickup(jobID uint, userID int) error {
	var job models.OutboundJob
	if err := s.db.Preload("Lines").First(&job, "id = ?", jobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("pickup: outbound job %d: %w", jobID, ErrNotFound)
		}
		return err
	}
	if job.Status == "complete" {
		return nil
	}
	for _, line := range job.Lines {
		count, err := s.demand.CountPickupRecords(line.ID)
		if err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("pickup: job %s line %d item %s has no pickup record",
				job.JobNo, line.LineNumber, line.ItemCode)
		}
	}
	return s.db.Model(&models.OutboundJob{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":     "complete",
		"updated_by": userID,
		"updated_at": time.Now(),
	}).Error
}
