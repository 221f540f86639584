package repositories

import (
	"time"

	"freight-wms/models"

	"gorm.io/gorm"
)

// DemandRepository reads and updates the demand-line records of both
// provenance chains plus the outbound lines the allocation engine serves.
type DemandRepository struct {
	db *gorm.DB
}

func NewDemandRepository(db *gorm.DB) *DemandRepository {
	return &DemandRepository{db: db}
}

func (r *DemandRepository) GetInboundLine(id uint) (*models.InboundLine, error) {
	var line models.InboundLine
	if err := r.db.First(&line, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *DemandRepository) GetInboundJob(id uint) (*models.InboundJob, error) {
	var job models.InboundJob
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// GetAllocationWithLines loads the allocation and its embedded line list
// in line-number order. The resolver indexes into Lines, so the ordering
// here is part of the provenance contract.
func (r *DemandRepository) GetAllocationWithLines(id uint) (*models.StockAllocation, error) {
	var alloc models.StockAllocation
	if err := r.db.Preload("Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_no ASC")
	}).First(&alloc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &alloc, nil
}

func (r *DemandRepository) GetBooking(id uint) (*models.ContainerBooking, error) {
	var booking models.ContainerBooking
	if err := r.db.First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *DemandRepository) GetOutboundLine(id uint) (*models.OutboundLine, error) {
	var line models.OutboundLine
	if err := r.db.First(&line, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *DemandRepository) GetOutboundJob(id uint) (*models.OutboundJob, error) {
	var job models.OutboundJob
	if err := r.db.First(&job, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *DemandRepository) GetSkuByCode(itemCode string) (*models.Sku, error) {
	var sku models.Sku
	if err := r.db.First(&sku, "item_code = ?", itemCode).Error; err != nil {
		return nil, err
	}
	return &sku, nil
}

// UpdateLineAllocated rewrites the running allocated total for an outbound
// line. The value is always a recomputed sum, never an increment.
func (r *DemandRepository) UpdateLineAllocated(lineID uint, qty int, status string, userID int) error {
	updates := map[string]interface{}{
		"qty_allocated": qty,
		"updated_by":    userID,
		"updated_at":    time.Now(),
	}
	if status != "" {
		updates["status"] = status
	}
	return r.db.Model(&models.OutboundLine{}).Where("id = ?", lineID).Updates(updates).Error
}

func (r *DemandRepository) UpdateLinePicked(lineID uint, qty int, status string, userID int) error {
	updates := map[string]interface{}{
		"qty_picked": qty,
		"updated_by": userID,
		"updated_at": time.Now(),
	}
	if status != "" {
		updates["status"] = status
	}
	return r.db.Model(&models.OutboundLine{}).Where("id = ?", lineID).Updates(updates).Error
}

// UpdateReceived rewrites the cumulative received total on whichever chain
// the provenance names.
func (r *DemandRepository) UpdateInboundLineReceived(lineID uint, qty int, status string, userID int) error {
	updates := map[string]interface{}{
		"qty_received": qty,
		"updated_by":   userID,
		"updated_at":   time.Now(),
	}
	if status != "" {
		updates["status"] = status
	}
	return r.db.Model(&models.InboundLine{}).Where("id = ?", lineID).Updates(updates).Error
}

func (r *DemandRepository) UpdateAllocationLineReceived(lineID uint, qty int, status string, userID int) error {
	updates := map[string]interface{}{
		"qty_received": qty,
		"updated_by":   userID,
		"updated_at":   time.Now(),
	}
	if status != "" {
		updates["status"] = status
	}
	return r.db.Model(&models.StockAllocationLine{}).Where("id = ?", lineID).Updates(updates).Error
}

func (r *DemandRepository) CountPickupRecords(lineID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.PickupRecord{}).Where("outbound_line_id = ?", lineID).Count(&count).Error
	return count, err
}
