package repositories

import (
	"time"

	"freight-wms/models"

	"gorm.io/gorm"
)

// PutawayRepository is the unit store. Claim, release and pick-marking are
// single conditional UPDATEs so the check and the set cannot be separated
// by a concurrent writer; callers inspect the bool to learn whether the
// precondition still held.
type PutawayRepository struct {
	db *gorm.DB
}

func NewPutawayRepository(db *gorm.DB) *PutawayRepository {
	return &PutawayRepository{db: db}
}

func (r *PutawayRepository) FindByID(id uint) (*models.PutawayRecord, error) {
	var unit models.PutawayRecord
	if err := r.db.First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *PutawayRepository) FindByPallet(pallet string) (*models.PutawayRecord, error) {
	var unit models.PutawayRecord
	if err := r.db.First(&unit, "pallet = ?", pallet).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// FindBySource returns the units put away for one demand line, in pallet
// sequence order. lineIndex is ignored for the inbound chain (pass -1).
func (r *PutawayRepository) FindBySource(kind string, sourceID uint, lineIndex int) ([]models.PutawayRecord, error) {
	var units []models.PutawayRecord
	q := r.db.Where("source_kind = ? AND source_id = ?", kind, sourceID)
	if kind == models.SourceKindAllocationLine {
		q = q.Where("source_line_index = ?", lineIndex)
	}
	if err := q.Order("pallet_seq ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindAvailableByItem lists unclaimed, in-stock units of one SKU in a
// warehouse, ascending by pallet identifier. Snowflake LPNs are
// time-ordered, so this walks oldest stock first.
func (r *PutawayRepository) FindAvailableByItem(whsCode, itemCode string) ([]models.PutawayRecord, error) {
	var units []models.PutawayRecord
	if err := r.db.
		Where("whs_code = ? AND item_code = ? AND allocation_id = 0 AND status = ?",
			whsCode, itemCode, models.UnitStatusInStock).
		Order("pallet ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *PutawayRepository) FindByWarehouse(whsCode string) ([]models.PutawayRecord, error) {
	var units []models.PutawayRecord
	if err := r.db.Where("whs_code = ?", whsCode).Order("pallet ASC").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *PutawayRepository) CreateBatch(units []models.PutawayRecord) error {
	if len(units) == 0 {
		return nil
	}
	tx := r.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()
	for i := range units {
		if err := tx.Create(&units[i]).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit().Error
}

// Claim marks the unit as claimed by the given outbound line. Returns
// false when the unit was already claimed, picked or gone; the caller
// re-reads to classify.
func (r *PutawayRepository) Claim(unitID uint, lineID uint, userID int) (bool, error) {
	res := r.db.Model(&models.PutawayRecord{}).
		Where("id = ? AND allocation_id = 0 AND status = ?", unitID, models.UnitStatusInStock).
		Updates(map[string]interface{}{
			"allocation_id": lineID,
			"updated_by":    userID,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Release undoes a claim held by the given line. Picked units stay picked.
func (r *PutawayRepository) Release(unitID uint, lineID uint, userID int) (bool, error) {
	res := r.db.Model(&models.PutawayRecord{}).
		Where("id = ? AND allocation_id = ? AND status = ?", unitID, lineID, models.UnitStatusInStock).
		Updates(map[string]interface{}{
			"allocation_id": 0,
			"updated_by":    userID,
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// MarkPicked flips an in-stock unit claimed by the line to picked.
func (r *PutawayRepository) MarkPicked(unitID uint, lineID uint, userID int) (bool, error) {
	res := r.db.Model(&models.PutawayRecord{}).
		Where("id = ? AND allocation_id = ? AND status = ?", unitID, lineID, models.UnitStatusInStock).
		Updates(map[string]interface{}{
			"status":     models.UnitStatusPicked,
			"updated_by": userID,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// SumClaimedQty is the authoritative allocated total for a line: the sum
// over units it currently claims, picked ones included.
func (r *PutawayRepository) SumClaimedQty(lineID uint) (int, error) {
	var total int
	err := r.db.Model(&models.PutawayRecord{}).
		Where("allocation_id = ?", lineID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *PutawayRepository) SumPickedQty(lineID uint) (int, error) {
	var total int
	err := r.db.Model(&models.PutawayRecord{}).
		Where("allocation_id = ? AND status = ?", lineID, models.UnitStatusPicked).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	return total, err
}

func (r *PutawayRepository) SumBySource(kind string, sourceID uint, lineIndex int) (int, error) {
	var total int
	q := r.db.Model(&models.PutawayRecord{}).
		Where("source_kind = ? AND source_id = ?", kind, sourceID)
	if kind == models.SourceKindAllocationLine {
		q = q.Where("source_line_index = ?", lineIndex)
	}
	err := q.Select("COALESCE(SUM(quantity), 0)").Scan(&total).Error
	return total, err
}
