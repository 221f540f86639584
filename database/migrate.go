// database/migrate.go
package database

import (
	"freight-wms/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Sku{},
		&models.Customer{},
		&models.Warehouse{},
		&models.InboundJob{},
		&models.InboundLine{},
		&models.ContainerBooking{},
		&models.StockAllocation{},
		&models.StockAllocationLine{},
		&models.OutboundJob{},
		&models.OutboundLine{},
		&models.PutawayRecord{},
		&models.PickupRecord{},
		&models.PickupRecordUnit{},
		&models.FileLog{},
	)
}
