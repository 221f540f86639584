// database/seeder.go
package database

import (
	"errors"
	"log"

	"freight-wms/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedWarehouse(db)
}

func SeedUserMaster(db *gorm.DB) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	users := []models.User{
		{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: string(hashed),
			IsActive: true,
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&user).Error; err != nil {
					log.Fatalf("Failed to seed user: %v", err)
				}
			} else {
				log.Fatalf("Unexpected DB error: %v", err)
			}
		}
	}
}

func SeedWarehouse(db *gorm.DB) {
	warehouses := []models.Warehouse{
		{WhsCode: "WH01", WhsName: "Main Warehouse", IsActive: "Y"},
	}

	for _, whs := range warehouses {
		var existing models.Warehouse
		err := db.Where("whs_code = ?", whs.WhsCode).First(&existing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&whs).Error; err != nil {
					log.Fatalf("Failed to seed warehouse: %v", err)
				}
			} else {
				log.Fatalf("Unexpected DB error: %v", err)
			}
		}
	}
}
