package models

import "gorm.io/gorm"

type Warehouse struct {
	gorm.Model
	WhsCode   string `json:"whs_code" gorm:"unique" validate:"required"`
	WhsName   string `json:"whs_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	IsActive  string `json:"is_active" gorm:"default:'Y'"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}
