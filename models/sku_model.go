package models

import "gorm.io/gorm"

type Sku struct {
	gorm.Model
	ItemCode       string `json:"item_code" gorm:"unique"`
	ItemName       string `json:"item_name"`
	Barcode        string `json:"barcode"`
	Uom            string `json:"uom"`
	UnitsPerPallet int    `json:"units_per_pallet" gorm:"default:1"`
	HasBatch       string `json:"has_batch" gorm:"default:'N'"`
	HasExpiry      string `json:"has_expiry" gorm:"default:'N'"`
	Attribute1     string `json:"attribute1"`
	Attribute2     string `json:"attribute2"`
	Group          string `json:"group"`
	Category       string `json:"category"`
	Remarks        string `json:"remarks"`
	CreatedBy      int
	UpdatedBy      int
	DeletedBy      int
}
