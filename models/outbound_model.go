package models

import "gorm.io/gorm"

type OutboundJob struct {
	gorm.Model
	JobNo        string `json:"job_no" gorm:"unique"`
	JobDate      string `json:"job_date"`
	OwnerCode    string `json:"owner_code"`
	WhsCode      string `json:"whs_code" validate:"required"`
	CustomerID   int    `json:"customer_id"`
	CustomerCode string `json:"customer_code" validate:"required"`
	CustomerName string `json:"customer_name"`
	CustomerRef  string `json:"customer_ref"`
	DeliveryNo   string `json:"delivery_no"`
	Status       string `json:"status" gorm:"default:'open'"`
	Remarks      string `json:"remarks_header"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	Lines []OutboundLine `gorm:"foreignKey:OutboundID;references:ID;constraint:OnDelete:CASCADE" json:"lines"`
}

// OutboundLine is the demand a claim satisfies. QtyAllocated and QtyPicked
// are running totals recomputed from the units claimed/picked for the line,
// never incremented in place.
type OutboundLine struct {
	gorm.Model
	OutboundID uint   `json:"outbound_id" gorm:"index"`
	JobNo      string `json:"job_no"`
	LineNumber int    `json:"line_number"`
	ItemID     int    `json:"item_id"`
	ItemCode   string `json:"item_code" validate:"required"`
	BatchNo    string `json:"batch_no"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
	QtyAlloc   int    `json:"qty_allocated" gorm:"column:qty_allocated;default:0"`
	QtyPicked  int    `json:"qty_picked" gorm:"default:0"`
	Uom        string `json:"uom"`
	WhsCode    string `json:"whs_code"`
	Status     string `json:"status" gorm:"default:'open'"`
	Remarks    string `json:"remarks"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int

	PickupRecords []PickupRecord `gorm:"foreignKey:OutboundLineID;references:ID;constraint:OnDelete:CASCADE" json:"pickup_records"`
}
