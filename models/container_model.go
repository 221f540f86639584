package models

import "gorm.io/gorm"

type ContainerBooking struct {
	gorm.Model
	BookingNo    string `json:"booking_no" gorm:"unique"`
	BookingDate  string `json:"booking_date"`
	OwnerCode    string `json:"owner_code"`
	WhsCode      string `json:"whs_code" validate:"required"`
	CustomerID   int    `json:"customer_id"`
	CustomerCode string `json:"customer_code" validate:"required"`
	CustomerName string `json:"customer_name"`
	CustomerRef  string `json:"customer_ref"`
	ContainerNo  string `json:"container_no"`
	ContainerSze string `json:"container_size"`
	VesselName   string `json:"vessel_name"`
	Voyage       string `json:"voyage"`
	Status       string `json:"status" gorm:"default:'open'"`
	Remarks      string `json:"remarks_header"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	Allocations []StockAllocation `gorm:"foreignKey:BookingID;references:ID;constraint:OnDelete:CASCADE" json:"allocations"`
}

// StockAllocation batches the demand lines of a booking. Units put away
// from it carry SourceKindAllocationLine provenance: the allocation ID plus
// the index of the line inside Lines (ordered by LineNo).
type StockAllocation struct {
	gorm.Model
	BookingID    uint   `json:"booking_id" gorm:"index"`
	BookingNo    string `json:"booking_no"`
	AllocationNo string `json:"allocation_no"`
	Status       string `json:"status" gorm:"default:'open'"`
	Remarks      string `json:"remarks"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	Lines []StockAllocationLine `gorm:"foreignKey:AllocationID;references:ID;constraint:OnDelete:CASCADE" json:"lines"`
}

type StockAllocationLine struct {
	gorm.Model
	AllocationID   uint   `json:"allocation_id" gorm:"index"`
	LineNo         int    `json:"line_no"`
	ItemID         int    `json:"item_id"`
	ItemCode       string `json:"item_code" validate:"required"`
	BatchNo        string `json:"batch_no"`
	Quantity       int    `json:"quantity" validate:"required,min=1"`
	UnitsPerPallet int    `json:"units_per_pallet" gorm:"default:1"`
	QtyReceived    int    `json:"qty_received" gorm:"default:0"`
	ExpiryDate     string `json:"expiry_date"`
	Attribute1     string `json:"attribute1"`
	Attribute2     string `json:"attribute2"`
	Uom            string `json:"uom"`
	Status         string `json:"status" gorm:"default:'open'"`
	CreatedBy      int
	UpdatedBy      int
	DeletedBy      int
}
