package models

import "gorm.io/gorm"

type InboundJob struct {
	gorm.Model
	InboundNo    string `json:"inbound_no" gorm:"unique"`
	InboundDate  string `json:"inbound_date"`
	OwnerCode    string `json:"owner_code"`
	WhsCode      string `json:"whs_code" validate:"required"`
	CustomerID   int    `json:"customer_id"`
	CustomerCode string `json:"customer_code" validate:"required"`
	CustomerName string `json:"customer_name"`
	CustomerRef  string `json:"customer_ref"`
	ContainerNo  string `json:"container_no"`
	VesselName   string `json:"vessel_name"`
	Voyage       string `json:"voyage"`
	Status       string `json:"status" gorm:"default:'open'"`
	Remarks      string `json:"remarks_header"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int

	Lines []InboundLine `gorm:"foreignKey:InboundID;references:ID;constraint:OnDelete:CASCADE" json:"lines"`
}

// InboundLine is a demand line of an import container job. Units put away
// for this line carry SourceKindInboundLine provenance pointing at it.
type InboundLine struct {
	gorm.Model
	InboundID      uint   `json:"inbound_id" gorm:"index"`
	InboundNo      string `json:"inbound_no"`
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
	WhsCode        string `json:"whs_code"`
	Status         string `json:"status" gorm:"default:'open'"`
	Remarks        string `json:"remarks"`
	CreatedBy      int
	UpdatedBy      int
	DeletedBy      int
}
