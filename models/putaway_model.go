package models

import (
	"errors"

	"freight-wms/types"

	"gorm.io/gorm"
)

// Provenance chain of a physical unit. Exactly one applies per record and
// it never changes after creation.
const (
	SourceKindInboundLine    = "inbound_line"
	SourceKindAllocationLine = "allocation_line"
)

// Unit statuses.
const (
	UnitStatusInStock = "in stock"
	UnitStatusPicked  = "picked"
)

// PutawayRecord is one physical pallet (LPN) in the warehouse.
//
// SourceKind + SourceID (+ SourceLineIndex for the allocation chain) say
// which demand line produced the unit. AllocationID is the outbound line
// currently claiming it for shipment, 0 when unclaimed. Corrections soft
// delete the record, the row itself stays for audit.
type PutawayRecord struct {
	gorm.Model
	Pallet          string `json:"pallet" gorm:"unique;not null"`
	OwnerCode       string `json:"owner_code"`
	WhsCode         string `json:"whs_code" gorm:"index"`
	Location        string `json:"location"`
	ItemID          int    `json:"item_id"`
	ItemCode        string `json:"item_code" gorm:"index"`
	Quantity        int    `json:"quantity" gorm:"default:0"`
	PalletSeq       int    `json:"pallet_seq"`
	RecDate         string `json:"rec_date"`
	SourceKind      string `json:"source_kind" gorm:"index"`
	SourceID        uint   `json:"source_id" gorm:"index"`
	SourceLineIndex int    `json:"source_line_index" gorm:"default:-1"`
	AllocationID    uint   `json:"allocation_id" gorm:"index;default:0"`
	Status          string `json:"status" gorm:"default:'in stock'"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}

func (r *PutawayRecord) BeforeCreate(tx *gorm.DB) error {
	switch r.SourceKind {
	case SourceKindInboundLine:
		if r.SourceLineIndex >= 0 {
			return errors.New("putaway record: inbound provenance must not carry a line index")
		}
	case SourceKindAllocationLine:
		if r.SourceLineIndex < 0 {
			return errors.New("putaway record: allocation provenance requires a line index")
		}
	default:
		return errors.New("putaway record: unknown source kind " + r.SourceKind)
	}
	if r.SourceID == 0 {
		return errors.New("putaway record: missing source reference")
	}
	return nil
}

// PickupRecord is append-only, one row per reconciliation call.
// ReferenceID is the snowflake handle external systems quote back.
type PickupRecord struct {
	gorm.Model
	ReferenceID    types.SnowflakeID `json:"reference_id" gorm:"index"`
	OutboundLineID uint              `json:"outbound_line_id" gorm:"index"`
	OutboundID     uint              `json:"outbound_id" gorm:"index"`
	JobNo          string            `json:"job_no"`
	ItemCode       string            `json:"item_code"`
	PickedQty      int               `json:"picked_qty"`
	BufferQty      int               `json:"buffer_qty"`
	FinalQty       int               `json:"final_qty"`
	Note           string            `json:"note"`
	CreatedBy      int

	Units []PickupRecordUnit `gorm:"foreignKey:PickupRecordID;references:ID;constraint:OnDelete:CASCADE" json:"units"`
}

type PickupRecordUnit struct {
	gorm.Model
	PickupRecordID  uint   `json:"pickup_record_id" gorm:"index"`
	PutawayRecordID uint   `json:"putaway_record_id"`
	Pallet          string `json:"pallet"`
	Quantity        int    `json:"quantity"`
}
