package services

import (
	"testing"

	"freight-wms/models"

	"github.com/stretchr/testify/require"
)

func TestResolveInboundLine(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	job := seedInbound(t, db, customer, models.InboundLine{
		ItemCode: "SKU-A",
		BatchNo:  "B100",
		Quantity: 50,
	})

	resolver := NewProvenanceResolver(db)
	meta, err := resolver.ResolveRef(ProvenanceRef{
		Kind:      models.SourceKindInboundLine,
		RefID:     job.Lines[0].ID,
		LineIndex: -1,
	})
	require.NoError(t, err)

	require.Equal(t, "SKU-A", meta.ItemCode)
	require.Equal(t, "Widget A", meta.ItemName)
	require.Equal(t, "B100", meta.BatchNo)
	require.Equal(t, 50, meta.ExpectedQty)
	require.Equal(t, job.InboundNo, meta.JobNo)
	require.Equal(t, "CUST01", meta.CustomerCode)
	require.Equal(t, "TCNU1234567", meta.ContainerNo)
	require.Equal(t, "WH01", meta.WhsCode)
}

func TestResolveAllocationLine(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	seedSku(t, db, "SKU-B", "Widget B", 5)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	booking, alloc := seedBooking(t, db, customer,
		models.StockAllocationLine{ItemCode: "SKU-A", BatchNo: "B200", Quantity: 30},
		models.StockAllocationLine{ItemCode: "SKU-B", Quantity: 15},
	)

	resolver := NewProvenanceResolver(db)
	meta, err := resolver.ResolveRef(ProvenanceRef{
		Kind:      models.SourceKindAllocationLine,
		RefID:     alloc.ID,
		LineIndex: 1,
	})
	require.NoError(t, err)

	require.Equal(t, "SKU-B", meta.ItemCode)
	require.Equal(t, "Widget B", meta.ItemName)
	require.Equal(t, 15, meta.ExpectedQty)
	require.Equal(t, booking.BookingNo, meta.JobNo)
	require.Equal(t, "MSKU7654321", meta.ContainerNo)
}

func TestResolveAllocationLineOutOfBounds(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	_, alloc := seedBooking(t, db, customer,
		models.StockAllocationLine{ItemCode: "SKU-A", Quantity: 30},
	)

	resolver := NewProvenanceResolver(db)
	_, err := resolver.ResolveRef(ProvenanceRef{
		Kind:      models.SourceKindAllocationLine,
		RefID:     alloc.ID,
		LineIndex: 5,
	})
	require.ErrorIs(t, err, ErrInvalidIndex)
}

func TestResolveUnknownKind(t *testing.T) {
	db := newTestDB(t)
	resolver := NewProvenanceResolver(db)
	_, err := resolver.ResolveRef(ProvenanceRef{Kind: "mystery", RefID: 1})
	require.Error(t, err)
}

func TestResolveMissingLine(t *testing.T) {
	db := newTestDB(t)
	resolver := NewProvenanceResolver(db)
	_, err := resolver.ResolveRef(ProvenanceRef{
		Kind:      models.SourceKindInboundLine,
		RefID:     999,
		LineIndex: -1,
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveBackfillsAttributesFromSku(t *testing.T) {
	db := newTestDB(t)
	sku := seedSku(t, db, "SKU-A", "Widget A", 10)
	sku.Attribute1 = "FRAGILE"
	sku.Attribute2 = "KEEP-DRY"
	require.NoError(t, db.Save(sku).Error)

	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	job := seedInbound(t, db, customer, models.InboundLine{
		ItemCode:   "SKU-A",
		Quantity:   10,
		Attribute1: "OVERRIDE",
	})

	resolver := NewProvenanceResolver(db)
	meta, err := resolver.ResolveRef(ProvenanceRef{
		Kind:      models.SourceKindInboundLine,
		RefID:     job.Lines[0].ID,
		LineIndex: -1,
	})
	require.NoError(t, err)

	// the line wins where it speaks, the master fills the silence
	require.Equal(t, "OVERRIDE", meta.Attribute1)
	require.Equal(t, "KEEP-DRY", meta.Attribute2)
}
