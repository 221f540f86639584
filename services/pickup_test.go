package services

import (
	"testing"

	"freight-wms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAllocatedLine(t *testing.T, db *gorm.DB) (uint, *models.OutboundJob, []models.PutawayRecord) {
	t.Helper()
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inbound := seedInbound(t, db, customer,
		models.InboundLine{ItemCode: "SKU-A", Quantity: 10},
		models.InboundLine{ItemCode: "SKU-A", Quantity: 8},
		models.InboundLine{ItemCode: "SKU-A", Quantity: 5},
	)
	units := receiveInboundLine(t, db, inbound.Lines[0].ID, 10, 10, "A-01-01")
	units = append(units, receiveInboundLine(t, db, inbound.Lines[1].ID, 8, 8, "A-01-02")...)
	units = append(units, receiveInboundLine(t, db, inbound.Lines[2].ID, 5, 5, "A-01-03")...)

	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 20})
	lineID := outbound.Lines[0].ID

	alloc := NewAllocationService(db)
	_, err := alloc.Allocate(lineID, AllocModeManual,
		AllocSelection{Pallets: []string{units[0].Pallet, units[1].Pallet}}, 1)
	require.NoError(t, err)
	return lineID, outbound, units
}

func TestRecordPickupDisjointCalls(t *testing.T) {
	db := newTestDB(t)
	lineID, _, units := setupAllocatedLine(t, db)

	svc := NewPickupService(db)

	record1, outcomes, err := svc.RecordPickup(lineID, []string{units[0].Pallet}, 2, "short on rack", 1)
	require.NoError(t, err)
	require.Len(t, outcomes, 1)
	require.Equal(t, 10, record1.PickedQty)
	require.Equal(t, 2, record1.BufferQty)
	require.Equal(t, 12, record1.FinalQty)

	record2, _, err := svc.RecordPickup(lineID, []string{units[1].Pallet}, 0, "", 1)
	require.NoError(t, err)
	require.Equal(t, 8, record2.FinalQty)

	// line total is the sum over picked units, not the final quantities
	var line models.OutboundLine
	require.NoError(t, db.First(&line, lineID).Error)
	require.Equal(t, 18, line.QtyPicked)

	var count int64
	require.NoError(t, db.Model(&models.PickupRecord{}).
		Where("outbound_line_id = ?", lineID).Count(&count).Error)
	require.EqualValues(t, 2, count)
}

func TestRecordPickupDoublePickPrevented(t *testing.T) {
	db := newTestDB(t)
	lineID, _, units := setupAllocatedLine(t, db)

	svc := NewPickupService(db)
	_, _, err := svc.RecordPickup(lineID, []string{units[0].Pallet}, 0, "", 1)
	require.NoError(t, err)

	_, outcomes, err := svc.RecordPickup(lineID, []string{units[0].Pallet}, 0, "", 1)
	require.ErrorIs(t, err, ErrConflict)
	require.Len(t, outcomes, 1)
	require.False(t, outcomes[0].OK)
}

func TestRecordPickupUnallocatedPallet(t *testing.T) {
	db := newTestDB(t)
	lineID, _, units := setupAllocatedLine(t, db)

	// units[2] was never allocated to the line
	svc := NewPickupService(db)
	_, outcomes, err := svc.RecordPickup(lineID, []string{units[2].Pallet}, 0, "", 1)
	require.ErrorIs(t, err, ErrConflict)
	require.Len(t, outcomes, 1)
	require.ErrorIs(t, outcomes[0].Err, ErrConflict)
}

func TestRecordPickupNegativeBuffer(t *testing.T) {
	db := newTestDB(t)
	lineID, _, units := setupAllocatedLine(t, db)

	svc := NewPickupService(db)
	_, _, err := svc.RecordPickup(lineID, []string{units[0].Pallet}, -1, "", 1)
	require.Error(t, err)
}

func TestRecordPickupPartialApply(t *testing.T) {
	db := newTestDB(t)
	lineID, _, units := setupAllocatedLine(t, db)

	svc := NewPickupService(db)
	record, outcomes, err := svc.RecordPickup(lineID,
		[]string{units[0].Pallet, units[2].Pallet}, 0, "", 1)
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	require.True(t, outcomes[0].OK)
	require.False(t, outcomes[1].OK)
	require.Equal(t, 10, record.PickedQty)
}

func TestCompletePickupGate(t *testing.T) {
	db := newTestDB(t)
	lineID, outbound, units := setupAllocatedLine(t, db)

	svc := NewPickupService(db)
	require.Error(t, svc.CompletePickup(outbound.ID, 1))

	_, _, err := svc.RecordPickup(lineID, []string{units[0].Pallet}, 0, "", 1)
	require.NoError(t, err)

	require.NoError(t, svc.CompletePickup(outbound.ID, 1))

	var job models.OutboundJob
	require.NoError(t, db.First(&job, outbound.ID).Error)
	require.Equal(t, "complete", job.Status)

	// closing again is a no-op
	require.NoError(t, svc.CompletePickup(outbound.ID, 1))
}

func TestCompletePickupMissingJob(t *testing.T) {
	db := newTestDB(t)
	svc := NewPickupService(db)
	require.ErrorIs(t, svc.CompletePickup(999, 1), ErrNotFound)
}
