package services

import (
	"testing"

	"freight-wms/models"

	"github.com/stretchr/testify/require"
)

func TestAllocateManual(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inbound := seedInbound(t, db, customer, models.InboundLine{ItemCode: "SKU-A", Quantity: 30})
	units := receiveInboundLine(t, db, inbound.Lines[0].ID, 30, 10, "A-01-01")

	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 20})
	lineID := outbound.Lines[0].ID

	svc := NewAllocationService(db)
	result, err := svc.Allocate(lineID, AllocModeManual,
		AllocSelection{Pallets: []string{units[0].Pallet, units[1].Pallet}}, 1)
	require.NoError(t, err)
	require.Equal(t, 20, result.QtyClaimed)
	require.Equal(t, 20, result.QtyAllocated)
	require.Zero(t, result.OverProvision)

	var line models.OutboundLine
	require.NoError(t, db.First(&line, lineID).Error)
	require.Equal(t, 20, line.QtyAlloc)
	require.Equal(t, "fully allocated", line.Status)
}

func TestAllocateManualPartialApply(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	seedSku(t, db, "SKU-B", "Widget B", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inboundA := seedInbound(t, db, customer,
		models.InboundLine{ItemCode: "SKU-A", Quantity: 20},
		models.InboundLine{ItemCode: "SKU-B", Quantity: 10},
	)
	unitsA := receiveInboundLine(t, db, inboundA.Lines[0].ID, 20, 10, "A-01-01")
	unitsB := receiveInboundLine(t, db, inboundA.Lines[1].ID, 10, 10, "A-01-02")

	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 30})
	lineID := outbound.Lines[0].ID

	svc := NewAllocationService(db)
	result, err := svc.Allocate(lineID, AllocModeManual, AllocSelection{
		Pallets: []string{
			unitsA[0].Pallet, // ok
			unitsB[0].Pallet, // wrong SKU
			"LPNNOPE",        // not on file
			unitsA[0].Pallet, // second attempt on a pallet this line holds
		},
	}, 1)
	require.NoError(t, err)
	require.Equal(t, 10, result.QtyClaimed)
	require.Len(t, result.Units, 4)
	require.True(t, result.Units[0].OK)
	require.ErrorIs(t, result.Units[1].Err, ErrMismatch)
	require.ErrorIs(t, result.Units[2].Err, ErrNotFound)
	require.ErrorIs(t, result.Units[3].Err, ErrConflict)
}

func TestAllocateManualAllBadReportsOutcomes(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 10})
	lineID := outbound.Lines[0].ID

	// every pallet invalid is still not a call error; the caller reads
	// the per-unit outcomes
	svc := NewAllocationService(db)
	result, err := svc.Allocate(lineID, AllocModeManual,
		AllocSelection{Pallets: []string{"LPNNOPE", "LPNNADA"}}, 1)
	require.NoError(t, err)
	require.Zero(t, result.QtyClaimed)
	require.Zero(t, result.QtyAllocated)
	require.Len(t, result.Units, 2)
	require.ErrorIs(t, result.Units[0].Err, ErrNotFound)
	require.ErrorIs(t, result.Units[1].Err, ErrNotFound)

	var line models.OutboundLine
	require.NoError(t, db.First(&line, lineID).Error)
	require.Zero(t, line.QtyAlloc)
	require.Equal(t, "open", line.Status)

	// an empty selection is a bad request, not an empty claim
	_, err = svc.Allocate(lineID, AllocModeManual, AllocSelection{}, 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInsufficientSupply)
}

func TestAllocateAutoWholeUnitsOverProvision(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inbound := seedInbound(t, db, customer,
		models.InboundLine{ItemCode: "SKU-A", Quantity: 10},
		models.InboundLine{ItemCode: "SKU-A", Quantity: 15},
	)
	receiveInboundLine(t, db, inbound.Lines[0].ID, 10, 10, "A-01-01")
	receiveInboundLine(t, db, inbound.Lines[1].ID, 15, 15, "A-01-02")

	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 20})
	lineID := outbound.Lines[0].ID

	svc := NewAllocationService(db)
	result, err := svc.Allocate(lineID, AllocModeAuto, AllocSelection{}, 1)
	require.NoError(t, err)

	// whole units of 10 and 15 against a need of 20
	require.Equal(t, 25, result.QtyClaimed)
	require.Equal(t, 25, result.QtyAllocated)
	require.Equal(t, 5, result.OverProvision)
	require.NotEmpty(t, result.Warnings)

	var line models.OutboundLine
	require.NoError(t, db.First(&line, lineID).Error)
	require.Equal(t, 25, line.QtyAlloc)
}

func TestAllocateAutoAscendingPalletOrder(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inbound := seedInbound(t, db, customer, models.InboundLine{ItemCode: "SKU-A", Quantity: 30})
	units := receiveInboundLine(t, db, inbound.Lines[0].ID, 30, 10, "A-01-01")

	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 10})

	svc := NewAllocationService(db)
	result, err := svc.Allocate(outbound.Lines[0].ID, AllocModeAuto, AllocSelection{}, 1)
	require.NoError(t, err)
	require.Len(t, result.Units, 1)
	require.Equal(t, units[0].Pallet, result.Units[0].Pallet)
}

func TestAllocateAutoBatchFilter(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inbound := seedInbound(t, db, customer,
		models.InboundLine{ItemCode: "SKU-A", BatchNo: "B100", Quantity: 10},
		models.InboundLine{ItemCode: "SKU-A", BatchNo: "B200", Quantity: 10},
	)
	receiveInboundLine(t, db, inbound.Lines[0].ID, 10, 10, "A-01-01")
	unitsB200 := receiveInboundLine(t, db, inbound.Lines[1].ID, 10, 10, "A-01-02")

	outbound := seedOutbound(t, db, customer,
		models.OutboundLine{ItemCode: "SKU-A", BatchNo: "B200", Quantity: 10})

	svc := NewAllocationService(db)
	result, err := svc.Allocate(outbound.Lines[0].ID, AllocModeAuto, AllocSelection{}, 1)
	require.NoError(t, err)
	require.Len(t, result.Units, 1)
	require.Equal(t, unitsB200[0].Pallet, result.Units[0].Pallet)
}

func TestAllocateAutoInsufficientSupply(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 10})

	svc := NewAllocationService(db)
	_, err := svc.Allocate(outbound.Lines[0].ID, AllocModeAuto, AllocSelection{}, 1)
	require.ErrorIs(t, err, ErrInsufficientSupply)
}

func TestAllocateExclusivityAcrossLines(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inbound := seedInbound(t, db, customer, models.InboundLine{ItemCode: "SKU-A", Quantity: 10})
	units := receiveInboundLine(t, db, inbound.Lines[0].ID, 10, 10, "A-01-01")

	outbound := seedOutbound(t, db, customer,
		models.OutboundLine{ItemCode: "SKU-A", Quantity: 10},
		models.OutboundLine{ItemCode: "SKU-A", Quantity: 10},
	)

	svc := NewAllocationService(db)
	_, err := svc.Allocate(outbound.Lines[0].ID, AllocModeManual,
		AllocSelection{Pallets: []string{units[0].Pallet}}, 1)
	require.NoError(t, err)

	result, err := svc.Allocate(outbound.Lines[1].ID, AllocModeManual,
		AllocSelection{Pallets: []string{units[0].Pallet}}, 1)
	require.NoError(t, err)
	require.Zero(t, result.QtyClaimed)
	require.Len(t, result.Units, 1)
	require.ErrorIs(t, result.Units[0].Err, ErrConflict)

	// the first line keeps its claim
	var unit models.PutawayRecord
	require.NoError(t, db.First(&unit, units[0].ID).Error)
	require.Equal(t, outbound.Lines[0].ID, unit.AllocationID)
}

func TestReleaseRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	seedSku(t, db, "SKU-A", "Widget A", 10)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")
	inbound := seedInbound(t, db, customer, models.InboundLine{ItemCode: "SKU-A", Quantity: 20})
	units := receiveInboundLine(t, db, inbound.Lines[0].ID, 20, 10, "A-01-01")

	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-A", Quantity: 20})
	lineID := outbound.Lines[0].ID

	svc := NewAllocationService(db)
	_, err := svc.Allocate(lineID, AllocModeManual,
		AllocSelection{Pallets: []string{units[0].Pallet, units[1].Pallet}}, 1)
	require.NoError(t, err)

	result, err := svc.Release(lineID, []string{units[0].Pallet}, 1)
	require.NoError(t, err)
	require.Equal(t, 10, result.QtyAllocated)

	var line models.OutboundLine
	require.NoError(t, db.First(&line, lineID).Error)
	require.Equal(t, 10, line.QtyAlloc)
	require.Equal(t, "partial allocated", line.Status)

	// the released unit is claimable again
	var unit models.PutawayRecord
	require.NoError(t, db.First(&unit, units[0].ID).Error)
	require.Zero(t, unit.AllocationID)
}
