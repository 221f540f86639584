package services

import (
	"testing"

	"freight-wms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedMixedStock builds stock from both provenance chains:
//   SKU-A batch B100, 20 pcs over 2 pallets, A-01-01 (inbound IB...)
//   SKU-A batch B200, 15 pcs over 1 pallet,  B-02-01 (booking BK...)
//   SKU-B no batch,   12 pcs over 2 pallets, C-03-01 (inbound IB...)
func seedMixedStock(t *testing.T, db *gorm.DB) (*models.InboundJob, *models.ContainerBooking) {
	t.Helper()
	seedSku(t, db, "SKU-A", "Widget A", 10)
	seedSku(t, db, "SKU-B", "Widget B", 6)
	customer := seedCustomer(t, db, "CUST01", "Acme Logistics")

	inbound := seedInbound(t, db, customer,
		models.InboundLine{ItemCode: "SKU-A", BatchNo: "B100", Quantity: 20, ExpiryDate: "2027-01-31"},
		models.InboundLine{ItemCode: "SKU-B", Quantity: 12},
	)
	receiveInboundLine(t, db, inbound.Lines[0].ID, 20, 10, "A-01-01")
	receiveInboundLine(t, db, inbound.Lines[1].ID, 12, 6, "C-03-01")

	booking, alloc := seedBooking(t, db, customer,
		models.StockAllocationLine{ItemCode: "SKU-A", BatchNo: "B200", Quantity: 15},
	)
	svc := NewPutawayService(db)
	_, err := svc.PutAway(
		ProvenanceRef{Kind: models.SourceKindAllocationLine, RefID: alloc.ID, LineIndex: 0},
		15, 15, LocationPlan{Mode: PlanModeBulk, Location: "B-02-01"}, 1)
	require.NoError(t, err)

	return inbound, booking
}

func TestSearchGroupsAndOrders(t *testing.T) {
	db := newTestDB(t)
	seedMixedStock(t, db)

	svc := NewInventoryService(db)
	groups, _, err := svc.Search("WH01", InventoryFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// ascending item code, then batch
	require.Equal(t, "SKU-A", groups[0].ItemCode)
	require.Equal(t, "B100", groups[0].BatchNo)
	require.Equal(t, 20, groups[0].TotalQty)
	require.Equal(t, 2, groups[0].Pallets)

	require.Equal(t, "SKU-A", groups[1].ItemCode)
	require.Equal(t, "B200", groups[1].BatchNo)
	require.Equal(t, 15, groups[1].TotalQty)

	require.Equal(t, "SKU-B", groups[2].ItemCode)
	require.Equal(t, 12, groups[2].TotalQty)
	require.Equal(t, "Widget B", groups[2].ItemName)
}

func TestSearchFilterByBatch(t *testing.T) {
	db := newTestDB(t)
	seedMixedStock(t, db)

	svc := NewInventoryService(db)
	groups, _, err := svc.Search("WH01", InventoryFilter{BatchNo: "B200"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, 15, groups[0].TotalQty)
}

func TestSearchFilterByLocationBand(t *testing.T) {
	db := newTestDB(t)
	seedMixedStock(t, db)

	svc := NewInventoryService(db)
	groups, _, err := svc.Search("WH01", InventoryFilter{
		LocationFrom: "A-01-01",
		LocationTo:   "B-99-99",
	})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "B100", groups[0].BatchNo)
	require.Equal(t, "B200", groups[1].BatchNo)
}

func TestSearchFilterByExpiryAndName(t *testing.T) {
	db := newTestDB(t)
	seedMixedStock(t, db)

	svc := NewInventoryService(db)
	groups, _, err := svc.Search("WH01", InventoryFilter{ExpiryDate: "2027-01-31"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "B100", groups[0].BatchNo)

	groups, _, err = svc.Search("WH01", InventoryFilter{ItemName: "widget b"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "SKU-B", groups[0].ItemCode)
}

func TestSearchCrossRefByJobNo(t *testing.T) {
	db := newTestDB(t)
	inbound, booking := seedMixedStock(t, db)

	svc := NewInventoryService(db)

	groups, _, err := svc.Search("WH01", InventoryFilter{JobNo: inbound.InboundNo})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	for _, g := range groups {
		require.NotEqual(t, "B200", g.BatchNo)
	}

	groups, _, err = svc.Search("WH01", InventoryFilter{BookingNo: booking.BookingNo})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, "B200", groups[0].BatchNo)

	// an unknown document narrows to nothing, it is not ignored
	groups, _, err = svc.Search("WH01", InventoryFilter{JobNo: "IB0000000000"})
	require.NoError(t, err)
	require.Empty(t, groups)
}

func TestSearchExcludesPickedUnits(t *testing.T) {
	db := newTestDB(t)
	seedMixedStock(t, db)
	customer := &models.Customer{}
	require.NoError(t, db.First(customer, "customer_code = ?", "CUST01").Error)

	outbound := seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-B", Quantity: 12})
	lineID := outbound.Lines[0].ID

	alloc := NewAllocationService(db)
	result, err := alloc.Allocate(lineID, AllocModeAuto, AllocSelection{}, 1)
	require.NoError(t, err)

	pickup := NewPickupService(db)
	_, _, err = pickup.RecordPickup(lineID, []string{result.Units[0].Pallet}, 0, "", 1)
	require.NoError(t, err)

	svc := NewInventoryService(db)
	groups, _, err := svc.Search("WH01", InventoryFilter{ItemCode: "SKU-B"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, 6, groups[0].TotalQty)
	require.Equal(t, 1, groups[0].Pallets)
}

func TestSearchDemandDecoration(t *testing.T) {
	db := newTestDB(t)
	inbound, _ := seedMixedStock(t, db)
	customer := &models.Customer{}
	require.NoError(t, db.First(customer, "customer_code = ?", "CUST01").Error)
	seedOutbound(t, db, customer, models.OutboundLine{ItemCode: "SKU-B", Quantity: 5})

	svc := NewInventoryService(db)
	groups, _, err := svc.Search("WH01", InventoryFilter{ItemCode: "SKU-B"})
	require.NoError(t, err)
	require.Len(t, groups, 1)

	kinds := map[string]string{}
	for _, d := range groups[0].Demands {
		kinds[d.Kind] = d.JobNo
	}
	require.Equal(t, inbound.InboundNo, kinds["inbound"])
	require.Equal(t, "OB2608280001", kinds["outbound"])
}

func TestSearchDemandDecorationIsSkuWide(t *testing.T) {
	db := newTestDB(t)
	inbound, booking := seedMixedStock(t, db)

	svc := NewInventoryService(db)
	groups, _, err := svc.Search("WH01", InventoryFilter{BatchNo: "B100"})
	require.NoError(t, err)
	require.Len(t, groups, 1)

	// the B100 stock came in through the inbound job, but the booking
	// against the same SKU shows up too
	kinds := map[string]string{}
	for _, d := range groups[0].Demands {
		kinds[d.Kind] = d.JobNo
	}
	require.Equal(t, inbound.InboundNo, kinds["inbound"])
	require.Equal(t, booking.BookingNo, kinds["booking"])
}

func TestSearchReportsBrokenProvenance(t *testing.T) {
	db := newTestDB(t)
	seedMixedStock(t, db)

	// a unit whose source line no longer exists
	bad := models.PutawayRecord{
		Pallet:          "LPNSTALE01",
		WhsCode:         "WH01",
		ItemCode:        "SKU-A",
		Quantity:        5,
		SourceKind:      models.SourceKindInboundLine,
		SourceID:        99999,
		SourceLineIndex: -1,
		Status:          models.UnitStatusInStock,
	}
	require.NoError(t, db.Create(&bad).Error)

	svc := NewInventoryService(db)
	groups, unresolved, err := svc.Search("WH01", InventoryFilter{})
	require.NoError(t, err)
	require.Len(t, groups, 3)
	for _, g := range groups {
		require.NotEqual(t, 25, g.TotalQty)
	}

	require.Len(t, unresolved, 1)
	require.Equal(t, "LPNSTALE01", unresolved[0].Pallet)
	require.Equal(t, uint(99999), unresolved[0].SourceID)
	require.Contains(t, unresolved[0].Reason, "not found")
}

func TestSearchIsReadOnly(t *testing.T) {
	db := newTestDB(t)
	seedMixedStock(t, db)

	var before int64
	require.NoError(t, db.Model(&models.PutawayRecord{}).Count(&before).Error)

	svc := NewInventoryService(db)
	_, _, err := svc.Search("WH01", InventoryFilter{})
	require.NoError(t, err)

	var after int64
	require.NoError(t, db.Model(&models.PutawayRecord{}).Count(&after).Error)
	require.Equal(t, before, after)

	var unclaimed int64
	require.NoError(t, db.Model(&models.PutawayRecord{}).
		Where("allocation_id = 0").Count(&unclaimed).Error)
	require.Equal(t, before, unclaimed)
}
