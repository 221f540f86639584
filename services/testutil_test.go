package services

import (
	"testing"

	"freight-wms/database"
	"freight-wms/idgen"
	"freight-wms/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	idgen.Init()
	return db
}

func seedSku(t *testing.T, db *gorm.DB, code, name string, perPallet int) *models.Sku {
	t.Helper()
	sku := &models.Sku{
		ItemCode:       code,
		ItemName:       name,
		Uom:            "PCS",
		UnitsPerPallet: perPallet,
		Attribute1:     "GENERAL",
	}
	require.NoError(t, db.Create(sku).Error)
	return sku
}

func seedCustomer(t *testing.T, db *gorm.DB, code, name string) *models.Customer {
	t.Helper()
	customer := &models.Customer{CustomerCode: code, CustomerName: name}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func seedInbound(t *testing.T, db *gorm.DB, customer *models.Customer, lines ...models.InboundLine) *models.InboundJob {
	t.Helper()
	job := &models.InboundJob{
		InboundNo:    "IB2608280001",
		InboundDate:  "2026-08-28",
		WhsCode:      "WH01",
		CustomerID:   int(customer.ID),
		CustomerCode: customer.CustomerCode,
		CustomerName: customer.CustomerName,
		ContainerNo:  "TCNU1234567",
		Lines:        lines,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

func seedBooking(t *testing.T, db *gorm.DB, customer *models.Customer, lines ...models.StockAllocationLine) (*models.ContainerBooking, *models.StockAllocation) {
	t.Helper()
	booking := &models.ContainerBooking{
		BookingNo:    "BK2608280001",
		BookingDate:  "2026-08-28",
		WhsCode:      "WH01",
		CustomerID:   int(customer.ID),
		CustomerCode: customer.CustomerCode,
		CustomerName: customer.CustomerName,
		ContainerNo:  "MSKU7654321",
	}
	require.NoError(t, db.Create(booking).Error)

	for i := range lines {
		lines[i].LineNo = i
	}
	alloc := &models.StockAllocation{
		BookingID:    booking.ID,
		BookingNo:    booking.BookingNo,
		AllocationNo: booking.BookingNo + "-A01",
		Lines:        lines,
	}
	require.NoError(t, db.Create(alloc).Error)
	return booking, alloc
}

func seedOutbound(t *testing.T, db *gorm.DB, customer *models.Customer, lines ...models.OutboundLine) *models.OutboundJob {
	t.Helper()
	for i := range lines {
		lines[i].LineNumber = i + 1
		lines[i].JobNo = "OB2608280001"
		if lines[i].WhsCode == "" {
			lines[i].WhsCode = "WH01"
		}
	}
	job := &models.OutboundJob{
		JobNo:        "OB2608280001",
		JobDate:      "2026-08-28",
		WhsCode:      "WH01",
		CustomerID:   int(customer.ID),
		CustomerCode: customer.CustomerCode,
		CustomerName: customer.CustomerName,
		Lines:        lines,
	}
	require.NoError(t, db.Create(job).Error)
	return job
}

// receiveInboundLine runs a full putaway for the line and returns the
// created pallets.
func receiveInboundLine(t *testing.T, db *gorm.DB, lineID uint, qty, packing int, location string) []models.PutawayRecord {
	t.Helper()
	svc := NewPutawayService(db)
	records, err := svc.PutAway(
		ProvenanceRef{Kind: models.SourceKindInboundLine, RefID: lineID, LineIndex: -1},
		qty, packing,
		LocationPlan{Mode: PlanModeBulk, Location: location}, 1)
	require.NoError(t, err)
	return records
}
