package controllers

import (
	"fmt"
	"time"

	"freight-wms/services"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

type inventorySearchInput struct {
	WhsCode string                   `json:"whs_code" validate:"required"`
	Filter  services.InventoryFilter `json:"filter"`
}

func (c *InventoryController) SearchInventory(ctx *fiber.Ctx) error {
	var input inventorySearchInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.WhsCode == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "whs_code is required"})
	}

	svc := services.NewInventoryService(c.DB)
	groups, unresolved, err := svc.Search(input.WhsCode, input.Filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inventory found", "data": groups, "unresolved": unresolved})
}

// ExportInventory writes the filtered stock view to an Excel workbook
// and streams it back.
func (c *InventoryController) ExportInventory(ctx *fiber.Ctx) error {
	var input inventorySearchInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if input.WhsCode == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "whs_code is required"})
	}

	svc := services.NewInventoryService(c.DB)
	groups, _, err := svc.Search(input.WhsCode, input.Filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ITEM_CODE", "ITEM_NAME", "BATCH_NO", "UOM", "TOTAL_QTY", "PALLETS", "LOCATIONS"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, g := range groups {
		locations := ""
		for i, loc := range g.Locations {
			if i > 0 {
				locations += ", "
			}
			locations += fmt.Sprintf("%s (%d)", loc.Location, loc.Quantity)
		}
		values := []interface{}{g.ItemCode, g.ItemName, g.BatchNo, g.Uom, g.TotalQty, g.Pallets, locations}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	filename := fmt.Sprintf("inventory_%s_%s.xlsx", input.WhsCode, time.Now().Format("20060102_150405"))
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := f.Write(ctx.Response().BodyWriter()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return nil
}
