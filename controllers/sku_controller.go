package controllers

import (
	"errors"

	"freight-wms/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SkuController struct {
	DB *gorm.DB
}

func NewSkuController(db *gorm.DB) *SkuController {
	return &SkuController{DB: db}
}

type skuInput struct {
	ItemCode       string `json:"item_code" validate:"required,min=2"`
	ItemName       string `json:"item_name" validate:"required"`
	Barcode        string `json:"barcode"`
	Uom            string `json:"uom"`
	UnitsPerPallet int    `json:"units_per_pallet" validate:"min=0"`
	HasBatch       string `json:"has_batch"`
	HasExpiry      string `json:"has_expiry"`
	Attribute1     string `json:"attribute1"`
	Attribute2     string `json:"attribute2"`
	Group          string `json:"group"`
	Category       string `json:"category"`
	Remarks        string `json:"remarks"`
}

func (c *SkuController) GetAllSkus(ctx *fiber.Ctx) error {
	var skus []models.Sku
	if err := c.DB.Order("item_code ASC").Find(&skus).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Items found", "data": skus})
}

func (c *SkuController) GetSkuByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var sku models.Sku
	if err := c.DB.First(&sku, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item found", "data": sku})
}

func (c *SkuController) CreateSku(ctx *fiber.Ctx) error {
	var input skuInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	sku := models.Sku{
		ItemCode:       input.ItemCode,
		ItemName:       input.ItemName,
		Barcode:        input.Barcode,
		Uom:            input.Uom,
		UnitsPerPallet: input.UnitsPerPallet,
		HasBatch:       input.HasBatch,
		HasExpiry:      input.HasExpiry,
		Attribute1:     input.Attribute1,
		Attribute2:     input.Attribute2,
		Group:          input.Group,
		Category:       input.Category,
		Remarks:        input.Remarks,
		CreatedBy:      int(ctx.Locals("userID").(float64)),
	}
	if sku.UnitsPerPallet <= 0 {
		sku.UnitsPerPallet = 1
	}

	if err := c.DB.Create(&sku).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item created successfully", "data": sku})
}

func (c *SkuController) UpdateSku(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input skuInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.Sku{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"item_name":        input.ItemName,
			"barcode":          input.Barcode,
			"uom":              input.Uom,
			"units_per_pallet": input.UnitsPerPallet,
			"has_batch":        input.HasBatch,
			"has_expiry":       input.HasExpiry,
			"attribute1":       input.Attribute1,
			"attribute2":       input.Attribute2,
			"group":            input.Group,
			"category":         input.Category,
			"remarks":          input.Remarks,
			"updated_by":       int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item updated successfully", "data": input})
}

func (c *SkuController) DeleteSku(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var sku models.Sku
	if err := c.DB.First(&sku, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	sku.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&sku).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Delete(&sku).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Item deleted successfully", "data": sku})
}
