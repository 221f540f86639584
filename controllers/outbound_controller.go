package controllers

import (
	"errors"

	"freight-wms/models"
	"freight-wms/repositories"
	"freight-wms/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OutboundController struct {
	DB *gorm.DB
}

func NewOutboundController(db *gorm.DB) *OutboundController {
	return &OutboundController{DB: db}
}

type outboundLineInput struct {
	ItemCode string `json:"item_code" validate:"required"`
	BatchNo  string `json:"batch_no"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Uom      string `json:"uom"`
	Remarks  string `json:"remarks"`
}

type outboundInput struct {
	JobDate      string              `json:"job_date"`
	OwnerCode    string              `json:"owner_code"`
	WhsCode      string              `json:"whs_code" validate:"required"`
	CustomerCode string              `json:"customer_code" validate:"required"`
	CustomerRef  string              `json:"customer_ref"`
	DeliveryNo   string              `json:"delivery_no"`
	Remarks      string              `json:"remarks_header"`
	Lines        []outboundLineInput `json:"lines" validate:"required,min=1,dive"`
}

func (c *OutboundController) CreateOutbound(ctx *fiber.Ctx) error {
	var input outboundInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var customer models.Customer
	if err := c.DB.First(&customer, "customer_code = ?", input.CustomerCode).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	jobNo, err := repositories.GenerateJobNo(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	userID := int(ctx.Locals("userID").(float64))
	job := models.OutboundJob{
		JobNo:        jobNo,
		JobDate:      input.JobDate,
		OwnerCode:    input.OwnerCode,
		WhsCode:      input.WhsCode,
		CustomerID:   int(customer.ID),
		CustomerCode: customer.CustomerCode,
		CustomerName: customer.CustomerName,
		CustomerRef:  input.CustomerRef,
		DeliveryNo:   input.DeliveryNo,
		Remarks:      input.Remarks,
		CreatedBy:    userID,
	}

	for i, l := range input.Lines {
		var sku models.Sku
		if err := c.DB.First(&sku, "item_code = ?", l.ItemCode).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item " + l.ItemCode + " not found"})
		}
		uom := l.Uom
		if uom == "" {
			uom = sku.Uom
		}
		job.Lines = append(job.Lines, models.OutboundLine{
			JobNo:      jobNo,
			LineNumber: i + 1,
			ItemID:     int(sku.ID),
			ItemCode:   sku.ItemCode,
			BatchNo:    l.BatchNo,
			Quantity:   l.Quantity,
			Uom:        uom,
			WhsCode:    input.WhsCode,
			Remarks:    l.Remarks,
			CreatedBy:  userID,
		})
	}

	if err := c.DB.Create(&job).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Outbound created successfully", "data": job})
}

func (c *OutboundController) GetAllOutbounds(ctx *fiber.Ctx) error {
	var jobs []models.OutboundJob
	if err := c.DB.Order("job_no DESC").Find(&jobs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Outbounds found", "data": jobs})
}

func (c *OutboundController) GetOutboundByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var job models.OutboundJob
	if err := c.DB.Preload("Lines.PickupRecords.Units").First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Outbound not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Outbound found", "data": job})
}

type allocateInput struct {
	Mode     string   `json:"mode" validate:"required,oneof=auto manual"`
	Pallets  []string `json:"pallets"`
	Quantity int      `json:"quantity"`
}

// AllocateLine claims stock units for one outbound line, either the
// pallets named by the operator or automatically by ascending pallet.
func (c *OutboundController) AllocateLine(ctx *fiber.Ctx) error {
	lineID, err := ctx.ParamsInt("lineId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line ID"})
	}

	var input allocateInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.NewAllocationService(c.DB)
	result, err := svc.Allocate(uint(lineID), input.Mode,
		services.AllocSelection{Pallets: input.Pallets, Quantity: input.Quantity},
		int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, services.ErrInsufficientSupply) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Allocation processed", "data": result})
}

type releaseInput struct {
	Pallets []string `json:"pallets" validate:"required,min=1"`
}

func (c *OutboundController) ReleaseLine(ctx *fiber.Ctx) error {
	lineID, err := ctx.ParamsInt("lineId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line ID"})
	}

	var input releaseInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.NewAllocationService(c.DB)
	result, err := svc.Release(uint(lineID), input.Pallets, int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Release processed", "data": result})
}

type pickupInput struct {
	Pallets   []string `json:"pallets" validate:"required,min=1"`
	BufferQty int      `json:"buffer_qty" validate:"min=0"`
	Note      string   `json:"note"`
}

// PickupLine books the physical lift for one outbound line: whole
// pallets plus loose buffer quantity.
func (c *OutboundController) PickupLine(ctx *fiber.Ctx) error {
	lineID, err := ctx.ParamsInt("lineId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line ID"})
	}

	var input pickupInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.NewPickupService(c.DB)
	record, outcomes, err := svc.RecordPickup(uint(lineID), input.Pallets, input.BufferQty, input.Note,
		int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, services.ErrConflict) {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error(), "data": outcomes})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Pickup recorded successfully",
		"data":    fiber.Map{"record": record, "units": outcomes},
	})
}

func (c *OutboundController) CompletePickup(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	svc := services.NewPickupService(c.DB)
	if err := svc.CompletePickup(uint(id), int(ctx.Locals("userID").(float64))); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Outbound completed successfully"})
}
