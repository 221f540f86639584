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

type InboundController struct {
	DB *gorm.DB
}

func NewInboundController(db *gorm.DB) *InboundController {
	return &InboundController{DB: db}
}

type inboundLineInput struct {
	ItemCode       string `json:"item_code" validate:"required"`
	BatchNo        string `json:"batch_no"`
	Quantity       int    `json:"quantity" validate:"required,min=1"`
	UnitsPerPallet int    `json:"units_per_pallet"`
	ExpiryDate     string `json:"expiry_date"`
	Attribute1     string `json:"attribute1"`
	Attribute2     string `json:"attribute2"`
	Uom            string `json:"uom"`
	Remarks        string `json:"remarks"`
}

type inboundInput struct {
	InboundDate  string             `json:"inbound_date"`
	OwnerCode    string             `json:"owner_code"`
	WhsCode      string             `json:"whs_code" validate:"required"`
	CustomerCode string             `json:"customer_code" validate:"required"`
	CustomerRef  string             `json:"customer_ref"`
	ContainerNo  string             `json:"container_no"`
	VesselName   string             `json:"vessel_name"`
	Voyage       string             `json:"voyage"`
	Remarks      string             `json:"remarks_header"`
	Lines        []inboundLineInput `json:"lines" validate:"required,min=1,dive"`
}

func (c *InboundController) CreateInbound(ctx *fiber.Ctx) error {
	var input inboundInput
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

	inboundNo, err := repositories.GenerateInboundNo(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	userID := int(ctx.Locals("userID").(float64))
	job := models.InboundJob{
		InboundNo:    inboundNo,
		InboundDate:  input.InboundDate,
		OwnerCode:    input.OwnerCode,
		WhsCode:      input.WhsCode,
		CustomerID:   int(customer.ID),
		CustomerCode: customer.CustomerCode,
		CustomerName: customer.CustomerName,
		CustomerRef:  input.CustomerRef,
		ContainerNo:  input.ContainerNo,
		VesselName:   input.VesselName,
		Voyage:       input.Voyage,
		Remarks:      input.Remarks,
		CreatedBy:    userID,
	}

	for _, l := range input.Lines {
		var sku models.Sku
		if err := c.DB.First(&sku, "item_code = ?", l.ItemCode).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item " + l.ItemCode + " not found"})
		}
		perPallet := l.UnitsPerPallet
		if perPallet <= 0 {
			perPallet = sku.UnitsPerPallet
		}
		uom := l.Uom
		if uom == "" {
			uom = sku.Uom
		}
		job.Lines = append(job.Lines, models.InboundLine{
			InboundNo:      inboundNo,
			ItemID:         int(sku.ID),
			ItemCode:       sku.ItemCode,
			BatchNo:        l.BatchNo,
			Quantity:       l.Quantity,
			UnitsPerPallet: perPallet,
			ExpiryDate:     l.ExpiryDate,
			Attribute1:     l.Attribute1,
			Attribute2:     l.Attribute2,
			Uom:            uom,
			WhsCode:        input.WhsCode,
			Remarks:        l.Remarks,
			CreatedBy:      userID,
		})
	}

	if err := c.DB.Create(&job).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inbound created successfully", "data": job})
}

func (c *InboundController) GetAllInbounds(ctx *fiber.Ctx) error {
	var jobs []models.InboundJob
	if err := c.DB.Order("inbound_no DESC").Find(&jobs).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inbounds found", "data": jobs})
}

func (c *InboundController) GetInboundByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var job models.InboundJob
	if err := c.DB.Preload("Lines").First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inbound not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inbound found", "data": job})
}

type putawayInput struct {
	ReceivedQty   int                   `json:"received_qty" validate:"required,min=1"`
	PackingFactor int                   `json:"packing_factor" validate:"required,min=1"`
	Plan          services.LocationPlan `json:"plan" validate:"required"`
}

// PutAwayLine receives stock against one inbound line and creates the
// pallet records. Repeat calls with a higher cumulative quantity create
// only the missing pallets.
func (c *InboundController) PutAwayLine(ctx *fiber.Ctx) error {
	lineID, err := ctx.ParamsInt("lineId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line ID"})
	}

	var input putawayInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.NewPutawayService(c.DB)
	ref := services.ProvenanceRef{
		Kind:      models.SourceKindInboundLine,
		RefID:     uint(lineID),
		LineIndex: -1,
	}
	records, err := svc.PutAway(ref, input.ReceivedQty, input.PackingFactor, input.Plan,
		int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, services.ErrNoLocation) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Putaway created successfully", "data": records})
}

func (c *InboundController) CompleteInbound(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	svc := services.NewPutawayService(c.DB)
	if err := svc.CompleteInbound(uint(id), int(ctx.Locals("userID").(float64))); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inbound completed successfully"})
}
