package controllers

import (
	"errors"
	"fmt"

	"freight-wms/models"
	"freight-wms/repositories"
	"freight-wms/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ContainerController struct {
	DB *gorm.DB
}

func NewContainerController(db *gorm.DB) *ContainerController {
	return &ContainerController{DB: db}
}

type bookingInput struct {
	BookingDate  string `json:"booking_date"`
	OwnerCode    string `json:"owner_code"`
	WhsCode      string `json:"whs_code" validate:"required"`
	CustomerCode string `json:"customer_code" validate:"required"`
	CustomerRef  string `json:"customer_ref"`
	ContainerNo  string `json:"container_no"`
	ContainerSze string `json:"container_size"`
	VesselName   string `json:"vessel_name"`
	Voyage       string `json:"voyage"`
	Remarks      string `json:"remarks_header"`
}

func (c *ContainerController) CreateBooking(ctx *fiber.Ctx) error {
	var input bookingInput
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

	bookingNo, err := repositories.GenerateBookingNo(c.DB)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	booking := models.ContainerBooking{
		BookingNo:    bookingNo,
		BookingDate:  input.BookingDate,
		OwnerCode:    input.OwnerCode,
		WhsCode:      input.WhsCode,
		CustomerID:   int(customer.ID),
		CustomerCode: customer.CustomerCode,
		CustomerName: customer.CustomerName,
		CustomerRef:  input.CustomerRef,
		ContainerNo:  input.ContainerNo,
		ContainerSze: input.ContainerSze,
		VesselName:   input.VesselName,
		Voyage:       input.Voyage,
		Remarks:      input.Remarks,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&booking).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Booking created successfully", "data": booking})
}

func (c *ContainerController) GetAllBookings(ctx *fiber.Ctx) error {
	var bookings []models.ContainerBooking
	if err := c.DB.Order("booking_no DESC").Find(&bookings).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Bookings found", "data": bookings})
}

func (c *ContainerController) GetBookingByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var booking models.ContainerBooking
	if err := c.DB.Preload("Allocations.Lines", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_no ASC")
	}).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Booking found", "data": booking})
}

type allocationLineInput struct {
	ItemCode       string `json:"item_code" validate:"required"`
	BatchNo        string `json:"batch_no"`
	Quantity       int    `json:"quantity" validate:"required,min=1"`
	UnitsPerPallet int    `json:"units_per_pallet"`
	ExpiryDate     string `json:"expiry_date"`
	Attribute1     string `json:"attribute1"`
	Attribute2     string `json:"attribute2"`
	Uom            string `json:"uom"`
}

type allocationInput struct {
	Remarks string                `json:"remarks"`
	Lines   []allocationLineInput `json:"lines" validate:"required,min=1,dive"`
}

// CreateAllocation attaches a batch of stock lines to a booking. Line
// numbers are assigned in input order; the index of a line in that order
// is what putaway provenance refers to.
func (c *ContainerController) CreateAllocation(ctx *fiber.Ctx) error {
	bookingID, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var input allocationInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var booking models.ContainerBooking
	if err := c.DB.First(&booking, bookingID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
	}

	var count int64
	if err := c.DB.Model(&models.StockAllocation{}).Where("booking_id = ?", booking.ID).Count(&count).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	userID := int(ctx.Locals("userID").(float64))
	alloc := models.StockAllocation{
		BookingID:    booking.ID,
		BookingNo:    booking.BookingNo,
		AllocationNo: fmt.Sprintf("%s-A%02d", booking.BookingNo, count+1),
		Remarks:      input.Remarks,
		CreatedBy:    userID,
	}

	for i, l := range input.Lines {
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
		alloc.Lines = append(alloc.Lines, models.StockAllocationLine{
			LineNo:         i,
			ItemID:         int(sku.ID),
			ItemCode:       sku.ItemCode,
			BatchNo:        l.BatchNo,
			Quantity:       l.Quantity,
			UnitsPerPallet: perPallet,
			ExpiryDate:     l.ExpiryDate,
			Attribute1:     l.Attribute1,
			Attribute2:     l.Attribute2,
			Uom:            uom,
			CreatedBy:      userID,
		})
	}

	if err := c.DB.Create(&alloc).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Allocation created successfully", "data": alloc})
}

// PutAwayAllocationLine receives stock against one allocation line,
// addressed by allocation ID and line index.
func (c *ContainerController) PutAwayAllocationLine(ctx *fiber.Ctx) error {
	allocID, err := ctx.ParamsInt("allocId")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid allocation ID"})
	}
	lineIndex, err := ctx.ParamsInt("lineIndex")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line index"})
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
		Kind:      models.SourceKindAllocationLine,
		RefID:     uint(allocID),
		LineIndex: lineIndex,
	}
	records, err := svc.PutAway(ref, input.ReceivedQty, input.PackingFactor, input.Plan,
		int(ctx.Locals("userID").(float64)))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) || errors.Is(err, services.ErrInvalidIndex) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, services.ErrNoLocation) {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Putaway created successfully", "data": records})
}
