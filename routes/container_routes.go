package routes

import (
	"freight-wms/config"
	"freight-wms/controllers"
	"freight-wms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupContainerRoutes(app *fiber.App, db *gorm.DB) {
	containerController := controllers.NewContainerController(db)

	api := app.Group(config.MAIN_ROUTES+"/bookings", middleware.AuthMiddleware)
	api.Get("/", containerController.GetAllBookings)
	api.Post("/", containerController.CreateBooking)
	api.Get("/:id", containerController.GetBookingByID)
	api.Post("/:id/allocations", containerController.CreateAllocation)
	api.Post("/allocations/:allocId/lines/:lineIndex/putaway", containerController.PutAwayAllocationLine)
}
