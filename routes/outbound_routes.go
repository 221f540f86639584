package routes

import (
	"freight-wms/config"
	"freight-wms/controllers"
	"freight-wms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOutboundRoutes(app *fiber.App, db *gorm.DB) {
	outboundController := controllers.NewOutboundController(db)

	api := app.Group(config.MAIN_ROUTES+"/outbounds", middleware.AuthMiddleware)
	api.Get("/", outboundController.GetAllOutbounds)
	api.Post("/", outboundController.CreateOutbound)
	api.Get("/:id", outboundController.GetOutboundByID)
	api.Post("/:id/complete-pickup", outboundController.CompletePickup)
	api.Post("/lines/:lineId/allocate", outboundController.AllocateLine)
	api.Post("/lines/:lineId/release", outboundController.ReleaseLine)
	api.Post("/lines/:lineId/pickup", outboundController.PickupLine)
}
