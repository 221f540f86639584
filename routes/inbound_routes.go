package routes

import (
	"freight-wms/config"
	"freight-wms/controllers"
	"freight-wms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupInboundRoutes(app *fiber.App, db *gorm.DB) {
	inboundController := controllers.NewInboundController(db)

	api := app.Group(config.MAIN_ROUTES+"/inbounds", middleware.AuthMiddleware)
	api.Get("/", inboundController.GetAllInbounds)
	api.Post("/", inboundController.CreateInbound)
	api.Get("/:id", inboundController.GetInboundByID)
	api.Post("/:id/complete", inboundController.CompleteInbound)
	api.Post("/lines/:lineId/putaway", inboundController.PutAwayLine)
}
