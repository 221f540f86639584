package routes

import (
	"freight-wms/config"
	"freight-wms/controllers"
	"freight-wms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupInventoryRoutes(app *fiber.App, db *gorm.DB) {
	inventoryController := controllers.NewInventoryController(db)

	api := app.Group(config.MAIN_ROUTES+"/inventory", middleware.AuthMiddleware)
	api.Post("/search", inventoryController.SearchInventory)
	api.Post("/export", inventoryController.ExportInventory)
}
