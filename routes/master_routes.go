package routes

import (
	"freight-wms/config"
	"freight-wms/controllers"
	"freight-wms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSkuRoutes(app *fiber.App, db *gorm.DB) {
	skuController := controllers.NewSkuController(db)

	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)
	api.Get("/", skuController.GetAllSkus)
	api.Post("/", skuController.CreateSku)
	api.Get("/:id", skuController.GetSkuByID)
	api.Put("/:id", skuController.UpdateSku)
	api.Delete("/:id", skuController.DeleteSku)
}

func SetupCustomerRoutes(app *fiber.App, db *gorm.DB) {
	customerController := controllers.NewCustomerController(db)

	api := app.Group(config.MAIN_ROUTES+"/customers", middleware.AuthMiddleware)
	api.Get("/", customerController.GetAllCustomers)
	api.Post("/", customerController.CreateCustomer)
	api.Get("/:id", customerController.GetCustomerByID)
	api.Put("/:id", customerController.UpdateCustomer)
	api.Delete("/:id", customerController.DeleteCustomer)
}
