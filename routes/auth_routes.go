package routes

import (
	"freight-wms/config"
	"freight-wms/controllers"
	"freight-wms/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controllers.NewAuthController(db)

	api := app.Group(config.MAIN_ROUTES + "/auth")
	api.Post("/login", authController.Login)
	api.Get("/is-logged-in", middleware.AuthMiddleware, authController.IsLoggedIn)
	api.Post("/logout", middleware.AuthMiddleware, authController.Logout)
}
