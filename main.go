package main

import (
	"fmt"
	"log"

	"freight-wms/config"
	"freight-wms/database"
	"freight-wms/idgen"
	"freight-wms/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {
	config.LoadConfig()

	app := fiber.New()

	db, err := database.OpenConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupSkuRoutes(app, db)
	routes.SetupCustomerRoutes(app, db)
	routes.SetupInboundRoutes(app, db)
	routes.SetupContainerRoutes(app, db)
	routes.SetupOutboundRoutes(app, db)
	routes.SetupInventoryRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
