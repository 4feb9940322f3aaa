package main

import (
	"fmt"
	"log"

	"github.com/FestPass/FestPass/internal/pkg/cache"
	"github.com/FestPass/FestPass/internal/pkg/database"
	"github.com/FestPass/FestPass/internal/pkg/env"
	"github.com/FestPass/FestPass/internal/pkg/router"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	app := fiber.New(fiber.Config{
		AppName: "FestPass",
	})
	app.Use(recover.New(), logger.New())
	if env.IsDev() {
		// Live process metrics are for local debugging only.
		app.Get("/metrics", monitor.New())
	}

	// ROUTER
	router.InstallRouter(app)

	return app
}
