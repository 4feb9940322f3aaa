package router

import (
	"github.com/FestPass/FestPass/app/controllers"
	"github.com/FestPass/FestPass/app/repository"
	"github.com/FestPass/FestPass/internal/pkg/database"
	"github.com/FestPass/FestPass/internal/pkg/pipeline"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// InstallRouter registers all HTTP routes on the app.
func InstallRouter(app *fiber.App) {
	// Initialize repositories through the shared factory
	repository.InitializeFactory(database.GetDB())
	factory := repository.GetGlobalFactory()

	svc := pipeline.NewService(factory.GetRepositories(), factory.GetUnitOfWork())
	webhookController := controllers.NewWebhookController(svc)

	hooks := app.Group("/webhook", limiter.New())
	hooks.Post("/payment-completed", webhookController.HandlePaymentCompleted)

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})
}
