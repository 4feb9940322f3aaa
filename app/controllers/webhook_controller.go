package controllers

import (
	"github.com/FestPass/FestPass/internal/pkg/cache"
	"github.com/FestPass/FestPass/internal/pkg/env"
	"github.com/FestPass/FestPass/internal/pkg/pipeline"
	"github.com/FestPass/FestPass/internal/pkg/webhook"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

const signatureHeader = "X-Webhook-Signature"

// WebhookController is the transport shim between the payment processor's
// webhook delivery and the adjudication pipeline. It owns signature checking
// and payload shape validation; every decision about the payload's truth
// lives in the pipeline.
type WebhookController struct {
	pipeline *pipeline.Service
	secret   string
}

// NewWebhookController creates the webhook controller. The shared secret
// comes from WEBHOOK_SECRET.
func NewWebhookController(svc *pipeline.Service) *WebhookController {
	return &WebhookController{
		pipeline: svc,
		secret:   env.GetEnv("WEBHOOK_SECRET", ""),
	}
}

// HandlePaymentCompleted processes one payment-completion delivery.
//
// Validation findings are never echoed to the caller: the processor only
// needs to know the delivery was accepted, and the findings name system
// internals meant for operators.
func (c *WebhookController) HandlePaymentCompleted(ctx *fiber.Ctx) error {
	body := ctx.Body()
	if !webhook.VerifySignature(body, ctx.Get(signatureHeader), c.secret) {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid signature",
		})
	}

	payload, err := webhook.ParseCompletionPayload(body)
	if err != nil {
		log.Warnf("webhook: malformed completion payload: %v", err)
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed payload",
		})
	}

	// Redelivery fast path. The database's unique session constraint is the
	// real idempotency guard; this only saves the round trip.
	if cache.IsSessionProcessed(payload.SessionID) {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "already_processed",
		})
	}

	outcome, err := c.pipeline.ProcessCompletion(ctx.Context(), payload)
	if err != nil {
		log.Errorf("webhook: pipeline failed for session %s: %v", payload.SessionID, err)
		// 5xx tells the processor to redeliver; the unit of work left no
		// partial state behind.
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "processing failed",
		})
	}

	if err := cache.MarkSessionProcessed(payload.SessionID); err != nil {
		log.Warnf("webhook: could not cache processed session %s: %v", payload.SessionID, err)
	}

	status := "processed"
	if outcome.Replayed {
		status = "already_processed"
	}
	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   status,
		"tickets":  len(outcome.Lines) - outcome.RejectedCount(),
		"flagged":  outcome.FlaggedCount(),
		"rejected": outcome.RejectedCount(),
	})
}
