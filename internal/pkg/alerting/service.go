package alerting

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/FestPass/FestPass/app/models"
	"github.com/FestPass/FestPass/app/repository"
	"github.com/FestPass/FestPass/internal/pkg/fraudcheck"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// TamperingReport carries everything the alerter needs to raise or update a
// webhook-tampering alert for one line item.
type TamperingReport struct {
	SessionID        string
	TicketTypeClaim  string
	EventClaim       string
	Quantity         int64
	ClaimedPrice     int64
	ValidationErrors []string
}

// Alerter raises correlated security alerts for critical validation
// findings. The session id is the correlation id, so redeliveries of the
// same tampered session update one alert instead of creating many.
type Alerter struct {
	repo repository.SecurityAlertRepository
}

// NewAlerter creates a security alerter from an injected repository.
func NewAlerter(repo repository.SecurityAlertRepository) *Alerter {
	return &Alerter{repo: repo}
}

type alertEvidence struct {
	SessionID        string   `json:"session_id"`
	TicketTypeID     string   `json:"ticket_type_id"`
	EventID          string   `json:"event_id"`
	Quantity         int64    `json:"quantity"`
	ClaimedPrice     int64    `json:"claimed_price_cents"`
	ValidationErrors []string `json:"validation_errors"`
}

type affectedResource struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// RaiseTampering upserts the tampering alert for the report's session. A
// storage failure is surfaced to operational logging and returned; callers
// treat it like an audit write failure and proceed.
func (a *Alerter) RaiseTampering(report TamperingReport) (*models.SecurityAlert, error) {
	evidence, err := json.Marshal(alertEvidence{
		SessionID:        report.SessionID,
		TicketTypeID:     report.TicketTypeClaim,
		EventID:          report.EventClaim,
		Quantity:         report.Quantity,
		ClaimedPrice:     report.ClaimedPrice,
		ValidationErrors: report.ValidationErrors,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal alert evidence: %w", err)
	}

	indicators := fraudcheck.Indicators(report.ValidationErrors)
	indicatorsJSON, _ := json.Marshal(indicators)

	resources, _ := json.Marshal([]affectedResource{
		{Type: "checkout_session", ID: report.SessionID},
		{Type: "ticket_type", ID: report.TicketTypeClaim},
	})

	alert := &models.SecurityAlert{
		UUID:                  uuid.New().String(),
		AlertType:             models.AlertTypeWebhookMetadataTampering,
		CorrelationID:         report.SessionID,
		Severity:              models.AlertSeverityCritical,
		Title:                 "Webhook metadata tampering detected",
		Description:           fmt.Sprintf("Checkout session %s failed metadata validation with %d finding(s).", report.SessionID, len(report.ValidationErrors)),
		EvidenceJSON:          string(evidence),
		IndicatorsJSON:        string(indicatorsJSON),
		AffectedResourcesJSON: string(resources),
		Status:                models.AlertStatusOpen,
		OccurrenceCount:       1,
		LastSeenAt:            time.Now().UTC(),
	}
	if err := a.repo.Upsert(alert); err != nil {
		log.Errorf("security alert upsert failed for session %s: %v", report.SessionID, err)
		return nil, err
	}
	return alert, nil
}
