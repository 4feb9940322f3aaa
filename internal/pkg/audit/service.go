package audit

import (
	"encoding/json"
	"fmt"

	"github.com/FestPass/FestPass/app/models"
	"github.com/FestPass/FestPass/app/repository"
	"github.com/gofiber/fiber/v2/log"
)

// ValidationDetails is the forensic context stored with every audit entry.
// Together with the action and severity it is sufficient to reconstruct why
// a decision was made without re-running validation.
type ValidationDetails struct {
	TicketTypeID     string   `json:"ticket_type_id"`
	Quantity         int64    `json:"quantity"`
	PriceCents       int64    `json:"price_cents"`
	ValidationErrors []string `json:"validation_errors"`
}

// Logger appends one immutable audit entry per validation attempt. Passed and
// failed attempts are both recorded: a trail with no failures cannot prove
// absence of tampering.
type Logger struct {
	repo repository.AuditLogRepository
}

// NewLogger creates an audit logger from an injected repository.
func NewLogger(repo repository.AuditLogRepository) *Logger {
	return &Logger{repo: repo}
}

// RecordValidation writes the audit entry for one line item's validation
// attempt. A storage failure here is surfaced to operational logging and
// returned, but callers must not let it roll back the ticket write.
func (l *Logger) RecordValidation(sessionID string, passed bool, severity string, details ValidationDetails) (*models.AuditLogEntry, error) {
	if details.ValidationErrors == nil {
		details.ValidationErrors = []string{}
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal audit details: %w", err)
	}

	action := models.AuditActionValidationPassed
	if !passed {
		action = models.AuditActionValidationFailed
	}

	entry := &models.AuditLogEntry{
		Action:      action,
		Severity:    severity,
		TargetType:  models.AuditTargetCheckoutSession,
		TargetID:    sessionID,
		DetailsJSON: string(detailsJSON),
	}
	if err := l.repo.Create(entry); err != nil {
		// Audit-trail loss is itself security relevant; make it loud even
		// though the caller proceeds.
		log.Errorf("audit log write failed for session %s: %v", sessionID, err)
		return nil, err
	}
	return entry, nil
}
