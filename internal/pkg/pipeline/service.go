package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/FestPass/FestPass/app/models"
	"github.com/FestPass/FestPass/app/repository"
	"github.com/FestPass/FestPass/internal/pkg/alerting"
	"github.com/FestPass/FestPass/internal/pkg/audit"
	"github.com/FestPass/FestPass/internal/pkg/fraudcheck"
	"github.com/FestPass/FestPass/internal/pkg/webhook"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service orchestrates the webhook adjudication pipeline: catalog resolution,
// metadata validation, capacity reservation, durable ticket/transaction
// persistence, audit trail, and security alerting. It is the idempotency
// boundary for redelivered completion events, keyed by the processor's
// checkout session id.
type Service struct {
	catalog repository.CatalogRepository
	txns    repository.TransactionRepository
	uow     repository.UnitOfWork
	auditor *audit.Logger
	alerter *alerting.Alerter
}

// NewService wires the pipeline from its collaborators.
func NewService(repos *repository.Repositories, uow repository.UnitOfWork) *Service {
	return &Service{
		catalog: repos.Catalog,
		txns:    repos.Transaction,
		uow:     uow,
		auditor: audit.NewLogger(repos.AuditLog),
		alerter: alerting.NewAlerter(repos.SecurityAlert),
	}
}

// linePlan is the per-line working state carried from the read phase into the
// write phase.
type linePlan struct {
	item       webhook.LineItem
	result     fraudcheck.ValidationResult
	rejected   bool
	ticketType *models.TicketType
	ticket     *models.Ticket
}

// ProcessCompletion adjudicates one completion payload. Line items are
// processed independently: a hard rejection on one line never blocks the
// others. All database writes for the payload happen inside one unit of work,
// so a transient storage failure leaves no partial state and the caller can
// simply redeliver. Audit entries and alerts are written after commit; their
// failure is logged but never undoes an issued or flagged ticket.
func (s *Service) ProcessCompletion(ctx context.Context, payload *webhook.CompletionPayload) (*Outcome, error) {
	_ = ctx
	if payload == nil || payload.SessionID == "" {
		return nil, errors.New("completion payload with session id is required")
	}

	// Fast replay path: an existing transaction row means this session was
	// fully processed before. Return it unchanged, with no side effects.
	if existing, err := s.txns.GetBySessionID(payload.SessionID); err == nil {
		return &Outcome{Transaction: existing, Replayed: true}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup session %s: %w", payload.SessionID, err)
	}

	// Read phase: resolve each line item against the catalog and run the pure
	// validation checks. No writes happen here; capacity is re-checked at
	// commit time because these reads may be stale by then.
	plans := make([]linePlan, 0, len(payload.LineItems))
	for _, item := range payload.LineItems {
		plan, err := s.resolveAndValidate(payload, item)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	// Write phase: one durable unit for the transaction row, capacity
	// increments, and ticket rows.
	outcome := &Outcome{}
	err := s.uow.Execute(func(repos *repository.Repositories) error {
		created, stored, err := repos.Transaction.CreateIfNotExists(s.buildTransaction(payload, plans))
		if err != nil {
			return err
		}
		outcome.Transaction = stored
		if !created {
			// A concurrent delivery won the insert race while we were
			// validating. Fall back to its result.
			outcome.Replayed = true
			return nil
		}

		for i := range plans {
			if err := s.persistLine(repos.Transaction, stored, payload, &plans[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if outcome.Replayed {
		return outcome, nil
	}

	// Side-channel phase: always audit, alert on critical findings. Failures
	// here are operational incidents, not reasons to undo the business
	// outcome.
	for i := range plans {
		s.recordLine(payload, &plans[i])
		outcome.Lines = append(outcome.Lines, LineOutcome{
			Item:     plans[i].item,
			Result:   plans[i].result,
			Rejected: plans[i].rejected,
			Ticket:   plans[i].ticket,
		})
	}
	return outcome, nil
}

// resolveAndValidate runs the read-side of one line item. An unresolvable
// ticket type claim (non-numeric or absent from the catalog) is the one hard
// rejection: without a catalog entry there is no price or capacity to check
// against, so no ticket can exist.
func (s *Service) resolveAndValidate(payload *webhook.CompletionPayload, item webhook.LineItem) (linePlan, error) {
	plan := linePlan{item: item}

	claimed := item.Metadata.TicketTypeID
	id, convErr := strconv.ParseUint(claimed, 10, 32)
	if convErr != nil {
		plan.rejected = true
		plan.result = rejectionResult(payload.SessionID, claimed)
		return plan, nil
	}

	tt, event, err := s.catalog.GetTicketTypeWithEvent(uint(id))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		plan.rejected = true
		plan.result = rejectionResult(payload.SessionID, claimed)
		return plan, nil
	}
	if err != nil {
		return plan, fmt.Errorf("resolve ticket type %s: %w", claimed, err)
	}

	plan.ticketType = tt
	plan.result = fraudcheck.Validate(payload, item, tt, event)
	return plan, nil
}

// persistLine writes one line item's ticket within the enclosing unit of
// work. Capacity is reserved only for lines that validated clean; a line that
// loses the commit-time capacity race is demoted to flagged with an appended
// capacity error. Flagged and rejected lines never consume capacity.
func (s *Service) persistLine(txns repository.TransactionRepository, stored *models.TicketTransaction, payload *webhook.CompletionPayload, plan *linePlan) error {
	if plan.rejected {
		return nil
	}

	if plan.result.Passed {
		reserved, err := txns.ReserveCapacity(plan.ticketType.ID, plan.item.Quantity)
		if err != nil {
			return fmt.Errorf("reserve %d of ticket type %d: %w", plan.item.Quantity, plan.ticketType.ID, err)
		}
		if !reserved {
			plan.result.Fail(fraudcheck.ReservationFailedMessage(plan.item.Quantity, plan.ticketType.ID))
		}
	}

	status := models.TicketStatusValid
	if !plan.result.Passed {
		status = models.TicketStatusFlaggedForReview
	}
	ticket := &models.Ticket{
		UUID:          uuid.New().String(),
		TransactionID: stored.ID,
		TicketTypeID:  plan.ticketType.ID,
		Quantity:      plan.item.Quantity,
		PriceCents:    plan.item.UnitAmountCents,
		AttendeeName:  payload.CustomerName,
		AttendeeEmail: payload.CustomerEmail,
		Status:        status,
		MetadataJSON:  plan.result.ToJSON(),
	}
	if err := txns.CreateTicket(ticket); err != nil {
		return fmt.Errorf("persist ticket for session %s: %w", payload.SessionID, err)
	}
	plan.ticket = ticket
	return nil
}

// recordLine writes the audit entry for one line item and, for critical
// findings, the correlated security alert.
func (s *Service) recordLine(payload *webhook.CompletionPayload, plan *linePlan) {
	details := audit.ValidationDetails{
		TicketTypeID:     plan.item.Metadata.TicketTypeID,
		Quantity:         plan.item.Quantity,
		PriceCents:       plan.item.UnitAmountCents,
		ValidationErrors: plan.result.Errors,
	}
	if _, err := s.auditor.RecordValidation(payload.SessionID, plan.result.Passed, plan.result.Severity(), details); err != nil {
		log.Warnf("pipeline: audit entry lost for session %s", payload.SessionID)
	}

	if plan.result.Passed {
		return
	}
	_, err := s.alerter.RaiseTampering(alerting.TamperingReport{
		SessionID:        payload.SessionID,
		TicketTypeClaim:  plan.item.Metadata.TicketTypeID,
		EventClaim:       plan.item.Metadata.EventID,
		Quantity:         plan.item.Quantity,
		ClaimedPrice:     plan.item.UnitAmountCents,
		ValidationErrors: plan.result.Errors,
	})
	if err != nil {
		log.Warnf("pipeline: security alert lost for session %s", payload.SessionID)
	}
}

func (s *Service) buildTransaction(payload *webhook.CompletionPayload, plans []linePlan) *models.TicketTransaction {
	var eventID uint
	if id, err := strconv.ParseUint(payload.Metadata.EventID, 10, 32); err == nil {
		eventID = uint(id)
	}

	// A payload whose every line item was hard-rejected still gets its
	// transaction row (the idempotency key must exist so redeliveries replay
	// instead of re-adjudicating), but marked rejected since it owns no
	// tickets.
	status := models.TransactionStatusCompleted
	allRejected := len(plans) > 0
	for i := range plans {
		if !plans[i].rejected {
			allRejected = false
			break
		}
	}
	if allRejected {
		status = models.TransactionStatusRejected
	}

	return &models.TicketTransaction{
		SessionID:        payload.SessionID,
		EventID:          eventID,
		CustomerEmail:    payload.CustomerEmail,
		CustomerName:     payload.CustomerName,
		AmountTotalCents: payload.AmountTotalCents,
		Currency:         payload.Currency,
		TestMode:         payload.Metadata.TestMode,
		Status:           status,
	}
}

func rejectionResult(sessionID, claimedID string) fraudcheck.ValidationResult {
	result := fraudcheck.ValidationResult{
		Passed:      true,
		Errors:      []string{},
		ValidatedAt: time.Now().UTC(),
		SessionID:   sessionID,
	}
	result.Fail(fraudcheck.UnknownTicketTypeMessage(claimedID))
	return result
}
