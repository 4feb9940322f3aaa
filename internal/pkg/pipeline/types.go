package pipeline

import (
	"github.com/FestPass/FestPass/app/models"
	"github.com/FestPass/FestPass/internal/pkg/fraudcheck"
	"github.com/FestPass/FestPass/internal/pkg/webhook"
)

// LineOutcome is the adjudication of one line item. Rejected means the hard
// path: the claimed ticket type has no catalog entry, so no ticket exists and
// only the audit entry and alert record the attempt.
type LineOutcome struct {
	Item     webhook.LineItem
	Result   fraudcheck.ValidationResult
	Rejected bool
	Ticket   *models.Ticket
}

// Outcome is the result of processing one completion payload. Replayed marks
// a redelivery of an already-processed session: Transaction then carries the
// previously stored rows and Lines is empty because nothing was re-adjudicated.
type Outcome struct {
	Transaction *models.TicketTransaction
	Lines       []LineOutcome
	Replayed    bool
}

// FlaggedCount returns how many persisted tickets await human review.
func (o *Outcome) FlaggedCount() int {
	n := 0
	for _, line := range o.Lines {
		if line.Ticket != nil && line.Ticket.IsFlagged() {
			n++
		}
	}
	return n
}

// RejectedCount returns how many line items were hard-rejected.
func (o *Outcome) RejectedCount() int {
	n := 0
	for _, line := range o.Lines {
		if line.Rejected {
			n++
		}
	}
	return n
}
