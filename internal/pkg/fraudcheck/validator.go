package fraudcheck

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/FestPass/FestPass/app/models"
	"github.com/FestPass/FestPass/internal/pkg/webhook"
)

// Indicator tags attached to security alerts so triage can filter by attack
// class.
const (
	IndicatorUnknownTicketType = "unknown_ticket_type"
	IndicatorPriceManipulation = "price_manipulation"
	IndicatorEventMismatch     = "event_mismatch"
	IndicatorInactiveEvent     = "inactive_event_purchase"
	IndicatorCapacityExceeded  = "capacity_exceeded"
)

// Validate checks one line item's claims against the authoritative catalog
// snapshot. It is a pure decision function: no I/O, no side effects. Checks
// run in a fixed order (price, event match, event active, capacity) and every
// failing check contributes a message, so operators see the full tamper
// surface instead of just the first hit.
//
// The existence check is not here: an unknown ticket type cannot be priced or
// capacity-checked at all, so the pipeline rejects it before validation.
func Validate(payload *webhook.CompletionPayload, item webhook.LineItem, tt *models.TicketType, event *models.Event) ValidationResult {
	result := ValidationResult{
		Passed:      true,
		Errors:      []string{},
		ValidatedAt: time.Now().UTC(),
		SessionID:   payload.SessionID,
	}

	// Price check. Test events may carry synthetic prices, so the check is
	// skipped only when the payload runs in test mode AND the owning event is
	// a designated test event. The exemption is deliberately this narrow: the
	// remaining checks still apply to test-mode payloads.
	if !(payload.Metadata.TestMode && event.IsTest) {
		if item.UnitAmountCents != tt.PriceCents {
			result.Fail(fmt.Sprintf(
				"price mismatch for ticket type %d: claimed %d, expected %d",
				tt.ID, item.UnitAmountCents, tt.PriceCents))
		}
	}

	// Event match. Both the line item's embedded event id and the payload's
	// top-level claim must name the catalog's owning event. An absent claim
	// fails closed: it is indistinguishable from a stripped identifier.
	owningID := strconv.FormatUint(uint64(event.ID), 10)
	if item.Metadata.EventID != owningID || payload.Metadata.EventID != owningID {
		claimed := item.Metadata.EventID
		if claimed == owningID {
			claimed = payload.Metadata.EventID
		}
		result.Fail(fmt.Sprintf(
			"event %q mismatch: ticket type %d belongs to event %d",
			claimed, tt.ID, event.ID))
	}

	// Event active.
	if !event.IsActive() {
		result.Fail(fmt.Sprintf(
			"event %d not active: status is %q", event.ID, event.Status))
	}

	// Capacity, against the read snapshot. Re-checked atomically at commit
	// time by the reservation; this pass exists so tampering is visible even
	// when the write never happens.
	if tt.MaxQuantity != nil && tt.SoldCount+item.Quantity > *tt.MaxQuantity {
		available := *tt.MaxQuantity - tt.SoldCount
		if available < 0 {
			available = 0
		}
		result.Fail(fmt.Sprintf(
			"quantity %d exceeds available capacity: %d of %d remaining",
			item.Quantity, available, *tt.MaxQuantity))
	}

	return result
}

// UnknownTicketTypeMessage is the hard-rejection message for line items whose
// claimed ticket type has no catalog entry.
func UnknownTicketTypeMessage(claimedID string) string {
	return fmt.Sprintf("unknown ticket type: %q not found in catalog", claimedID)
}

// ReservationFailedMessage is appended when the commit-time reservation loses
// the race for remaining capacity after validation already passed.
func ReservationFailedMessage(quantity int64, ticketTypeID uint) string {
	return fmt.Sprintf(
		"quantity %d no longer available for ticket type %d at reservation time",
		quantity, ticketTypeID)
}

// Indicators derives alert indicator tags from validation error messages. The
// message prefixes are owned by this package, so matching on them is stable.
func Indicators(errs []string) []string {
	seen := make(map[string]struct{}, len(errs))
	indicators := make([]string, 0, len(errs))
	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		indicators = append(indicators, tag)
	}

	for _, e := range errs {
		switch {
		case strings.HasPrefix(e, "unknown ticket type"):
			add(IndicatorUnknownTicketType)
		case strings.HasPrefix(e, "price mismatch"):
			add(IndicatorPriceManipulation)
		case strings.HasPrefix(e, "event") && strings.Contains(e, "mismatch"):
			add(IndicatorEventMismatch)
		case strings.Contains(e, "not active"):
			add(IndicatorInactiveEvent)
		case strings.HasPrefix(e, "quantity"):
			add(IndicatorCapacityExceeded)
		}
	}
	return indicators
}
