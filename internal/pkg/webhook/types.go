package webhook

// CompletionPayload is the payment-completion record delivered by the
// processor once a checkout succeeds. Everything in here is untrusted: the
// client controls checkout metadata before it ever reaches the processor, so
// the embedded identifiers and amounts are claims to be verified against the
// catalog, never facts. The payload itself is transient and never persisted
// verbatim.
type CompletionPayload struct {
	SessionID        string          `json:"session_id" validate:"required"`
	AmountTotalCents int64           `json:"amount_total" validate:"gte=0"`
	Currency         string          `json:"currency" validate:"required,len=3"`
	CustomerEmail    string          `json:"customer_email" validate:"required,email"`
	CustomerName     string          `json:"customer_name"`
	Metadata         PayloadMetadata `json:"metadata"`
	LineItems        []LineItem      `json:"line_items" validate:"required,min=1,dive"`
}

// PayloadMetadata is the checkout-level metadata bag. EventID is the
// top-level claimed event; TestMode marks synthetic checkout flows.
type PayloadMetadata struct {
	EventID  string `json:"event_id"`
	TestMode bool   `json:"test_mode"`
}

// LineItem is one purchased position. The embedded ItemMetadata is the
// attacker-controllable surface, distinct from the catalog's authoritative
// values.
type LineItem struct {
	Quantity        int64        `json:"quantity" validate:"required,min=1"`
	UnitAmountCents int64        `json:"unit_amount" validate:"gte=0"`
	Description     string       `json:"description"`
	Metadata        ItemMetadata `json:"metadata"`
}

// ItemMetadata carries the client-asserted product claims. Identifiers are
// kept as raw strings: a malformed identifier is one more shape of tampering
// and must flow into validation rather than fail parsing.
type ItemMetadata struct {
	TicketTypeID string `json:"ticket_type_id"`
	EventID      string `json:"event_id"`
	EventDate    string `json:"event_date"`
}
