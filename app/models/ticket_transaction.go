package models

import "time"

const (
	TransactionStatusCompleted = "completed"
	TransactionStatusRejected  = "rejected"
)

// TicketTransaction is the durable record of one processed checkout
// completion. SessionID carries the payment processor's checkout session
// identifier and doubles as the idempotency key: the unique index lets a
// second delivery of the same session detect the conflict and fall back to
// the already-stored row.
type TicketTransaction struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	SessionID        string    `gorm:"type:varchar(191);not null;uniqueIndex:ux_ticket_transactions_session" json:"session_id"`
	EventID          uint      `gorm:"index" json:"event_id"`
	CustomerEmail    string    `gorm:"type:varchar(255);not null" json:"customer_email"`
	CustomerName     string    `gorm:"type:varchar(255)" json:"customer_name"`
	AmountTotalCents int64     `gorm:"not null" json:"amount_total_cents"`
	Currency         string    `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	TestMode         bool      `gorm:"default:false" json:"test_mode"`
	Status           string    `gorm:"type:varchar(20);not null;default:'completed'" json:"status"`
	Tickets          []Ticket  `gorm:"foreignKey:TransactionID" json:"tickets,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
