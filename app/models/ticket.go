package models

import "time"

const (
	TicketStatusValid            = "valid"
	TicketStatusFlaggedForReview = "flagged_for_review"
	TicketStatusCancelled        = "cancelled"
)

// Ticket is one issued (or flagged) admission unit. MetadataJSON carries the
// serialized validation result that produced the ticket, so an auditor can
// replay the decision without re-running validation. Status transitions after
// issuance (flagged_for_review -> valid, valid -> cancelled) happen in the
// admin review workflow, never here.
type Ticket struct {
	ID            uint               `gorm:"primaryKey" json:"id"`
	UUID          string             `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	TransactionID uint               `gorm:"not null;index" json:"transaction_id"`
	Transaction   *TicketTransaction `gorm:"foreignKey:TransactionID" json:"transaction,omitempty"`
	TicketTypeID  uint               `gorm:"not null;index" json:"ticket_type_id"`
	TicketType    *TicketType        `gorm:"foreignKey:TicketTypeID" json:"ticket_type,omitempty"`
	Quantity      int64              `gorm:"not null;default:1" json:"quantity"`
	PriceCents    int64              `gorm:"not null" json:"price_cents"`
	AttendeeName  string             `gorm:"type:varchar(255)" json:"attendee_name"`
	AttendeeEmail string             `gorm:"type:varchar(255)" json:"attendee_email"`
	Status        string             `gorm:"type:varchar(32);not null;default:'valid';index" json:"status"`
	MetadataJSON  string             `gorm:"type:longtext" json:"metadata_json"`
	CreatedAt     time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsFlagged reports whether the ticket awaits human review.
func (t *Ticket) IsFlagged() bool {
	return t.Status == TicketStatusFlaggedForReview
}
