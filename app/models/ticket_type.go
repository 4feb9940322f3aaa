package models

import "time"

// TicketType is the authoritative catalog entry for a sellable ticket class.
// PriceCents is the only price the system trusts; whatever a checkout payload
// claims is validated against it. MaxQuantity nil means unlimited capacity.
//
// Invariant: sold_count <= max_quantity whenever max_quantity is set. The
// guarded increment in the transaction repository is the only writer of
// sold_count, so the invariant holds under concurrent completions.
type TicketType struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EventID     uint      `gorm:"not null;index" json:"event_id"`
	Event       *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Code        string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"code"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	Currency    string    `gorm:"type:varchar(3);not null;default:'usd'" json:"currency"`
	MaxQuantity *int64    `gorm:"default:null" json:"max_quantity,omitempty"`
	SoldCount   int64     `gorm:"not null;default:0" json:"sold_count"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Remaining returns the number of unsold units, or -1 for unlimited capacity.
func (t *TicketType) Remaining() int64 {
	if t.MaxQuantity == nil {
		return -1
	}
	return *t.MaxQuantity - t.SoldCount
}
