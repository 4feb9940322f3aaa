package models

import "time"

const (
	EventStatusDraft     = "draft"
	EventStatusActive    = "active"
	EventStatusCancelled = "cancelled"
	EventStatusCompleted = "completed"
)

// Event is an authoritative festival/event record. Only active events accept
// new ticket sales; IsTest marks events used for synthetic checkout flows.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"slug"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Status    string    `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	IsTest    bool      `gorm:"default:false" json:"is_test"`
	Venue     string    `gorm:"type:varchar(255)" json:"venue"`
	StartsAt  time.Time `gorm:"type:timestamp;not null" json:"starts_at"`
	EndsAt    time.Time `gorm:"type:timestamp;not null" json:"ends_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsActive reports whether the event currently accepts ticket sales.
func (e *Event) IsActive() bool {
	return e.Status == EventStatusActive
}
