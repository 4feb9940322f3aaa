package models

import "time"

const (
	AuditActionValidationPassed = "WEBHOOK_METADATA_VALIDATION_PASSED"
	AuditActionValidationFailed = "WEBHOOK_METADATA_VALIDATION_FAILED"

	AuditSeverityInfo     = "info"
	AuditSeverityCritical = "critical"

	AuditTargetCheckoutSession = "checkout_session"
)

// AuditLogEntry is the append-only trail of every validation attempt, pass or
// fail. Rows are written once and never updated or deleted by the pipeline;
// DetailsJSON holds enough context (ticket type, quantity, price, validation
// errors) to reconstruct the decision from the log alone.
type AuditLogEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Action      string    `gorm:"type:varchar(64);not null;index" json:"action"`
	Severity    string    `gorm:"type:varchar(16);not null;default:'info';index" json:"severity"`
	TargetType  string    `gorm:"type:varchar(40);not null" json:"target_type"`
	TargetID    string    `gorm:"type:varchar(191);not null;index" json:"target_id"`
	DetailsJSON string    `gorm:"type:longtext;not null" json:"details_json"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
