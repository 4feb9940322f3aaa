package models

import "time"

const (
	AlertTypeWebhookMetadataTampering = "webhook_metadata_tampering"

	AlertSeverityCritical = "critical"

	AlertStatusOpen     = "open"
	AlertStatusResolved = "resolved"
)

// SecurityAlert is a correlated finding for operator triage. The unique index
// on (alert_type, correlation_id) deduplicates webhook redeliveries of the
// same tampered session: repeat deliveries bump OccurrenceCount and
// LastSeenAt instead of creating a second row.
type SecurityAlert struct {
	ID                    uint      `gorm:"primaryKey" json:"id"`
	UUID                  string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	AlertType             string    `gorm:"type:varchar(64);not null;index:ux_security_alerts_type_correlation,unique,priority:1" json:"alert_type"`
	CorrelationID         string    `gorm:"type:varchar(191);not null;index:ux_security_alerts_type_correlation,unique,priority:2" json:"correlation_id"`
	Severity              string    `gorm:"type:varchar(16);not null;default:'critical'" json:"severity"`
	Title                 string    `gorm:"type:varchar(255);not null" json:"title"`
	Description           string    `gorm:"type:text" json:"description"`
	EvidenceJSON          string    `gorm:"type:longtext;not null" json:"evidence_json"`
	IndicatorsJSON        string    `gorm:"type:text;not null" json:"indicators_json"`
	AffectedResourcesJSON string    `gorm:"type:text" json:"affected_resources_json"`
	Status                string    `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	OccurrenceCount       int64     `gorm:"not null;default:1" json:"occurrence_count"`
	LastSeenAt            time.Time `gorm:"type:timestamp;not null" json:"last_seen_at"`
	CreatedAt             time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
