package repository

import (
	"time"

	"github.com/FestPass/FestPass/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// securityAlertRepository implements SecurityAlertRepository over GORM.
type securityAlertRepository struct {
	db *gorm.DB
}

// NewSecurityAlertRepository creates a new security alert repository instance.
func NewSecurityAlertRepository(db *gorm.DB) SecurityAlertRepository {
	return &securityAlertRepository{db: db}
}

// Upsert inserts the alert or, when one already exists for the same
// (alert_type, correlation_id), bumps its occurrence count and last-seen
// timestamp. Redelivered tampered sessions therefore never flood the store.
func (r *securityAlertRepository) Upsert(alert *models.SecurityAlert) error {
	if alert.LastSeenAt.IsZero() {
		alert.LastSeenAt = time.Now()
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "alert_type"},
			{Name: "correlation_id"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"occurrence_count": gorm.Expr("occurrence_count + 1"),
			"last_seen_at":     alert.LastSeenAt,
			"updated_at":       time.Now(),
		}),
	}).Create(alert).Error; err != nil {
		return err
	}

	// Ensure ID and counters reflect the stored row after upsert.
	return r.db.Where("alert_type = ? AND correlation_id = ?", alert.AlertType, alert.CorrelationID).
		First(alert).Error
}

func (r *securityAlertRepository) GetByCorrelationID(alertType, correlationID string) (*models.SecurityAlert, error) {
	var alert models.SecurityAlert
	err := r.db.Where("alert_type = ? AND correlation_id = ?", alertType, correlationID).
		First(&alert).Error
	if err != nil {
		return nil, err
	}
	return &alert, nil
}
