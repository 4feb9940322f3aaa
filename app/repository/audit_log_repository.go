package repository

import (
	"github.com/FestPass/FestPass/app/models"
	"gorm.io/gorm"
)

// auditLogRepository implements AuditLogRepository over GORM. The interface
// is append-only; there is no code path that mutates an existing entry.
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance.
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(entry *models.AuditLogEntry) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepository) ListByTargetID(targetID string) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	err := r.db.Where("target_id = ?", targetID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	return entries, err
}
