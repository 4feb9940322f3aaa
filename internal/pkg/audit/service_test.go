package audit

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/FestPass/FestPass/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuditRepo struct {
	entries  []*models.AuditLogEntry
	failWith error
}

func (f *fakeAuditRepo) Create(entry *models.AuditLogEntry) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditRepo) ListByTargetID(targetID string) ([]models.AuditLogEntry, error) {
	var out []models.AuditLogEntry
	for _, e := range f.entries {
		if e.TargetID == targetID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func TestRecordValidation_Passed(t *testing.T) {
	repo := &fakeAuditRepo{}
	logger := NewLogger(repo)

	entry, err := logger.RecordValidation("cs_1", true, models.AuditSeverityInfo, ValidationDetails{
		TicketTypeID: "42",
		Quantity:     2,
		PriceCents:   12500,
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)

	assert.Equal(t, models.AuditActionValidationPassed, entry.Action)
	assert.Equal(t, models.AuditSeverityInfo, entry.Severity)
	assert.Equal(t, models.AuditTargetCheckoutSession, entry.TargetType)
	assert.Equal(t, "cs_1", entry.TargetID)

	// A passed entry must still carry an explicit empty error array so the
	// log alone distinguishes "checked clean" from "not recorded".
	var details map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(entry.DetailsJSON), &details))
	errs, ok := details["validation_errors"].([]interface{})
	require.True(t, ok, "validation_errors must be an array, got %v", details["validation_errors"])
	assert.Empty(t, errs)
	assert.Equal(t, "42", details["ticket_type_id"])
}

func TestRecordValidation_Failed(t *testing.T) {
	repo := &fakeAuditRepo{}
	logger := NewLogger(repo)

	entry, err := logger.RecordValidation("cs_2", false, models.AuditSeverityCritical, ValidationDetails{
		TicketTypeID:     "42",
		Quantity:         1,
		PriceCents:       1,
		ValidationErrors: []string{"price mismatch for ticket type 42: claimed 1, expected 12500"},
	})
	require.NoError(t, err)

	assert.Equal(t, models.AuditActionValidationFailed, entry.Action)
	assert.Equal(t, models.AuditSeverityCritical, entry.Severity)
	assert.Contains(t, entry.DetailsJSON, "price mismatch")
}

func TestRecordValidation_StorageFailureIsReturned(t *testing.T) {
	repo := &fakeAuditRepo{failWith: errors.New("lock wait timeout")}
	logger := NewLogger(repo)

	_, err := logger.RecordValidation("cs_3", true, models.AuditSeverityInfo, ValidationDetails{})
	assert.Error(t, err)
}
