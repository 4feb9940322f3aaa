package fraudcheck

import (
	"encoding/json"
	"time"

	"github.com/FestPass/FestPass/app/models"
)

// ValidationResult is the outcome of checking one line item against the
// catalog. It is a value, not an error: flagged purchases are an expected
// business outcome. The result is serialized verbatim into the ticket's
// metadata so auditors can replay the decision later.
type ValidationResult struct {
	Passed      bool      `json:"passed"`
	Errors      []string  `json:"validation_errors"`
	ValidatedAt time.Time `json:"validated_at"`
	SessionID   string    `json:"session_id"`
}

// Fail records a failed check. Order of calls fixes the order of messages.
func (r *ValidationResult) Fail(message string) {
	r.Passed = false
	r.Errors = append(r.Errors, message)
}

// Severity maps the result onto audit severity. There is no intermediate
// level: any failed check is critical, a clean pass is info.
func (r *ValidationResult) Severity() string {
	if r.Passed {
		return models.AuditSeverityInfo
	}
	return models.AuditSeverityCritical
}

// ToJSON serializes the result for ticket metadata. Marshalling a struct of
// plain fields cannot fail, so the error is swallowed deliberately.
func (r *ValidationResult) ToJSON() string {
	b, _ := json.Marshal(r)
	return string(b)
}
