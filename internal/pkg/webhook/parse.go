package webhook

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var payloadValidator = validator.New()

// ParseCompletionPayload decodes and structurally validates a completion
// payload. This is shape validation only (required fields, sane quantities);
// whether the claims are truthful is the fraud check's job, not this one.
func ParseCompletionPayload(body []byte) (*CompletionPayload, error) {
	var payload CompletionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode completion payload: %w", err)
	}
	if err := payloadValidator.Struct(&payload); err != nil {
		return nil, fmt.Errorf("invalid completion payload: %w", err)
	}
	return &payload, nil
}
