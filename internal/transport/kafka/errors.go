package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"oasis-blood-platform/internal/domain"
)

// ErrEmptyRequestID is returned for events without a request id.
var ErrEmptyRequestID = errors.New("empty requestId")

// PermanentError is a permanent error.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent error"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent returns a permanent error.
func Permanent(err error) error {
	return PermanentError{Err: err}
}

// IsPermanent reports whether err must not be retried.
func IsPermanent(err error) bool {
	var pe PermanentError
	return errors.As(err, &pe)
}

// Decode parses a request-created payload. Malformed payloads yield a PermanentError.
func Decode(raw []byte) (domain.RequestCreated, error) {
	var dto RequestCreatedDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.RequestCreated{}, Permanent(fmt.Errorf("decode request created: %w", err))
	}
	if strings.TrimSpace(dto.RequestID) == "" {
		return domain.RequestCreated{}, Permanent(ErrEmptyRequestID)
	}
	return ToDomain(dto), nil
}
