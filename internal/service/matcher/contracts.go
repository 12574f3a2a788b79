//go:generate mockgen -source=contracts.go -destination=matcher_mocks_test.go -package=matcher_test

package matcher

import (
	"context"

	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/matching"
	"oasis-blood-platform/internal/notify"
)

// DonorSource answers the coarse range query of the geospatial filter.
type DonorSource interface {
	CandidatesInBox(ctx context.Context, q matching.DonorQuery) ([]domain.Donor, error)
}

// TokenResolver returns the active push tokens registered for a user.
type TokenResolver interface {
	TokensByUser(ctx context.Context, userID string) ([]string, error)
}

// Notifier sends one notification to a batch of tokens.
type Notifier interface {
	Send(ctx context.Context, tokens []string, msg notify.Message) (notify.SendResult, error)
}

// RunClaimer records that a request has been matched. Claim returns false when
// the request was already claimed by an earlier run.
type RunClaimer interface {
	Claim(ctx context.Context, requestID string) (bool, error)
}
