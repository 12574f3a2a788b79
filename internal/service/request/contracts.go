//go:generate mockgen -source=contracts.go -destination=request_mocks_test.go -package=request_test

package request

import (
	"context"

	"oasis-blood-platform/internal/domain"
)

// Repository defines blood request storage operations.
type Repository interface {
	Create(ctx context.Context, r *domain.BloodRequest) error
	Get(ctx context.Context, id string) (*domain.BloodRequest, error)
	TransitionStatus(ctx context.Context, id string, from, to domain.RequestStatus) (bool, error)
}

// Publisher emits the request-created event.
type Publisher interface {
	PublishRequestCreated(ctx context.Context, ev domain.RequestCreated) error
}
