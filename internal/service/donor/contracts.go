//go:generate mockgen -source=contracts.go -destination=donor_mocks_test.go -package=donor_test

package donor

import (
	"context"

	"oasis-blood-platform/internal/domain"
)

// DonorRepository defines donor storage operations required by the business layer.
type DonorRepository interface {
	Create(ctx context.Context, d *domain.Donor) error
	Get(ctx context.Context, id string) (*domain.Donor, error)
	UpdatePartial(ctx context.Context, u domain.PartialDonorUpdate) (bool, error)
}

// DeviceRepository defines push device storage operations.
type DeviceRepository interface {
	Upsert(ctx context.Context, d *domain.Device) error
	Delete(ctx context.Context, userID, token string) (bool, error)
}
