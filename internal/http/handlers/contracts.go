package handlers

import (
	"context"

	"oasis-blood-platform/internal/domain"
)

type donorUsecase interface {
	Register(ctx context.Context, d *domain.Donor) error
	Get(ctx context.Context, id string) (*domain.Donor, error)
	UpdatePartial(ctx context.Context, u domain.PartialDonorUpdate) (*domain.Donor, error)
	RegisterDevice(ctx context.Context, d *domain.Device) error
	RemoveDevice(ctx context.Context, userID, token string) error
}

type requestUsecase interface {
	Create(ctx context.Context, r *domain.BloodRequest) error
	Get(ctx context.Context, id string) (*domain.BloodRequest, error)
	Close(ctx context.Context, id string) (*domain.BloodRequest, error)
	Fulfill(ctx context.Context, id string) (*domain.BloodRequest, error)
}
