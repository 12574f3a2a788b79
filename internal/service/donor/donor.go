package donor

import (
	"context"
	"strings"
	"time"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/domain"
)

var allowedPlatforms = map[string]struct{}{"android": {}, "ios": {}, "web": {}}

// Service coordinates donor registration, profile updates and device registration.
type Service struct {
	donors           DonorRepository
	devices          DeviceRepository
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a donor Service.
func NewService(donors DonorRepository, devices DeviceRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		donors:           donors,
		devices:          devices,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func (s *Service) validateCreate(d *domain.Donor) error {
	if d == nil {
		return apperr.Invalid
	}
	d.ID = strings.TrimSpace(d.ID)
	if d.ID == "" || strings.TrimSpace(d.Name) == "" {
		return apperr.Invalid
	}
	bt, err := domain.ParseBloodType(string(d.BloodType))
	if err != nil {
		return err
	}
	d.BloodType = bt
	if !d.Location.Valid() {
		return apperr.Invalid
	}
	if d.Availability == "" {
		d.Availability = domain.AvailabilityAvailable
	}
	if !d.Availability.Valid() {
		return apperr.Invalid
	}
	if d.LastDonationAt != nil && d.LastDonationAt.After(s.now()) {
		return apperr.Invalid
	}
	if d.DonationCount < 0 {
		return apperr.Invalid
	}
	d.Verified = false
	return nil
}

func (s *Service) validateUpdate(u *domain.PartialDonorUpdate) error {
	u.ID = strings.TrimSpace(u.ID)
	if u.ID == "" || u.Empty() {
		return apperr.Invalid
	}
	if u.Availability != nil && !u.Availability.Valid() {
		return apperr.Invalid
	}
	if u.Location != nil && !u.Location.Valid() {
		return apperr.Invalid
	}
	if u.LastDonationAt != nil && u.LastDonationAt.After(s.now()) {
		return apperr.Invalid
	}
	return nil
}

// Register creates a donor for an account. New donors start unverified.
func (s *Service) Register(ctx context.Context, d *domain.Donor) error {
	if err := s.validateCreate(d); err != nil {
		return err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.donors.Create(ctx, d)
}

// Get retrieves a donor by its account id.
func (s *Service) Get(ctx context.Context, id string) (*domain.Donor, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.donors.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound
	}
	return d, nil
}

// UpdatePartial applies a partial update and returns the stored donor.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialDonorUpdate) (*domain.Donor, error) {
	if err := s.validateUpdate(&u); err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.donors.UpdatePartial(ctx, u)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.NotFound
	}
	d, err := s.donors.Get(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound
	}
	return d, nil
}

// RegisterDevice adds or refreshes a push token for a user.
func (s *Service) RegisterDevice(ctx context.Context, d *domain.Device) error {
	if d == nil {
		return apperr.Invalid
	}
	d.UserID = strings.TrimSpace(d.UserID)
	d.Token = strings.TrimSpace(d.Token)
	d.Platform = strings.ToLower(strings.TrimSpace(d.Platform))
	if d.UserID == "" || d.Token == "" {
		return apperr.Invalid
	}
	if _, ok := allowedPlatforms[d.Platform]; !ok {
		return apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.devices.Upsert(ctx, d)
}

// RemoveDevice deletes a user's push token.
func (s *Service) RemoveDevice(ctx context.Context, userID, token string) error {
	userID, token = strings.TrimSpace(userID), strings.TrimSpace(token)
	if userID == "" || token == "" {
		return apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.devices.Delete(ctx, userID, token)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound
	}
	return nil
}
