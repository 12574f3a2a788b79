package request

import (
	"context"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/logx"
)

// Service stores blood requests and announces new ones to the matching worker.
type Service struct {
	repo             Repository
	publisher        Publisher
	logger           logx.Logger
	operationTimeout time.Duration
	newID            func() (string, error)
}

// NewService creates a request Service.
func NewService(repo Repository, publisher Publisher, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		repo:             repo,
		publisher:        publisher,
		logger:           logger,
		operationTimeout: timeout,
		newID:            func() (string, error) { return gonanoid.New() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

func validateCreate(r *domain.BloodRequest) error {
	if r == nil {
		return apperr.Invalid
	}
	r.RequesterID = strings.TrimSpace(r.RequesterID)
	r.HospitalName = strings.TrimSpace(r.HospitalName)
	r.City = strings.TrimSpace(r.City)
	if r.RequesterID == "" || r.HospitalName == "" {
		return apperr.Invalid
	}
	bt, err := domain.ParseBloodType(string(r.BloodType))
	if err != nil {
		return err
	}
	r.BloodType = bt
	if !r.Location.Valid() {
		return apperr.Invalid
	}
	return nil
}

// Create stores a pending request and publishes its creation event. A publish
// failure is logged; the stored request is still returned.
func (s *Service) Create(ctx context.Context, r *domain.BloodRequest) error {
	if err := validateCreate(r); err != nil {
		return err
	}
	id, err := s.newID()
	if err != nil {
		return err
	}
	r.ID = id
	r.Status = domain.RequestStatusPending

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.repo.Create(ctx, r); err != nil {
		return err
	}

	if err := s.publisher.PublishRequestCreated(ctx, domain.EventFromRequest(r)); err != nil {
		s.logger.Error("publish request created",
			logx.String("event", "request_publish_failed"),
			logx.String("request_id", r.ID),
			logx.Err(err),
		)
		return nil
	}

	s.logger.Info("blood request created",
		logx.String("event", "request_created"),
		logx.String("request_id", r.ID),
		logx.String("blood_type", string(r.BloodType)),
		logx.Bool("emergency", r.IsEmergency),
	)
	return nil
}

// Get retrieves a request by id.
func (s *Service) Get(ctx context.Context, id string) (*domain.BloodRequest, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	r, err := s.repo.Get(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound
	}
	return r, nil
}

// Close marks a pending request closed.
func (s *Service) Close(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, domain.RequestStatusClosed)
}

// Fulfill marks a pending request fulfilled.
func (s *Service) Fulfill(ctx context.Context, id string) (*domain.BloodRequest, error) {
	return s.transition(ctx, id, domain.RequestStatusFulfilled)
}

func (s *Service) transition(ctx context.Context, id string, to domain.RequestStatus) (*domain.BloodRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ok, err := s.repo.TransitionStatus(ctx, id, domain.RequestStatusPending, to)
	if err != nil {
		return nil, err
	}
	r, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, apperr.NotFound
	}
	if !ok {
		return nil, apperr.Conflict
	}
	return r, nil
}
