package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"

	"oasis-blood-platform/internal/apperr"
	"oasis-blood-platform/internal/domain"
)

const requestsTable = "blood_requests"

type requestRow struct {
	ID           string    `db:"id"`
	RequesterID  string    `db:"requester_id"`
	BloodType    string    `db:"blood_type"`
	Latitude     float64   `db:"latitude"`
	Longitude    float64   `db:"longitude"`
	City         string    `db:"city"`
	HospitalName string    `db:"hospital_name"`
	IsEmergency  bool      `db:"is_emergency"`
	Status       string    `db:"status"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

var requestColumns = columnsOf(requestRow{})

func (r requestRow) toDomain() domain.BloodRequest {
	return domain.BloodRequest{
		ID:           r.ID,
		RequesterID:  r.RequesterID,
		BloodType:    domain.BloodType(r.BloodType),
		Location:     domain.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
		City:         r.City,
		HospitalName: r.HospitalName,
		IsEmergency:  r.IsEmergency,
		Status:       domain.RequestStatus(r.Status),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// RequestRepo stores blood requests.
type RequestRepo struct{ db *pgxpool.Pool }

// NewRequestRepo creates a new RequestRepo.
func NewRequestRepo(db *pgxpool.Pool) *RequestRepo { return &RequestRepo{db: db} }

// Create inserts a request and fills its timestamps.
func (r *RequestRepo) Create(ctx context.Context, req *domain.BloodRequest) error {
	query, args, err := psql().
		Insert(requestsTable).
		Columns("id", "requester_id", "blood_type", "latitude", "longitude", "city",
			"hospital_name", "is_emergency", "status").
		Values(req.ID, req.RequesterID, string(req.BloodType), req.Location.Latitude, req.Location.Longitude,
			req.City, req.HospitalName, req.IsEmergency, string(req.Status)).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create request query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&req.CreatedAt, &req.UpdatedAt); err != nil {
		if IsDuplicate(err) {
			return apperr.Conflict
		}
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

// Get returns a request by id, or nil when there is none.
func (r *RequestRepo) Get(ctx context.Context, id string) (*domain.BloodRequest, error) {
	query, args, err := psql().
		Select(requestColumns...).
		From(requestsTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get request query: %w", err)
	}

	var row requestRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get request %s: %w", id, err)
	}
	req := row.toDomain()
	return &req, nil
}

// TransitionStatus moves a request from one status to another. It returns false
// when the request does not exist or is not in status from.
func (r *RequestRepo) TransitionStatus(ctx context.Context, id string, from, to domain.RequestStatus) (bool, error) {
	query, args, err := psql().
		Update(requestsTable).
		Set("status", string(to)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "status": string(from)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build transition query: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("transition request %s: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}
