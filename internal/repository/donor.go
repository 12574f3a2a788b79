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
	"oasis-blood-platform/internal/matching"
)

const donorsTable = "donors"

type donorRow struct {
	UserID         string     `db:"user_id"`
	Name           string     `db:"name"`
	BloodType      string     `db:"blood_type"`
	Latitude       float64    `db:"latitude"`
	Longitude      float64    `db:"longitude"`
	City           string     `db:"city"`
	Availability   string     `db:"availability"`
	LastDonationAt *time.Time `db:"last_donation_at"`
	Verified       bool       `db:"verified"`
	DonationCount  int        `db:"donation_count"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
}

var donorColumns = columnsOf(donorRow{})

func (r donorRow) toDomain() domain.Donor {
	return domain.Donor{
		ID:             r.UserID,
		Name:           r.Name,
		BloodType:      domain.BloodType(r.BloodType),
		Location:       domain.Coordinate{Latitude: r.Latitude, Longitude: r.Longitude},
		City:           r.City,
		Availability:   domain.Availability(r.Availability),
		LastDonationAt: r.LastDonationAt,
		Verified:       r.Verified,
		DonationCount:  r.DonationCount,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// DonorRepo represents donor repository.
type DonorRepo struct{ db *pgxpool.Pool }

// NewDonorRepo creates a new DonorRepo.
func NewDonorRepo(db *pgxpool.Pool) *DonorRepo { return &DonorRepo{db: db} }

// Create inserts a donor and fills its timestamps.
func (r *DonorRepo) Create(ctx context.Context, d *domain.Donor) error {
	query, args, err := psql().
		Insert(donorsTable).
		Columns("user_id", "name", "blood_type", "latitude", "longitude", "city",
			"availability", "last_donation_at", "verified", "donation_count").
		Values(d.ID, d.Name, string(d.BloodType), d.Location.Latitude, d.Location.Longitude, d.City,
			string(d.Availability), d.LastDonationAt, d.Verified, d.DonationCount).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create donor query: %w", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&d.CreatedAt, &d.UpdatedAt); err != nil {
		if IsDuplicate(err) {
			return apperr.Conflict
		}
		return fmt.Errorf("create donor %s: %w", d.ID, err)
	}
	return nil
}

// Get returns the donor linked to the user id, or nil when there is none.
func (r *DonorRepo) Get(ctx context.Context, id string) (*domain.Donor, error) {
	query, args, err := psql().
		Select(donorColumns...).
		From(donorsTable).
		Where(sq.Eq{"user_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get donor query: %w", err)
	}

	var row donorRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get donor %s: %w", id, err)
	}
	d := row.toDomain()
	return &d, nil
}

// UpdatePartial applies the non-nil fields of u and returns true if a row was affected.
// Recording a new last donation date also increments the donation count.
func (r *DonorRepo) UpdatePartial(ctx context.Context, u domain.PartialDonorUpdate) (bool, error) {
	set := map[string]any{"updated_at": sq.Expr("now()")}
	if u.Availability != nil {
		set["availability"] = string(*u.Availability)
	}
	if u.Location != nil {
		set["latitude"] = u.Location.Latitude
		set["longitude"] = u.Location.Longitude
	}
	if u.City != nil {
		set["city"] = *u.City
	}
	if u.LastDonationAt != nil {
		set["last_donation_at"] = *u.LastDonationAt
		set["donation_count"] = sq.Expr("donation_count + 1")
	}

	query, args, err := psql().
		Update(donorsTable).
		SetMap(set).
		Where(sq.Eq{"user_id": u.ID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update donor query: %w", err)
	}

	ct, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update donor %s: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// CandidatesInBox runs the coarse range query: compatible type, requested
// availability and a coordinate inside the box. A box crossing the antimeridian
// is split into two longitude ranges.
func (r *DonorRepo) CandidatesInBox(ctx context.Context, q matching.DonorQuery) ([]domain.Donor, error) {
	if len(q.BloodTypes) == 0 {
		return nil, nil
	}
	types := make([]string, 0, len(q.BloodTypes))
	for _, t := range q.BloodTypes {
		types = append(types, string(t))
	}

	var lon sq.Sqlizer = sq.And{
		sq.GtOrEq{"longitude": q.Box.MinLon},
		sq.LtOrEq{"longitude": q.Box.MaxLon},
	}
	if q.Box.Wraps() {
		lon = sq.Or{
			sq.GtOrEq{"longitude": q.Box.MinLon},
			sq.LtOrEq{"longitude": q.Box.MaxLon},
		}
	}

	query, args, err := psql().
		Select(donorColumns...).
		From(donorsTable).
		Where(sq.Eq{"blood_type": types, "availability": string(q.Availability)}).
		Where(sq.GtOrEq{"latitude": q.Box.MinLat}).
		Where(sq.LtOrEq{"latitude": q.Box.MaxLat}).
		Where(lon).
		OrderBy("user_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build candidate query: %w", err)
	}

	var rows []donorRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select candidates: %w", err)
	}
	out := make([]domain.Donor, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
