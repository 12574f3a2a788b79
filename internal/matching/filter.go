package matching

import (
	"time"

	"oasis-blood-platform/internal/domain"
)

// Default matching policy values.
const (
	DefaultStandardRadiusMeters  = 25_000.0
	DefaultEmergencyRadiusMeters = 50_000.0
	DefaultMinDonationInterval   = 56 * 24 * time.Hour
)

// Request is the part of a blood request the matching stages read.
type Request struct {
	ID           string
	BloodType    domain.BloodType
	Location     domain.Coordinate
	City         string
	HospitalName string
	IsEmergency  bool
}

// Candidate is a donor that passed the hard filters together with its exact distance.
type Candidate struct {
	Donor          domain.Donor
	DistanceMeters float64
}

// DonorQuery is the coarse range query a donor store answers: donors of one of
// BloodTypes, with availability Availability, located inside Box.
type DonorQuery struct {
	BloodTypes   []domain.BloodType
	Availability domain.Availability
	Box          Box
}

// Policy holds the search radii and the inter-donation interval.
type Policy struct {
	StandardRadius      float64
	EmergencyRadius     float64
	MinDonationInterval time.Duration
}

// DefaultPolicy returns 25 km standard, 50 km emergency and a 56 day interval.
func DefaultPolicy() Policy {
	return Policy{
		StandardRadius:      DefaultStandardRadiusMeters,
		EmergencyRadius:     DefaultEmergencyRadiusMeters,
		MinDonationInterval: DefaultMinDonationInterval,
	}
}

// SearchRadius returns the radius in meters for the request's urgency.
func (p Policy) SearchRadius(isEmergency bool) float64 {
	if isEmergency {
		return p.EmergencyRadius
	}
	return p.StandardRadius
}

// RecentlyDonated reports whether the donor is still inside the inter-donation interval.
// Donors with no recorded donation never are.
func (p Policy) RecentlyDonated(d domain.Donor, now time.Time) bool {
	if d.LastDonationAt == nil {
		return false
	}
	return !d.LastDonationAt.Before(now.Add(-p.MinDonationInterval))
}

// Filter applies the hard eligibility rules for a request.
type Filter struct {
	policy Policy
}

// NewFilter creates a Filter for the given policy.
func NewFilter(policy Policy) *Filter {
	return &Filter{policy: policy}
}

// Policy returns the filter's policy.
func (f *Filter) Policy() Policy { return f.policy }

// SearchBox is the coarse envelope for the request's location and urgency.
func (f *Filter) SearchBox(req Request) Box {
	return BoundingBox(req.Location, f.policy.SearchRadius(req.IsEmergency))
}

// Query builds the store query for a request and its compatible donor types.
func (f *Filter) Query(req Request, compatible []domain.BloodType) DonorQuery {
	return DonorQuery{
		BloodTypes:   compatible,
		Availability: domain.AvailabilityAvailable,
		Box:          f.SearchBox(req),
	}
}

// Coarse keeps donors inside box whose type is in compatible and who are available.
// It mirrors the range query a backing store runs and is used where the pool is in memory.
func (f *Filter) Coarse(box Box, compatible []domain.BloodType, pool []domain.Donor) []domain.Donor {
	allowed := typeSet(compatible)
	out := make([]domain.Donor, 0, len(pool))
	for _, d := range pool {
		if _, ok := allowed[d.BloodType]; !ok {
			continue
		}
		if d.Availability != domain.AvailabilityAvailable {
			continue
		}
		if !box.Contains(d.Location) {
			continue
		}
		out = append(out, d)
	}
	return out
}

// Eligible is the exact phase. A donor passes when its type is compatible, it is
// available, its great-circle distance is within the search radius and it has not
// donated inside the minimum interval. Input order is preserved.
func (f *Filter) Eligible(req Request, compatible []domain.BloodType, pool []domain.Donor, now time.Time) []Candidate {
	allowed := typeSet(compatible)
	radius := f.policy.SearchRadius(req.IsEmergency)

	out := make([]Candidate, 0, len(pool))
	for _, d := range pool {
		if _, ok := allowed[d.BloodType]; !ok {
			continue
		}
		if d.Availability != domain.AvailabilityAvailable {
			continue
		}
		if f.policy.RecentlyDonated(d, now) {
			continue
		}
		dist := DistanceMeters(req.Location, d.Location)
		if dist > radius {
			continue
		}
		out = append(out, Candidate{Donor: d, DistanceMeters: dist})
	}
	return out
}

func typeSet(types []domain.BloodType) map[domain.BloodType]struct{} {
	set := make(map[domain.BloodType]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return set
}
