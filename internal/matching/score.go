package matching

import (
	"time"

	"oasis-blood-platform/internal/domain"
)

// DefaultReferenceDistanceMeters is the distance at which proximity stops scoring.
// It does not grow with the emergency radius.
const DefaultReferenceDistanceMeters = 25_000.0

// Weights are the maximum contribution of each score component.
type Weights struct {
	PerfectMatch float64
	Proximity    float64
	Recency      float64
}

// DefaultWeights returns 50 for an exact type, 30 for proximity and 20 for recency.
func DefaultWeights() Weights {
	return Weights{PerfectMatch: 50, Proximity: 30, Recency: 20}
}

// ScoredCandidate is a candidate with its computed score.
type ScoredCandidate struct {
	Donor          domain.Donor
	Score          float64
	DistanceMeters float64
}

// Scorer computes donor scores. It is safe for concurrent use.
type Scorer struct {
	weights           Weights
	referenceDistance float64
	fullRecencyAfter  time.Duration
}

// NewScorer creates a Scorer. Non-positive referenceDistance or fullRecencyAfter
// fall back to the defaults.
func NewScorer(w Weights, referenceDistance float64, fullRecencyAfter time.Duration) *Scorer {
	if referenceDistance <= 0 {
		referenceDistance = DefaultReferenceDistanceMeters
	}
	if fullRecencyAfter <= 0 {
		fullRecencyAfter = DefaultMinDonationInterval
	}
	return &Scorer{weights: w, referenceDistance: referenceDistance, fullRecencyAfter: fullRecencyAfter}
}

// Score returns the sum of the perfect match, proximity and recency components.
func (s *Scorer) Score(d domain.Donor, req Request, distanceMeters float64, now time.Time) float64 {
	return s.perfectMatch(d, req) + s.proximity(distanceMeters) + s.recency(d, now)
}

// ScoreAll scores every candidate, keeping input order.
func (s *Scorer) ScoreAll(candidates []Candidate, req Request, now time.Time) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, ScoredCandidate{
			Donor:          c.Donor,
			Score:          s.Score(c.Donor, req, c.DistanceMeters, now),
			DistanceMeters: c.DistanceMeters,
		})
	}
	return out
}

func (s *Scorer) perfectMatch(d domain.Donor, req Request) float64 {
	if d.BloodType == req.BloodType {
		return s.weights.PerfectMatch
	}
	return 0
}

func (s *Scorer) proximity(distance float64) float64 {
	if distance < 0 {
		distance = 0
	}
	if distance > s.referenceDistance {
		distance = s.referenceDistance
	}
	return s.weights.Proximity * (1 - distance/s.referenceDistance)
}

// recency grows linearly with time since the last donation and saturates once
// fullRecencyAfter has elapsed. Never donated scores the full weight.
func (s *Scorer) recency(d domain.Donor, now time.Time) float64 {
	if d.LastDonationAt == nil {
		return s.weights.Recency
	}
	elapsed := now.Sub(*d.LastDonationAt)
	if elapsed <= 0 {
		return 0
	}
	ratio := float64(elapsed) / float64(s.fullRecencyAfter)
	if ratio > 1 {
		ratio = 1
	}
	return s.weights.Recency * ratio
}
