package matching_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/matching"
)

func defaultScorer() *matching.Scorer {
	return matching.NewScorer(matching.DefaultWeights(), matching.DefaultReferenceDistanceMeters, matching.DefaultMinDonationInterval)
}

func TestScore_Components(t *testing.T) {
	t.Parallel()

	s := defaultScorer()
	req := matching.Request{BloodType: domain.BloodTypeONeg}
	d := newDonor("d", domain.BloodTypeONeg, testCenter)

	require.InDelta(t, 100, s.Score(d, req, 0, testNow), 1e-9)
	require.InDelta(t, 70, s.Score(d, req, 25_000, testNow), 1e-9)
	require.InDelta(t, 85, s.Score(d, req, 12_500, testNow), 1e-9)
	require.InDelta(t, 70, s.Score(d, req, 45_000, testNow), 1e-9, "proximity bottoms out at the reference distance")

	compatible := newDonor("c", domain.BloodTypeOPos, testCenter)
	require.InDelta(t, 50, s.Score(compatible, matching.Request{BloodType: domain.BloodTypeAPos}, 0, testNow), 1e-9)
}

func TestScore_MonotoneInDistance(t *testing.T) {
	t.Parallel()

	s := defaultScorer()
	req := matching.Request{BloodType: domain.BloodTypeAPos}
	d := newDonor("d", domain.BloodTypeANeg, testCenter)
	d.LastDonationAt = daysAgo(40)

	prev := s.Score(d, req, 0, testNow)
	for dist := 500.0; dist <= 60_000; dist += 500 {
		cur := s.Score(d, req, dist, testNow)
		require.LessOrEqual(t, cur, prev, "distance %v", dist)
		prev = cur
	}
}

func TestScore_ExactMatchBeatsCompatible(t *testing.T) {
	t.Parallel()

	s := defaultScorer()
	req := matching.Request{BloodType: domain.BloodTypeABPos}
	for _, dist := range []float64{0, 5_000, 24_000, 49_000} {
		exact := newDonor("e", domain.BloodTypeABPos, testCenter)
		other := newDonor("o", domain.BloodTypeONeg, testCenter)
		require.Greater(t, s.Score(exact, req, dist, testNow), s.Score(other, req, dist, testNow))
	}
}

func TestScore_RecencyCurve(t *testing.T) {
	t.Parallel()

	s := defaultScorer()
	req := matching.Request{BloodType: domain.BloodTypeAPos}
	base := s.Score(newDonor("b", domain.BloodTypeONeg, testCenter), req, 25_000, testNow)
	require.InDelta(t, 20, base, 1e-9, "never donated scores the full recency weight")

	prev := -1.0
	for _, days := range []int{0, 1, 14, 28, 42, 56, 57, 365} {
		d := newDonor("d", domain.BloodTypeONeg, testCenter)
		d.LastDonationAt = daysAgo(days)
		got := s.Score(d, req, 25_000, testNow)
		require.GreaterOrEqual(t, got, prev, "days %d", days)
		require.LessOrEqual(t, got, 20.0)
		prev = got
	}

	d := newDonor("d", domain.BloodTypeONeg, testCenter)
	d.LastDonationAt = daysAgo(28)
	require.InDelta(t, 10, s.Score(d, req, 25_000, testNow), 1e-9)

	d.LastDonationAt = daysAgo(57)
	require.InDelta(t, 20, s.Score(d, req, 25_000, testNow), 1e-9, "eligible donors are saturated")

	future := testNow.Add(time.Hour)
	d.LastDonationAt = &future
	require.InDelta(t, 0, s.Score(d, req, 25_000, testNow), 1e-9)
}

func TestScore_CustomWeights(t *testing.T) {
	t.Parallel()

	s := matching.NewScorer(matching.Weights{PerfectMatch: 10, Proximity: 0, Recency: 0}, 0, 0)
	req := matching.Request{BloodType: domain.BloodTypeBNeg}
	require.InDelta(t, 10, s.Score(newDonor("d", domain.BloodTypeBNeg, testCenter), req, 1_000, testNow), 1e-9)
	require.InDelta(t, 0, s.Score(newDonor("d", domain.BloodTypeONeg, testCenter), req, 1_000, testNow), 1e-9)
}

func TestScoreAll_KeepsOrderAndDistance(t *testing.T) {
	t.Parallel()

	s := defaultScorer()
	req := matching.Request{BloodType: domain.BloodTypeONeg}
	cands := []matching.Candidate{
		{Donor: newDonor("far", domain.BloodTypeONeg, testCenter), DistanceMeters: 20_000},
		{Donor: newDonor("near", domain.BloodTypeONeg, testCenter), DistanceMeters: 100},
	}

	got := s.ScoreAll(cands, req, testNow)
	require.Len(t, got, 2)
	require.Equal(t, "far", got[0].Donor.ID)
	require.Equal(t, 20_000.0, got[0].DistanceMeters)
	require.Less(t, got[0].Score, got[1].Score)
}
