package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"oasis-blood-platform/internal/domain"
	"oasis-blood-platform/internal/logx"
	"oasis-blood-platform/internal/matching"
	"oasis-blood-platform/internal/metrics"
	"oasis-blood-platform/internal/notify"
)

const (
	defaultRunTimeout = 30 * time.Second
	maxTokenLookups   = 8
)

// Deps are the collaborators of a Matcher. Compat, Filter and Scorer fall back
// to the defaults when unset. A nil Claims disables the processed-request check.
type Deps struct {
	Donors   DonorSource
	Tokens   TokenResolver
	Notifier Notifier
	Claims   RunClaimer
	Compat   matching.CompatibilityTable
	Filter   *matching.Filter
	Scorer   *matching.Scorer
	Metrics  *metrics.Matching
	Logger   logx.Logger
	Now      func() time.Time
}

// Config tunes a Matcher.
type Config struct {
	TopN       int
	RunTimeout time.Duration
}

// Matcher runs the donor matching pipeline for one request-created event.
type Matcher struct {
	donors   DonorSource
	tokens   TokenResolver
	notifier Notifier
	claims   RunClaimer
	compat   matching.CompatibilityTable
	filter   *matching.Filter
	scorer   *matching.Scorer
	metrics  *metrics.Matching
	logger   logx.Logger
	now      func() time.Time
	topN     int
	timeout  time.Duration
}

// New creates a Matcher.
func New(d Deps, cfg Config) *Matcher {
	if d.Compat.Len() == 0 {
		d.Compat = matching.DefaultCompatibility()
	}
	if d.Filter == nil {
		d.Filter = matching.NewFilter(matching.DefaultPolicy())
	}
	if d.Scorer == nil {
		d.Scorer = matching.NewScorer(matching.DefaultWeights(), matching.DefaultReferenceDistanceMeters, d.Filter.Policy().MinDonationInterval)
	}
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.TopN <= 0 {
		cfg.TopN = matching.DefaultTopN
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = defaultRunTimeout
	}
	return &Matcher{
		donors:   d.Donors,
		tokens:   d.Tokens,
		notifier: d.Notifier,
		claims:   d.Claims,
		compat:   d.Compat,
		filter:   d.Filter,
		scorer:   d.Scorer,
		metrics:  d.Metrics,
		logger:   d.Logger,
		now:      d.Now,
		topN:     cfg.TopN,
		timeout:  cfg.RunTimeout,
	}
}

// Handle runs the pipeline for ev. It never returns an error: failures end the
// run with StatusFailed and are logged. Nothing is retried.
func (m *Matcher) Handle(ctx context.Context, ev domain.RequestCreated) Outcome {
	started := m.now()
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	log := m.logger.With(logx.String("request_id", ev.RequestID))
	out := m.run(ctx, ev, log)

	switch out.Status {
	case StatusFailed:
		log.Error("matching run failed",
			logx.String("event", "match_failed"),
			logx.String("stage", string(out.Stage)),
			logx.String("reason", string(out.Reason)),
			logx.Err(out.Err),
		)
	case StatusNoop:
		log.Info("matching run ended without notifications",
			logx.String("event", "match_noop"),
			logx.String("stage", string(out.Stage)),
			logx.String("reason", string(out.Reason)),
		)
	}

	m.metrics.ObserveRun(string(out.Status), string(out.Reason), m.now().Sub(started))
	return out
}

func (m *Matcher) run(ctx context.Context, ev domain.RequestCreated, log logx.Logger) Outcome {
	out := Outcome{RequestID: ev.RequestID, Stage: StageReceived}
	log.Info("new blood request received",
		logx.String("event", "match_received"),
		logx.String("blood_type", ev.BloodType),
		logx.String("city", ev.City),
		logx.String("hospital", ev.HospitalName),
		logx.Bool("emergency", ev.IsEmergency),
	)

	bloodType, err := domain.ExactBloodType(ev.BloodType)
	if err != nil {
		log.Warn("unrecognized blood type", logx.String("blood_type", ev.BloodType))
		return noop(out, ReasonInvalidBloodType)
	}
	compatible, err := m.compat.CompatibleDonorTypes(bloodType)
	if err != nil {
		log.Warn("no compatibility rule for blood type", logx.String("blood_type", string(bloodType)))
		return noop(out, ReasonInvalidBloodType)
	}
	if !ev.Location.Valid() {
		log.Warn("request location out of range",
			logx.Float64("latitude", ev.Location.Latitude),
			logx.Float64("longitude", ev.Location.Longitude),
		)
		return noop(out, ReasonInvalidLocation)
	}
	out.Stage = StageValidated
	log.Info("compatible donor types resolved", logx.Strings("donor_types", bloodTypeStrings(compatible)))

	req := matching.Request{
		ID:           ev.RequestID,
		BloodType:    bloodType,
		Location:     ev.Location,
		City:         ev.City,
		HospitalName: ev.HospitalName,
		IsEmergency:  ev.IsEmergency,
	}

	pool, err := m.donors.CandidatesInBox(ctx, m.filter.Query(req, compatible))
	if err != nil {
		return failed(out, reasonFor(ctx, ReasonDonorSource), fmt.Errorf("donor query: %w", err))
	}
	out.Candidates = len(pool)
	m.metrics.ObserveCandidates("coarse", len(pool))
	log.Info("donors found in search area",
		logx.Int("count", len(pool)),
		logx.Float64("radius_m", m.filter.Policy().SearchRadius(req.IsEmergency)),
	)
	if len(pool) == 0 {
		return noop(out, ReasonNoCandidates)
	}

	now := m.now()
	eligible := m.filter.Eligible(req, compatible, pool, now)
	out.Eligible = len(eligible)
	m.metrics.ObserveCandidates("eligible", len(eligible))
	if len(eligible) == 0 {
		return noop(out, ReasonNoEligible)
	}
	out.Stage = StageFiltered

	scored := m.scorer.ScoreAll(eligible, req, now)
	out.Stage = StageScored

	ranked := matching.Rank(scored, m.topN)
	out.Ranked = ranked
	out.Stage = StageRanked
	log.Info("ranked donors", logx.Int("count", len(ranked)), logx.Any("donors", summarize(ranked)))

	tokens, err := m.resolveTokens(ctx, ranked)
	if err != nil {
		return failed(out, reasonFor(ctx, ReasonTokenLookup), err)
	}
	out.Tokens = len(tokens)
	if len(tokens) == 0 {
		log.Info("no device tokens for ranked donors", logx.Int("donors", len(ranked)))
		return noop(out, ReasonNoTokens)
	}

	if m.claims != nil {
		claimed, err := m.claims.Claim(ctx, ev.RequestID)
		if err != nil {
			return failed(out, reasonFor(ctx, ReasonClaim), fmt.Errorf("claim run: %w", err))
		}
		if !claimed {
			return noop(out, ReasonAlreadyProcessed)
		}
	}

	res, err := m.notifier.Send(ctx, tokens, notify.NewRequestMessage(req))
	out.Result = res
	m.metrics.AddNotifications(res.SuccessCount, res.FailureCount)
	if err != nil {
		return failed(out, reasonFor(ctx, ReasonDispatch), fmt.Errorf("dispatch: %w", err))
	}

	out.Stage = StageDispatched
	out.Status = StatusDispatched
	log.Info("notifications dispatched",
		logx.String("event", "match_dispatched"),
		logx.Int("tokens", len(tokens)),
		logx.Int("success", res.SuccessCount),
		logx.Int("failure", res.FailureCount),
	)
	return out
}

// resolveTokens looks up the devices of every ranked donor concurrently and
// returns the distinct tokens in rank order.
func (m *Matcher) resolveTokens(ctx context.Context, ranked []matching.ScoredCandidate) ([]string, error) {
	perDonor := make([][]string, len(ranked))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxTokenLookups)
	for i, c := range ranked {
		g.Go(func() error {
			tokens, err := m.tokens.TokensByUser(gctx, c.Donor.ID)
			if err != nil {
				return fmt.Errorf("tokens for donor %s: %w", c.Donor.ID, err)
			}
			perDonor[i] = tokens
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var out []string
	for _, tokens := range perDonor {
		for _, t := range tokens {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out, nil
}

func reasonFor(ctx context.Context, r Reason) Reason {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return ReasonTimeout
	}
	return r
}

type rankedDonor struct {
	DonorID        string  `json:"donor_id"`
	BloodType      string  `json:"blood_type"`
	Score          float64 `json:"score"`
	DistanceMeters float64 `json:"distance_m"`
}

func summarize(ranked []matching.ScoredCandidate) []rankedDonor {
	out := make([]rankedDonor, 0, len(ranked))
	for _, c := range ranked {
		out = append(out, rankedDonor{
			DonorID:        c.Donor.ID,
			BloodType:      string(c.Donor.BloodType),
			Score:          c.Score,
			DistanceMeters: c.DistanceMeters,
		})
	}
	return out
}

func bloodTypeStrings(types []domain.BloodType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}
