package matcher

import (
	"oasis-blood-platform/internal/matching"
	"oasis-blood-platform/internal/notify"
)

// Stage is the last state a run reached.
type Stage string

// List of run stages
const (
	StageReceived   Stage = "received"
	StageValidated  Stage = "validated"
	StageFiltered   Stage = "filtered"
	StageScored     Stage = "scored"
	StageRanked     Stage = "ranked"
	StageDispatched Stage = "dispatched"
)

// Status is the terminal state of a run.
type Status string

// List of run statuses
const (
	StatusDispatched Status = "dispatched"
	StatusNoop       Status = "noop"
	StatusFailed     Status = "failed"
)

// Reason explains a noop or failed run.
type Reason string

// List of run reasons
const (
	ReasonNone             Reason = ""
	ReasonInvalidBloodType Reason = "invalid_blood_type"
	ReasonInvalidLocation  Reason = "invalid_location"
	ReasonNoCandidates     Reason = "no_candidates"
	ReasonNoEligible       Reason = "no_eligible"
	ReasonNoTokens         Reason = "no_tokens"
	ReasonAlreadyProcessed Reason = "already_processed"
	ReasonDonorSource      Reason = "donor_source"
	ReasonTokenLookup      Reason = "token_lookup"
	ReasonClaim            Reason = "claim"
	ReasonDispatch         Reason = "dispatch"
	ReasonTimeout          Reason = "timeout"
)

// Outcome summarizes one matching run.
type Outcome struct {
	RequestID  string
	Status     Status
	Reason     Reason
	Stage      Stage
	Candidates int
	Eligible   int
	Ranked     []matching.ScoredCandidate
	Tokens     int
	Result     notify.SendResult
	Err        error
}

func noop(o Outcome, r Reason) Outcome {
	o.Status = StatusNoop
	o.Reason = r
	return o
}

func failed(o Outcome, r Reason, err error) Outcome {
	o.Status = StatusFailed
	o.Reason = r
	o.Err = err
	return o
}
