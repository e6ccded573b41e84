package domain

// Penalty amounts charged by the ledger. All are negative.
const (
	RevealCodePenalty   = -5.0
	HintPenalty         = -1.0
	ResubmissionPenalty = -0.5
	// FreeAttempts is how many submissions per question carry no penalty.
	FreeAttempts = 2
)

// Penalties is a participant's running deduction ledger. Every bucket only ever
// moves down; nothing in a session recomputes it from the action log.
type Penalties struct {
	RevealCode  float64 `json:"revealCode"`
	Hints       float64 `json:"hints"`
	Submissions float64 `json:"submissions"`
}

// ChargeAction books the fixed penalty for a reveal-code or ai-hint event.
func (p *Penalties) ChargeAction(kind ActionType) error {
	switch kind {
	case ActionRevealCode:
		p.RevealCode += RevealCodePenalty
	case ActionAIHint:
		p.Hints += HintPenalty
	default:
		return ErrInvalidAction
	}
	return nil
}

// ChargeSubmission books the resubmission penalty when attempt is past the free allowance.
// It reports whether a charge was made.
func (p *Penalties) ChargeSubmission(attempt int) bool {
	if attempt <= FreeAttempts {
		return false
	}
	p.Submissions += ResubmissionPenalty
	return true
}

// Total sums every bucket.
func (p Penalties) Total() float64 {
	return p.RevealCode + p.Hints + p.Submissions
}
