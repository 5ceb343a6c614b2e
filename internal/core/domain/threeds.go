package domain

import "fmt"

// Challenge is one pending 3DS step-up authentication request, created
// server-side when a transaction requires additional cardholder
// verification.
type Challenge struct {
	ID           int     `json:"id"`
	EventID      string  `json:"event_id"`
	CardID       string  `json:"card_id"`
	MerchantName string  `json:"merchant_name"`
	MaskedPAN    string  `json:"masked_pan"`
	Amount       string  `json:"amount"`
	Currency     string  `json:"currency"`
	EventName    string  `json:"event_name"`
	Status       string  `json:"status"`
	Payload      string  `json:"payload"` // opaque issuer JSON
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
	DeletedAt    *string `json:"deleted_at,omitempty"`
}

// ChallengeOutcome classifies the result of a challenge check.
type ChallengeOutcome string

const (
	// ChallengeNone means no step-up is pending. This is the normal
	// case and must not be surfaced as an error.
	ChallengeNone ChallengeOutcome = "NONE"
	// ChallengePending carries a challenge awaiting approve/reject.
	ChallengePending ChallengeOutcome = "PENDING"
	// ChallengeError means the check itself failed and may be retried.
	ChallengeError ChallengeOutcome = "ERROR"
)

// ChallengeResult pairs the outcome with the challenge, which is set
// only when the outcome is ChallengePending.
type ChallengeResult struct {
	Outcome   ChallengeOutcome `json:"outcome"`
	Challenge *Challenge       `json:"challenge,omitempty"`
}

// ChallengePhase is the per-challenge lifecycle:
// Fetched -> {Approved, Rejected}.
type ChallengePhase string

const (
	ChallengeFetched  ChallengePhase = "FETCHED"
	ChallengeApproved ChallengePhase = "APPROVED"
	ChallengeRejected ChallengePhase = "REJECTED"
)

// ChallengeSession tracks one surfaced challenge through its lifecycle.
// Only one session is surfaced at a time per card.
type ChallengeSession struct {
	Challenge Challenge
	phase     ChallengePhase
}

// NewChallengeSession starts tracking a fetched challenge.
func NewChallengeSession(ch Challenge) *ChallengeSession {
	return &ChallengeSession{Challenge: ch, phase: ChallengeFetched}
}

// Phase returns the current phase.
func (s *ChallengeSession) Phase() ChallengePhase { return s.phase }

// Approve marks the challenge approved. Valid only from Fetched.
func (s *ChallengeSession) Approve() error {
	return s.resolve(ChallengeApproved)
}

// Reject marks the challenge rejected. A reject is purely local: the
// issuer backend is not informed. Valid only from Fetched.
func (s *ChallengeSession) Reject() error {
	return s.resolve(ChallengeRejected)
}

func (s *ChallengeSession) resolve(phase ChallengePhase) error {
	if s.phase != ChallengeFetched {
		return fmt.Errorf("challenge %s already %s", s.Challenge.EventID, s.phase)
	}
	s.phase = phase
	return nil
}
