package ports

import (
	"context"
	"time"

	"virtual-card-wallet/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/services_mock.go -package=mocks

// LedgerService owns the session's card snapshot. Refreshes are
// full-replacement reads: a snapshot is replaced on success only, and a
// stale in-flight response never overwrites a newer one.
type LedgerService interface {
	// Refresh fetches the card collection and replaces the snapshot on
	// success. Returns the fresh collection and fee quote.
	Refresh(ctx context.Context, userEmail string) ([]domain.CardSummary, float64, error)
	// RefreshDetail fetches one card's detail and replaces that card's
	// detail snapshot on success.
	RefreshDetail(ctx context.Context, userEmail, cardID string) (*domain.CardDetail, error)
	// Snapshot returns the last good collection, its fee quote, and
	// whether any refresh has succeeded yet.
	Snapshot() ([]domain.CardSummary, float64, bool)
	// DetailSnapshot returns the last good detail for a card.
	DetailSnapshot(cardID string) (*domain.CardDetail, bool)
}

// ApplicationService drives the submit leg of a card application attempt.
type ApplicationService interface {
	Submit(ctx context.Context, req domain.ApplyCardRequest) (*ApplicationOutcome, error)
}

// ApplicationOutcome is the terminal result of a submit. Payment is set
// only when State is PendingPayment.
type ApplicationOutcome struct {
	State   domain.ApplicationState    `json:"state"`
	Message string                     `json:"message,omitempty"`
	Payment *domain.PaymentInstruction `json:"payment,omitempty"`
}

// ChallengeService drives the 3DS step-up exchange for one card. Callers
// must not invoke Check concurrently for the same card.
type ChallengeService interface {
	// Check fetches the pending challenge, mapping backend code "422"
	// to ChallengeNone and "200"+data to ChallengePending.
	Check(ctx context.Context, userEmail, cardID string) (*domain.ChallengeResult, error)
	// Approve submits the approval. The returned flag reports the
	// upstream outcome; the challenge is dismissed regardless.
	Approve(ctx context.Context, userEmail, cardID, eventID string) (bool, error)
	// Reject dismisses the challenge locally. No backend call is made.
	Reject(userEmail, cardID, eventID string)
}

// ControlService toggles a card's block state with explicit
// optimistic-UI reconciliation.
type ControlService interface {
	// Toggle blocks an active card or unblocks anything else. On
	// success the caller must refresh the card detail for the
	// authoritative status; on failure the result is rolled back.
	Toggle(ctx context.Context, userEmail, cardID string, current domain.CardStatus) (*domain.ToggleResult, error)
}

// AuthService wires the identity provider and the issuing platform's
// sub-user registry into one sign-up/sign-in surface.
type AuthService interface {
	// Register validates the password policy, creates the identity
	// account, then registers the sub-user with the issuing platform.
	Register(ctx context.Context, email, password string) (*AuthSession, error)
	Login(ctx context.Context, email, password string) (*AuthSession, error)
	// Logout revokes the session. The token is useless afterwards even
	// though its JWT expiry may lie in the future.
	Logout(ctx context.Context, token string) error
	SendPasswordReset(ctx context.Context, email string) error
}

// AuthSession is an authenticated session handed to the presentation
// layer.
type AuthSession struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// TokenService issues and validates session tokens.
type TokenService interface {
	Generate(email string) (token string, sessionID string, expiry time.Time, err error)
	Validate(token string) (*TokenClaims, error)
}

// TokenClaims holds the parsed session token claims.
type TokenClaims struct {
	Email     string
	SessionID string
}

// SessionStore records live sessions so logout actually revokes.
type SessionStore interface {
	Put(ctx context.Context, sessionID, email string, ttl time.Duration) error
	// GetEmail returns the session's email, or "" if the session is
	// unknown or revoked.
	GetEmail(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// HealthChecker checks external dependency health.
type HealthChecker interface {
	// Ping verifies connectivity. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "redis").
	Name() string
}
