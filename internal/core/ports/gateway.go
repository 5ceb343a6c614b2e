package ports

import (
	"context"

	"virtual-card-wallet/internal/core/domain"
)

//go:generate mockgen -source=gateway.go -destination=mocks/gateway_mock.go -package=mocks

// IssuerGateway is the typed contract to the card-issuing backend. One
// operation per backend action; every call attaches the two static
// credential headers. Implementations perform no retries; any failure
// (network, timeout, malformed body) is returned as an error the caller
// must treat as retryable, never as "card absent".
type IssuerGateway interface {
	// ListCards returns the user's card collection with the current
	// sub-user fee quote.
	ListCards(ctx context.Context, userEmail string) (*CardListReply, error)
	// GetCardDetail returns the full state of one issued card.
	GetCardDetail(ctx context.Context, userEmail, cardID string) (*domain.CardDetail, error)
	// ApplyForCard submits a new-card application.
	ApplyForCard(ctx context.Context, req domain.ApplyCardRequest) (*ApplyReply, error)
	// AddSubUser registers the application end-user with the issuing
	// platform after the identity provider accepts them.
	AddSubUser(ctx context.Context, req SubUserRequest) (*ApplyReply, error)
	// Check3DS fetches the pending step-up challenge for a card, if any.
	Check3DS(ctx context.Context, userEmail, cardID string) (*ThreeDSReply, error)
	// Approve3DS confirms a step-up challenge. The backend decision
	// stands even if the client abandons the wait.
	Approve3DS(ctx context.Context, userEmail, cardID, eventID string) error
	// BlockCard suspends an active card.
	BlockCard(ctx context.Context, userEmail, cardID string) (*ToggleReply, error)
	// UnblockCard reactivates a blocked card.
	UnblockCard(ctx context.Context, userEmail, cardID string) (*ToggleReply, error)
}

// CardListReply is the parsed list-cards response.
type CardListReply struct {
	Cards []domain.CardSummary
	// SubUserFee is the current issuance fee quote, displayed on
	// payment-pending placeholders.
	SubUserFee float64
}

// ApplyReply is the parsed response shared by the apply-for-card and
// add-sub-user operations. Status is the backend's domain verdict
// ("success"/"failure"); DepositAddress and SubUserFee are present only
// when issuance awaits an on-chain payment.
type ApplyReply struct {
	Status         string
	Message        string
	DepositAddress string
	SubUserFee     *float64
}

// Succeeded reports the backend's domain verdict.
func (r *ApplyReply) Succeeded() bool { return r.Status == "success" }

// Rejected reports an explicit negative verdict. Anything that is
// neither Succeeded nor Rejected is an unrecognized status and must not
// be presented to the user as a rejection.
func (r *ApplyReply) Rejected() bool { return r.Status == "failure" }

// RequiresPayment reports whether issuance awaits an on-chain payment.
func (r *ApplyReply) RequiresPayment() bool {
	return r.Succeeded() && r.DepositAddress != "" && r.SubUserFee != nil
}

// SubUserRequest registers an end-user with the issuing platform. The
// secret doubles as the account PIN; ExternalUID is the identity
// provider's user id.
type SubUserRequest struct {
	Email       string
	PIN         string
	ExternalUID string
}

// ThreeDSReply is the parsed check-3DS response. Code is the backend's
// string status code: "200" with data means a challenge is pending,
// "422" means none is (a normal outcome, not an error).
type ThreeDSReply struct {
	Code   string
	Status string
	Data   *domain.Challenge
}

// ToggleReply is the parsed block/unblock response. The message is a
// confirmation only, not authoritative for the card's new status.
type ToggleReply struct {
	Message string
}
