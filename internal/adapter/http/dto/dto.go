package dto

import (
	"virtual-card-wallet/internal/core/domain"
)

// RegisterRequest is the request body for account registration. The
// password doubles as the card PIN upstream; its exact policy is
// enforced in the auth service, not here.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the request body for sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PasswordResetRequest asks the identity provider to start a reset flow.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// SessionResponse is the response body for successful register/login.
type SessionResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"expires_at"` // Unix timestamp
}

// ApplyCardRequest is the request body for a card application. Field
// names mirror the KYC prompts; per-field rules (date format, digits
// only, ISO country) are applied by the domain before submission.
type ApplyCardRequest struct {
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	DOB         string `json:"dob" binding:"required"`
	Address1    string `json:"address1" binding:"required"`
	PostalCode  string `json:"postal_code" binding:"required"`
	City        string `json:"city" binding:"required"`
	Country     string `json:"country" binding:"required"`
	State       string `json:"state"`
	CountryCode string `json:"country_code" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
}

// ToDomain builds the KYC record for the authenticated account.
func (r ApplyCardRequest) ToDomain(email string) domain.ApplyCardRequest {
	return domain.ApplyCardRequest{
		UserEmail:   email,
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DOB:         r.DOB,
		Address1:    r.Address1,
		PostalCode:  r.PostalCode,
		City:        r.City,
		Country:     r.Country,
		State:       r.State,
		CountryCode: r.CountryCode,
		Phone:       r.Phone,
	}
}

// ChallengeDecisionRequest identifies the challenge being approved or
// rejected.
type ChallengeDecisionRequest struct {
	EventID string `json:"event_id" binding:"required,safe_id"`
}

// ToggleRequest carries the card status the caller is currently
// displaying. The toggle direction is derived from it.
type ToggleRequest struct {
	CurrentStatus string `json:"current_status" binding:"required"`
}

// CardListResponse is the card collection with its fee quote. Stale is
// set when a refresh failed and the payload is the last good snapshot.
type CardListResponse struct {
	Cards      []domain.CardSummary `json:"cards"`
	SubUserFee float64              `json:"sub_user_fee"`
	Stale      bool                 `json:"stale,omitempty"`
}

// CardDetailResponse wraps one card's full state.
type CardDetailResponse struct {
	Card  *domain.CardDetail `json:"card"`
	Stale bool               `json:"stale,omitempty"`
}

// ApproveChallengeResponse reports the upstream delivery outcome. The
// challenge is dismissed either way.
type ApproveChallengeResponse struct {
	Delivered bool `json:"delivered"`
}
