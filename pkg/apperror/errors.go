package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// ---- Issuer Gateway (GATE) ----

// ErrGatewayUnavailable covers every transport-level failure against the
// card-issuing backend: network error, timeout, malformed body. The UI
// never distinguishes these from each other; all are retryable by the user.
func ErrGatewayUnavailable(err error) *AppError {
	return Wrap("GATE_001", "An error occurred, please try again", http.StatusBadGateway, err)
}

// ---- Card & Ledger (CARD) ----

func ErrCardDetailUnavailable(err error) *AppError {
	return Wrap("CARD_001", "Could not load card details", http.StatusBadGateway, err)
}

// ---- Application Workflow (APP) ----

// ErrApplicationRejected carries the backend's rejection message verbatim.
// A rejection is a normal negative outcome, not a transport failure, so
// it maps to 422 and the user may correct their input and retry.
func ErrApplicationRejected(message string) *AppError {
	return New("APP_001", message, http.StatusUnprocessableEntity)
}

// ErrApplicationFailed covers replies whose status is neither "success"
// nor "failure". The backend message is not surfaced.
func ErrApplicationFailed() *AppError {
	return New("APP_002", "Application failed. Please try again.", http.StatusBadGateway)
}

// ---- 3DS Challenges (TDS) ----

func ErrChallengeCheckFailed(err error) *AppError {
	return Wrap("TDS_001", "An error occurred, please try again", http.StatusBadGateway, err)
}

func ErrNoChallengePending() *AppError {
	return New("TDS_002", "No 3DS request pending", http.StatusNotFound)
}

// ---- Authentication (AUTH) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrRegistrationRejected(message string) *AppError {
	return New("AUTH_002", message, http.StatusConflict)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrSessionRevoked() *AppError {
	return New("AUTH_004", "Session has been signed out", http.StatusUnauthorized)
}

// ---- Validation (VAL) ----

// Validation returns a client-side validation error. These are caught
// before any network call is made; the flow re-prompts the same field.
func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrInvalidPhone() *AppError {
	return New("VAL_002", "Phone number must contain digits only", http.StatusBadRequest)
}

func ErrInvalidPassword() *AppError {
	return New("VAL_003", "Password must be 6 alphanumeric characters", http.StatusBadRequest)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Too many requests, slow down", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

func ErrSessionStore(err error) *AppError {
	return Wrap("SYS_002", "Session store failure", http.StatusServiceUnavailable, err)
}
