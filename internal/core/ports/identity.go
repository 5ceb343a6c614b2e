package ports

import "context"

//go:generate mockgen -source=identity.go -destination=mocks/identity_mock.go -package=mocks

// Authenticator is the external identity provider boundary. It owns
// credential custody entirely; this service never stores secrets. The
// "secret" is a 6-character alphanumeric password (legacy accounts used
// a 6-digit PIN); both are constrained client-side before submission.
type Authenticator interface {
	// SignUp creates an account and returns the provider's user id.
	SignUp(ctx context.Context, email, secret string) (string, error)
	// SignIn verifies credentials and returns the provider's user id.
	SignIn(ctx context.Context, email, secret string) (string, error)
	// SendPasswordReset triggers the provider's reset flow.
	SendPasswordReset(ctx context.Context, email string) error
}
