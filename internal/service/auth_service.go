package service

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
)

// The account password doubles as the card PIN upstream, so the policy
// is exact: six alphanumeric characters.
var passwordPattern = regexp.MustCompile(`^[a-zA-Z0-9]{6}$`)

// AuthServiceImpl implements ports.AuthService. Credential custody
// lives with the identity provider; this service only orchestrates it
// against the issuing platform's sub-user registry and the session
// store.
type AuthServiceImpl struct {
	authn    ports.Authenticator
	gateway  ports.IssuerGateway
	tokens   ports.TokenService
	sessions ports.SessionStore
	log      zerolog.Logger
}

// NewAuthService creates a new AuthServiceImpl.
func NewAuthService(
	authn ports.Authenticator,
	gateway ports.IssuerGateway,
	tokens ports.TokenService,
	sessions ports.SessionStore,
	log zerolog.Logger,
) *AuthServiceImpl {
	return &AuthServiceImpl{
		authn:    authn,
		gateway:  gateway,
		tokens:   tokens,
		sessions: sessions,
		log:      log,
	}
}

// Register creates the identity account, then registers the sub-user
// with the issuing platform. If the sub-user step fails the identity
// account is left in place; a later registration attempt with the same
// credentials surfaces the provider's duplicate verdict.
func (s *AuthServiceImpl) Register(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	if !passwordPattern.MatchString(password) {
		return nil, apperror.ErrInvalidPassword()
	}

	uid, err := s.authn.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}

	reply, err := s.gateway.AddSubUser(ctx, ports.SubUserRequest{
		Email:       email,
		PIN:         password,
		ExternalUID: uid,
	})
	if err != nil {
		return nil, apperror.ErrGatewayUnavailable(err)
	}
	if !reply.Succeeded() {
		s.log.Warn().Str("email", email).Str("reason", reply.Message).Msg("sub-user registration rejected")
		return nil, apperror.ErrRegistrationRejected(reply.Message)
	}

	s.log.Info().Str("email", email).Msg("account registered")
	return s.openSession(ctx, email)
}

// Login verifies the credential with the identity provider and opens a
// session.
func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (*ports.AuthSession, error) {
	if !passwordPattern.MatchString(password) {
		return nil, apperror.ErrInvalidPassword()
	}

	if _, err := s.authn.SignIn(ctx, email, password); err != nil {
		return nil, err
	}
	return s.openSession(ctx, email)
}

// Logout revokes the token's session. The JWT itself stays
// cryptographically valid until expiry, but the middleware rejects it
// once the session record is gone.
func (s *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return apperror.ErrSessionStore(err)
	}
	s.log.Info().Str("email", claims.Email).Msg("session revoked")
	return nil
}

// SendPasswordReset forwards the reset request to the identity
// provider.
func (s *AuthServiceImpl) SendPasswordReset(ctx context.Context, email string) error {
	return s.authn.SendPasswordReset(ctx, email)
}

func (s *AuthServiceImpl) openSession(ctx context.Context, email string) (*ports.AuthSession, error) {
	token, sessionID, expiresAt, err := s.tokens.Generate(email)
	if err != nil {
		return nil, apperror.InternalError(err)
	}
	if err := s.sessions.Put(ctx, sessionID, email, time.Until(expiresAt)); err != nil {
		return nil, apperror.ErrSessionStore(err)
	}
	return &ports.AuthSession{
		Token:     token,
		Email:     email,
		ExpiresAt: expiresAt,
	}, nil
}
