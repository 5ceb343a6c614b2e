// Package identity adapts the hosted identity provider's REST API to
// the Authenticator port. The provider owns credential custody; this
// service never stores passwords.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"virtual-card-wallet/config"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
)

const (
	pathSignUp        = "/v1/accounts:signUp"
	pathSignIn        = "/v1/accounts:signInWithPassword"
	pathSendResetCode = "/v1/accounts:sendOobCode"
)

// Client implements ports.Authenticator against the identity
// provider's REST surface. The API key travels as a query parameter,
// which is the provider's convention.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     zerolog.Logger
}

var _ ports.Authenticator = (*Client)(nil)

func NewClient(cfg config.IdentityConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log.With().Str("component", "identity_client").Logger(),
	}
}

type credentialRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type resetRequest struct {
	RequestType string `json:"requestType"`
	Email       string `json:"email"`
}

type accountResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) post(ctx context.Context, path string, body any, out *accountResponse) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal identity request: %w", err)
	}

	url := c.baseURL + path + "?key=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("identity request failed")
		return fmt.Errorf("call identity provider: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read identity response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode identity response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if out.Error != nil {
			msg = out.Error.Message
		}
		c.log.Debug().Str("path", path).Int("status", resp.StatusCode).Str("reason", msg).Msg("identity provider rejected request")
		return providerError(path, msg)
	}
	return nil
}

// providerError maps provider rejections onto app errors. Sign-in
// failures collapse to invalid credentials so callers never learn
// whether the email exists.
func providerError(path, message string) error {
	if path == pathSignIn {
		return apperror.ErrInvalidCredentials()
	}
	if message == "" {
		message = "registration failed"
	}
	return apperror.ErrRegistrationRejected(message)
}

// SignUp creates a credential record and returns the provider's
// account ID.
func (c *Client) SignUp(ctx context.Context, email, secret string) (string, error) {
	var out accountResponse
	req := credentialRequest{Email: email, Password: secret, ReturnSecureToken: true}
	if err := c.post(ctx, pathSignUp, req, &out); err != nil {
		return "", err
	}
	return out.LocalID, nil
}

// SignIn verifies a credential and returns the provider's account ID.
func (c *Client) SignIn(ctx context.Context, email, secret string) (string, error) {
	var out accountResponse
	req := credentialRequest{Email: email, Password: secret, ReturnSecureToken: true}
	if err := c.post(ctx, pathSignIn, req, &out); err != nil {
		return "", err
	}
	return out.LocalID, nil
}

// SendPasswordReset asks the provider to email a reset link. The
// provider handles the rest of the flow out of band.
func (c *Client) SendPasswordReset(ctx context.Context, email string) error {
	var out accountResponse
	req := resetRequest{RequestType: "PASSWORD_RESET", Email: email}
	return c.post(ctx, pathSendResetCode, req, &out)
}
