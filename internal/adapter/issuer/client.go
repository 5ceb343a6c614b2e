package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"virtual-card-wallet/config"
	"virtual-card-wallet/internal/core/domain"
	"virtual-card-wallet/internal/core/ports"
)

// Upstream endpoint paths. All calls are POST with a JSON body, even
// the read-style ones.
const (
	pathListCards   = "/getsubuseralldigital"
	pathCardDetail  = "/getsubuserdigitalcard"
	pathApplyCard   = "/digitalnewsubusercard"
	pathAddSubUser  = "/subuseradd"
	pathCheck3DS    = "/subusercheck3ds"
	pathApprove3DS  = "/subuserapprove3ds"
	pathBlockCard   = "/subuserblockdigital"
	pathUnblockCard = "/subuserunblockdigital"
)

// Client talks to the card-issuing backend over its proprietary REST
// surface. It implements ports.IssuerGateway.
type Client struct {
	baseURL   string
	publicKey string
	secretKey string
	http      *http.Client
	log       zerolog.Logger
}

var _ ports.IssuerGateway = (*Client)(nil)

// NewClient builds an issuer client from config. The connect timeout
// bounds dialing and TLS setup; the read timeout bounds the whole
// request including the response body.
func NewClient(cfg config.IssuerConfig, log zerolog.Logger) *Client {
	dialer := &net.Dialer{Timeout: cfg.ConnectTimeout}
	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		publicKey: cfg.PublicKey,
		secretKey: cfg.SecretKey,
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.ReadTimeout,
		},
		log: log.With().Str("component", "issuer_client").Logger(),
	}
}

// post sends a JSON body to path and decodes the JSON reply into out.
// Response bodies are parsed leniently: unknown fields are ignored and
// absent fields stay at their zero values. The HTTP status code is not
// inspected here; callers that care about it use postStatus.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.postStatus(ctx, path, body, out)
	return err
}

func (c *Client) postStatus(ctx context.Context, path string, body, out any) (int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("publickey", c.publicKey)
	req.Header.Set("secretkey", c.secretKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("path", path).Msg("issuer request failed")
		return 0, fmt.Errorf("call %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read response from %s: %w", path, err)
	}

	c.log.Debug().
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("issuer request completed")

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response from %s: %w", path, err)
		}
	}
	return resp.StatusCode, nil
}

// ListCards fetches every card on the account plus the current
// issuance fee quote.
func (c *Client) ListCards(ctx context.Context, userEmail string) (*ports.CardListReply, error) {
	var reply cardListResponse
	if err := c.post(ctx, pathListCards, cardScopedRequest{UserEmail: userEmail}, &reply); err != nil {
		return nil, err
	}

	cards := make([]domain.CardSummary, 0, len(reply.Data))
	for _, item := range reply.Data {
		card := item.toDomain()
		if err := card.Validate(); err != nil {
			c.log.Warn().Err(err).Str("name_on_card", card.NameOnCard).Msg("card entry failed validation")
		}
		cards = append(cards, card)
	}

	return &ports.CardListReply{Cards: cards, SubUserFee: reply.SubUserFee}, nil
}

// GetCardDetail fetches full card data including PAN, balance,
// transactions, deposits and funding addresses.
func (c *Client) GetCardDetail(ctx context.Context, userEmail, cardID string) (*domain.CardDetail, error) {
	var reply cardDetailResponse
	req := cardScopedRequest{UserEmail: userEmail, CardID: cardID}
	if err := c.post(ctx, pathCardDetail, req, &reply); err != nil {
		return nil, err
	}
	if reply.Data == nil {
		return nil, fmt.Errorf("card detail for %s: empty response data", cardID)
	}
	return reply.Data.toDomain(cardID), nil
}

// ApplyForCard submits a completed application.
func (c *Client) ApplyForCard(ctx context.Context, req domain.ApplyCardRequest) (*ports.ApplyReply, error) {
	var reply applyCardResponse
	if err := c.post(ctx, pathApplyCard, req, &reply); err != nil {
		return nil, err
	}
	return &ports.ApplyReply{
		Status:         reply.Status,
		Message:        reply.Message,
		DepositAddress: reply.DepositAddress,
		SubUserFee:     reply.SubUserFee,
	}, nil
}

// AddSubUser registers a new account holder with the issuer.
func (c *Client) AddSubUser(ctx context.Context, req ports.SubUserRequest) (*ports.ApplyReply, error) {
	var reply applyCardResponse
	wire := subUserRequest{UserEmail: req.Email, Password: req.PIN, FirebaseUID: req.ExternalUID}
	if err := c.post(ctx, pathAddSubUser, wire, &reply); err != nil {
		return nil, err
	}
	return &ports.ApplyReply{Status: reply.Status, Message: reply.Message}, nil
}

// Check3DS polls for a pending authorization challenge on a card.
func (c *Client) Check3DS(ctx context.Context, userEmail, cardID string) (*ports.ThreeDSReply, error) {
	var reply threeDSResponse
	req := cardScopedRequest{UserEmail: userEmail, CardID: cardID}
	if err := c.post(ctx, pathCheck3DS, req, &reply); err != nil {
		return nil, err
	}
	out := &ports.ThreeDSReply{Code: reply.Code, Status: reply.Status}
	if reply.Data != nil {
		out.Data = reply.Data.toDomain()
	}
	return out, nil
}

// Approve3DS confirms a challenge upstream. Success is a 2xx status;
// the body carries nothing the caller needs.
func (c *Client) Approve3DS(ctx context.Context, userEmail, cardID, eventID string) error {
	req := approve3DSRequest{UserEmail: userEmail, CardID: cardID, EventID: eventID}
	status, err := c.postStatus(ctx, pathApprove3DS, req, nil)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("approve challenge %s: upstream status %d", eventID, status)
	}
	return nil
}

// BlockCard freezes an active card.
func (c *Client) BlockCard(ctx context.Context, userEmail, cardID string) (*ports.ToggleReply, error) {
	return c.toggle(ctx, pathBlockCard, userEmail, cardID)
}

// UnblockCard reactivates a blocked card.
func (c *Client) UnblockCard(ctx context.Context, userEmail, cardID string) (*ports.ToggleReply, error) {
	return c.toggle(ctx, pathUnblockCard, userEmail, cardID)
}

func (c *Client) toggle(ctx context.Context, path, userEmail, cardID string) (*ports.ToggleReply, error) {
	var reply struct {
		Message string `json:"message"`
	}
	req := cardScopedRequest{UserEmail: userEmail, CardID: cardID}
	if err := c.post(ctx, path, req, &reply); err != nil {
		return nil, err
	}
	return &ports.ToggleReply{Message: reply.Message}, nil
}
