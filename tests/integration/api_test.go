package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virtual-card-wallet/config"
	httpHandler "virtual-card-wallet/internal/adapter/http/handler"
	"virtual-card-wallet/internal/adapter/identity"
	"virtual-card-wallet/internal/adapter/issuer"
	redisStorage "virtual-card-wallet/internal/adapter/storage/redis"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/internal/service"
	"virtual-card-wallet/pkg/logger"
)

// testApp wires the real HTTP layer, middleware, services and Redis
// stores against fake upstream backends. Only the process boundary is
// simulated; everything inside it is the production wiring.
type testApp struct {
	server   *httptest.Server
	redis    *miniredis.Miniredis
	issuer   *fakeIssuer
	identity *fakeIdentity
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	fakeIss := newFakeIssuer()
	t.Cleanup(fakeIss.close)
	fakeIdn := newFakeIdentity()
	t.Cleanup(fakeIdn.close)

	log := logger.New("error", false)

	issuerClient := issuer.NewClient(config.IssuerConfig{
		BaseURL:        fakeIss.server.URL,
		PublicKey:      fakeIss.publicKey,
		SecretKey:      fakeIss.secretKey,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    10 * time.Second,
	}, log)
	identityClient := identity.NewClient(config.IdentityConfig{
		BaseURL: fakeIdn.server.URL,
		APIKey:  "test-key",
		Timeout: 5 * time.Second,
	}, log)

	sessionStore := redisStorage.NewSessionStore(rdb)
	tokenSvc := service.NewJWTTokenService("test-jwt-secret-key-32bytes!!", 24*time.Hour, "test-issuer")

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        service.NewAuthService(identityClient, issuerClient, tokenSvc, sessionStore, log),
		LedgerSvc:      service.NewLedgerService(issuerClient, log),
		ApplicationSvc: service.NewApplicationService(issuerClient, log),
		ChallengeSvc:   service.NewChallengeService(issuerClient, log),
		ControlSvc:     service.NewControlService(issuerClient, log),
		TokenSvc:       tokenSvc,
		SessionStore:   sessionStore,
		HealthCheckers: []ports.HealthChecker{redisStorage.NewHealthCheck(rdb)},
		Logger:         log,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return &testApp{server: server, redis: mr, issuer: fakeIss, identity: fakeIdn}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

func (a *testApp) register(t *testing.T, email, password string) string {
	t.Helper()
	resp, body := a.do(t, http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %v", body)
	data := body["data"].(map[string]any)
	return data["token"].(string)
}

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_RegisterLoginLogout(t *testing.T) {
	app := newTestApp(t)

	token := app.register(t, "ada@example.com", "abc123")
	assert.NotEmpty(t, token)

	// Duplicate registration surfaces the provider's verdict.
	resp, body := app.do(t, http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"email": "ada@example.com", "password": "abc123"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "AUTH_002", body["error_code"])

	// Wrong password at login is a uniform 401.
	resp, body = app.do(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "ada@example.com", "password": "xyz789"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_001", body["error_code"])

	// Correct login opens a fresh session.
	resp, body = app.do(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "ada@example.com", "password": "abc123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	loginToken := body["data"].(map[string]any)["token"].(string)

	// Logout revokes the session; the token no longer opens doors.
	resp, _ = app.do(t, http.MethodPost, "/api/v1/auth/logout", loginToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = app.do(t, http.MethodGet, "/api/v1/cards", loginToken, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "AUTH_004", body["error_code"])
}

func TestIntegration_PasswordPolicy(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodPost, "/api/v1/auth/register", "",
		map[string]string{"email": "ada@example.com", "password": "abc12"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_003", body["error_code"])
}

func TestIntegration_CardsRequireSession(t *testing.T) {
	app := newTestApp(t)

	resp, _ := app.do(t, http.MethodGet, "/api/v1/cards", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = app.do(t, http.MethodGet, "/api/v1/cards", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestIntegration_ListAndDetail(t *testing.T) {
	app := newTestApp(t)
	app.issuer.addCard(issuerCard{ID: "c-1", LastFour: "4242", Status: "active", Balance: 105.5})

	token := app.register(t, "ada@example.com", "abc123")

	resp, body := app.do(t, http.MethodGet, "/api/v1/cards", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, 20.0, data["sub_user_fee"])
	cards := data["cards"].([]any)
	require.Len(t, cards, 1)
	assert.Equal(t, "4242", cards[0].(map[string]any)["last_four"])

	resp, body = app.do(t, http.MethodGet, "/api/v1/cards/c-1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	card := body["data"].(map[string]any)["card"].(map[string]any)
	assert.Equal(t, "4242424242424242", card["card_number"])
	assert.Equal(t, 105.5, card["balance"])
	assert.Equal(t, "active", card["status"])

	transactions := card["transactions"].([]any)
	require.Len(t, transactions, 1)
	assert.Equal(t, "ACME", transactions[0].(map[string]any)["merchant_name"])
}

func TestIntegration_OutageServesStaleSnapshot(t *testing.T) {
	app := newTestApp(t)
	app.issuer.addCard(issuerCard{ID: "c-1", LastFour: "4242", Status: "active", Balance: 10})

	token := app.register(t, "ada@example.com", "abc123")

	resp, _ := app.do(t, http.MethodGet, "/api/v1/cards", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	app.issuer.setFailing(true)

	resp, body := app.do(t, http.MethodGet, "/api/v1/cards", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["stale"])
	assert.Len(t, data["cards"].([]any), 1)
}

func TestIntegration_OutageWithoutSnapshotIsGenericRetryable(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "ada@example.com", "abc123")

	app.issuer.setFailing(true)

	resp, body := app.do(t, http.MethodGet, "/api/v1/cards", token, nil)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "An error occurred, please try again", body["message"])
}

func TestIntegration_ApplyPendingPayment(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "ada@example.com", "abc123")

	resp, body := app.do(t, http.MethodPost, "/api/v1/cards", token, map[string]string{
		"first_name": "Ada", "last_name": "Lovelace", "dob": "1990-12-10",
		"address1": "1 Analytical Way", "postal_code": "0150", "city": "Oslo",
		"country": "NO", "country_code": "47", "phone": "40000000",
	})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	outcome := body["data"].(map[string]any)
	assert.Equal(t, "PENDING_PAYMENT", outcome["state"])
	payment := outcome["payment"].(map[string]any)
	assert.Equal(t, "0xdeposit", payment["deposit_address"])
	assert.Equal(t, 20.0, payment["quoted_fee"])
	assert.Equal(t, 25.0, payment["amount_due"])
}

func TestIntegration_ApplyFieldValidation(t *testing.T) {
	app := newTestApp(t)
	token := app.register(t, "ada@example.com", "abc123")

	resp, body := app.do(t, http.MethodPost, "/api/v1/cards", token, map[string]string{
		"first_name": "Ada", "last_name": "Lovelace", "dob": "10/12/1990",
		"address1": "1 Way", "postal_code": "0150", "city": "Oslo",
		"country": "NO", "country_code": "47", "phone": "40000000",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VAL_001", body["error_code"])
}

func TestIntegration_ChallengeLifecycle(t *testing.T) {
	app := newTestApp(t)
	app.issuer.addCard(issuerCard{ID: "c-1", LastFour: "4242", Status: "active"})
	token := app.register(t, "ada@example.com", "abc123")

	// No challenge pending: a normal empty result, not an error.
	resp, body := app.do(t, http.MethodPost, "/api/v1/cards/c-1/challenge", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "NONE", body["data"].(map[string]any)["outcome"])

	// Surface a challenge and approve it.
	app.issuer.setChallenge("c-1", "ev-1")

	resp, body = app.do(t, http.MethodPost, "/api/v1/cards/c-1/challenge", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := body["data"].(map[string]any)
	assert.Equal(t, "PENDING", result["outcome"])
	challenge := result["challenge"].(map[string]any)
	assert.Equal(t, "ev-1", challenge["event_id"])
	assert.Equal(t, "ACME", challenge["merchant_name"])

	resp, body = app.do(t, http.MethodPost, "/api/v1/cards/c-1/challenge/approve", token,
		map[string]string{"event_id": "ev-1"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, true, body["data"].(map[string]any)["delivered"])
	assert.Equal(t, []string{"ev-1"}, app.issuer.approvedEvents())

	// The challenge is resolved; approving again finds nothing.
	resp, body = app.do(t, http.MethodPost, "/api/v1/cards/c-1/challenge/approve", token,
		map[string]string{"event_id": "ev-1"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "TDS_002", body["error_code"])
}

func TestIntegration_ChallengeRejectIsLocal(t *testing.T) {
	app := newTestApp(t)
	app.issuer.addCard(issuerCard{ID: "c-1", LastFour: "4242", Status: "active"})
	token := app.register(t, "ada@example.com", "abc123")

	app.issuer.setChallenge("c-1", "ev-1")

	resp, _ := app.do(t, http.MethodPost, "/api/v1/cards/c-1/challenge", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPost, "/api/v1/cards/c-1/challenge/reject", token,
		map[string]string{"event_id": "ev-1"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Nothing was delivered upstream; the backend still holds the event.
	assert.Empty(t, app.issuer.approvedEvents())
}

func TestIntegration_ToggleRoundTrip(t *testing.T) {
	app := newTestApp(t)
	app.issuer.addCard(issuerCard{ID: "c-1", LastFour: "4242", Status: "active"})
	token := app.register(t, "ada@example.com", "abc123")

	resp, body := app.do(t, http.MethodPost, "/api/v1/cards/c-1/toggle", token,
		map[string]string{"current_status": "active"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := body["data"].(map[string]any)
	assert.Equal(t, "CONFIRMED", result["state"])
	assert.Equal(t, "blocked", result["target_status"])
	assert.Equal(t, "blocked", app.issuer.cardStatus("c-1"))

	resp, body = app.do(t, http.MethodPost, "/api/v1/cards/c-1/toggle", token,
		map[string]string{"current_status": "blocked"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result = body["data"].(map[string]any)
	assert.Equal(t, "active", result["target_status"])
	assert.Equal(t, "active", app.issuer.cardStatus("c-1"))
}

func TestIntegration_ToggleFailureRollsBack(t *testing.T) {
	app := newTestApp(t)
	app.issuer.addCard(issuerCard{ID: "c-1", LastFour: "4242", Status: "active"})
	token := app.register(t, "ada@example.com", "abc123")

	app.issuer.setFailing(true)

	resp, body := app.do(t, http.MethodPost, "/api/v1/cards/c-1/toggle", token,
		map[string]string{"current_status": "active"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "An error occurred, please try again", body["message"])

	app.issuer.setFailing(false)
	assert.Equal(t, "active", app.issuer.cardStatus("c-1"))
}

func TestIntegration_PasswordReset(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "ada@example.com", "abc123")

	resp, _ := app.do(t, http.MethodPost, "/api/v1/auth/password-reset", "",
		map[string]string{"email": "ada@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	app.identity.mu.Lock()
	defer app.identity.mu.Unlock()
	assert.Equal(t, []string{"ada@example.com"}, app.identity.resets)
}

func TestIntegration_DepositDisplay(t *testing.T) {
	app := newTestApp(t)
	app.issuer.addCard(issuerCard{ID: "c-1", LastFour: "4242", Status: "active"})
	token := app.register(t, "ada@example.com", "abc123")

	resp, body := app.do(t, http.MethodGet, "/api/v1/cards/c-1", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	card := body["data"].(map[string]any)["card"].(map[string]any)

	deposits := card["deposits"].([]any)
	require.Len(t, deposits, 1)
	// 5_000_000 base units at 10^6 per dollar
	assert.Equal(t, 5000000.0, deposits[0].(map[string]any)["amount"])

	chains := card["chain_addresses"].(map[string]any)
	assert.Equal(t, "USDC-POLYGON-0xpoly", chains["USDC-POLYGON"])
}

func TestIntegration_RequestIDInEnvelope(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.do(t, http.MethodPost, "/api/v1/auth/login", "",
		map[string]string{"email": "ada@example.com", "password": "abc123"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, body["request_id"])
}
