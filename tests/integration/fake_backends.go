package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
)

// fakeIssuer simulates the card-issuing backend: POST-only JSON
// endpoints authenticated by the publickey/secretkey header pair.
type fakeIssuer struct {
	mu sync.Mutex

	publicKey string
	secretKey string

	fee       float64
	cards     []issuerCard
	challenge map[string]map[string]any // cardID -> pending challenge payload
	approved  []string                  // eventIDs delivered via approve
	subUsers  map[string]string         // email -> pin

	// failing makes every endpoint return garbage, simulating an outage.
	failing bool

	server *httptest.Server
}

type issuerCard struct {
	ID       string
	LastFour string
	Status   string
	Balance  float64
}

func newFakeIssuer() *fakeIssuer {
	f := &fakeIssuer{
		publicKey: "pk-test",
		secretKey: "sk-test",
		fee:       20,
		challenge: make(map[string]map[string]any),
		subUsers:  make(map[string]string),
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeIssuer) close() { f.server.Close() }

func (f *fakeIssuer) setFailing(v bool) {
	f.mu.Lock()
	f.failing = v
	f.mu.Unlock()
}

func (f *fakeIssuer) addCard(card issuerCard) {
	f.mu.Lock()
	f.cards = append(f.cards, card)
	f.mu.Unlock()
}

func (f *fakeIssuer) setChallenge(cardID, eventID string) {
	f.mu.Lock()
	f.challenge[cardID] = map[string]any{
		"id":               1,
		"eventId":          eventID,
		"cardId":           cardID,
		"merchantName":     "ACME",
		"maskedPan":        "****4242",
		"merchantAmount":   "19.99",
		"merchantCurrency": "USD",
		"eventName":        "3ds",
		"status":           "pending",
	}
	f.mu.Unlock()
}

func (f *fakeIssuer) approvedEvents() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.approved))
	copy(out, f.approved)
	return out
}

func (f *fakeIssuer) cardStatus(cardID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cards {
		if c.ID == cardID {
			return c.Status
		}
	}
	return ""
}

func (f *fakeIssuer) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failing {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "<html>bad gateway</html>")
		return
	}
	if r.Method != http.MethodPost ||
		r.Header.Get("publickey") != f.publicKey ||
		r.Header.Get("secretkey") != f.secretKey {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"message":"bad credentials"}`)
		return
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	cardID, _ := body["cardid"].(string)

	switch r.URL.Path {
	case "/subuseradd":
		email, _ := body["useremail"].(string)
		pin, _ := body["password"].(string)
		f.subUsers[email] = pin
		writeJSON(w, map[string]any{"code": 200, "status": "success", "message": "sub user added"})

	case "/getsubuseralldigital":
		data := make([]map[string]any, 0, len(f.cards))
		for _, c := range f.cards {
			data = append(data, map[string]any{
				"cardid":     c.ID,
				"nameoncard": "ADA LOVELACE",
				"useremail":  body["useremail"],
				"lastfour":   c.LastFour,
				"brand":      "visa",
				"type":       "virtual",
				"paidcard":   1,
			})
		}
		writeJSON(w, map[string]any{"code": 200, "status": "success", "data": data, "subuserfee": f.fee})

	case "/getsubuserdigitalcard":
		for _, c := range f.cards {
			if c.ID != cardID {
				continue
			}
			writeJSON(w, map[string]any{"code": 200, "data": map[string]any{
				"card_number":       "4242424242424242",
				"expiry_month":      "09",
				"expiry_year":       "2027",
				"cvv":               "123",
				"nameoncard":        "ADA LOVELACE",
				"balance":           c.Balance,
				"status":            c.Status,
				"depositaddress":    "USDC-POLYGON-0xpoly",
				"btcdepositaddress": "BTC-bc1q",
				"transactions": map[string]any{"response": map[string]any{"items": []map[string]any{{
					"id": "t-1", "amount": 12.5, "currency": "USD", "status": "settled",
					"paymentDateTime": "2026-08-01T10:00:00Z",
					"merchant":        map[string]any{"name": "ACME", "city": "Oslo", "country": "NO"},
					"type":            "payment",
				}}}},
				"deposits": []map[string]any{{"txhash": "0xdead", "amount": 5000000, "created_at": "2026-07-01"}},
			}})
			return
		}
		writeJSON(w, map[string]any{"code": 404, "message": "not found"})

	case "/digitalnewsubusercard":
		writeJSON(w, map[string]any{
			"code": 200, "status": "success", "message": "awaiting deposit",
			"depositaddress": "0xdeposit", "subuserfee": f.fee,
		})

	case "/subusercheck3ds":
		if ch, ok := f.challenge[cardID]; ok {
			writeJSON(w, map[string]any{"status": "ok", "code": "200", "data": ch})
			return
		}
		writeJSON(w, map[string]any{"status": "no pending", "code": "422"})

	case "/subuserapprove3ds":
		eventID, _ := body["eventId"].(string)
		f.approved = append(f.approved, eventID)
		delete(f.challenge, cardID)
		writeJSON(w, map[string]any{"status": "ok"})

	case "/subuserblockdigital":
		f.setStatusLocked(cardID, "blocked")
		writeJSON(w, map[string]any{"message": "card blocked"})

	case "/subuserunblockdigital":
		f.setStatusLocked(cardID, "active")
		writeJSON(w, map[string]any{"message": "card active"})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeIssuer) setStatusLocked(cardID, status string) {
	for i := range f.cards {
		if f.cards[i].ID == cardID {
			f.cards[i].Status = status
		}
	}
}

// fakeIdentity simulates the hosted identity provider's REST API.
type fakeIdentity struct {
	mu       sync.Mutex
	accounts map[string]string // email -> password
	resets   []string
	server   *httptest.Server
}

func newFakeIdentity() *fakeIdentity {
	f := &fakeIdentity{accounts: make(map[string]string)}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	return f
}

func (f *fakeIdentity) close() { f.server.Close() }

func (f *fakeIdentity) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	email, _ := body["email"].(string)
	password, _ := body["password"].(string)

	switch r.URL.Path {
	case "/v1/accounts:signUp":
		if _, exists := f.accounts[email]; exists {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]any{"error": map[string]any{"message": "EMAIL_EXISTS"}})
			return
		}
		f.accounts[email] = password
		writeJSON(w, map[string]any{"localId": "uid-" + email, "email": email})

	case "/v1/accounts:signInWithPassword":
		if stored, ok := f.accounts[email]; !ok || stored != password {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(w, map[string]any{"error": map[string]any{"message": "INVALID_PASSWORD"}})
			return
		}
		writeJSON(w, map[string]any{"localId": "uid-" + email, "email": email})

	case "/v1/accounts:sendOobCode":
		f.resets = append(f.resets, email)
		writeJSON(w, map[string]any{"email": email})

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
