package domain

import (
	"fmt"
	"strings"
	"time"
)

// CardStatus represents the block state of an issued card.
type CardStatus string

const (
	CardStatusActive  CardStatus = "active"
	CardStatusBlocked CardStatus = "blocked"
)

// CardType distinguishes virtual from physical cards.
type CardType string

const (
	CardTypeVirtual  CardType = "virtual"
	CardTypePhysical CardType = "physical"
)

// CardSummary identifies one card in the user's collection. A summary is
// either pending (application accepted, issuance awaiting on-chain
// settlement) or issued; Validate rejects every other combination.
type CardSummary struct {
	CardID         *string  `json:"card_id"`
	NameOnCard     string   `json:"name_on_card"`
	UserEmail      string   `json:"user_email"`
	LastFour       string   `json:"last_four"`
	Brand          string   `json:"brand"`
	CardType       CardType `json:"card_type"`
	PaidFlag       int      `json:"paid_flag"`
	DepositAddress string   `json:"deposit_address,omitempty"`
}

// IsPending reports whether this summary is a payment-pending placeholder.
func (s *CardSummary) IsPending() bool {
	return s.CardID == nil && s.PaidFlag == 0
}

// IsIssued reports whether this summary refers to a usable card.
func (s *CardSummary) IsIssued() bool {
	return s.CardID != nil
}

// Validate enforces the pending/issued exclusivity invariant.
func (s *CardSummary) Validate() error {
	switch {
	case s.IsIssued():
		if s.DepositAddress != "" {
			return fmt.Errorf("issued card %s carries a deposit address", *s.CardID)
		}
		return nil
	case s.IsPending():
		if s.DepositAddress == "" {
			return fmt.Errorf("pending card for %s has no deposit address", s.UserEmail)
		}
		return nil
	default:
		return fmt.Errorf("card for %s is neither pending nor issued (paid_flag=%d)", s.UserEmail, s.PaidFlag)
	}
}

// ChainLabels lists the supported per-chain deposit address labels, in
// the order they are presented.
var ChainLabels = []string{
	"USDC-POLYGON",
	"BTC",
	"ETH",
	"USDT-BSC|BEP20",
	"SOL",
	"BNB-BSC",
	"XRP-BSC",
	"PAXG",
}

// DepositAddress is one per-chain funding address, ready for display.
type DepositAddress struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}

// CardDetail is the full state of one issued card. PAN, CVV and expiry
// are display-sensitive and must never appear in logs.
type CardDetail struct {
	CardID      string     `json:"card_id"`
	CardNumber  string     `json:"card_number"`
	ExpiryMonth string     `json:"expiry_month"`
	ExpiryYear  string     `json:"expiry_year"`
	CVV         string     `json:"cvv"`
	NameOnCard  string     `json:"name_on_card"`
	Address     string     `json:"address,omitempty"`
	PostalCode  string     `json:"postal_code,omitempty"`
	Balance     float64    `json:"balance"` // USD
	Status      CardStatus `json:"status"`

	// Transactions keep the backend's order; they are never re-sorted.
	Transactions []TransactionRecord `json:"transactions"`
	Deposits     []DepositRecord     `json:"deposits"`

	// Raw per-chain addresses, keyed by chain label, each stored with
	// its "<LABEL>-" prefix as delivered by the backend.
	ChainAddresses map[string]string `json:"chain_addresses,omitempty"`
}

// IsActive reports whether the card currently accepts transactions.
func (d *CardDetail) IsActive() bool {
	return d.Status == CardStatusActive
}

// MaskedPAN returns the card number with all but the last four digits
// hidden, safe for logs and list views.
func (d *CardDetail) MaskedPAN() string {
	n := d.CardNumber
	if len(n) < 4 {
		return "****"
	}
	return "**** **** **** " + n[len(n)-4:]
}

// DisplayAddresses returns the per-chain deposit addresses with their
// label prefixes stripped, in ChainLabels order. Addresses that are
// blank after stripping are omitted.
func (d *CardDetail) DisplayAddresses() []DepositAddress {
	out := make([]DepositAddress, 0, len(d.ChainAddresses))
	for _, label := range ChainLabels {
		addr := StripAddressPrefix(label, d.ChainAddresses[label])
		if strings.TrimSpace(addr) == "" {
			continue
		}
		out = append(out, DepositAddress{Label: label, Address: addr})
	}
	return out
}

// StripAddressPrefix removes the "<label>-" storage prefix from a
// deposit address. Stripping is label-specific and idempotent: an
// address without the prefix is returned unchanged.
func StripAddressPrefix(label, address string) string {
	return strings.TrimPrefix(address, label+"-")
}

// TransactionType distinguishes debits from credits in display.
type TransactionType string

const (
	TransactionTypePayment TransactionType = "payment"
	TransactionTypeRefund  TransactionType = "refund"
)

// TransactionRecord is one card transaction as returned by the backend.
// Amount is always positive; the displayed sign derives from the type.
type TransactionRecord struct {
	ID              string          `json:"id"`
	Amount          float64         `json:"amount"`
	Currency        string          `json:"currency"`
	Status          string          `json:"status"`
	PaymentDateTime string          `json:"payment_date_time"` // ISO-8601 with zone
	MerchantName    string          `json:"merchant_name"`
	MerchantCity    string          `json:"merchant_city"`
	MerchantCountry string          `json:"merchant_country"`
	Type            TransactionType `json:"type"`
}

// IsDebit reports whether the record displays as a debit. Payments are
// debits; every other type is a credit.
func (r *TransactionRecord) IsDebit() bool {
	return strings.EqualFold(string(r.Type), string(TransactionTypePayment))
}

// DisplayAmount formats the signed USD amount, e.g. "-$12.34" or "+$0.99".
func (r *TransactionRecord) DisplayAmount() string {
	if r.IsDebit() {
		return fmt.Sprintf("-$%.2f", r.Amount)
	}
	return fmt.Sprintf("+$%.2f", r.Amount)
}

// Time parses the payment timestamp. The zero time and an error are
// returned if the backend sent something unparseable; callers fall back
// to the raw string.
func (r *TransactionRecord) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, r.PaymentDateTime)
}

// depositBaseUnits is the divisor converting raw on-chain deposit
// amounts into display units.
const depositBaseUnits = 1_000_000

// DepositRecord is one confirmed on-chain funding event. Deposits are
// always credits.
type DepositRecord struct {
	TxHash    string `json:"tx_hash"`
	Amount    int64  `json:"amount"` // raw base units, 10^6 per display unit
	CreatedAt string `json:"created_at"`
}

// DisplayValue converts the raw base-unit amount to display units.
func (d *DepositRecord) DisplayValue() float64 {
	return float64(d.Amount) / depositBaseUnits
}

// DisplayAmount formats the deposit as a credit, e.g. "+$5.00".
func (d *DepositRecord) DisplayAmount() string {
	return fmt.Sprintf("+$%.2f", d.DisplayValue())
}
