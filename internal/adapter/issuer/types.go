package issuer

import (
	"virtual-card-wallet/internal/core/domain"
)

// Wire types mirror the issuing backend's JSON exactly. Unknown fields
// are ignored and missing optional fields coerce to zero values, which
// encoding/json gives us for free.

type cardListResponse struct {
	Code       int        `json:"code"`
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Data       []cardItem `json:"data"`
	SubUserFee float64    `json:"subuserfee"`
}

type cardItem struct {
	CardID         *string `json:"cardid"`
	NameOnCard     string  `json:"nameoncard"`
	UserEmail      string  `json:"useremail"`
	LastFour       string  `json:"lastfour"`
	Brand          string  `json:"brand"`
	Type           string  `json:"type"`
	PaidCard       int     `json:"paidcard"`
	DepositAddress string  `json:"depositaddress"`
}

type cardDetailResponse struct {
	Code    int          `json:"code"`
	Status  string       `json:"status"`
	Message string       `json:"message"`
	Data    *cardDetails `json:"data"`
}

type cardDetails struct {
	CardNumber   string              `json:"card_number"`
	ExpiryMonth  string              `json:"expiry_month"`
	ExpiryYear   string              `json:"expiry_year"`
	CVV          string              `json:"cvv"`
	NameOnCard   string              `json:"nameoncard"`
	Address      string              `json:"address1"`
	PostalCode   string              `json:"postalcode"`
	Balance      float64             `json:"balance"`
	Status       string              `json:"status"`
	Transactions transactionsWrapper `json:"transactions"`
	Deposits     []depositItem       `json:"deposits"`

	// Per-chain funding addresses, each stored with its label prefix.
	DepositAddress     string `json:"depositaddress"` // USDC-POLYGON
	BTCDepositAddress  string `json:"btcdepositaddress"`
	ETHDepositAddress  string `json:"ethdepositaddress"`
	USDTDepositAddress string `json:"usdtdepositaddress"`
	SOLDepositAddress  string `json:"soldepositaddress"`
	BNBDepositAddress  string `json:"bnbdepositaddress"`
	XRPDepositAddress  string `json:"xrpdepositaddress"`
	PAXGDepositAddress string `json:"paxgdepositaddress"`
}

type transactionsWrapper struct {
	Response transactionPage `json:"response"`
}

type transactionPage struct {
	Items []transactionItem `json:"items"`
}

type transactionItem struct {
	ID              string       `json:"id"`
	Amount          float64      `json:"amount"`
	Currency        string       `json:"currency"`
	Status          string       `json:"status"`
	PaymentDateTime string       `json:"paymentDateTime"`
	Merchant        merchantInfo `json:"merchant"`
	Type            string       `json:"type"`
}

type merchantInfo struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type depositItem struct {
	TxHash    string `json:"txhash"`
	Amount    int64  `json:"amount"` // raw base units
	CreatedAt string `json:"created_at"`
}

type applyCardResponse struct {
	Code           int      `json:"code"`
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	DepositAddress string   `json:"depositaddress"`
	SubUserFee     *float64 `json:"subuserfee"`
}

type subUserRequest struct {
	UserEmail   string `json:"useremail"`
	Password    string `json:"password"`
	FirebaseUID string `json:"firebaseuid"`
}

type cardScopedRequest struct {
	UserEmail string `json:"useremail"`
	CardID    string `json:"cardid,omitempty"`
}

type approve3DSRequest struct {
	UserEmail string `json:"useremail"`
	CardID    string `json:"cardid"`
	EventID   string `json:"eventId"`
}

type threeDSResponse struct {
	Status string       `json:"status"`
	Code   string       `json:"code"`
	Data   *threeDSData `json:"data"`
}

type threeDSData struct {
	ID             int     `json:"id"`
	EventID        string  `json:"eventId"`
	CardID         string  `json:"cardId"`
	MerchantName   string  `json:"merchantName"`
	MaskedPAN      string  `json:"maskedPan"`
	MerchantAmount string  `json:"merchantAmount"`
	Currency       string  `json:"merchantCurrency"`
	EventName      string  `json:"eventName"`
	Status         string  `json:"status"`
	JSON           string  `json:"json"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
	DeletedAt      *string `json:"deleted_at"`
}

func (i cardItem) toDomain() domain.CardSummary {
	return domain.CardSummary{
		CardID:         i.CardID,
		NameOnCard:     i.NameOnCard,
		UserEmail:      i.UserEmail,
		LastFour:       i.LastFour,
		Brand:          i.Brand,
		CardType:       domain.CardType(i.Type),
		PaidFlag:       i.PaidCard,
		DepositAddress: i.DepositAddress,
	}
}

func (d *cardDetails) toDomain(cardID string) *domain.CardDetail {
	detail := &domain.CardDetail{
		CardID:      cardID,
		CardNumber:  d.CardNumber,
		ExpiryMonth: d.ExpiryMonth,
		ExpiryYear:  d.ExpiryYear,
		CVV:         d.CVV,
		NameOnCard:  d.NameOnCard,
		Address:     d.Address,
		PostalCode:  d.PostalCode,
		Balance:     d.Balance,
		Status:      domain.CardStatus(d.Status),
		ChainAddresses: map[string]string{
			"USDC-POLYGON":   d.DepositAddress,
			"BTC":            d.BTCDepositAddress,
			"ETH":            d.ETHDepositAddress,
			"USDT-BSC|BEP20": d.USDTDepositAddress,
			"SOL":            d.SOLDepositAddress,
			"BNB-BSC":        d.BNBDepositAddress,
			"XRP-BSC":        d.XRPDepositAddress,
			"PAXG":           d.PAXGDepositAddress,
		},
	}

	items := d.Transactions.Response.Items
	detail.Transactions = make([]domain.TransactionRecord, 0, len(items))
	for _, it := range items {
		detail.Transactions = append(detail.Transactions, domain.TransactionRecord{
			ID:              it.ID,
			Amount:          it.Amount,
			Currency:        it.Currency,
			Status:          it.Status,
			PaymentDateTime: it.PaymentDateTime,
			MerchantName:    it.Merchant.Name,
			MerchantCity:    it.Merchant.City,
			MerchantCountry: it.Merchant.Country,
			Type:            domain.TransactionType(it.Type),
		})
	}

	detail.Deposits = make([]domain.DepositRecord, 0, len(d.Deposits))
	for _, dep := range d.Deposits {
		detail.Deposits = append(detail.Deposits, domain.DepositRecord{
			TxHash:    dep.TxHash,
			Amount:    dep.Amount,
			CreatedAt: dep.CreatedAt,
		})
	}

	return detail
}

func (t *threeDSData) toDomain() *domain.Challenge {
	return &domain.Challenge{
		ID:           t.ID,
		EventID:      t.EventID,
		CardID:       t.CardID,
		MerchantName: t.MerchantName,
		MaskedPAN:    t.MaskedPAN,
		Amount:       t.MerchantAmount,
		Currency:     t.Currency,
		EventName:    t.EventName,
		Status:       t.Status,
		Payload:      t.JSON,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		DeletedAt:    t.DeletedAt,
	}
}
