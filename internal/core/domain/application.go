package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrPhoneDigitsOnly is the one validation failure callers treat
// specially: the flow re-prompts the phone field without advancing.
var ErrPhoneDigitsOnly = errors.New("phone must contain digits only")

// ApplicationState is the lifecycle state of one card application attempt.
type ApplicationState string

const (
	ApplicationCollecting     ApplicationState = "COLLECTING"
	ApplicationSubmitting     ApplicationState = "SUBMITTING"
	ApplicationIssued         ApplicationState = "ISSUED"
	ApplicationPendingPayment ApplicationState = "PENDING_PAYMENT"
	ApplicationRejected       ApplicationState = "REJECTED"
	ApplicationFailed         ApplicationState = "FAILED"
)

// IsTerminal reports whether the attempt has ended.
func (s ApplicationState) IsTerminal() bool {
	switch s {
	case ApplicationIssued, ApplicationPendingPayment, ApplicationRejected, ApplicationFailed:
		return true
	}
	return false
}

// ApplicationField identifies one KYC prompt in the collecting sequence.
type ApplicationField string

const (
	FieldFirstName   ApplicationField = "firstname"
	FieldLastName    ApplicationField = "lastname"
	FieldDOB         ApplicationField = "dob"
	FieldAddress     ApplicationField = "address1"
	FieldPostalCode  ApplicationField = "postalcode"
	FieldCity        ApplicationField = "city"
	FieldCountry     ApplicationField = "country"
	FieldState       ApplicationField = "state"
	FieldCountryCode ApplicationField = "countrycode"
	FieldPhone       ApplicationField = "phone"
)

// applicationFields is the prompt order of the collecting sequence.
var applicationFields = []ApplicationField{
	FieldFirstName,
	FieldLastName,
	FieldDOB,
	FieldAddress,
	FieldPostalCode,
	FieldCity,
	FieldCountry,
	FieldState,
	FieldCountryCode,
	FieldPhone,
}

// ApplyCardRequest carries the KYC record for one application attempt.
// It is built once per attempt and never persisted beyond it.
type ApplyCardRequest struct {
	UserEmail   string `json:"useremail"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	DOB         string `json:"dob"` // YYYY-MM-DD
	Address1    string `json:"address1"`
	PostalCode  string `json:"postalcode"`
	City        string `json:"city"`
	Country     string `json:"country"` // ISO alpha-2
	State       string `json:"state"`
	CountryCode string `json:"countrycode"` // phone country calling code
	Phone       string `json:"phone"`       // digits only
}

// Validate applies the per-field rules to a fully assembled record,
// in prompt order, stopping at the first failure.
func (r ApplyCardRequest) Validate() error {
	values := map[ApplicationField]string{
		FieldFirstName:   r.FirstName,
		FieldLastName:    r.LastName,
		FieldDOB:         r.DOB,
		FieldAddress:     r.Address1,
		FieldPostalCode:  r.PostalCode,
		FieldCity:        r.City,
		FieldCountry:     r.Country,
		FieldState:       r.State,
		FieldCountryCode: r.CountryCode,
		FieldPhone:       r.Phone,
	}
	for _, field := range applicationFields {
		if err := ValidateField(field, strings.TrimSpace(values[field])); err != nil {
			return err
		}
	}
	return nil
}

// Application is the per-attempt state machine:
// Collecting -> Submitting -> {Issued, PendingPayment, Rejected, Failed}.
// Each answer is validated before the prompt advances; an invalid answer
// leaves the machine on the same field.
type Application struct {
	userEmail string
	state     ApplicationState
	answers   map[ApplicationField]string
	step      int
}

// NewApplication starts a collecting attempt for the given user.
func NewApplication(userEmail string) *Application {
	return &Application{
		userEmail: userEmail,
		state:     ApplicationCollecting,
		answers:   make(map[ApplicationField]string, len(applicationFields)),
	}
}

// State returns the current lifecycle state.
func (a *Application) State() ApplicationState { return a.state }

// CurrentField returns the field awaiting an answer, or "" once all
// fields are collected.
func (a *Application) CurrentField() ApplicationField {
	if a.step >= len(applicationFields) {
		return ""
	}
	return applicationFields[a.step]
}

// Complete reports whether every field has been collected.
func (a *Application) Complete() bool {
	return a.step >= len(applicationFields)
}

// Answer validates the value for the current field and advances to the
// next prompt. On validation failure the step does not advance and the
// same field is re-prompted.
func (a *Application) Answer(value string) error {
	if a.state != ApplicationCollecting {
		return fmt.Errorf("cannot answer in state %s", a.state)
	}
	field := a.CurrentField()
	if field == "" {
		return fmt.Errorf("all fields already collected")
	}
	value = strings.TrimSpace(value)
	if err := ValidateField(field, value); err != nil {
		return err
	}
	a.answers[field] = value
	a.step++
	return nil
}

// BeginSubmit transitions Collecting -> Submitting and returns the
// request record. It fails if any field is still missing.
func (a *Application) BeginSubmit() (*ApplyCardRequest, error) {
	if a.state != ApplicationCollecting {
		return nil, fmt.Errorf("cannot submit from state %s", a.state)
	}
	if !a.Complete() {
		return nil, fmt.Errorf("field %s not collected", a.CurrentField())
	}
	a.state = ApplicationSubmitting
	return &ApplyCardRequest{
		UserEmail:   a.userEmail,
		FirstName:   a.answers[FieldFirstName],
		LastName:    a.answers[FieldLastName],
		DOB:         a.answers[FieldDOB],
		Address1:    a.answers[FieldAddress],
		PostalCode:  a.answers[FieldPostalCode],
		City:        a.answers[FieldCity],
		Country:     a.answers[FieldCountry],
		State:       a.answers[FieldState],
		CountryCode: a.answers[FieldCountryCode],
		Phone:       a.answers[FieldPhone],
	}, nil
}

// Resolve transitions Submitting to a terminal state.
func (a *Application) Resolve(state ApplicationState) error {
	if a.state != ApplicationSubmitting {
		return fmt.Errorf("cannot resolve from state %s", a.state)
	}
	if !state.IsTerminal() {
		return fmt.Errorf("%s is not a terminal state", state)
	}
	a.state = state
	return nil
}

// ValidateField applies the per-field client-side rules. Every field is
// required except state (some countries have none).
func ValidateField(field ApplicationField, value string) error {
	if value == "" {
		if field == FieldState {
			return nil
		}
		return fmt.Errorf("%s must not be blank", field)
	}
	switch field {
	case FieldPhone:
		if !digitsOnly(value) {
			return ErrPhoneDigitsOnly
		}
	case FieldCountryCode:
		if !digitsOnly(value) {
			return fmt.Errorf("%s must contain digits only", field)
		}
	case FieldDOB:
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("dob must be YYYY-MM-DD")
		}
	case FieldCountry:
		if len(value) != 2 || !lettersOnly(value) {
			return fmt.Errorf("country must be an ISO alpha-2 code")
		}
	}
	return nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func lettersOnly(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// PendingPaymentSurcharge is the flat adjustment added to the backend's
// quoted sub-user fee when presenting a payment instruction. Carried
// over verbatim from the production fee flow; its meaning is awaiting
// confirmation with the card program owner.
const PendingPaymentSurcharge = 5.0

// PaymentInstruction is what the user must pay to finalise issuance of
// a pending card.
type PaymentInstruction struct {
	DepositAddress string  `json:"deposit_address"`
	QuotedFee      float64 `json:"quoted_fee"`
	AmountDue      float64 `json:"amount_due"` // QuotedFee + PendingPaymentSurcharge
}

// NewPaymentInstruction builds the instruction for a quoted fee.
func NewPaymentInstruction(depositAddress string, quotedFee float64) *PaymentInstruction {
	return &PaymentInstruction{
		DepositAddress: depositAddress,
		QuotedFee:      quotedFee,
		AmountDue:      quotedFee + PendingPaymentSurcharge,
	}
}
