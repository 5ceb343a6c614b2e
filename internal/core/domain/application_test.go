package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answerAll(t *testing.T, app *Application) {
	t.Helper()
	answers := map[ApplicationField]string{
		FieldFirstName:   "Ada",
		FieldLastName:    "Lovelace",
		FieldDOB:         "1990-12-10",
		FieldAddress:     "12 King Street",
		FieldPostalCode:  "EC1A 1BB",
		FieldCity:        "London",
		FieldCountry:     "GB",
		FieldState:       "",
		FieldCountryCode: "44",
		FieldPhone:       "7700900123",
	}
	for !app.Complete() {
		require.NoError(t, app.Answer(answers[app.CurrentField()]))
	}
}

func TestApplication_CollectsInOrder(t *testing.T) {
	app := NewApplication("user@example.com")
	assert.Equal(t, ApplicationCollecting, app.State())
	assert.Equal(t, FieldFirstName, app.CurrentField())

	require.NoError(t, app.Answer("Ada"))
	assert.Equal(t, FieldLastName, app.CurrentField())
}

func TestApplication_InvalidPhoneRepromptsSameField(t *testing.T) {
	app := NewApplication("user@example.com")
	answers := []string{"Ada", "Lovelace", "1990-12-10", "12 King Street", "EC1A 1BB", "London", "GB", "", "44"}
	for _, a := range answers {
		require.NoError(t, app.Answer(a))
	}
	require.Equal(t, FieldPhone, app.CurrentField())

	// Non-digit characters must not advance the prompt.
	assert.Error(t, app.Answer("+44 7700 900123"))
	assert.Equal(t, FieldPhone, app.CurrentField())
	assert.False(t, app.Complete())

	require.NoError(t, app.Answer("7700900123"))
	assert.True(t, app.Complete())
}

func TestApplication_BlankAnswersRejectedExceptState(t *testing.T) {
	app := NewApplication("user@example.com")
	assert.Error(t, app.Answer("   "))
	assert.Equal(t, FieldFirstName, app.CurrentField())
}

func TestValidateField(t *testing.T) {
	tests := []struct {
		name    string
		field   ApplicationField
		value   string
		wantErr bool
	}{
		{"blank first name", FieldFirstName, "", true},
		{"blank state allowed", FieldState, "", false},
		{"dob valid", FieldDOB, "1985-06-01", false},
		{"dob wrong format", FieldDOB, "01/06/1985", true},
		{"country alpha-2", FieldCountry, "US", false},
		{"country full name", FieldCountry, "USA", true},
		{"country digits", FieldCountry, "44", true},
		{"phone digits", FieldPhone, "5551234", false},
		{"phone with dash", FieldPhone, "555-1234", true},
		{"calling code digits", FieldCountryCode, "1", false},
		{"calling code with plus", FieldCountryCode, "+1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateField(tt.field, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateField_BadPhoneIsSentinel(t *testing.T) {
	assert.ErrorIs(t, ValidateField(FieldPhone, "555-1234"), ErrPhoneDigitsOnly)
	assert.ErrorIs(t, ApplyCardRequest{
		UserEmail: "a@b.com", FirstName: "Ada", LastName: "Lovelace",
		DOB: "1990-12-10", Address1: "1 Way", PostalCode: "0150",
		City: "Oslo", Country: "NO", CountryCode: "47", Phone: "+4740000000",
	}.Validate(), ErrPhoneDigitsOnly)
}

func TestApplication_BeginSubmit(t *testing.T) {
	app := NewApplication("user@example.com")

	// Incomplete application cannot submit.
	_, err := app.BeginSubmit()
	assert.Error(t, err)

	answerAll(t, app)
	req, err := app.BeginSubmit()
	require.NoError(t, err)
	assert.Equal(t, ApplicationSubmitting, app.State())
	assert.Equal(t, "user@example.com", req.UserEmail)
	assert.Equal(t, "Ada", req.FirstName)
	assert.Equal(t, "1990-12-10", req.DOB)
	assert.Equal(t, "GB", req.Country)
	assert.Equal(t, "7700900123", req.Phone)

	// Double submit is invalid.
	_, err = app.BeginSubmit()
	assert.Error(t, err)

	// Answering after submit is invalid.
	assert.Error(t, app.Answer("late"))
}

func TestApplication_Resolve(t *testing.T) {
	app := NewApplication("user@example.com")
	answerAll(t, app)
	_, err := app.BeginSubmit()
	require.NoError(t, err)

	// Cannot resolve to a non-terminal state.
	assert.Error(t, app.Resolve(ApplicationCollecting))

	require.NoError(t, app.Resolve(ApplicationPendingPayment))
	assert.Equal(t, ApplicationPendingPayment, app.State())

	// Terminal states are final.
	assert.Error(t, app.Resolve(ApplicationIssued))
}

func TestApplication_ResolveBeforeSubmit(t *testing.T) {
	app := NewApplication("user@example.com")
	assert.Error(t, app.Resolve(ApplicationFailed))
}

func TestApplicationState_IsTerminal(t *testing.T) {
	assert.False(t, ApplicationCollecting.IsTerminal())
	assert.False(t, ApplicationSubmitting.IsTerminal())
	assert.True(t, ApplicationIssued.IsTerminal())
	assert.True(t, ApplicationPendingPayment.IsTerminal())
	assert.True(t, ApplicationRejected.IsTerminal())
	assert.True(t, ApplicationFailed.IsTerminal())
}

func TestNewPaymentInstruction_AddsSurcharge(t *testing.T) {
	pi := NewPaymentInstruction("USDC-POLYGON-0xabc", 20)
	assert.Equal(t, 20.0, pi.QuotedFee)
	assert.Equal(t, 25.0, pi.AmountDue)
	assert.Equal(t, "USDC-POLYGON-0xabc", pi.DepositAddress)
}
