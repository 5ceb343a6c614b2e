package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"virtual-card-wallet/internal/core/domain"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/internal/core/ports/mocks"
	"virtual-card-wallet/pkg/apperror"
)

func applyRequest() domain.ApplyCardRequest {
	return domain.ApplyCardRequest{
		UserEmail:   "a@b.com",
		FirstName:   "Ada",
		LastName:    "Lovelace",
		DOB:         "1990-12-10",
		Address1:    "1 Analytical Way",
		PostalCode:  "0150",
		City:        "Oslo",
		Country:     "NO",
		CountryCode: "47",
		Phone:       "40000000",
	}
}

func TestApplication_Submit_Issued(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockIssuerGateway(ctrl)
	svc := NewApplicationService(gateway, zerolog.Nop())

	gateway.EXPECT().ApplyForCard(gomock.Any(), applyRequest()).
		Return(&ports.ApplyReply{Status: "success", Message: "card created"}, nil)

	outcome, err := svc.Submit(context.Background(), applyRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationIssued, outcome.State)
	assert.Nil(t, outcome.Payment)
}

func TestApplication_Submit_PendingPaymentAddsSurcharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockIssuerGateway(ctrl)
	svc := NewApplicationService(gateway, zerolog.Nop())

	fee := 20.0
	gateway.EXPECT().ApplyForCard(gomock.Any(), gomock.Any()).
		Return(&ports.ApplyReply{
			Status:         "success",
			Message:        "awaiting deposit",
			DepositAddress: "0xdeposit",
			SubUserFee:     &fee,
		}, nil)

	outcome, err := svc.Submit(context.Background(), applyRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationPendingPayment, outcome.State)
	require.NotNil(t, outcome.Payment)
	assert.Equal(t, "0xdeposit", outcome.Payment.DepositAddress)
	assert.Equal(t, 20.0, outcome.Payment.QuotedFee)
	assert.Equal(t, 25.0, outcome.Payment.AmountDue)
}

func TestApplication_Submit_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockIssuerGateway(ctrl)
	svc := NewApplicationService(gateway, zerolog.Nop())

	gateway.EXPECT().ApplyForCard(gomock.Any(), gomock.Any()).
		Return(&ports.ApplyReply{Status: "failure", Message: "kyc declined"}, nil)

	outcome, err := svc.Submit(context.Background(), applyRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationRejected, outcome.State)
	assert.Equal(t, "kyc declined", outcome.Message)
}

func TestApplication_Submit_UnrecognizedStatusFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockIssuerGateway(ctrl)
	svc := NewApplicationService(gateway, zerolog.Nop())

	gateway.EXPECT().ApplyForCard(gomock.Any(), gomock.Any()).
		Return(&ports.ApplyReply{Status: "pending", Message: "internal detail"}, nil)

	outcome, err := svc.Submit(context.Background(), applyRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicationFailed, outcome.State)
	assert.Equal(t, "Application failed. Please try again.", outcome.Message)
	assert.NotContains(t, outcome.Message, "internal detail")
}

func TestApplication_Submit_TransportFailureIsRetryable(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockIssuerGateway(ctrl)
	svc := NewApplicationService(gateway, zerolog.Nop())

	gateway.EXPECT().ApplyForCard(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	outcome, err := svc.Submit(context.Background(), applyRequest())
	require.Error(t, err)
	assert.Nil(t, outcome)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "An error occurred, please try again", appErr.Message)
}
