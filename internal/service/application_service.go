package service

import (
	"context"

	"github.com/rs/zerolog"

	"virtual-card-wallet/internal/core/domain"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
)

// ApplicationServiceImpl implements ports.ApplicationService. Answer
// collection and field validation live on domain.Application; this
// service owns only the submit leg and the mapping of the backend
// verdict onto a terminal application state.
type ApplicationServiceImpl struct {
	gateway ports.IssuerGateway
	log     zerolog.Logger
}

// NewApplicationService creates a new ApplicationServiceImpl.
func NewApplicationService(gateway ports.IssuerGateway, log zerolog.Logger) *ApplicationServiceImpl {
	return &ApplicationServiceImpl{gateway: gateway, log: log}
}

// Submit sends a completed application upstream. Transport failures
// return an error and leave no terminal state; the attempt may be
// retried with the same answers. A backend verdict always produces a
// terminal outcome.
func (s *ApplicationServiceImpl) Submit(ctx context.Context, req domain.ApplyCardRequest) (*ports.ApplicationOutcome, error) {
	reply, err := s.gateway.ApplyForCard(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).Str("email", req.UserEmail).Msg("card application submit failed")
		return nil, apperror.ErrGatewayUnavailable(err)
	}

	switch {
	case reply.RequiresPayment():
		instruction := domain.NewPaymentInstruction(reply.DepositAddress, *reply.SubUserFee)
		s.log.Info().
			Str("email", req.UserEmail).
			Float64("amount_due", instruction.AmountDue).
			Msg("card application pending payment")
		return &ports.ApplicationOutcome{
			State:   domain.ApplicationPendingPayment,
			Message: reply.Message,
			Payment: instruction,
		}, nil

	case reply.Succeeded():
		s.log.Info().Str("email", req.UserEmail).Msg("card application issued")
		return &ports.ApplicationOutcome{
			State:   domain.ApplicationIssued,
			Message: reply.Message,
		}, nil

	case reply.Rejected():
		s.log.Info().Str("email", req.UserEmail).Str("reason", reply.Message).Msg("card application rejected")
		return &ports.ApplicationOutcome{
			State:   domain.ApplicationRejected,
			Message: reply.Message,
		}, nil

	default:
		// Unrecognized verdict. The backend message is not a rejection
		// reason, so it is logged but never shown to the user.
		s.log.Warn().
			Str("email", req.UserEmail).
			Str("status", reply.Status).
			Str("message", reply.Message).
			Msg("card application returned unrecognized status")
		return &ports.ApplicationOutcome{
			State:   domain.ApplicationFailed,
			Message: apperror.ErrApplicationFailed().Message,
		}, nil
	}
}
