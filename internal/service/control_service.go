package service

import (
	"context"

	"github.com/rs/zerolog"

	"virtual-card-wallet/internal/core/domain"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
)

// ControlServiceImpl implements ports.ControlService. The operation is
// chosen from the card's current status: active cards are blocked,
// anything else is unblocked.
type ControlServiceImpl struct {
	gateway ports.IssuerGateway
	log     zerolog.Logger
}

// NewControlService creates a new ControlServiceImpl.
func NewControlService(gateway ports.IssuerGateway, log zerolog.Logger) *ControlServiceImpl {
	return &ControlServiceImpl{gateway: gateway, log: log}
}

// Toggle drives the card towards the opposite block state. On failure
// the returned result is rolled back to the pre-toggle status and is
// accompanied by the error; on success the confirmation message is
// carried through but the caller must refresh the card detail for the
// authoritative status.
func (s *ControlServiceImpl) Toggle(ctx context.Context, userEmail, cardID string, current domain.CardStatus) (*domain.ToggleResult, error) {
	target := domain.ToggleTarget(current)

	var reply *ports.ToggleReply
	var err error
	if target == domain.CardStatusBlocked {
		reply, err = s.gateway.BlockCard(ctx, userEmail, cardID)
	} else {
		reply, err = s.gateway.UnblockCard(ctx, userEmail, cardID)
	}

	if err != nil {
		s.log.Warn().Err(err).
			Str("card_id", cardID).
			Str("target", string(target)).
			Msg("card toggle failed, rolling back")
		return &domain.ToggleResult{
			State:          domain.ToggleRolledBack,
			PreviousStatus: current,
			TargetStatus:   target,
		}, apperror.ErrGatewayUnavailable(err)
	}

	s.log.Info().
		Str("card_id", cardID).
		Str("target", string(target)).
		Msg("card toggle confirmed")
	return &domain.ToggleResult{
		State:          domain.ToggleConfirmed,
		PreviousStatus: current,
		TargetStatus:   target,
		Message:        reply.Message,
	}, nil
}
