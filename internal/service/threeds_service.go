package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"virtual-card-wallet/internal/core/domain"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
)

// ChallengeServiceImpl implements ports.ChallengeService. It tracks at
// most one surfaced challenge per card so approve and reject can only
// resolve the challenge that was actually shown.
type ChallengeServiceImpl struct {
	gateway ports.IssuerGateway
	log     zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*domain.ChallengeSession // keyed by cardID
}

// NewChallengeService creates a new ChallengeServiceImpl.
func NewChallengeService(gateway ports.IssuerGateway, log zerolog.Logger) *ChallengeServiceImpl {
	return &ChallengeServiceImpl{
		gateway:  gateway,
		log:      log,
		sessions: make(map[string]*domain.ChallengeSession),
	}
}

// Check polls for a pending challenge. Backend code "422" is the
// normal no-challenge outcome; "200" with data surfaces a challenge
// and starts tracking it. Anything else, including transport failure,
// is a retryable error outcome.
func (s *ChallengeServiceImpl) Check(ctx context.Context, userEmail, cardID string) (*domain.ChallengeResult, error) {
	reply, err := s.gateway.Check3DS(ctx, userEmail, cardID)
	if err != nil {
		s.log.Warn().Err(err).Str("card_id", cardID).Msg("challenge check failed")
		return &domain.ChallengeResult{Outcome: domain.ChallengeError}, apperror.ErrChallengeCheckFailed(err)
	}

	switch {
	case reply.Code == "422":
		s.clear(cardID)
		return &domain.ChallengeResult{Outcome: domain.ChallengeNone}, nil

	case reply.Code == "200" && reply.Data != nil:
		s.mu.Lock()
		s.sessions[cardID] = domain.NewChallengeSession(*reply.Data)
		s.mu.Unlock()
		s.log.Info().
			Str("card_id", cardID).
			Str("event_id", reply.Data.EventID).
			Str("merchant", reply.Data.MerchantName).
			Msg("step-up challenge pending")
		return &domain.ChallengeResult{
			Outcome:   domain.ChallengePending,
			Challenge: reply.Data,
		}, nil

	default:
		s.log.Warn().Str("card_id", cardID).Str("code", reply.Code).Msg("unexpected challenge check code")
		return &domain.ChallengeResult{Outcome: domain.ChallengeError},
			apperror.ErrChallengeCheckFailed(nil)
	}
}

// Approve confirms the surfaced challenge upstream. The challenge is
// dismissed locally whatever the upstream result; the backend's
// decision stands regardless of what this client observes.
func (s *ChallengeServiceImpl) Approve(ctx context.Context, userEmail, cardID, eventID string) (bool, error) {
	session := s.take(cardID, eventID)
	if session == nil {
		return false, apperror.ErrNoChallengePending()
	}
	if err := session.Approve(); err != nil {
		return false, apperror.InternalError(err)
	}

	if err := s.gateway.Approve3DS(ctx, userEmail, cardID, eventID); err != nil {
		s.log.Warn().Err(err).Str("event_id", eventID).Msg("challenge approval delivery failed")
		return false, nil
	}
	s.log.Info().Str("event_id", eventID).Msg("challenge approved")
	return true, nil
}

// Reject dismisses the surfaced challenge locally. The backend is not
// informed and times the authorization out on its own.
func (s *ChallengeServiceImpl) Reject(userEmail, cardID, eventID string) {
	session := s.take(cardID, eventID)
	if session == nil {
		return
	}
	if err := session.Reject(); err != nil {
		s.log.Warn().Err(err).Str("event_id", eventID).Msg("challenge reject ignored")
		return
	}
	s.log.Info().Str("event_id", eventID).Msg("challenge rejected locally")
}

// take removes and returns the tracked session for cardID if its event
// matches. Resolution is one-shot.
func (s *ChallengeServiceImpl) take(cardID, eventID string) *domain.ChallengeSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[cardID]
	if !ok || session.Challenge.EventID != eventID {
		return nil
	}
	delete(s.sessions, cardID)
	return session
}

func (s *ChallengeServiceImpl) clear(cardID string) {
	s.mu.Lock()
	delete(s.sessions, cardID)
	s.mu.Unlock()
}
