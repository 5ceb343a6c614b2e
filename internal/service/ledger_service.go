package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"virtual-card-wallet/internal/core/domain"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
)

// LedgerServiceImpl implements ports.LedgerService. The backend owns
// the truth; this is a replace-on-success in-memory snapshot, never a
// persisted cache. Concurrent refreshes are ordered by generation
// counters so a slow in-flight response cannot overwrite a newer
// snapshot.
type LedgerServiceImpl struct {
	gateway ports.IssuerGateway
	log     zerolog.Logger

	mu sync.RWMutex
	// collection snapshot
	cards       []domain.CardSummary
	fee         float64
	loaded      bool
	listGen     uint64 // generation issued to the latest started refresh
	listApplied uint64 // generation of the snapshot currently held

	// per-card detail snapshots
	details       map[string]*domain.CardDetail
	detailGen     map[string]uint64
	detailApplied map[string]uint64
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(gateway ports.IssuerGateway, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{
		gateway:       gateway,
		log:           log,
		details:       make(map[string]*domain.CardDetail),
		detailGen:     make(map[string]uint64),
		detailApplied: make(map[string]uint64),
	}
}

// Refresh fetches the card collection and replaces the snapshot if no
// newer refresh has landed in the meantime. The fetched collection is
// returned either way; on error the previous snapshot stays intact.
func (s *LedgerServiceImpl) Refresh(ctx context.Context, userEmail string) ([]domain.CardSummary, float64, error) {
	s.mu.Lock()
	s.listGen++
	gen := s.listGen
	s.mu.Unlock()

	reply, err := s.gateway.ListCards(ctx, userEmail)
	if err != nil {
		s.log.Warn().Err(err).Msg("card list refresh failed, keeping previous snapshot")
		return nil, 0, apperror.ErrGatewayUnavailable(err)
	}

	s.mu.Lock()
	if gen > s.listApplied {
		s.cards = reply.Cards
		s.fee = reply.SubUserFee
		s.loaded = true
		s.listApplied = gen
	} else {
		s.log.Debug().Uint64("gen", gen).Uint64("applied", s.listApplied).Msg("stale card list response discarded")
	}
	s.mu.Unlock()

	return reply.Cards, reply.SubUserFee, nil
}

// RefreshDetail fetches one card's detail with the same
// last-write-wins rule, tracked per card.
func (s *LedgerServiceImpl) RefreshDetail(ctx context.Context, userEmail, cardID string) (*domain.CardDetail, error) {
	s.mu.Lock()
	s.detailGen[cardID]++
	gen := s.detailGen[cardID]
	s.mu.Unlock()

	detail, err := s.gateway.GetCardDetail(ctx, userEmail, cardID)
	if err != nil {
		s.log.Warn().Err(err).Str("card_id", cardID).Msg("card detail refresh failed, keeping previous snapshot")
		return nil, apperror.ErrCardDetailUnavailable(err)
	}

	s.mu.Lock()
	if gen > s.detailApplied[cardID] {
		s.details[cardID] = detail
		s.detailApplied[cardID] = gen
	}
	s.mu.Unlock()

	return detail, nil
}

// Snapshot returns the last good collection. The bool is false until
// the first successful refresh.
func (s *LedgerServiceImpl) Snapshot() ([]domain.CardSummary, float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cards := make([]domain.CardSummary, len(s.cards))
	copy(cards, s.cards)
	return cards, s.fee, s.loaded
}

// DetailSnapshot returns the last good detail for a card.
func (s *LedgerServiceImpl) DetailSnapshot(cardID string) (*domain.CardDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	detail, ok := s.details[cardID]
	return detail, ok
}
