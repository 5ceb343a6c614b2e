package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"virtual-card-wallet/internal/adapter/http/dto"
	"virtual-card-wallet/internal/adapter/http/middleware"
	"virtual-card-wallet/internal/core/domain"
	"virtual-card-wallet/internal/core/ports"
	"virtual-card-wallet/pkg/apperror"
	"virtual-card-wallet/pkg/response"
)

// CardsHandler handles the card collection, application, challenge and
// control endpoints.
type CardsHandler struct {
	ledger      ports.LedgerService
	application ports.ApplicationService
	challenge   ports.ChallengeService
	control     ports.ControlService
}

// NewCardsHandler creates a new CardsHandler.
func NewCardsHandler(
	ledger ports.LedgerService,
	application ports.ApplicationService,
	challenge ports.ChallengeService,
	control ports.ControlService,
) *CardsHandler {
	return &CardsHandler{
		ledger:      ledger,
		application: application,
		challenge:   challenge,
		control:     control,
	}
}

func callerEmail(c *gin.Context) string {
	return c.GetString(middleware.CtxEmail)
}

// List handles GET /api/v1/cards. Every call refreshes the snapshot
// from the backend; if the refresh fails and a previous snapshot
// exists, that snapshot is served marked stale.
func (h *CardsHandler) List(c *gin.Context) {
	email := callerEmail(c)

	cards, fee, err := h.ledger.Refresh(c.Request.Context(), email)
	if err != nil {
		cached, cachedFee, loaded := h.ledger.Snapshot()
		if !loaded {
			response.Error(c, err)
			return
		}
		response.OK(c, dto.CardListResponse{Cards: cached, SubUserFee: cachedFee, Stale: true})
		return
	}

	response.OK(c, dto.CardListResponse{Cards: cards, SubUserFee: fee})
}

// Detail handles GET /api/v1/cards/:id with the same stale-snapshot
// fallback as List.
func (h *CardsHandler) Detail(c *gin.Context) {
	email := callerEmail(c)
	cardID := c.Param("id")

	detail, err := h.ledger.RefreshDetail(c.Request.Context(), email, cardID)
	if err != nil {
		if cached, ok := h.ledger.DetailSnapshot(cardID); ok {
			response.OK(c, dto.CardDetailResponse{Card: cached, Stale: true})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, dto.CardDetailResponse{Card: detail})
}

// Apply handles POST /api/v1/cards. Field rules are checked before any
// backend call so a bad answer costs no round trip.
func (h *CardsHandler) Apply(c *gin.Context) {
	var req dto.ApplyCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	record := req.ToDomain(callerEmail(c))
	if err := record.Validate(); err != nil {
		if errors.Is(err, domain.ErrPhoneDigitsOnly) {
			response.Error(c, apperror.ErrInvalidPhone())
			return
		}
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	outcome, err := h.application.Submit(c.Request.Context(), record)
	if err != nil {
		response.Error(c, err)
		return
	}

	switch outcome.State {
	case domain.ApplicationRejected:
		response.Error(c, apperror.ErrApplicationRejected(outcome.Message))
	case domain.ApplicationFailed:
		response.Error(c, apperror.ErrApplicationFailed())
	case domain.ApplicationPendingPayment:
		response.Accepted(c, outcome)
	default:
		response.Created(c, outcome)
	}
}

// CheckChallenge handles POST /api/v1/cards/:id/challenge. A result
// with no pending challenge is a normal 200, not an error.
func (h *CardsHandler) CheckChallenge(c *gin.Context) {
	result, err := h.challenge.Check(c.Request.Context(), callerEmail(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// ApproveChallenge handles POST /api/v1/cards/:id/challenge/approve.
// The challenge is dismissed whatever the upstream delivery outcome.
func (h *CardsHandler) ApproveChallenge(c *gin.Context) {
	var req dto.ChallengeDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	delivered, err := h.challenge.Approve(c.Request.Context(), callerEmail(c), c.Param("id"), req.EventID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Accepted(c, dto.ApproveChallengeResponse{Delivered: delivered})
}

// RejectChallenge handles POST /api/v1/cards/:id/challenge/reject. The
// dismissal is local only; the backend times the authorization out.
func (h *CardsHandler) RejectChallenge(c *gin.Context) {
	var req dto.ChallengeDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	h.challenge.Reject(callerEmail(c), c.Param("id"), req.EventID)
	response.OK(c, gin.H{"dismissed": true})
}

// Toggle handles POST /api/v1/cards/:id/toggle. The direction is
// derived from the status the caller is currently displaying.
func (h *CardsHandler) Toggle(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	result, err := h.control.Toggle(c.Request.Context(), callerEmail(c), c.Param("id"), domain.CardStatus(req.CurrentStatus))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
