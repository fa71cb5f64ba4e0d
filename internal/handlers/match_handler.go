package handlers

import (
	"errors"
	"net/http"

	"speedfriending/internal/models"
	"speedfriending/internal/services"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchService         *services.MatchService
	pairingStatusService *services.PairingStatusService
}

func NewMatchHandler(matchService *services.MatchService, pairingStatusService *services.PairingStatusService) *MatchHandler {
	return &MatchHandler{
		matchService:         matchService,
		pairingStatusService: pairingStatusService,
	}
}

// MyMatch resolves the caller's partner in the event's current round
// GET /api/events/:code/match?email=
func (h *MatchHandler) MyMatch(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	match, err := h.matchService.MyMatch(c.Request.Context(), c.Param("code"), email)
	if err != nil {
		h.writeMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

// ReportMet marks the caller's current pairing as met
// POST /api/events/:code/match/met
func (h *MatchHandler) ReportMet(c *gin.Context) {
	var req models.ReportMetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pairing, err := h.pairingStatusService.ReportMet(c.Request.Context(), c.Param("code"), req.Email)
	if err != nil {
		if errors.Is(err, services.ErrPairingAlreadyReported) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.writeMatchError(c, err)
		return
	}

	c.JSON(http.StatusOK, pairing)
}

func (h *MatchHandler) writeMatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrParticipantNotFound),
		errors.Is(err, services.ErrNoPairingForRound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRoundNotStarted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve match"})
	}
}
