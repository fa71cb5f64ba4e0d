package handlers

import (
	"errors"
	"net/http"

	"speedfriending/internal/models"
	"speedfriending/internal/services"

	"github.com/gin-gonic/gin"
)

type RoundHandler struct {
	roundService *services.RoundService
}

func NewRoundHandler(roundService *services.RoundService) *RoundHandler {
	return &RoundHandler{
		roundService: roundService,
	}
}

// StartRound advances the event to its next round and generates pairings.
// The body is optional; an empty body starts the round with the default
// random strategy.
// POST /api/events/:code/rounds
func (h *RoundHandler) StartRound(c *gin.Context) {
	var req models.StartRoundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	resp, err := h.roundService.StartRound(c.Request.Context(), c.Param("code"), req.Strategy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInsufficientParticipants),
			errors.Is(err, services.ErrUnknownStrategy):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start round"})
		}
		return
	}

	c.JSON(http.StatusCreated, resp)
}
