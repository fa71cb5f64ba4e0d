package handlers

import (
	"errors"
	"net/http"

	"speedfriending/internal/models"
	"speedfriending/internal/services"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	participantService *services.ParticipantService
}

func NewParticipantHandler(participantService *services.ParticipantService) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
	}
}

// JoinEvent attaches a participant to the event behind the join code
// POST /api/events/:code/join
func (h *ParticipantHandler) JoinEvent(c *gin.Context) {
	var req models.JoinEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.participantService.Join(c.Request.Context(), c.Param("code"), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrDuplicateParticipant):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join event"})
		}
		return
	}

	c.JSON(http.StatusCreated, participant)
}

// ListParticipants retrieves the participant roster of an event
// GET /api/events/:code/participants
func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	event, participants, err := h.participantService.List(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list participants"})
		return
	}

	c.JSON(http.StatusOK, models.ParticipantListResponse{
		EventID:      event.ID,
		JoinCode:     event.JoinCode,
		Participants: participants,
	})
}
