package api

import (
	"errors"
	"net/http"

	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/handler/middleware"
	"coachly/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type NegotiationHandler struct {
	negotiationCommands commands.NegotiationCommands
}

func NewNegotiationHandler(negotiationCommands commands.NegotiationCommands) *NegotiationHandler {
	return &NegotiationHandler{
		negotiationCommands: negotiationCommands,
	}
}

// @Summary Build negotiation draft
// @Description Draft a priced session proposal for a chat thread
// @Tags negotiation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.NegotiationDraftRequest true "Draft request"
// @Success 200 {object} queries.NegotiationDraftView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /negotiation-draft [post]
func (h *NegotiationHandler) BuildDraft(c *gin.Context) {
	coachID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.NegotiationDraftRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.negotiationCommands.BuildDraft(c.Request.Context(), req, coachID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrThreadNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Chat thread not found",
			})
		case errors.Is(err, commands.ErrDemandNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Demand not found",
			})
		case errors.Is(err, commands.ErrProfileNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Coach profile not found",
			})
		case errors.Is(err, commands.ErrInvalidTimeSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid time slot",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
