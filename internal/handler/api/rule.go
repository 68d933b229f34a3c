package api

import (
	"errors"
	"net/http"

	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/handler/middleware"
	"coachly/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type RuleHandler struct {
	ruleCommands commands.RuleCommands
}

func NewRuleHandler(ruleCommands commands.RuleCommands) *RuleHandler {
	return &RuleHandler{
		ruleCommands: ruleCommands,
	}
}

// @Summary Replace rules
// @Description Replace the coach's availability and price rule sets atomically
// @Tags rules
// @Accept json
// @Security BearerAuth
// @Param request body reqdto.ReplaceRulesRequest true "Rule sets, in evaluation order"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rules [put]
func (h *RuleHandler) ReplaceRules(c *gin.Context) {
	coachID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ReplaceRulesRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.ruleCommands.ReplaceRules(c.Request.Context(), coachID, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrCalendarNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Calendar not found",
			})
		case errors.Is(err, commands.ErrInvalidRule):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid rule",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
