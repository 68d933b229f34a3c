package api

import (
	"errors"
	"net/http"

	"coachly/internal/domain/user"
	reqdto "coachly/internal/handler/dto/request"
	resdto "coachly/internal/handler/dto/response"
	"coachly/internal/handler/httperr"
	"coachly/internal/handler/middleware"
	"coachly/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ScheduleHandler struct {
	scheduleQueries queries.ScheduleQueries
}

func NewScheduleHandler(scheduleQueries queries.ScheduleQueries) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleQueries: scheduleQueries,
	}
}

// @Summary Free/busy
// @Description Free and busy intervals of a calendar within a window
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Param id path string true "Calendar ID"
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {object} resdto.FreeBusyResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /calendars/{id}/free-busy [get]
func (h *ScheduleHandler) FreeBusy(c *gin.Context) {
	calendarID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid calendar ID format",
		})
		return
	}
	window, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	view, err := h.scheduleQueries.FreeBusy(c.Request.Context(), calendarID, window.from, window.to)
	if err != nil {
		h.writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromFreeBusyView(view))
}

// @Summary Composed schedule
// @Description Bookable slots of a coach, priced and redacted per viewer role
// @Tags schedule
// @Produce json
// @Param coachID path string true "Coach ID"
// @Param from query string true "Window start (RFC3339)"
// @Param to query string true "Window end (RFC3339)"
// @Success 200 {array} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /coaches/{coachID}/schedule [get]
func (h *ScheduleHandler) ComposedSchedule(c *gin.Context) {
	coachID, err := uuid.Parse(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coach ID format",
		})
		return
	}
	window, err := parseWindow(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	slots, err := h.scheduleQueries.ComposedSchedule(c.Request.Context(), coachID, window.from, window.to, viewerRole(c, coachID))
	if err != nil {
		h.writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(slots))
}

// @Summary Slot check
// @Description Classify one candidate range against a coach's schedule
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param coachID path string true "Coach ID"
// @Param request body reqdto.SlotCheckRequest true "Candidate slot"
// @Success 200 {object} resdto.SlotResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /coaches/{coachID}/slot-check [post]
func (h *ScheduleHandler) CheckSlot(c *gin.Context) {
	coachID, err := uuid.Parse(c.Param("coachID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid coach ID format",
		})
		return
	}

	var req reqdto.SlotCheckRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	slot, err := h.scheduleQueries.CheckSlot(c.Request.Context(), coachID, req.StartTime, req.EndTime, viewerRole(c, coachID))
	if err != nil {
		h.writeQueryError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotView(*slot))
}

func (h *ScheduleHandler) writeQueryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrCalendarNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Calendar not found",
		})
	case errors.Is(err, queries.ErrInvalidWindow):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query window",
		})
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}

// viewerRole decides which redaction level the composed slots carry.
// Anonymous viewers and students get the redacted view; the coach
// viewing their own schedule gets full booking detail, as do admins.
func viewerRole(c *gin.Context, coachID uuid.UUID) user.Role {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		return user.RoleStudent
	}
	if role == user.RoleCoach {
		userID, _ := middleware.GetUserID(c)
		if userID != coachID {
			return user.RoleStudent
		}
	}
	return role
}
