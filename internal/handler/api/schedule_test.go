//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"coachly/internal/domain/user"
	"coachly/internal/handler/api"
	resdto "coachly/internal/handler/dto/response"
	"coachly/internal/usecase/queries"
	"coachly/tests/common/httptest"
	queriesmock "coachly/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScheduleHandlerTestSuite struct {
	suite.Suite
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockScheduleQueries
	handler     *api.ScheduleHandler
	coachID     uuid.UUID
	from        time.Time
	to          time.Time
}

func (s *ScheduleHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockScheduleQueries(s.mockCtrl)
	s.handler = api.NewScheduleHandler(s.mockQueries)
	s.coachID = uuid.New()
	s.from = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	s.to = s.from.AddDate(0, 0, 7)
}

func (s *ScheduleHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScheduleHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScheduleHandlerTestSuite))
}

// routerAs wires the schedule routes behind a fake auth middleware
// impersonating the given user. Empty userID means anonymous.
func (s *ScheduleHandlerTestSuite) routerAs(userID uuid.UUID, role user.Role) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if userID != uuid.Nil {
			c.Set("user_id", userID)
			c.Set("user_role", role)
		}
	})
	router.GET("/calendars/:id/free-busy", s.handler.FreeBusy)
	router.GET("/coaches/:coachID/schedule", s.handler.ComposedSchedule)
	router.POST("/coaches/:coachID/slot-check", s.handler.CheckSlot)
	return router
}

func (s *ScheduleHandlerTestSuite) windowQuery() string {
	return "?from=" + s.from.Format(time.RFC3339) + "&to=" + s.to.Format(time.RFC3339)
}

func (s *ScheduleHandlerTestSuite) TestFreeBusy() {
	calendarID := uuid.New()
	url := "/calendars/" + calendarID.String() + "/free-busy" + s.windowQuery()
	router := s.routerAs(uuid.New(), user.RoleStudent)

	s.Run("success: returns free and busy ranges", func() {
		view := &queries.FreeBusyView{
			CalendarID: calendarID,
			Free:       []queries.RangeView{{Start: s.from, End: s.from.Add(2 * time.Hour)}},
			Busy:       []queries.RangeView{{Start: s.from.Add(2 * time.Hour), End: s.from.Add(3 * time.Hour)}},
		}
		s.mockQueries.EXPECT().FreeBusy(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).
			Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")

		var response resdto.FreeBusyResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Free, 1)
		s.Len(response.Busy, 1)
	})

	s.Run("error: 404 Not Found for unknown calendars", func() {
		s.mockQueries.EXPECT().FreeBusy(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrCalendarNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Calendar not found")
	})

	s.Run("error: 400 Bad Request for an inverted window", func() {
		s.mockQueries.EXPECT().FreeBusy(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrInvalidWindow).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query window")
	})

	s.Run("error: 400 Bad Request without window params", func() {
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, "/calendars/"+calendarID.String()+"/free-busy", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *ScheduleHandlerTestSuite) TestComposedSchedule() {
	url := "/coaches/" + s.coachID.String() + "/schedule" + s.windowQuery()
	price := int64(5000)
	slots := []queries.SlotView{
		{Start: s.from, End: s.from.Add(time.Hour), Availability: "available", PriceCents: &price},
	}

	s.Run("anonymous viewers get the student-level view", func() {
		router := s.routerAs(uuid.Nil, "")
		s.mockQueries.EXPECT().ComposedSchedule(gomock.Any(), s.coachID, gomock.Any(), gomock.Any(), user.RoleStudent).
			Return(slots, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")

		var response []resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal("available", response[0].Availability)
	})

	s.Run("another coach is demoted to the student-level view", func() {
		router := s.routerAs(uuid.New(), user.RoleCoach)
		s.mockQueries.EXPECT().ComposedSchedule(gomock.Any(), s.coachID, gomock.Any(), gomock.Any(), user.RoleStudent).
			Return(slots, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("the coach sees their own schedule with full detail", func() {
		router := s.routerAs(s.coachID, user.RoleCoach)
		s.mockQueries.EXPECT().ComposedSchedule(gomock.Any(), s.coachID, gomock.Any(), gomock.Any(), user.RoleCoach).
			Return(slots, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("admins see full detail on any schedule", func() {
		router := s.routerAs(uuid.New(), user.RoleAdmin)
		s.mockQueries.EXPECT().ComposedSchedule(gomock.Any(), s.coachID, gomock.Any(), gomock.Any(), user.RoleAdmin).
			Return(slots, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 404 Not Found when the coach has no calendar", func() {
		router := s.routerAs(uuid.Nil, "")
		s.mockQueries.EXPECT().ComposedSchedule(gomock.Any(), s.coachID, gomock.Any(), gomock.Any(), user.RoleStudent).
			Return(nil, queries.ErrCalendarNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodGet, url, nil, "")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *ScheduleHandlerTestSuite) TestCheckSlot() {
	url := "/coaches/" + s.coachID.String() + "/slot-check"
	reqBody := map[string]any{
		"start_time": s.from.Format(time.RFC3339),
		"end_time":   s.from.Add(time.Hour).Format(time.RFC3339),
	}
	router := s.routerAs(uuid.New(), user.RoleStudent)

	s.Run("success: classifies the candidate slot", func() {
		price := int64(7500)
		slot := &queries.SlotView{Start: s.from, End: s.from.Add(time.Hour), Availability: "available", PriceCents: &price}
		s.mockQueries.EXPECT().CheckSlot(gomock.Any(), s.coachID, gomock.Any(), gomock.Any(), user.RoleStudent).
			Return(slot, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, url, reqBody, "")

		var response resdto.SlotResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("available", response.Availability)
		s.NotNil(response.PriceCents)
		s.Equal(price, *response.PriceCents)
	})

	s.Run("error: 400 Bad Request for a missing body", func() {
		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 Bad Request for a malformed coach ID", func() {
		rec := httptest.PerformRequest(s.T(), router, http.MethodPost, "/coaches/nope/slot-check", reqBody, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
