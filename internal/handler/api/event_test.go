//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"coachly/internal/handler/api"
	resdto "coachly/internal/handler/dto/response"
	"coachly/internal/usecase/commands"
	"coachly/internal/usecase/queries"
	"coachly/tests/common/builder"
	"coachly/tests/common/httptest"
	"coachly/tests/common/testutil"
	commandsmock "coachly/tests/mock/commands"
	queriesmock "coachly/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type EventHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockEventCommands
	mockQueries  *queriesmock.MockEventQueries
	handler      *api.EventHandler
	userID       uuid.UUID
}

func (s *EventHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockEventCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockEventQueries(s.mockCtrl)
	s.handler = api.NewEventHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock middleware behavior: every request is an authenticated coach
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.userID)
	})
	s.router.POST("/events", s.handler.CreateEvent)
	s.router.GET("/events/:id", s.handler.GetEvent)
	s.router.PATCH("/events/:id", s.handler.UpdateEvent)
	s.router.DELETE("/events/:id", s.handler.DeleteEvent)
	s.router.POST("/events/:id/cancel", s.handler.CancelEvent)
	s.router.GET("/calendars/:id/events", s.handler.ListCalendarEvents)
}

func (s *EventHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestEventHandlerSuite(t *testing.T) {
	suite.Run(t, new(EventHandlerTestSuite))
}

func (s *EventHandlerTestSuite) idempotencyHeaders() map[string]string {
	return map[string]string{"Idempotency-Key": uuid.NewString()}
}

func (s *EventHandlerTestSuite) TestCreateEvent() {
	url := "/events"
	eb := builder.NewEventBuilder()
	reqBody := eb.BuildDTO()
	returnView := eb.BuildReadModel()

	s.Run("success: returns 201 Created for a new event", func() {
		s.mockCommands.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CreateEventResult{Event: returnView, IsReplayed: false}, nil).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.idempotencyHeaders())

		var response resdto.EventResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.Title, response.Title)
	})

	s.Run("success: returns 200 OK when the request is a replay", func() {
		s.mockCommands.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(&commands.CreateEventResult{Event: returnView, IsReplayed: true}, nil).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.idempotencyHeaders())
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 Bad Request without Idempotency-Key header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Idempotency-Key header required")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: calendar_id", mutate: testutil.Field("calendar_id", nil)},
			{name: "missing field: title", mutate: testutil.Field("title", nil)},
			{name: "missing field: start_time", mutate: testutil.Field("start_time", nil)},
			{name: "invalid free_busy value", mutate: testutil.Field("free_busy", "tentative")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, body, s.idempotencyHeaders())
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})

	s.Run("error: 409 Conflict when the slot is taken", func() {
		s.mockCommands.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrEventConflict).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.idempotencyHeaders())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "conflicts")
	})

	s.Run("error: 409 Conflict on key reuse with a different payload", func() {
		s.mockCommands.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrDuplicateRequest).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.idempotencyHeaders())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Duplicate request")
	})

	s.Run("error: 403 Forbidden when writing into someone else's calendar", func() {
		s.mockCommands.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrNotCalendarOwner).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.idempotencyHeaders())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Not the calendar owner")
	})

	s.Run("error: 422 Unprocessable Entity on domain validation failure", func() {
		s.mockCommands.EXPECT().CreateEvent(gomock.Any(), gomock.Any(), s.userID, gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody, s.idempotencyHeaders())
		s.Equal(http.StatusUnprocessableEntity, rec.Code)
	})
}

func (s *EventHandlerTestSuite) TestGetEvent() {
	returnView := builder.NewEventBuilder().BuildReadModel()

	s.Run("success: returns 200 OK for a persisted event", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/events/"+returnView.ID, nil, "")

		var response resdto.EventResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnView.ID, response.ID)
	})

	s.Run("success: instance IDs pass through untouched", func() {
		instanceID := uuid.NewString() + "_20260302T100000"
		s.mockQueries.EXPECT().GetByID(gomock.Any(), instanceID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/events/"+instanceID, nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown events", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).
			Return(nil, queries.ErrEventNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/events/"+uuid.NewString(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Event not found")
	})
}

func (s *EventHandlerTestSuite) TestListCalendarEvents() {
	calendarID := uuid.New()
	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	url := "/calendars/" + calendarID.String() + "/events?from=" + from.Format(time.RFC3339) + "&to=" + to.Format(time.RFC3339)

	s.Run("success: returns the expanded window", func() {
		views := []*queries.EventView{builder.NewEventBuilder().BuildReadModel()}
		s.mockQueries.EXPECT().ListByCalendar(gomock.Any(), calendarID, gomock.Any(), gomock.Any()).
			Return(views, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var response []resdto.EventResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 400 Bad Request when the window params are missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/calendars/"+calendarID.String()+"/events", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("error: 400 Bad Request for a malformed calendar ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/calendars/not-a-uuid/events", nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *EventHandlerTestSuite) TestUpdateEvent() {
	eventID := uuid.New()
	url := "/events/" + eventID.String()
	title := "Rescheduled session"
	reqBody := map[string]any{"title": title}

	s.Run("success: returns 200 OK with the updated view", func() {
		view := builder.NewEventBuilder().WithTitle(title).BuildReadModel()
		s.mockCommands.EXPECT().UpdateEvent(gomock.Any(), eventID, gomock.Any(), s.userID).
			Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "")

		var response resdto.EventResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(title, response.Title)
	})

	s.Run("error: 409 Conflict for terminal events", func() {
		s.mockCommands.EXPECT().UpdateEvent(gomock.Any(), eventID, gomock.Any(), s.userID).
			Return(nil, commands.ErrEventNotEditable).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "cancelled or finished")
	})

	s.Run("error: 404 Not Found for unknown events", func() {
		s.mockCommands.EXPECT().UpdateEvent(gomock.Any(), eventID, gomock.Any(), s.userID).
			Return(nil, commands.ErrEventNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Event not found")
	})
}

func (s *EventHandlerTestSuite) TestCancelAndDelete() {
	eventID := uuid.New()

	s.Run("success: cancel returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelEvent(gomock.Any(), eventID, s.userID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/events/"+eventID.String()+"/cancel", nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("success: delete returns 204 No Content", func() {
		s.mockCommands.EXPECT().DeleteEvent(gomock.Any(), eventID, s.userID).
			Return(nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/events/"+eventID.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 403 Forbidden when not the owner", func() {
		s.mockCommands.EXPECT().DeleteEvent(gomock.Any(), eventID, s.userID).
			Return(commands.ErrNotCalendarOwner).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/events/"+eventID.String(), nil, "")
		s.Equal(http.StatusForbidden, rec.Code)
	})
}
