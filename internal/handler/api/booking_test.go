//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"coachly/internal/handler/api"
	resdto "coachly/internal/handler/dto/response"
	"coachly/internal/usecase/commands"
	"coachly/tests/common/builder"
	"coachly/tests/common/httptest"
	"coachly/tests/common/testutil"
	commandsmock "coachly/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	handler      *api.BookingHandler
	studentID    uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands)
	s.studentID = uuid.New()

	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.studentID)
	})
	s.router.POST("/bookings", s.handler.CreateBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	bb := builder.NewBookingBuilder()
	reqBody := bb.BuildDTO()
	returnView := bb.BuildReadModel()

	s.Run("success: returns 201 Created with the confirmed booking", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.studentID).
			Return(returnView, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal("confirmed", response.Status)
		s.Equal(returnView.ProviderID, response.ProviderID)
	})

	s.Run("error: 409 Conflict when the slot is gone", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.studentID).
			Return(nil, commands.ErrSlotUnavailable).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Slot is not available")
	})

	s.Run("error: 404 Not Found when the coach has no calendar", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.studentID).
			Return(nil, commands.ErrCalendarNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coach has no calendar")
	})

	s.Run("error: 400 Bad Request for an inverted range", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.studentID).
			Return(nil, commands.ErrInvalidTimeSlot).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid time slot")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: coach_id", mutate: testutil.Field("coach_id", nil)},
			{name: "missing field: start_time", mutate: testutil.Field("start_time", nil)},
			{name: "missing field: end_time", mutate: testutil.Field("end_time", nil)},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				s.Equal(http.StatusBadRequest, rec.Code)
			})
		}
	})
}
