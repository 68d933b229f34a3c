//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"coachly/internal/handler/api"
	reqdto "coachly/internal/handler/dto/request"
	"coachly/internal/usecase/commands"
	"coachly/internal/usecase/queries"
	"coachly/tests/common/httptest"
	commandsmock "coachly/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type NegotiationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockNegotiationCommands
	handler      *api.NegotiationHandler
	coachID      uuid.UUID
}

func (s *NegotiationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockNegotiationCommands(s.mockCtrl)
	s.handler = api.NewNegotiationHandler(s.mockCommands)
	s.coachID = uuid.New()

	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.coachID)
	})
	s.router.POST("/negotiation-draft", s.handler.BuildDraft)
}

func (s *NegotiationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestNegotiationHandlerSuite(t *testing.T) {
	suite.Run(t, new(NegotiationHandlerTestSuite))
}

func (s *NegotiationHandlerTestSuite) TestBuildDraft() {
	url := "/negotiation-draft"
	start := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	reqBody := reqdto.NegotiationDraftRequest{
		ThreadID:  uuid.New(),
		DemandID:  uuid.New(),
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	}

	s.Run("success: returns the priced draft", func() {
		view := &queries.NegotiationDraftView{
			CoachID:     s.coachID,
			StudentID:   uuid.New(),
			StartTime:   reqBody.StartTime,
			EndTime:     reqBody.EndTime,
			PriceCents:  6000,
			PriceSource: "price_rule",
			Message:     "How about Monday at 10?",
		}
		s.mockCommands.EXPECT().BuildDraft(gomock.Any(), reqBody, s.coachID).
			Return(view, nil).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response queries.NegotiationDraftView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(6000), response.PriceCents)
		s.Equal("price_rule", response.PriceSource)
	})

	s.Run("error: 404 Not Found for an unknown chat thread", func() {
		s.mockCommands.EXPECT().BuildDraft(gomock.Any(), reqBody, s.coachID).
			Return(nil, commands.ErrThreadNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Chat thread not found")
	})

	s.Run("error: 404 Not Found for an unknown demand", func() {
		s.mockCommands.EXPECT().BuildDraft(gomock.Any(), reqBody, s.coachID).
			Return(nil, commands.ErrDemandNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Demand not found")
	})

	s.Run("error: 400 Bad Request for an inverted range", func() {
		s.mockCommands.EXPECT().BuildDraft(gomock.Any(), gomock.Any(), s.coachID).
			Return(nil, commands.ErrInvalidTimeSlot).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid time slot")
	})

	s.Run("error: 400 Bad Request without a body", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}
