//go:build e2e

package schedule_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"coachly/internal/handler/dto/request"
	"coachly/internal/handler/dto/response"
	"coachly/internal/usecase/queries"
	"coachly/tests/common/authtest"
	"coachly/tests/common/httptest"
	"coachly/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type scheduleSuite struct {
	e2e.SharedSuite
}

func TestScheduleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(scheduleSuite))
}

// Fixed window so rule projection and slot boundaries are deterministic:
// Monday 2026-03-02 through Friday 2026-03-06, all UTC.
var (
	windowFrom = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	windowTo   = time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	tueEventStart = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)
	tueEventEnd   = time.Date(2026, 3, 3, 11, 0, 0, 0, time.UTC)

	wedSlotStart = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	wedSlotEnd   = time.Date(2026, 3, 4, 11, 0, 0, 0, time.UTC)
)

func (s *scheduleSuite) registerUser(t *testing.T, email, role string) queries.AuthorizedUserView {
	t.Helper()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/auth/register", request.RegisterRequest{
		Email:       email,
		Password:    "password123",
		DisplayName: "E2E " + role,
		Role:        role,
		Timezone:    "UTC",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view queries.AuthorizedUserView
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &view))
	return view
}

func (s *scheduleSuite) calendarIDOf(t *testing.T, ownerID uuid.UUID) uuid.UUID {
	t.Helper()

	var calendarID uuid.UUID
	err := s.DB.QueryRow(t.Context(), "SELECT id FROM calendars WHERE owner_id = $1", ownerID).Scan(&calendarID)
	require.NoError(t, err, "Coach has no calendar")
	return calendarID
}

func (s *scheduleSuite) replaceRules(t *testing.T, coachToken string) {
	t.Helper()

	intPtr := func(v int) *int { return &v }
	w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/rules", request.ReplaceRulesRequest{
		AvailabilityRules: []request.AvailabilityRuleRequest{{
			Kind:           "working",
			DaysOfWeek:     []int{1, 2, 3, 4, 5},
			TimeOfDayStart: intPtr(9 * 60),
			TimeOfDayEnd:   intPtr(17 * 60),
		}},
		PriceRules: []request.PriceRuleRequest{{
			PriceCents: 5000,
		}},
	}, coachToken)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
}

func (s *scheduleSuite) createBusyEvent(t *testing.T, coachToken string, calendarID uuid.UUID, key string, wantStatus int) {
	t.Helper()

	w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/events", request.CreateEventRequest{
		CalendarID: calendarID,
		Title:      "Team sync",
		StartTime:  tueEventStart,
		EndTime:    tueEventEnd,
		Timezone:   "UTC",
	}, map[string]string{
		"Authorization":   "Bearer " + coachToken,
		"Idempotency-Key": key,
	})
	require.Equal(t, wantStatus, w.Code, w.Body.String())
}

func (s *scheduleSuite) checkSlot(t *testing.T, token string, coachID uuid.UUID, start, end time.Time) response.SlotResponse {
	t.Helper()

	url := fmt.Sprintf("/api/coaches/%s/slot-check", coachID)
	w := httptest.PerformRequest(t, s.Router, http.MethodPost, url, request.SlotCheckRequest{
		StartTime: start,
		EndTime:   end,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var slot response.SlotResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &slot))
	return slot
}

func (s *scheduleSuite) composedSchedule(t *testing.T, token string, coachID uuid.UUID) []response.SlotResponse {
	t.Helper()

	url := fmt.Sprintf("/api/coaches/%s/schedule?from=%s&to=%s",
		coachID, windowFrom.Format(time.RFC3339), windowTo.Format(time.RFC3339))
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var slots []response.SlotResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &slots))
	return slots
}

func (s *scheduleSuite) TestBookingFlow() {
	s.Run("full flow from rules to a confirmed booking", func() {
		t := s.T()

		coach := s.registerUser(t, "coach@example.com", "coach")
		coachToken := authtest.LoginUser(t, s.Router, "coach@example.com", "password123")
		calendarID := s.calendarIDOf(t, coach.ID)

		s.replaceRules(t, coachToken)

		// Coach blocks Tuesday morning with a regular event
		idemKey := uuid.NewString()
		s.createBusyEvent(t, coachToken, calendarID, idemKey, http.StatusCreated)

		// Replaying the same request is answered from the stored result
		s.createBusyEvent(t, coachToken, calendarID, idemKey, http.StatusOK)

		student := s.registerUser(t, "student@example.com", "student")
		studentToken := authtest.LoginUser(t, s.Router, "student@example.com", "password123")

		// Students see priced availability but the event hour is gone
		slots := s.composedSchedule(t, studentToken, coach.ID)
		require.NotEmpty(t, slots, "Composed schedule is empty")

		var sawPricedAvailable bool
		for _, slot := range slots {
			if slot.Availability == "available" {
				require.NotNil(t, slot.PriceCents)
				require.Equal(t, int64(5000), *slot.PriceCents)
				sawPricedAvailable = true
				require.False(t, slot.Start.Before(tueEventEnd) && tueEventStart.Before(slot.End),
					"Event hour is still offered as available")
			}
		}
		require.True(t, sawPricedAvailable, "No priced available slot in the window")

		// The event hour fails the slot check, a free weekday hour passes
		slot := s.checkSlot(t, studentToken, coach.ID, tueEventStart, tueEventEnd)
		require.Equal(t, "unavailable", slot.Availability)

		slot = s.checkSlot(t, studentToken, coach.ID, wedSlotStart, wedSlotEnd)
		require.Equal(t, "available", slot.Availability)
		require.NotNil(t, slot.PriceCents)
		require.Equal(t, int64(5000), *slot.PriceCents)

		// Outside working hours nothing is bookable
		slot = s.checkSlot(t, studentToken, coach.ID,
			time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 4, 21, 0, 0, 0, time.UTC))
		require.Equal(t, "unavailable", slot.Availability)

		// Book the Wednesday hour
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", request.CreateBookingRequest{
			CoachID:       coach.ID,
			StartTime:     wedSlotStart,
			EndTime:       wedSlotEnd,
			LocationTitle: "Online",
		}, studentToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var booking response.BookingResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &booking))
		require.Equal(t, "confirmed", booking.Status)
		require.Equal(t, coach.ID, booking.ProviderID)
		require.Equal(t, student.ID, booking.ParticipantID)

		// Students see the slot as taken but learn nothing about who took it
		slot = s.checkSlot(t, studentToken, coach.ID, wedSlotStart, wedSlotEnd)
		require.Equal(t, "booked", slot.Availability)
		require.Nil(t, slot.BookingID, "Booking detail leaked to a student viewer")
		require.Nil(t, slot.BookedByName, "Participant name leaked to a student viewer")

		// The coach sees full booking detail on their own schedule
		coachSlots := s.composedSchedule(t, coachToken, coach.ID)
		var sawBookingDetail bool
		for _, cs := range coachSlots {
			if cs.Availability == "booked" && cs.BookedByID != nil && *cs.BookedByID == student.ID {
				sawBookingDetail = true
			}
		}
		require.True(t, sawBookingDetail, "Coach cannot see who booked their slot")

		// A second student cannot take the same hour
		s.registerUser(t, "student2@example.com", "student")
		student2Token := authtest.LoginUser(t, s.Router, "student2@example.com", "password123")
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, "/api/bookings", request.CreateBookingRequest{
			CoachID:   coach.ID,
			StartTime: wedSlotStart,
			EndTime:   wedSlotEnd,
		}, student2Token)
		require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

		// Free-busy reflects both the event and the booked session
		url := fmt.Sprintf("/api/calendars/%s/free-busy?from=%s&to=%s",
			calendarID, windowFrom.Format(time.RFC3339), windowTo.Format(time.RFC3339))
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, studentToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var freeBusy response.FreeBusyResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &freeBusy))
		require.Equal(t, calendarID, freeBusy.CalendarID)

		containsRange := func(ranges []response.RangeResponse, start, end time.Time) bool {
			for _, r := range ranges {
				if !start.Before(r.Start) && !r.End.Before(end) {
					return true
				}
			}
			return false
		}
		require.True(t, containsRange(freeBusy.Busy, tueEventStart, tueEventEnd), "Event missing from busy ranges")
		require.True(t, containsRange(freeBusy.Busy, wedSlotStart, wedSlotEnd), "Booked session missing from busy ranges")
	})
}

func (s *scheduleSuite) TestRecurringEventsInSchedule() {
	s.Run("a daily recurring event blocks every weekday morning", func() {
		t := s.T()

		coach := s.registerUser(t, "recurring-coach@example.com", "coach")
		coachToken := authtest.LoginUser(t, s.Router, "recurring-coach@example.com", "password123")
		calendarID := s.calendarIDOf(t, coach.ID)

		s.replaceRules(t, coachToken)

		rrule := "FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR"
		w := httptest.PerformRequestWithHeaders(t, s.Router, http.MethodPost, "/api/events", request.CreateEventRequest{
			CalendarID:     calendarID,
			Title:          "Morning standup",
			StartTime:      time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
			EndTime:        time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
			Timezone:       "UTC",
			RecurrenceRule: &rrule,
		}, map[string]string{
			"Authorization":   "Bearer " + coachToken,
			"Idempotency-Key": uuid.NewString(),
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		studentToken := func() string {
			s.registerUser(t, "recurring-student@example.com", "student")
			return authtest.LoginUser(t, s.Router, "recurring-student@example.com", "password123")
		}()

		// Wednesday 09:00 is blocked by the materialized instance
		slot := s.checkSlot(t, studentToken, coach.ID,
			time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
			time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC))
		require.Equal(t, "unavailable", slot.Availability)

		// Right after the standup the morning opens up again
		slot = s.checkSlot(t, studentToken, coach.ID,
			time.Date(2026, 3, 4, 9, 30, 0, 0, time.UTC),
			time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC))
		require.Equal(t, "available", slot.Availability)
	})
}

func (s *scheduleSuite) TestRuleLifecycle() {
	s.Run("clearing the rules removes all availability", func() {
		t := s.T()

		coach := s.registerUser(t, "rules-coach@example.com", "coach")
		coachToken := authtest.LoginUser(t, s.Router, "rules-coach@example.com", "password123")

		s.replaceRules(t, coachToken)

		slot := s.checkSlot(t, coachToken, coach.ID, wedSlotStart, wedSlotEnd)
		require.Equal(t, "available", slot.Availability)

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/rules",
			request.ReplaceRulesRequest{}, coachToken)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

		slot = s.checkSlot(t, coachToken, coach.ID, wedSlotStart, wedSlotEnd)
		require.Equal(t, "unavailable", slot.Availability)
	})

	s.Run("students cannot replace rules", func() {
		t := s.T()

		s.registerUser(t, "rules-student@example.com", "student")
		studentToken := authtest.LoginUser(t, s.Router, "rules-student@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/rules",
			request.ReplaceRulesRequest{}, studentToken)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})
}
