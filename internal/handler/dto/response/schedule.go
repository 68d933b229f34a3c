package response

import (
	"time"

	"coachly/internal/usecase/queries"

	"github.com/google/uuid"
)

type RangeResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type FreeBusyResponse struct {
	CalendarID uuid.UUID       `json:"calendarId"`
	Free       []RangeResponse `json:"free"`
	Busy       []RangeResponse `json:"busy"`
}

type SlotResponse struct {
	Start         time.Time  `json:"start"`
	End           time.Time  `json:"end"`
	Availability  string     `json:"availability"`
	PriceCents    *int64     `json:"priceCents,omitempty"`
	BookingID     *uuid.UUID `json:"bookingId,omitempty"`
	BookedByID    *uuid.UUID `json:"bookedById,omitempty"`
	BookedByName  *string    `json:"bookedByName,omitempty"`
	LocationTitle *string    `json:"locationTitle,omitempty"`
}

func FromFreeBusyView(view *queries.FreeBusyView) *FreeBusyResponse {
	resp := &FreeBusyResponse{
		CalendarID: view.CalendarID,
		Free:       make([]RangeResponse, 0, len(view.Free)),
		Busy:       make([]RangeResponse, 0, len(view.Busy)),
	}
	for _, r := range view.Free {
		resp.Free = append(resp.Free, RangeResponse{Start: r.Start, End: r.End})
	}
	for _, r := range view.Busy {
		resp.Busy = append(resp.Busy, RangeResponse{Start: r.Start, End: r.End})
	}
	return resp
}

func FromSlotView(view queries.SlotView) SlotResponse {
	return SlotResponse{
		Start:         view.Start,
		End:           view.End,
		Availability:  view.Availability,
		PriceCents:    view.PriceCents,
		BookingID:     view.BookingID,
		BookedByID:    view.BookedByID,
		BookedByName:  view.BookedByName,
		LocationTitle: view.LocationTitle,
	}
}

func FromSlotViews(views []queries.SlotView) []SlotResponse {
	out := make([]SlotResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromSlotView(v))
	}
	return out
}
