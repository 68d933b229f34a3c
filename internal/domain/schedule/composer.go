package schedule

import (
	"sort"
	"time"

	"coachly/internal/domain/timerange"
	"coachly/internal/domain/user"

	"github.com/google/uuid"
)

type SlotAvailability string

const (
	SlotAvailable   SlotAvailability = "available"
	SlotBooked      SlotAvailability = "booked"
	SlotUnavailable SlotAvailability = "unavailable"
)

func (s SlotAvailability) String() string {
	return string(s)
}

// Booking is produced by the booking subsystem and consumed read-only
// by the composer.
type Booking struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	ParticipantID   uuid.UUID
	ParticipantName string
	Range           timerange.Range
	LocationTitle   string
}

// SlotView is a derived, presentation-ready segment. The booking
// detail fields are populated only for a coach viewer; students must
// never see who booked another student's slot, or where.
type SlotView struct {
	Range         timerange.Range
	Availability  SlotAvailability
	PriceCents    *int64
	BookingID     *uuid.UUID
	BookedByID    *uuid.UUID
	BookedByName  *string
	LocationTitle *string
}

// ComposeInput is the immutable snapshot a compose call works on.
type ComposeInput struct {
	WorkingRanges []timerange.Range
	BusyRanges    []timerange.Range
	PriceRules    []PriceRule
	Bookings      []Booking
	Viewer        user.Role
	Location      *time.Location
}

// BuildSlots fuses working hours, busy time and price rules into the
// full role-aware slot list, sorted ascending by start.
func BuildSlots(in ComposeInput) []SlotView {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	busy := timerange.Normalize(in.BusyRanges)

	var slots []SlotView
	for _, working := range in.WorkingRanges {
		for _, b := range busy {
			if booked, ok := working.Intersect(b); ok {
				slots = append(slots, bookedSlot(booked, in.Bookings, in.Viewer))
			}
		}

		for _, free := range timerange.Subtract(working, busy) {
			boundaries := PriceBoundaries(in.PriceRules, free, loc)
			for _, segment := range timerange.SplitAt(free, boundaries) {
				slots = append(slots, SlotView{
					Range:        segment,
					Availability: SlotAvailable,
					PriceCents:   ResolvePrice(in.PriceRules, segment, loc),
				})
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].Range.Start().Before(slots[j].Range.Start())
	})
	return slots
}

// QuerySlot classifies one exact range for a viewer: booked wins over
// bookable, and the resolved price is attached regardless of outcome.
func QuerySlot(
	r timerange.Range,
	viewer user.Role,
	availability []AvailabilityRule,
	prices []PriceRule,
	bookings []Booking,
	loc *time.Location,
) SlotView {
	if loc == nil {
		loc = time.UTC
	}

	for _, b := range bookings {
		if r.Overlaps(b.Range) {
			slot := bookedSlot(r, bookings, viewer)
			slot.PriceCents = ResolvePrice(prices, r, loc)
			return slot
		}
	}

	availabilityState := SlotUnavailable
	if IsBookable(availability, r, loc) {
		availabilityState = SlotAvailable
	}
	return SlotView{
		Range:        r,
		Availability: availabilityState,
		PriceCents:   ResolvePrice(prices, r, loc),
	}
}

// bookedSlot attaches the first overlapping booking. The booking id is
// visible to any viewer; who booked and where are coach-only.
func bookedSlot(r timerange.Range, bookings []Booking, viewer user.Role) SlotView {
	slot := SlotView{Range: r, Availability: SlotBooked}

	for _, b := range bookings {
		if !r.Overlaps(b.Range) {
			continue
		}
		id := b.ID
		slot.BookingID = &id
		if viewer.SeesBookingDetail() {
			bookedBy := b.ParticipantID
			name := b.ParticipantName
			location := b.LocationTitle
			slot.BookedByID = &bookedBy
			slot.BookedByName = &name
			slot.LocationTitle = &location
		}
		return slot
	}
	return slot
}
