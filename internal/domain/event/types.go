package event

type Type string

const (
	TypeSingle    Type = "single"
	TypeRecurring Type = "recurring"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeSingle, TypeRecurring:
		return true
	default:
		return false
	}
}

// Status transitions: scheduled -> cancelled and scheduled -> finished,
// both terminal. Finishing is driven by the schedule worker, never by
// the core algorithms themselves.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCancelled Status = "cancelled"
	StatusFinished  Status = "finished"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusCancelled, StatusFinished:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFinished
}

type FreeBusy string

const (
	FreeBusyFree FreeBusy = "free"
	FreeBusyBusy FreeBusy = "busy"
)

func (f FreeBusy) String() string {
	return string(f)
}

func (f FreeBusy) IsValid() bool {
	return f == FreeBusyFree || f == FreeBusyBusy
}

type Visibility string

const (
	VisibilityDefault Visibility = "default"
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

func (v Visibility) String() string {
	return string(v)
}

func (v Visibility) IsValid() bool {
	switch v {
	case VisibilityDefault, VisibilityPublic, VisibilityPrivate:
		return true
	default:
		return false
	}
}

type AttendeeRole string

const (
	AttendeeRequired AttendeeRole = "required"
	AttendeeOptional AttendeeRole = "optional"
)

func (r AttendeeRole) String() string {
	return string(r)
}

func (r AttendeeRole) IsValid() bool {
	return r == AttendeeRequired || r == AttendeeOptional
}

// RSVPStatus is re-settable: no invariant forbids flipping an answer.
type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

func (s RSVPStatus) String() string {
	return string(s)
}

func (s RSVPStatus) IsValid() bool {
	switch s {
	case RSVPPending, RSVPAccepted, RSVPDeclined:
		return true
	default:
		return false
	}
}
