package user

type Role string

const (
	RoleStudent Role = "student"
	RoleCoach   Role = "coach"
	RoleAdmin   Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleCoach, RoleAdmin:
		return true
	default:
		return false
	}
}

// SeesBookingDetail reports whether composed slots expose who booked a
// slot and where. Students only ever see that a slot is taken.
func (r Role) SeesBookingDetail() bool {
	return r == RoleCoach || r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
