// Package timezone carries and validates IANA zone identifiers. The
// core only attaches zones to timestamps; it does not attempt any
// conversion correctness beyond that.
package timezone

import "time"

const Default = "UTC"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves tz, falling back to the default zone rather than
// failing: a stored zone that stopped resolving must not break reads.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return time.UTC
}
