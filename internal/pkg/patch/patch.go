// Package patch holds helpers for partial updates, where a nil request
// field means "keep the stored value".
package patch

// Coalesce dereferences v when it is set and falls back otherwise.
func Coalesce[T any](v *T, fallback T) T {
	if v == nil {
		return fallback
	}
	return *v
}
