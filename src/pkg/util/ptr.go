package util

// Ptr returns a pointer to the given value. Handy for optional JSON fields.
func Ptr[T any](v T) *T {
	return &v
}
