package common

// ToPointer returns a pointer to a copy of the given value. Handy for the
// optional numeric fields of the analyzer wire format.
func ToPointer[T any](v T) *T {
	return &v
}
