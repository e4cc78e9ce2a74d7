package conv

// Pointer returns a pointer to a copy of value, e.g. for optional schema
// fields such as CallToolResult.IsError.
func Pointer[T any](value T) *T {
	return &value
}

// Dereference returns the value ptr points to, or the zero value for nil.
func Dereference[T any](ptr *T) T {
	if ptr != nil {
		return *ptr
	}
	var zero T
	return zero
}
