package domain

// Coalesce returns the first non-zero value from vals. Flag, config and
// built-in defaults are passed in that order.
func Coalesce[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}

// ValueOr returns the first non-nil pointer's value, or fallback. A nil
// pointer stands for "not set", so an explicit false or 0 still wins.
func ValueOr[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
