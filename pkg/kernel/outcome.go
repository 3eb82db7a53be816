package kernel

// Outcome carries either a value or a degraded-empty marker with the reason.
// It lets batch code keep going past a failed best-effort step without
// turning the failure into a batch error.
type Outcome[T any] struct {
	Value    T
	Degraded bool
	Reason   error
}

// Ok wraps a successful value
func Ok[T any](v T) Outcome[T] {
	return Outcome[T]{Value: v}
}

// Degrade returns the zero value marked as degraded
func Degrade[T any](reason error) Outcome[T] {
	var zero T
	return Outcome[T]{Value: zero, Degraded: true, Reason: reason}
}

// DegradeWith returns fallback marked as degraded
func DegradeWith[T any](fallback T, reason error) Outcome[T] {
	return Outcome[T]{Value: fallback, Degraded: true, Reason: reason}
}
