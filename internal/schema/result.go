package schema

// Result is the tagged outcome of validating an untrusted payload: either Ok with a value
// (and, for row-wise kinds, the rows that were dropped) or Invalid with a reason.
type Result[T any] struct {
	value   T
	reason  error
	dropped []error
}

// Ok wraps a validated value
func Ok[T any](v T, dropped ...error) Result[T] {
	return Result[T]{value: v, dropped: dropped}
}

// Invalid wraps a validation failure
func Invalid[T any](reason error) Result[T] {
	return Result[T]{reason: reason}
}

// IsOK reports whether the payload validated
func (r Result[T]) IsOK() bool {
	return r.reason == nil
}

// Unwrap returns the value or the reason it is invalid
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.reason
}

// Reason returns the validation failure, or nil
func (r Result[T]) Reason() error {
	return r.reason
}

// Dropped returns one error per row removed from an otherwise valid payload
func (r Result[T]) Dropped() []error {
	return r.dropped
}

// OrElse returns the value, or def when the result is invalid
func (r Result[T]) OrElse(def T) T {
	if r.reason != nil {
		return def
	}
	return r.value
}
