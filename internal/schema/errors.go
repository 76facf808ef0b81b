package schema

import "fmt"

// ShapeError reports a payload that was received but does not match its schema.
// It is a recoverable data error: callers substitute the kind's default.
type ShapeError struct {
	Kind Kind
	// Row is the zero-based row index for row-wise kinds, or -1 for the whole payload
	Row    int
	Reason string
	Err    error
}

func (e *ShapeError) Error() string {
	msg := fmt.Sprintf("invalid %s payload", e.Kind)
	if e.Row >= 0 {
		msg = fmt.Sprintf("invalid %s row %d", e.Kind, e.Row)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

func payloadError(kind Kind, reason string, err error) *ShapeError {
	return &ShapeError{Kind: kind, Row: -1, Reason: reason, Err: err}
}

func rowError(kind Kind, row int, reason string, err error) *ShapeError {
	return &ShapeError{Kind: kind, Row: row, Reason: reason, Err: err}
}
