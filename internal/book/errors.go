package book

import "errors"

var (
	ErrNotFound  = errors.New("book not found")
	ErrInvalidID = errors.New("invalid book id")
)

// ValidationError reports the first input field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
