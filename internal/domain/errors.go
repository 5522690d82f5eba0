package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// ValidationError reports malformed caller input. Message is safe to return
// to the caller and names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation unwraps err into a ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
