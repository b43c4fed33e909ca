package utils

import "errors"

var (
	ErrNotFound               = errors.New("record not found")
	ErrDuplicateEmail         = errors.New("user with this email already exists")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrUnauthenticated        = errors.New("authentication required")
	ErrForbidden              = errors.New("insufficient permissions")
	ErrMissingProviderProfile = errors.New("provider profile not linked to this account")
	ErrSlotTaken              = errors.New("provider already has an appointment at this time")
)

// ValidationError carries per-field messages for a rejected request body.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

// InvalidField is a ValidationError for a single field.
func InvalidField(field, message string) *ValidationError {
	return &ValidationError{
		Message: "Invalid input",
		Fields:  map[string]string{field: message},
	}
}
