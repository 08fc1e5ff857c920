package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrUnauthorized means the caller's classification level does not
	// permit the requested action. It is returned before any repository
	// lookup, so callers learn nothing about whether the target exists.
	ErrUnauthorized = errors.New("you are not allowed to perform this action")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password; login failures are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrSendFailed means the contact message could not be delivered.
	ErrSendFailed = errors.New("the message could not be sent, please try again later")
)

// ValidationError carries per-field messages for a rejected submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// asValidationError converts validator failures into a *ValidationError with
// readable per-field messages. Other errors pass through unchanged.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[strings.ToLower(fe.Field())] = fieldMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "author_name":
		return "may contain only letters and spaces"
	case "il_phone":
		return "must be a valid phone number (05X-XXXXXXX)"
	default:
		return "is invalid"
	}
}
