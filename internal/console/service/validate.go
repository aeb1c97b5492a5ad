package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is wrapped by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError carries the message a form shows when its input is
// rejected before any backend call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput validates v and turns the first failure into a ValidationError.
// Failures are ranked by tag in the order given, then by field order, and
// messages are looked up as "Field.tag" and then "tag".
func checkInput(v any, messages map[string]string, tags ...string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	first := fieldErrs[0]
	for _, tag := range tags {
		if fe, ok := firstWithTag(fieldErrs, tag); ok {
			first = fe
			break
		}
	}

	if msg, ok := messages[first.Field()+"."+first.Tag()]; ok {
		return invalid(msg)
	}
	if msg, ok := messages[first.Tag()]; ok {
		return invalid(msg)
	}
	return invalid(first.Error())
}

func firstWithTag(errs validator.ValidationErrors, tag string) (validator.FieldError, bool) {
	for _, fe := range errs {
		if fe.Tag() == tag {
			return fe, true
		}
	}
	return nil, false
}
