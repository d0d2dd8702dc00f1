package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
	Rule    string      `json:"rule,omitempty"`
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("validation failed: %s %s", ve[0].Field, ve[0].Message)
	}
	return fmt.Sprintf("validation failed: %d field errors", len(ve))
}

func (pe *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", pe.Field, pe.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewValidationErrorWithRule creates a new validation error with rule
func NewValidationErrorWithRule(field, message, rule string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Value:   value,
		Rule:    rule,
	}
}

// WithPrefix returns a copy whose field paths are prefixed, e.g. "[3].options[1].label".
func (ve ValidationErrors) WithPrefix(prefix string) ValidationErrors {
	out := make(ValidationErrors, len(ve))
	for i, e := range ve {
		e.Field = prefix + e.Field
		out[i] = e
	}
	return out
}

// ToValidationErrors converts validator.ValidationErrors to our custom type.
// Errors that are already ValidationErrors or a single ValidationError pass through.
func ToValidationErrors(err error) ValidationErrors {
	var errs ValidationErrors

	var own ValidationErrors
	if errors.As(err, &own) {
		return own
	}
	var single *ValidationError
	if errors.As(err, &single) {
		return ValidationErrors{*single}
	}

	var validatorErr validator.ValidationErrors
	if errors.As(err, &validatorErr) {
		for _, fe := range validatorErr {
			errs = append(errs, ValidationError{
				Field:   fieldPath(fe),
				Message: getErrorMessage(fe),
				Value:   fe.Value(),
				Rule:    fe.Tag(),
			})
		}
	}

	return errs
}

// fieldPath drops the top-level struct name from the namespace ("Question.options[0].label" -> "options[0].label").
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

// getErrorMessage returns user-friendly error messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	// Closed-set fields
	case "section":
		return "must be reading_and_writing or math"
	case "domain":
		return "must be a known domain"
	case "skill":
		return "must be a known skill"
	case "difficulty":
		return "must be easy, medium, or hard"
	case "question_type":
		return "must be multiple_choice or short_answer"

	// Cross-field rules
	case "options_forbidden":
		return "must be null for short_answer questions"
	case "options_required":
		return "are required for multiple_choice questions"
	case "unique_label":
		return "must be unique within a question"
	case "notblank":
		return "must not be blank"

	default:
		return fmt.Sprintf("validation failed for rule '%s'", err.Tag())
	}
}
