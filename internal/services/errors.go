package services

import (
	"errors"

	"github.com/SAP-F-2025/question-parser-service/internal/cache"
	apperrors "github.com/SAP-F-2025/question-parser-service/internal/errors"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Cache errors
	ErrCacheMiss = cache.ErrCacheMiss
	ErrEmptyKey  = errors.New("key cannot be empty")

	// Question set errors
	ErrQuestionSetNotFound = repositories.ErrQuestionSetNotFound
	ErrPersistenceDisabled = errors.New("question set persistence is not configured")

	// Upload errors
	ErrNotPDF            = errors.New("only PDF files are allowed")
	ErrEmptyUpload       = errors.New("uploaded file is empty")
	ErrUploadTooLarge    = errors.New("uploaded file is too large")
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// Import errors
	ErrNoQuestions = errors.New("at least one question is required")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared error types from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors
type InputValidationError = apperrors.InputValidationError
type ExtractionServiceError = apperrors.ExtractionServiceError
type SchemaValidationError = apperrors.SchemaValidationError

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// NewInputValidationError wraps cause so both errors.Is(err, cause) and IsInputValidation match.
func NewInputValidationError(field string, cause error) *InputValidationError {
	return &InputValidationError{Field: field, Message: cause.Error(), Err: cause}
}

func NewExtractionServiceError(op string, err error) *ExtractionServiceError {
	return apperrors.NewExtractionServiceError(op, err)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCacheMiss) ||
		errors.Is(err, ErrQuestionSetNotFound)
}

// IsInputValidation checks if the caller sent an unusable request
func IsInputValidation(err error) bool {
	var ive *InputValidationError
	return errors.As(err, &ive)
}

// IsValidation checks if error represents a validation failure of caller-supplied data
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) || IsInputValidation(err) {
		return true
	}
	if IsSchemaValidation(err) {
		return false
	}
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// IsExtraction checks if the completion service or document read failed
func IsExtraction(err error) bool {
	var ese *ExtractionServiceError
	return errors.As(err, &ese)
}

// IsSchemaValidation checks if the completion reply failed validation
func IsSchemaValidation(err error) bool {
	var sve *SchemaValidationError
	return errors.As(err, &sve)
}

// IsUnavailable checks if a feature is switched off by configuration
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrPersistenceDisabled)
}

// GetValidationErrors extracts field errors from err, if any
func GetValidationErrors(err error) ValidationErrors {
	var sve *SchemaValidationError
	if errors.As(err, &sve) {
		return sve.Fields
	}
	return apperrors.ToValidationErrors(err)
}
