package errors

import "fmt"

// InputValidationError reports a request the caller has to fix (bad file name, empty upload).
type InputValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *InputValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e *InputValidationError) Unwrap() error {
	return e.Err
}

func NewInputValidationError(field, message string) *InputValidationError {
	return &InputValidationError{Field: field, Message: message}
}

// ExtractionServiceError wraps a failure of the completion service or of reading the document.
type ExtractionServiceError struct {
	Op  string
	Err error
}

func (e *ExtractionServiceError) Error() string {
	return fmt.Sprintf("extraction %s failed: %v", e.Op, e.Err)
}

func (e *ExtractionServiceError) Unwrap() error {
	return e.Err
}

func NewExtractionServiceError(op string, err error) *ExtractionServiceError {
	return &ExtractionServiceError{Op: op, Err: err}
}

// SchemaValidationError reports a completion reply that is not a valid question list.
// Fields is empty when the reply could not be parsed at all.
type SchemaValidationError struct {
	Reason string
	Fields ValidationErrors
	Err    error
}

func (e *SchemaValidationError) Error() string {
	switch {
	case len(e.Fields) > 0:
		return fmt.Sprintf("schema validation failed: %s: %s", e.Reason, e.Fields.Error())
	case e.Err != nil:
		return fmt.Sprintf("schema validation failed: %s: %v", e.Reason, e.Err)
	}
	return "schema validation failed: " + e.Reason
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Err
}

func NewSchemaValidationError(reason string, err error) *SchemaValidationError {
	return &SchemaValidationError{Reason: reason, Fields: ToValidationErrors(err), Err: err}
}
