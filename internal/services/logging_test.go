package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOperationStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		level  LogLevel
		status string
	}{
		{"success", nil, LogLevelInfo, "success"},
		{"input", NewInputValidationError("file", ErrNotPDF), LogLevelWarn, "validation_error"},
		{"miss", fmt.Errorf("get: %w", ErrCacheMiss), LogLevelInfo, "not_found"},
		{"schema", schemaFailure(), LogLevelError, "schema_error"},
		{"extraction", NewExtractionServiceError("completion", errors.New("timeout")), LogLevelError, "extraction_error"},
		{"disabled", ErrPersistenceDisabled, LogLevelWarn, "unavailable"},
		{"other", errors.New("boom"), LogLevelError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, status := operationStatus(tt.err)
			assert.Equal(t, tt.level, level)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestServiceLogger_LogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewServiceLogger(slog.New(slog.NewJSONHandler(&buf, nil)), LogConfig{Service: "test", Component: "parse"})

	ctx := WithRequestID(context.Background(), "req-1")
	logger.LogOperation(ctx, "parse_upload", "pdf", "sample.pdf", 5*time.Millisecond, schemaFailure())

	out := buf.String()
	assert.Contains(t, out, `"status":"schema_error"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"validation_errors_count":1`)
	assert.Contains(t, out, `"level":"ERROR"`)
}

func TestFormatError(t *testing.T) {
	assert.Nil(t, FormatError(nil))

	formatted := FormatError(schemaFailure())
	assert.Equal(t, "schema_validation", formatted["type"])
	assert.Equal(t, 1, formatted["count"])

	assert.Equal(t, "input_validation", FormatError(NewInputValidationError("file", ErrNotPDF))["type"])
	assert.Equal(t, "not_found", FormatError(ErrCacheMiss)["type"])
}
