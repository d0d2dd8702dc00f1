package services

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// LogLevel represents different log levels for service operations
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

type requestIDKey struct{}

// WithRequestID stores the request id so service logs can be correlated with the access log.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// ===== OPERATION LOGGING =====

// operationStatus maps an error onto a log level and a status label.
func operationStatus(err error) (LogLevel, string) {
	switch {
	case err == nil:
		return LogLevelInfo, "success"
	case IsValidation(err):
		return LogLevelWarn, "validation_error"
	case IsNotFound(err):
		return LogLevelInfo, "not_found"
	case IsUnavailable(err):
		return LogLevelWarn, "unavailable"
	case IsSchemaValidation(err):
		return LogLevelError, "schema_error"
	case IsExtraction(err):
		return LogLevelError, "extraction_error"
	}
	return LogLevelError, "error"
}

func (l *ServiceLogger) LogOperation(ctx context.Context, operation, resourceType, resourceID string, duration time.Duration, err error) {
	logLevel, status := operationStatus(err)

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("resource_type", resourceType),
		slog.String("resource_id", resourceID),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		if fields := GetValidationErrors(err); len(fields) > 0 {
			attrs = append(attrs, slog.Int("validation_errors_count", len(fields)))
		}
	}

	if requestID := requestIDFrom(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	// Caller of the ContextualLogger, two frames up
	if logLevel == LogLevelError {
		if pc, file, line, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	message := fmt.Sprintf("%s operation %s", operation, status)

	switch logLevel {
	case LogLevelDebug:
		if l.config.EnableDebug {
			l.logger.LogAttrs(ctx, slog.LevelDebug, message, attrs...)
		}
	case LogLevelInfo:
		l.logger.LogAttrs(ctx, slog.LevelInfo, message, attrs...)
	case LogLevelWarn:
		l.logger.LogAttrs(ctx, slog.LevelWarn, message, attrs...)
	case LogLevelError:
		l.logger.LogAttrs(ctx, slog.LevelError, message, attrs...)
	}
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, validationErrors ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i >= 5 { // Limit to first 5 errors to avoid log spam
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
			slog.Any("value", err.Value),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

// ===== MIDDLEWARE AND HELPERS =====

// ContextualLogger wraps operations with automatic logging
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(resourceType, resourceID string, err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, resourceType, resourceID, time.Since(cl.startTime), err)

	if fields := GetValidationErrors(err); len(fields) > 0 {
		cl.logger.LogValidationError(cl.ctx, cl.operation, fields)
	}
}

// ===== ERROR FORMATTING HELPERS =====

// FormatError renders err as a structured map for API details and logs.
func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	switch {
	case IsInputValidation(err):
		result["type"] = "input_validation"
	case IsSchemaValidation(err):
		result["type"] = "schema_validation"
	case IsExtraction(err):
		result["type"] = "extraction"
	case IsValidation(err):
		result["type"] = "validation"
	case IsNotFound(err):
		result["type"] = "not_found"
	case IsUnavailable(err):
		result["type"] = "unavailable"
	}

	if fields := GetValidationErrors(err); len(fields) > 0 {
		result["count"] = len(fields)
		errs := make([]map[string]interface{}, len(fields))
		for i, fe := range fields {
			errs[i] = map[string]interface{}{
				"field":   fe.Field,
				"message": fe.Message,
				"value":   fe.Value,
			}
		}
		result["errors"] = errs
	}

	return result
}
