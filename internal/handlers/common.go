package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/services"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Detail  string      `json:"detail"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging functionality for all handlers
type BaseHandler struct {
	logger utils.Logger
}

// NewBaseHandler creates a new base handler with logging capability
func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestLogger is the per-request logger set by utils.ContextLogger.
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.GetLoggerFromContext(c, h.logger)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := append([]interface{}{
		"remote_addr", c.ClientIP(),
		"user_agent", c.Request.UserAgent(),
		"timestamp", time.Now().Format(time.RFC3339),
	}, additionalFields...)

	h.requestLogger(c).Info(message, fields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.requestLogger(c).LogError(err, message, additionalFields...)
}

// LogInfo logs informational messages with context
func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Info(message, additionalFields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Warn(message, additionalFields...)
}

// requestContext carries the request id into service calls.
func (h *BaseHandler) requestContext(c *gin.Context) context.Context {
	return services.WithRequestID(c.Request.Context(), utils.GetRequestID(c))
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Detail: message,
	}

	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else if err != nil {
		h.LogWarn(c, message, "status_code", statusCode, "error", err.Error())
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response and logs it
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}, additionalFields ...interface{}) {
	fields := append([]interface{}{"status_code", statusCode}, additionalFields...)
	h.LogInfo(c, message, fields...)

	c.JSON(statusCode, SuccessResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP responses.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error, notFoundMessage string) {
	switch {
	case services.IsInputValidation(err):
		h.respondWithCode(c, http.StatusBadRequest, "invalid_input", err.Error(), err, services.GetValidationErrors(err))
	case services.IsSchemaValidation(err):
		h.respondWithCode(c, http.StatusInternalServerError, "schema_validation_failed", err.Error(), err, services.GetValidationErrors(err))
	case services.IsValidation(err):
		h.respondWithCode(c, http.StatusBadRequest, "validation_failed", "Validation failed", err, services.GetValidationErrors(err))
	case services.IsNotFound(err):
		h.respondWithCode(c, http.StatusNotFound, "not_found", notFoundMessage, err, nil)
	case services.IsUnavailable(err):
		h.respondWithCode(c, http.StatusServiceUnavailable, "unavailable", err.Error(), err, nil)
	case services.IsExtraction(err):
		h.respondWithCode(c, http.StatusInternalServerError, "extraction_failed", err.Error(), err, nil)
	default:
		h.respondWithCode(c, http.StatusInternalServerError, "internal_error", err.Error(), err, nil)
	}
}

func (h *BaseHandler) respondWithCode(c *gin.Context, statusCode int, code, message string, err error, details interface{}) {
	if statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode, "code", code)
	} else {
		h.LogWarn(c, message, "status_code", statusCode, "code", code, "error", err.Error())
	}

	resp := ErrorResponse{Detail: message, Code: code}
	if fields, ok := details.(services.ValidationErrors); ok && len(fields) > 0 {
		resp.Details = fields
	}
	c.JSON(statusCode, resp)
}
