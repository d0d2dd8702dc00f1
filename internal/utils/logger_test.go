package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		router.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("generates id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		id := w.Header().Get(RequestIDHeader)
		assert.Len(t, id, 36)
		assert.Equal(t, id, w.Body.String())
	})
}

func TestGetLoggerFromContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("request logger carries request fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, true)
		router := gin.New()
		router.Use(RequestIDMiddleware(), ContextLogger(logger))
		router.GET("/items", func(c *gin.Context) {
			GetLoggerFromContext(c, logger).Info("handled")
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		router.ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "handled", entry["msg"])
		assert.Equal(t, "req-42", entry["request_id"])
		assert.Equal(t, http.MethodGet, entry["method"])
		assert.Equal(t, "/items", entry["path"])
	})

	t.Run("falls back without middleware", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLoggerTo(&buf, true)
		router := gin.New()
		router.Use(RequestIDMiddleware())
		router.GET("/items", func(c *gin.Context) {
			GetLoggerFromContext(c, logger).Info("handled")
			c.Status(http.StatusNoContent)
		})

		req := httptest.NewRequest(http.MethodGet, "/items", nil)
		req.Header.Set(RequestIDHeader, "req-7")
		router.ServeHTTP(httptest.NewRecorder(), req)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "req-7", entry["request_id"])
	})
}
