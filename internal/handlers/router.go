package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/SAP-F-2025/question-parser-service/internal/events"
	"github.com/SAP-F-2025/question-parser-service/internal/services"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const (
	ServiceVersion = "1.0.0"

	healthPingTimeout = 2 * time.Second

	// multipartOverhead leaves room for boundaries and form fields around the file.
	multipartOverhead = 1 << 20
)

type HandlerManager struct {
	parseHandler       *ParseHandler
	cacheHandler       *CacheHandler
	questionSetHandler *QuestionSetHandler
	cacheService       services.CacheService
	maxUploadBytes     int64
}

// NewHandlerManager wires handlers to services. maxUploadBytes caps upload
// request bodies; 0 leaves them unbounded.
func NewHandlerManager(
	serviceManager services.ServiceManager,
	logger utils.Logger,
	maxUploadBytes int64,
) *HandlerManager {
	return &HandlerManager{
		parseHandler:       NewParseHandler(serviceManager.Parse(), serviceManager.ImportExport(), logger),
		cacheHandler:       NewCacheHandler(serviceManager.Cache(), serviceManager.ImportExport(), logger),
		questionSetHandler: NewQuestionSetHandler(serviceManager.QuestionSet(), logger),
		cacheService:       serviceManager.Cache(),
		maxUploadBytes:     maxUploadBytes,
	}
}

// SetupMiddleware installs request ids, logging, recovery and CORS.
func SetupMiddleware(router *gin.Engine, logger utils.Logger, allowedOrigins []string) {
	router.Use(
		utils.RequestIDMiddleware(),
		utils.LoggerMiddleware(logger),
		utils.ContextLogger(logger),
		gin.Recovery(),
		cors.New(corsConfig(allowedOrigins)),
	)
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", utils.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", utils.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

// limitBody stops reading a request body once it passes max plus the multipart
// overhead, so oversized uploads are rejected without being spooled to disk.
func limitBody(max int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if max > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, max+multipartOverhead)
		}
		c.Next()
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/", Root)
	router.GET("/health", hm.HealthCheck)

	// Extraction
	uploadLimit := limitBody(hm.maxUploadBytes)
	router.POST("/parse-pdf", uploadLimit, hm.parseHandler.ParsePDF)
	router.POST("/import", uploadLimit, hm.parseHandler.ImportSpreadsheet)

	// Cache routes
	cacheRoutes := router.Group("/cache")
	{
		cacheRoutes.GET("/:key", hm.cacheHandler.GetEntry)
		cacheRoutes.DELETE("/:key", hm.cacheHandler.DeleteEntry)
		cacheRoutes.GET("/:key/export", hm.cacheHandler.ExportEntry)
	}

	// Finalized question sets
	router.POST("/finalize", hm.questionSetHandler.Finalize)
	questionSets := router.Group("/question-sets")
	{
		questionSets.GET("", hm.questionSetHandler.ListQuestionSets)
		questionSets.GET("/:file_name", hm.questionSetHandler.GetQuestionSet)
		questionSets.DELETE("/:file_name", hm.questionSetHandler.DeleteQuestionSet)
	}
}

// Root reports that the service is up.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "Question parser service is running",
		"version": ServiceVersion,
	})
}

// HealthCheck reports liveness including the Redis connection.
func (hm *HandlerManager) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	status, redisStatus, code := "healthy", "up", http.StatusOK
	if err := hm.cacheService.Ping(ctx); err != nil {
		status, redisStatus, code = "degraded", "down", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":  status,
		"service": events.EventSource,
		"redis":   redisStatus,
	})
}
