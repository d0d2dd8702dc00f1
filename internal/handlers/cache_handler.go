package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/services"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const cacheNotFoundMessage = "Key not found in Redis"

// CacheEntryResponse is the body of GET /cache/:key.
type CacheEntryResponse struct {
	Success bool            `json:"success"`
	Key     string          `json:"key"`
	Data    json.RawMessage `json:"data"`
}

type CacheHandler struct {
	BaseHandler
	cacheService        services.CacheService
	importExportService services.ImportExportService
}

func NewCacheHandler(
	cacheService services.CacheService,
	importExportService services.ImportExportService,
	logger utils.Logger,
) *CacheHandler {
	return &CacheHandler{
		BaseHandler:         NewBaseHandler(logger),
		cacheService:        cacheService,
		importExportService: importExportService,
	}
}

// GetEntry returns the stored value of a cache key
// @Summary Get cache entry
// @Tags cache
// @Produce json
// @Param key path string true "Cache key, e.g. parsed:exam.pdf"
// @Success 200 {object} CacheEntryResponse
// @Failure 404 {object} ErrorResponse
// @Router /cache/{key} [get]
func (h *CacheHandler) GetEntry(c *gin.Context) {
	key := ParseStringIDParam(c, "key")
	if key == "" {
		return
	}

	h.LogRequest(c, "Getting cache entry", "key", key)

	data, err := h.cacheService.Get(h.requestContext(c), key)
	if err != nil {
		h.HandleServiceError(c, err, cacheNotFoundMessage)
		return
	}

	// Encoded without HTML escaping so data matches the stored bytes exactly
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(CacheEntryResponse{Success: true, Key: key, Data: data}); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to encode cache entry", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", bytes.TrimSuffix(body.Bytes(), []byte("\n")))
}

// DeleteEntry removes a cache key
// @Summary Delete cache entry
// @Tags cache
// @Produce json
// @Param key path string true "Cache key"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /cache/{key} [delete]
func (h *CacheHandler) DeleteEntry(c *gin.Context) {
	key := ParseStringIDParam(c, "key")
	if key == "" {
		return
	}

	h.LogRequest(c, "Deleting cache entry", "key", key)

	if err := h.cacheService.Delete(h.requestContext(c), key); err != nil {
		h.HandleServiceError(c, err, cacheNotFoundMessage)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, fmt.Sprintf("Key '%s' deleted from Redis", key), nil)
}

// ExportEntry downloads a cached question set as xlsx, csv or json
// @Summary Export cache entry
// @Tags cache
// @Produce application/octet-stream
// @Param key path string true "Cache key"
// @Param format query string false "xlsx (default), csv or json"
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cache/{key}/export [get]
func (h *CacheHandler) ExportEntry(c *gin.Context) {
	key := ParseStringIDParam(c, "key")
	if key == "" {
		return
	}

	req := models.ExportRequest{Key: key, Format: c.Query("format")}
	h.LogRequest(c, "Exporting cache entry", "key", key, "format", req.Format)

	file, err := h.importExportService.ExportCached(h.requestContext(c), req)
	if err != nil {
		h.HandleServiceError(c, err, cacheNotFoundMessage)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
