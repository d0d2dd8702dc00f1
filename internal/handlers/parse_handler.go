package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/services"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ParseResponse is the body of a successful POST /parse-pdf.
type ParseResponse struct {
	Success          bool              `json:"success"`
	FileName         string            `json:"filename"`
	RedisKey         string            `json:"redis_key"`
	QuestionsCount   int               `json:"questions_count"`
	Questions        []models.Question `json:"questions"`
	Message          string            `json:"message"`
	PageCount        int               `json:"page_count"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
}

type ParseHandler struct {
	BaseHandler
	parseService        services.ParseService
	importExportService services.ImportExportService
}

func NewParseHandler(
	parseService services.ParseService,
	importExportService services.ImportExportService,
	logger utils.Logger,
) *ParseHandler {
	return &ParseHandler{
		BaseHandler:         NewBaseHandler(logger),
		parseService:        parseService,
		importExportService: importExportService,
	}
}

// ParsePDF extracts the questions of an uploaded PDF and caches them
// @Summary Parse PDF
// @Tags parse
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} ParseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /parse-pdf [post]
func (h *ParseHandler) ParsePDF(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.respondFormError(c, "A PDF file is required in form field 'file'", err)
		return
	}

	h.LogRequest(c, "Parsing PDF", "filename", header.Filename, "size", header.Size)

	// Checked before opening so a wrong extension never reaches the disk
	if !strings.HasSuffix(header.Filename, ".pdf") {
		h.RespondWithError(c, http.StatusBadRequest, services.ErrNotPDF.Error(), nil)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	result, err := h.parseService.ParseUpload(h.requestContext(c), header.Filename, file, header.Size)
	if err != nil {
		h.HandleServiceError(c, err, "Resource not found")
		return
	}

	h.LogInfo(c, "PDF parsed", "filename", result.Summary.FileName, "questions_count", result.Summary.QuestionsCount,
		"chunks", result.Summary.Chunks, "duration", result.Summary.ProcessingTime.String())

	c.JSON(http.StatusOK, ParseResponse{
		Success:          true,
		FileName:         result.Summary.FileName,
		RedisKey:         result.Summary.CacheKey,
		QuestionsCount:   result.Summary.QuestionsCount,
		Questions:        result.Questions,
		Message:          fmt.Sprintf("Successfully parsed %d questions and stored in Redis", result.Summary.QuestionsCount),
		PageCount:        result.Summary.PageCount,
		ProcessingTimeMs: result.Summary.ProcessingTime.Milliseconds(),
	})
}

// ImportSpreadsheet replaces a cached set with the contents of a reviewed csv or xlsx file
// @Summary Import reviewed questions
// @Tags parse
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "csv or xlsx export"
// @Param filename formData string false "PDF name to store the set under"
// @Success 200 {object} SuccessResponse{data=services.ImportResult}
// @Failure 400 {object} ErrorResponse
// @Router /import [post]
func (h *ParseHandler) ImportSpreadsheet(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.respondFormError(c, "A csv or xlsx file is required in form field 'file'", err)
		return
	}
	target := strings.TrimSpace(c.PostForm("filename"))

	h.LogRequest(c, "Importing questions", "filename", header.Filename, "target", target)

	file, err := header.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}
	defer file.Close()

	result, err := h.importExportService.ImportQuestions(h.requestContext(c), header.Filename, target, file)
	if err != nil {
		h.HandleServiceError(c, err, "Resource not found")
		return
	}

	h.RespondWithSuccess(c, http.StatusOK,
		fmt.Sprintf("Imported %d questions into %s", result.QuestionsCount, result.CacheKey), result)
}

// respondFormError answers 413 when the body hit the upload cap and 400 otherwise.
func (h *ParseHandler) respondFormError(c *gin.Context, message string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		h.RespondWithError(c, http.StatusRequestEntityTooLarge, services.ErrUploadTooLarge.Error(), err)
		return
	}
	h.RespondWithError(c, http.StatusBadRequest, message, err)
}
