package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/services"
	"github.com/SAP-F-2025/question-parser-service/internal/utils"
	"github.com/gin-gonic/gin"
)

const questionSetNotFoundMessage = "Question set not found"

// QuestionSetListResponse is the body of GET /question-sets.
type QuestionSetListResponse struct {
	Success bool                  `json:"success"`
	Data    []*models.QuestionSet `json:"data"`
	Total   int64                 `json:"total"`
	Limit   int                   `json:"limit"`
	Offset  int                   `json:"offset"`
}

type QuestionSetHandler struct {
	BaseHandler
	questionSetService services.QuestionSetService
}

func NewQuestionSetHandler(questionSetService services.QuestionSetService, logger utils.Logger) *QuestionSetHandler {
	return &QuestionSetHandler{
		BaseHandler:        NewBaseHandler(logger),
		questionSetService: questionSetService,
	}
}

// Finalize stores a reviewed question set
// @Summary Finalize question set
// @Tags question-sets
// @Accept json
// @Produce json
// @Param request body models.FinalizeRequest true "Reviewed questions"
// @Success 200 {object} SuccessResponse{data=models.FinalizeResult}
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /finalize [post]
func (h *QuestionSetHandler) Finalize(c *gin.Context) {
	var req models.FinalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogRequest(c, "Finalizing question set", "file_name", req.FileName, "questions_count", len(req.Questions))

	result, err := h.questionSetService.Finalize(h.requestContext(c), &req)
	if err != nil {
		h.HandleServiceError(c, err, questionSetNotFoundMessage)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK,
		fmt.Sprintf("Finalized %d questions for %s", result.QuestionsCount, result.FileName), result,
		"persisted", result.Persisted)
}

// ListQuestionSets lists persisted question sets
// @Summary List question sets
// @Tags question-sets
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} QuestionSetListResponse
// @Failure 503 {object} ErrorResponse
// @Router /question-sets [get]
func (h *QuestionSetHandler) ListQuestionSets(c *gin.Context) {
	filters, ok := parseQuestionSetFilters(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Listing question sets", "limit", filters.Limit, "offset", filters.Offset)

	sets, total, err := h.questionSetService.ListQuestionSets(h.requestContext(c), filters)
	if err != nil {
		h.HandleServiceError(c, err, questionSetNotFoundMessage)
		return
	}

	c.JSON(http.StatusOK, QuestionSetListResponse{
		Success: true,
		Data:    sets,
		Total:   total,
		Limit:   filters.Limit,
		Offset:  filters.Offset,
	})
}

// GetQuestionSet returns one persisted question set
// @Summary Get question set
// @Tags question-sets
// @Produce json
// @Param file_name path string true "Source PDF name"
// @Success 200 {object} SuccessResponse{data=models.QuestionSet}
// @Failure 404 {object} ErrorResponse
// @Router /question-sets/{file_name} [get]
func (h *QuestionSetHandler) GetQuestionSet(c *gin.Context) {
	fileName := ParseStringIDParam(c, "file_name")
	if fileName == "" {
		return
	}

	h.LogRequest(c, "Getting question set", "file_name", fileName)

	set, err := h.questionSetService.GetQuestionSet(h.requestContext(c), fileName)
	if err != nil {
		h.HandleServiceError(c, err, questionSetNotFoundMessage)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Success: true, Data: set})
}

// DeleteQuestionSet removes a persisted question set and its finalized cache entry
// @Summary Delete question set
// @Tags question-sets
// @Produce json
// @Param file_name path string true "Source PDF name"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /question-sets/{file_name} [delete]
func (h *QuestionSetHandler) DeleteQuestionSet(c *gin.Context) {
	fileName := ParseStringIDParam(c, "file_name")
	if fileName == "" {
		return
	}

	h.LogRequest(c, "Deleting question set", "file_name", fileName)

	if err := h.questionSetService.DeleteQuestionSet(h.requestContext(c), fileName); err != nil {
		h.HandleServiceError(c, err, questionSetNotFoundMessage)
		return
	}

	h.RespondWithSuccess(c, http.StatusOK, fmt.Sprintf("Question set '%s' deleted", fileName), nil)
}
