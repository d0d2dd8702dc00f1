package repositories

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
)

var ErrQuestionSetNotFound = errors.New("question set not found")

// ===== SHARED FILTER STRUCTS =====

type QuestionSetFilters struct {
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "updated_at", "created_at", "file_name"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

// ===== REPOSITORY INTERFACES =====

type QuestionSetRepository interface {
	// Upsert inserts the set or replaces the questions of the set with the same file name.
	Upsert(ctx context.Context, set *models.QuestionSet) error
	GetByFileName(ctx context.Context, fileName string) (*models.QuestionSet, error)
	List(ctx context.Context, filters QuestionSetFilters) ([]*models.QuestionSet, int64, error)
	Delete(ctx context.Context, fileName string) error
}
