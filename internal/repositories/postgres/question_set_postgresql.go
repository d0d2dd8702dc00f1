package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

var sortColumns = map[string]string{
	"updated_at": "updated_at",
	"created_at": "created_at",
	"file_name":  "file_name",
}

type QuestionSetPostgreSQL struct {
	db *gorm.DB
}

func NewQuestionSetPostgreSQL(db *gorm.DB) repositories.QuestionSetRepository {
	return &QuestionSetPostgreSQL{db: db}
}

func (q *QuestionSetPostgreSQL) Upsert(ctx context.Context, set *models.QuestionSet) error {
	err := q.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "file_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"questions", "questions_count", "cache_key", "updated_at"}),
		}).
		Create(set).Error
	if err != nil {
		return fmt.Errorf("failed to upsert question set: %w", err)
	}

	// On conflict Postgres does not hand back the existing row's ID.
	if set.ID == 0 {
		var existing models.QuestionSet
		if err := q.db.WithContext(ctx).Select("id", "created_at").Where("file_name = ?", set.FileName).First(&existing).Error; err != nil {
			return fmt.Errorf("failed to reload question set: %w", err)
		}
		set.ID = existing.ID
		set.CreatedAt = existing.CreatedAt
	}
	return nil
}

func (q *QuestionSetPostgreSQL) GetByFileName(ctx context.Context, fileName string) (*models.QuestionSet, error) {
	var set models.QuestionSet
	err := q.db.WithContext(ctx).Where("file_name = ?", fileName).First(&set).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrQuestionSetNotFound
		}
		return nil, fmt.Errorf("failed to get question set: %w", err)
	}
	return &set, nil
}

func (q *QuestionSetPostgreSQL) List(ctx context.Context, filters repositories.QuestionSetFilters) ([]*models.QuestionSet, int64, error) {
	var total int64
	if err := q.db.WithContext(ctx).Model(&models.QuestionSet{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count question sets: %w", err)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	column, ok := sortColumns[filters.SortBy]
	if !ok {
		column = "updated_at"
	}
	order := column + " DESC"
	if filters.SortOrder == "asc" {
		order = column + " ASC"
	}

	var sets []*models.QuestionSet
	err := q.db.WithContext(ctx).
		Order(order).
		Limit(limit).
		Offset(max(filters.Offset, 0)).
		Find(&sets).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list question sets: %w", err)
	}
	return sets, total, nil
}

func (q *QuestionSetPostgreSQL) Delete(ctx context.Context, fileName string) error {
	result := q.db.WithContext(ctx).Where("file_name = ?", fileName).Delete(&models.QuestionSet{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete question set: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrQuestionSetNotFound
	}
	return nil
}
