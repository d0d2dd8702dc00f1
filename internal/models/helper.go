package models

import "time"

// ParseSummary describes one completed extraction run.
type ParseSummary struct {
	FileName       string        `json:"filename"`
	CacheKey       string        `json:"redis_key"`
	PageCount      int           `json:"page_count"`
	QuestionsCount int           `json:"questions_count"`
	Chunks         int           `json:"chunks"`
	ProcessingTime time.Duration `json:"processing_time"`
}

type ExportRequest struct {
	Key    string `json:"key" validate:"required"`
	Format string `json:"format" validate:"omitempty,oneof=xlsx csv json"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// TypePtr returns a pointer to t.
func TypePtr(t QuestionType) *QuestionType {
	return &t
}

// FinalizeRequest carries a reviewed question set for one source file.
type FinalizeRequest struct {
	FileName  string     `json:"file_name" validate:"required,max=255"`
	Questions []Question `json:"questions" validate:"required,min=1"`
}

type FinalizeResult struct {
	FileName       string `json:"file_name"`
	CacheKey       string `json:"redis_key"`
	QuestionSetID  uint   `json:"question_set_id,omitempty"`
	QuestionsCount int    `json:"questions_count"`
	Persisted      bool   `json:"persisted"`
}
