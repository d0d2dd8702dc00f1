package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionSet is a reviewed, finalized set of questions for one source file.
type QuestionSet struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	FileName       string         `json:"file_name" gorm:"not null;size:255;uniqueIndex"`
	Questions      datatypes.JSON `json:"questions" gorm:"type:jsonb;not null"` // []Question
	QuestionsCount int            `json:"questions_count" gorm:"not null;default:0"`
	CacheKey       string         `json:"cache_key" gorm:"size:300"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}
