package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of question pipeline events
type EventType string

const (
	EventQuestionsParsed    EventType = "questions.parsed"
	EventQuestionsFinalized EventType = "questions.finalized"
	EventCacheEntryDeleted  EventType = "questions.cache_deleted"
)

const (
	EventSource  = "question-parser-service"
	EventVersion = "1.0"
)

// QuestionEvent is the envelope for every published event
type QuestionEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

func NewQuestionEvent(eventType EventType, data interface{}) *QuestionEvent {
	return &QuestionEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    EventSource,
		Version:   EventVersion,
		Data:      data,
	}
}

// WithMetadata sets a metadata entry and returns the event.
func (e *QuestionEvent) WithMetadata(key string, value interface{}) *QuestionEvent {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// Event payloads

type QuestionsParsedEvent struct {
	FileName       string `json:"file_name"`
	CacheKey       string `json:"cache_key"`
	PageCount      int    `json:"page_count"`
	QuestionsCount int    `json:"questions_count"`
	Chunks         int    `json:"chunks"`
	DurationMs     int64  `json:"duration_ms"`
}

type QuestionsFinalizedEvent struct {
	FileName       string `json:"file_name"`
	CacheKey       string `json:"cache_key"`
	QuestionSetID  uint   `json:"question_set_id,omitempty"`
	QuestionsCount int    `json:"questions_count"`
	Persisted      bool   `json:"persisted"`
}

type CacheEntryDeletedEvent struct {
	Key string `json:"key"`
}
