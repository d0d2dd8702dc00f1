package validator

import (
	"fmt"
	"strings"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// QuestionValidator applies the field and cross-field rules of a question.
type QuestionValidator struct {
	validate *validator.Validate
	mode     Mode
}

// NewQuestionValidator creates a new question validator
func NewQuestionValidator(validate *validator.Validate, mode Mode) *QuestionValidator {
	return &QuestionValidator{validate: validate, mode: mode}
}

// ValidateQuestion validates a complete question object
func (v *QuestionValidator) ValidateQuestion(question *models.Question) error {
	if question == nil {
		return ValidationErrors{{Field: "", Message: "question is null"}}
	}
	if err := v.validate.Struct(question); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// ValidateBatch validates every question and collects all failures, each
// field path prefixed with the question's position, e.g. "[2].options".
func (v *QuestionValidator) ValidateBatch(questions []models.Question) error {
	var all ValidationErrors
	for i := range questions {
		err := v.ValidateQuestion(&questions[i])
		if err == nil {
			continue
		}
		errs := ToValidationErrors(err)
		if len(errs) == 0 {
			return fmt.Errorf("validation failed for question %d: %w", i, err)
		}
		all = append(all, errs.WithPrefix(fmt.Sprintf("[%d].", i))...)
	}
	if len(all) > 0 {
		return all
	}
	return nil
}

// questionRules is registered as the struct-level validation for models.Question.
func (v *QuestionValidator) questionRules(sl validator.StructLevel) {
	q := sl.Current().Interface().(models.Question)

	if q.QuestionText != "" && strings.TrimSpace(q.QuestionText) == "" {
		sl.ReportError(q.QuestionText, "questionText", "QuestionText", "notblank", "")
	}

	if q.Type != nil {
		switch *q.Type {
		case models.ShortAnswer:
			if q.Options != nil {
				sl.ReportError(q.Options, "options", "Options", "options_forbidden", "")
			}
		case models.MultipleChoice:
			if len(q.Options) == 0 {
				sl.ReportError(q.Options, "options", "Options", "options_required", "")
			}
		}
	}

	seen := make(map[string]bool, len(q.Options))
	for i, opt := range q.Options {
		if opt.Label == "" {
			continue
		}
		if seen[opt.Label] {
			sl.ReportError(opt.Label, fmt.Sprintf("options[%d].label", i), "Label", "unique_label", "")
		}
		seen[opt.Label] = true
	}

	if v.mode == ModeStrict {
		if q.Type == nil {
			sl.ReportError(q.Type, "type", "Type", "required", "")
		}
		if q.CorrectAnswer == nil {
			sl.ReportError(q.CorrectAnswer, "correctAnswer", "CorrectAnswer", "required", "")
		}
	}
}
