package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/go-playground/validator/v10"
)

// Mode selects which contract extracted questions are held to.
type Mode string

const (
	// ModePermissive treats type, passage and correctAnswer as optional.
	ModePermissive Mode = "permissive"
	// ModeStrict additionally requires type and a non-null correctAnswer.
	ModeStrict Mode = "strict"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePermissive:
		return ModePermissive, nil
	case ModeStrict:
		return ModeStrict, nil
	}
	return "", fmt.Errorf("unknown schema mode %q", s)
}

// Validator is the main validator instance that combines all validation types
type Validator struct {
	mode              Mode
	structValidator   *validator.Validate
	questionValidator *QuestionValidator
}

// New creates a new centralized validator instance
func New(mode Mode) *Validator {
	if mode == "" {
		mode = ModePermissive
	}
	structValidator := validator.New(validator.WithRequiredStructEnabled())

	// Register all custom validators once
	registerCustomValidators(structValidator)

	qv := NewQuestionValidator(structValidator, mode)
	structValidator.RegisterStructValidation(qv.questionRules, models.Question{})

	return &Validator{
		mode:              mode,
		structValidator:   structValidator,
		questionValidator: qv,
	}
}

func (v *Validator) Mode() Mode {
	return v.mode
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate validates s and converts field errors into ValidationErrors.
func (v *Validator) Validate(s interface{}) error {
	if err := v.ValidateStruct(s); err != nil {
		if errs := ToValidationErrors(err); len(errs) > 0 {
			return errs
		}
		return err
	}
	return nil
}

// Question returns the question validator
func (v *Validator) Question() *QuestionValidator {
	return v.questionValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("section", enumValidator(func(s string) bool { return models.Section(s).IsValid() }))
	validate.RegisterValidation("domain", enumValidator(func(s string) bool { return models.Domain(s).IsValid() }))
	validate.RegisterValidation("skill", enumValidator(func(s string) bool { return models.Skill(s).IsValid() }))
	validate.RegisterValidation("difficulty", enumValidator(func(s string) bool { return models.Difficulty(s).IsValid() }))
	validate.RegisterValidation("question_type", enumValidator(func(s string) bool { return models.QuestionType(s).IsValid() }))

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func enumValidator(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return valid(fl.Field().String())
	}
}
