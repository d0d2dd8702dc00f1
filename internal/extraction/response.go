package extraction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/SAP-F-2025/question-parser-service/internal/errors"
	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ResponseValidator turns a raw completion reply into validated questions.
type ResponseValidator struct {
	mode   validator.Mode
	schema *jsonschema.Schema
	rules  *validator.Validator
}

func NewResponseValidator(def SchemaDefinition, rules *validator.Validator) (*ResponseValidator, error) {
	schema, err := def.Compile()
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = validator.New(def.Mode())
	}
	return &ResponseValidator{mode: def.Mode(), schema: schema, rules: rules}, nil
}

// Validate parses raw and checks every question. Either all questions are
// returned, in reply order, or a *errors.SchemaValidationError.
func (v *ResponseValidator) Validate(raw string) ([]models.Question, error) {
	doc, err := parseReply(raw)
	if err != nil {
		return nil, apperrors.NewSchemaValidationError("reply is not valid JSON", err)
	}

	var tree any
	if err := json.Unmarshal(doc, &tree); err != nil {
		return nil, apperrors.NewSchemaValidationError("reply is not valid JSON", err)
	}
	if err := v.schema.Validate(tree); err != nil {
		return nil, apperrors.NewSchemaValidationError("reply does not match schema", schemaFieldErrors(err))
	}

	var questions []models.Question
	if err := json.Unmarshal(doc, &questions); err != nil {
		var enumErr *models.EnumError
		if errors.As(err, &enumErr) {
			err = apperrors.ValidationErrors{*apperrors.NewValidationErrorWithRule(enumErr.Field, "is not an allowed value", enumErr.Field, enumErr.Value)}
		}
		return nil, apperrors.NewSchemaValidationError("reply does not decode", err)
	}
	if questions == nil {
		questions = []models.Question{}
	}

	if v.mode != validator.ModeStrict {
		deriveMissingTypes(questions)
	}

	if err := v.rules.Question().ValidateBatch(questions); err != nil {
		return nil, apperrors.NewSchemaValidationError("questions break field rules", err)
	}
	return questions, nil
}

// deriveMissingTypes fills an absent type from the presence of options.
func deriveMissingTypes(questions []models.Question) {
	for i := range questions {
		if questions[i].Type != nil {
			continue
		}
		if len(questions[i].Options) > 0 {
			questions[i].Type = models.TypePtr(models.MultipleChoice)
		} else {
			questions[i].Type = models.TypePtr(models.ShortAnswer)
		}
	}
}

// parseReply recovers the JSON document from a reply that may be wrapped in
// Markdown fences or prose, and unwraps {"questions": [...]}.
func parseReply(content string) ([]byte, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("empty reply")
	}

	candidates := []string{content}
	if stripped := stripCodeFences(content); stripped != "" && stripped != content {
		candidates = append(candidates, stripped)
	}
	if extracted := extractJSONCandidate(content); extracted != "" && extracted != content {
		candidates = append(candidates, extracted)
	}

	var lastErr error
	for _, candidate := range candidates {
		b := []byte(strings.TrimSpace(candidate))
		if !json.Valid(b) {
			lastErr = fmt.Errorf("no JSON document in reply")
			continue
		}
		return unwrapQuestions(b)
	}
	return nil, lastErr
}

func unwrapQuestions(doc []byte) ([]byte, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(doc), []byte("{")) {
		return doc, nil
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(doc, &wrapper); err != nil {
		return nil, err
	}
	inner, ok := wrapper["questions"]
	if ok && bytes.HasPrefix(bytes.TrimSpace(inner), []byte("[")) {
		return inner, nil
	}
	return doc, nil
}

func stripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return ""
	}

	// Drop the opening fence (and its language tag).
	lines = lines[1:]
	if len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// extractJSONCandidate returns the span from the first '[' or '{' to the
// matching last closer.
func extractJSONCandidate(content string) string {
	trimmed := strings.TrimSpace(content)
	objectStart := strings.Index(trimmed, "{")
	arrayStart := strings.Index(trimmed, "[")

	start, closeChar := -1, ""
	switch {
	case arrayStart >= 0 && (objectStart < 0 || arrayStart < objectStart):
		start, closeChar = arrayStart, "]"
	case objectStart >= 0:
		start, closeChar = objectStart, "}"
	default:
		return ""
	}

	end := strings.LastIndex(trimmed, closeChar)
	if end < start {
		return ""
	}
	return strings.TrimSpace(trimmed[start : end+1])
}

// schemaFieldErrors flattens a jsonschema failure into field errors keyed by
// instance path, e.g. "/2/options/0/label" becomes "[2].options[0].label".
func schemaFieldErrors(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}

	var out apperrors.ValidationErrors
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, apperrors.ValidationError{
				Field:   instancePath(e.InstanceLocation),
				Message: e.Message,
				Rule:    keyword(e.KeywordLocation),
			})
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return out
}

func instancePath(loc string) string {
	var b strings.Builder
	for _, seg := range strings.Split(strings.TrimPrefix(loc, "/"), "/") {
		if seg == "" {
			continue
		}
		if _, err := strconv.Atoi(seg); err == nil {
			b.WriteString("[" + seg + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(seg)
	}
	return b.String()
}

func keyword(loc string) string {
	if i := strings.LastIndex(loc, "/"); i >= 0 {
		return loc[i+1:]
	}
	return loc
}
