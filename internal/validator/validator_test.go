package validator

import (
	"testing"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMultipleChoice() models.Question {
	return models.Question{
		Section:      models.SectionMath,
		Domain:       domainPtr(models.DomainAlgebra),
		Type:         models.TypePtr(models.MultipleChoice),
		QuestionText: "If 3x + 5 = 20, what is x?",
		Options: []models.Option{
			{Label: "A", Text: "3"},
			{Label: "B", Text: "5"},
			{Label: "C", Text: "15"},
			{Label: "D", Text: "25"},
		},
		CorrectAnswer: models.StringPtr("B"),
	}
}

func domainPtr(d models.Domain) *models.Domain { return &d }

func rules(t *testing.T, err error) []string {
	t.Helper()
	var out []string
	for _, e := range ToValidationErrors(err) {
		out = append(out, e.Field+":"+e.Rule)
	}
	return out
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModePermissive, m)

	m, err = ParseMode(" STRICT ")
	require.NoError(t, err)
	assert.Equal(t, ModeStrict, m)

	_, err = ParseMode("lenient")
	assert.Error(t, err)
}

func TestValidateQuestion_Valid(t *testing.T) {
	v := New(ModePermissive)
	q := validMultipleChoice()
	assert.NoError(t, v.Question().ValidateQuestion(&q))
}

func TestValidateQuestion_MinimalPermissive(t *testing.T) {
	v := New(ModePermissive)
	q := models.Question{Section: models.SectionReadingAndWriting, QuestionText: "Which choice best states the main idea?"}
	assert.NoError(t, v.Question().ValidateQuestion(&q))
}

func TestValidateQuestion_ShortAnswerWithOptions(t *testing.T) {
	v := New(ModePermissive)
	q := validMultipleChoice()
	q.Type = models.TypePtr(models.ShortAnswer)

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	assert.Contains(t, rules(t, err), "options:options_forbidden")
}

func TestValidateQuestion_ShortAnswerEmptyOptionsList(t *testing.T) {
	v := New(ModePermissive)
	q := models.Question{
		Section:      models.SectionMath,
		Type:         models.TypePtr(models.ShortAnswer),
		QuestionText: "What is the value of 2^5?",
		Options:      []models.Option{},
	}

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	assert.Contains(t, rules(t, err), "options:options_forbidden")
}

func TestValidateQuestion_MultipleChoiceWithoutOptions(t *testing.T) {
	v := New(ModePermissive)
	q := validMultipleChoice()
	q.Options = nil

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	assert.Contains(t, rules(t, err), "options:options_required")
}

func TestValidateQuestion_DuplicateLabels(t *testing.T) {
	v := New(ModePermissive)
	q := validMultipleChoice()
	q.Options[2].Label = "A"

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	assert.Contains(t, rules(t, err), "options[2].label:unique_label")
}

func TestValidateQuestion_OptionMissingText(t *testing.T) {
	v := New(ModePermissive)
	q := validMultipleChoice()
	q.Options[1].Text = ""

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	assert.Contains(t, rules(t, err), "options[1].text:required")
}

func TestValidateQuestion_BlankText(t *testing.T) {
	v := New(ModePermissive)
	q := validMultipleChoice()
	q.QuestionText = "   "

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	assert.Contains(t, rules(t, err), "questionText:notblank")
}

func TestValidateQuestion_UnknownEnumValues(t *testing.T) {
	v := New(ModePermissive)
	q := validMultipleChoice()
	q.Section = "science"
	bad := models.Difficulty("EASY")
	q.Difficulty = &bad

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	got := rules(t, err)
	assert.Contains(t, got, "section:section")
	assert.Contains(t, got, "difficulty:difficulty")
}

func TestValidateQuestion_StrictMode(t *testing.T) {
	v := New(ModeStrict)
	q := models.Question{Section: models.SectionMath, QuestionText: "Solve for y."}

	err := v.Question().ValidateQuestion(&q)
	require.Error(t, err)
	got := rules(t, err)
	assert.Contains(t, got, "type:required")
	assert.Contains(t, got, "correctAnswer:required")

	full := validMultipleChoice()
	assert.NoError(t, v.Question().ValidateQuestion(&full))
}

func TestValidateBatch_PrefixesIndex(t *testing.T) {
	v := New(ModePermissive)
	good := validMultipleChoice()
	bad := validMultipleChoice()
	bad.Type = models.TypePtr(models.ShortAnswer)

	err := v.Question().ValidateBatch([]models.Question{good, bad})
	require.Error(t, err)
	assert.Equal(t, []string{"[1].options:options_forbidden"}, rules(t, err))

	assert.NoError(t, v.Question().ValidateBatch(nil))
}

func TestValidate_ExportRequest(t *testing.T) {
	v := New(ModePermissive)

	err := v.Validate(models.ExportRequest{Key: "parsed:a.pdf", Format: "pdf"})
	require.Error(t, err)
	assert.Contains(t, rules(t, err), "format:oneof")

	assert.NoError(t, v.Validate(models.ExportRequest{Key: "parsed:a.pdf", Format: "csv"}))
}
