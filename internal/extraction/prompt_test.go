package extraction

import (
	"strings"
	"testing"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestNewInstructionIsDeterministic(t *testing.T) {
	def := NewSchemaDefinition(validator.ModePermissive)
	assert.Equal(t, NewInstruction(def), NewInstruction(def))
	assert.Equal(t, NewInstruction(def).Render("doc"), NewInstruction(def).Render("doc"))
}

func TestInstructionRender(t *testing.T) {
	def := NewSchemaDefinition(validator.ModePermissive)
	doc := AggregatePages([]string{"1. What is 2+2?", "A) 3 B) 4"})

	prompt := NewInstruction(def).Render(doc)

	assert.True(t, strings.HasSuffix(prompt, "Text:\n"+doc))
	assert.Contains(t, prompt, "including those that span multiple pages")
	assert.Contains(t, prompt, "set 'passage' to null")
	assert.Contains(t, prompt, "set `type` to 'short_answer' and `options` to null")
	assert.Contains(t, prompt, "predict the most likely correct one")
	assert.Contains(t, prompt, "generate short explanations")
	assert.Contains(t, prompt, "`imagePage`")
	assert.Contains(t, prompt, def.FormatInstructions())
}

func TestFormatInstructionsListsClosedSets(t *testing.T) {
	fi := NewSchemaDefinition(validator.ModePermissive).FormatInstructions()

	for _, s := range models.AllSkills() {
		assert.Contains(t, fi, `"`+string(s)+`"`)
	}
	for _, d := range models.AllDomains() {
		assert.Contains(t, fi, `"`+string(d)+`"`)
	}
	assert.Contains(t, fi, `"reading_and_writing"`)
	assert.Contains(t, fi, `"short_answer"`)
}

func TestSchemaRequiredFieldsByMode(t *testing.T) {
	permissive := NewSchemaDefinition(validator.ModePermissive).Document()
	strict := NewSchemaDefinition(validator.ModeStrict).Document()

	required := func(doc map[string]any) []any {
		return doc["items"].(map[string]any)["required"].([]any)
	}
	assert.Equal(t, []any{"section", "questionText"}, required(permissive))
	assert.Equal(t, []any{"section", "questionText", "type", "correctAnswer"}, required(strict))
}
