package extraction

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaDefinition is the machine-readable contract of a completion reply:
// a JSON array of question objects.
type SchemaDefinition struct {
	mode validator.Mode
}

func NewSchemaDefinition(mode validator.Mode) SchemaDefinition {
	if mode == "" {
		mode = validator.ModePermissive
	}
	return SchemaDefinition{mode: mode}
}

func (d SchemaDefinition) Mode() validator.Mode {
	return d.mode
}

// Document returns the JSON schema as a generic map.
func (d SchemaDefinition) Document() map[string]any {
	required := []any{"section", "questionText"}
	correctAnswer := map[string]any{
		"type":        []any{"string", "null"},
		"description": "Correct answer label or text",
	}
	if d.mode == validator.ModeStrict {
		required = append(required, "type", "correctAnswer")
		correctAnswer["type"] = "string"
	}

	option := map[string]any{
		"type":     "object",
		"required": []any{"label", "text"},
		"properties": map[string]any{
			"label":       map[string]any{"type": "string", "description": "Option label (e.g., A, B, C, D)"},
			"text":        map[string]any{"type": "string", "description": "Text content of the option"},
			"explanation": map[string]any{"type": []any{"string", "null"}, "description": "Explanation for the option"},
		},
	}

	question := map[string]any{
		"type":     "object",
		"required": required,
		"properties": map[string]any{
			"section":       enumProperty(false, "Question section name or category", models.AllSections()),
			"domain":        enumProperty(true, "The domain or topic of the question", models.AllDomains()),
			"skill":         enumProperty(true, "The skill tested by the question", models.AllSkills()),
			"difficulty":    enumProperty(true, "The difficulty level of the question", models.AllDifficulties()),
			"type":          enumProperty(true, "The type of question", models.AllQuestionTypes()),
			"passage":       map[string]any{"type": []any{"string", "null"}, "description": "Associated passage or text for the question"},
			"imagePage":     map[string]any{"type": []any{"string", "null"}, "description": "Page number of the image on the pdf if question contains an image"},
			"questionText":  map[string]any{"type": "string", "minLength": 1, "description": "Main question text"},
			"options":       map[string]any{"type": []any{"array", "null"}, "items": option, "description": "List of answer options"},
			"correctAnswer": correctAnswer,
		},
	}

	return map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "array",
		"items":   question,
	}
}

func enumProperty[T ~string](nullable bool, description string, values []T) map[string]any {
	enum := make([]any, 0, len(values)+1)
	for _, v := range values {
		enum = append(enum, string(v))
	}
	prop := map[string]any{"type": "string", "enum": enum, "description": description}
	if nullable {
		prop["type"] = []any{"string", "null"}
		prop["enum"] = append(enum, nil)
	}
	return prop
}

// FormatInstructions renders the schema for inclusion in a prompt.
func (d SchemaDefinition) FormatInstructions() string {
	b, err := json.MarshalIndent(d.Document(), "", "  ")
	if err != nil {
		// The document is built from string literals only.
		panic(fmt.Sprintf("marshal question schema: %v", err))
	}
	return "The output must be a JSON array of question objects that conforms to the JSON schema below. " +
		"Return only the JSON array, without commentary.\n```json\n" + string(b) + "\n```"
}

// Compile builds a reusable validator for the schema.
func (d SchemaDefinition) Compile() (*jsonschema.Schema, error) {
	b, err := json.Marshal(d.Document())
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
