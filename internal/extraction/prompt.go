package extraction

import "strings"

var directives = []string{
	"You are a question parser and classifier. Your task is to extract SAT-style questions " +
		"from the given text and fill in missing fields by reasoning from the question and passage.",
	"Important: The text may contain content from multiple pages. Questions and passages may span " +
		"across page boundaries. Make sure to extract complete questions even if they are split across pages.",
	"Instructions:\n" + strings.Join([]string{
		"- Extract all questions in the text, including those that span multiple pages.",
		"- If the PDF does not specify a field (like domain, skill, difficulty, etc.), infer it logically.",
		"- For 'difficulty', use easy, medium, or hard depending on the question complexity.",
		"- If the question does NOT include a passage (common in math), set 'passage' to null.",
		"- If the question is short-answer (no options), set `type` to 'short_answer' and `options` to null.",
		"- If the question is multiple-choice, set `type` to 'multiple_choice' and extract all answer choices (A, B, C, D, etc.).",
		"- If no correct answer is given, predict the most likely correct one based on reasoning.",
		"- If explanations are missing, generate short explanations for each option.",
		"- If the passage refers to an image, include `imagePage` as the page number, else set to null.",
	}, "\n"),
}

// Instruction is the fixed extraction prompt with a slot for the document text.
type Instruction struct {
	prefix string
}

// NewInstruction renders the directives and the schema's format instructions.
// It has no side effects; equal definitions give equal instructions.
func NewInstruction(def SchemaDefinition) Instruction {
	parts := append(append([]string{}, directives...), def.FormatInstructions(), "Text:\n")
	return Instruction{prefix: strings.Join(parts, "\n\n")}
}

// Render fills the document text into the instruction.
func (i Instruction) Render(document string) string {
	return i.prefix + document
}
