package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/SAP-F-2025/question-parser-service/internal/errors"
	"github.com/SAP-F-2025/question-parser-service/internal/llm"
	"github.com/SAP-F-2025/question-parser-service/internal/models"
	"github.com/SAP-F-2025/question-parser-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPagesDisabledOrFits(t *testing.T) {
	pages := []string{"a", "b", "c"}

	w := SplitPages(pages, 0)
	require.Len(t, w, 1)
	assert.Equal(t, AggregatePages(pages), w[0].Document())

	w = SplitPages(pages, 10_000)
	require.Len(t, w, 1)

	assert.Nil(t, SplitPages(nil, 100))
}

func TestSplitPagesOverlapsByOnePage(t *testing.T) {
	pages := []string{
		strings.Repeat("a", 40),
		strings.Repeat("b", 40),
		strings.Repeat("c", 40),
		strings.Repeat("d", 40),
	}
	// Two pages render to 2*(8+40) plus a 22-char separator: 118 chars.
	windows := SplitPages(pages, 130)

	require.Len(t, windows, 3)
	assert.Equal(t, 0, windows[0].First)
	assert.Len(t, windows[0].Pages, 2)
	assert.Equal(t, 1, windows[1].First)
	assert.Len(t, windows[1].Pages, 2)
	assert.Equal(t, 2, windows[2].First)
	assert.Len(t, windows[2].Pages, 2)

	assert.True(t, strings.HasPrefix(windows[1].Document(), "Page 2:\n"))
	assert.Contains(t, windows[2].Document(), "Page 4:\n")
}

func TestSplitPagesOversizedPage(t *testing.T) {
	pages := []string{strings.Repeat("x", 500), "small", "tiny"}
	windows := SplitPages(pages, 100)

	require.GreaterOrEqual(t, len(windows), 2)
	assert.Len(t, windows[0].Pages, 1)
	last := windows[len(windows)-1]
	assert.Equal(t, len(pages), last.First+len(last.Pages))
}

func TestMergeQuestionsDropsRepeats(t *testing.T) {
	a := []models.Question{
		{Section: models.SectionMath, QuestionText: "What is x?"},
		{Section: models.SectionMath, QuestionText: "Split across  pages"},
	}
	b := []models.Question{
		{Section: models.SectionMath, QuestionText: "split across pages"},
		{Section: models.SectionReadingAndWriting, QuestionText: "What is x?"},
		{Section: models.SectionMath, QuestionText: "Last"},
	}

	merged := MergeQuestions(a, b)
	require.Len(t, merged, 4)
	assert.Equal(t, "What is x?", merged[0].QuestionText)
	assert.Equal(t, "Split across  pages", merged[1].QuestionText)
	assert.Equal(t, models.SectionReadingAndWriting, merged[2].Section)
	assert.Equal(t, "Last", merged[3].QuestionText)
}

func TestMergeQuestionsKeepsSharedStems(t *testing.T) {
	stem := "Which choice completes the text with the most logical and precise word or phrase?"
	bees, rivers := "Bees communicate through dance.", "Rivers shape the land."

	t.Run("within one window", func(t *testing.T) {
		batch := []models.Question{
			{Section: models.SectionReadingAndWriting, Passage: &bees, QuestionText: stem},
			{Section: models.SectionReadingAndWriting, Passage: &rivers, QuestionText: stem},
		}
		assert.Len(t, MergeQuestions(batch), 2)
	})

	t.Run("across windows with different passages", func(t *testing.T) {
		a := []models.Question{{Section: models.SectionReadingAndWriting, Passage: &bees, QuestionText: stem}}
		b := []models.Question{{Section: models.SectionReadingAndWriting, Passage: &rivers, QuestionText: stem}}
		assert.Len(t, MergeQuestions(a, b), 2)
	})

	t.Run("same item in non-adjacent windows", func(t *testing.T) {
		q := models.Question{Section: models.SectionReadingAndWriting, Passage: &bees, QuestionText: stem}
		other := models.Question{Section: models.SectionMath, QuestionText: "What is 2 + 2?"}
		assert.Len(t, MergeQuestions([]models.Question{q}, []models.Question{other}, []models.Question{q}), 3)
	})

	t.Run("same stem with different options", func(t *testing.T) {
		a := []models.Question{{Section: models.SectionMath, QuestionText: "Solve for x.",
			Options: []models.Option{{Label: "A", Text: "1"}, {Label: "B", Text: "2"}}}}
		b := []models.Question{{Section: models.SectionMath, QuestionText: "Solve for x.",
			Options: []models.Option{{Label: "A", Text: "5"}, {Label: "B", Text: "7"}}}}
		assert.Len(t, MergeQuestions(a, b), 2)
	})
}

func newTestExtractor(t *testing.T, client llm.CompletionClient, maxChars int) *Extractor {
	t.Helper()
	def := NewSchemaDefinition(validator.ModePermissive)
	rv, err := NewResponseValidator(def, validator.New(validator.ModePermissive))
	require.NoError(t, err)
	return NewExtractor(NewInvoker(client, NewInstruction(def), time.Second, nil), rv, maxChars, nil)
}

func TestExtractSingleCall(t *testing.T) {
	client := llm.NewMockClient(fourOptionReply)
	ex := newTestExtractor(t, client, 0)

	res, err := ex.Extract(context.Background(), []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Chunks)
	assert.Len(t, res.Questions, 1)
	assert.Equal(t, 1, client.Calls())
}

func TestExtractChunked(t *testing.T) {
	client := llm.NewMockClient(
		`[{"section":"math","questionText":"Q1"},{"section":"math","questionText":"Q2 spans"}]`,
		`[{"section":"math","questionText":"q2 spans"},{"section":"math","questionText":"Q3"}]`,
	)
	ex := newTestExtractor(t, client, 130)
	pages := []string{strings.Repeat("a", 40), strings.Repeat("b", 40), strings.Repeat("c", 40)}

	res, err := ex.Extract(context.Background(), pages)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Chunks)
	assert.Equal(t, 2, client.Calls())

	var texts []string
	for _, q := range res.Questions {
		texts = append(texts, q.QuestionText)
	}
	assert.Equal(t, []string{"Q1", "Q2 spans", "Q3"}, texts)
}

func TestExtractPropagatesValidationFailure(t *testing.T) {
	client := llm.NewMockClient(`not json at all`)
	ex := newTestExtractor(t, client, 0)

	res, err := ex.Extract(context.Background(), []string{"p1"})
	assert.Nil(t, res)
	var sve *apperrors.SchemaValidationError
	assert.True(t, errors.As(err, &sve))
}
