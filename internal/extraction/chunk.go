package extraction

import (
	"strings"

	"github.com/SAP-F-2025/question-parser-service/internal/models"
)

// Window is a run of consecutive pages sent in one completion call.
type Window struct {
	First int // 0-based index of the first page
	Pages []string
}

// Document renders the window with its original page numbers.
func (w Window) Document() string {
	return aggregateFrom(w.Pages, w.First+1)
}

// SplitPages groups whole pages into windows whose rendered text stays under
// maxChars. Consecutive windows share one page so a question that crosses a
// page break is seen whole at least once. A single page larger than maxChars
// becomes a window on its own. maxChars <= 0 yields one window.
func SplitPages(pages []string, maxChars int) []Window {
	if len(pages) == 0 {
		return nil
	}
	if maxChars <= 0 || len(AggregatePages(pages)) <= maxChars {
		return []Window{{First: 0, Pages: pages}}
	}

	var windows []Window
	start := 0
	for start < len(pages) {
		end := start + 1
		for end < len(pages) && len(aggregateFrom(pages[start:end+1], start+1)) <= maxChars {
			end++
		}
		windows = append(windows, Window{First: start, Pages: pages[start:end]})
		if end == len(pages) {
			break
		}
		if end-start > 1 {
			start = end - 1
		} else {
			start = end
		}
	}
	return windows
}

// MergeQuestions appends batches in order. A question is dropped only when
// the batch right before it already holds the same question, which is what
// the one-page overlap between windows produces. Repeats inside a batch, or
// between batches further apart, are distinct items that share a stem.
func MergeQuestions(batches ...[]models.Question) []models.Question {
	merged := []models.Question{}
	var previous map[string]bool
	for _, batch := range batches {
		current := make(map[string]bool, len(batch))
		for _, q := range batch {
			key := questionKey(q)
			current[key] = true
			if previous[key] {
				continue
			}
			merged = append(merged, q)
		}
		previous = current
	}
	return merged
}

// questionKey identifies a question by section, stem, passage and option texts.
func questionKey(q models.Question) string {
	parts := []string{string(q.Section), normalizeText(q.QuestionText)}
	if q.Passage != nil {
		parts = append(parts, normalizeText(*q.Passage))
	} else {
		parts = append(parts, "")
	}
	for _, o := range q.Options {
		parts = append(parts, normalizeText(o.Text))
	}
	return strings.Join(parts, "|")
}

func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
