package extraction

import (
	"fmt"
	"strings"
)

// PageSeparator joins consecutive pages in an aggregated document.
const PageSeparator = "\n\n--- Page Break ---\n\n"

// AggregatePages concatenates page texts in order, each prefixed by its
// 1-based page number.
func AggregatePages(pages []string) string {
	return aggregateFrom(pages, 1)
}

// aggregateFrom numbers pages starting at first, so that a window of a larger
// document keeps its original page numbers.
func aggregateFrom(pages []string, first int) string {
	var b strings.Builder
	for i, text := range pages {
		if i > 0 {
			b.WriteString(PageSeparator)
		}
		fmt.Fprintf(&b, "Page %d:\n%s", first+i, text)
	}
	return b.String()
}
