package knowdoc

import "strings"

// FormatPages concatenates converted pages into one artifact body.
// Each page's markdown is followed by a blank line; pages with no content
// contribute nothing. Pages keep the order they are given in.
func FormatPages(pages []*Page) string {
	var b strings.Builder
	for _, page := range pages {
		if page == nil || page.Content == "" {
			continue
		}
		b.WriteString(page.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}
