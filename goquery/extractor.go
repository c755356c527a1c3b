// Package goquery parses generated documentation pages using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/knowdoc"
)

// MainContentSelector matches the content region of a generated doc page.
const MainContentSelector = "#main-content"

// Ensure Extractor implements knowdoc.Extractor at compile time.
var _ knowdoc.Extractor = (*Extractor)(nil)

// Extractor isolates the main content region of a generated doc page.
type Extractor struct {
	selector string
}

// NewExtractor creates an Extractor matching MainContentSelector.
func NewExtractor() *Extractor {
	return &Extractor{selector: MainContentSelector}
}

// Extract returns the page title and the inner HTML of the first element
// matching the content selector. Pages without a match yield an empty
// ContentHTML.
func (e *Extractor) Extract(html string) (*knowdoc.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, knowdoc.Errorf(knowdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	result := &knowdoc.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	main := doc.Find(e.selector).First()
	if main.Length() == 0 {
		return result, nil
	}

	content, err := main.Html()
	if err != nil {
		return nil, knowdoc.Errorf(knowdoc.EINVALID, "failed to render content: %v", err)
	}
	result.ContentHTML = content

	return result, nil
}
