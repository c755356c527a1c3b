// Package bluemonday strips scripting, styling and rustdoc page chrome from
// extracted doc HTML before conversion.
package bluemonday

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/knowdoc"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements knowdoc.Sanitizer at compile time.
var _ knowdoc.Sanitizer = (*Sanitizer)(nil)

// ChromeSelector matches rustdoc controls that carry no documentation:
// source links, version badges, section anchors and tooltips.
const ChromeSelector = ".out-of-band, .sub-heading, a.src, a.anchor, .tooltip, .since"

// skippedElements are dropped together with their content. Anything else the
// policy does not allow is unwrapped and its text kept.
var skippedElements = []string{"button", "rustdoc-toolbar", "noscript", "script", "style"}

// Sanitizer removes rustdoc chrome, then applies a user-generated-content
// policy that keeps class attributes on code blocks.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").OnElements("code", "pre")
	p.SkipElementsContent(skippedElements...)
	return &Sanitizer{policy: p}
}

// Sanitize returns html with chrome, disallowed elements and disallowed
// attributes removed. Rust code blocks are tagged language-rust so the
// converter emits a fenced block with an info string.
// A bluemonday.Policy is safe for concurrent use once built.
func (s *Sanitizer) Sanitize(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	return s.policy.Sanitize(stripChrome(html))
}

// stripChrome removes ChromeSelector matches and marks rust code blocks.
// Input that cannot be parsed is returned unchanged.
func stripChrome(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}

	doc.Find(ChromeSelector).Remove()
	doc.Find("pre.rust").Each(func(_ int, sel *goquery.Selection) {
		if !sel.HasClass("language-rust") {
			sel.AddClass("language-rust")
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return html
	}
	return out
}
