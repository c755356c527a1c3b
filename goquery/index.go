package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/knowdoc"
)

// Ensure IndexParser implements knowdoc.IndexParser at compile time.
var _ knowdoc.IndexParser = (*IndexParser)(nil)

// IndexParser reads the links of a package's all-items page.
type IndexParser struct{}

// NewIndexParser creates a new IndexParser.
func NewIndexParser() *IndexParser {
	return &IndexParser{}
}

// ParseIndex returns the path, relative to the package directory, of every
// anchor on the index page of package id that resolves inside that
// directory. Links are kept in document order with duplicates preserved.
func (p *IndexParser) ParseIndex(id knowdoc.PackageID, html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, knowdoc.Errorf(knowdoc.EINVALID, "failed to parse HTML: %v", err)
	}

	dir := "/" + string(id) + "/"
	base := &url.URL{Path: dir}

	links := []string{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if page, ok := packagePage(base, dir, strings.TrimSpace(href)); ok {
			links = append(links, page)
		}
	})
	return links, nil
}

// packagePage resolves href against the package directory base and returns
// the resolved path relative to dir. Links to other hosts, to pages outside
// dir, and to dir itself are rejected.
func packagePage(base *url.URL, dir, href string) (string, bool) {
	if href == "" || strings.HasPrefix(href, "#") || isNonHTTPLink(href) {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil || ref.Scheme != "" || ref.Host != "" {
		return "", false
	}

	resolved := base.ResolveReference(ref)
	page, ok := strings.CutPrefix(resolved.EscapedPath(), dir)
	if !ok || page == "" {
		return "", false
	}
	if resolved.RawQuery != "" {
		page += "?" + resolved.RawQuery
	}
	return page, true
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
