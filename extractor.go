package knowdoc

// ExtractResult holds the extracted content from an HTML page.
type ExtractResult struct {
	// Title is the page title from the document head.
	Title string

	// ContentHTML is the inner HTML of the main content region.
	// Empty when the page has no such region.
	ContentHTML string
}

// Extractor isolates the main content region of a generated doc page.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	// A page without a main content region yields an empty ContentHTML and
	// no error.
	Extract(html string) (*ExtractResult, error)
}

// IndexParser reads a package's page index.
type IndexParser interface {
	// ParseIndex returns the page paths linked from the index page of
	// package id, relative to the package directory, in document order.
	// Links that resolve outside the package directory are dropped.
	// Duplicates are preserved.
	ParseIndex(id PackageID, html string) ([]string, error)
}
