package knowdoc

// Page is one converted documentation page.
type Page struct {
	URL     string
	Title   string
	Content string // Markdown
}
