package mock

import "github.com/fwojciec/knowdoc"

var _ knowdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of knowdoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*knowdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*knowdoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ knowdoc.IndexParser = (*IndexParser)(nil)

// IndexParser is a mock implementation of knowdoc.IndexParser.
type IndexParser struct {
	ParseIndexFn func(id knowdoc.PackageID, html string) ([]string, error)
}

func (p *IndexParser) ParseIndex(id knowdoc.PackageID, html string) ([]string, error) {
	return p.ParseIndexFn(id, html)
}
