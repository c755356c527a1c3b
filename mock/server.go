package mock

import "github.com/fwojciec/knowdoc"

var _ knowdoc.ContentServer = (*ContentServer)(nil)

// ContentServer is a mock implementation of knowdoc.ContentServer.
type ContentServer struct {
	StartFn func(root knowdoc.DocTree) (string, error)
	CloseFn func() error
}

func (s *ContentServer) Start(root knowdoc.DocTree) (string, error) {
	return s.StartFn(root)
}

func (s *ContentServer) Close() error {
	return s.CloseFn()
}
