package knowdoc

// ContentServer serves a DocTree over plain HTTP.
type ContentServer interface {
	// Start binds the listener and serves root in the background.
	// It returns only after the listener is bound, so the returned base URL
	// accepts connections immediately.
	Start(root DocTree) (baseURL string, err error)

	// Close stops serving. It is safe to call on a server that never started.
	Close() error
}
