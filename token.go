package knowdoc

import "context"

// TokenCounter estimates how many model tokens a text occupies.
// Artifacts are meant to be fed to a language model, so their size in
// tokens is reported alongside their size in bytes.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
