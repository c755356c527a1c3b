package mock

import (
	"context"

	"github.com/fwojciec/knowdoc"
)

var _ knowdoc.ArtifactWriter = (*ArtifactWriter)(nil)

// ArtifactWriter is a mock implementation of knowdoc.ArtifactWriter.
type ArtifactWriter struct {
	WriteArtifactFn func(ctx context.Context, id knowdoc.PackageID, pages []*knowdoc.Page) (*knowdoc.Artifact, error)
	WriteManifestFn func(ctx context.Context, summary *knowdoc.RunSummary) error
}

func (w *ArtifactWriter) WriteArtifact(ctx context.Context, id knowdoc.PackageID, pages []*knowdoc.Page) (*knowdoc.Artifact, error) {
	return w.WriteArtifactFn(ctx, id, pages)
}

func (w *ArtifactWriter) WriteManifest(ctx context.Context, summary *knowdoc.RunSummary) error {
	return w.WriteManifestFn(ctx, summary)
}
