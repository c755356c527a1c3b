package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/knowdoc"
)

// Ensure LoggingArtifactWriter implements knowdoc.ArtifactWriter.
var _ knowdoc.ArtifactWriter = (*LoggingArtifactWriter)(nil)

// LoggingArtifactWriter wraps an ArtifactWriter with debug logging.
type LoggingArtifactWriter struct {
	next   knowdoc.ArtifactWriter
	logger *slog.Logger
}

// NewLoggingArtifactWriter creates a new LoggingArtifactWriter.
func NewLoggingArtifactWriter(next knowdoc.ArtifactWriter, logger *slog.Logger) *LoggingArtifactWriter {
	return &LoggingArtifactWriter{next: next, logger: logger}
}

// WriteArtifact delegates to the wrapped writer and logs the operation.
func (w *LoggingArtifactWriter) WriteArtifact(ctx context.Context, id knowdoc.PackageID, pages []*knowdoc.Page) (a *knowdoc.Artifact, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"package", string(id),
			"pages", len(pages),
		}
		if a != nil {
			attrs = append(attrs, "path", a.Path, "bytes", a.Bytes)
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		w.logger.Info("write artifact", attrs...)
	}(time.Now())
	return w.next.WriteArtifact(ctx, id, pages)
}

// WriteManifest delegates to the wrapped writer and logs the operation.
func (w *LoggingArtifactWriter) WriteManifest(ctx context.Context, summary *knowdoc.RunSummary) (err error) {
	defer func(begin time.Time) {
		var count int
		if summary != nil {
			count = len(summary.Artifacts)
		}
		w.logger.Info("write manifest",
			"artifacts", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteManifest(ctx, summary)
}
