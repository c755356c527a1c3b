package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/knowdoc"
)

// Ensure LoggingResolver implements knowdoc.PackageResolver.
var _ knowdoc.PackageResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a PackageResolver with debug logging.
type LoggingResolver struct {
	next   knowdoc.PackageResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next knowdoc.PackageResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// ResolvePackages delegates to the wrapped resolver and logs the operation.
func (r *LoggingResolver) ResolvePackages(ctx context.Context, root string) (ids []knowdoc.PackageID, err error) {
	defer func(begin time.Time) {
		r.logger.Info("resolve packages",
			"root", root,
			"count", len(ids),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ResolvePackages(ctx, root)
}

// Ensure LoggingBuilder implements knowdoc.DocBuilder.
var _ knowdoc.DocBuilder = (*LoggingBuilder)(nil)

// LoggingBuilder wraps a DocBuilder with debug logging.
type LoggingBuilder struct {
	next   knowdoc.DocBuilder
	logger *slog.Logger
}

// NewLoggingBuilder creates a new LoggingBuilder.
func NewLoggingBuilder(next knowdoc.DocBuilder, logger *slog.Logger) *LoggingBuilder {
	return &LoggingBuilder{next: next, logger: logger}
}

// BuildDocs delegates to the wrapped builder and logs the operation.
func (b *LoggingBuilder) BuildDocs(ctx context.Context, root string) (tree knowdoc.DocTree, err error) {
	defer func(begin time.Time) {
		b.logger.Info("build docs",
			"root", root,
			"tree", string(tree),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return b.next.BuildDocs(ctx, root)
}
