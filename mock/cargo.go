package mock

import (
	"context"

	"github.com/fwojciec/knowdoc"
)

var _ knowdoc.PackageResolver = (*PackageResolver)(nil)

// PackageResolver is a mock implementation of knowdoc.PackageResolver.
type PackageResolver struct {
	ResolvePackagesFn func(ctx context.Context, root string) ([]knowdoc.PackageID, error)
}

func (r *PackageResolver) ResolvePackages(ctx context.Context, root string) ([]knowdoc.PackageID, error) {
	return r.ResolvePackagesFn(ctx, root)
}

var _ knowdoc.DocBuilder = (*DocBuilder)(nil)

// DocBuilder is a mock implementation of knowdoc.DocBuilder.
type DocBuilder struct {
	BuildDocsFn func(ctx context.Context, root string) (knowdoc.DocTree, error)
}

func (b *DocBuilder) BuildDocs(ctx context.Context, root string) (knowdoc.DocTree, error) {
	return b.BuildDocsFn(ctx, root)
}
