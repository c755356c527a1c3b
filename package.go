package knowdoc

import (
	"context"
	"sort"
	"strings"
)

// PackageID is a package name normalized to the directory naming used by the
// documentation generator. It keys both the DocTree subdirectory filter and
// the artifact file name.
type PackageID string

// NormalizePackageName converts a manifest package name to a PackageID.
// The generator writes "beta-core" as the directory "beta_core"; no other
// transformation (including case folding) is applied.
func NormalizePackageName(name string) PackageID {
	return PackageID(strings.ReplaceAll(name, "-", "_"))
}

// NormalizePackageNames normalizes names and returns the distinct IDs in
// sorted order.
func NormalizePackageNames(names []string) []PackageID {
	seen := make(map[PackageID]struct{}, len(names))
	ids := make([]PackageID, 0, len(names))
	for _, name := range names {
		id := NormalizePackageName(name)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PackageResolver enumerates the packages declared by a source tree.
type PackageResolver interface {
	// ResolvePackages returns the normalized IDs of every package in the
	// manifest graph rooted at root, including dependencies.
	// Returns ERESOLUTION if the manifest cannot be read or parsed.
	ResolvePackages(ctx context.Context, root string) ([]PackageID, error)
}
