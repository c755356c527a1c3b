package cargo

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/knowdoc"
)

// ManifestName is the file name of a Cargo manifest.
const ManifestName = "Cargo.toml"

// Ensure Resolver implements knowdoc.PackageResolver at compile time.
var _ knowdoc.PackageResolver = (*Resolver)(nil)

// Resolver lists the packages of a Cargo workspace with `cargo metadata`.
// The metadata covers the full dependency graph, not only workspace members.
type Resolver struct {
	config
}

// NewResolver creates a new Resolver.
func NewResolver(opts ...Option) *Resolver {
	return &Resolver{config: newConfig(opts)}
}

// ResolvePackages returns the normalized names of every package in the
// metadata of the workspace at root.
func (r *Resolver) ResolvePackages(ctx context.Context, root string) ([]knowdoc.PackageID, error) {
	manifest := filepath.Join(root, ManifestName)
	if _, err := os.Stat(manifest); err != nil {
		return nil, knowdoc.WrapError(knowdoc.ERESOLUTION, err, "cannot read manifest %s", manifest)
	}

	var stdout, stderr bytes.Buffer
	err := r.runner.Run(ctx, Command{
		Name:   r.binary,
		Args:   []string{"metadata", "--format-version", "1", "--manifest-path", manifest},
		Dir:    root,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if err != nil {
		return nil, knowdoc.WrapError(knowdoc.ERESOLUTION, err, "cargo metadata failed for %s: %s",
			manifest, strings.TrimSpace(stderr.String()))
	}

	names, err := ParseMetadata(stdout.Bytes())
	if err != nil {
		return nil, err
	}

	return knowdoc.NormalizePackageNames(names), nil
}

// metadata is the subset of `cargo metadata --format-version 1` output
// needed to enumerate packages.
type metadata struct {
	Packages []struct {
		Name string `json:"name"`
	} `json:"packages"`
}

// ParseMetadata extracts package names from cargo metadata JSON.
// Returns ERESOLUTION if the document is malformed.
func ParseMetadata(data []byte) ([]string, error) {
	var m metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, knowdoc.WrapError(knowdoc.ERESOLUTION, err, "cannot parse cargo metadata")
	}
	if m.Packages == nil {
		return nil, knowdoc.Errorf(knowdoc.ERESOLUTION, "cargo metadata has no packages field")
	}

	names := make([]string, 0, len(m.Packages))
	for _, p := range m.Packages {
		if p.Name == "" {
			return nil, knowdoc.Errorf(knowdoc.ERESOLUTION, "cargo metadata lists a package without a name")
		}
		names = append(names, p.Name)
	}
	return names, nil
}
