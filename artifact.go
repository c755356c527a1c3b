package knowdoc

import "context"

// ArtifactSuffix is appended to a PackageID to name its artifact file.
const ArtifactSuffix = "_knowledge.md"

// ArtifactFileName returns the file name of the artifact for a package.
func ArtifactFileName(id PackageID) string {
	return string(id) + ArtifactSuffix
}

// Artifact describes one written knowledge file.
type Artifact struct {
	Package PackageID `json:"package" yaml:"package"`
	Path    string    `json:"path" yaml:"path"`
	Pages   int       `json:"pages" yaml:"pages"`
	Bytes   int       `json:"bytes" yaml:"bytes"`
	Hash    string    `json:"hash" yaml:"hash"`
	Tokens  int       `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// Validate returns an error if the artifact contains invalid fields.
func (a *Artifact) Validate() error {
	if a.Package == "" {
		return Errorf(EINVALID, "artifact package required")
	}
	if a.Path == "" {
		return Errorf(EINVALID, "artifact path required")
	}
	return nil
}

// ArtifactWriter persists per-package knowledge files.
type ArtifactWriter interface {
	// WriteArtifact writes the pages of one package to a single file named
	// from the package ID, replacing any previous content. A package with no
	// pages still produces an (empty) file.
	// Returns EIO if the file cannot be written.
	WriteArtifact(ctx context.Context, id PackageID, pages []*Page) (*Artifact, error)

	// WriteManifest records the artifacts of a run next to them.
	WriteManifest(ctx context.Context, summary *RunSummary) error
}
