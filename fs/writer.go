// Package fs writes knowledge artifacts to the local filesystem.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/knowdoc"
)

// DefaultOutputDir is the directory artifacts are written to by default.
const DefaultOutputDir = ".knowledgebase"

// Ensure Writer implements knowdoc.ArtifactWriter at compile time.
var _ knowdoc.ArtifactWriter = (*Writer)(nil)

// Writer writes one markdown file per package into a directory.
// Files are written to a temporary sibling and renamed into place, so a
// failed write never leaves a partial artifact behind.
type Writer struct {
	dir string
}

// NewWriter creates a new Writer that writes to dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}

// WriteArtifact writes the concatenated pages of a package to
// {dir}/{id}_knowledge.md, replacing any previous file.
func (w *Writer) WriteArtifact(ctx context.Context, id knowdoc.PackageID, pages []*knowdoc.Page) (*knowdoc.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, knowdoc.Errorf(knowdoc.EINVALID, "package id required")
	}

	content := knowdoc.FormatPages(pages)
	path := filepath.Join(w.dir, knowdoc.ArtifactFileName(id))

	if err := writeFileAtomic(path, []byte(content)); err != nil {
		return nil, knowdoc.WrapError(knowdoc.EIO, err, "failed to write %s", path)
	}

	return &knowdoc.Artifact{
		Package: id,
		Path:    path,
		Pages:   countPages(pages),
		Bytes:   len(content),
		Hash:    ComputeHash(content),
	}, nil
}

// ComputeHash returns the hex xxhash of content.
func ComputeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

func countPages(pages []*knowdoc.Page) int {
	var n int
	for _, p := range pages {
		if p != nil && p.Content != "" {
			n++
		}
	}
	return n
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
