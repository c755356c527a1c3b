package fs

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/knowdoc"
	"gopkg.in/yaml.v3"
)

// ManifestName is the file listing the artifacts of the latest run.
const ManifestName = "manifest.yaml"

// Manifest is the on-disk form of a run's artifact list.
type Manifest struct {
	Artifacts []ManifestEntry `yaml:"artifacts"`
}

// ManifestEntry describes one artifact. File is relative to the manifest.
type ManifestEntry struct {
	Package string `yaml:"package"`
	File    string `yaml:"file"`
	Pages   int    `yaml:"pages"`
	Bytes   int    `yaml:"bytes"`
	Hash    string `yaml:"hash"`
	Tokens  int    `yaml:"tokens,omitempty"`
}

// WriteManifest writes {dir}/manifest.yaml for summary, replacing any
// previous manifest.
func (w *Writer) WriteManifest(ctx context.Context, summary *knowdoc.RunSummary) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := Manifest{Artifacts: []ManifestEntry{}}
	if summary != nil {
		for _, a := range summary.Artifacts {
			m.Artifacts = append(m.Artifacts, ManifestEntry{
				Package: string(a.Package),
				File:    filepath.Base(a.Path),
				Pages:   a.Pages,
				Bytes:   a.Bytes,
				Hash:    a.Hash,
				Tokens:  a.Tokens,
			})
		}
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return knowdoc.WrapError(knowdoc.EINTERNAL, err, "failed to encode manifest")
	}

	path := filepath.Join(w.dir, ManifestName)
	if err := writeFileAtomic(path, data); err != nil {
		return knowdoc.WrapError(knowdoc.EIO, err, "failed to write %s", path)
	}
	return nil
}

// ReadManifest reads the manifest in dir.
// Returns ENOTFOUND if no manifest has been written.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, knowdoc.Errorf(knowdoc.ENOTFOUND, "no manifest in %s", dir)
	} else if err != nil {
		return nil, knowdoc.WrapError(knowdoc.EIO, err, "failed to read %s", path)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, knowdoc.WrapError(knowdoc.EINVALID, err, "malformed manifest %s", path)
	}
	return &m, nil
}
