package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/knowdoc"
	"github.com/fwojciec/knowdoc/cargo"
	main "github.com/fwojciec/knowdoc/cmd/knowdoc"
	"github.com/fwojciec/knowdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testContext returns a background context for tests.
func testContext() context.Context {
	return context.Background()
}

// fakeCargo answers `cargo metadata` with packages and makes `cargo doc`
// write files below <dir>/target/doc.
func fakeCargo(t *testing.T, packages []string, files map[string]string) cargo.Runner {
	t.Helper()
	return cargo.RunnerFunc(func(_ context.Context, cmd cargo.Command) error {
		switch cmd.Args[0] {
		case "metadata":
			type pkg struct {
				Name string `json:"name"`
			}
			doc := struct {
				Packages []pkg `json:"packages"`
			}{}
			for _, name := range packages {
				doc.Packages = append(doc.Packages, pkg{Name: name})
			}
			return json.NewEncoder(cmd.Stdout).Encode(doc)
		case "doc":
			for name, content := range files {
				path := filepath.Join(cmd.Dir, "target", "doc", filepath.FromSlash(name))
				if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
					return err
				}
				if err := os.WriteFile(path, []byte(content), 0644); err != nil {
					return err
				}
			}
			return nil
		}
		t.Fatalf("unexpected cargo command: %v", cmd.Args)
		return nil
	})
}

// newWorkspace creates a directory containing an empty Cargo manifest.
func newWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Cargo.toml"), []byte("[workspace]\n"), 0644))
	return dir
}

const structPage = `<html><head><title>Widget in alpha_core</title></head><body>
<nav class="sidebar">sidebar</nav>
<section id="main-content"><h1>Struct Widget</h1><p>Makes widgets.</p></section>
</body></html>`

const allPage = `<html><body><section id="main-content">
<ul class="all-items"><li><a href="struct.Widget.html">Widget</a></li></ul>
</section></body></html>`

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help lists commands", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "fetch")
		assert.Contains(t, stdout.String(), "sources")
		assert.Contains(t, stdout.String(), "history")
	})

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout := &bytes.Buffer{}
		err := m.Run(testContext(), nil, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "fetch")
	})

	t.Run("fetch writes knowledge files for a workspace", func(t *testing.T) {
		t.Parallel()

		repo := newWorkspace(t)
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		m.Runner = fakeCargo(t, []string{"alpha-core"}, map[string]string{
			"alpha_core/all.html":           allPage,
			"alpha_core/struct.Widget.html": structPage,
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{
			"fetch", "--repo-path", repo, "--addr", "127.0.0.1:0", "--no-history",
		}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		outDir := filepath.Join(repo, fs.DefaultOutputDir)
		path := filepath.Join(outDir, "alpha_core"+knowdoc.ArtifactSuffix)
		assert.Contains(t, stdout.String(), "Created the following Markdown files in `"+outDir+"`:")
		assert.Contains(t, stdout.String(), "- "+path)
		assert.Contains(t, stderr.String(), "Saved 1 artifacts")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "# Struct Widget")
		assert.Contains(t, string(data), "Makes widgets.")
		assert.NotContains(t, string(data), "sidebar")

		_, err = os.Stat(m.DBPath)
		assert.True(t, os.IsNotExist(err), "no-history must not create the database")
	})

	t.Run("fetch records the run for history", func(t *testing.T) {
		t.Parallel()

		repo := newWorkspace(t)
		dbPath := filepath.Join(t.TempDir(), "test.db")

		m := main.NewMain()
		m.DBPath = dbPath
		m.Runner = fakeCargo(t, []string{"alpha_core"}, map[string]string{
			"alpha_core/all.html":           allPage,
			"alpha_core/struct.Widget.html": structPage,
		})
		stderr := &bytes.Buffer{}
		err := m.Run(testContext(), []string{
			"fetch", "-r", repo, "--addr", "127.0.0.1:0", "-o", "kb",
		}, &bytes.Buffer{}, stderr)
		require.NoError(t, err, stderr.String())

		history := main.NewMain()
		history.DBPath = dbPath
		stdout := &bytes.Buffer{}
		err = history.Run(testContext(), []string{"history"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "rustdoc")
		assert.Contains(t, stdout.String(), "1 artifacts")
		assert.Contains(t, stdout.String(), filepath.Join(repo, "kb", "alpha_core"+knowdoc.ArtifactSuffix))
	})

	t.Run("fetch reports build failures", func(t *testing.T) {
		t.Parallel()

		repo := newWorkspace(t)
		m := main.NewMain()
		m.Runner = cargo.RunnerFunc(func(_ context.Context, cmd cargo.Command) error {
			if cmd.Args[0] == "metadata" {
				_, err := cmd.Stdout.Write([]byte(`{"packages":[]}`))
				return err
			}
			_, _ = cmd.Stderr.Write([]byte("error: could not compile\n"))
			return assert.AnError
		})

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(testContext(), []string{
			"fetch", "--repo-path", repo, "--no-history",
		}, stdout, stderr)

		require.Error(t, err)
		assert.Equal(t, knowdoc.EGENERATOR, knowdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "could not compile")
		assert.Contains(t, stderr.String(), "error: cargo doc failed")
		assert.Empty(t, strings.TrimSpace(stdout.String()))
	})

	t.Run("fetch rejects unknown source types", func(t *testing.T) {
		t.Parallel()

		repo := newWorkspace(t)
		m := main.NewMain()
		m.Runner = cargo.RunnerFunc(func(_ context.Context, _ cargo.Command) error {
			t.Fatal("cargo must not run for an unknown source type")
			return nil
		})

		stderr := &bytes.Buffer{}
		err := m.Run(testContext(), []string{
			"fetch", "--repo-path", repo, "--source-type", "javadoc", "--no-history",
		}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, knowdoc.EINVALID, knowdoc.ErrorCode(err))
		assert.Contains(t, stderr.String(), "unsupported source type: javadoc")
	})

	t.Run("fetch requires an existing repo path", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		err := m.Run(testContext(), []string{
			"fetch", "--repo-path", filepath.Join(t.TempDir(), "missing"), "--no-history",
		}, &bytes.Buffer{}, &bytes.Buffer{})

		require.Error(t, err)
	})
}
