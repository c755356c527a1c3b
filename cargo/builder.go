package cargo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/knowdoc"
)

// Ensure Builder implements knowdoc.DocBuilder at compile time.
var _ knowdoc.DocBuilder = (*Builder)(nil)

// Builder generates rustdoc HTML with
// `cargo doc --no-deps --document-private-items`.
type Builder struct {
	config
}

// NewBuilder creates a new Builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{config: newConfig(opts)}
}

// BuildDocs runs cargo doc in the workspace at root and returns the
// generated doc directory. If root cannot be canonicalized the current
// directory is used instead. Within crawl.Crawler that fallback is not
// reached: Resolver has already rejected a root whose manifest cannot be
// read, so it only applies when Builder is used on its own.
func (b *Builder) BuildDocs(ctx context.Context, root string) (knowdoc.DocTree, error) {
	dir, err := canonicalize(root)
	if err != nil {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return "", knowdoc.WrapError(knowdoc.EINTERNAL, wdErr, "cannot determine current directory")
		}
		b.logf("failed to resolve path %s: %v; using %s", root, err, wd)
		dir = wd
	}

	args := []string{"doc", "--no-deps", "--document-private-items"}
	if b.targetDir != "" {
		args = append(args, "--target-dir", b.targetPath(dir))
	}

	err = b.runner.Run(ctx, Command{
		Name:   b.binary,
		Args:   args,
		Dir:    dir,
		Stdout: b.stdout,
		Stderr: b.stderr,
	})
	if err != nil {
		return "", knowdoc.WrapError(knowdoc.EGENERATOR, err, "cargo doc failed in %s", dir)
	}

	out := filepath.Join(b.targetPath(dir), "doc")
	info, err := os.Stat(out)
	if err != nil || !info.IsDir() {
		return "", knowdoc.Errorf(knowdoc.EOUTPUT, "documentation directory not found: %s", out)
	}

	return knowdoc.DocTree(out), nil
}

func (b *Builder) targetPath(dir string) string {
	switch {
	case b.targetDir == "":
		return filepath.Join(dir, "target")
	case filepath.IsAbs(b.targetDir):
		return b.targetDir
	default:
		return filepath.Join(dir, b.targetDir)
	}
}

// canonicalize returns the absolute, symlink-free form of an existing path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}
