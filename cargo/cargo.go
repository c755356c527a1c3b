// Package cargo implements package resolution and documentation generation
// for Cargo workspaces by running the cargo toolchain.
package cargo

import (
	"context"
	"io"
	"os/exec"
)

// DefaultBinary is the cargo executable looked up on PATH.
const DefaultBinary = "cargo"

// Command describes one external process invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes external commands. Only the exit status is reported;
// output goes to the writers in the Command.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, cmd Command) error

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, cmd Command) error {
	return f(ctx, cmd)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

type config struct {
	runner    Runner
	binary    string
	targetDir string
	stdout    io.Writer
	stderr    io.Writer
	logf      LogFunc
}

func newConfig(opts []Option) config {
	c := config{
		runner: execRunner{},
		binary: DefaultBinary,
		stdout: io.Discard,
		stderr: io.Discard,
		logf:   func(string, ...any) {},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures a Resolver or Builder.
type Option func(*config)

// WithRunner replaces the command runner. Used by tests.
func WithRunner(r Runner) Option {
	return func(c *config) {
		c.runner = r
	}
}

// WithBinary sets the cargo executable. Defaults to DefaultBinary.
func WithBinary(path string) Option {
	return func(c *config) {
		if path != "" {
			c.binary = path
		}
	}
}

// WithTargetDir sets cargo's target directory. Relative paths are taken
// relative to the source tree. Defaults to "target" inside the tree.
func WithTargetDir(dir string) Option {
	return func(c *config) {
		c.targetDir = dir
	}
}

// WithOutput sets where the generator's stdout and stderr go.
// Defaults to discarding both.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(c *config) {
		if stdout != nil {
			c.stdout = stdout
		}
		if stderr != nil {
			c.stderr = stderr
		}
	}
}

// WithLogFunc sets the function used to report recoverable problems.
func WithLogFunc(fn LogFunc) Option {
	return func(c *config) {
		if fn != nil {
			c.logf = fn
		}
	}
}
