package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/knowdoc"
	main "github.com/fwojciec/knowdoc/cmd/knowdoc"
	"github.com/fwojciec/knowdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows a hint when nothing was recorded", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ knowdoc.RunFilter) ([]*knowdoc.Run, error) {
				return []*knowdoc.Run{}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.HistoryCmd{Limit: 10}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded.")
	})

	t.Run("lists runs with their artifacts", func(t *testing.T) {
		t.Parallel()

		var got knowdoc.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter knowdoc.RunFilter) ([]*knowdoc.Run, error) {
				got = filter
				return []*knowdoc.Run{{
					ID:         "run-1",
					Kind:       knowdoc.SourceRustdoc,
					SourcePath: "/src/ws",
					StartedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
					Artifacts: []*knowdoc.Artifact{
						{Package: "alpha", Path: "/src/ws/.knowledgebase/alpha_knowledge.md", Bytes: 2048, Tokens: 1500},
						{Package: "beta", Path: "/src/ws/.knowledgebase/beta_knowledge.md", Bytes: 1024, Tokens: 500},
					},
				}}, nil
			},
		}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.HistoryCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 5, got.Limit)
		assert.Nil(t, got.SourcePath)
		out := stdout.String()
		assert.Contains(t, out, "rustdoc  /src/ws  2 artifacts (3.0 KB, ~2k tokens)")
		assert.Contains(t, out, "  - /src/ws/.knowledgebase/alpha_knowledge.md\n")
		assert.Contains(t, out, "  - /src/ws/.knowledgebase/beta_knowledge.md\n")
	})

	t.Run("filters by repo path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var got knowdoc.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter knowdoc.RunFilter) ([]*knowdoc.Run, error) {
				got = filter
				return nil, nil
			},
		}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.HistoryCmd{Limit: 10, RepoPath: dir}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.SourcePath)
		assert.Equal(t, dir, *got.SourcePath)
	})

	t.Run("reports lookup failures", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ knowdoc.RunFilter) ([]*knowdoc.Run, error) {
				return nil, knowdoc.Errorf(knowdoc.EINTERNAL, "database locked")
			},
		}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: testContext(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.HistoryCmd{Limit: 10}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: database locked")
	})
}
