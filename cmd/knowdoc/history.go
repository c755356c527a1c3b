package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fwojciec/knowdoc"
	"github.com/fwojciec/knowdoc/crawl"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := knowdoc.RunFilter{Limit: c.Limit}
	if c.RepoPath != "" {
		root, err := filepath.Abs(c.RepoPath)
		if err != nil {
			return err
		}
		filter.SourcePath = &root
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowdoc.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'knowdoc fetch' to create one.")
		return nil
	}

	for _, run := range runs {
		summary := knowdoc.RunSummary{Artifacts: run.Artifacts}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %d artifacts (%s",
			run.StartedAt.Local().Format(time.DateTime), run.Kind, run.SourcePath,
			len(run.Artifacts), crawl.FormatBytes(summary.Bytes()))
		if tokens := summary.Tokens(); tokens > 0 {
			fmt.Fprintf(deps.Stdout, ", %s", crawl.FormatTokens(tokens))
		}
		fmt.Fprintln(deps.Stdout, ")")
		for _, a := range run.Artifacts {
			fmt.Fprintf(deps.Stdout, "  - %s\n", a.Path)
		}
	}

	return nil
}
