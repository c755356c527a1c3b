package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/knowdoc"
	"github.com/fwojciec/knowdoc/crawl"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	kind, err := knowdoc.ParseSourceKind(c.SourceType)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowdoc.ErrorMessage(err))
		return err
	}

	root, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return err
	}

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stderr, "Crawling %d packages\n", event.Total)
		case crawl.ProgressPageFailed, crawl.ProgressPackageSkipped:
			fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", event.URL, knowdoc.ErrorMessage(event.Error))
		case crawl.ProgressArtifactFailed:
			fmt.Fprintf(deps.Stderr, "  failed to write %s: %s\n", event.Package, knowdoc.ErrorMessage(event.Error))
		case crawl.ProgressRecordFailed:
			fmt.Fprintf(deps.Stderr, "  warning: %s\n", knowdoc.ErrorMessage(event.Error))
		}
	}

	summary, err := deps.Crawler.Run(deps.Ctx, knowdoc.Source{Kind: kind, Path: root}, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", knowdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, strings.TrimRight(summary.String(), "\n"))

	if len(summary.Artifacts) > 0 {
		if deps.Crawler.TokenCounter != nil {
			fmt.Fprintf(deps.Stderr, "Saved %d artifacts (%s, %s)\n",
				len(summary.Artifacts), crawl.FormatBytes(summary.Bytes()), crawl.FormatTokens(summary.Tokens()))
		} else {
			fmt.Fprintf(deps.Stderr, "Saved %d artifacts (%s)\n",
				len(summary.Artifacts), crawl.FormatBytes(summary.Bytes()))
		}
	}

	return nil
}
