package main

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/fwojciec/knowdoc"
	"github.com/fwojciec/knowdoc/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Crawler *crawl.Crawler
	Runs    knowdoc.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Fetch   FetchCmd   `cmd:"" help:"Generate docs for a source tree and write knowledge files"`
	Sources SourcesCmd `cmd:"" help:"List supported documentation source types"`
	History HistoryCmd `cmd:"" help:"Show recent runs and the files they wrote"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	RepoPath       string        `short:"r" required:"" type:"existingdir" help:"Path to the source tree"`
	SourceType     string        `short:"s" default:"rustdoc" help:"Documentation source type"`
	Output         string        `short:"o" default:".knowledgebase" env:"KNOWDOC_OUTPUT" help:"Output directory, relative to the source tree unless absolute"`
	Addr           string        `default:"127.0.0.1:8000" env:"KNOWDOC_ADDR" help:"Address of the local content server"`
	Timeout        time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Concurrency    int           `short:"c" default:"1" help:"Packages crawled at once"`
	Rate           float64       `default:"0" help:"Maximum requests per second to the content server (0 = unlimited)"`
	Cargo          string        `default:"cargo" env:"KNOWDOC_CARGO" help:"Cargo executable"`
	TargetDir      string        `help:"Cargo target directory, relative to the source tree unless absolute"`
	Tokens         bool          `help:"Estimate token counts of the written files"`
	TokenizerModel string        `default:"gemini-2.0-flash" help:"Tokenizer model used by --tokens"`
	NoHistory      bool          `help:"Do not record this run in the history database"`
	Debug          bool          `help:"Log pipeline steps to stderr"`
}

// OutputDir returns the absolute output directory.
func (c *FetchCmd) OutputDir() (string, error) {
	if filepath.IsAbs(c.Output) {
		return c.Output, nil
	}
	root, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, c.Output), nil
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Limit    int    `short:"n" default:"10" help:"Number of runs to show"`
	RepoPath string `short:"r" help:"Only show runs for this source tree"`
}
