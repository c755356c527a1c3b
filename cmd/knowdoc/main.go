package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/knowdoc"
	"github.com/fwojciec/knowdoc/bluemonday"
	"github.com/fwojciec/knowdoc/cargo"
	"github.com/fwojciec/knowdoc/chi"
	"github.com/fwojciec/knowdoc/crawl"
	"github.com/fwojciec/knowdoc/fs"
	"github.com/fwojciec/knowdoc/gemini"
	"github.com/fwojciec/knowdoc/goquery"
	"github.com/fwojciec/knowdoc/htmltomarkdown"
	knowdochttp "github.com/fwojciec/knowdoc/http"
	kdslog "github.com/fwojciec/knowdoc/slog"
	"github.com/fwojciec/knowdoc/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path for the run ledger. Set before calling Run().
	DBPath string

	// SQLite database backing the run ledger.
	DB *sqlite.DB

	// Runner executes cargo. Nil uses the system cargo.
	Runner cargo.Runner

	// Runs records pipeline runs.
	Runs knowdoc.RunService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("knowdoc"),
		kong.Description("Turn generated API documentation into per-package markdown knowledge files."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'knowdoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cmd == "history" || (cmd == "fetch" && !cli.Fetch.NoHistory) {
		if m.DBPath != ":memory:" {
			_ = os.MkdirAll(filepath.Dir(m.DBPath), 0755)
		}
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set KNOWDOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.Runs = sqlite.NewRunService(m.DB)
		deps.Runs = m.Runs
	}

	if cmd == "fetch" {
		crawler, closeFn, err := m.newCrawler(&cli.Fetch, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Crawler = crawler
	}

	return kongCtx.Run(deps)
}

// newCrawler wires the pipeline for the fetch command.
func (m *Main) newCrawler(c *FetchCmd, stderr io.Writer) (*crawl.Crawler, func(), error) {
	outputDir, err := c.OutputDir()
	if err != nil {
		return nil, nil, err
	}

	var logger *slog.Logger
	if c.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	opts := []cargo.Option{
		cargo.WithBinary(c.Cargo),
		cargo.WithTargetDir(c.TargetDir),
		cargo.WithLogFunc(func(format string, args ...any) {
			fmt.Fprintf(stderr, "warning: "+format+"\n", args...)
		}),
	}
	if m.Runner != nil {
		opts = append(opts, cargo.WithRunner(m.Runner))
	}

	var resolver knowdoc.PackageResolver = cargo.NewResolver(opts...)
	var builder knowdoc.DocBuilder = cargo.NewBuilder(append(opts, cargo.WithOutput(stderr, stderr))...)
	var fetcher knowdoc.Fetcher = knowdochttp.NewFetcher(knowdochttp.WithTimeout(c.Timeout))
	var writer knowdoc.ArtifactWriter = fs.NewWriter(outputDir)
	serverOpts := []chi.Option{chi.WithAddr(c.Addr)}

	if logger != nil {
		resolver = kdslog.NewLoggingResolver(resolver, logger)
		builder = kdslog.NewLoggingBuilder(builder, logger)
		fetcher = kdslog.NewLoggingFetcher(fetcher, logger)
		writer = kdslog.NewLoggingArtifactWriter(writer, logger)
		serverOpts = append(serverOpts, chi.WithLogger(logger))
	}

	crawler := &crawl.Crawler{
		Resolver:    resolver,
		Builder:     builder,
		Server:      chi.NewServer(serverOpts...),
		Fetcher:     fetcher,
		Index:       goquery.NewIndexParser(),
		Extractor:   goquery.NewExtractor(),
		Sanitizer:   bluemonday.NewSanitizer(),
		Converter:   htmltomarkdown.NewConverter(),
		Writer:      writer,
		Runs:        m.Runs,
		RateLimiter: crawl.NewLimiter(c.Rate),
		Concurrency: c.Concurrency,
		OutputDir:   outputDir,
	}

	if c.Tokens {
		tokenCounter, err := gemini.NewTokenCounter(c.TokenizerModel)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create token counter: %w", err)
		}
		crawler.TokenCounter = tokenCounter
	}

	return crawler, func() { _ = fetcher.Close() }, nil
}

func defaultDBPath() string {
	if path := os.Getenv("KNOWDOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "knowdoc.db"
	}
	return filepath.Join(home, ".knowdoc", "knowdoc.db")
}
