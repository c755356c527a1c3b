// Package crawl turns a documentation source into per-package knowledge
// artifacts. It coordinates package resolution, doc generation, the
// transient content server, page fetching, extraction, conversion and
// artifact writing.
package crawl

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/fwojciec/knowdoc"
	"golang.org/x/sync/errgroup"
)

// IndexPage is the page listing every item of a generated package.
const IndexPage = "all.html"

// Crawler runs the documentation pipeline for a Source.
//
// Resolver, Builder, Server, Fetcher, Index, Extractor, Converter and Writer
// are required. Sanitizer, Runs, TokenCounter and RateLimiter are optional.
type Crawler struct {
	Resolver     knowdoc.PackageResolver
	Builder      knowdoc.DocBuilder
	Server       knowdoc.ContentServer
	Fetcher      knowdoc.Fetcher
	Index        knowdoc.IndexParser
	Extractor    knowdoc.Extractor
	Sanitizer    knowdoc.Sanitizer
	Converter    knowdoc.Converter
	Writer       knowdoc.ArtifactWriter
	Runs         knowdoc.RunService
	TokenCounter knowdoc.TokenCounter
	RateLimiter  *Limiter

	// Concurrency is the number of packages crawled at once.
	// Values below 2 crawl packages one after another.
	Concurrency int

	// OutputDir is reported in the run summary. It should name the
	// directory Writer writes to.
	OutputDir string
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type      ProgressType
	Package   knowdoc.PackageID
	URL       string
	Path      string
	Completed int
	Total     int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressStarted is sent once the server is up, with Total packages.
	ProgressStarted ProgressType = iota
	// ProgressPackageStarted is sent before a package's index is fetched.
	ProgressPackageStarted
	// ProgressPageFailed is sent for each page that was skipped.
	ProgressPageFailed
	// ProgressPackageSkipped is sent when a package's index could not be read.
	ProgressPackageSkipped
	// ProgressArtifactWritten is sent with the Path of each written artifact.
	ProgressArtifactWritten
	// ProgressArtifactFailed is sent when an artifact could not be written.
	ProgressArtifactFailed
	// ProgressRecordFailed is sent when the manifest or run ledger could not
	// be updated.
	ProgressRecordFailed
	// ProgressFinished is sent once all packages are done.
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// Calls are serialized even when packages are crawled concurrently.
type ProgressFunc func(event ProgressEvent)

// Run executes the pipeline for src and returns the summary of written
// artifacts. Resolution and build failures abort the run and are returned
// as errors. Fetch, conversion and write failures only skip the affected
// page or package and are reported through progress.
func (c *Crawler) Run(ctx context.Context, src knowdoc.Source, progress ProgressFunc) (*knowdoc.RunSummary, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	switch src.Kind {
	case knowdoc.SourceRustdoc:
		return c.runGenerated(ctx, src, progress)
	default:
		return nil, knowdoc.Errorf(knowdoc.EINVALID, "unsupported source type: %s", src.Kind)
	}
}

// runGenerated crawls a locally generated documentation site.
func (c *Crawler) runGenerated(ctx context.Context, src knowdoc.Source, progress ProgressFunc) (*knowdoc.RunSummary, error) {
	started := time.Now().UTC()
	emit := serialize(progress)

	ids, err := c.Resolver.ResolvePackages(ctx, src.Path)
	if err != nil {
		return nil, err
	}

	tree, err := c.Builder.BuildDocs(ctx, src.Path)
	if err != nil {
		return nil, err
	}

	targets, err := packageDirs(tree, ids)
	if err != nil {
		return nil, err
	}

	baseURL, err := c.Server.Start(tree)
	if err != nil {
		return nil, err
	}
	defer c.Server.Close()

	emit(ProgressEvent{Type: ProgressStarted, Total: len(targets)})

	artifacts := c.crawlPackages(ctx, baseURL, targets, emit)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := &knowdoc.RunSummary{OutputDir: c.OutputDir}
	for _, a := range artifacts {
		if a != nil {
			summary.Artifacts = append(summary.Artifacts, a)
		}
	}

	if err := c.Writer.WriteManifest(ctx, summary); err != nil {
		emit(ProgressEvent{Type: ProgressRecordFailed, Error: err})
	}

	if c.Runs != nil {
		run := &knowdoc.Run{
			Kind:       src.Kind,
			SourcePath: src.Path,
			OutputDir:  c.OutputDir,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
			Artifacts:  summary.Artifacts,
		}
		if err := c.Runs.CreateRun(ctx, run); err != nil {
			emit(ProgressEvent{Type: ProgressRecordFailed, Error: err})
		}
	}

	emit(ProgressEvent{
		Type:      ProgressFinished,
		Completed: len(summary.Artifacts),
		Total:     len(targets),
	})

	return summary, nil
}

// crawlPackages crawls every target and returns one artifact slot per
// target, in target order. Slots of skipped or failed packages are nil.
func (c *Crawler) crawlPackages(ctx context.Context, baseURL string, targets []knowdoc.PackageID, emit ProgressFunc) []*knowdoc.Artifact {
	artifacts := make([]*knowdoc.Artifact, len(targets))

	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, id := range targets {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			artifacts[i] = c.crawlPackage(ctx, baseURL, id, emit)
			return nil
		})
	}
	_ = g.Wait()

	return artifacts
}

// crawlPackage fetches the index of one package, converts every linked page
// and writes the package artifact. It returns nil when the package was
// skipped or its artifact could not be written.
func (c *Crawler) crawlPackage(ctx context.Context, baseURL string, id knowdoc.PackageID, emit ProgressFunc) *knowdoc.Artifact {
	pkgURL := baseURL + "/" + string(id) + "/"
	emit(ProgressEvent{Type: ProgressPackageStarted, Package: id, URL: pkgURL + IndexPage})

	html, err := c.fetch(ctx, pkgURL+IndexPage)
	if err != nil {
		emit(ProgressEvent{Type: ProgressPackageSkipped, Package: id, URL: pkgURL + IndexPage, Error: err})
		return nil
	}

	links, err := c.Index.ParseIndex(id, html)
	if err != nil {
		emit(ProgressEvent{Type: ProgressPackageSkipped, Package: id, URL: pkgURL + IndexPage, Error: err})
		return nil
	}

	pages := make([]*knowdoc.Page, 0, len(links))
	for i, link := range links {
		if ctx.Err() != nil {
			return nil
		}

		page, err := c.processPage(ctx, pkgURL+link)
		if err != nil {
			emit(ProgressEvent{
				Type:      ProgressPageFailed,
				Package:   id,
				URL:       pkgURL + link,
				Completed: i + 1,
				Total:     len(links),
				Error:     err,
			})
			continue
		}
		pages = append(pages, page)
	}

	artifact, err := c.Writer.WriteArtifact(ctx, id, pages)
	if err != nil {
		emit(ProgressEvent{Type: ProgressArtifactFailed, Package: id, Error: err})
		return nil
	}

	if c.TokenCounter != nil {
		if tokens, err := c.TokenCounter.CountTokens(ctx, knowdoc.FormatPages(pages)); err == nil {
			artifact.Tokens = tokens
		}
	}

	emit(ProgressEvent{Type: ProgressArtifactWritten, Package: id, Path: artifact.Path})
	return artifact
}

// processPage fetches one page and converts its main content to markdown.
// A page without a main content region yields a page with empty content.
func (c *Crawler) processPage(ctx context.Context, url string) (*knowdoc.Page, error) {
	html, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	extracted, err := c.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	page := &knowdoc.Page{URL: url, Title: extracted.Title}
	if extracted.ContentHTML == "" {
		return page, nil
	}

	content := extracted.ContentHTML
	if c.Sanitizer != nil {
		content = c.Sanitizer.Sanitize(content)
	}

	markdown, err := c.Converter.Convert(content)
	if err != nil {
		return nil, err
	}
	page.Content = markdown

	return page, nil
}

func (c *Crawler) fetch(ctx context.Context, url string) (string, error) {
	if err := c.RateLimiter.Wait(ctx); err != nil {
		return "", err
	}
	return c.Fetcher.Fetch(ctx, url)
}

// packageDirs returns the subdirectories of tree whose names are resolved
// package IDs, sorted by name. Other entries are ignored.
func packageDirs(tree knowdoc.DocTree, ids []knowdoc.PackageID) ([]knowdoc.PackageID, error) {
	known := make(map[knowdoc.PackageID]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}

	entries, err := os.ReadDir(string(tree))
	if err != nil {
		return nil, knowdoc.WrapError(knowdoc.EOUTPUT, err, "cannot read generated docs at %s", tree)
	}

	targets := []knowdoc.PackageID{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := knowdoc.PackageID(entry.Name())
		if _, ok := known[id]; ok {
			targets = append(targets, id)
		}
	}
	return targets, nil
}

// serialize wraps progress so concurrent package crawls never call it at
// the same time. A nil progress becomes a no-op.
func serialize(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return func(ProgressEvent) {}
	}
	var mu sync.Mutex
	return func(event ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		progress(event)
	}
}
