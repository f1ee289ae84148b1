// Package export walks a page tree depth-first and mirrors it into a
// local directory tree of Markdown files, one file per page plus one
// subdirectory per page that nests its children. Failures are contained
// at node granularity: a failed node is tallied and its subtree
// skipped, while siblings continue.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bzoboki/confluence-md/internal/confluence"
	"github.com/bzoboki/confluence-md/internal/markdown"
)

const (
	// DefaultDelay is the pause between consecutive remote calls.
	DefaultDelay = 100 * time.Millisecond

	// DefaultMaxDepth bounds the traversal so cyclic or pathological
	// hierarchies cannot run forever.
	DefaultMaxDepth = 50
)

// ContentFetcher is the slice of the Confluence client the exporter
// uses. Tests substitute an in-memory tree.
type ContentFetcher interface {
	FetchPage(ctx context.Context, pageID string) (*confluence.Page, error)
	FetchChildren(ctx context.Context, pageID string) ([]confluence.ChildPage, error)
}

// Config holds the export settings.
type Config struct {
	// OutputDir is the root the exported tree is written under.
	OutputDir string
	// BaseURL prefixes each page's relative web link in the frontmatter.
	BaseURL string
	// Delay is the fixed pause applied after each successful remote
	// call. Not adaptive.
	Delay time.Duration
	// SkipExisting leaves files from a previous run untouched, so an
	// interrupted export can resume.
	SkipExisting bool
	// MaxDepth fails any node at or below this depth without fetching.
	MaxDepth int
}

// Exporter walks one page tree. It is not safe for concurrent use; a
// run is strictly sequential with at most one remote call in flight.
type Exporter struct {
	client ContentFetcher
	cfg    Config
	logger *slog.Logger
}

// New builds an exporter. The logger may be nil, in which case per-node
// progress and failures are discarded.
func New(client ContentFetcher, cfg Config, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Exporter{client: client, cfg: cfg, logger: logger}
}

// workItem is one pending node of the traversal.
type workItem struct {
	pageID string
	dir    string
	depth  int
}

// ExportTree exports the page and all its descendants, pre-order: a
// page's file is written before any of its children are visited. The
// traversal keeps an explicit work stack instead of recursing, so depth
// is bounded by MaxDepth alone and not by the goroutine stack.
func (e *Exporter) ExportTree(ctx context.Context, pageID string) Result {
	var res Result
	stack := []workItem{{pageID: pageID, dir: e.cfg.OutputDir, depth: 0}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.depth >= e.cfg.MaxDepth {
			err := &RecursionLimitError{PageID: item.pageID, MaxDepth: e.cfg.MaxDepth}
			e.logger.Error("export failed", "page_id", item.pageID, "error", err)
			res.Failed++
			continue
		}

		children, childDir, err := e.processNode(ctx, item)
		if err != nil {
			e.logger.Error("export failed", "page_id", item.pageID, "error", err)
			res.Failed++
			continue
		}
		res.Succeeded++

		// Push in reverse so the first child is processed first.
		for i := len(children) - 1; i >= 0; i-- {
			if children[i].ID == "" {
				continue
			}
			stack = append(stack, workItem{
				pageID: children[i].ID,
				dir:    childDir,
				depth:  item.depth + 1,
			})
		}
	}
	return res
}

// processNode runs one node through fetch, write, and child listing.
// Any failure aborts the node as a whole: a file already written when
// the child listing fails stays on disk, but the node still counts as
// the one failure, keeping tallies consistent with earlier runs.
func (e *Exporter) processNode(ctx context.Context, item workItem) ([]confluence.ChildPage, string, error) {
	e.logger.Info("fetching page", "page_id", item.pageID, "depth", item.depth)
	page, err := e.client.FetchPage(ctx, item.pageID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch page: %w", err)
	}
	e.pause(ctx)

	stem, err := e.writePage(page, item.dir)
	if err != nil {
		return nil, "", err
	}

	children, err := e.client.FetchChildren(ctx, item.pageID)
	if err != nil {
		return nil, "", fmt.Errorf("list children: %w", err)
	}
	e.pause(ctx)

	return children, filepath.Join(item.dir, stem), nil
}

// writePage renders the page into dir and returns the filename stem
// actually used, which names the child directory. The stem reflects
// collision suffixing, so children nest under the right directory even
// when two siblings share a title.
func (e *Exporter) writePage(page *confluence.Page, dir string) (string, error) {
	meta := markdown.ExtractMetadata(page, e.cfg.BaseURL)
	text, err := markdown.Convert(page.BodyHTML(), meta)
	if err != nil {
		return "", fmt.Errorf("convert page: %w", err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	slug := markdown.Slugify(page.Title)
	name, skip := resolveFilename(dir, slug, e.cfg.SkipExisting)
	path := filepath.Join(dir, name)

	if skip {
		e.logger.Info("skipped existing file", "path", path)
		return strings.TrimSuffix(name, ".md"), nil
	}

	if err := os.WriteFile(path, []byte(text), 0o600); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	e.logger.Info("created file", "path", path)
	return strings.TrimSuffix(name, ".md"), nil
}

// pause applies the fixed inter-call delay.
func (e *Exporter) pause(ctx context.Context) {
	if e.cfg.Delay <= 0 {
		return
	}
	timer := time.NewTimer(e.cfg.Delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
