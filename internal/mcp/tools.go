package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bzoboki/confluence-md/internal/confluence"
	"github.com/bzoboki/confluence-md/internal/export"
	"github.com/bzoboki/confluence-md/internal/markdown"
)

// --- get_page tool ---

// GetPageInput is the input for the get_page tool.
type GetPageInput struct {
	PageID string `json:"page_id" jsonschema:"Confluence page ID"`
}

// GetPageOutput is the output for the get_page tool.
type GetPageOutput struct {
	PageID   string `json:"page_id"            jsonschema:"Confluence page ID"`
	Title    string `json:"title"              jsonschema:"page title"`
	SpaceKey string `json:"space_key,omitempty" jsonschema:"key of the space the page lives in"`
	URL      string `json:"url,omitempty"      jsonschema:"absolute web URL of the page"`
	Slug     string `json:"slug"               jsonschema:"filesystem slug the exporter would use"`
	Document string `json:"document"           jsonschema:"full Markdown document including YAML frontmatter"`
}

func handleGetPage(client *confluence.Client) mcp.ToolHandlerFor[GetPageInput, GetPageOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GetPageInput) (*mcp.CallToolResult, GetPageOutput, error) {
		if input.PageID == "" {
			return nil, GetPageOutput{}, errors.New("page_id is required")
		}

		page, err := client.FetchPage(ctx, input.PageID)
		if err != nil {
			return nil, GetPageOutput{}, fmt.Errorf("fetching page: %w", err)
		}

		meta := markdown.ExtractMetadata(page, client.BaseURL())
		doc, err := markdown.Convert(page.BodyHTML(), meta)
		if err != nil {
			return nil, GetPageOutput{}, fmt.Errorf("converting page: %w", err)
		}

		out := GetPageOutput{
			PageID:   page.ID,
			Title:    page.Title,
			SpaceKey: strOrEmpty(meta.SpaceKey),
			URL:      strOrEmpty(meta.URL),
			Slug:     markdown.Slugify(page.Title),
			Document: doc,
		}
		return nil, out, nil
	}
}

// --- list_children tool ---

// ListChildrenInput is the input for the list_children tool.
type ListChildrenInput struct {
	PageID string `json:"page_id" jsonschema:"Confluence page ID to list children of"`
}

// ChildSummary describes one direct child page.
type ChildSummary struct {
	ID    string `json:"id"    jsonschema:"child page ID"`
	Title string `json:"title" jsonschema:"child page title"`
	Slug  string `json:"slug"  jsonschema:"filesystem slug the exporter would use"`
}

// ListChildrenOutput is the output for the list_children tool.
type ListChildrenOutput struct {
	Count    int            `json:"count"              jsonschema:"number of direct children"`
	Children []ChildSummary `json:"children,omitempty" jsonschema:"direct child pages in API order"`
}

func handleListChildren(client *confluence.Client) mcp.ToolHandlerFor[ListChildrenInput, ListChildrenOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ListChildrenInput) (*mcp.CallToolResult, ListChildrenOutput, error) {
		if input.PageID == "" {
			return nil, ListChildrenOutput{}, errors.New("page_id is required")
		}

		children, err := client.FetchChildren(ctx, input.PageID)
		if err != nil {
			return nil, ListChildrenOutput{}, fmt.Errorf("listing children: %w", err)
		}

		out := ListChildrenOutput{Count: len(children)}
		for _, child := range children {
			out.Children = append(out.Children, ChildSummary{
				ID:    child.ID,
				Title: child.Title,
				Slug:  markdown.Slugify(child.Title),
			})
		}
		return nil, out, nil
	}
}

// --- export_tree tool ---

// ExportTreeInput is the input for the export_tree tool.
type ExportTreeInput struct {
	PageID       string `json:"page_id"                 jsonschema:"root Confluence page ID to export"`
	OutputPath   string `json:"output_path"             jsonschema:"local directory to write the tree under"`
	SkipExisting bool   `json:"skip_existing,omitempty" jsonschema:"leave files from a previous run untouched"`
	MaxDepth     int    `json:"max_depth,omitempty"     jsonschema:"maximum recursion depth (default 50)"`
	DelayMS      int    `json:"delay_ms,omitempty"      jsonschema:"delay between API calls in milliseconds (default 100)"`
}

// ExportTreeOutput is the output for the export_tree tool.
type ExportTreeOutput struct {
	Status     string `json:"status"      jsonschema:"success, partial, or failed"`
	Succeeded  int    `json:"succeeded"   jsonschema:"number of pages exported"`
	Failed     int    `json:"failed"      jsonschema:"number of pages that failed; their subtrees were skipped"`
	OutputPath string `json:"output_path" jsonschema:"directory the tree was written under"`
}

func handleExportTree(client *confluence.Client, logger *slog.Logger) mcp.ToolHandlerFor[ExportTreeInput, ExportTreeOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExportTreeInput) (*mcp.CallToolResult, ExportTreeOutput, error) {
		if input.PageID == "" {
			return nil, ExportTreeOutput{}, errors.New("page_id is required")
		}
		if input.OutputPath == "" {
			return nil, ExportTreeOutput{}, errors.New("output_path is required")
		}

		maxDepth := input.MaxDepth
		if maxDepth <= 0 {
			maxDepth = export.DefaultMaxDepth
		}
		delay := export.DefaultDelay
		if input.DelayMS > 0 {
			delay = time.Duration(input.DelayMS) * time.Millisecond
		}

		exporter := export.New(client, export.Config{
			OutputDir:    input.OutputPath,
			BaseURL:      client.BaseURL(),
			Delay:        delay,
			SkipExisting: input.SkipExisting,
			MaxDepth:     maxDepth,
		}, logger)

		res := exporter.ExportTree(ctx, input.PageID)

		out := ExportTreeOutput{
			Status:     exportStatus(res),
			Succeeded:  res.Succeeded,
			Failed:     res.Failed,
			OutputPath: input.OutputPath,
		}
		return nil, out, nil
	}
}

func exportStatus(res export.Result) string {
	switch {
	case res.AllSucceeded():
		return "success"
	case res.Succeeded > 0:
		return "partial"
	default:
		return "failed"
	}
}

// --- slugify tool ---

// SlugifyInput is the input for the slugify tool.
type SlugifyInput struct {
	Title string `json:"title" jsonschema:"page title to convert"`
}

// SlugifyOutput is the output for the slugify tool.
type SlugifyOutput struct {
	Slug string `json:"slug" jsonschema:"filesystem-safe slug"`
}

func handleSlugify() mcp.ToolHandlerFor[SlugifyInput, SlugifyOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SlugifyInput) (*mcp.CallToolResult, SlugifyOutput, error) {
		return nil, SlugifyOutput{Slug: markdown.Slugify(input.Title)}, nil
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
