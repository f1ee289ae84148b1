// Package mcp provides a Model Context Protocol server for confluence-md.
// It exposes page fetching and tree export as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bzoboki/confluence-md/internal/confluence"
)

// NewServer creates an MCP server with all confluence-md tools
// registered. The logger may be nil.
func NewServer(version string, client *confluence.Client, logger *slog.Logger) *mcp.Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "confluence-md",
		Version: version,
	}, nil)
	registerTools(server, client, logger)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// remoteReadAnnotations returns annotations for tools that only read
// from the remote API.
func remoteReadAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(true),
	}
}

// localAnnotations returns annotations for pure in-process tools.
func localAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// exportAnnotations returns annotations for the tree export, which
// reads remotely and writes local files. Re-running it converges to the
// same tree, so it is marked idempotent and non-destructive.
func exportAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all confluence-md tools to the server.
func registerTools(server *mcp.Server, client *confluence.Client, logger *slog.Logger) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_page",
		Description: "Fetch a single Confluence page and return it rendered as a Markdown document with YAML frontmatter, plus its key metadata.",
		Annotations: remoteReadAnnotations(),
	}, handleGetPage(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_children",
		Description: "List the direct child pages of a Confluence page, with the slug each child would export under.",
		Annotations: remoteReadAnnotations(),
	}, handleListChildren(client))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_tree",
		Description: "Export a Confluence page and all of its descendants to a local directory of Markdown files. Failed pages are counted and their subtrees skipped; the export continues with siblings.",
		Annotations: exportAnnotations(),
	}, handleExportTree(client, logger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "slugify",
		Description: "Convert a page title into the filesystem slug the exporter would use for it.",
		Annotations: localAnnotations(),
	}, handleSlugify())
}
