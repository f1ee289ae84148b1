// Package main provides the entry point for the confluence-md CLI.
package main

import (
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/bzoboki/confluence-md/internal/confluence"
	confluencemcp "github.com/bzoboki/confluence-md/internal/mcp"
	"github.com/bzoboki/confluence-md/internal/output"
)

// serveFlags holds the command-line flags for the serve command.
type serveFlags struct {
	url     string
	user    string
	token   string
	timeout int
	verbose bool
}

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	flags := &serveFlags{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run confluence-md as a Model Context Protocol (MCP) server over stdio.

This exposes Confluence page access and tree export as MCP tools that
any MCP-capable agent environment can use (Claude Code, Cursor,
Windsurf, Gemini CLI, etc).

Credentials resolve the same way as for export: flags, then
environment variables, then .env files.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "confluence-md": {
        "command": "confluence-md",
        "args": ["serve"],
        "env": {
          "CONFLUENCE_URL": "https://example.atlassian.net/wiki",
          "CONFLUENCE_TOKEN": "..."
        }
      }
    }
  }

Available tools: get_page, list_children, export_tree, slugify`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "Confluence base URL (or set CONFLUENCE_URL)")
	cmd.Flags().StringVar(&flags.user, "user", "", "Username/email for Cloud auth (or set CONFLUENCE_USER)")
	cmd.Flags().StringVar(&flags.token, "token", "", "API token or PAT (or set CONFLUENCE_TOKEN)")
	cmd.Flags().IntVar(&flags.timeout, "timeout", 30, "HTTP request timeout in seconds")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runServe executes the serve command. Stdout belongs to the MCP
// transport, so all diagnostics go to stderr.
func runServe(cmd *cobra.Command, flags *serveFlags) error {
	printer := output.NewPrinter(cmd.ErrOrStderr(), false, output.IsTTY(cmd.ErrOrStderr()))

	creds := lookupCredentials(flags.url, flags.user, flags.token)
	if creds.url == "" {
		err := output.NewConfigError("CONFLUENCE_URL not provided (use --url or set environment variable)")
		printer.Error(err)
		return err
	}
	if creds.token == "" {
		err := output.NewConfigError("CONFLUENCE_TOKEN not provided (use --token or set environment variable)")
		printer.Error(err)
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)
	client := confluence.NewClient(confluence.Config{
		BaseURL: creds.url,
		User:    creds.user,
		Token:   creds.token,
		Timeout: time.Duration(flags.timeout) * time.Second,
	}, logger)

	server := confluencemcp.NewServer(buildVersion(), client, logger)
	return server.Run(cmd.Context(), &mcp.StdioTransport{})
}
