// Package main provides the entry point for the confluence-md CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bzoboki/confluence-md/internal/config"
	"github.com/bzoboki/confluence-md/internal/envfile"
	"github.com/bzoboki/confluence-md/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy,
// so commands stay independently testable without shared mutable state.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves the --color persistent flag against TTY detection
// on the command's stdout writer.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Flags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	} else if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the confluence-md CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confluence-md",
		Short: "Export Confluence page trees to Markdown",
		Long: `Confluence.md - export a Confluence page and all of its descendants into
a mirrored tree of Markdown files with YAML frontmatter.

Each page becomes <slug>.md next to a <slug>/ directory that nests its
children, so the local tree has the same shape as the page hierarchy.
Transient API failures are retried, failed branches are skipped without
aborting the run, and re-running with --skip-existing resumes an
interrupted export.

Credentials resolve from flags, then environment variables, then .env
files. All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewConfigError("no command specified. Run 'confluence-md --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables already set always take precedence over
	// file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")

	lipgloss.SetHasDarkBackground(true)

	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins.
//
// Resolution order:
//  1. $CWD/.env.local   (per-project override, gitignored)
//  2. $CWD/.env         (per-project)
//  3. ~/.config/confluence-md/env (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(".env.local")
	_ = envfile.Load(".env")

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}
