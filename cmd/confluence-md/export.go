package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bzoboki/confluence-md/internal/confluence"
	"github.com/bzoboki/confluence-md/internal/export"
	"github.com/bzoboki/confluence-md/internal/output"
	"github.com/bzoboki/confluence-md/internal/update"
)

// updateJoinTimeout bounds how long the finished run waits for the
// background version check before giving up on the notice.
const updateJoinTimeout = 500 * time.Millisecond

type exportFlags struct {
	pageID        string
	outputPath    string
	url           string
	user          string
	token         string
	delayMS       int
	timeout       int
	skipExisting  bool
	maxDepth      int
	verbose       bool
	noUpdateCheck bool
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a page and all its descendants to Markdown",
		Long: `Export a Confluence page tree to a local directory of Markdown files.

Each page is written as <slug>.md with YAML frontmatter; its children
nest inside a <slug>/ directory next to it. A failed page is logged and
counted, its subtree skipped, and the export continues with siblings.

Examples:
  confluence-md export --page-id 12345 --output-path ./docs
  confluence-md export --page-id 12345 --output-path ./docs --skip-existing
  confluence-md export --page-id 12345 --output-path ./docs --user jane@example.com --token $TOKEN
  confluence-md export --page-id 12345 --output-path ./docs --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.pageID, "page-id", "", "Confluence page ID to export")
	cmd.Flags().StringVar(&flags.outputPath, "output-path", "", "Output directory path")
	cmd.Flags().StringVar(&flags.url, "url", "", "Confluence base URL (or set CONFLUENCE_URL)")
	cmd.Flags().StringVar(&flags.user, "user", "", "Username/email for Cloud, omit for Server PAT (or set CONFLUENCE_USER)")
	cmd.Flags().StringVar(&flags.token, "token", "", "API token (Cloud) or Personal Access Token (Server) (or set CONFLUENCE_TOKEN)")
	cmd.Flags().IntVar(&flags.delayMS, "delay-ms", 100, "Delay between API calls in milliseconds")
	cmd.Flags().IntVar(&flags.timeout, "timeout", 30, "HTTP request timeout in seconds")
	cmd.Flags().BoolVar(&flags.skipExisting, "skip-existing", false, "Skip files that already exist (resume capability)")
	cmd.Flags().IntVar(&flags.maxDepth, "max-depth", export.DefaultMaxDepth, "Maximum recursion depth")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "Enable verbose logging")
	cmd.Flags().BoolVar(&flags.noUpdateCheck, "no-update-check", false, "Disable update check")

	return cmd
}

// credentials is the connection configuration after flag/env resolution.
type credentials struct {
	url   string
	user  string
	token string
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, flags exportFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
	logger := newLogger(cmd.ErrOrStderr(), flags.verbose)

	checker := startUpdateCheck(flags.noUpdateCheck, logger)

	creds, err := resolveCredentials(flags)
	if err != nil {
		printer.Error(err)
		return err
	}

	printAuthBanner(printer, flags, creds)

	if err := checkOutputWritable(flags.outputPath); err != nil {
		cfgErr := output.NewConfigError(fmt.Sprintf("Output directory '%s' is not writable", flags.outputPath))
		printer.Error(cfgErr)
		return cfgErr
	}

	client := confluence.NewClient(confluence.Config{
		BaseURL: creds.url,
		User:    creds.user,
		Token:   creds.token,
		Timeout: time.Duration(flags.timeout) * time.Second,
	}, logger)

	exporter := export.New(client, export.Config{
		OutputDir:    flags.outputPath,
		BaseURL:      creds.url,
		Delay:        time.Duration(flags.delayMS) * time.Millisecond,
		SkipExisting: flags.skipExisting,
		MaxDepth:     flags.maxDepth,
	}, logger)

	res := exporter.ExportTree(cmd.Context(), flags.pageID)

	return reportResult(printer, res, checker)
}

// newLogger builds the run logger. Progress and errors go to stderr so
// stdout stays clean for --json consumers.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// startUpdateCheck kicks off the background version check unless the
// user opted out via flag or environment. Returns nil when disabled.
func startUpdateCheck(disabled bool, logger *slog.Logger) *update.Checker {
	if disabled || update.DisabledByEnv() {
		return nil
	}
	checker := update.New(update.Config{CurrentVersion: version}, logger)
	checker.Start()
	return checker
}

// resolveCredentials applies the flag > environment > .env precedence
// (env files were merged into the environment before the command ran)
// and validates that everything required is present.
func resolveCredentials(flags exportFlags) (credentials, error) {
	if flags.pageID == "" {
		return credentials{}, output.NewConfigError("--page-id is required")
	}
	if flags.outputPath == "" {
		return credentials{}, output.NewConfigError("--output-path is required")
	}

	creds := lookupCredentials(flags.url, flags.user, flags.token)
	if creds.url == "" {
		return credentials{}, output.NewConfigError("CONFLUENCE_URL not provided (use --url or set environment variable)")
	}
	if creds.token == "" {
		return credentials{}, output.NewConfigError("CONFLUENCE_TOKEN not provided (use --token or set environment variable)")
	}
	return creds, nil
}

// lookupCredentials fills each connection setting from its flag value
// or, when empty, the corresponding environment variable.
func lookupCredentials(url, user, token string) credentials {
	return credentials{
		url:   firstNonEmpty(url, os.Getenv("CONFLUENCE_URL")),
		user:  firstNonEmpty(user, os.Getenv("CONFLUENCE_USER")),
		token: firstNonEmpty(token, os.Getenv("CONFLUENCE_TOKEN")),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// printAuthBanner announces the authentication mode and run settings.
func printAuthBanner(printer *output.Printer, flags exportFlags, creds credentials) {
	if printer.IsJSON() {
		return
	}
	if creds.user != "" {
		printer.Print("Using Cloud authentication (username + token) for %s\n", creds.url)
	} else {
		printer.Print("Using Server authentication (Bearer token only) for %s\n", creds.url)
	}

	mode := ""
	if flags.skipExisting {
		mode = " (resuming, skipping existing files)"
	}
	printer.Print("Exporting page %s to %s%s...\n", flags.pageID, flags.outputPath, mode)
	printer.Print("Settings: timeout=%ds, delay=%dms, max_depth=%d\n", flags.timeout, flags.delayMS, flags.maxDepth)
}

// checkOutputWritable verifies that an existing output directory will
// accept writes before any API call is spent. A missing directory is
// fine; the exporter creates it.
func checkOutputWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	probe, err := os.CreateTemp(path, ".confluence-md-*")
	if err != nil {
		return err
	}
	name := probe.Name()
	_ = probe.Close()
	return os.Remove(name)
}

// exportSummary is the --json result payload.
type exportSummary struct {
	Status    string `json:"status"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

// reportResult prints the run summary, surfaces any pending update
// notice, and translates the tally into the exit contract.
func reportResult(printer *output.Printer, res export.Result, checker *update.Checker) error {
	if printer.IsJSON() {
		summary := exportSummary{Status: statusOf(res), Succeeded: res.Succeeded, Failed: res.Failed}
		if err := printer.WriteJSON(summary); err != nil {
			return err
		}
		return exitErrorFor(res)
	}

	switch {
	case res.AllSucceeded():
		printer.Println(printer.Styles().Success.Render(
			fmt.Sprintf("✓ All pages exported successfully (%d pages)", res.Succeeded)))
	case res.Succeeded > 0:
		printer.Warn("⚠ Partial success: %d succeeded, %d failed", res.Succeeded, res.Failed)
	default:
		printer.Stderr("%s\n", printer.Styles().Error.Render("✗ Export failed"))
	}

	printUpdateNotice(printer, checker)

	return exitErrorFor(res)
}

func statusOf(res export.Result) string {
	switch {
	case res.AllSucceeded():
		return "success"
	case res.Succeeded > 0:
		return "partial"
	default:
		return "failed"
	}
}

func exitErrorFor(res export.Result) error {
	switch {
	case res.AllSucceeded():
		return nil
	case res.Succeeded > 0:
		return output.NewExportError(fmt.Sprintf("%d of %d pages failed", res.Failed, res.Total()))
	default:
		return output.NewExportError("export failed")
	}
}

// printUpdateNotice collects the background check with a bounded wait
// and prints the upgrade hint, if any, after the run summary.
func printUpdateNotice(printer *output.Printer, checker *update.Checker) {
	if checker == nil {
		return
	}
	latest, ok := checker.Result(updateJoinTimeout)
	if !ok {
		return
	}
	printer.Println(printer.Styles().Notice.Render(update.Notice(latest)))
}
