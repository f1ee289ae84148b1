// Package output provides structured output handling for the confluence-md CLI.
//
// This package handles both human-readable and JSON output formats so that
// every command works equally well for people and for scripts driving the
// exporter.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches format
// based on the --json flag and disables styling when output is piped:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.ResolveColorMode(colorMode, output.IsTTY(cmd.OutOrStdout())))
//
//	printer.Success(map[string]any{"message": "export complete", "pages": 12})
//	printer.Error(err)
//	printer.Println("Some text")
//
// # Exit codes
//
// The package defines the process exit contract and error constructors that
// carry it:
//
//	output.ExitSuccess      // 0: every page exported
//	output.ExitExportFailed // 1: at least one page failed (partial or total)
//	output.ExitConfigError  // 2: invalid configuration, nothing exported
//
//	output.NewConfigError("CONFLUENCE_URL not provided")
//	output.NewExportError("export failed")
//
// GetExitCode maps any returned error back onto the contract for main.
package output
