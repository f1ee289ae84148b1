// Package main provides the entry point for the confluence-md CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bzoboki/confluence-md/internal/output"
)

// checkStatus represents the result of a health check.
type checkStatus string

const (
	checkPass checkStatus = "pass"
	checkWarn checkStatus = "warn"
	checkFail checkStatus = "fail"
)

// checkResult holds the result of a single health check.
type checkResult struct {
	Name    string      `json:"name"`
	Status  checkStatus `json:"status"`
	Message string      `json:"message"`
	Hint    string      `json:"hint,omitempty"`
}

// doctorResult holds all check results organized by category.
type doctorResult struct {
	Version      string         `json:"version"`
	Config       []checkResult  `json:"config"`
	Connectivity []checkResult  `json:"connectivity"`
	Storage      []checkResult  `json:"storage"`
	Summary      *doctorSummary `json:"summary"`
}

// doctorSummary holds the counts of check results.
type doctorSummary struct {
	Passed   int `json:"passed"`
	Warnings int `json:"warnings"`
	Failed   int `json:"failed"`
}

// doctorFlags holds the command-line flags for the doctor command.
type doctorFlags struct {
	url        string
	user       string
	token      string
	outputPath string
	quiet      bool
}

// newDoctorCmd creates the doctor command.
func newDoctorCmd() *cobra.Command {
	flags := &doctorFlags{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check configuration and connectivity",
		Long: `Check confluence-md configuration and connectivity.

Runs a series of health checks across three categories:
  CONFIG       - Credential resolution and env files
  CONNECTIVITY - Confluence REST API reachability and authentication
  STORAGE      - Config directory and update-check cache

Each check reports:
  Pass    - Check passed successfully
  Warning - Non-critical issue found
  Fail    - Critical issue that needs attention

Examples:
  confluence-md doctor              # Run all health checks
  confluence-md doctor --quiet     # Only show failures and warnings
  confluence-md doctor --json      # Output results as JSON`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.url, "url", "", "Confluence base URL (or set CONFLUENCE_URL)")
	cmd.Flags().StringVar(&flags.user, "user", "", "Username/email for Cloud auth (or set CONFLUENCE_USER)")
	cmd.Flags().StringVar(&flags.token, "token", "", "API token or PAT (or set CONFLUENCE_TOKEN)")
	cmd.Flags().StringVar(&flags.outputPath, "output-path", "", "Also check that this output directory is writable")
	cmd.Flags().BoolVar(&flags.quiet, "quiet", false, "Only show failures and warnings")

	return cmd
}

// runDoctor executes the doctor command. A run with any failed check
// exits with the configuration error code.
func runDoctor(cmd *cobra.Command, flags *doctorFlags) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd))

	creds := lookupCredentials(flags.url, flags.user, flags.token)
	result := gatherDoctorChecks(cmd, flags, creds)

	if isJSONMode(cmd) {
		if err := printer.WriteJSON(result); err != nil {
			return err
		}
		return doctorExitError(result)
	}

	outputDoctorHuman(printer, result, flags.quiet)
	return doctorExitError(result)
}

// doctorExitError translates failed checks into the exit contract.
func doctorExitError(result *doctorResult) error {
	if result.Summary.Failed == 0 {
		return nil
	}
	total := result.Summary.Passed + result.Summary.Warnings + result.Summary.Failed
	return output.NewConfigError(fmt.Sprintf("%d of %d checks failed", result.Summary.Failed, total))
}

// gatherDoctorChecks runs all health checks and returns results.
func gatherDoctorChecks(cmd *cobra.Command, flags *doctorFlags, creds credentials) *doctorResult {
	result := &doctorResult{
		Version:      version,
		Config:       runConfigChecks(flags, creds),
		Connectivity: runConnectivityChecks(cmd, creds),
		Storage:      runStorageChecks(),
		Summary:      &doctorSummary{},
	}

	allChecks := append(append(result.Config, result.Connectivity...), result.Storage...)
	for _, check := range allChecks {
		switch check.Status {
		case checkPass:
			result.Summary.Passed++
		case checkWarn:
			result.Summary.Warnings++
		case checkFail:
			result.Summary.Failed++
		}
	}

	return result
}

// outputDoctorHuman outputs the doctor result in human-readable format.
func outputDoctorHuman(printer *output.Printer, result *doctorResult, quiet bool) {
	printer.Println()
	printer.Print("confluence-md doctor v%s\n", result.Version)

	printCheckSection(printer, "CONFIG", result.Config, quiet)
	printCheckSection(printer, "CONNECTIVITY", result.Connectivity, quiet)
	printCheckSection(printer, "STORAGE", result.Storage, quiet)

	printer.Println()
	printer.Print("%s %d passed  %s %d warnings  %s %d failed\n",
		statusIcon(checkPass), result.Summary.Passed,
		statusIcon(checkWarn), result.Summary.Warnings,
		statusIcon(checkFail), result.Summary.Failed,
	)
}

// printCheckSection prints a section of checks. In quiet mode passing
// checks are skipped, and sections with nothing left are dropped whole.
func printCheckSection(printer *output.Printer, title string, checks []checkResult, quiet bool) {
	if quiet {
		hasNonPass := false
		for _, check := range checks {
			if check.Status != checkPass {
				hasNonPass = true
				break
			}
		}
		if !hasNonPass {
			return
		}
	}

	printer.Section(title)

	for _, check := range checks {
		if quiet && check.Status == checkPass {
			continue
		}

		printer.Print("  %s  %s %s\n", statusIcon(check.Status), check.Name, check.Message)
		if check.Hint != "" {
			printer.Print("     %s %s\n", hintPrefix(), check.Hint)
		}
	}
}

// statusIcon returns the icon for a check status.
func statusIcon(status checkStatus) string {
	switch status {
	case checkPass:
		return "ok"
	case checkWarn:
		return "!!"
	case checkFail:
		return "XX"
	default:
		return "??"
	}
}

// hintPrefix returns the prefix for hint lines.
func hintPrefix() string {
	return "->"
}
