// Package main provides the entry point for the confluence-md CLI.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bzoboki/confluence-md/internal/config"
	"github.com/bzoboki/confluence-md/internal/confluence"
	"github.com/bzoboki/confluence-md/internal/update"
)

// connectivityTimeout bounds the doctor's probe request. Shorter than
// the export default so a dead host fails fast.
const connectivityTimeout = 5 * time.Second

// runConfigChecks performs credential and env-file checks. The output
// path is only checked when the flag was given.
func runConfigChecks(flags *doctorFlags, creds credentials) []checkResult {
	checks := make([]checkResult, 0, 5)
	checks = append(checks, checkURLConfigured(creds))
	checks = append(checks, checkTokenConfigured(creds))
	checks = append(checks, checkAuthMode(creds))
	checks = append(checks, checkEnvFiles())
	if flags.outputPath != "" {
		checks = append(checks, checkOutputPath(flags.outputPath))
	}
	return checks
}

// checkOutputPath verifies a prospective output directory would accept
// an export.
func checkOutputPath(path string) checkResult {
	if err := checkOutputWritable(path); err != nil {
		return checkResult{
			Name:    "Output Path",
			Status:  checkFail,
			Message: fmt.Sprintf("'%s' is not writable", path),
			Hint:    "Pick a different --output-path or fix its permissions",
		}
	}
	return checkResult{
		Name:    "Output Path",
		Status:  checkPass,
		Message: path,
	}
}

// checkURLConfigured checks that a Confluence base URL is resolvable.
func checkURLConfigured(creds credentials) checkResult {
	if creds.url != "" {
		return checkResult{
			Name:    "Base URL",
			Status:  checkPass,
			Message: creds.url,
		}
	}
	return checkResult{
		Name:    "Base URL",
		Status:  checkFail,
		Message: "not configured",
		Hint:    "Set CONFLUENCE_URL or pass --url",
	}
}

// checkTokenConfigured checks that a token is resolvable. The token
// itself is never echoed.
func checkTokenConfigured(creds credentials) checkResult {
	if creds.token != "" {
		return checkResult{
			Name:    "API Token",
			Status:  checkPass,
			Message: "configured",
		}
	}
	return checkResult{
		Name:    "API Token",
		Status:  checkFail,
		Message: "not configured",
		Hint:    "Set CONFLUENCE_TOKEN or pass --token",
	}
}

// checkAuthMode reports which authentication scheme the resolved
// credentials select.
func checkAuthMode(creds credentials) checkResult {
	if creds.token == "" {
		return checkResult{
			Name:    "Auth Mode",
			Status:  checkWarn,
			Message: "not determined (no token configured)",
		}
	}
	if creds.user != "" {
		return checkResult{
			Name:    "Auth Mode",
			Status:  checkPass,
			Message: "Cloud (username + token)",
		}
	}
	return checkResult{
		Name:    "Auth Mode",
		Status:  checkPass,
		Message: "Server (Bearer token only)",
	}
}

// checkEnvFiles reports which env files exist in the resolution chain.
func checkEnvFiles() checkResult {
	candidates := []string{".env.local", ".env"}
	if dir := config.Dir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "env"))
	}

	found := make([]string, 0, len(candidates))
	for _, path := range candidates {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			found = append(found, path)
		}
	}

	if len(found) == 0 {
		return checkResult{
			Name:    "Env Files",
			Status:  checkPass,
			Message: "none found (flags and environment only)",
		}
	}
	return checkResult{
		Name:    "Env Files",
		Status:  checkPass,
		Message: strings.Join(found, ", "),
	}
}

// runConnectivityChecks performs API reachability checks.
func runConnectivityChecks(cmd *cobra.Command, creds credentials) []checkResult {
	return []checkResult{checkAPIReachable(cmd, creds)}
}

// checkAPIReachable calls the current-user endpoint to verify both
// reachability and authentication in one round trip.
func checkAPIReachable(cmd *cobra.Command, creds credentials) checkResult {
	if creds.url == "" || creds.token == "" {
		return checkResult{
			Name:    "Confluence API",
			Status:  checkWarn,
			Message: "skipped (credentials not configured)",
		}
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, connectivityTimeout)
	defer cancel()

	client := confluence.NewClient(confluence.Config{
		BaseURL: creds.url,
		User:    creds.user,
		Token:   creds.token,
		Timeout: connectivityTimeout,
	}, nil)

	user, err := client.CurrentUser(ctx)
	if err != nil {
		return checkResult{
			Name:    "Confluence API",
			Status:  checkFail,
			Message: err.Error(),
			Hint:    connectivityHint(err),
		}
	}

	message := "authenticated"
	if user.DisplayName != "" {
		message = "authenticated as " + user.DisplayName
	}
	return checkResult{
		Name:    "Confluence API",
		Status:  checkPass,
		Message: message,
	}
}

// connectivityHint suggests a fix based on the failure class.
func connectivityHint(err error) string {
	var authErr *confluence.AuthError
	if errors.As(err, &authErr) {
		return "Check CONFLUENCE_TOKEN (and CONFLUENCE_USER for Cloud instances)"
	}
	var connErr *confluence.ConnectionError
	if errors.As(err, &connErr) {
		return "Check the base URL and your network connection"
	}
	return ""
}

// runStorageChecks performs local filesystem checks.
func runStorageChecks() []checkResult {
	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkConfigDirWritable())
	checks = append(checks, checkUpdateCache())
	return checks
}

// checkConfigDirWritable verifies the config directory can hold the
// update-check cache and the global env file.
func checkConfigDirWritable() checkResult {
	dir := config.Dir()
	if dir == "" {
		return checkResult{
			Name:    "Config Directory",
			Status:  checkWarn,
			Message: "could not resolve a config directory",
		}
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return checkResult{
			Name:    "Config Directory",
			Status:  checkWarn,
			Message: fmt.Sprintf("cannot create %s: %v", dir, err),
			Hint:    "Update-check caching will be disabled",
		}
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return checkResult{
			Name:    "Config Directory",
			Status:  checkWarn,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
			Hint:    "Update-check caching will be disabled",
		}
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	return checkResult{
		Name:    "Config Directory",
		Status:  checkPass,
		Message: dir,
	}
}

// checkUpdateCache reports whether the background update check is
// active and how fresh its cache is.
func checkUpdateCache() checkResult {
	if update.DisabledByEnv() {
		return checkResult{
			Name:    "Update Check",
			Status:  checkPass,
			Message: "disabled (CONFLUENCE_MD_NO_UPDATE_CHECK)",
		}
	}

	cachePath := filepath.Join(config.Dir(), "last-update-check.json")
	raw, err := os.ReadFile(cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return checkResult{
				Name:    "Update Check",
				Status:  checkPass,
				Message: "enabled, no cache yet (first check runs with the next export)",
			}
		}
		return checkResult{
			Name:    "Update Check",
			Status:  checkWarn,
			Message: "cache unreadable: " + err.Error(),
		}
	}

	var entry struct {
		CheckedAt time.Time `json:"checked_at"`
	}
	if err := json.Unmarshal(raw, &entry); err != nil || entry.CheckedAt.IsZero() {
		return checkResult{
			Name:    "Update Check",
			Status:  checkWarn,
			Message: "cache corrupt; it will be rewritten on the next check",
		}
	}

	age := time.Since(entry.CheckedAt).Truncate(time.Minute)
	if age < 24*time.Hour {
		return checkResult{
			Name:    "Update Check",
			Status:  checkPass,
			Message: fmt.Sprintf("cache fresh (checked %s ago)", age),
		}
	}
	return checkResult{
		Name:    "Update Check",
		Status:  checkPass,
		Message: fmt.Sprintf("cache stale (checked %s ago; will refresh)", age),
	}
}
