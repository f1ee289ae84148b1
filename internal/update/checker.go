// Package update checks the npm registry for a newer release in the
// background. The check shares nothing with the export run: it touches
// only its own cache file and result slot, and the caller collects the
// result with a short bounded wait at the very end.
package update

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	goversion "github.com/hashicorp/go-version"

	"github.com/bzoboki/confluence-md/internal/config"
)

const (
	defaultRegistryURL = "https://registry.npmjs.org/confluence-md"
	defaultTimeout     = 2 * time.Second
	defaultCacheTTL    = 24 * time.Hour

	cacheFileName = "last-update-check.json"
)

// DisabledByEnv reports whether the user opted out of update checks via
// CONFLUENCE_MD_NO_UPDATE_CHECK.
func DisabledByEnv() bool {
	switch strings.ToLower(os.Getenv("CONFLUENCE_MD_NO_UPDATE_CHECK")) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// Config controls the checker. Zero values select the public registry,
// the user's config directory, and a 24 hour cache.
type Config struct {
	CurrentVersion string
	RegistryURL    string
	CachePath      string
	Timeout        time.Duration
	CacheTTL       time.Duration
}

// Checker runs one background version check.
type Checker struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger

	done   chan struct{}
	latest string
}

// New builds a checker. Start must be called to kick off the check.
func New(cfg Config, logger *slog.Logger) *Checker {
	if cfg.RegistryURL == "" {
		cfg.RegistryURL = defaultRegistryURL
	}
	if cfg.CachePath == "" {
		cfg.CachePath = filepath.Join(config.Dir(), cacheFileName)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Start launches the check in the background and returns immediately.
func (c *Checker) Start() {
	go func() {
		defer close(c.done)
		c.latest = c.check()
	}()
}

// Result waits up to timeout for the background check and returns the
// newer version, if any. A check that has not finished in time is
// simply abandoned; it holds no resources the process needs.
func (c *Checker) Result(timeout time.Duration) (string, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-c.done:
		return c.latest, c.latest != ""
	case <-timer.C:
		return "", false
	}
}

// check returns the newer available version or "".
func (c *Checker) check() string {
	if cached, ok := c.readCache(); ok {
		if isNewer(cached.LatestVersion, c.cfg.CurrentVersion) {
			return cached.LatestVersion
		}
		return ""
	}

	latest := c.fetchLatest()
	if latest == "" {
		return ""
	}
	c.writeCache(latest)
	if isNewer(latest, c.cfg.CurrentVersion) {
		return latest
	}
	return ""
}

// cacheEntry is the on-disk record of the last registry check.
type cacheEntry struct {
	CheckedAt     time.Time `json:"checked_at"`
	LatestVersion string    `json:"latest_version"`
}

func (c *Checker) readCache() (cacheEntry, bool) {
	var entry cacheEntry
	raw, err := os.ReadFile(c.cfg.CachePath)
	if err != nil {
		return entry, false
	}
	if err := json.Unmarshal(raw, &entry); err != nil {
		return entry, false
	}
	if entry.LatestVersion == "" || time.Since(entry.CheckedAt) >= c.cfg.CacheTTL {
		return entry, false
	}
	return entry, true
}

func (c *Checker) writeCache(latest string) {
	entry := cacheEntry{CheckedAt: time.Now().UTC(), LatestVersion: latest}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.cfg.CachePath), 0o750); err != nil {
		c.logger.Debug("update cache directory", "error", err)
		return
	}
	if err := os.WriteFile(c.cfg.CachePath, raw, 0o600); err != nil {
		c.logger.Debug("update cache write", "error", err)
	}
}

// fetchLatest asks the npm registry for the current dist-tag. Any
// failure degrades to "no update available".
func (c *Checker) fetchLatest() string {
	req, err := http.NewRequest(http.MethodGet, c.cfg.RegistryURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "confluence-md")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("update check failed", "error", err)
		return ""
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return ""
	}
	var payload struct {
		DistTags struct {
			Latest string `json:"latest"`
		} `json:"dist-tags"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}
	return payload.DistTags.Latest
}

// isNewer reports whether latest is a release strictly newer than
// current. Unparseable versions (including dev builds) never trigger a
// notice.
func isNewer(latest, current string) bool {
	lv, err := goversion.NewVersion(latest)
	if err != nil {
		return false
	}
	cv, err := goversion.NewVersion(current)
	if err != nil {
		return false
	}
	return lv.GreaterThan(cv)
}

// Notice renders the user-facing upgrade hint for a newer version.
func Notice(latest string) string {
	if exe, err := os.Executable(); err == nil && strings.Contains(strings.ToLower(exe), "node_modules") {
		return "ℹ A new version (" + latest + ") is available. Run 'npm update -g confluence-md' to upgrade."
	}
	return "ℹ A new version (" + latest + ") is available. Visit https://github.com/bzoboki/Confluence.md/releases for upgrade options."
}
