// Package config provides the global configuration directory for confluence-md.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the confluence-md configuration directory. The update
// checker's cache file lives here, and a global `env` file in this
// directory is loaded as the last credential fallback.
//
// Resolution:
//   - $CONFLUENCE_MD_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/confluence-md if set (respects XDG on any platform)
//   - %AppData%/confluence-md on Windows
//   - ~/.config/confluence-md on macOS and Linux
func Dir() string {
	// Explicit override
	if dir := os.Getenv("CONFLUENCE_MD_CONFIG_HOME"); dir != "" {
		return dir
	}

	// XDG override (works on any platform)
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "confluence-md")
	}

	// Windows: use AppData
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "confluence-md")
		}
	}

	// macOS and Linux: ~/.config/confluence-md
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "confluence-md")
}
