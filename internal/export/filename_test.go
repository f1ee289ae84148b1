package export

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
	}
}

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name         string
		existing     []string
		skipExisting bool
		wantName     string
		wantSkip     bool
	}{
		{
			name:     "fresh directory",
			wantName: "page.md",
		},
		{
			name:     "one collision",
			existing: []string{"page.md"},
			wantName: "page-2.md",
		},
		{
			name:     "two collisions",
			existing: []string{"page.md", "page-2.md"},
			wantName: "page-3.md",
		},
		{
			name:     "gap in suffixes is reused",
			existing: []string{"page.md", "page-3.md"},
			wantName: "page-2.md",
		},
		{
			name:         "skip reuses the base name",
			existing:     []string{"page.md"},
			skipExisting: true,
			wantName:     "page.md",
			wantSkip:     true,
		},
		{
			name:         "skip writes fresh when absent",
			skipExisting: true,
			wantName:     "page.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.existing...)

			name, skip := resolveFilename(dir, "page", tt.skipExisting)
			if name != tt.wantName || skip != tt.wantSkip {
				t.Errorf("resolveFilename() = (%q, %v), want (%q, %v)", name, skip, tt.wantName, tt.wantSkip)
			}
		})
	}
}
