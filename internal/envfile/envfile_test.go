package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	err := Load("/nonexistent/.env")
	if err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "CONFLUENCE_URL=https://wiki.example.com\nCONFLUENCE_TOKEN=secret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Ensure vars are unset
	t.Setenv("CONFLUENCE_URL", "")
	t.Setenv("CONFLUENCE_TOKEN", "")
	_ = os.Unsetenv("CONFLUENCE_URL")   //nolint:errcheck
	_ = os.Unsetenv("CONFLUENCE_TOKEN") //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("CONFLUENCE_URL"); got != "https://wiki.example.com" {
		t.Errorf("CONFLUENCE_URL = %q, want %q", got, "https://wiki.example.com")
	}
	if got := os.Getenv("CONFLUENCE_TOKEN"); got != "secret" {
		t.Errorf("CONFLUENCE_TOKEN = %q, want %q", got, "secret")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "CONFLUENCE_TOKEN=from_file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("CONFLUENCE_TOKEN", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("CONFLUENCE_TOKEN"); got != "from_env" {
		t.Errorf("CONFLUENCE_TOKEN = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestParse(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := `# credentials
CONFLUENCE_URL="https://wiki.example.com"
export CONFLUENCE_USER=alice@example.com
CONFLUENCE_TOKEN='abc=123'

not a pair
=novalue
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	vars, err := Parse(path)
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]string{
		"CONFLUENCE_URL":   "https://wiki.example.com",
		"CONFLUENCE_USER":  "alice@example.com",
		"CONFLUENCE_TOKEN": "abc=123",
	}
	if len(vars) != len(want) {
		t.Fatalf("parsed %d vars, want %d: %v", len(vars), len(want), vars)
	}
	for key, wantVal := range want {
		if vars[key] != wantVal {
			t.Errorf("%s = %q, want %q", key, vars[key], wantVal)
		}
	}
}
