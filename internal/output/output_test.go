package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestPrinter_JSON_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false) // json=true, tty=false

	data := map[string]any{
		"succeeded": 12,
		"failed":    0,
	}

	if err := printer.Success(data); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if got, ok := result["succeeded"].(float64); !ok || int(got) != 12 {
		t.Errorf("succeeded = %v, want 12", result["succeeded"])
	}
}

func TestPrinter_JSON_Error(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(NewConfigError("CONFLUENCE_TOKEN not provided"))

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v\nOutput: %s", err, buf.String())
	}

	if result["error"] != "CONFLUENCE_TOKEN not provided" {
		t.Errorf("error = %v, want %q", result["error"], "CONFLUENCE_TOKEN not provided")
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitConfigError {
		t.Errorf("code = %v, want %d", result["code"], ExitConfigError)
	}
}

func TestPrinter_Human_Success(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	data := map[string]any{
		"message": "All pages exported successfully",
	}

	if err := printer.Success(data); err != nil {
		t.Fatalf("Success() error = %v", err)
	}

	if !strings.Contains(buf.String(), "All pages exported successfully") {
		t.Errorf("output = %q, want to contain the message", buf.String())
	}
}

func TestPrinter_Human_ErrorToStderr(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Error(NewConfigError("output directory is not writable"))

	if out.Len() != 0 {
		t.Errorf("stdout should be empty, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "output directory is not writable") {
		t.Errorf("stderr should contain the message, got %q", errOut.String())
	}
}

func TestPrinter_Human_UntypedError(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, true, false)

	printer.Error(errUntyped)

	var result map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if code, ok := result["code"].(float64); !ok || int(code) != ExitExportFailed {
		t.Errorf("untyped errors should map to code %d, got %v", ExitExportFailed, result["code"])
	}
}

var errUntyped = &testError{"network unreachable"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }

func TestPrinter_Warn(t *testing.T) {
	var out, errOut bytes.Buffer
	printer := NewPrinter(&out, false, false).WithStderr(&errOut)

	printer.Warn("Partial success: %d succeeded, %d failed", 3, 1)

	if !strings.Contains(errOut.String(), "Partial success: 3 succeeded, 1 failed") {
		t.Errorf("stderr = %q, want the warning text", errOut.String())
	}
}

func TestPrinter_Section(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, false)

	printer.Section("CONFIG")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 || lines[1] != "CONFIG" {
		t.Fatalf("Section() = %q, want blank line, title, underline", buf.String())
	}
	if lines[2] != strings.Repeat("─", len("CONFIG")) {
		t.Errorf("underline = %q, want it to match the title width", lines[2])
	}
}
