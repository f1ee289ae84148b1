package output

import (
	"errors"
	"fmt"
	"testing"
)

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitExportFailed", ExitExportFailed, 1},
		{"ExitConfigError", ExitConfigError, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name        string
		err         *ExitError
		wantCode    int
		wantMessage string
	}{
		{
			name:        "config error",
			err:         NewConfigError("CONFLUENCE_URL not provided"),
			wantCode:    ExitConfigError,
			wantMessage: "CONFLUENCE_URL not provided",
		},
		{
			name:        "export error",
			err:         NewExportError("export failed"),
			wantCode:    ExitExportFailed,
			wantMessage: "export failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %d, want %d", tt.err.Code, tt.wantCode)
			}
			if tt.err.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", tt.err.Message, tt.wantMessage)
			}
			if tt.err.Error() != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestExitErrorWrapping(t *testing.T) {
	underlying := errors.New("connection refused")
	err := NewExportErrorWithCause("export failed", underlying)

	if err.Code != ExitExportFailed {
		t.Errorf("Code = %d, want %d", err.Code, ExitExportFailed)
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find the underlying cause")
	}
	if err.Unwrap() != underlying {
		t.Error("Unwrap() should return the underlying cause")
	}
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},
		{"config error", NewConfigError("missing token"), ExitConfigError},
		{"export error", NewExportError("partial failure"), ExitExportFailed},
		{"wrapped exit error", fmt.Errorf("running: %w", NewConfigError("bad dir")), ExitConfigError},
		{"untyped error", errors.New("boom"), ExitExportFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
