package confluence

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"auth 401", &AuthError{Status: 401}, "authentication failed"},
		{"auth 403", &AuthError{Status: 403}, "access denied"},
		{"not found with id", &NotFoundError{PageID: "42"}, "page 42 not found"},
		{"not found without id", &NotFoundError{}, "resource not found"},
		{"api with status", &APIError{Status: 502, Message: "bad gateway"}, "status 502"},
		{"api without status", &APIError{Message: "decoding response"}, "api error: decoding response"},
		{"connection", &ConnectionError{Err: errors.New("refused")}, "connection failed: refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestConnectionErrorUnwrap(t *testing.T) {
	inner := errors.New("dial tcp: timeout")
	err := &ConnectionError{Err: inner}
	if !errors.Is(err, inner) {
		t.Error("ConnectionError should unwrap to the transport error")
	}
}
