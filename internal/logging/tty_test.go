package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestColorAllowed(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		isTerminal bool
		want       bool
	}{
		{"terminal", nil, true, true},
		{"NO_COLOR", map[string]string{"NO_COLOR": "1"}, true, false},
		{"empty NO_COLOR still counts", map[string]string{"NO_COLOR": ""}, true, false},
		{"TERM=dumb", map[string]string{"TERM": "dumb"}, true, false},
		{"not a terminal", nil, false, false},
		{"forced through a pipe", map[string]string{"CLICOLOR_FORCE": "1"}, false, true},
		{"force disabled", map[string]string{"CLICOLOR_FORCE": "0"}, false, false},
		{"NO_COLOR beats force", map[string]string{"NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"NO_COLOR", "TERM", "CLICOLOR_FORCE"} {
				t.Setenv(k, "")
				os.Unsetenv(k)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if got := colorAllowed(tt.isTerminal); got != tt.want {
				t.Errorf("colorAllowed(%v) = %v, want %v (env=%v)", tt.isTerminal, got, tt.want, tt.env)
			}
		})
	}
}

func TestIsTerminal_NoFd(t *testing.T) {
	for _, v := range []any{&bytes.Buffer{}, strings.NewReader("x"), nil} {
		if IsTerminal(v) {
			t.Errorf("IsTerminal(%T) = true", v)
		}
	}
}
