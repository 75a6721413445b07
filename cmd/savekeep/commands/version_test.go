package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/thoreinstein/savekeep/cmd"
	"github.com/thoreinstein/savekeep/internal/cli"
	"github.com/thoreinstein/savekeep/internal/errors"
)

func TestPrintVersion(t *testing.T) {
	info := cmd.BuildInfo{Version: "v1.2.0", Commit: "abc123", Date: "2025-04-01", Go: "go1.24.2"}
	var buf bytes.Buffer
	if err := printVersion(&buf, info, ""); err != nil {
		t.Fatalf("printVersion() error = %v", err)
	}
	output := buf.String()

	tests := []struct {
		name     string
		contains string
	}{
		{"version header", "savekeep version v1.2.0"},
		{"commit field", "commit: abc123"},
		{"built field", "built:  2025-04-01"},
		{"go field", "go:     go1.24.2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(output, tt.contains) {
				t.Errorf("version output missing %q\nGot:\n%s", tt.contains, output)
			}
		})
	}

	if lines := strings.Split(strings.TrimSpace(output), "\n"); len(lines) != 4 {
		t.Errorf("version output has %d lines, want 4\n%s", len(lines), output)
	}
}

func TestPrintVersion_NoGo(t *testing.T) {
	var buf bytes.Buffer
	if err := printVersion(&buf, cmd.BuildInfo{Version: "dev", Commit: "none", Date: "unknown"}, ""); err != nil {
		t.Fatalf("printVersion() error = %v", err)
	}
	if strings.Contains(buf.String(), "go:") {
		t.Errorf("unexpected go line:\n%s", buf.String())
	}
}

func TestPrintVersion_JSON(t *testing.T) {
	info := cmd.BuildInfo{Version: "v1.2.0", Commit: "abc123", Date: "2025-04-01", Go: "go1.24.2"}
	var buf bytes.Buffer
	if err := printVersion(&buf, info, "json"); err != nil {
		t.Fatalf("printVersion() error = %v", err)
	}
	var got cmd.BuildInfo
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if got != info {
		t.Errorf("decoded %+v, want %+v", got, info)
	}
}

func TestPrintVersion_UnknownFormat(t *testing.T) {
	err := printVersion(&bytes.Buffer{}, cmd.BuildInfo{}, "xml")
	if !errors.Is(err, cli.ErrUnknownFormat) {
		t.Errorf("printVersion() error = %v, want ErrUnknownFormat", err)
	}
}

func TestVersionCommand_CommandMetadata(t *testing.T) {
	if versionCmd.Use != "version" {
		t.Errorf("versionCmd.Use = %q, want %q", versionCmd.Use, "version")
	}
	if versionCmd.Short == "" {
		t.Error("versionCmd.Short should not be empty")
	}
	if versionCmd.Flags().Lookup("format") == nil {
		t.Error("versionCmd should have a --format flag")
	}
}
