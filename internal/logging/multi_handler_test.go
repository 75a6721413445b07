package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/savekeep/internal/errors"
)

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var text, file bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&text, &slog.HandlerOptions{Level: slog.LevelWarn}),
		nil,
		slog.NewJSONHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}),
	)
	logger := slog.New(h)

	logger.Debug("file backed up", "file", "save.sav")
	logger.Warn("backup copy failed", "file", "options.ini")

	if strings.Contains(text.String(), "file backed up") {
		t.Errorf("warn-level handler got a debug record: %q", text.String())
	}
	if !strings.Contains(text.String(), "backup copy failed") {
		t.Errorf("warn-level handler missed the warning: %q", text.String())
	}
	if got := strings.Count(file.String(), "\n"); got != 2 {
		t.Errorf("debug-level handler wrote %d records, want 2:\n%s", got, file.String())
	}
}

func TestMultiHandler_Enabled(t *testing.T) {
	h := NewMultiHandler(
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
		slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelInfo}),
	)
	ctx := context.Background()
	if !h.Enabled(ctx, slog.LevelInfo) {
		t.Error("Enabled(Info) = false, want true")
	}
	if h.Enabled(ctx, slog.LevelDebug) {
		t.Error("Enabled(Debug) = true, want false")
	}
	if NewMultiHandler().Enabled(ctx, slog.LevelError) {
		t.Error("empty MultiHandler should not be enabled")
	}
}

func TestMultiHandler_AttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer
	base := NewMultiHandler(slog.NewJSONHandler(&a, nil), slog.NewJSONHandler(&b, nil))
	logger := slog.New(base).With("op", "1234").WithGroup("set")
	logger.Info("backup finished", "id", "250401_152655")

	for name, buf := range map[string]*bytes.Buffer{"first": &a, "second": &b} {
		var rec map[string]any
		if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
			t.Fatalf("%s handler wrote invalid JSON: %v\n%s", name, err, buf.String())
		}
		if rec["op"] != "1234" {
			t.Errorf("%s handler op = %v, want 1234", name, rec["op"])
		}
		set, ok := rec["set"].(map[string]any)
		if !ok || set["id"] != "250401_152655" {
			t.Errorf("%s handler set = %v, want id in group", name, rec["set"])
		}
	}

	if base.WithGroup("") != slog.Handler(base) {
		t.Error("WithGroup(\"\") should return the handler unchanged")
	}
	if base.WithAttrs(nil) != slog.Handler(base) {
		t.Error("WithAttrs(nil) should return the handler unchanged")
	}
}

type failingHandler struct {
	slog.Handler
	err error
}

func (h failingHandler) Handle(context.Context, slog.Record) error { return h.err }

func TestMultiHandler_CombinesErrors(t *testing.T) {
	var buf bytes.Buffer
	errA := errors.New("disk full")
	errB := errors.New("pipe closed")
	h := NewMultiHandler(
		failingHandler{Handler: slog.NewTextHandler(&bytes.Buffer{}, nil), err: errA},
		slog.NewTextHandler(&buf, nil),
		failingHandler{Handler: slog.NewTextHandler(&bytes.Buffer{}, nil), err: errB},
	)

	err := h.Handle(context.Background(), slog.NewRecord(time.Time{}, slog.LevelInfo, "restore finished", 0))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Handle() error = %v, want both handler errors", err)
	}
	if !strings.Contains(buf.String(), "restore finished") {
		t.Errorf("healthy handler was skipped: %q", buf.String())
	}
}
