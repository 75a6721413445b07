package doctor

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/savekeep/internal/backupset"
	"github.com/thoreinstein/savekeep/internal/paths"
	"github.com/thoreinstein/savekeep/internal/profile"
)

// stubCheck returns a canned result.
type stubCheck struct {
	name   string
	result *CheckResult
}

func (c *stubCheck) Name() string      { return c.name }
func (c *stubCheck) Category() string  { return "test" }
func (c *stubCheck) Run() *CheckResult { return c.result }

func TestRunner_Run(t *testing.T) {
	tests := []struct {
		name         string
		statuses     []Severity
		wantPassed   int
		wantInfo     int
		wantWarnings int
		wantErrors   int
	}{
		{"empty runner", nil, 0, 0, 0, 0},
		{"all pass", []Severity{SeverityPass, SeverityPass}, 2, 0, 0, 0},
		{"mixed", []Severity{SeverityPass, SeverityInfo, SeverityWarning, SeverityError, SeverityError}, 1, 1, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner()
			r.now = func() time.Time { return time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC) }
			for i, s := range tt.statuses {
				r.AddCheck(&stubCheck{name: string(rune('a' + i)), result: &CheckResult{Status: s}})
			}

			report := r.Run()
			assert.Len(t, report.Results, len(tt.statuses))
			assert.Equal(t, Summary{tt.wantPassed, tt.wantInfo, tt.wantWarnings, tt.wantErrors}, report.Summary)
			assert.Equal(t, tt.wantErrors > 0, report.HasErrors())
			assert.Equal(t, tt.wantWarnings > 0, report.HasWarnings())
			assert.Equal(t, 2025, report.Timestamp.Year())
		})
	}
}

func TestRunner_NilResultPasses(t *testing.T) {
	r := NewRunner()
	r.AddCheck(&stubCheck{name: "quiet"})
	report := r.Run()
	require.Len(t, report.Results, 1)
	assert.Equal(t, "quiet", report.Results[0].Name)
	assert.Equal(t, 1, report.Summary.Passed)
}

func TestSeverity_JSON(t *testing.T) {
	data, err := json.Marshal(CheckResult{Name: "x", Status: SeverityWarning})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"warning"`)
	assert.Equal(t, "unknown", Severity(42).String())
}

func TestConfigFileCheck(t *testing.T) {
	tests := []struct {
		name    string
		content *string
		want    Severity
	}{
		{"missing", nil, SeverityInfo},
		{"valid", ptr(`{"active_profile": null, "profiles": {}}`), SeverityPass},
		{"dangling active", ptr(`{"active_profile": "gone", "profiles": {}}`), SeverityPass},
		{"no profiles key", ptr(`{"active_profile": null}`), SeverityError},
		{"null profiles", ptr(`{"active_profile": "A", "profiles": null}`), SeverityError},
		{"profile not an object", ptr(`{"profiles": {"A": 5}}`), SeverityError},
		{"active not a string", ptr(`{"active_profile": 7, "profiles": {}}`), SeverityError},
		{"array", ptr(`[]`), SeverityError},
		{"null", ptr(`null`), SeverityError},
		{"truncated", ptr(`{"profiles": `), SeverityError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if tt.content != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.content), 0o644))
			}
			got := (&ConfigFileCheck{Path: path}).Run()
			assert.Equal(t, tt.want, got.Status, got.Message)
			assert.Equal(t, "config-file", got.Name)
		})
	}
}

func TestActiveProfileCheck(t *testing.T) {
	base := t.TempDir()
	store := profile.Open(paths.ConfigFile(base), base)

	check := &ActiveProfileCheck{Store: store}
	assert.Equal(t, SeverityInfo, check.Run().Status)

	_, err := store.CreateProfile("game")
	require.NoError(t, err)
	got := check.Run()
	assert.Equal(t, SeverityPass, got.Status)
	assert.Equal(t, "game", got.Message)

	require.NoError(t, store.SetActiveProfile(""))
	assert.Equal(t, SeverityWarning, check.Run().Status)
}

func TestSaveFolderCheck(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	tests := []struct {
		name   string
		folder string
		want   Severity
	}{
		{"unset", "", SeverityWarning},
		{"missing", filepath.Join(dir, "nope"), SeverityWarning},
		{"file", file, SeverityError},
		{"directory", dir, SeverityPass},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&SaveFolderCheck{Profile: profile.Profile{Name: "game", SaveFolder: tt.folder}}).Run()
			assert.Equal(t, tt.want, got.Status, got.Message)
			assert.Equal(t, "save-folder:game", got.Name)
		})
	}
}

func TestBackupFolderCheck(t *testing.T) {
	newStore := func(t *testing.T) *backupset.Store {
		t.Helper()
		folder := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(folder, "save_250401_152655.sav"), []byte("x"), 0o644))
		s := backupset.New(folder)
		_, err := s.CreateSet("250401_152655", []string{"save_250401_152655.sav"}, "")
		require.NoError(t, err)
		return s
	}

	t.Run("clean", func(t *testing.T) {
		got := (&BackupFolderCheck{Profile: "game", Store: newStore(t)}).Run()
		assert.Equal(t, SeverityPass, got.Status, got.Message)
		assert.Equal(t, 1, got.Details["sets"])
	})

	t.Run("missing file", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, os.Remove(filepath.Join(s.Folder(), "save_250401_152655.sav")))
		got := (&BackupFolderCheck{Profile: "game", Store: s}).Run()
		assert.Equal(t, SeverityWarning, got.Status)
		assert.Equal(t, []string{"250401_152655"}, got.Details["incomplete"])
	})

	t.Run("untracked file", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, os.WriteFile(filepath.Join(s.Folder(), "save_250402_090000.sav"), nil, 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(s.Folder(), "notes.txt"), nil, 0o644))
		got := (&BackupFolderCheck{Profile: "game", Store: s}).Run()
		assert.Equal(t, SeverityInfo, got.Status)
		assert.Equal(t, []string{"save_250402_090000.sav"}, got.Details["untracked"])
	})

	t.Run("malformed document", func(t *testing.T) {
		folder := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(folder, backupset.DocumentName), []byte("{"), 0o644))
		got := (&BackupFolderCheck{Profile: "game", Store: backupset.New(folder)}).Run()
		assert.Equal(t, SeverityError, got.Status)
	})

	t.Run("absent folder", func(t *testing.T) {
		got := (&BackupFolderCheck{Profile: "game", Store: backupset.New(filepath.Join(t.TempDir(), "none"))}).Run()
		assert.Equal(t, SeverityPass, got.Status)
	})
}

func TestStandard(t *testing.T) {
	base := t.TempDir()
	store := profile.Open(paths.ConfigFile(base), base)
	for _, name := range []string{"a", "b"} {
		_, err := store.CreateProfile(name)
		require.NoError(t, err)
	}

	checks := Standard(paths.ConfigFile(base), store)
	var names []string
	for _, c := range checks {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{
		"config-file", "active-profile",
		"save-folder:a", "backups:a",
		"save-folder:b", "backups:b",
	}, names)
}

func ptr(s string) *string { return &s }
