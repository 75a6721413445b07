package fileutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thoreinstein/savekeep/internal/errors"
)

func TestAtomicWriteFile(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		perm os.FileMode
	}{
		{"text", []byte("hello world\n"), 0o644},
		{"empty", []byte{}, 0o644},
		{"binary private", []byte{0x00, 0x01, 0xFF}, 0o600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "doc")

			if err := AtomicWriteFile(path, tt.data, tt.perm); err != nil {
				t.Fatalf("AtomicWriteFile() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("reading file: %v", err)
			}
			if string(got) != string(tt.data) {
				t.Errorf("content = %q, want %q", got, tt.data)
			}
			info, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if info.Mode().Perm() != tt.perm {
				t.Errorf("permissions = %o, want %o", info.Mode().Perm(), tt.perm)
			}
		})
	}
}

func TestAtomicWriteFile_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	err := AtomicWriteFile(filepath.Join(dir, "missing", "doc"), []byte("x"), 0o600)
	if !errors.Is(err, errors.ErrIO) {
		t.Fatalf("AtomicWriteFile() error = %v, want ErrIO", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestAtomicWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := AtomicWriteJSON(path, map[string]int{"count": 42}); err != nil {
		t.Fatalf("AtomicWriteJSON() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "{\n  \"count\": 42\n}\n"; string(got) != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}

func TestAtomicWriteJSON_Unmarshalable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := AtomicWriteJSON(path, make(chan int)); err == nil {
		t.Fatal("AtomicWriteJSON() expected error for channel value")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("document should not be created on marshal failure")
	}
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing", func(t *testing.T) {
		_, err := ReadDocument(filepath.Join(dir, "absent.json"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("ReadDocument() error = %v, want not-exist", err)
		}
	})

	t.Run("small", func(t *testing.T) {
		path := filepath.Join(dir, "small.json")
		if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
		got, err := ReadDocument(path)
		if err != nil {
			t.Fatalf("ReadDocument() error = %v", err)
		}
		if string(got) != "{}" {
			t.Errorf("ReadDocument() = %q", got)
		}
	})

	t.Run("too large", func(t *testing.T) {
		path := filepath.Join(dir, "large.json")
		if err := os.WriteFile(path, make([]byte, MaxDocumentSize+1), 0o600); err != nil {
			t.Fatal(err)
		}
		_, err := ReadDocument(path)
		if !errors.Is(err, ErrFileTooLarge) {
			t.Errorf("ReadDocument() error = %v, want ErrFileTooLarge", err)
		}
		if !errors.Is(err, errors.ErrIO) {
			t.Errorf("ReadDocument() error = %v, want ErrIO", err)
		}
	})
}

func TestBackupCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "save.sav")
	content := []byte("slot data")
	if err := os.WriteFile(src, content, 0o640); err != nil {
		t.Fatal(err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(src, old, old); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(t.TempDir(), "nested", "dir", "save_250401_152655.sav")
	before := time.Now().Add(-time.Second)
	if err := BackupCopy(src, dst); err != nil {
		t.Fatalf("BackupCopy() error = %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != string(content) {
		t.Errorf("content = %q, want %q", got, content)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o640 {
		t.Errorf("permissions = %o, want 640", info.Mode().Perm())
	}
	if info.ModTime().Before(before) {
		t.Errorf("mtime = %v, want copy time (after %v)", info.ModTime(), before)
	}
}

func TestBackupCopy_Overwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "b")
	if err := os.WriteFile(src, []byte("new"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("old and longer"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := BackupCopy(src, dst); err != nil {
		t.Fatalf("BackupCopy() error = %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "new" {
		t.Errorf("content = %q, want %q", got, "new")
	}
}

func TestCopy_SourceNotFound(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out")

	for name, fn := range map[string]func(string, string) error{
		"backup":  BackupCopy,
		"restore": RestoreCopy,
	} {
		t.Run(name, func(t *testing.T) {
			err := fn(filepath.Join(dir, "missing.sav"), dst)
			if !errors.Is(err, errors.ErrSourceNotFound) {
				t.Errorf("error = %v, want ErrSourceNotFound", err)
			}
			if _, err := os.Stat(dst); !os.IsNotExist(err) {
				t.Error("destination should not be created")
			}
		})
	}
}

func TestCopy_SourceIsDirectory(t *testing.T) {
	dir := t.TempDir()
	err := RestoreCopy(dir, filepath.Join(t.TempDir(), "out"))
	if !errors.Is(err, errors.ErrSourceNotFound) {
		t.Errorf("error = %v, want ErrSourceNotFound", err)
	}
}

func TestRestoreCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "save_250401_152655.sav")
	if err := os.WriteFile(src, []byte("backup"), 0o600); err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(t.TempDir(), "saves", "save.sav")
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dst, []byte("current progress"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := RestoreCopy(src, dst); err != nil {
		t.Fatalf("RestoreCopy() error = %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "backup" {
		t.Errorf("content = %q, want %q", got, "backup")
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	if err := os.WriteFile(file, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if !Exists(file) {
		t.Error("Exists(file) = false")
	}
	if Exists(dir) {
		t.Error("Exists(dir) = true")
	}
	if Exists(filepath.Join(dir, "nope")) {
		t.Error("Exists(missing) = true")
	}
}
