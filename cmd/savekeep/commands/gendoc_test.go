package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenDoc(t *testing.T) {
	dir := t.TempDir()
	if err := genDocCmd.Flags().Set("dir", dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = genDocCmd.Flags().Set("dir", "") })
	genDocCmd.SetOut(&strings.Builder{})

	if err := genDocCmd.RunE(genDocCmd, nil); err != nil {
		t.Fatalf("gen-doc error = %v", err)
	}

	for _, name := range []string{"savekeep.md", "savekeep_restore.md", "savekeep_backup_create.md"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(string(data), "---\ntitle: ") {
			t.Errorf("%s lacks title header", name)
		}
	}
}

func TestFilePrepender(t *testing.T) {
	got := filePrepender("/tmp/docs/savekeep_backup_create.md")
	if !strings.Contains(got, `title: "savekeep backup create"`) {
		t.Errorf("filePrepender() = %q", got)
	}
}
