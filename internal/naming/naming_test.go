package naming

import (
	"testing"
	"time"

	"github.com/thoreinstein/savekeep/internal/errors"
	"github.com/thoreinstein/savekeep/internal/timestamp"
)

func TestToBackupName(t *testing.T) {
	tests := []struct {
		name     string
		original string
		token    string
		want     string
	}{
		{"simple", "save.sav", "250401_152655", "save_250401_152655.sav"},
		{"no extension", "save", "250401_152655", "save_250401_152655"},
		{"multiple dots", "world.meta.xml", "250401_152655", "world.meta_250401_152655.xml"},
		{"dotfile", ".profile", "250401_152655", "_250401_152655.profile"},
		{"trailing dot", "save.", "250401_152655", "save_250401_152655."},
		{"spaces", "slot 1.dat", "250401_152655", "slot 1_250401_152655.dat"},
		{"unicode", "세이브.sav", "250401_152655", "세이브_250401_152655.sav"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToBackupName(tt.original, tt.token); got != tt.want {
				t.Errorf("ToBackupName(%q, %q) = %q, want %q", tt.original, tt.token, got, tt.want)
			}
		})
	}
}

func TestToOriginalName(t *testing.T) {
	tests := []struct {
		name   string
		backup string
		want   string
	}{
		{"current width", "save_250401_152655.sav", "save.sav"},
		{"legacy width", "save_250401_1526.sav", "save.sav"},
		{"no extension", "save_250401_152655", "save"},
		{"multiple dots", "world.meta_250401_152655.xml", "world.meta.xml"},
		{"underscored stem", "my_save_file_250401_152655.sav", "my_save_file.sav"},
		{"only one group stripped", "save_250401_152655_250402_101010.sav", "save_250401_152655.sav"},
		// Accepted false positive: the original stem looked like a token.
		{"token-shaped original", "log_123456_789012_250401_152655.txt", "log_123456_789012.txt"},
		{"dotfile", "_250401_152655.profile", ".profile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToOriginalName(tt.backup)
			if err != nil {
				t.Fatalf("ToOriginalName(%q) error = %v", tt.backup, err)
			}
			if got != tt.want {
				t.Errorf("ToOriginalName(%q) = %q, want %q", tt.backup, got, tt.want)
			}
		})
	}
}

func TestToOriginalName_Errors(t *testing.T) {
	tests := []struct {
		name   string
		backup string
	}{
		{"plain name", "save.sav"},
		{"no underscore before token", "save250401_152655.sav"},
		{"twelve digit token", "save_250401_15265.sav"},
		{"fourteen digit token", "save_250401_1526551.sav"},
		{"token in extension", "save.250401_152655"},
		{"letters in token", "save_25040a_152655.sav"},
		{"empty", ""},
		{"token only without underscore", "250401_152655.sav"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToOriginalName(tt.backup)
			if err == nil {
				t.Fatalf("ToOriginalName(%q) = %q, want error", tt.backup, got)
			}
			if !errors.Is(err, errors.ErrNameFormat) {
				t.Errorf("ToOriginalName(%q) error = %v, want ErrNameFormat", tt.backup, err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	names := []string{
		"save.sav",
		"save",
		"a.b.c.d",
		".hidden",
		"save.",
		"x",
		"slot_1.dat",
		"slot_2024.dat",
		"autosave_000000_0000.bin",
		"player data (1).json",
	}
	base := time.Date(2025, time.April, 1, 15, 26, 55, 0, time.Local)
	for _, name := range names {
		for i := range 5 {
			token := timestamp.Render(base.Add(time.Duration(i) * 26 * time.Hour))
			backup := ToBackupName(name, token)
			got, err := ToOriginalName(backup)
			if err != nil {
				t.Errorf("ToOriginalName(%q) error = %v", backup, err)
				continue
			}
			if got != name {
				t.Errorf("round trip %q -> %q -> %q", name, backup, got)
			}
		}
	}
}

func TestTokenOf(t *testing.T) {
	got, err := TokenOf("save_250401_152655.sav")
	if err != nil {
		t.Fatalf("TokenOf() error = %v", err)
	}
	if got != "250401_152655" {
		t.Errorf("TokenOf() = %q, want %q", got, "250401_152655")
	}

	got, err = TokenOf("save_250401_1526.sav")
	if err != nil {
		t.Fatalf("TokenOf() legacy error = %v", err)
	}
	if got != "250401_1526" {
		t.Errorf("TokenOf() legacy = %q", got)
	}

	if _, err := TokenOf("save.sav"); !errors.Is(err, errors.ErrNameFormat) {
		t.Errorf("TokenOf(save.sav) error = %v, want ErrNameFormat", err)
	}
}
