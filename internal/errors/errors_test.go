package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrProfileNotFound, ExitUser),
			want: "profile not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading sets: %w", ErrParse), ExitSystem),
			want: "loading sets: malformed document",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrDuplicateName, ExitUser),
			wantTarget: ErrDuplicateName,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(Wrap(ErrNameFormat, "restoring"), ExitUser),
			wantTarget: ErrNameFormat,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrIO, ExitSystem),
			wantTarget: ErrParse,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrIO,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("errors.Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestMark_KeepsCause(t *testing.T) {
	_, statErr := os.Stat("/definitely/not/here")
	err := IOError(statErr, "reading document")

	if !Is(err, ErrIO) {
		t.Error("IOError result should match ErrIO")
	}
	if !Is(err, os.ErrNotExist) {
		t.Error("IOError result should keep the original cause")
	}
	if Is(err, ErrParse) {
		t.Error("IOError result should not match ErrParse")
	}
}

func TestIOError_Nil(t *testing.T) {
	if err := IOError(nil, "noop"); err != nil {
		t.Errorf("IOError(nil) = %v, want nil", err)
	}
	if err := ParseError(nil, "noop"); err != nil {
		t.Errorf("ParseError(nil) = %v, want nil", err)
	}
}

func TestParseError(t *testing.T) {
	err := ParseError(New("unexpected end of JSON input"), "parsing backup_sets.json")
	if !Is(err, ErrParse) {
		t.Error("ParseError result should match ErrParse")
	}
	want := "parsing backup_sets.json: unexpected end of JSON input"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"parse is system", ParseError(New("bad"), "x"), ExitSystem},
		{"io is system", IOError(New("disk"), "x"), ExitSystem},
		{"duplicate is user", Wrap(ErrDuplicateName, "creating"), ExitUser},
		{"no active profile is user", ErrNoActiveProfile, ExitUser},
		{"plain error is user", New("something"), ExitUser},
		{"existing exit error kept", NewSystemError(New("x"), "y"), ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got == nil {
				t.Fatal("Classify() returned nil")
			}
			if got.Code != tt.wantCode {
				t.Errorf("Classify().Code = %d, want %d", got.Code, tt.wantCode)
			}
		})
	}

	if Classify(nil) != nil {
		t.Error("Classify(nil) should be nil")
	}
}

func TestClassify_Suggestion(t *testing.T) {
	got := Classify(Wrap(ErrNoActiveProfile, "backup"))
	if got.Suggestion != "Run: savekeep profile use <name>" {
		t.Errorf("Suggestion = %q", got.Suggestion)
	}
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrSourceNotFound", ErrSourceNotFound, "source not found"},
		{"ErrIO", ErrIO, "i/o failure"},
		{"ErrParse", ErrParse, "malformed document"},
		{"ErrFormat", ErrFormat, "invalid timestamp token"},
		{"ErrNameFormat", ErrNameFormat, "invalid backup file name"},
		{"ErrDuplicateName", ErrDuplicateName, "profile already exists"},
		{"ErrDuplicateSource", ErrDuplicateSource, "duplicate backup name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitUser", ExitUser, 1},
		{"ExitSystem", ExitSystem, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.want)
			}
		})
	}
}
