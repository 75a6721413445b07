package timestamp

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/savekeep/internal/errors"
)

func TestRender(t *testing.T) {
	ts := time.Date(2025, time.April, 1, 15, 26, 55, 0, time.Local)
	assert.Equal(t, "250401_152655", Render(ts))
}

func TestRender_ZeroPadded(t *testing.T) {
	ts := time.Date(2003, time.January, 2, 3, 4, 5, 0, time.Local)
	got := Render(ts)
	assert.Equal(t, "030102_030405", got)
	assert.Len(t, got, Width)
}

func TestNow_Width(t *testing.T) {
	got := Now()
	assert.Len(t, got, 13)
	assert.True(t, Valid(got), "Now() = %q should be valid", got)
}

func TestParse(t *testing.T) {
	got, err := Parse("250401_152655")
	require.NoError(t, err)
	want := time.Date(2025, time.April, 1, 15, 26, 55, 0, time.Local)
	assert.True(t, got.Equal(want), "Parse() = %v, want %v", got, want)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"legacy width", "250401_1526"},
		{"month 13", "251301_152655"},
		{"day 32", "250432_152655"},
		{"hour 25", "250401_252655"},
		{"minute 60", "250401_156055"},
		{"missing underscore", "2504011526550"},
		{"letters", "25o401_152655"},
		{"too long", "250401_1526550"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.token)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrFormat), "error %v should be ErrFormat", err)
		})
	}
}

func TestParseAny(t *testing.T) {
	got, err := ParseAny("250401_1526")
	require.NoError(t, err)
	want := time.Date(2025, time.April, 1, 15, 26, 0, 0, time.Local)
	assert.True(t, got.Equal(want), "ParseAny() = %v, want %v", got, want)

	got, err = ParseAny("250401_152655")
	require.NoError(t, err)
	assert.Equal(t, 55, got.Second())

	_, err = ParseAny("250401_15265")
	assert.True(t, errors.Is(err, errors.ErrFormat))

	_, err = ParseAny("259901_1526")
	assert.True(t, errors.Is(err, errors.ErrFormat))
}

func TestRenderParse_RoundTrip(t *testing.T) {
	base := time.Date(2024, time.February, 29, 23, 59, 59, 0, time.Local)
	for i := range 50 {
		ts := base.Add(time.Duration(i) * 37 * time.Hour)
		got, err := Parse(Render(ts))
		require.NoError(t, err)
		assert.True(t, got.Equal(ts), "round trip of %v gave %v", ts, got)
	}
}

func TestLexicalOrderIsChronological(t *testing.T) {
	base := time.Date(2025, time.December, 31, 23, 59, 58, 0, time.Local)
	var tokens []string
	for i := range 20 {
		tokens = append(tokens, Render(base.Add(time.Duration(i*i)*time.Second)))
	}
	sorted := append([]string(nil), tokens...)
	sort.Strings(sorted)
	assert.Equal(t, tokens, sorted)
}

func TestHumanDate(t *testing.T) {
	got, err := HumanDate("250401_152655")
	require.NoError(t, err)
	assert.Equal(t, "2025-04-01 15:26:55", got)

	_, err = HumanDate("nope")
	assert.True(t, errors.Is(err, errors.ErrFormat))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("000000_000000"))
	assert.False(t, Valid("000000_0000"))
	assert.True(t, ValidLegacy("000000_0000"))
	assert.False(t, ValidLegacy("000000-0000"))
}
