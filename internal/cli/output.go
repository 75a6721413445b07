// Package cli provides output encoding and interactive pickers shared by
// the savekeep commands.
package cli

import (
	"encoding/json"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/savekeep/internal/errors"
)

// Format is a structured output format.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned for an unsupported --format value.
var ErrUnknownFormat = errors.New("unknown format")

// Formats lists the supported formats for help text.
func Formats() []string {
	return []string{string(FormatYAML), string(FormatTOML), string(FormatJSON)}
}

// ParseFormat parses a --format value. Matching is case-insensitive and
// "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.Wrapf(ErrUnknownFormat, "%q (want one of %s)", s, strings.Join(Formats(), ", "))
}

// Encode writes v to w in the given format. JSON is indented with two
// spaces like the documents savekeep stores.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "encoding json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(enc.Close(), "encoding yaml")
	case FormatTOML:
		return errors.Wrap(toml.NewEncoder(w).Encode(v), "encoding toml")
	}
	return errors.Wrapf(ErrUnknownFormat, "%q", format)
}
