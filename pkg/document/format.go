package document

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/graphcheck/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// ParseFormat parses a format name. "yml" is accepted as YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json, yaml or toml)", s)
}

// DetectFormat infers the format from the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %s: no extension", path)
	}
	f, err := ParseFormat(ext)
	if err != nil {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %s: unknown extension %q", path, ext)
	}
	return f, nil
}

// FromMediaType maps an HTTP Content-Type to a format. Parameters such as
// charset are ignored.
func FromMediaType(mt string) (Format, bool) {
	mt, _, _ = strings.Cut(mt, ";")
	switch strings.ToLower(strings.TrimSpace(mt)) {
	case "application/json", "text/json":
		return FormatJSON, true
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, true
	case "application/toml", "text/toml":
		return FormatTOML, true
	}
	return "", false
}
