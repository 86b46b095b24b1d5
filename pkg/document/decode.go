package document

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/graphcheck/pkg/errors"
	"github.com/matzehuels/graphcheck/pkg/observability"
)

// Options configures decoding.
type Options struct {
	// YAMLNodes returns the *yaml.Node tree instead of plain values.
	YAMLNodes bool
}

// Decode reads one document from r. An empty YAML document decodes to nil;
// empty JSON and trailing JSON data are errors.
func Decode(ctx context.Context, r io.Reader, format Format, opts Options) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s document", format)
	}
	return DecodeBytes(ctx, data, format, opts)
}

// DecodeBytes decodes data as a single document of the given format.
func DecodeBytes(ctx context.Context, data []byte, format Format, opts Options) (any, error) {
	start := time.Now()
	v, err := decode(data, format, opts)
	observability.Documents().OnDocumentDecoded(ctx, string(format), len(data), time.Since(start), err)
	return v, err
}

func decode(data []byte, format Format, opts Options) (any, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data, opts.YAMLNodes)
	case FormatTOML:
		return decodeTOML(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "decode json: unexpected data after top-level value")
	}
	return v, nil
}

func decodeYAML(data []byte, nodes bool) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if nodes {
		var n yaml.Node
		if err := dec.Decode(&n); err != nil {
			if err == io.EOF {
				return nil, nil
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
		return &n, nil
	}

	var v any
	if err := dec.Decode(&v); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
	}
	return v, nil
}

func decodeTOML(data []byte) (any, error) {
	var v map[string]any
	if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
	}
	return v, nil
}
