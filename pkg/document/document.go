package document

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/graphcheck/pkg/cache"
	"github.com/matzehuels/graphcheck/pkg/errors"
)

// Document is a decoded file or request body.
type Document struct {
	Source string
	Format Format
	Size   int
	Hash   string // SHA-256 of the raw bytes, hex encoded
	Value  any
}

// Load reads and decodes the file at path. An empty format is detected from
// the file extension.
func Load(ctx context.Context, path string, format Format, opts Options) (*Document, error) {
	if format == "" {
		f, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = f
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "load %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "load %s", path)
	}
	return Parse(ctx, path, data, format, opts)
}

// Read decodes a document read from r, labelled source.
func Read(ctx context.Context, source string, r io.Reader, format Format, opts Options) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", source)
	}
	return Parse(ctx, source, data, format, opts)
}

// Parse decodes data as a document labelled source.
func Parse(ctx context.Context, source string, data []byte, format Format, opts Options) (*Document, error) {
	v, err := DecodeBytes(ctx, data, format, opts)
	if err != nil {
		return nil, err
	}
	return &Document{
		Source: source,
		Format: format,
		Size:   len(data),
		Hash:   Hash(data),
		Value:  v,
	}, nil
}

// Hash computes a SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string { return cache.Hash(data) }
