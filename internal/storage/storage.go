// Package storage keeps uploaded image files and their thumbnails.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidName is returned for names that are empty or contain path separators.
var ErrInvalidName = errors.New("invalid file name")

// Store saves and serves files by flat name. Missing files are reported
// with an error matching fs.ErrNotExist.
type Store interface {
	// Save stores data under name, or under a suffixed variant of name when
	// name is taken, and returns the name actually used.
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Put stores data under name, replacing any existing file.
	Put(ctx context.Context, name string, data []byte) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
	List(ctx context.Context) ([]string, error)
}

// uniqueName appends a short random suffix before the extension.
func uniqueName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + "_" + randomHex() + ext
}

// GeneratedName returns a random base name with the given extension, for
// uploads whose own name has nothing usable left after sanitizing.
func GeneratedName(ext string) string {
	return randomHex() + ext
}

func randomHex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
