package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a temporary upload no longer exists.
var ErrNotFound = errors.New("temporary upload not found")

// TempStore holds uploaded images just long enough for a remote engine to fetch them.
type TempStore interface {
	Name() string
	Setup(ctx context.Context) error
	Close() error

	// Save writes contents under a new unique key derived from the original filename.
	Save(ctx context.Context, filename string, contentType string, contents []byte) (string, error)
	// URL is the publicly reachable address of key.
	URL(key string) string
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes key, a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// NewTempKey builds a collision free key of the form <uuid>-<filename>.
func NewTempKey(filename string) string {
	return uuid.NewString() + "-" + SafeFilename(filename)
}

// SafeFilename strips any directory components from a client supplied filename.
func SafeFilename(filename string) string {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(filename), "\\", "/"))
	switch name {
	case "", ".", "..", "/":
		return "image"
	}
	return name
}

// IsValidKey rejects keys that could escape the store's namespace.
func IsValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, "/\\")
}
