package object

import (
	"context"
	"errors"
	"io"
	"path"
)

// ErrNotFound is returned by Open when no object exists under the key.
var ErrNotFound = errors.New("object not found")

// TempPrefix namespaces generated outputs away from permanently saved uploads.
const TempPrefix = "temp"

// ObjectStore defines the contract for saving and retrieving binary objects.
// Keys are slash-separated and already sanitized by the caller.
type ObjectStore interface {
	Save(ctx context.Context, key string, contentType string, r io.Reader) (sizeBytes int64, err error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// PermanentKey is the key an uploaded file is kept under.
func PermanentKey(fileName string) string {
	return fileName
}

// TempKey is the key a generated output is kept under.
func TempKey(fileName string) string {
	return path.Join(TempPrefix, fileName)
}
