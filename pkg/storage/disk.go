// Package storage abstracts object storage behind a disk manager.
//
// Two drivers ship: "local" (filesystem, dev default) and "s3"
// (S3-compatible: AWS, MinIO, R2, Spaces). Product images live under the
// "products/" prefix; the media service lists that prefix to build its
// filename cache.
package storage

import (
	"io"
	"time"
)

// Disk is the object-storage driver contract.
type Disk interface {
	// Put writes content at path, overwriting any existing object.
	Put(path string, content []byte) error
	// PutStream writes from r at path.
	PutStream(path string, r io.Reader) error
	// Get returns the object content.
	Get(path string) ([]byte, error)
	// GetStream returns a reader over the object content.
	GetStream(path string) (io.ReadCloser, error)
	// Exists reports whether an object is present at path.
	Exists(path string) bool
	// Delete removes the object at path.
	Delete(path string) error
	// URL returns the public URL for path.
	URL(path string) string
	// List returns all object keys under prefix, recursively.
	List(prefix string) ([]string, error)
	// LastModified returns the object's last-modified time.
	LastModified(path string) (time.Time, error)
}
