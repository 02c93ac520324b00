package storage

import (
	"io"
	"sync"
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
)

var (
	managerMu   sync.RWMutex
	disks       = map[string]Disk{}
	defaultDisk string
)

// Connect boots the storage manager. Call once at application startup.
func Connect() {
	managerMu.Lock()
	defer managerMu.Unlock()

	defaultDisk = config.StorageDefault()

	// Local disk is always available.
	disks["local"] = newLocalDisk()

	// S3 boots only when a bucket is configured.
	if config.StorageS3Bucket() != "" {
		d, err := newS3Disk()
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultDisk]; !ok {
		logger.Warn("storage: configured default disk unavailable, falling back to local", "disk", defaultDisk)
		defaultDisk = "local"
	}
}

// Use returns the named disk ("local" or "s3").
func Use(name string) (Disk, bool) {
	managerMu.RLock()
	defer managerMu.RUnlock()
	d, ok := disks[name]
	return d, ok
}

// RegisterDisk plugs in a custom Disk implementation (used by tests).
func RegisterDisk(name string, d Disk) {
	managerMu.Lock()
	disks[name] = d
	managerMu.Unlock()
}

// SetDefault switches the default disk (used by tests).
func SetDefault(name string) {
	managerMu.Lock()
	defaultDisk = name
	managerMu.Unlock()
}

// Default returns the default disk.
func Default() Disk {
	managerMu.RLock()
	defer managerMu.RUnlock()
	return disks[defaultDisk]
}

// ── Default-disk helpers ─────────────────────────────────────────────────────

// Put writes content to path on the default disk.
func Put(path string, content []byte) error { return Default().Put(path, content) }

// PutStream writes from r to path on the default disk.
func PutStream(path string, r io.Reader) error { return Default().PutStream(path, r) }

// Get returns file content from the default disk.
func Get(path string) ([]byte, error) { return Default().Get(path) }

// Exists reports whether path exists on the default disk.
func Exists(path string) bool { return Default().Exists(path) }

// Delete removes path from the default disk.
func Delete(path string) error { return Default().Delete(path) }

// URL returns the public URL for path on the default disk.
func URL(path string) string { return Default().URL(path) }

// List returns all keys under prefix on the default disk.
func List(prefix string) ([]string, error) { return Default().List(prefix) }

// LastModified returns last-modified time on the default disk.
func LastModified(path string) (time.Time, error) { return Default().LastModified(path) }
