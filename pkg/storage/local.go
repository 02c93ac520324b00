package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/config"
)

// localDisk stores objects on the local filesystem under a root directory.
// It is the dev default; production uses the s3 driver.
type localDisk struct {
	root    string
	baseURL string
}

func newLocalDisk() *localDisk {
	return &localDisk{
		root:    config.StorageLocalRoot(),
		baseURL: strings.TrimRight(config.StorageURL(), "/"),
	}
}

func (d *localDisk) fullPath(path string) string {
	return filepath.Join(d.root, filepath.FromSlash(strings.TrimLeft(path, "/")))
}

func (d *localDisk) Put(path string, content []byte) error {
	full := d.fullPath(path)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	if err := os.WriteFile(full, content, 0o644); err != nil {
		return fmt.Errorf("storage/local: write %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) PutStream(path string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("storage/local: read: %w", err)
	}
	return d.Put(path, data)
}

func (d *localDisk) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(d.fullPath(path))
	if err != nil {
		return nil, fmt.Errorf("storage/local: read %s: %w", path, err)
	}
	return data, nil
}

func (d *localDisk) GetStream(path string) (io.ReadCloser, error) {
	f, err := os.Open(d.fullPath(path))
	if err != nil {
		return nil, fmt.Errorf("storage/local: open %s: %w", path, err)
	}
	return f, nil
}

func (d *localDisk) Exists(path string) bool {
	_, err := os.Stat(d.fullPath(path))
	return err == nil
}

func (d *localDisk) Delete(path string) error {
	if err := os.Remove(d.fullPath(path)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", path, err)
	}
	return nil
}

func (d *localDisk) URL(path string) string {
	return d.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (d *localDisk) List(prefix string) ([]string, error) {
	base := d.fullPath(prefix)

	var keys []string
	err := filepath.WalkDir(base, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return filepath.SkipAll
			}
			return err
		}
		if entry.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage/local: list %s: %w", prefix, err)
	}
	return keys, nil
}

func (d *localDisk) LastModified(path string) (time.Time, error) {
	info, err := os.Stat(d.fullPath(path))
	if err != nil {
		return time.Time{}, fmt.Errorf("storage/local: stat %s: %w", path, err)
	}
	return info.ModTime(), nil
}
