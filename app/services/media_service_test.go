package services

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDisk serves a canned listing and counts calls.
type fakeDisk struct {
	keys  []string
	err   error
	lists int
}

func (d *fakeDisk) Put(string, []byte) error             { return nil }
func (d *fakeDisk) PutStream(string, io.Reader) error    { return nil }
func (d *fakeDisk) Get(string) ([]byte, error)           { return nil, nil }
func (d *fakeDisk) GetStream(string) (io.ReadCloser, error) { return nil, nil }
func (d *fakeDisk) Exists(string) bool                   { return false }
func (d *fakeDisk) Delete(string) error                  { return nil }
func (d *fakeDisk) URL(path string) string               { return "https://cdn.example.com/" + path }
func (d *fakeDisk) LastModified(string) (time.Time, error) { return time.Time{}, nil }

func (d *fakeDisk) List(prefix string) ([]string, error) {
	d.lists++
	if d.err != nil {
		return nil, d.err
	}
	return d.keys, nil
}

func TestParseMediaKey(t *testing.T) {
	file, ok := parseMediaKey("products/robe-fleurie-1042.webp")
	require.True(t, ok)
	assert.Equal(t, "robe-fleurie", file.Slug)
	assert.Equal(t, int64(1042), file.WooID)

	// Prefix is optional, extension set is fixed.
	_, ok = parseMediaKey("jupe-7.jpeg")
	assert.True(t, ok)

	for _, bad := range []string{
		"products/robe-fleurie.webp", // no id
		"products/Robe-1042.webp",    // uppercase slug
		"products/robe-1042.gif",     // unsupported extension
		"banners/robe-1042.webp",     // wrong folder
		"robe-1042",                  // no extension
	} {
		_, ok := parseMediaKey(bad)
		assert.False(t, ok, "key %s", bad)
	}
}

func TestFilesBuildsIndexAndSkipsForeignKeys(t *testing.T) {
	disk := &fakeDisk{keys: []string{
		"products/robe-fleurie-1042.webp",
		"products/jupe-7.png",
		"products/.DS_Store",
		"products/readme.txt",
	}}
	svc := NewMediaService(disk)

	files, err := svc.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "https://cdn.example.com/products/robe-fleurie-1042.webp", files[0].URL)
}

func TestFilesSnapshotExpiresAfterTTL(t *testing.T) {
	disk := &fakeDisk{keys: []string{"products/jupe-7.png"}}
	svc := NewMediaService(disk)

	now := time.Now()
	svc.now = func() time.Time { return now }

	_, err := svc.Files()
	require.NoError(t, err)
	_, err = svc.Files()
	require.NoError(t, err)
	assert.Equal(t, 1, disk.lists, "fresh snapshot must not relist")

	now = now.Add(mediaTTL + time.Second)
	_, err = svc.Files()
	require.NoError(t, err)
	assert.Equal(t, 2, disk.lists)
}

func TestFilesServesStaleOnRefreshError(t *testing.T) {
	disk := &fakeDisk{keys: []string{"products/jupe-7.png"}}
	svc := NewMediaService(disk)

	now := time.Now()
	svc.now = func() time.Time { return now }

	files, err := svc.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)

	// Storage breaks, snapshot goes stale: the old index keeps serving.
	disk.err = errors.New("s3 is down")
	now = now.Add(mediaTTL + time.Second)

	files, err = svc.Files()
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestFilesErrorsWithoutAnySnapshot(t *testing.T) {
	svc := NewMediaService(&fakeDisk{err: errors.New("s3 is down")})
	_, err := svc.Files()
	assert.Error(t, err)
}

func TestForProductFiltersByExternalID(t *testing.T) {
	disk := &fakeDisk{keys: []string{
		"products/robe-fleurie-1042.webp",
		"products/robe-fleurie-2-1042.webp",
		"products/jupe-7.png",
	}}
	svc := NewMediaService(disk)

	files, err := svc.ForProduct(1042)
	require.NoError(t, err)
	assert.Len(t, files, 2)
}
