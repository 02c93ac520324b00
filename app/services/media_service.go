package services

import (
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/storage"
	"golang.org/x/sync/singleflight"
)

// mediaTTL is how long a media snapshot stays fresh.
const mediaTTL = 5 * time.Minute

// mediaPrefix is the object-storage folder holding product images.
const mediaPrefix = "products/"

// Product images are named <slug>-<wooID>.<ext>, e.g. robe-fleurie-1042.webp.
var mediaNameRe = regexp.MustCompile(`^(?:products/)?([a-z0-9-]+)-(\d+)\.(jpe?g|png|webp)$`)

// MediaFile is one product image resolved from object storage.
type MediaFile struct {
	Key   string `json:"key"`
	Slug  string `json:"slug"`
	WooID int64  `json:"woo_id"`
	URL   string `json:"url"`
}

// MediaService serves the product image index. Listings are cached in memory
// for mediaTTL; concurrent refreshes collapse into a single storage call, and
// a failed refresh serves the previous snapshot rather than an error.
type MediaService struct {
	disk storage.Disk

	mu      sync.RWMutex
	files   []MediaFile
	fetched time.Time
	group   singleflight.Group
	now     func() time.Time
}

func NewMediaService(disk storage.Disk) *MediaService {
	return &MediaService{disk: disk, now: time.Now}
}

// Files returns the current image index, refreshing it when stale.
func (s *MediaService) Files() ([]MediaFile, error) {
	s.mu.RLock()
	files, fetched := s.files, s.fetched
	s.mu.RUnlock()

	if !fetched.IsZero() && s.now().Sub(fetched) < mediaTTL {
		return files, nil
	}

	fresh, err, _ := s.group.Do("media", func() (interface{}, error) {
		return s.refresh()
	})
	if err != nil {
		if !fetched.IsZero() {
			logger.Warn("media: refresh failed, serving stale index", "error", err)
			return files, nil
		}
		return nil, err
	}
	return fresh.([]MediaFile), nil
}

// ForProduct filters the index down to one product's images.
func (s *MediaService) ForProduct(wooID int64) ([]MediaFile, error) {
	files, err := s.Files()
	if err != nil {
		return nil, err
	}
	var out []MediaFile
	for _, f := range files {
		if f.WooID == wooID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *MediaService) refresh() ([]MediaFile, error) {
	keys, err := s.disk.List(mediaPrefix)
	if err != nil {
		return nil, err
	}

	files := make([]MediaFile, 0, len(keys))
	for _, key := range keys {
		file, ok := parseMediaKey(key)
		if !ok {
			continue
		}
		file.URL = s.disk.URL(key)
		files = append(files, file)
	}

	s.mu.Lock()
	s.files = files
	s.fetched = s.now()
	s.mu.Unlock()
	return files, nil
}

// parseMediaKey extracts the product slug and id from an object key. Keys
// that do not follow the naming convention are skipped.
func parseMediaKey(key string) (MediaFile, bool) {
	m := mediaNameRe.FindStringSubmatch(key)
	if m == nil {
		return MediaFile{}, false
	}
	id, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return MediaFile{}, false
	}
	return MediaFile{Key: key, Slug: m[1], WooID: id}, true
}
