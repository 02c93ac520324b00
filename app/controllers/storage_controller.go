package controllers

import (
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/webproformation/LaboutiqueOK-sub001/app/services"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/logger"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/response"
	"github.com/webproformation/LaboutiqueOK-sub001/pkg/storage"
)

// maxUploadSize caps product image uploads at 10 MiB.
const maxUploadSize = 10 << 20

// StorageController handles product image uploads and serves the media
// index built from object storage listings.
type StorageController struct {
	disk  storage.Disk
	media *services.MediaService
}

func NewStorageController(disk storage.Disk) *StorageController {
	return &StorageController{
		disk:  disk,
		media: services.NewMediaService(disk),
	}
}

// Upload stores one multipart file under products/. The client names the
// object; anything outside the products folder or with a path traversal is
// rejected.
func (c *StorageController) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	name := path.Base(header.Filename)
	if name == "" || name == "." || name == "/" || strings.Contains(name, "..") {
		response.Error(w, http.StatusBadRequest, "invalid file name")
		return
	}
	key := "products/" + name

	if err := c.disk.PutStream(key, file); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, map[string]interface{}{
		"success": true,
		"key":     key,
		"url":     c.disk.URL(key),
	})
}

// Media lists the product image index. Optional ?woo_id= filters to one
// product's images. A storage failure with no snapshot to fall back on
// degrades to an empty listing, never a 500.
func (c *StorageController) Media(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("woo_id"); raw != "" {
		wooID, ok := parseInt64(raw)
		if !ok {
			response.Error(w, http.StatusBadRequest, "invalid woo_id")
			return
		}
		files, err := c.media.ForProduct(wooID)
		if err != nil {
			logger.Error("media: listing failed", "error", err)
			response.Degraded(w, []services.MediaFile{})
			return
		}
		if files == nil {
			files = []services.MediaFile{}
		}
		response.Success(w, files)
		return
	}

	files, err := c.media.Files()
	if err != nil {
		logger.Error("media: listing failed", "error", err)
		response.Degraded(w, []services.MediaFile{})
		return
	}
	if files == nil {
		files = []services.MediaFile{}
	}
	response.Success(w, files)
}

func parseInt64(raw string) (int64, bool) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
