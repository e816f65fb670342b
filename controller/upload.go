package controller

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RayyanKhan4004/PEMPAK-api/apperror"
	"github.com/RayyanKhan4004/PEMPAK-api/storage"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

type UploadController struct {
	Store storage.Store
}

func NewUploadController(store storage.Store) *UploadController {
	return &UploadController{Store: store}
}

// Upload proxies a multipart image (field name "image") to the remote store
// and returns its stored reference.
func (uc *UploadController) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, apperror.New(apperror.Validation, "No file uploaded"))
		return
	}

	if file.Size > maxUploadSize {
		respondError(c, apperror.New(apperror.Validation, "File exceeds limit of 5MB"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if !allowedExtensions[ext] || !strings.HasPrefix(contentType, "image/") {
		respondError(c, apperror.New(apperror.Validation, "Only image files are allowed (jpg, jpeg, png, gif, webp)"))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Error reading uploaded file", err))
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		respondError(c, apperror.Wrap(apperror.Internal, "Error reading uploaded file", err))
		return
	}

	result, err := uc.Store.Upload(c.Request.Context(), data, "uploads")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"imageUrl":  result.URL,
		"public_id": result.PublicID,
	})
}
