package helpers

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UploadRoute is where uploaded images are served from.
const UploadRoute = "/uploads"

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
	UploadBasePath   string
}

var DefaultImageUploadConfig = UploadConfig{
	MaxSizeBytes: 5 * 1024 * 1024, // 5MB
	AllowedMimeTypes: []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	},
	UploadBasePath: "./uploads/",
}

// ImageUploadConfig returns the default image rules rooted at basePath.
func ImageUploadConfig(basePath string) UploadConfig {
	cfg := DefaultImageUploadConfig
	if basePath != "" {
		cfg.UploadBasePath = basePath
	}
	return cfg
}

// UploadFile stores fileHeader under uploadType and returns the URL path it
// is served from.
func UploadFile(c *gin.Context, fileHeader *multipart.FileHeader, uploadType string, configs ...UploadConfig) (string, error) {
	config := DefaultImageUploadConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	if fileHeader.Size > config.MaxSizeBytes {
		return "", fmt.Errorf("file size exceeds maximum limit of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil {
		return "", err
	}
	mimeType := http.DetectContentType(buffer[:n])

	mimeTypeAllowed := false
	for _, allowedType := range config.AllowedMimeTypes {
		if mimeType == allowedType {
			mimeTypeAllowed = true
			break
		}
	}
	if !mimeTypeAllowed {
		return "", fmt.Errorf("invalid file type. Allowed types: %s", strings.Join(config.AllowedMimeTypes, ", "))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))

	uploadPath := filepath.Join(config.UploadBasePath, uploadType)
	if err := os.MkdirAll(uploadPath, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)
	if err := c.SaveUploadedFile(fileHeader, filepath.Join(uploadPath, filename)); err != nil {
		return "", err
	}

	return path.Join(UploadRoute, uploadType, filename), nil
}

// DeleteUpload removes a file previously returned by UploadFile. Links that
// do not point into the upload area are ignored.
func DeleteUpload(link, basePath string) error {
	if !strings.HasPrefix(link, UploadRoute+"/") {
		return nil
	}
	rel := strings.TrimPrefix(link, UploadRoute+"/")
	return os.Remove(filepath.Join(basePath, filepath.FromSlash(rel)))
}
