package libs

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"intershop/config"

	"github.com/gin-gonic/gin"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// SaveUploadedImage writes an uploaded image under the configured upload
// directory and returns its relative path.
func SaveUploadedImage(c *gin.Context, header *multipart.FileHeader, subDir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("unsupported image format, only .jpg .jpeg .png .gif .webp are allowed")
	}

	if header.Size > config.AppConfig.MaxUploadSize {
		return "", fmt.Errorf("file too large (max %d bytes)", config.AppConfig.MaxUploadSize)
	}

	folder := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(folder, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %v", err)
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	path := filepath.Join(folder, filename)

	if err := c.SaveUploadedFile(header, path); err != nil {
		return "", fmt.Errorf("failed to save file: %v", err)
	}

	return path, nil
}
