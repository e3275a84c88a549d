package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"shopapi/config"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func isAllowedImageExtension(ext string) bool {
	return allowedImageExtensions[strings.ToLower(ext)]
}

// SavedFile describes a stored upload.
type SavedFile struct {
	Path             string
	Filename         string
	OriginalFilename string
	Extension        string
	Size             int64
}

// SaveUploadedFile stores an uploaded image under the configured upload
// directory with a generated filename and returns its stored details.
func SaveUploadedFile(file *multipart.FileHeader) (*SavedFile, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !isAllowedImageExtension(ext) {
		return nil, fmt.Errorf("file extension %q is not allowed", ext)
	}
	if file.Size > config.AppConfig.MaxUploadSize {
		return nil, fmt.Errorf("file size %d exceeds limit of %d bytes", file.Size, config.AppConfig.MaxUploadSize)
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	destDir := config.AppConfig.UploadDir
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return nil, err
	}

	newFilename := uuid.NewString() + ext
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, err
	}

	return &SavedFile{
		Path:             filePath,
		Filename:         newFilename,
		OriginalFilename: file.Filename,
		Extension:        ext,
		Size:             file.Size,
	}, nil
}

// DeleteUploadedFile removes a stored file. Missing files are not an error.
func DeleteUploadedFile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
