package utils

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// SaveTempUpload writes an uploaded file to a uniquely named file under the
// OS temp directory and returns its path. The caller owns the file and must
// remove it on every exit path.
func SaveTempUpload(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	ext := filepath.Ext(fh.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	path := filepath.Join(os.TempDir(), fmt.Sprintf("scan-%s%s", uuid.New().String(), ext))

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	return path, nil
}

// RemoveTempUpload deletes a temp upload. Failures are logged but never
// surfaced to the caller.
func RemoveTempUpload(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove temp upload %s: %v", path, err)
	}
}
