package service

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// UploadService stores uploaded images on local disk and hands back the
// URL path they are served from
type UploadService struct {
	uploadDir string
	maxSize   int64
}

// NewUploadService creates a new upload service, ensuring the upload
// directory exists
func NewUploadService(uploadDir string, maxSize int64) (*UploadService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &UploadService{
		uploadDir: uploadDir,
		maxSize:   maxSize,
	}, nil
}

// MaxSize returns the per-file upload cap in bytes
func (s *UploadService) MaxSize() int64 {
	return s.maxSize
}

// Dir returns the directory uploaded files are stored in
func (s *UploadService) Dir() string {
	return s.uploadDir
}

// SaveImage stores an uploaded image under a random filename and returns
// its public URL path. The original filename only contributes its
// extension, which must be a known image type.
func (s *UploadService) SaveImage(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported image type %q", ErrInvalidInput, ext)
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(s.uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, io.LimitReader(src, s.maxSize+1))
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload: %w", err)
	}
	if written > s.maxSize {
		os.Remove(path)
		return "", fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidInput, s.maxSize)
	}

	return "/uploads/" + filename, nil
}
