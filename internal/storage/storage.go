// Package storage persists uploaded files on local disk. Files get
// uuid-based names; callers receive the public URL path to store on the
// owning row.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// localStorage implements file storage using the local filesystem
type localStorage struct {
	basePath string
	baseURL  string
}

// NewLocalStorage creates a new localStorage instance.
// "basePath" is the on-disk uploads directory, "baseURL" the URL prefix the
// files are served under (e.g. "/uploads").
func NewLocalStorage(basePath, baseURL string) *localStorage {
	return &localStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// Save writes the file under a generated uuid name preserving the original
// extension and returns its public URL path
func (s *localStorage) Save(file io.Reader, originalFilename string) (string, error) {
	filename := generateFileName(filepath.Ext(originalFilename))
	fullPath := filepath.Join(s.basePath, filename)

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create uploads directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path.Join(s.baseURL, filename), nil
}

// Delete removes a stored file by its public URL path. Missing files are not
// an error.
func (s *localStorage) Delete(urlPath string) error {
	filename := path.Base(urlPath)
	if filename == "." || filename == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(s.basePath, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// generateFileName generates a uuid-based file name with the given extension
func generateFileName(extension string) string {
	newUUID := uuid.New().String()
	if extension != "" && extension[0] != '.' {
		return newUUID + "." + extension
	}
	return newUUID + extension
}
