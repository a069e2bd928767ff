package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes objects under a root directory and serves them through
// the /files route. PublicBaseURL is the externally visible origin, e.g.
// "https://api.your.org".
type LocalStore struct {
	Root          string
	PublicBaseURL string
}

// NewLocalStoreFromEnv builds a LocalStore from UPLOAD_PATH and
// PUBLIC_BASE_URL, with the same defaults the server uses.
func NewLocalStoreFromEnv() *LocalStore {
	root := os.Getenv("UPLOAD_PATH")
	if root == "" {
		root = "./uploads"
	}
	base := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if base == "" {
		base = "http://localhost:8080"
	}
	return &LocalStore{Root: root, PublicBaseURL: base}
}

func (s *LocalStore) Put(reader io.Reader, originalName, mimeType string) (*StoredObject, error) {
	if err := os.MkdirAll(s.Root, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := GenerateStoredName(originalName)
	fullPath := filepath.Join(s.Root, storedName)

	dst, err := os.Create(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(dst, reader)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(fullPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	return &StoredObject{
		StoredName: storedName,
		URL:        fmt.Sprintf("%s/files/%s", s.PublicBaseURL, storedName),
		Size:       size,
		MimeType:   mimeType,
	}, nil
}

func (s *LocalStore) Remove(storedName string) error {
	// Reject anything that could escape the root.
	if storedName == "" || strings.ContainsAny(storedName, "/\\") {
		return fmt.Errorf("invalid stored name %q", storedName)
	}
	return os.Remove(filepath.Join(s.Root, storedName))
}
