package storage

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// StoredObject is the reference returned after a successful upload. The
// stored name doubles as the public id.
type StoredObject struct {
	StoredName string
	URL        string
	Size       int64
	MimeType   string
}

// ObjectStore persists raw file bytes and hands back a stable reference.
// Remove exists so a failed multi-file submission can undo earlier uploads.
type ObjectStore interface {
	Put(reader io.Reader, originalName, mimeType string) (*StoredObject, error)
	Remove(storedName string) error
}

// GenerateStoredName returns a collision-free stored filename that keeps the
// original extension.
func GenerateStoredName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("%s%s", uuid.New().String(), ext)
}
