package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"nonprofit-backoffice-api/models"
	"nonprofit-backoffice-api/storage"
)

// AttachmentPolicy is the per-submission file policy. The defaults match the
// scholarship and membership forms; callers may override per record type.
type AttachmentPolicy struct {
	MaxFiles    int
	MaxFileSize int64
	AllowedMime map[string]bool
}

const megabyte = 1024 * 1024

// DefaultAttachmentPolicy allows up to 3 pdf/doc/docx files of 5MB each.
func DefaultAttachmentPolicy() AttachmentPolicy {
	return AttachmentPolicy{
		MaxFiles:    3,
		MaxFileSize: 5 * megabyte,
		AllowedMime: map[string]bool{
			"application/pdf":    true,
			"application/msword": true,
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
		},
	}
}

var extToMime = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// resolveMime prefers the declared Content-Type and falls back to the file
// extension when the client sent none or a generic octet-stream.
func resolveMime(file *multipart.FileHeader) string {
	declared := strings.TrimSpace(file.Header.Get("Content-Type"))
	if declared != "" && declared != "application/octet-stream" {
		// Strip parameters such as "; charset=..."
		if i := strings.Index(declared, ";"); i >= 0 {
			declared = strings.TrimSpace(declared[:i])
		}
		return declared
	}
	return extToMime[strings.ToLower(filepath.Ext(file.Filename))]
}

// ValidateFiles checks the whole batch against the policy before anything is
// stored. The returned error names the violated constraint.
func (p AttachmentPolicy) ValidateFiles(files []*multipart.FileHeader) error {
	if len(files) > p.MaxFiles {
		return fmt.Errorf("too many files: %d (maximum %d)", len(files), p.MaxFiles)
	}
	for _, file := range files {
		if file.Size > p.MaxFileSize {
			return fmt.Errorf("file %q exceeds %dMB limit", file.Filename, p.MaxFileSize/megabyte)
		}
		mime := resolveMime(file)
		if !p.AllowedMime[mime] {
			return fmt.Errorf("file %q has disallowed type %q", file.Filename, mime)
		}
	}
	return nil
}

// StoreAttachments uploads every file and returns the attachment rows to
// persist with the application. All-or-nothing: on any failure the already
// stored objects are removed and an error is returned.
func StoreAttachments(store storage.ObjectStore, files []*multipart.FileHeader) ([]models.ApplicationAttachment, error) {
	attachments := make([]models.ApplicationAttachment, 0, len(files))
	stored := make([]string, 0, len(files))

	cleanup := func() {
		for _, name := range stored {
			if err := store.Remove(name); err != nil {
				// Orphaned object; nothing else to do but log at the caller.
				continue
			}
		}
	}

	for _, file := range files {
		src, err := file.Open()
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to open %q: %w", file.Filename, err)
		}

		obj, err := store.Put(src, file.Filename, resolveMime(file))
		src.Close()
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("failed to store %q: %w", file.Filename, err)
		}
		stored = append(stored, obj.StoredName)

		now := time.Now()
		attachments = append(attachments, models.ApplicationAttachment{
			OriginalFilename: file.Filename,
			StoredFilename:   obj.StoredName,
			FileURL:          obj.URL,
			FileSize:         obj.Size,
			MimeType:         obj.MimeType,
			UploadedAt:       &now,
			CreateAt:         &now,
			UpdateAt:         &now,
		})
	}

	return attachments, nil
}
