package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalStorePutAndRemove(t *testing.T) {
	store := &LocalStore{Root: t.TempDir(), PublicBaseURL: "https://api.example.org"}

	obj, err := store.Put(strings.NewReader("hello world"), "report.pdf", "application/pdf")
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	if !strings.HasSuffix(obj.StoredName, ".pdf") {
		t.Errorf("stored name = %q, want .pdf extension kept", obj.StoredName)
	}
	if obj.StoredName == "report.pdf" {
		t.Error("stored name should not reuse the original filename")
	}
	if obj.Size != int64(len("hello world")) {
		t.Errorf("size = %d, want %d", obj.Size, len("hello world"))
	}
	if obj.MimeType != "application/pdf" {
		t.Errorf("mime = %q, want application/pdf", obj.MimeType)
	}
	wantURL := "https://api.example.org/files/" + obj.StoredName
	if obj.URL != wantURL {
		t.Errorf("url = %q, want %q", obj.URL, wantURL)
	}

	data, err := os.ReadFile(filepath.Join(store.Root, obj.StoredName))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("contents = %q", data)
	}

	if err := store.Remove(obj.StoredName); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Root, obj.StoredName)); !os.IsNotExist(err) {
		t.Error("file still present after remove")
	}
}

func TestLocalStoreRemoveRejectsPathTraversal(t *testing.T) {
	store := &LocalStore{Root: t.TempDir(), PublicBaseURL: "http://localhost:8080"}

	for _, name := range []string{"", "../secret", "a/b", `a\b`} {
		if err := store.Remove(name); err == nil {
			t.Errorf("Remove(%q) succeeded, want error", name)
		}
	}
}

func TestGenerateStoredNameUnique(t *testing.T) {
	a := GenerateStoredName("essay.PDF")
	b := GenerateStoredName("essay.PDF")
	if a == b {
		t.Error("stored names should be unique per call")
	}
	if !strings.HasSuffix(a, ".pdf") {
		t.Errorf("stored name = %q, want lowercase extension", a)
	}
}
