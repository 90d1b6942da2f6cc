package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/config"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/model"
)

var configMinio = config.MinioConfig{
	Endpoint:  "localhost:9000",
	AccessKey: "test",
	SecretKey: "test",
	Bucket:    "claims",
	UseSSL:    false,
}

func TestLocalDocumentStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalDocumentStore(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	content := "fake pdf bytes"
	name, err := store.Save(context.Background(), "Timesheet.PDF", strings.NewReader(content), int64(len(content)))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Generated name keeps the lowercased extension, never the original name
	if !strings.HasSuffix(name, ".pdf") {
		t.Errorf("Expected .pdf suffix, got %s", name)
	}
	if strings.Contains(name, "Timesheet") {
		t.Errorf("Stored name must not contain the original name, got %s", name)
	}
	if strings.ContainsAny(name, "/\\") {
		t.Errorf("Stored name must not contain path separators, got %s", name)
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Failed to read stored file: %v", err)
	}
	if string(data) != content {
		t.Errorf("Stored content mismatch: got %q", string(data))
	}
}

func TestLocalDocumentStoreSaveUniqueNames(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalDocumentStore(dir)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		name, err := store.Save(context.Background(), "doc.pdf", strings.NewReader("x"), 1)
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		if seen[name] {
			t.Fatalf("Duplicate stored name %s", name)
		}
		seen[name] = true
	}
}

func TestLocalDocumentStoreSaveCancelledContext(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalDocumentStore(dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Save(ctx, "doc.pdf", strings.NewReader("x"), 1)
	if !errors.Is(err, model.ErrStorageWrite) {
		t.Errorf("Expected ErrStorageWrite, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected no files after failed save, found %d", len(entries))
	}
}

// failingReader fails partway through a copy
type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("stream broke")
}

func TestLocalDocumentStoreSaveRemovesPartialFile(t *testing.T) {
	dir := t.TempDir()
	store, _ := NewLocalDocumentStore(dir)

	_, err := store.Save(context.Background(), "doc.pdf", failingReader{}, 100)
	if !errors.Is(err, model.ErrStorageWrite) {
		t.Errorf("Expected ErrStorageWrite, got %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected partial file to be removed, found %d files", len(entries))
	}
}

func TestNewLocalDocumentStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	if _, err := NewLocalDocumentStore(dir); err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Error("Expected uploads directory to be created")
	}
}

func TestContentTypeForExt(t *testing.T) {
	tests := []struct {
		ext      string
		expected string
	}{
		{".pdf", "application/pdf"},
		{".docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{".xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{".txt", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := contentTypeForExt(tt.ext); got != tt.expected {
			t.Errorf("contentTypeForExt(%s): expected %s, got %s", tt.ext, tt.expected, got)
		}
	}
}

func TestNewMinioDocumentStore(t *testing.T) {
	// The client is created without connecting; construction should succeed
	svc, err := NewMinioDocumentStore(&configMinio)
	if err != nil {
		t.Logf("NewMinioDocumentStore returned error: %v", err)
	} else if svc == nil {
		t.Error("Expected non-nil store")
	}
}
