package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/model"
	"github.com/google/uuid"
)

// DocumentStore persists supporting documents under freshly generated names.
// The returned name is the only reference a claim ever holds; callers never
// see or supply filesystem paths.
type DocumentStore interface {
	Save(ctx context.Context, originalName string, reader io.Reader, size int64) (string, error)
}

// Upload describes a supporting document attached to a submission
type Upload struct {
	FileName string
	Size     int64
	Reader   io.Reader
}

// LocalDocumentStore writes documents into a fixed uploads directory
type LocalDocumentStore struct {
	dir string
}

// NewLocalDocumentStore creates the uploads directory if needed
func NewLocalDocumentStore(dir string) (*LocalDocumentStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalDocumentStore{dir: dir}, nil
}

// Save writes the document as <uuid><ext> and returns the generated name.
// A failed write never leaves a partial file behind, so a claim can never
// reference a half-written document.
func (s *LocalDocumentStore) Save(ctx context.Context, originalName string, reader io.Reader, size int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrStorageWrite, err)
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := uuid.New().String() + ext
	path := filepath.Join(s.dir, storedName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %w", model.ErrStorageWrite, err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("%w: %w", model.ErrStorageWrite, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("%w: %w", model.ErrStorageWrite, err)
	}

	return storedName, nil
}
