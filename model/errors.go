package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the claim workflow
var (
	// ErrFileTooLarge signals an upload of zero bytes or above MaxUploadBytes
	ErrFileTooLarge = errors.New("file is empty or exceeds the maximum allowed size")

	// ErrUnsupportedFileType signals an upload with an extension outside AllowedExtensions
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrStorageWrite signals that the supporting document could not be persisted;
	// the claim is never created in that case
	ErrStorageWrite = errors.New("failed to store supporting document")

	// ErrClaimNotFound signals an approve/reject/lookup on an unknown claim id
	ErrClaimNotFound = errors.New("claim not found")

	// ErrStore signals an underlying store fault
	ErrStore = errors.New("claim store error")
)

// ValidationErrors collects per-field submission errors. Validation gathers
// every failing field so the form can present the complete set in one pass.
type ValidationErrors struct {
	Fields map[string]string
}

func (e *ValidationErrors) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, f := range names {
		parts[i] = fmt.Sprintf("%s: %s", f, e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a field error, keeping the first message per field
func (e *ValidationErrors) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// HasErrors reports whether any field failed
func (e *ValidationErrors) HasErrors() bool {
	return len(e.Fields) > 0
}
