package service

import (
	"context"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/model"
	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/pkg/logger"
	"github.com/shopspring/decimal"
)

// SubmissionRequest is the typed input of a claim submission. Document is nil
// when no supporting file was attached.
type SubmissionRequest struct {
	LecturerName string
	HoursWorked  decimal.Decimal
	HourlyRate   decimal.Decimal
	Notes        string
	Document     *Upload
}

// ClaimService implements the claim workflow: submission validation, document
// intake, claim construction, approve/reject decisions and the two listings.
type ClaimService struct {
	store          ClaimStore
	documents      DocumentStore
	maxUploadBytes int64
	allowedExts    []string
}

func NewClaimService(store ClaimStore, documents DocumentStore, maxUploadBytes int64, allowedExts []string) *ClaimService {
	if maxUploadBytes <= 0 {
		maxUploadBytes = model.MaxUploadBytes
	}
	if len(allowedExts) == 0 {
		allowedExts = model.AllowedExtensions
	}
	return &ClaimService{
		store:          store,
		documents:      documents,
		maxUploadBytes: maxUploadBytes,
		allowedExts:    allowedExts,
	}
}

// Submit validates the submission and creates a Pending claim.
// Field validation collects every failing field before returning; file errors
// and storage faults abort without creating a claim.
func (s *ClaimService) Submit(ctx context.Context, req *SubmissionRequest) (*model.Claim, error) {
	name := strings.TrimSpace(req.LecturerName)
	notes := strings.TrimSpace(req.Notes)

	var verrs model.ValidationErrors
	if name == "" {
		verrs.Add("lecturerName", "lecturer name is required")
	} else if utf8.RuneCountInString(name) > model.MaxLecturerNameLen {
		verrs.Add("lecturerName", "lecturer name must be at most 100 characters")
	}
	if req.HoursWorked.LessThanOrEqual(decimal.Zero) {
		verrs.Add("hoursWorked", "hours worked must be greater than zero")
	}
	if req.HourlyRate.IsNegative() {
		verrs.Add("hourlyRate", "hourly rate must not be negative")
	}
	if utf8.RuneCountInString(notes) > model.MaxNotesLen {
		verrs.Add("notes", "notes must be at most 1000 characters")
	}
	if verrs.HasErrors() {
		return nil, &verrs
	}

	var documentFileName string
	if req.Document != nil {
		storedName, err := s.saveDocument(ctx, req.Document)
		if err != nil {
			return nil, err
		}
		documentFileName = storedName
	}

	claim, err := s.store.Create(&CreateClaimRequest{
		LecturerName:     name,
		HoursWorked:      req.HoursWorked,
		HourlyRate:       req.HourlyRate,
		Notes:            notes,
		DocumentFileName: documentFileName,
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "claim submitted",
		"claim_id", claim.ID,
		"lecturer", claim.LecturerName,
		"hours", claim.HoursWorked.String(),
		"has_document", documentFileName != "",
	)
	return claim, nil
}

// saveDocument validates the upload and hands it to the document store.
// A write fault aborts the submission; the claim is never created.
func (s *ClaimService) saveDocument(ctx context.Context, doc *Upload) (string, error) {
	if doc.Size <= 0 || doc.Size > s.maxUploadBytes {
		return "", model.ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(doc.FileName))
	allowed := false
	for _, a := range s.allowedExts {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", model.ErrUnsupportedFileType
	}

	return s.documents.Save(ctx, doc.FileName, doc.Reader, doc.Size)
}

// Approve applies an approve decision and returns the new status.
// The transition is unconditional: the current status is not checked, so a
// decided claim accepts another decision and the last write wins.
func (s *ClaimService) Approve(ctx context.Context, id string) (model.ClaimStatus, error) {
	status, err := s.store.SetStatus(id, model.StatusApproved)
	if err != nil {
		return "", err
	}
	logger.Info(ctx, "claim approved", "claim_id", id)
	return status, nil
}

// Reject applies a reject decision, symmetric to Approve
func (s *ClaimService) Reject(ctx context.Context, id string) (model.ClaimStatus, error) {
	status, err := s.store.SetStatus(id, model.StatusRejected)
	if err != nil {
		return "", err
	}
	logger.Info(ctx, "claim rejected", "claim_id", id)
	return status, nil
}

// FindByID looks up a single claim
func (s *ClaimService) FindByID(ctx context.Context, id string) (*model.Claim, error) {
	return s.store.FindByID(id)
}

// ListPending returns the coordinator queue, oldest submission first
func (s *ClaimService) ListPending(ctx context.Context) ([]*model.Claim, error) {
	return s.store.ListPending()
}

// ListAll returns every claim, newest submission first
func (s *ClaimService) ListAll(ctx context.Context) ([]*model.Claim, error) {
	return s.store.ListAll()
}
