package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Claim represents a lecturer's record of hours worked, submitted for approval
type Claim struct {
	ID               string          `json:"id"`
	LecturerName     string          `json:"lecturer_name"`
	HoursWorked      decimal.Decimal `json:"hours_worked"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	Notes            string          `json:"notes,omitempty"`
	DocumentFileName string          `json:"document_file_name,omitempty"`
	Status           ClaimStatus     `json:"status"`
	SubmittedAt      time.Time       `json:"submitted_at"`
}

// ClaimStatus is the lifecycle state of a claim
type ClaimStatus string

// ClaimStatus constants
const (
	StatusPending  ClaimStatus = "Pending"
	StatusApproved ClaimStatus = "Approved"
	StatusRejected ClaimStatus = "Rejected"
)

// Field limits from the submission contract
const (
	MaxLecturerNameLen = 100
	MaxNotesLen        = 1000
	MaxUploadBytes     = 5242880 // 5 MiB
)

// AllowedExtensions lists the accepted supporting-document file types,
// lowercase with leading dot
var AllowedExtensions = []string{".pdf", ".docx", ".xlsx"}
