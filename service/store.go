package service

import (
	"sort"
	"sync"
	"time"

	"github.com/VCSTDN/PROG6212-Part-2-SikhumbuzoNgwane/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateClaimRequest carries the validated fields for claim construction.
// Ids, status and submission time are assigned by the store, never by callers.
type CreateClaimRequest struct {
	LecturerName     string
	HoursWorked      decimal.Decimal
	HourlyRate       decimal.Decimal
	Notes            string
	DocumentFileName string
}

// ClaimStore is the storage contract the claim workflow depends on.
// Any implementation satisfies it as long as the listing orderings hold.
type ClaimStore interface {
	// Create assigns a new id, sets status Pending and the UTC submission
	// time, and stores the claim
	Create(req *CreateClaimRequest) (*model.Claim, error)
	// FindByID returns the claim or model.ErrClaimNotFound
	FindByID(id string) (*model.Claim, error)
	// ListPending returns Pending claims oldest first (coordinator queue order)
	ListPending() ([]*model.Claim, error)
	// ListAll returns every claim newest first (status view order)
	ListAll() ([]*model.Claim, error)
	// SetStatus unconditionally applies a decision and returns the new status,
	// or model.ErrClaimNotFound
	SetStatus(id string, status model.ClaimStatus) (model.ClaimStatus, error)
}

// MemoryClaimStore is an in-memory claim store
// In production, this should be replaced with a database
type MemoryClaimStore struct {
	claims map[string]*model.Claim
	order  []string // insertion order, used as a stable tie-break
	mu     sync.RWMutex
}

// NewMemoryClaimStore creates an empty in-memory claim store
func NewMemoryClaimStore() *MemoryClaimStore {
	return &MemoryClaimStore{
		claims: make(map[string]*model.Claim),
	}
}

func (s *MemoryClaimStore) Create(req *CreateClaimRequest) (*model.Claim, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim := &model.Claim{
		ID:               uuid.New().String(),
		LecturerName:     req.LecturerName,
		HoursWorked:      req.HoursWorked,
		HourlyRate:       req.HourlyRate,
		Notes:            req.Notes,
		DocumentFileName: req.DocumentFileName,
		Status:           model.StatusPending,
		SubmittedAt:      time.Now().UTC(),
	}

	s.claims[claim.ID] = claim
	s.order = append(s.order, claim.ID)

	copied := *claim
	return &copied, nil
}

func (s *MemoryClaimStore) FindByID(id string) (*model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claim, ok := s.claims[id]
	if !ok {
		return nil, model.ErrClaimNotFound
	}
	copied := *claim
	return &copied, nil
}

func (s *MemoryClaimStore) ListPending() ([]*model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Claim, 0)
	for _, id := range s.order {
		if c := s.claims[id]; c.Status == model.StatusPending {
			copied := *c
			result = append(result, &copied)
		}
	}
	// Oldest first: the coordinator queue is fair by submission time
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SubmittedAt.Before(result[j].SubmittedAt)
	})
	return result, nil
}

func (s *MemoryClaimStore) ListAll() ([]*model.Claim, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*model.Claim, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.claims[id]
		result = append(result, &copied)
	}
	// Newest first for the status view
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].SubmittedAt.After(result[j].SubmittedAt)
	})
	return result, nil
}

// SetStatus does not check the current status before applying a decision;
// an already-decided claim accepts a second decision and the last write wins
func (s *MemoryClaimStore) SetStatus(id string, status model.ClaimStatus) (model.ClaimStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim, ok := s.claims[id]
	if !ok {
		return "", model.ErrClaimNotFound
	}
	claim.Status = status
	return claim.Status, nil
}

// Count returns the number of claims in the store
func (s *MemoryClaimStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.claims)
}
