package service

import (
	"context"
	"sync"
	"time"

	"learnbrightly/internal/entity"
)

// PendingVerification is what a verification token resolves to: the email it
// was bound to and a snapshot of the account awaiting verification.
type PendingVerification struct {
	Email     string
	AccountID string
	Username  string
	Role      entity.Role
	CreatedAt time.Time
	ExpiresAt time.Time
}

// VerificationStore keeps pending email-verification tokens. The interface
// exists so the in-process default can be swapped for an external cache in a
// multi-instance deployment; entries surviving a restart is not guaranteed.
type VerificationStore interface {
	Set(ctx context.Context, token string, pending PendingVerification) error
	Get(ctx context.Context, token string) (*PendingVerification, error)
	Delete(ctx context.Context, token string) error
}

type MemoryVerificationStore struct {
	mutex   sync.Mutex
	entries map[string]PendingVerification
	now     func() time.Time
}

func NewMemoryVerificationStore() *MemoryVerificationStore {
	return &MemoryVerificationStore{
		entries: make(map[string]PendingVerification),
		now:     time.Now,
	}
}

func (s *MemoryVerificationStore) Set(ctx context.Context, token string, pending PendingVerification) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.sweep()
	s.entries[token] = pending
	return nil
}

// Get returns the entry even when expired; the caller distinguishes an
// expired token from an unknown one.
func (s *MemoryVerificationStore) Get(ctx context.Context, token string) (*PendingVerification, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	pending, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	return &pending, nil
}

func (s *MemoryVerificationStore) Delete(ctx context.Context, token string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.entries, token)
	return nil
}

func (s *MemoryVerificationStore) sweep() {
	cutoff := s.now()
	for token, pending := range s.entries {
		if pending.ExpiresAt.Before(cutoff) {
			delete(s.entries, token)
		}
	}
}
