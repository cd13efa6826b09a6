package repository

import (
	"context"
	"sync"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
)

// MemoryCredentialRepository keeps credentials for the lifetime of the process.
// It is used when no database is configured.
type MemoryCredentialRepository struct {
	mu    sync.RWMutex
	items map[string]model.Credential
}

func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{items: make(map[string]model.Credential)}
}

func (r *MemoryCredentialRepository) Find(_ context.Context, provider string) (*model.Credential, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cred, ok := r.items[provider]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &cred, nil
}

func (r *MemoryCredentialRepository) Save(_ context.Context, cred *model.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.items[cred.Provider]; ok {
		cred.CreatedAt = existing.CreatedAt
	}
	r.items[cred.Provider] = *cred
	return nil
}

func (r *MemoryCredentialRepository) Delete(_ context.Context, provider string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[provider]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.items, provider)
	return nil
}
