package service

import (
	"context"
	"sync"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
	"google.golang.org/genai"
)

type fakeBackend struct {
	responses []string
	err       error
	prompts   []string
	schemas   []*genai.Schema
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) GenerateJSON(_ context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	if f.err != nil {
		return "", f.err
	}
	out := f.responses[0]
	f.responses = f.responses[1:]
	return out, nil
}

type memRepo struct {
	mu    sync.Mutex
	items map[string]model.Credential
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[string]model.Credential{}}
}

func (r *memRepo) Find(_ context.Context, provider string) (*model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[provider]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &c, nil
}

func (r *memRepo) Save(_ context.Context, cred *model.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[cred.Provider] = *cred
	return nil
}

func (r *memRepo) Delete(_ context.Context, provider string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[provider]; !ok {
		return apperror.ErrNotFound
	}
	delete(r.items, provider)
	return nil
}

type staticKey string

func (k staticKey) APIKey(context.Context) (string, error) {
	if k == "" {
		return "", apperror.ErrCredentialMissing
	}
	return string(k), nil
}
