package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
	"gopkg.in/yaml.v3"
)

type fileEntry struct {
	Value     string    `yaml:"value"`
	CreatedAt time.Time `yaml:"created_at"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// FileCredentialRepository keeps credentials in a YAML file readable only by
// the current user, so a terminal client remembers its key between runs.
type FileCredentialRepository struct {
	path string
	mu   sync.Mutex
}

func NewFileCredentialRepository(path string) *FileCredentialRepository {
	return &FileCredentialRepository{path: path}
}

// DefaultCredentialPath is credentials.yaml under the user config directory.
func DefaultCredentialPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "mock-interview", "credentials.yaml"), nil
}

func (r *FileCredentialRepository) Find(_ context.Context, provider string) (*model.Credential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := r.read()
	if err != nil {
		return nil, err
	}
	e, ok := entries[provider]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return &model.Credential{Provider: provider, Value: e.Value, CreatedAt: e.CreatedAt, UpdatedAt: e.UpdatedAt}, nil
}

func (r *FileCredentialRepository) Save(_ context.Context, cred *model.Credential) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := r.read()
	if err != nil {
		return err
	}
	if existing, ok := entries[cred.Provider]; ok {
		cred.CreatedAt = existing.CreatedAt
	}
	entries[cred.Provider] = fileEntry{Value: cred.Value, CreatedAt: cred.CreatedAt, UpdatedAt: cred.UpdatedAt}
	return r.write(entries)
}

func (r *FileCredentialRepository) Delete(_ context.Context, provider string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := entries[provider]; !ok {
		return apperror.ErrNotFound
	}
	delete(entries, provider)
	return r.write(entries)
}

func (r *FileCredentialRepository) read() (map[string]fileEntry, error) {
	entries := make(map[string]fileEntry)
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return entries, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse credentials file: %w", err)
	}
	if entries == nil {
		entries = make(map[string]fileEntry)
	}
	return entries, nil
}

func (r *FileCredentialRepository) write(entries map[string]fileEntry) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return fmt.Errorf("failed to create credentials dir: %w", err)
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	return nil
}
