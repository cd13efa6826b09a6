package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
)

// CredentialSource yields the API key a backend should use for its next call.
type CredentialSource interface {
	APIKey(ctx context.Context) (string, error)
}

type CredentialRepositoryInterface interface {
	Find(ctx context.Context, provider string) (*model.Credential, error)
	Save(ctx context.Context, cred *model.Credential) error
	Delete(ctx context.Context, provider string) error
}

const (
	CredentialSourceEnv    = "env"
	CredentialSourceStored = "stored"
)

// CredentialService resolves a provider's key: the environment key wins, then
// the key stored at runtime.
type CredentialService struct {
	provider string
	envKey   string
	repo     CredentialRepositoryInterface
}

func NewCredentialService(provider, envKey string, repo CredentialRepositoryInterface) *CredentialService {
	return &CredentialService{
		provider: provider,
		envKey:   strings.TrimSpace(envKey),
		repo:     repo,
	}
}

func (s *CredentialService) Provider() string {
	return s.provider
}

func (s *CredentialService) APIKey(ctx context.Context) (string, error) {
	key, _, err := s.resolve(ctx)
	return key, err
}

// Status reports whether a key is available and where it comes from.
func (s *CredentialService) Status(ctx context.Context) (configured bool, source string, err error) {
	_, source, err = s.resolve(ctx)
	if errors.Is(err, apperror.ErrCredentialMissing) {
		return false, "", nil
	}
	if err != nil {
		return false, "", err
	}
	return true, source, nil
}

// Configure stores a runtime key. Blank keys are rejected.
func (s *CredentialService) Configure(ctx context.Context, key string) error {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return apperror.NewValidationError("Vui lòng nhập API Key.", map[string]string{"api_key": "api key is required"})
	}
	now := time.Now()
	if err := s.repo.Save(ctx, &model.Credential{
		Provider:  s.provider,
		Value:     trimmed,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("failed to store api key: %w", err)
	}
	return nil
}

// Clear removes the stored key. The environment key, if any, is untouched.
func (s *CredentialService) Clear(ctx context.Context) error {
	err := s.repo.Delete(ctx, s.provider)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return fmt.Errorf("failed to clear api key: %w", err)
	}
	return nil
}

func (s *CredentialService) resolve(ctx context.Context) (string, string, error) {
	if s.envKey != "" {
		return s.envKey, CredentialSourceEnv, nil
	}
	cred, err := s.repo.Find(ctx, s.provider)
	if errors.Is(err, apperror.ErrNotFound) {
		return "", "", apperror.ErrCredentialMissing
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to read api key: %w", err)
	}
	if strings.TrimSpace(cred.Value) == "" {
		return "", "", apperror.ErrCredentialMissing
	}
	return cred.Value, CredentialSourceStored, nil
}
