package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/fadilmartias/mock-interview/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCredentialRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "credentials.yaml")
	repo := NewFileCredentialRepository(path)

	_, err := repo.Find(ctx, "gemini")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, &model.Credential{Provider: "gemini", Value: "a", CreatedAt: first, UpdatedAt: first}))
	require.NoError(t, repo.Save(ctx, &model.Credential{Provider: "gemini", Value: "b", CreatedAt: time.Now(), UpdatedAt: time.Now()}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened := NewFileCredentialRepository(path)
	cred, err := reopened.Find(ctx, "gemini")
	require.NoError(t, err)
	assert.Equal(t, "b", cred.Value)
	assert.True(t, first.Equal(cred.CreatedAt))

	require.NoError(t, reopened.Delete(ctx, "gemini"))
	assert.ErrorIs(t, reopened.Delete(ctx, "gemini"), apperror.ErrNotFound)
}

func TestFileCredentialRepository_NullDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("null\n"), 0o600))
	repo := NewFileCredentialRepository(path)

	_, err := repo.Find(ctx, "gemini")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	now := time.Now()
	require.NotPanics(t, func() {
		require.NoError(t, repo.Save(ctx, &model.Credential{Provider: "gemini", Value: "k", CreatedAt: now, UpdatedAt: now}))
	})
	cred, err := repo.Find(ctx, "gemini")
	require.NoError(t, err)
	assert.Equal(t, "k", cred.Value)
}
