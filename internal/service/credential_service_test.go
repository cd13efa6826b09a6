package service

import (
	"context"
	"testing"

	"github.com/fadilmartias/mock-interview/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialService_StoredKeyLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewCredentialService("gemini", "", newMemRepo())

	_, err := svc.APIKey(ctx)
	assert.ErrorIs(t, err, apperror.ErrCredentialMissing)
	configured, _, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.False(t, configured)

	require.NoError(t, svc.Configure(ctx, "  secret  "))
	key, err := svc.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "secret", key)
	configured, source, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.True(t, configured)
	assert.Equal(t, CredentialSourceStored, source)

	require.NoError(t, svc.Clear(ctx))
	_, err = svc.APIKey(ctx)
	assert.ErrorIs(t, err, apperror.ErrCredentialMissing)

	require.NoError(t, svc.Clear(ctx), "clearing twice is not an error")
}

func TestCredentialService_EnvKeyWins(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewCredentialService("gemini", "from-env", repo)
	require.NoError(t, svc.Configure(ctx, "stored"))

	key, err := svc.APIKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	_, source, _ := svc.Status(ctx)
	assert.Equal(t, CredentialSourceEnv, source)
}

func TestCredentialService_RejectsBlankKey(t *testing.T) {
	err := NewCredentialService("gemini", "", newMemRepo()).Configure(context.Background(), "   ")
	assert.True(t, apperror.IsValidation(err))
}
