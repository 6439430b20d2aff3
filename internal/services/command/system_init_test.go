package command

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// fakeTransactor runs the function directly; the in-memory fakes have no
// transaction to join, so atomicity itself is covered by the postgres
// adapter, not here.
type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func TestSystemInitIsIdempotent(t *testing.T) {
	userRepo := newFakeUserRepo()
	apiKeyRepo := newFakeApiKeyRepo()
	tx := &fakeTransactor{}
	uc := &UseCase{UserRepo: userRepo, ApiKeyRepo: apiKeyRepo, Transactor: tx}

	first, err := uc.SystemInit(context.Background())
	require.NoError(t, err)
	assert.False(t, first.AlreadyInitialized)
	require.NotNil(t, first.RootAPIKey)
	assert.True(t, strings.HasPrefix(first.RootAPIKey.RawSecret, "gm_"))
	assert.Equal(t, mmodel.ReservedRootUsername, first.RootUser.Username)
	assert.True(t, first.RootUser.HasRole(mmodel.RoleRoot))
	assert.Equal(t, 1, tx.calls)

	second, err := uc.SystemInit(context.Background())
	require.NoError(t, err)
	assert.True(t, second.AlreadyInitialized)
	assert.Nil(t, second.RootAPIKey, "the raw secret is shown exactly once")
	assert.Equal(t, first.RootUser.ID, second.RootUser.ID)
	assert.Equal(t, 1, tx.calls, "an initialized system must not open another transaction")
}

func TestSystemInitBootstrapKeyAuthenticates(t *testing.T) {
	userRepo := newFakeUserRepo()
	apiKeyRepo := newFakeApiKeyRepo()
	uc := &UseCase{UserRepo: userRepo, ApiKeyRepo: apiKeyRepo, Transactor: &fakeTransactor{}}

	result, err := uc.SystemInit(context.Background())
	require.NoError(t, err)

	principal, err := uc.Authenticate(context.Background(), result.RootAPIKey.RawSecret)
	require.NoError(t, err)
	assert.Equal(t, result.RootUser.ID, principal.ID)
	assert.Equal(t, mmodel.RoleRoot, principal.Role)
}

func TestSystemInitStoresHashNotSecret(t *testing.T) {
	userRepo := newFakeUserRepo()
	apiKeyRepo := newFakeApiKeyRepo()
	uc := &UseCase{UserRepo: userRepo, ApiKeyRepo: apiKeyRepo, Transactor: &fakeTransactor{}}

	result, err := uc.SystemInit(context.Background())
	require.NoError(t, err)

	stored, err := apiKeyRepo.FindHashByID(context.Background(), result.RootAPIKey.ApiKey.ID)
	require.NoError(t, err)
	assert.Equal(t, hashAPIKeySecret(result.RootAPIKey.RawSecret), stored)
	assert.NotContains(t, stored, result.RootAPIKey.RawSecret)
}
