package command

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// fakeCache is a hand-written test double for cache.Repository.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string]string
	dels    []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (f *fakeCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = value

	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	v, ok := f.entries[key]

	return v, ok, nil
}

func (f *fakeCache) Del(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, key)
	f.dels = append(f.dels, key)

	return nil
}

func TestCreateApiKeyReturnsRawSecretOnceAndStoresOnlyHash(t *testing.T) {
	repo := newFakeApiKeyRepo()
	uc := &UseCase{ApiKeyRepo: repo}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	created, err := uc.CreateApiKey(context.Background(), caller, &mmodel.CreateApiKeyInput{})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.RawSecret, "gm_"))
	assert.Equal(t, created.RawSecret[:10], created.KeyPrefix)
	assert.Equal(t, mmodel.ApiKeyStatusActive, created.Status)
	assert.Equal(t, caller.ID, created.UserID)

	// Only the hash is at rest; the raw secret round-trips through
	// authentication by recomputing it.
	stored, err := repo.FindHashByID(context.Background(), created.ApiKey.ID)
	require.NoError(t, err)
	assert.Equal(t, hashAPIKeySecret(created.RawSecret), stored)
	assert.NotEqual(t, created.RawSecret, stored)
}

func TestCreateApiKeyRejectsForeignOwnerForUserRole(t *testing.T) {
	uc := &UseCase{ApiKeyRepo: newFakeApiKeyRepo()}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	other := midentifier.New()

	_, err := uc.CreateApiKey(context.Background(), caller, &mmodel.CreateApiKeyInput{OwnerID: &other})

	require.Error(t, err)
	assert.IsType(t, constant.PermissionError{}, err)
}

func TestUpdateApiKeyChangesStatusAndEvictsCache(t *testing.T) {
	repo := newFakeApiKeyRepo()
	cacheRepo := newFakeCache()
	uc := &UseCase{ApiKeyRepo: repo, CacheRepo: cacheRepo}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	created, err := uc.CreateApiKey(context.Background(), caller, &mmodel.CreateApiKeyInput{Labels: mmodel.Labels{"env": "dev"}})
	require.NoError(t, err)

	hash := hashAPIKeySecret(created.RawSecret)
	require.NoError(t, cacheRepo.Set(context.Background(), "apikey:"+hash, "cached", time.Minute))

	inactive := mmodel.ApiKeyStatusInactive
	updated, err := uc.UpdateApiKey(context.Background(), caller, created.ApiKey.ID, &mmodel.UpdateApiKeyInput{
		Status:      &inactive,
		LabelUpdate: mmodel.LabelUpdate{MergeLabels: mmodel.Labels{"team": "ml"}},
	})

	require.NoError(t, err)
	assert.Equal(t, mmodel.ApiKeyStatusInactive, updated.Status)
	assert.Equal(t, mmodel.Labels{"env": "dev", "team": "ml"}, updated.Labels)

	_, ok, err := cacheRepo.Get(context.Background(), "apikey:"+hash)
	require.NoError(t, err)
	assert.False(t, ok, "auth cache entry should be evicted on update")
}

func TestDeleteApiKeyTwiceIsNotFound(t *testing.T) {
	repo := newFakeApiKeyRepo()
	uc := &UseCase{ApiKeyRepo: repo}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	created, err := uc.CreateApiKey(context.Background(), caller, &mmodel.CreateApiKeyInput{})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteApiKey(context.Background(), caller, created.ApiKey.ID))

	err = uc.DeleteApiKey(context.Background(), caller, created.ApiKey.ID)
	require.Error(t, err)
	assert.IsType(t, constant.EntityNotFoundError{}, err)
}

func TestDeleteApiKeyDeniedForNonOwner(t *testing.T) {
	repo := newFakeApiKeyRepo()
	uc := &UseCase{ApiKeyRepo: repo}
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	created, err := uc.CreateApiKey(context.Background(), owner, &mmodel.CreateApiKeyInput{})
	require.NoError(t, err)

	stranger := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	err = uc.DeleteApiKey(context.Background(), stranger, created.ApiKey.ID)
	require.Error(t, err)
	assert.IsType(t, constant.PermissionError{}, err)
}
