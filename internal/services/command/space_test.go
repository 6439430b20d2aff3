package command

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// fakeSpaceRepo is a hand-written test double for space.Repository.
type fakeSpaceRepo struct {
	mu          sync.Mutex
	byID        map[midentifier.ID]*mmodel.Space
	byOwnerName map[string]midentifier.ID
}

func newFakeSpaceRepo() *fakeSpaceRepo {
	return &fakeSpaceRepo{
		byID:        map[midentifier.ID]*mmodel.Space{},
		byOwnerName: map[string]midentifier.ID{},
	}
}

func ownerNameKey(ownerID midentifier.ID, name string) string {
	return ownerID.String() + "|" + name
}

func (f *fakeSpaceRepo) Create(ctx context.Context, s *mmodel.Space) (*mmodel.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *s
	f.byID[s.ID] = &cp
	f.byOwnerName[ownerNameKey(s.OwnerID, s.Name)] = s.ID

	return &cp, nil
}

func (f *fakeSpaceRepo) Find(ctx context.Context, id midentifier.ID) (*mmodel.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.byID[id]
	if !ok {
		return nil, constant.EntityNotFoundError{EntityType: "Space"}
	}

	return s, nil
}

func (f *fakeSpaceRepo) FindByOwnerAndName(ctx context.Context, ownerID midentifier.ID, name string) (*mmodel.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, ok := f.byOwnerName[ownerNameKey(ownerID, name)]
	if !ok {
		return nil, constant.EntityNotFoundError{EntityType: "Space"}
	}

	return f.byID[id], nil
}

func (f *fakeSpaceRepo) FindAll(ctx context.Context, filter mmodel.SpaceListFilter, sortBy mmodel.SortField, sortOrder mmodel.SortOrder, limit, offset int) ([]*mmodel.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*mmodel.Space, 0, len(f.byID))
	for _, s := range f.byID {
		out = append(out, s)
	}

	return out, nil
}

func (f *fakeSpaceRepo) Update(ctx context.Context, id midentifier.ID, s *mmodel.Space) (*mmodel.Space, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	old, ok := f.byID[id]
	if !ok {
		return nil, constant.EntityNotFoundError{EntityType: "Space"}
	}

	delete(f.byOwnerName, ownerNameKey(old.OwnerID, old.Name))

	cp := *s
	f.byID[id] = &cp
	f.byOwnerName[ownerNameKey(cp.OwnerID, cp.Name)] = id

	return &cp, nil
}

func (f *fakeSpaceRepo) Delete(ctx context.Context, id midentifier.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.byID[id]
	if !ok {
		return constant.EntityNotFoundError{EntityType: "Space"}
	}

	delete(f.byOwnerName, ownerNameKey(s.OwnerID, s.Name))
	delete(f.byID, id)

	return nil
}

// seedEmbedder registers one embedder and returns its id, so space tests
// have a valid reference to bind against.
func seedEmbedder(t *testing.T, repo *fakeEmbedderRepo) midentifier.ID {
	t.Helper()

	id := midentifier.New()
	_, err := repo.Create(context.Background(), &mmodel.Embedder{
		ID:              id,
		DisplayName:     "seed",
		ProviderType:    mmodel.ProviderOpenAI,
		EndpointURL:     "https://seed",
		ModelIdentifier: "m",
		Dimensionality:  8,
		OwnerID:         midentifier.New(),
	}, "")
	require.NoError(t, err)

	return id
}

func TestCreateSpaceRejectsDuplicateNamePerOwner(t *testing.T) {
	embedders := newFakeEmbedderRepo()
	embedderID := seedEmbedder(t, embedders)
	uc := &UseCase{SpaceRepo: newFakeSpaceRepo(), EmbedderRepo: embedders}

	root := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}
	alice := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	_, err := uc.CreateSpace(context.Background(), root, &mmodel.CreateSpaceInput{Name: "S", EmbedderID: &embedderID})
	require.NoError(t, err)

	_, err = uc.CreateSpace(context.Background(), root, &mmodel.CreateSpaceInput{Name: "S", EmbedderID: &embedderID})
	require.Error(t, err)
	assert.IsType(t, constant.EntityConflictError{}, err)

	// A different owner may hold a space of the same name.
	created, err := uc.CreateSpace(context.Background(), alice, &mmodel.CreateSpaceInput{Name: "S", EmbedderID: &embedderID})
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.OwnerID)
}

func TestCreateSpaceRejectsUnknownEmbedder(t *testing.T) {
	uc := &UseCase{SpaceRepo: newFakeSpaceRepo(), EmbedderRepo: newFakeEmbedderRepo()}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	unknown := midentifier.New()

	_, err := uc.CreateSpace(context.Background(), caller, &mmodel.CreateSpaceInput{Name: "S", EmbedderID: &unknown})

	require.Error(t, err)
	assert.IsType(t, constant.FailedPreconditionError{}, err)
}

func TestCreateSpaceFallsBackToDefaultEmbedder(t *testing.T) {
	embedders := newFakeEmbedderRepo()
	embedderID := seedEmbedder(t, embedders)
	uc := &UseCase{SpaceRepo: newFakeSpaceRepo(), EmbedderRepo: embedders, DefaultEmbedderID: &embedderID}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	created, err := uc.CreateSpace(context.Background(), caller, &mmodel.CreateSpaceInput{Name: "S"})

	require.NoError(t, err)
	assert.Equal(t, embedderID, created.EmbedderID)
}

func TestCreateSpaceWithoutEmbedderOrDefaultFails(t *testing.T) {
	uc := &UseCase{SpaceRepo: newFakeSpaceRepo(), EmbedderRepo: newFakeEmbedderRepo()}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	_, err := uc.CreateSpace(context.Background(), caller, &mmodel.CreateSpaceInput{Name: "S"})

	require.Error(t, err)
	assert.IsType(t, constant.ValidationError{}, err)
}

func TestUpdateSpaceReplaceThenMergeLabels(t *testing.T) {
	embedders := newFakeEmbedderRepo()
	embedderID := seedEmbedder(t, embedders)
	uc := &UseCase{SpaceRepo: newFakeSpaceRepo(), EmbedderRepo: embedders}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	created, err := uc.CreateSpace(context.Background(), caller, &mmodel.CreateSpaceInput{
		Name:       "S",
		EmbedderID: &embedderID,
		Labels:     mmodel.Labels{"a": "1", "b": "2"},
	})
	require.NoError(t, err)

	replaced, err := uc.UpdateSpace(context.Background(), caller, created.ID, &mmodel.UpdateSpaceInput{
		LabelUpdate: mmodel.LabelUpdate{ReplaceLabels: mmodel.Labels{"c": "3"}},
	})
	require.NoError(t, err)
	assert.Equal(t, mmodel.Labels{"c": "3"}, replaced.Labels)

	merged, err := uc.UpdateSpace(context.Background(), caller, created.ID, &mmodel.UpdateSpaceInput{
		LabelUpdate: mmodel.LabelUpdate{MergeLabels: mmodel.Labels{"d": "4", "c": "30"}},
	})
	require.NoError(t, err)
	assert.Equal(t, mmodel.Labels{"c": "30", "d": "4"}, merged.Labels)
}

func TestUpdateSpaceRenameConflictsWithExistingName(t *testing.T) {
	embedders := newFakeEmbedderRepo()
	embedderID := seedEmbedder(t, embedders)
	uc := &UseCase{SpaceRepo: newFakeSpaceRepo(), EmbedderRepo: embedders}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	_, err := uc.CreateSpace(context.Background(), caller, &mmodel.CreateSpaceInput{Name: "A", EmbedderID: &embedderID})
	require.NoError(t, err)

	b, err := uc.CreateSpace(context.Background(), caller, &mmodel.CreateSpaceInput{Name: "B", EmbedderID: &embedderID})
	require.NoError(t, err)

	taken := "A"
	_, err = uc.UpdateSpace(context.Background(), caller, b.ID, &mmodel.UpdateSpaceInput{Name: &taken})

	require.Error(t, err)
	assert.IsType(t, constant.EntityConflictError{}, err)
}

func TestDeleteSpaceDeniedForNonOwner(t *testing.T) {
	embedders := newFakeEmbedderRepo()
	embedderID := seedEmbedder(t, embedders)
	uc := &UseCase{SpaceRepo: newFakeSpaceRepo(), EmbedderRepo: embedders}
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	created, err := uc.CreateSpace(context.Background(), owner, &mmodel.CreateSpaceInput{Name: "S", EmbedderID: &embedderID})
	require.NoError(t, err)

	stranger := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	err = uc.DeleteSpace(context.Background(), stranger, created.ID)
	require.Error(t, err)
	assert.IsType(t, constant.PermissionError{}, err)

	// Root may delete anyone's space; a second delete is NOT_FOUND.
	root := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}
	require.NoError(t, uc.DeleteSpace(context.Background(), root, created.ID))

	err = uc.DeleteSpace(context.Background(), root, created.ID)
	require.Error(t, err)
	assert.IsType(t, constant.EntityNotFoundError{}, err)
}
