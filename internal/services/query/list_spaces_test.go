package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// fakeSpaceRepo is a hand-written test double for space.Repository,
// recording the filter/limit/offset it was called with so tests can
// assert on scoping without a real database.
type fakeSpaceRepo struct {
	rows       []*mmodel.Space
	lastFilter mmodel.SpaceListFilter
	lastLimit  int
	lastOffset int
}

func (f *fakeSpaceRepo) Create(ctx context.Context, s *mmodel.Space) (*mmodel.Space, error) {
	return s, nil
}

func (f *fakeSpaceRepo) Find(ctx context.Context, id midentifier.ID) (*mmodel.Space, error) {
	return nil, constant.EntityNotFoundError{EntityType: "Space"}
}

func (f *fakeSpaceRepo) FindByOwnerAndName(ctx context.Context, ownerID midentifier.ID, name string) (*mmodel.Space, error) {
	return nil, constant.EntityNotFoundError{EntityType: "Space"}
}

func (f *fakeSpaceRepo) FindAll(ctx context.Context, filter mmodel.SpaceListFilter, sortBy mmodel.SortField, sortOrder mmodel.SortOrder, limit, offset int) ([]*mmodel.Space, error) {
	f.lastFilter = filter
	f.lastLimit = limit
	f.lastOffset = offset

	return f.rows, nil
}

func (f *fakeSpaceRepo) Update(ctx context.Context, id midentifier.ID, s *mmodel.Space) (*mmodel.Space, error) {
	return s, nil
}

func (f *fakeSpaceRepo) Delete(ctx context.Context, id midentifier.ID) error {
	return nil
}

func TestListSpacesScopesToOwnRowsForOrdinaryUser(t *testing.T) {
	repo := &fakeSpaceRepo{}
	uc := &UseCase{SpaceRepo: repo}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	_, err := uc.ListSpaces(context.Background(), caller, ListSpacesInput{})

	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.OwnerID)
	assert.Equal(t, caller.ID, *repo.lastFilter.OwnerID)
}

func TestListSpacesAllowsAnyScopeForRoot(t *testing.T) {
	repo := &fakeSpaceRepo{}
	uc := &UseCase{SpaceRepo: repo}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}

	_, err := uc.ListSpaces(context.Background(), caller, ListSpacesInput{})

	require.NoError(t, err)
	assert.Nil(t, repo.lastFilter.OwnerID)
}

func TestListSpacesPaginatesWithContinuationToken(t *testing.T) {
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}

	rows := make([]*mmodel.Space, defaultPageSize+1)
	for i := range rows {
		rows[i] = &mmodel.Space{ID: midentifier.New(), Name: "space"}
	}

	repo := &fakeSpaceRepo{rows: rows}
	uc := &UseCase{SpaceRepo: repo}

	page, err := uc.ListSpaces(context.Background(), caller, ListSpacesInput{})

	require.NoError(t, err)
	assert.Len(t, page.Items, defaultPageSize)
	require.NotNil(t, page.NextToken)

	repo.rows = rows[:1]

	nextPage, err := uc.ListSpaces(context.Background(), caller, ListSpacesInput{Token: *page.NextToken})
	require.NoError(t, err)
	assert.Nil(t, nextPage.NextToken)
	assert.Equal(t, defaultPageSize, repo.lastOffset)
}

func TestListSpacesRejectsTokenFromDifferentRequestor(t *testing.T) {
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	intruder := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	repo := &fakeSpaceRepo{rows: make([]*mmodel.Space, defaultPageSize+1)}
	for i := range repo.rows {
		repo.rows[i] = &mmodel.Space{ID: midentifier.New()}
	}

	uc := &UseCase{SpaceRepo: repo}

	page, err := uc.ListSpaces(context.Background(), owner, ListSpacesInput{})
	require.NoError(t, err)
	require.NotNil(t, page.NextToken)

	_, err = uc.ListSpaces(context.Background(), intruder, ListSpacesInput{Token: *page.NextToken})

	require.Error(t, err)
}

func TestListSpacesHonorsMaxResults(t *testing.T) {
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}

	repo := &fakeSpaceRepo{rows: []*mmodel.Space{
		{ID: midentifier.New(), Name: "a"},
		{ID: midentifier.New(), Name: "b"},
	}}
	uc := &UseCase{SpaceRepo: repo}

	page, err := uc.ListSpaces(context.Background(), caller, ListSpacesInput{MaxResults: 1})

	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 2, repo.lastLimit)
	require.NotNil(t, page.NextToken)

	// The follow-up call keeps the token's page size and advances by it.
	repo.rows = repo.rows[1:]

	nextPage, err := uc.ListSpaces(context.Background(), caller, ListSpacesInput{Token: *page.NextToken})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lastOffset)
	assert.Len(t, nextPage.Items, 1)
	assert.Nil(t, nextPage.NextToken)
}
