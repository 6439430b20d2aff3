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

// fakeUserRepo is a hand-written test double for user.Repository,
// standing in for go.uber.org/mock-generated mocks that can't be
// produced without running the Go toolchain.
type fakeUserRepo struct {
	mu         sync.Mutex
	byID       map[midentifier.ID]*mmodel.User
	byUsername map[string]*mmodel.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:       map[midentifier.ID]*mmodel.User{},
		byUsername: map[string]*mmodel.User{},
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *mmodel.User) (*mmodel.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *u
	f.byID[u.ID] = &cp
	f.byUsername[u.Username] = &cp

	return &cp, nil
}

func (f *fakeUserRepo) Find(ctx context.Context, id midentifier.ID) (*mmodel.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byID[id]
	if !ok {
		return nil, constant.EntityNotFoundError{EntityType: "User"}
	}

	return u, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*mmodel.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.byUsername[username]
	if !ok {
		return nil, constant.EntityNotFoundError{EntityType: "User"}
	}

	return u, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*mmodel.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.byID {
		if u.Email != nil && *u.Email == email {
			return u, nil
		}
	}

	return nil, constant.EntityNotFoundError{EntityType: "User"}
}

func (f *fakeUserRepo) FindAll(ctx context.Context, limit, offset int) ([]*mmodel.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*mmodel.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}

	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id midentifier.ID, u *mmodel.User) (*mmodel.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[id]; !ok {
		return nil, constant.EntityNotFoundError{EntityType: "User"}
	}

	cp := *u
	f.byID[id] = &cp

	return &cp, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id midentifier.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[id]; !ok {
		return constant.EntityNotFoundError{EntityType: "User"}
	}

	delete(f.byID, id)

	return nil
}

func TestCreateUserRejectsNonRootCaller(t *testing.T) {
	uc := &UseCase{UserRepo: newFakeUserRepo()}
	caller := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	_, err := uc.CreateUser(context.Background(), caller, &mmodel.CreateUserInput{
		Username:    "alice",
		DisplayName: "Alice",
	})

	require.Error(t, err)
}

func TestCreateUserRejectsReservedUsername(t *testing.T) {
	uc := &UseCase{UserRepo: newFakeUserRepo()}
	root := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}

	_, err := uc.CreateUser(context.Background(), root, &mmodel.CreateUserInput{
		Username:    mmodel.ReservedRootUsername,
		DisplayName: "Root",
	})

	require.Error(t, err)
	assert.IsType(t, constant.ValidationError{}, err)
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	uc := &UseCase{UserRepo: repo}
	root := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}

	_, err := uc.CreateUser(context.Background(), root, &mmodel.CreateUserInput{
		Username:    "alice",
		DisplayName: "Alice",
	})
	require.NoError(t, err)

	_, err = uc.CreateUser(context.Background(), root, &mmodel.CreateUserInput{
		Username:    "alice",
		DisplayName: "Alice Again",
	})

	require.Error(t, err)
	assert.IsType(t, constant.EntityConflictError{}, err)
}

func TestCreateUserSucceeds(t *testing.T) {
	repo := newFakeUserRepo()
	uc := &UseCase{UserRepo: repo}
	root := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleRoot}

	created, err := uc.CreateUser(context.Background(), root, &mmodel.CreateUserInput{
		Username:    "bob",
		DisplayName: "Bob",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob", created.Username)
	assert.Equal(t, []mmodel.Role{mmodel.RoleUser}, created.Roles)

	fetched, err := repo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
}
