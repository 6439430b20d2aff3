package command

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/adapters/queue"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/internal/authz"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/constant"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/midentifier"
	"github.com/PAIR-Systems-Inc/goodmem-sub000/pkg/mmodel"
)

// fakeMemoryRepo is a hand-written test double for memory.Repository.
type fakeMemoryRepo struct {
	mu      sync.Mutex
	byID    map[midentifier.ID]*mmodel.Memory
	vectors map[midentifier.ID][]float32
}

func newFakeMemoryRepo() *fakeMemoryRepo {
	return &fakeMemoryRepo{
		byID:    map[midentifier.ID]*mmodel.Memory{},
		vectors: map[midentifier.ID][]float32{},
	}
}

func (f *fakeMemoryRepo) Create(ctx context.Context, m *mmodel.Memory) (*mmodel.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *m
	f.byID[m.ID] = &cp

	return &cp, nil
}

func (f *fakeMemoryRepo) Find(ctx context.Context, id midentifier.ID) (*mmodel.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.byID[id]
	if !ok {
		return nil, constant.EntityNotFoundError{EntityType: "Memory"}
	}

	return m, nil
}

func (f *fakeMemoryRepo) FindAll(ctx context.Context, filter mmodel.MemoryListFilter, limit, offset int) ([]*mmodel.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]*mmodel.Memory, 0, len(f.byID))
	for _, m := range f.byID {
		out = append(out, m)
	}

	return out, nil
}

func (f *fakeMemoryRepo) UpdateProcessingStatus(ctx context.Context, id midentifier.ID, status mmodel.ProcessingStatus) (*mmodel.Memory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	m, ok := f.byID[id]
	if !ok {
		return nil, constant.EntityNotFoundError{EntityType: "Memory"}
	}

	m.ProcessingStatus = status

	return m, nil
}

func (f *fakeMemoryRepo) UpdateVector(ctx context.Context, id midentifier.ID, vector []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[id]; !ok {
		return constant.EntityNotFoundError{EntityType: "Memory"}
	}

	f.vectors[id] = vector

	return nil
}

func (f *fakeMemoryRepo) Delete(ctx context.Context, id midentifier.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.byID[id]; !ok {
		return constant.EntityNotFoundError{EntityType: "Memory"}
	}

	delete(f.byID, id)

	return nil
}

// fakeQueue records published embedding.requested events.
type fakeQueue struct {
	mu     sync.Mutex
	events []queue.EmbeddingRequested
}

func (f *fakeQueue) PublishEmbeddingRequested(ctx context.Context, event queue.EmbeddingRequested) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, event)

	return nil
}

// fakeStore is an in-memory object store double. removeErr, when set,
// makes every Remove fail, to exercise the best-effort blob cleanup.
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	removeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

func (f *fakeStore) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return true, nil
}

func (f *fakeStore) MakeBucket(ctx context.Context, bucket string) error {
	return nil
}

func (f *fakeStore) Put(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.objects[objectKey(bucket, key)] = data

	return nil
}

func (f *fakeStore) Get(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, ok := f.objects[objectKey(bucket, key)]
	if !ok {
		return nil, errors.New("no such object")
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeStore) Stat(ctx context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.objects[objectKey(bucket, key)]; !ok {
		return errors.New("no such object")
	}

	return nil
}

func (f *fakeStore) Remove(ctx context.Context, bucket, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.removeErr != nil {
		return f.removeErr
	}

	delete(f.objects, objectKey(bucket, key))
	f.removed = append(f.removed, objectKey(bucket, key))

	return nil
}

// memoryFixture wires a UseCase with one space owned by owner and one
// uploaded blob, the baseline every memory test starts from.
func memoryFixture(t *testing.T, owner authz.Principal) (*UseCase, *fakeMemoryRepo, *fakeQueue, *fakeStore, midentifier.ID) {
	t.Helper()

	embedders := newFakeEmbedderRepo()
	embedderID := seedEmbedder(t, embedders)
	spaces := newFakeSpaceRepo()
	memories := newFakeMemoryRepo()
	q := &fakeQueue{}
	store := newFakeStore()

	uc := &UseCase{
		SpaceRepo:     spaces,
		EmbedderRepo:  embedders,
		MemoryRepo:    memories,
		QueueRepo:     q,
		ObjectStore:   store,
		ContentBucket: "content",
	}

	sp, err := uc.CreateSpace(context.Background(), owner, &mmodel.CreateSpaceInput{Name: "S", EmbedderID: &embedderID})
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "content", "blob-1", bytes.NewReader([]byte("hello")), 5, "text/plain"))

	return uc, memories, q, store, sp.ID
}

func TestCreateMemoryRejectsUnknownSpace(t *testing.T) {
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	uc, _, _, _, _ := memoryFixture(t, owner)

	_, err := uc.CreateMemory(context.Background(), owner, &mmodel.CreateMemoryInput{
		SpaceID:            midentifier.New(),
		OriginalContentRef: "blob-1",
		ContentType:        "text/plain",
	})

	require.Error(t, err)
	assert.IsType(t, constant.FailedPreconditionError{}, err)
}

func TestCreateMemoryRejectsMissingBlob(t *testing.T) {
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	uc, _, _, _, spaceID := memoryFixture(t, owner)

	_, err := uc.CreateMemory(context.Background(), owner, &mmodel.CreateMemoryInput{
		SpaceID:            spaceID,
		OriginalContentRef: "never-uploaded",
		ContentType:        "text/plain",
	})

	require.Error(t, err)
	assert.IsType(t, constant.FailedPreconditionError{}, err)
}

func TestCreateMemoryStartsPendingAndPublishesEvent(t *testing.T) {
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	uc, _, q, _, spaceID := memoryFixture(t, owner)

	created, err := uc.CreateMemory(context.Background(), owner, &mmodel.CreateMemoryInput{
		SpaceID:            spaceID,
		OriginalContentRef: "blob-1",
		ContentType:        "text/plain",
	})

	require.NoError(t, err)
	assert.Equal(t, mmodel.ProcessingPending, created.ProcessingStatus)

	require.Len(t, q.events, 1)
	assert.Equal(t, created.ID, q.events[0].MemoryID)
	assert.Equal(t, spaceID, q.events[0].SpaceID)
}

func TestCreateMemoryDeniedInForeignSpace(t *testing.T) {
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	uc, _, _, _, spaceID := memoryFixture(t, owner)

	stranger := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}

	_, err := uc.CreateMemory(context.Background(), stranger, &mmodel.CreateMemoryInput{
		SpaceID:            spaceID,
		OriginalContentRef: "blob-1",
		ContentType:        "text/plain",
	})

	require.Error(t, err)
	assert.IsType(t, constant.PermissionError{}, err)
}

func TestDeleteMemorySurvivesBlobRemovalFailure(t *testing.T) {
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	uc, memories, _, store, spaceID := memoryFixture(t, owner)

	created, err := uc.CreateMemory(context.Background(), owner, &mmodel.CreateMemoryInput{
		SpaceID:            spaceID,
		OriginalContentRef: "blob-1",
		ContentType:        "text/plain",
	})
	require.NoError(t, err)

	store.removeErr = errors.New("object store down")

	// Row deletion is authoritative; the blob cleanup is best-effort.
	require.NoError(t, uc.DeleteMemory(context.Background(), owner, created.ID))

	_, err = memories.Find(context.Background(), created.ID)
	assert.IsType(t, constant.EntityNotFoundError{}, err)
}

func TestAdvanceMemoryProcessingStatus(t *testing.T) {
	owner := authz.Principal{ID: midentifier.New(), Role: mmodel.RoleUser}
	uc, memories, _, _, spaceID := memoryFixture(t, owner)

	created, err := uc.CreateMemory(context.Background(), owner, &mmodel.CreateMemoryInput{
		SpaceID:            spaceID,
		OriginalContentRef: "blob-1",
		ContentType:        "text/plain",
	})
	require.NoError(t, err)

	// PENDING may not jump straight to COMPLETED.
	_, err = uc.AdvanceMemoryProcessingStatus(context.Background(), created.ID, mmodel.ProcessingCompleted, nil)
	require.Error(t, err)
	assert.IsType(t, constant.FailedPreconditionError{}, err)

	_, err = uc.AdvanceMemoryProcessingStatus(context.Background(), created.ID, mmodel.ProcessingInProgress, nil)
	require.NoError(t, err)

	// The vector must match the bound embedder's dimensionality (the
	// fixture embedder is 8-dimensional).
	_, err = uc.AdvanceMemoryProcessingStatus(context.Background(), created.ID, mmodel.ProcessingCompleted, []float32{0.1, 0.2})
	require.Error(t, err)
	assert.IsType(t, constant.ValidationError{}, err)
	assert.Empty(t, memories.vectors[created.ID])

	vector := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}

	updated, err := uc.AdvanceMemoryProcessingStatus(context.Background(), created.ID, mmodel.ProcessingCompleted, vector)
	require.NoError(t, err)
	assert.Equal(t, mmodel.ProcessingCompleted, updated.ProcessingStatus)
	assert.Equal(t, vector, memories.vectors[created.ID])
}
