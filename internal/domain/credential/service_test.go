package credential

import (
	"context"
	cryptorand "crypto/rand"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"passvault/internal/crypto"
	"passvault/internal/infrastructure/blob"
)

func newTestService(t *testing.T) (*Service, *Store, *blob.Memory) {
	t.Helper()

	key := make([]byte, 32)
	_, err := cryptorand.Read(key)
	require.NoError(t, err)
	engine, err := crypto.NewEngine(key)
	require.NoError(t, err)

	blobs := blob.NewMemory()
	store := NewStore(blobs, slog.Default())
	return NewService(store, engine, slog.Default()), store, blobs
}

func strptr(s string) *string { return &s }

func TestService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing name", CreateRequest{Username: "a@b.com", Secret: "p1"}},
		{"missing username", CreateRequest{Name: "Gmail", Secret: "p1"}},
		{"missing secret", CreateRequest{Name: "Gmail", Username: "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(ctx, tt.req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestService_CreateThenList(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newTestService(t)

	created, err := service.Create(ctx, CreateRequest{
		Name:     "Gmail",
		Username: "a@b.com",
		Secret:   "p1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "p1", created.Secret, "creator sees their own plaintext once")
	assert.Equal(t, "Me", created.Owner)
	assert.Equal(t, "my", created.Category)
	assert.Equal(t, []string{"login"}, created.Tags)
	assert.False(t, created.UpdatedAt.Before(created.CreatedAt))

	// At rest the secret exists only as ciphertext.
	rec, err := store.GetRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, rec.SecretCiphertext)
	assert.NotContains(t, rec.SecretCiphertext, "p1")

	listed, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Credentials, 1)
	assert.Zero(t, listed.Missing)
	assert.Equal(t, "p1", listed.Credentials[0].Secret)
	assert.Equal(t, "Gmail", listed.Credentials[0].Name)
	assert.Equal(t, "a@b.com", listed.Credentials[0].Username)
}

func TestService_UpdatePartialMerge(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	created, err := service.Create(ctx, CreateRequest{
		Name:     "Gmail",
		Username: "a@b.com",
		Secret:   "p1",
		URL:      "https://mail.google.com",
	})
	require.NoError(t, err)

	time.Sleep(time.Millisecond)

	updated, err := service.Update(ctx, created.ID, UpdateRequest{Secret: strptr("new")})
	require.NoError(t, err)

	assert.Equal(t, "new", updated.Secret)
	assert.Equal(t, "Gmail", updated.Name)
	assert.Equal(t, "a@b.com", updated.Username)
	assert.Equal(t, "https://mail.google.com", updated.URL)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt), "updatedAt must strictly increase")

	listed, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Credentials, 1)
	assert.Equal(t, "new", listed.Credentials[0].Secret)
}

func TestService_UpdateWithoutSecretKeepsCiphertext(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newTestService(t)

	created, err := service.Create(ctx, CreateRequest{Name: "Gmail", Username: "a@b.com", Secret: "p1"})
	require.NoError(t, err)

	before, err := store.GetRecord(ctx, created.ID)
	require.NoError(t, err)

	updated, err := service.Update(ctx, created.ID, UpdateRequest{Name: strptr("Google Mail")})
	require.NoError(t, err)
	assert.Equal(t, "Google Mail", updated.Name)
	assert.Equal(t, "p1", updated.Secret, "unchanged secret is decrypted for the response")

	after, err := store.GetRecord(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, before.SecretCiphertext, after.SecretCiphertext)
}

func TestService_UpdateNotFound(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	_, err := service.Update(ctx, "missing", UpdateRequest{Name: strptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteThenRedelete(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newTestService(t)

	created, err := service.Create(ctx, CreateRequest{Name: "Gmail", Username: "a@b.com", Secret: "p1"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, created.ID))

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = service.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound, "second delete of the same id must fail")
}

func TestService_ListingConsistency(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newTestService(t)

	const n = 7
	seen := make(map[string]bool)
	for i := 0; i < n; i++ {
		created, err := service.Create(ctx, CreateRequest{
			Name:     fmt.Sprintf("site-%d", i),
			Username: "a@b.com",
			Secret:   fmt.Sprintf("secret-%d", i),
		})
		require.NoError(t, err)
		seen[created.ID] = true
	}
	require.Len(t, seen, n)

	listed, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed.Credentials, n)

	ids := make(map[string]int)
	for _, v := range listed.Credentials {
		ids[v.ID]++
	}
	for id, count := range ids {
		assert.Equal(t, 1, count, "id %s listed more than once", id)
		assert.True(t, seen[id])
	}
}

func TestService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newTestService(t)

	const m = 32

	var wg sync.WaitGroup
	for i := 0; i < m; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := service.Create(ctx, CreateRequest{
				Name:     fmt.Sprintf("site-%d", n),
				Username: "a@b.com",
				Secret:   "p1",
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	ids, err := store.ListIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, m, "concurrent creates lost index updates")

	listed, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed.Credentials, m)
	assert.Zero(t, listed.Missing)
}

func TestService_ListSkipsOrphanedIndexEntries(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newTestService(t)

	first, err := service.Create(ctx, CreateRequest{Name: "a", Username: "u", Secret: "s"})
	require.NoError(t, err)
	_, err = service.Create(ctx, CreateRequest{Name: "b", Username: "u", Secret: "s"})
	require.NoError(t, err)

	// Simulate data loss: the blob disappears but the index entry stays.
	require.NoError(t, store.DeleteRecordBlob(ctx, first.ID))

	listed, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, listed.Credentials, 1)
	assert.Equal(t, 1, listed.Missing, "the orphan must stay observable")
	assert.Equal(t, "b", listed.Credentials[0].Name)
}

// MockStorer exercises the error paths without a real blob store.
type MockStorer struct {
	mock.Mock
}

func (m *MockStorer) GetRecord(ctx context.Context, id string) (*Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Record), args.Error(1)
}

func (m *MockStorer) PutRecord(ctx context.Context, rec *Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockStorer) DeleteRecordBlob(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorer) ListIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorer) AddToIndex(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorer) RemoveFromIndex(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorer) GetImageBlob(ctx context.Context, passwordID, imageID string) ([]byte, error) {
	args := m.Called(ctx, passwordID, imageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorer) PutImageBlob(ctx context.Context, passwordID, imageID string, data []byte) error {
	args := m.Called(ctx, passwordID, imageID, data)
	return args.Error(0)
}

func (m *MockStorer) DeleteImageBlob(ctx context.Context, passwordID, imageID string) error {
	args := m.Called(ctx, passwordID, imageID)
	return args.Error(0)
}

func TestService_ListStoreUnavailable(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStorer)
	mockStore.On("ListIDs", ctx).Return(nil, ErrStoreUnavailable)

	key := make([]byte, 32)
	engine, err := crypto.NewEngine(key)
	require.NoError(t, err)

	service := NewService(mockStore, engine, slog.Default())

	_, err = service.List(ctx)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	mockStore.AssertExpectations(t)
}

func TestService_DeleteOrderIndexBeforeBlob(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStorer)

	rec := &Record{ID: "id-1"}
	mockStore.On("GetRecord", ctx, "id-1").Return(rec, nil)

	var order []string
	mockStore.On("RemoveFromIndex", ctx, "id-1").Run(func(mock.Arguments) {
		order = append(order, "index")
	}).Return(nil)
	mockStore.On("DeleteRecordBlob", ctx, "id-1").Run(func(mock.Arguments) {
		order = append(order, "blob")
	}).Return(nil)

	key := make([]byte, 32)
	engine, err := crypto.NewEngine(key)
	require.NoError(t, err)

	service := NewService(mockStore, engine, slog.Default())
	require.NoError(t, service.Delete(ctx, "id-1"))

	assert.Equal(t, []string{"index", "blob"}, order)
	mockStore.AssertExpectations(t)
}

func TestService_CreateOrderBlobBeforeIndex(t *testing.T) {
	ctx := context.Background()
	mockStore := new(MockStorer)

	var order []string
	mockStore.On("PutRecord", ctx, mock.AnythingOfType("*credential.Record")).Run(func(mock.Arguments) {
		order = append(order, "blob")
	}).Return(nil)
	mockStore.On("AddToIndex", ctx, mock.AnythingOfType("string")).Run(func(mock.Arguments) {
		order = append(order, "index")
	}).Return(nil)

	key := make([]byte, 32)
	engine, err := crypto.NewEngine(key)
	require.NoError(t, err)

	service := NewService(mockStore, engine, slog.Default())
	_, err = service.Create(ctx, CreateRequest{Name: "n", Username: "u", Secret: "s"})
	require.NoError(t, err)

	assert.Equal(t, []string{"blob", "index"}, order)
	mockStore.AssertExpectations(t)
}
