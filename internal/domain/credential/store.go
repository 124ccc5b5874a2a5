package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"passvault/internal/infrastructure/blob"
)

// Blob layout: one index blob holding the ordered id list, one blob per
// record, raw image bytes keyed under the owning record.
const (
	indexKey     = "passwords_list.json"
	recordPrefix = "password_"
	imagePrefix  = "images/"
)

func recordKey(id string) string {
	return recordPrefix + id + ".json"
}

func imageKey(passwordID, imageID string) string {
	return imagePrefix + passwordID + "/" + imageID
}

// Storer is the persistence contract the services depend on.
type Storer interface {
	GetRecord(ctx context.Context, id string) (*Record, error)
	PutRecord(ctx context.Context, rec *Record) error
	DeleteRecordBlob(ctx context.Context, id string) error

	ListIDs(ctx context.Context) ([]string, error)
	AddToIndex(ctx context.Context, id string) error
	RemoveFromIndex(ctx context.Context, id string) error

	GetImageBlob(ctx context.Context, passwordID, imageID string) ([]byte, error)
	PutImageBlob(ctx context.Context, passwordID, imageID string, data []byte) error
	DeleteImageBlob(ctx context.Context, passwordID, imageID string) error
}

// Store persists records and the listing index on top of an injected
// blob store.
//
// Index mutation is a read-modify-write over one shared blob; without
// serialization two concurrent writers would both read the same snapshot
// and the later put would silently drop the other's change. All index
// mutations therefore go through a single-writer mutex. Record and image
// blobs have per-key ownership and need no such guard.
type Store struct {
	blobs blob.Store
	log   *slog.Logger

	// indexMu serializes AddToIndex / RemoveFromIndex.
	indexMu sync.Mutex
}

func NewStore(blobs blob.Store, log *slog.Logger) *Store {
	return &Store{
		blobs: blobs,
		log:   log.With("component", "vault_store"),
	}
}

// GetRecord loads and decodes one record blob. A missing blob is
// ErrNotFound; whether that means "absent" or "data loss" is the
// caller's call, depending on the index.
func (s *Store) GetRecord(ctx context.Context, id string) (*Record, error) {
	data, err := s.blobs.Get(ctx, recordKey(id))
	if err != nil {
		return nil, s.classify(err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *Store) PutRecord(ctx context.Context, rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	if err := s.blobs.Put(ctx, recordKey(rec.ID), data); err != nil {
		return s.classify(err)
	}
	return nil
}

func (s *Store) DeleteRecordBlob(ctx context.Context, id string) error {
	if err := s.blobs.Delete(ctx, recordKey(id)); err != nil {
		return s.classify(err)
	}
	return nil
}

// ListIDs returns the index in insertion order. A vault that has never
// stored a record has no index blob yet; that is an empty list, not an
// error.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	return s.readIndex(ctx)
}

// AddToIndex appends id to the index blob. Callers must have written the
// record blob first: a crash between the two steps then leaves an orphan
// blob (unlisted, reclaimable) instead of a dangling index entry.
func (s *Store) AddToIndex(ctx context.Context, id string) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	ids, err := s.readIndex(ctx)
	if err != nil {
		return err
	}
	return s.writeIndex(ctx, append(ids, id))
}

// RemoveFromIndex drops id from the index blob. On delete this runs
// before the record blob is removed, for the same crash-ordering reason
// as AddToIndex.
func (s *Store) RemoveFromIndex(ctx context.Context, id string) error {
	s.indexMu.Lock()
	defer s.indexMu.Unlock()

	ids, err := s.readIndex(ctx)
	if err != nil {
		return err
	}

	kept := ids[:0]
	for _, existing := range ids {
		if existing != id {
			kept = append(kept, existing)
		}
	}
	return s.writeIndex(ctx, kept)
}

func (s *Store) GetImageBlob(ctx context.Context, passwordID, imageID string) ([]byte, error) {
	data, err := s.blobs.Get(ctx, imageKey(passwordID, imageID))
	if err != nil {
		return nil, s.classify(err)
	}
	return data, nil
}

func (s *Store) PutImageBlob(ctx context.Context, passwordID, imageID string, data []byte) error {
	if err := s.blobs.Put(ctx, imageKey(passwordID, imageID), data); err != nil {
		return s.classify(err)
	}
	return nil
}

func (s *Store) DeleteImageBlob(ctx context.Context, passwordID, imageID string) error {
	if err := s.blobs.Delete(ctx, imageKey(passwordID, imageID)); err != nil {
		return s.classify(err)
	}
	return nil
}

func (s *Store) readIndex(ctx context.Context) ([]string, error) {
	data, err := s.blobs.Get(ctx, indexKey)
	if errors.Is(err, blob.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.classify(err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return ids, nil
}

func (s *Store) writeIndex(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	if err := s.blobs.Put(ctx, indexKey, data); err != nil {
		return s.classify(err)
	}
	return nil
}

func (s *Store) classify(err error) error {
	switch {
	case errors.Is(err, blob.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, blob.ErrUnavailable):
		s.log.Error("blob store unavailable", "error", err)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return err
	}
}
