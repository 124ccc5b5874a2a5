package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Defaults applied on create, matching the stored record shape.
const (
	defaultOwner    = "Me"
	defaultCategory = "my"
)

var defaultTags = []string{"login"}

// Cipher is the encryption boundary of the vault: secrets cross it as
// plaintext only at request/response edges.
type Cipher interface {
	Encrypt(plaintext []byte) (string, error)
	Decrypt(ciphertextHex string) ([]byte, error)
}

type Servicer interface {
	Create(ctx context.Context, req CreateRequest) (View, error)
	Update(ctx context.Context, id string, patch UpdateRequest) (View, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) (ListResult, error)
}

// Service orchestrates credential CRUD: validation, id assignment,
// encryption of the secret field, and persistence ordering.
type Service struct {
	store  Storer
	cipher Cipher
	log    *slog.Logger
}

func NewService(store Storer, cipher Cipher, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		cipher: cipher,
		log:    log.With("component", "vault_service"),
	}
}

// Create stores a new credential and returns it with the secret still in
// plaintext: the creator already holds it, and echoing it exactly once
// on creation is part of the contract.
func (s *Service) Create(ctx context.Context, req CreateRequest) (View, error) {
	if req.Name == "" || req.Username == "" || req.Secret == "" {
		return View{}, fmt.Errorf("%w: name, username and password are required", ErrValidation)
	}

	ciphertext, err := s.cipher.Encrypt([]byte(req.Secret))
	if err != nil {
		s.log.Error("failed to encrypt secret", "error", err)
		return View{}, fmt.Errorf("encrypt secret: %w", err)
	}

	now := time.Now().UTC()
	rec := &Record{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Username:         req.Username,
		SecretCiphertext: ciphertext,
		URL:              req.URL,
		Owner:            req.Owner,
		Category:         req.Category,
		Tags:             req.Tags,
		Icon:             req.Icon,
		Images:           []ImageRef{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if rec.Owner == "" {
		rec.Owner = defaultOwner
	}
	if rec.Category == "" {
		rec.Category = defaultCategory
	}
	if len(rec.Tags) == 0 {
		rec.Tags = append([]string(nil), defaultTags...)
	}

	// Record blob first, index second: a crash in between leaves an
	// unlisted orphan blob rather than a listed but unreadable entry.
	if err := s.store.PutRecord(ctx, rec); err != nil {
		s.log.Error("failed to store record", "record_id", rec.ID, "error", err)
		return View{}, fmt.Errorf("store record: %w", err)
	}
	if err := s.store.AddToIndex(ctx, rec.ID); err != nil {
		s.log.Error("failed to index record", "record_id", rec.ID, "error", err)
		return View{}, fmt.Errorf("index record: %w", err)
	}

	s.log.Info("credential created", "record_id", rec.ID, "name", rec.Name)
	return rec.view(req.Secret), nil
}

// Update applies a partial merge: only fields present in the patch are
// overwritten. UpdatedAt is refreshed on every successful update, even
// when no visible field changed.
func (s *Service) Update(ctx context.Context, id string, patch UpdateRequest) (View, error) {
	rec, err := s.store.GetRecord(ctx, id)
	if err != nil {
		return View{}, err
	}

	if patch.Name != nil {
		rec.Name = *patch.Name
	}
	if patch.Username != nil {
		rec.Username = *patch.Username
	}
	if patch.URL != nil {
		rec.URL = *patch.URL
	}
	if patch.Owner != nil {
		rec.Owner = *patch.Owner
	}
	if patch.Category != nil {
		rec.Category = *patch.Category
	}
	if patch.Tags != nil {
		rec.Tags = *patch.Tags
	}
	if patch.Icon != nil {
		rec.Icon = *patch.Icon
	}

	secret := ""
	if patch.Secret != nil {
		ciphertext, err := s.cipher.Encrypt([]byte(*patch.Secret))
		if err != nil {
			s.log.Error("failed to encrypt secret", "record_id", id, "error", err)
			return View{}, fmt.Errorf("encrypt secret: %w", err)
		}
		rec.SecretCiphertext = ciphertext
		secret = *patch.Secret
	} else {
		plaintext, err := s.cipher.Decrypt(rec.SecretCiphertext)
		if err != nil {
			s.log.Error("failed to decrypt secret", "record_id", id, "error", err)
			return View{}, fmt.Errorf("decrypt secret: %w", err)
		}
		secret = string(plaintext)
	}

	rec.UpdatedAt = time.Now().UTC()

	if err := s.store.PutRecord(ctx, rec); err != nil {
		s.log.Error("failed to store record", "record_id", id, "error", err)
		return View{}, fmt.Errorf("store record: %w", err)
	}

	s.log.Info("credential updated", "record_id", id)
	return rec.view(secret), nil
}

// Delete removes the index entry first, then the record blob. Deleting
// an absent id fails with ErrNotFound, including a second delete of the
// same id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetRecord(ctx, id); err != nil {
		return err
	}

	if err := s.store.RemoveFromIndex(ctx, id); err != nil {
		s.log.Error("failed to unindex record", "record_id", id, "error", err)
		return fmt.Errorf("unindex record: %w", err)
	}
	if err := s.store.DeleteRecordBlob(ctx, id); err != nil {
		s.log.Error("failed to delete record blob", "record_id", id, "error", err)
		return fmt.Errorf("delete record blob: %w", err)
	}

	s.log.Info("credential deleted", "record_id", id)
	return nil
}

// List resolves every indexed id and decrypts the secrets for the
// response. An index entry whose blob is gone is data loss: it is
// skipped so the listing still serves, but logged and counted so the
// gap stays observable.
func (s *Service) List(ctx context.Context) (ListResult, error) {
	ids, err := s.store.ListIDs(ctx)
	if err != nil {
		s.log.Error("failed to read index", "error", err)
		return ListResult{}, fmt.Errorf("read index: %w", err)
	}

	result := ListResult{Credentials: make([]View, 0, len(ids))}
	for _, id := range ids {
		rec, err := s.store.GetRecord(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				s.log.Warn("orphaned index entry, record blob missing", "record_id", id)
				result.Missing++
				continue
			}
			return ListResult{}, fmt.Errorf("load record %s: %w", id, err)
		}

		plaintext, err := s.cipher.Decrypt(rec.SecretCiphertext)
		if err != nil {
			s.log.Error("failed to decrypt secret", "record_id", id, "error", err)
			return ListResult{}, fmt.Errorf("decrypt secret: %w", err)
		}

		result.Credentials = append(result.Credentials, rec.view(string(plaintext)))
	}

	return result, nil
}
