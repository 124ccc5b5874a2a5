package image

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/credential"
)

var ErrValidation = errors.New("invalid image data")

type Servicer interface {
	Upload(ctx context.Context, passwordID, filename, mimeType string, data []byte) (credential.ImageRef, error)
	Delete(ctx context.Context, passwordID, imageID string) error
	Fetch(ctx context.Context, passwordID, imageID string) ([]byte, string, error)
}

// Service manages images attached to credential records: the raw bytes
// go to the blob store, the ImageRef metadata lives on the owning
// record.
type Service struct {
	store     credential.Storer
	publicURL string
	log       *slog.Logger
}

func NewService(store credential.Storer, publicURL string, log *slog.Logger) *Service {
	return &Service{
		store:     store,
		publicURL: strings.TrimSuffix(publicURL, "/"),
		log:       log.With("component", "image_service"),
	}
}

// Upload stores the image bytes and appends an ImageRef to the record.
// The record must exist; its UpdatedAt is refreshed.
func (s *Service) Upload(ctx context.Context, passwordID, filename, mimeType string, data []byte) (credential.ImageRef, error) {
	if passwordID == "" || len(data) == 0 {
		return credential.ImageRef{}, fmt.Errorf("%w: file and passwordId are required", ErrValidation)
	}

	rec, err := s.store.GetRecord(ctx, passwordID)
	if err != nil {
		return credential.ImageRef{}, err
	}

	imageID := uuid.NewString()
	if err := s.store.PutImageBlob(ctx, passwordID, imageID, data); err != nil {
		s.log.Error("failed to store image", "record_id", passwordID, "image_id", imageID, "error", err)
		return credential.ImageRef{}, fmt.Errorf("store image: %w", err)
	}

	ref := credential.ImageRef{
		ID:        imageID,
		URL:       fmt.Sprintf("%s/api/images/%s/%s", s.publicURL, passwordID, imageID),
		Name:      filename,
		MimeType:  mimeType,
		SizeBytes: int64(len(data)),
		CreatedAt: time.Now().UTC(),
	}

	rec.Images = append(rec.Images, ref)
	rec.UpdatedAt = time.Now().UTC()

	if err := s.store.PutRecord(ctx, rec); err != nil {
		s.log.Error("failed to attach image to record", "record_id", passwordID, "image_id", imageID, "error", err)
		return credential.ImageRef{}, fmt.Errorf("attach image: %w", err)
	}

	s.log.Info("image uploaded", "record_id", passwordID, "image_id", imageID, "size", ref.SizeBytes)
	return ref, nil
}

// Delete removes the image bytes and filters the ref out of the record.
// A ref whose blob is already gone still gets filtered.
func (s *Service) Delete(ctx context.Context, passwordID, imageID string) error {
	rec, err := s.store.GetRecord(ctx, passwordID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteImageBlob(ctx, passwordID, imageID); err != nil && !errors.Is(err, credential.ErrNotFound) {
		s.log.Error("failed to delete image blob", "record_id", passwordID, "image_id", imageID, "error", err)
		return fmt.Errorf("delete image blob: %w", err)
	}

	kept := rec.Images[:0]
	for _, ref := range rec.Images {
		if ref.ID != imageID {
			kept = append(kept, ref)
		}
	}
	rec.Images = kept
	rec.UpdatedAt = time.Now().UTC()

	if err := s.store.PutRecord(ctx, rec); err != nil {
		s.log.Error("failed to detach image from record", "record_id", passwordID, "image_id", imageID, "error", err)
		return fmt.Errorf("detach image: %w", err)
	}

	s.log.Info("image deleted", "record_id", passwordID, "image_id", imageID)
	return nil
}

// Fetch returns the raw image bytes and their MIME type.
func (s *Service) Fetch(ctx context.Context, passwordID, imageID string) ([]byte, string, error) {
	rec, err := s.store.GetRecord(ctx, passwordID)
	if err != nil {
		return nil, "", err
	}

	mimeType := "application/octet-stream"
	for _, ref := range rec.Images {
		if ref.ID == imageID {
			mimeType = ref.MimeType
			break
		}
	}

	data, err := s.store.GetImageBlob(ctx, passwordID, imageID)
	if err != nil {
		return nil, "", err
	}
	return data, mimeType, nil
}
