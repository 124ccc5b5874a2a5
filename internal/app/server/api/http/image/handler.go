package image

import (
	"context"
	"errors"
	"io"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/domain/credential"
	"passvault/internal/domain/image"
)

type Handler struct {
	service    image.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service image.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.uploadOp(), h.upload)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.fetchOp(), h.fetch)
}

func (h *Handler) upload(ctx context.Context, input *uploadInput) (*uploadOutput, error) {
	if _, ok := auth.GetSubject(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	files := input.RawBody.File["file"]
	passwordIDs := input.RawBody.Value["passwordId"]
	if len(files) == 0 || len(passwordIDs) == 0 || passwordIDs[0] == "" {
		return nil, huma.Error400BadRequest("file and passwordId are required")
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		return nil, huma.Error400BadRequest("unreadable file upload")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, huma.Error400BadRequest("unreadable file upload")
	}

	ref, err := h.service.Upload(ctx, passwordIDs[0], header.Filename,
		header.Header.Get("Content-Type"), data)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &uploadOutput{
		Body: uploadResponse{Success: true, Image: ref},
	}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if _, ok := auth.GetSubject(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, input.Body.PasswordID, input.ID); err != nil {
		return nil, h.mapError(err)
	}

	return &deleteOutput{
		Body: deleteResponse{Success: true, Message: "image deleted"},
	}, nil
}

func (h *Handler) fetch(ctx context.Context, input *fetchInput) (*fetchOutput, error) {
	if _, ok := auth.GetSubject(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	data, mimeType, err := h.service.Fetch(ctx, input.PasswordID, input.ImageID)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &fetchOutput{ContentType: mimeType, Body: data}, nil
}

func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, image.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("password not found")
	default:
		h.log.Error("image operation failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
