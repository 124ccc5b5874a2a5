package password

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"passvault/internal/app/server/api/http/middleware/auth"
	"passvault/internal/domain/credential"
)

type Handler struct {
	service    credential.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service credential.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
}

func (h *Handler) list(ctx context.Context, _ *struct{}) (*listOutput, error) {
	if _, ok := auth.GetSubject(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	result, err := h.service.List(ctx)
	if err != nil {
		return nil, h.mapError(err)
	}

	return &listOutput{
		Orphaned: result.Missing,
		Body:     result.Credentials,
	}, nil
}

func (h *Handler) create(ctx context.Context, input *createInput) (*recordOutput, error) {
	if _, ok := auth.GetSubject(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	view, err := h.service.Create(ctx, credential.CreateRequest{
		Name:     input.Body.Name,
		Username: input.Body.Username,
		Secret:   input.Body.Password,
		URL:      input.Body.URL,
		Owner:    input.Body.Owner,
		Category: input.Body.Category,
		Tags:     input.Body.Tags,
		Icon:     input.Body.Icon,
	})
	if err != nil {
		return nil, h.mapError(err)
	}

	return &recordOutput{Body: view}, nil
}

func (h *Handler) update(ctx context.Context, input *updateInput) (*recordOutput, error) {
	if _, ok := auth.GetSubject(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	view, err := h.service.Update(ctx, input.ID, credential.UpdateRequest{
		Name:     input.Body.Name,
		Username: input.Body.Username,
		Secret:   input.Body.Password,
		URL:      input.Body.URL,
		Owner:    input.Body.Owner,
		Category: input.Body.Category,
		Tags:     input.Body.Tags,
		Icon:     input.Body.Icon,
	})
	if err != nil {
		return nil, h.mapError(err)
	}

	return &recordOutput{Body: view}, nil
}

func (h *Handler) delete(ctx context.Context, input *deleteInput) (*deleteOutput, error) {
	if _, ok := auth.GetSubject(ctx); !ok {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}

	if err := h.service.Delete(ctx, input.ID); err != nil {
		return nil, h.mapError(err)
	}

	return &deleteOutput{
		Body: deleteResponse{Success: true, Message: "password deleted"},
	}, nil
}

// mapError translates domain errors into HTTP responses. Crypto and
// store failures are logged in full but surfaced opaquely.
func (h *Handler) mapError(err error) error {
	switch {
	case errors.Is(err, credential.ErrValidation):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, credential.ErrNotFound):
		return huma.Error404NotFound("password not found")
	default:
		h.log.Error("password operation failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
