package auth

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/token"
	"passvault/internal/domain/user"
)

type Handler struct {
	users      user.Servicer
	tokens     token.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(users user.Servicer, tokens token.Servicer, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		users:      users,
		tokens:     tokens,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.loginOp(), h.login)
}

func (h *Handler) login(ctx context.Context, input *loginInput) (*loginOutput, error) {
	if err := h.users.Authenticate(ctx, input.Body.Username, input.Body.Password); err != nil {
		// One answer for every failure mode, no detail leaks.
		return nil, huma.Error401Unauthorized("invalid credentials")
	}

	raw, err := h.tokens.Issue(input.Body.Username)
	if err != nil {
		h.log.Error("failed to issue token", "error", err)
		return nil, huma.Error500InternalServerError("internal error")
	}

	return &loginOutput{
		Body: LoginResponse{Token: raw},
	}, nil
}
