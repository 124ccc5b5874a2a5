package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"passvault/internal/domain/token"
)

// Auth gates handler groups behind bearer-token verification. Tokens are
// self-contained; no session lookup happens here.
type Auth struct {
	tokens token.Servicer
	log    *slog.Logger
}

func New(tokens token.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		tokens: tokens,
		log:    log.With("component", "auth_middleware"),
	}
}

type contextKey string

const subjectKey contextKey = "subject"

// Middleware verifies the Authorization header and stores the verified
// subject in the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		header := ctx.Header("Authorization")

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			a.log.Debug("missing or malformed Authorization header")
			a.unauthorized(ctx)
			return
		}

		claims, err := a.tokens.Verify(raw)
		if err != nil {
			a.log.Debug("token rejected", "error", err)
			a.unauthorized(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), subjectKey, claims.Subject)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) unauthorized(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")

	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("failed to write unauthorized response", "error", err)
	}
}

// GetSubject returns the verified token subject stored by Middleware.
func GetSubject(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok
}
