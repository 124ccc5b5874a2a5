// Vault HTTP surface:
//
//	POST   /api/login                            login, issues bearer token (public)
//	GET    /api/passwords                        list credentials (auth)
//	POST   /api/passwords                        create credential (auth)
//	PUT    /api/passwords/{id}                   partial update (auth)
//	DELETE /api/passwords/{id}                   delete credential (auth)
//	POST   /api/images                           attach image, multipart (auth)
//	DELETE /api/images/{id}                      detach image (auth)
//	GET    /api/images/{passwordId}/{imageId}    raw image bytes (auth)
//	GET    /health                               liveness (public)
package api

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	authAPI "passvault/internal/app/server/api/http/auth"
	healthAPI "passvault/internal/app/server/api/http/health"
	imageAPI "passvault/internal/app/server/api/http/image"
	"passvault/internal/app/server/api/http/middleware"
	authMW "passvault/internal/app/server/api/http/middleware/auth"
	loggerMW "passvault/internal/app/server/api/http/middleware/logger"
	passwordAPI "passvault/internal/app/server/api/http/password"
	"passvault/internal/app/server/config"
	"passvault/internal/crypto"
	"passvault/internal/domain/credential"
	"passvault/internal/domain/image"
	"passvault/internal/domain/token"
	"passvault/internal/domain/user"
	"passvault/internal/infrastructure/blob"
)

type Handlers struct {
	Health   *healthAPI.Handler
	Auth     *authAPI.Handler
	Password *passwordAPI.Handler
	Image    *imageAPI.Handler
}

// New builds a *chi.Mux with every operation registered through huma.
func New(cfg *config.Config, blobs blob.Store, log *slog.Logger) (*chi.Mux, error) {
	mux := chi.NewMux()

	humaCfg := huma.DefaultConfig("Passvault API", "1.0.0")
	humaCfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, humaCfg)

	h, err := handlers(cfg, blobs, log)
	if err != nil {
		return nil, fmt.Errorf("build handlers: %w", err)
	}
	h.Health.SetupRoutes(API)
	h.Auth.SetupRoutes(API)
	h.Password.SetupRoutes(API)
	h.Image.SetupRoutes(API)

	return mux, nil
}

func handlers(cfg *config.Config, blobs blob.Store, log *slog.Logger) (*Handlers, error) {
	tokenService := token.NewService([]byte(cfg.Auth.TokenSecret), log)
	authMiddleware := authMW.New(tokenService, log)
	loggerMiddleware := loggerMW.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMiddleware.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userService := user.NewService(cfg.Auth.OperatorLogin, cfg.Auth.OperatorPasswordHash, log)
	middlewares.Add(loggerMiddleware.Middleware())
	authHandler := authAPI.NewHandler(userService, tokenService, log, middlewares.GetAllAndClear())

	engine, err := crypto.NewEngine(cfg.EncryptionKeyBytes())
	if err != nil {
		return nil, fmt.Errorf("build cipher engine: %w", err)
	}

	store := credential.NewStore(blobs, log)
	vaultService := credential.NewService(store, engine, log)
	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	passwordHandler := passwordAPI.NewHandler(vaultService, log, middlewares.GetAllAndClear())

	imageService := image.NewService(store, cfg.Server.PublicURL, log)
	middlewares.Add(authMiddleware.Middleware())
	middlewares.Add(loggerMiddleware.Middleware())
	imageHandler := imageAPI.NewHandler(imageService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health:   healthHandler,
		Auth:     authHandler,
		Password: passwordHandler,
		Image:    imageHandler,
	}, nil
}
