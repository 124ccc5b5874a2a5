package blob

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"passvault/internal/app/server/config"
	"passvault/internal/infrastructure/migration"
)

// Open builds the configured Store backend and wraps it with the
// per-operation timeout from the vault configuration.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Blob.Driver {
	case "", "memory":
		log.Warn("using in-memory blob store, data will not survive restarts")
		store = NewMemory()
	case "postgres":
		mg := migration.New(cfg.Blob.Migrations, cfg.Blob.DatabaseURI, migration.DefaultEngine)
		if err = mg.Up(); err != nil {
			return nil, fmt.Errorf("migration error: %w", err)
		}
		store, err = NewPostgres(ctx, cfg.Blob.DatabaseURI)
	case "sqlite":
		store, err = NewSQLite(cfg.Blob.SQLitePath)
	case "s3":
		store, err = NewS3(S3Config{
			Bucket:   cfg.Blob.S3Bucket,
			Region:   cfg.Blob.S3Region,
			Endpoint: cfg.Blob.S3Endpoint,
		})
	case "redis":
		store, err = NewRedis(ctx, cfg.Blob.RedisAddr)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Blob.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s blob store: %w", cfg.Blob.Driver, err)
	}

	log.Info("blob store opened", "driver", cfg.Blob.Driver)
	return WithTimeout(store, cfg.Vault.StoreTimeout), nil
}
