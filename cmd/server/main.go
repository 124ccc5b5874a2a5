package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"passvault/internal/app/server/api"
	"passvault/internal/app/server/config"
	"passvault/internal/infrastructure/blob"
	"passvault/internal/utils/logger"
)

func main() {
	conf := config.MustLoad()
	log := logger.New(conf.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	blobs, err := blob.Open(ctx, conf, log)
	if err != nil {
		log.Error("failed to open blob store", "error", err)
		os.Exit(1)
	}

	mux, err := api.New(conf, blobs, log)
	if err != nil {
		log.Error("failed to build API", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:    conf.Server.RunAddress,
		Handler: mux,
	}

	go func() {
		log.Info("server starting", "address", conf.Server.RunAddress, "env", conf.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}
