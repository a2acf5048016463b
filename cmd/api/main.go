package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-adoption-insights/internal/adapters/storage"
	"pet-adoption-insights/internal/platform/config"
	"pet-adoption-insights/internal/platform/logger"
	"pet-adoption-insights/internal/router"
	"pet-adoption-insights/internal/seed"
)

// @title Pet Adoption Insights API
// @version 1.0
// @description Consultas agregadas sobre Postgres, MongoDB y Neo4j para adopción de mascotas.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Error("config error", map[string]any{"err": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("open stores: %w", err)
	}
	defer func() {
		if err := stores.Close(context.Background()); err != nil {
			log.Warn("close stores", map[string]any{"err": err})
		}
	}()

	if cfg.SeedDemo {
		opts := seed.DefaultOptions()
		opts.Seed = cfg.SeedRandom
		opts.Logger = log
		if _, err := seed.Demo(ctx, stores, opts); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router.NewRouter(router.Options{Stores: stores, Logger: log}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("server stopped", nil)
	return nil
}
