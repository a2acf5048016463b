package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"pet-adoption-insights/internal/adapters/storage"
	"pet-adoption-insights/internal/cli"
	"pet-adoption-insights/internal/domain/insights"
	"pet-adoption-insights/internal/domain/registry"
	"pet-adoption-insights/internal/platform/config"
	"pet-adoption-insights/internal/platform/logger"
	"pet-adoption-insights/internal/seed"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetLocalFactory(openLocal)

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// openLocal construye los servicios sobre los stores del entorno. Con
// SEED_DEMO=true y sólo stores en memoria carga el dataset de demo antes de
// correr el comando.
func openLocal(ctx context.Context) (*cli.Local, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// los logs van a stderr para no mezclarse con la salida del comando
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Output: os.Stderr,
	})

	stores, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}

	reg := registry.NewService(stores.Relational, stores.Documents, stores.Graph, log)
	if cfg.SeedDemo {
		opts := seed.DefaultOptions()
		opts.Seed = cfg.SeedRandom
		opts.Logger = log
		if _, err := seed.Demo(ctx, stores, opts); err != nil {
			_ = stores.Close(ctx)
			return nil, err
		}
	}

	return &cli.Local{
		Insights: insights.NewService(stores.Relational, stores.Documents, stores.Graph, log),
		Registry: reg,
		Close:    stores.Close,
	}, nil
}
