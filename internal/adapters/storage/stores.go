package storage

import (
	"context"
	"errors"
	"fmt"

	"pet-adoption-insights/internal/adapters/storage/memory"
	"pet-adoption-insights/internal/adapters/storage/mongodb"
	"pet-adoption-insights/internal/adapters/storage/neo4jdb"
	"pet-adoption-insights/internal/adapters/storage/postgres"
	"pet-adoption-insights/internal/platform/config"
	"pet-adoption-insights/internal/platform/logger"
	"pet-adoption-insights/internal/ports/documents"
	"pet-adoption-insights/internal/ports/graph"
	"pet-adoption-insights/internal/ports/relational"
)

// Stores agrupa los tres adapters. Se construye una vez al arrancar y se
// inyecta en los servicios.
type Stores struct {
	Relational relational.Store
	Documents  documents.Store
	Graph      graph.Store

	closers []func(context.Context) error
}

// Memory devuelve los tres stores en memoria (dev/tests).
func Memory() *Stores {
	return &Stores{
		Relational: memory.NewRelational(),
		Documents:  memory.NewDocuments(),
		Graph:      memory.NewGraph(),
	}
}

// Open conecta cada store configurado; los no configurados caen a memoria.
// Si una conexión falla se cierran las ya abiertas.
func Open(ctx context.Context, cfg config.Config, log logger.Logger) (*Stores, error) {
	if log == nil {
		log = logger.Nop()
	}
	s := Memory()

	if dsn := cfg.Postgres.ConnString(); dsn != "" {
		db, err := postgres.Open(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		s.closers = append(s.closers, func(context.Context) error { return db.Close() })
		if err := postgres.Migrate(ctx, db); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Relational = postgres.NewRelational(db)
		log.Info("relational store: postgres", nil)
	} else {
		log.Warn("relational store: in-memory", nil)
	}

	if cfg.Mongo.Enabled() {
		client, err := mongodb.Open(ctx, cfg.Mongo.URI)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("mongo: %w", err)
		}
		s.closers = append(s.closers, client.Disconnect)
		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Documents = mongodb.NewDocuments(db)
		log.Info("document store: mongodb", map[string]any{"database": cfg.Mongo.Database})
	} else {
		log.Warn("document store: in-memory", nil)
	}

	if cfg.Neo4j.Enabled() {
		driver, err := neo4jdb.Open(ctx, cfg.Neo4j.URI, cfg.Neo4j.User, cfg.Neo4j.Pass)
		if err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("neo4j: %w", err)
		}
		s.closers = append(s.closers, driver.Close)
		if err := neo4jdb.EnsureConstraints(ctx, driver, cfg.Neo4j.Database); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		s.Graph = neo4jdb.NewGraph(driver, cfg.Neo4j.Database)
		log.Info("graph store: neo4j", map[string]any{"database": cfg.Neo4j.Database})
	} else {
		log.Warn("graph store: in-memory", nil)
	}

	return s, nil
}

// InMemory indica si los tres stores son los de memoria.
func (s *Stores) InMemory() bool {
	_, rel := s.Relational.(*memory.Relational)
	_, docs := s.Documents.(*memory.Documents)
	_, g := s.Graph.(*memory.Graph)
	return rel && docs && g
}

// Close cierra las conexiones abiertas, en orden inverso.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
