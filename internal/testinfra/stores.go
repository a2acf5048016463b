//go:build integration

package testinfra

import (
	"context"
	"testing"
	"time"

	tcmongo "github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcneo4j "github.com/testcontainers/testcontainers-go/modules/neo4j"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	PostgresImage = "postgres:16-alpine"
	MongoImage    = "mongo:7"
	Neo4jImage    = "neo4j:5"

	Neo4jUser     = "neo4j"
	Neo4jPassword = "insights-test"

	startTimeout = 2 * time.Minute
)

// StartPostgres levanta Postgres y devuelve el DSN. El contenedor se termina
// al final del test.
func StartPostgres(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := tcpostgres.Run(ctx, PostgresImage,
		tcpostgres.WithDatabase("insights"),
		tcpostgres.WithUsername("insights"),
		tcpostgres.WithPassword("insights"),
		tcpostgres.BasicWaitStrategies(),
	)
	if c != nil {
		t.Cleanup(func() { CleanupContainer(t, c) })
	}
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("postgres connection string: %v", err)
	}
	return dsn
}

// StartMongo levanta MongoDB y devuelve la URI.
func StartMongo(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := tcmongo.Run(ctx, MongoImage)
	if c != nil {
		t.Cleanup(func() { CleanupContainer(t, c) })
	}
	if err != nil {
		t.Fatalf("start mongo container: %v", err)
	}

	uri, err := c.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo connection string: %v", err)
	}
	return uri
}

// StartNeo4j levanta Neo4j y devuelve la URI bolt. Credenciales:
// Neo4jUser / Neo4jPassword.
func StartNeo4j(t *testing.T) string {
	t.Helper()
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()

	c, err := tcneo4j.Run(ctx, Neo4jImage, tcneo4j.WithAdminPassword(Neo4jPassword))
	if c != nil {
		t.Cleanup(func() { CleanupContainer(t, c) })
	}
	if err != nil {
		t.Fatalf("start neo4j container: %v", err)
	}

	uri, err := c.BoltUrl(ctx)
	if err != nil {
		t.Fatalf("neo4j bolt url: %v", err)
	}
	return uri
}
