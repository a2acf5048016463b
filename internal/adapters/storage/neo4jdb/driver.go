package neo4jdb

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Open crea el driver y verifica conectividad. El caller es dueño de Close.
func Open(ctx context.Context, uri, user, pass string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, pass, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		_ = driver.Close(context.Background())
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}
	return driver, nil
}

var constraints = []string{
	`CREATE CONSTRAINT user_id IF NOT EXISTS FOR (u:User) REQUIRE u.id IS UNIQUE`,
	`CREATE CONSTRAINT pet_id IF NOT EXISTS FOR (p:Pet) REQUIRE p.id IS UNIQUE`,
	`CREATE CONSTRAINT shelter_id IF NOT EXISTS FOR (s:Shelter) REQUIRE s.id IS UNIQUE`,
	`CREATE CONSTRAINT tag_name IF NOT EXISTS FOR (t:Tag) REQUIRE t.name IS UNIQUE`,
	`CREATE CONSTRAINT breed_name IF NOT EXISTS FOR (b:Breed) REQUIRE b.name IS UNIQUE`,
}

// EnsureConstraints crea las constraints de unicidad (idempotente).
func EnsureConstraints(ctx context.Context, driver neo4j.DriverWithContext, database string) error {
	session := driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: database})
	defer session.Close(ctx)

	for _, c := range constraints {
		res, err := session.Run(ctx, c, nil)
		if err != nil {
			return fmt.Errorf("neo4j constraint: %w", err)
		}
		if _, err := res.Consume(ctx); err != nil {
			return fmt.Errorf("neo4j constraint: %w", err)
		}
	}
	return nil
}
