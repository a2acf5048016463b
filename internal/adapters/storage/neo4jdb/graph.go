package neo4jdb

import (
	"context"
	"fmt"

	"pet-adoption-insights/internal/ports/graph"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Graph implementa graph.Store. Una sesión por llamada; nodos identificados
// por la propiedad id (User, Pet, Shelter) o name (Tag, Breed).
type Graph struct {
	client   neo4j.DriverWithContext
	database string
}

var _ graph.Store = (*Graph)(nil)

func NewGraph(client neo4j.DriverWithContext, database string) *Graph {
	if database == "" {
		database = "neo4j"
	}
	return &Graph{client: client, database: database}
}

func (g *Graph) PreferredTags(ctx context.Context, userID int64) ([]string, error) {
	return g.strings(ctx, `
		MATCH (:User {id: $id})-[:PREFERS_TAG]->(t:Tag)
		RETURN DISTINCT t.name AS v
		ORDER BY v
	`, map[string]any{"id": userID})
}

func (g *Graph) InteractedPetIDs(ctx context.Context, userID int64) ([]int64, error) {
	return g.ids(ctx, `
		MATCH (:User {id: $id})-[:LIKES|ADOPTED]->(p:Pet)
		RETURN DISTINCT p.id AS v
		ORDER BY v
	`, map[string]any{"id": userID})
}

func (g *Graph) AdoptedPetIDs(ctx context.Context, userID int64) ([]int64, error) {
	return g.ids(ctx, `
		MATCH (:User {id: $id})-[:ADOPTED]->(p:Pet)
		RETURN DISTINCT p.id AS v
		ORDER BY v
	`, map[string]any{"id": userID})
}

func (g *Graph) LikeCountsByPet(ctx context.Context) (map[int64]int, error) {
	return g.idCounts(ctx, `
		MATCH (:User)-[:LIKES]->(p:Pet)
		RETURN p.id AS k, count(*) AS n
	`, nil)
}

func (g *Graph) SharedLikeCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	return g.idCounts(ctx, `
		MATCH (:User {id: $id})-[:LIKES]->(p:Pet)<-[:LIKES]-(o:User)
		WHERE o.id <> $id
		RETURN o.id AS k, count(DISTINCT p) AS n
	`, map[string]any{"id": userID})
}

func (g *Graph) SharedPreferredTagCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	return g.idCounts(ctx, `
		MATCH (:User {id: $id})-[:PREFERS_TAG]->(t:Tag)<-[:PREFERS_TAG]-(o:User)
		WHERE o.id <> $id
		RETURN o.id AS k, count(DISTINCT t) AS n
	`, map[string]any{"id": userID})
}

func (g *Graph) UnlikedPetIDs(ctx context.Context) ([]int64, error) {
	return g.ids(ctx, `
		MATCH (p:Pet)
		WHERE NOT ()-[:LIKES]->(p)
		RETURN p.id AS v
		ORDER BY v
	`, nil)
}

func (g *Graph) CountLikesByUser(ctx context.Context, userID int64) (int, error) {
	out, err := g.idCounts(ctx, `
		MATCH (u:User {id: $id})-[:LIKES]->(p:Pet)
		RETURN u.id AS k, count(DISTINCT p) AS n
	`, map[string]any{"id": userID})
	if err != nil {
		return 0, err
	}
	return out[userID], nil
}

func (g *Graph) LikeCountsByBreed(ctx context.Context) (map[string]int, error) {
	return g.keyCounts(ctx, `
		MATCH (:User)-[:LIKES]->(p:Pet)
		WHERE p.breed IS NOT NULL AND p.breed <> ''
		RETURN p.breed AS k, count(*) AS n
	`, nil)
}

func (g *Graph) LikeCountsByTag(ctx context.Context) (map[string]int, error) {
	return g.keyCounts(ctx, `
		MATCH (:User)-[:LIKES]->(:Pet)-[:HAS_TAG]->(t:Tag)
		RETURN t.name AS k, count(*) AS n
	`, nil)
}

func (g *Graph) UpsertUser(ctx context.Context, userID int64, name string) error {
	return g.exec(ctx, `
		MERGE (u:User {id: $id})
		SET u.name = $name
	`, map[string]any{"id": userID, "name": name})
}

func (g *Graph) UpsertShelter(ctx context.Context, shelterID int64, name string) error {
	return g.exec(ctx, `
		MERGE (s:Shelter {id: $id})
		SET s.name = $name
	`, map[string]any{"id": shelterID, "name": name})
}

func (g *Graph) UpsertPet(ctx context.Context, petID int64, name, breed string) error {
	return g.exec(ctx, `
		MERGE (p:Pet {id: $id})
		SET p.name = $name, p.breed = $breed
		WITH p
		WHERE $breed <> ''
		MERGE (b:Breed {name: $breed})
		MERGE (p)-[:OF_BREED]->(b)
	`, map[string]any{"id": petID, "name": name, "breed": breed})
}

func (g *Graph) LinkPetToShelter(ctx context.Context, petID, shelterID int64) error {
	return g.link(ctx, fmt.Sprintf("pet %d / shelter %d", petID, shelterID), `
		MATCH (p:Pet {id: $pet}), (s:Shelter {id: $shelter})
		MERGE (p)-[:LOCATED_AT]->(s)
		RETURN count(*) AS n
	`, map[string]any{"pet": petID, "shelter": shelterID})
}

func (g *Graph) TagPet(ctx context.Context, petID int64, tag string) error {
	return g.link(ctx, fmt.Sprintf("pet %d", petID), `
		MATCH (p:Pet {id: $pet})
		MERGE (t:Tag {name: $tag})
		MERGE (p)-[:HAS_TAG]->(t)
		RETURN count(*) AS n
	`, map[string]any{"pet": petID, "tag": tag})
}

func (g *Graph) AddLike(ctx context.Context, userID, petID int64) error {
	return g.link(ctx, fmt.Sprintf("user %d / pet %d", userID, petID), `
		MATCH (u:User {id: $user}), (p:Pet {id: $pet})
		MERGE (u)-[:LIKES]->(p)
		RETURN count(*) AS n
	`, map[string]any{"user": userID, "pet": petID})
}

func (g *Graph) AddAdoption(ctx context.Context, userID, petID int64) error {
	return g.link(ctx, fmt.Sprintf("user %d / pet %d", userID, petID), `
		MATCH (u:User {id: $user}), (p:Pet {id: $pet})
		MERGE (u)-[:ADOPTED]->(p)
		RETURN count(*) AS n
	`, map[string]any{"user": userID, "pet": petID})
}

func (g *Graph) PreferTag(ctx context.Context, userID int64, tag string) error {
	return g.link(ctx, fmt.Sprintf("user %d", userID), `
		MATCH (u:User {id: $user})
		MERGE (t:Tag {name: $tag})
		MERGE (u)-[:PREFERS_TAG]->(t)
		RETURN count(*) AS n
	`, map[string]any{"user": userID, "tag": tag})
}

func (g *Graph) AddFriendship(ctx context.Context, userID, otherID int64) error {
	return g.link(ctx, fmt.Sprintf("user %d / user %d", userID, otherID), `
		MATCH (a:User {id: $a}), (b:User {id: $b})
		MERGE (a)-[:FRIEND_OF]->(b)
		RETURN count(*) AS n
	`, map[string]any{"a": userID, "b": otherID})
}

func (g *Graph) LinkSimilarBreeds(ctx context.Context, breed, other string) error {
	return g.exec(ctx, `
		MERGE (a:Breed {name: $a})
		MERGE (b:Breed {name: $b})
		MERGE (a)-[:SIMILAR_BREED]->(b)
		MERGE (b)-[:SIMILAR_BREED]->(a)
	`, map[string]any{"a": breed, "b": other})
}

// -------------------------
// helpers de sesión
// -------------------------

func (g *Graph) read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	session := g.client.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: g.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.([]*neo4j.Record), nil
}

func (g *Graph) exec(ctx context.Context, cypher string, params map[string]any) error {
	session := g.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: g.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		return res.Consume(ctx)
	})
	return err
}

// link ejecuta un MATCH ... MERGE que devuelve count(*) AS n; n == 0 significa
// que algún nodo del MATCH no existe.
func (g *Graph) link(ctx context.Context, what, cypher string, params map[string]any) error {
	session := g.client.NewSession(ctx, neo4j.SessionConfig{DatabaseName: g.database})
	defer session.Close(ctx)

	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		n, _ := record.Get("n")
		return n, nil
	})
	if err != nil {
		return err
	}
	if n, _ := result.(int64); n == 0 {
		return fmt.Errorf("%w: %s", graph.ErrNodeNotFound, what)
	}
	return nil
}

func (g *Graph) ids(ctx context.Context, cypher string, params map[string]any) ([]int64, error) {
	records, err := g.read(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(records))
	for _, rec := range records {
		v, _ := rec.Get("v")
		id, ok := v.(int64)
		if !ok {
			continue
		}
		out = append(out, id)
	}
	return out, nil
}

func (g *Graph) strings(ctx context.Context, cypher string, params map[string]any) ([]string, error) {
	records, err := g.read(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(records))
	for _, rec := range records {
		v, _ := rec.Get("v")
		s, ok := v.(string)
		if !ok {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (g *Graph) idCounts(ctx context.Context, cypher string, params map[string]any) (map[int64]int, error) {
	records, err := g.read(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]int, len(records))
	for _, rec := range records {
		k, _ := rec.Get("k")
		n, _ := rec.Get("n")
		id, ok := k.(int64)
		if !ok {
			continue
		}
		out[id] = toInt(n)
	}
	return out, nil
}

func (g *Graph) keyCounts(ctx context.Context, cypher string, params map[string]any) (map[string]int, error) {
	records, err := g.read(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(records))
	for _, rec := range records {
		k, _ := rec.Get("k")
		n, _ := rec.Get("n")
		key, ok := k.(string)
		if !ok {
			continue
		}
		out[key] = toInt(n)
	}
	return out, nil
}

// Neo4j devuelve enteros como int64.
func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	default:
		return 0
	}
}
