package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-insights/internal/domain/catalog"
	"pet-adoption-insights/internal/ports/relational"
)

// Relational implementa relational.Store sobre database/sql + pgx.
type Relational struct {
	db *sql.DB
}

var _ relational.Store = (*Relational)(nil)

func NewRelational(db *sql.DB) *Relational {
	return &Relational{db: db}
}

const petColumns = `id, name, age, type, breed, gender, COALESCE(shelter_id, 0), status, created_at`

func (r *Relational) GetUser(ctx context.Context, id int64) (catalog.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(email, ''), role, created_at
		FROM users
		WHERE id = $1
	`, id)

	var u catalog.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &role, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.User{}, relational.ErrNotFound
		}
		return catalog.User{}, err
	}
	u.Role = catalog.Role(role)
	return u, nil
}

func (r *Relational) GetPet(ctx context.Context, id int64) (catalog.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Pet{}, relational.ErrNotFound
		}
		return catalog.Pet{}, err
	}
	return p, nil
}

func (r *Relational) AvailablePetsByIDs(ctx context.Context, ids []int64) ([]catalog.Pet, error) {
	if len(ids) == 0 {
		return []catalog.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = ANY($1) AND status = 'available'
	`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]catalog.Pet, 0, len(ids))
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Relational) AvailablePetIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM pets WHERE status = 'available' ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *Relational) AvailablePetCountsByBreed(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT breed, COUNT(*)
		FROM pets
		WHERE status = 'available' AND breed <> ''
		GROUP BY breed
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var breed string
		var n int
		if err := rows.Scan(&breed, &n); err != nil {
			return nil, err
		}
		out[breed] = n
	}
	return out, rows.Err()
}

func (r *Relational) CountAdoptionsByUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM adoptions WHERE user_id = $1
	`, userID).Scan(&n)
	return n, err
}

// SharedAdoptionCounts cuenta mascotas distintas adoptadas por ambos usuarios.
func (r *Relational) SharedAdoptionCounts(ctx context.Context, userID int64) (map[int64]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT other.user_id, COUNT(DISTINCT other.pet_id)
		FROM adoptions mine
		JOIN adoptions other ON other.pet_id = mine.pet_id
		WHERE mine.user_id = $1 AND other.user_id <> $1
		GROUP BY other.user_id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]int{}
	for rows.Next() {
		var id int64
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func (r *Relational) CreateUser(ctx context.Context, u catalog.User) (catalog.User, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, role, created_at)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id
	`, u.Name, u.Email, string(u.Role), u.CreatedAt).Scan(&u.ID)
	if err != nil {
		return catalog.User{}, err
	}
	return u, nil
}

func (r *Relational) CreateShelter(ctx context.Context, s catalog.Shelter) (catalog.Shelter, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO shelters (name, address, phone_number, capacity)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, s.Name, s.Address, s.Phone, s.Capacity).Scan(&s.ID)
	if err != nil {
		return catalog.Shelter{}, err
	}
	return s, nil
}

func (r *Relational) CreatePet(ctx context.Context, p catalog.Pet) (catalog.Pet, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pets (name, age, type, breed, gender, shelter_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		p.Name,
		p.Age,
		p.Type,
		p.Breed,
		p.Gender,
		toNullID(p.ShelterID),
		string(p.Status),
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return catalog.Pet{}, err
	}
	return p, nil
}

func (r *Relational) CreateAdoption(ctx context.Context, a catalog.Adoption) (catalog.Adoption, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO adoptions (user_id, pet_id, success_notes, adoption_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, a.UserID, a.PetID, a.Notes, a.AdoptedAt).Scan(&a.ID)
	if err != nil {
		return catalog.Adoption{}, err
	}
	return a, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (catalog.Pet, error) {
	var p catalog.Pet
	var status string
	if err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Type,
		&p.Breed,
		&p.Gender,
		&p.ShelterID,
		&status,
		&p.CreatedAt,
	); err != nil {
		return catalog.Pet{}, err
	}
	p.Status = catalog.PetStatus(status)
	return p, nil
}

// shelter_id es opcional: 0 se guarda como NULL.
func toNullID(id int64) sql.NullInt64 {
	if id <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
