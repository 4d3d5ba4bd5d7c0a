package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"pet-care-reminders/internal/domain/pets"
)

type PetsRepo struct {
	db DB
}

func NewPetsRepo(db DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO pets (
			pet_id, name, birthdate,
			main_owner_id, vet_id, breed_id,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		p.ID,
		p.Name,
		p.BirthDate,
		p.MainOwnerID,
		p.VetID,
		p.BreedID,
		p.CreatedAt,
	)
	return err
}

// Update no toca created_at: es inmutable.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.Exec(ctx, `
		UPDATE pets
		SET
			name = $2,
			birthdate = $3,
			main_owner_id = $4,
			vet_id = $5,
			breed_id = $6
		WHERE pet_id = $1
	`,
		p.ID,
		p.Name,
		p.BirthDate,
		p.MainOwnerID,
		p.VetID,
		p.BreedID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `
		SELECT
			pet_id, name, birthdate,
			main_owner_id, vet_id, breed_id,
			created_at
		FROM pets
		WHERE pet_id = $1
	`, id)

	var p pets.Pet
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.BirthDate,
		&p.MainOwnerID,
		&p.VetID,
		&p.BreedID,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			pet_id, name, birthdate,
			main_owner_id, vet_id, breed_id,
			created_at
		FROM pets
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.BirthDate,
			&p.MainOwnerID,
			&p.VetID,
			&p.BreedID,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}
