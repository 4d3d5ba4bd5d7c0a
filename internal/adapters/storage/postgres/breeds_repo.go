package postgres

import (
	"context"

	"pet-care-reminders/internal/domain/breeds"
)

type BreedsRepo struct {
	db DB
}

func NewBreedsRepo(db DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	rows, err := r.db.Query(ctx, `
		SELECT breed_id, name
		FROM breeds
		ORDER BY breed_id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		var b breeds.Breed
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}

	return out, rows.Err()
}
