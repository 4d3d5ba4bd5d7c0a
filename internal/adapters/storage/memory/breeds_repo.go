package memory

import (
	"context"

	"pet-care-reminders/internal/domain/breeds"
)

type breedRepo struct {
	items []breeds.Breed
}

// NewBreedRepo devuelve el catálogo de razas seed para modo dev.
func NewBreedRepo() breeds.Repository {
	return &breedRepo{
		items: []breeds.Breed{
			{ID: 1, Name: "Labrador Retriever"},
			{ID: 2, Name: "Pastor Alemán"},
			{ID: 3, Name: "Bulldog Francés"},
			{ID: 4, Name: "Caniche"},
			{ID: 5, Name: "Chihuahua"},
			{ID: 6, Name: "Beagle"},
			{ID: 7, Name: "Mestizo"},
		},
	}
}

func (r *breedRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	out := make([]breeds.Breed, len(r.items))
	copy(out, r.items)
	return out, nil
}
