package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"

	"pet-care-reminders/internal/domain/pets"
)

var petColumns = []string{
	"pet_id", "name", "birthdate",
	"main_owner_id", "vet_id", "breed_id",
	"created_at",
}

func TestPetsRepo_Create(t *testing.T) {
	mock := newMock(t)
	repo := NewPetsRepo(mock)

	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	bd := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO pets").
		WithArgs("pet-1", "Milo", &bd, "owner-1", "vet-1", int64(3), created).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), pets.Pet{
		ID:          "pet-1",
		Name:        "Milo",
		BirthDate:   &bd,
		MainOwnerID: "owner-1",
		VetID:       "vet-1",
		BreedID:     3,
		CreatedAt:   created,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	expectationsMet(t, mock)
}

func TestPetsRepo_Update_NoRowIsNotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPetsRepo(mock)

	mock.ExpectExec("UPDATE pets").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.Update(context.Background(), pets.Pet{ID: "ghost", MainOwnerID: "o1"})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestPetsRepo_GetByID_ScansNullableBirthdate(t *testing.T) {
	mock := newMock(t)
	repo := NewPetsRepo(mock)

	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT(.|\n)*FROM pets(.|\n)*WHERE pet_id").
		WithArgs("pet-legacy").
		WillReturnRows(pgxmock.NewRows(petColumns).AddRow(
			"pet-legacy", "", (*time.Time)(nil), "owner-1", "", int64(0), created,
		))

	p, err := repo.GetByID(context.Background(), "pet-legacy")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if p.BirthDate != nil {
		t.Fatalf("expected nil birthdate for legacy row, got %v", p.BirthDate)
	}

	expectationsMet(t, mock)
}

func TestPetsRepo_GetByID_NotFound(t *testing.T) {
	mock := newMock(t)
	repo := NewPetsRepo(mock)

	mock.ExpectQuery("SELECT(.|\n)*FROM pets").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	expectationsMet(t, mock)
}

func TestPetsRepo_List_OrderedByCreation(t *testing.T) {
	mock := newMock(t)
	repo := NewPetsRepo(mock)

	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	bd := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT(.|\n)*FROM pets(.|\n)*ORDER BY created_at ASC").
		WillReturnRows(pgxmock.NewRows(petColumns).
			AddRow("pet-1", "Milo", &bd, "owner-1", "vet-1", int64(3), created).
			AddRow("pet-2", "Luna", &bd, "owner-2", "vet-1", int64(5), created.Add(time.Hour)))

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "pet-1" || out[1].ID != "pet-2" {
		t.Fatalf("unexpected list: %+v", out)
	}

	expectationsMet(t, mock)
}
