package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

// JuvenileAgeYears es el umbral del cohorte juvenil.
const JuvenileAgeYears = 2.0

// hoursPerYear usa el año calendario medio para que la edad fraccional
// sea consistente entre el predicado de cohorte y el promedio.
const hoursPerYear = 24 * 365.2425

// AgeYears calcula la edad en años fraccionales a la fecha now.
// Es la única definición de edad del sistema.
func AgeYears(birthDate, now time.Time) float64 {
	return now.Sub(birthDate).Hours() / hoursPerYear
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name        string
	BirthDate   *time.Time
	MainOwnerID string
	VetID       string
	BreedID     int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	if strings.TrimSpace(in.MainOwnerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	// birthdate pasó a ser obligatoria: las consultas por edad la asumen.
	if in.BirthDate == nil || in.BirthDate.IsZero() {
		return Pet{}, ErrInvalidInput
	}

	p := Pet{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		BirthDate:   in.BirthDate,
		MainOwnerID: strings.TrimSpace(in.MainOwnerID),
		VetID:       strings.TrimSpace(in.VetID),
		BreedID:     in.BreedID,
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string
	BirthDate   *time.Time
	MainOwnerID *string
	VetID       *string
	BreedID     *int64
}

// Update edita el perfil. created_at es inmutable.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.BirthDate != nil {
		p.BirthDate = in.BirthDate
	}
	if in.MainOwnerID != nil {
		if strings.TrimSpace(*in.MainOwnerID) == "" {
			return Pet{}, ErrInvalidInput
		}
		p.MainOwnerID = strings.TrimSpace(*in.MainOwnerID)
	}
	if in.VetID != nil {
		p.VetID = strings.TrimSpace(*in.VetID)
	}
	if in.BreedID != nil {
		p.BreedID = *in.BreedID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.List(ctx)
}

// Summarize calcula los agregados de la población: total, edad promedio
// en años fraccionales, y el cohorte juvenil (< 2 años) con su porcentaje.
// El predicado de cohorte y el promedio usan la misma AgeYears, así un
// juvenil nunca contradice la cifra de edad promedio.
//
// El cálculo se hace en memoria sobre un scan completo; no es un snapshot
// transaccional y una inserción concurrente puede dejar una inconsistencia
// menor entre total y cohorte (trade-off aceptado).
func (s *Service) Summarize(ctx context.Context) (Summary, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return Summary{}, err
	}

	now := s.now()
	sum := Summary{
		Total:     len(all),
		Juveniles: []Pet{},
	}
	if sum.Total == 0 {
		return sum, nil
	}

	var ageSum float64
	var aged int
	for _, p := range all {
		if p.BirthDate == nil {
			// filas de esquema viejo sin birthdate: fuera del promedio
			continue
		}
		age := AgeYears(*p.BirthDate, now)
		ageSum += age
		aged++

		if age < JuvenileAgeYears {
			sum.Juveniles = append(sum.Juveniles, p)
		}
	}

	if aged > 0 {
		sum.AverageAgeYears = ageSum / float64(aged)
	}
	sum.JuvenileFraction = float64(len(sum.Juveniles)) / float64(sum.Total) * 100

	return sum, nil
}
