package events

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("event not found")
)

// UpcomingWindow es el horizonte fijo del listado global de próximos
// eventos. No es configurable por el caller.
const UpcomingWindow = 30 * 24 * time.Hour

// Límites de paginación del listado global.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

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
	EventTypeID int64
	PetID       string
	Body        json.RawMessage
	Status      string
	AlarmAt     *time.Time
}

// Create registra un evento de cuidado. created_at lo asigna el reloj del
// servidor y alarm_made es siempre false al crear, sin importar lo que
// mande el caller. alarm_at no se valida contra created_at: puede ser
// pasado, futuro o ausente (comportamiento heredado, a propósito).
func (s *Service) Create(ctx context.Context, in CreateInput) (Event, error) {
	if strings.TrimSpace(in.PetID) == "" {
		return Event{}, ErrInvalidInput
	}
	if in.EventTypeID <= 0 {
		return Event{}, ErrInvalidInput
	}

	e := Event{
		ID:          uuid.NewString(),
		EventTypeID: in.EventTypeID,
		PetID:       strings.TrimSpace(in.PetID),
		Body:        in.Body,
		Status:      in.Status,
		CreatedAt:   s.now(),
		AlarmAt:     in.AlarmAt,
		AlarmMade:   false,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

type FoodPurchaseInput struct {
	Body    json.RawMessage
	Status  string
	AlarmAt *time.Time
}

// ScheduleFoodPurchase es Create con el tipo fijado a compra de alimento.
func (s *Service) ScheduleFoodPurchase(ctx context.Context, petID string, in FoodPurchaseInput) (Event, error) {
	return s.Create(ctx, CreateInput{
		EventTypeID: TypeFoodPurchase,
		PetID:       petID,
		Body:        in.Body,
		Status:      in.Status,
		AlarmAt:     in.AlarmAt,
	})
}

// AdjustAlarm sobreescribe alarm_at del evento; el resto de los campos
// queda intacto (alarm_made incluido). Devuelve ErrNotFound si el id no
// resuelve a un evento existente.
func (s *Service) AdjustAlarm(ctx context.Context, eventID string, alarmAt *time.Time) (Event, error) {
	id := strings.TrimSpace(eventID)
	if id == "" {
		return Event{}, ErrInvalidInput
	}
	return s.repo.UpdateAlarm(ctx, id, alarmAt)
}

// NextPending devuelve el evento pendiente más próximo del par pet/tipo
// (alarm_at estrictamente futuro), o nil si no hay ninguno. Que no haya
// recordatorio próximo no es un error. alarm_made no participa del
// predicado: la vigencia es puramente temporal.
func (s *Service) NextPending(ctx context.Context, petID string, typeID int64) (*Event, error) {
	if strings.TrimSpace(petID) == "" || typeID <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.NextAfter(ctx, strings.TrimSpace(petID), typeID, s.now())
}

// UpcomingForPet lista los eventos de la mascota con alarm_at futuro,
// ascendente por alarm_at.
func (s *Service) UpcomingForPet(ctx context.Context, petID string) ([]Event, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListUpcomingForPet(ctx, strings.TrimSpace(petID), s.now())
}

// UpcomingGlobal lista los eventos con alarm_at dentro de (now, now+30d],
// ascendente por alarm_at, opcionalmente filtrado por mascota y truncado
// a limit después de ordenar.
func (s *Service) UpcomingGlobal(ctx context.Context, petID string, limit int) ([]EnrichedEvent, error) {
	now := s.now()
	if limit < 0 {
		limit = 0
	}
	return s.repo.ListUpcomingGlobal(ctx, UpcomingFilter{
		After:  now,
		Before: now.Add(UpcomingWindow),
		PetID:  strings.TrimSpace(petID),
		Limit:  limit,
	})
}

// History lista todos los eventos de la mascota, el más reciente primero.
func (s *Service) History(ctx context.Context, petID string) ([]Event, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByPet(ctx, strings.TrimSpace(petID))
}

// ListPage devuelve una página del listado global (created_at descendente)
// más el total. El clamping es silencioso: valores fuera de rango se
// corrigen, no se rechazan.
func (s *Service) ListPage(ctx context.Context, limit, offset int) (Page, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.ListPage(ctx, limit, offset)
	if err != nil {
		return Page{}, err
	}
	return Page{Items: items, Total: total, Limit: limit, Offset: offset}, nil
}
