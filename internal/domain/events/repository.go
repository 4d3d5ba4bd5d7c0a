package events

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e Event) error
	GetByID(ctx context.Context, id string) (Event, error)

	// UpdateAlarm sobreescribe únicamente alarm_at y devuelve el evento
	// actualizado, o ErrNotFound si el id no existe.
	UpdateAlarm(ctx context.Context, id string, alarmAt *time.Time) (Event, error)

	// NextAfter devuelve el evento con alarm_at más próximo estrictamente
	// posterior a after para el par pet/tipo, o nil si no hay ninguno.
	NextAfter(ctx context.Context, petID string, typeID int64, after time.Time) (*Event, error)

	// ListUpcomingForPet: alarm_at > after, ascendente por alarm_at.
	ListUpcomingForPet(ctx context.Context, petID string, after time.Time) ([]Event, error)

	// ListUpcomingGlobal: alarm_at en (After, Before], ascendente por
	// alarm_at, con enriquecimiento de display.
	ListUpcomingGlobal(ctx context.Context, f UpcomingFilter) ([]EnrichedEvent, error)

	// ListByPet: todos los eventos de la mascota, created_at descendente.
	ListByPet(ctx context.Context, petID string) ([]Event, error)

	// ListPage: página global por created_at descendente, enriquecida, más
	// el conteo total de eventos.
	ListPage(ctx context.Context, limit, offset int) ([]EnrichedEvent, int, error)
}

type UpcomingFilter struct {
	After  time.Time
	Before time.Time
	PetID  string // opcional; "" = todas las mascotas
	Limit  int    // opcional; <= 0 = sin truncar
}
