package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pet-care-reminders/internal/domain/events"
	"pet-care-reminders/internal/domain/pets"
)

// petNamer resuelve nombres de mascota para el enriquecimiento de display.
type petNamer interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

type eventRepo struct {
	mu   sync.RWMutex
	byID map[string]events.Event
	pets petNamer // puede ser nil: el enriquecimiento queda con nombre vacío
}

func NewEventRepo(pets petNamer) events.Repository {
	return &eventRepo{
		byID: make(map[string]events.Event),
		pets: pets,
	}
}

func (r *eventRepo) Create(ctx context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("event id required")
	}
	if _, exists := r.byID[e.ID]; exists {
		return errors.New("event already exists")
	}

	r.byID[e.ID] = e
	return nil
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}
	return e, nil
}

func (r *eventRepo) UpdateAlarm(ctx context.Context, id string, alarmAt *time.Time) (events.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return events.Event{}, events.ErrNotFound
	}

	e.AlarmAt = alarmAt
	r.byID[id] = e
	return e, nil
}

func (r *eventRepo) NextAfter(ctx context.Context, petID string, typeID int64, after time.Time) (*events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner *events.Event
	for _, e := range r.byID {
		if e.PetID != petID || e.EventTypeID != typeID {
			continue
		}
		if e.AlarmAt == nil || !e.AlarmAt.After(after) {
			continue
		}

		if winner == nil || e.AlarmAt.Before(*winner.AlarmAt) {
			cp := e
			winner = &cp
			continue
		}
		// empate en alarm_at: gana el ID menor (orden determinístico)
		if e.AlarmAt.Equal(*winner.AlarmAt) && e.ID < winner.ID {
			cp := e
			winner = &cp
		}
	}

	return winner, nil
}

func (r *eventRepo) ListUpcomingForPet(ctx context.Context, petID string, after time.Time) ([]events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, e := range r.byID {
		if e.PetID != petID {
			continue
		}
		if e.AlarmAt == nil || !e.AlarmAt.After(after) {
			continue
		}
		out = append(out, e)
	}

	sortByAlarmAsc(out)
	return out, nil
}

func (r *eventRepo) ListUpcomingGlobal(ctx context.Context, f events.UpcomingFilter) ([]events.EnrichedEvent, error) {
	r.mu.RLock()
	matched := make([]events.Event, 0)
	for _, e := range r.byID {
		if f.PetID != "" && e.PetID != f.PetID {
			continue
		}
		// ventana (After, Before]: After estricto, Before inclusivo
		if e.AlarmAt == nil || !e.AlarmAt.After(f.After) || e.AlarmAt.After(f.Before) {
			continue
		}
		matched = append(matched, e)
	}
	r.mu.RUnlock()

	sortByAlarmAsc(matched)

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}

	out := make([]events.EnrichedEvent, 0, len(matched))
	for _, e := range matched {
		out = append(out, r.enrich(ctx, e))
	}
	return out, nil
}

func (r *eventRepo) ListByPet(ctx context.Context, petID string) ([]events.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]events.Event, 0)
	for _, e := range r.byID {
		if e.PetID == petID {
			out = append(out, e)
		}
	}

	sortByCreatedDesc(out)
	return out, nil
}

func (r *eventRepo) ListPage(ctx context.Context, limit, offset int) ([]events.EnrichedEvent, int, error) {
	r.mu.RLock()
	all := make([]events.Event, 0, len(r.byID))
	for _, e := range r.byID {
		all = append(all, e)
	}
	r.mu.RUnlock()

	total := len(all)
	sortByCreatedDesc(all)

	if offset >= len(all) {
		return []events.EnrichedEvent{}, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}

	out := make([]events.EnrichedEvent, 0, len(all))
	for _, e := range all {
		out = append(out, r.enrich(ctx, e))
	}
	return out, total, nil
}

func (r *eventRepo) enrich(ctx context.Context, e events.Event) events.EnrichedEvent {
	ee := events.EnrichedEvent{
		Event:          e,
		EventTypeTitle: events.TypeTitle(e.EventTypeID),
	}
	if r.pets != nil {
		if p, err := r.pets.GetByID(ctx, e.PetID); err == nil {
			ee.PetName = p.Name
		}
	}
	return ee
}

func sortByAlarmAsc(out []events.Event) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].AlarmAt.Equal(*out[j].AlarmAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].AlarmAt.Before(*out[j].AlarmAt)
	})
}

func sortByCreatedDesc(out []events.Event) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
}
