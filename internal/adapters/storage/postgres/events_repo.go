package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"pet-care-reminders/internal/domain/events"
)

const eventCols = `
	event_id, event_type_id, pet_id,
	body, status,
	created_at, alarm_at, alarm_made`

type EventsRepo struct {
	db DB
}

func NewEventsRepo(db DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.Event) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO events (
			event_id, event_type_id, pet_id,
			body, status,
			created_at, alarm_at, alarm_made
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		e.ID,
		e.EventTypeID,
		e.PetID,
		e.Body,
		e.Status,
		e.CreatedAt,
		e.AlarmAt,
		e.AlarmMade,
	)
	if err != nil {
		// FK rota (pet o tipo inexistente) se reporta como input inválido,
		// no como falla del store.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: %s", events.ErrInvalidInput, pgErr.ConstraintName)
		}
		return err
	}
	return nil
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}

	row := r.db.QueryRow(ctx, `
		SELECT `+eventCols+`
		FROM events
		WHERE event_id = $1
	`, id)

	return scanEvent(row)
}

func (r *EventsRepo) UpdateAlarm(ctx context.Context, id string, alarmAt *time.Time) (events.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.Event{}, events.ErrNotFound
	}

	// Solo alarm_at; alarm_made y el resto quedan intactos.
	row := r.db.QueryRow(ctx, `
		UPDATE events
		SET alarm_at = $2
		WHERE event_id = $1
		RETURNING `+eventCols+`
	`, id, alarmAt)

	return scanEvent(row)
}

func (r *EventsRepo) NextAfter(ctx context.Context, petID string, typeID int64, after time.Time) (*events.Event, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+eventCols+`
		FROM events
		WHERE pet_id = $1 AND event_type_id = $2 AND alarm_at > $3
		ORDER BY alarm_at ASC
		LIMIT 1
	`, petID, typeID, after)

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, events.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *EventsRepo) ListUpcomingForPet(ctx context.Context, petID string, after time.Time) ([]events.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+eventCols+`
		FROM events
		WHERE pet_id = $1 AND alarm_at > $2
		ORDER BY alarm_at ASC
	`, petID, after)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *EventsRepo) ListUpcomingGlobal(ctx context.Context, f events.UpcomingFilter) ([]events.EnrichedEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			e.event_id, e.event_type_id, e.pet_id,
			e.body, e.status,
			e.created_at, e.alarm_at, e.alarm_made,
			et.title, COALESCE(p.name, '')
		FROM events e
		JOIN event_types et ON et.event_type_id = e.event_type_id
		JOIN pets p ON p.pet_id = e.pet_id
		WHERE e.alarm_at > $1 AND e.alarm_at <= $2
	`)

	args := []any{f.After, f.Before}
	argN := 3

	if f.PetID != "" {
		sb.WriteString(fmt.Sprintf(" AND e.pet_id = $%d", argN))
		args = append(args, f.PetID)
		argN++
	}

	sb.WriteString(" ORDER BY e.alarm_at ASC")

	if f.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, f.Limit)
	}

	rows, err := r.db.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEnriched(rows)
}

func (r *EventsRepo) ListByPet(ctx context.Context, petID string) ([]events.Event, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+eventCols+`
		FROM events
		WHERE pet_id = $1
		ORDER BY created_at DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectEvents(rows)
}

func (r *EventsRepo) ListPage(ctx context.Context, limit, offset int) ([]events.EnrichedEvent, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM events`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT
			e.event_id, e.event_type_id, e.pet_id,
			e.body, e.status,
			e.created_at, e.alarm_at, e.alarm_made,
			et.title, COALESCE(p.name, '')
		FROM events e
		JOIN event_types et ON et.event_type_id = e.event_type_id
		JOIN pets p ON p.pet_id = e.pet_id
		ORDER BY e.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items, err := collectEnriched(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func scanEvent(row pgx.Row) (events.Event, error) {
	var e events.Event
	if err := row.Scan(
		&e.ID,
		&e.EventTypeID,
		&e.PetID,
		&e.Body,
		&e.Status,
		&e.CreatedAt,
		&e.AlarmAt,
		&e.AlarmMade,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return events.Event{}, events.ErrNotFound
		}
		return events.Event{}, err
	}
	return e, nil
}

func collectEvents(rows pgx.Rows) ([]events.Event, error) {
	out := make([]events.Event, 0)
	for rows.Next() {
		var e events.Event
		if err := rows.Scan(
			&e.ID,
			&e.EventTypeID,
			&e.PetID,
			&e.Body,
			&e.Status,
			&e.CreatedAt,
			&e.AlarmAt,
			&e.AlarmMade,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func collectEnriched(rows pgx.Rows) ([]events.EnrichedEvent, error) {
	out := make([]events.EnrichedEvent, 0)
	for rows.Next() {
		var e events.EnrichedEvent
		if err := rows.Scan(
			&e.ID,
			&e.EventTypeID,
			&e.PetID,
			&e.Body,
			&e.Status,
			&e.CreatedAt,
			&e.AlarmAt,
			&e.AlarmMade,
			&e.EventTypeTitle,
			&e.PetName,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
