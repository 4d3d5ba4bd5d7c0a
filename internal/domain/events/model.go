package events

import (
	"encoding/json"
	"time"
)

// Event es un registro de cuidado de una mascota, con fecha de alarma
// opcional (cuándo "vence" el recordatorio). La alarma es declarativa:
// ningún proceso del core la dispara; cada query reclasifica contra now.
type Event struct {
	ID          string
	EventTypeID int64
	PetID       string

	// Body es payload opaco del caller (dosis, resultado de lab, nota de
	// compra, etc.). Se guarda y devuelve tal cual, sin interpretarlo.
	Body   json.RawMessage
	Status string

	CreatedAt time.Time
	AlarmAt   *time.Time
	AlarmMade bool
}

// EnrichedEvent agrega campos de display (título del tipo, nombre de la
// mascota) vía join de solo lectura. No afecta filtrado ni orden.
type EnrichedEvent struct {
	Event
	EventTypeTitle string
	PetName        string
}

// Page es una página del listado global más el total para paginar.
// Limit y Offset son los valores efectivos después del clamping.
type Page struct {
	Items  []EnrichedEvent
	Total  int
	Limit  int
	Offset int
}
