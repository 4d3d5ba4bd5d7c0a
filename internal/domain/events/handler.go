package events

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/events", func(er chi.Router) {
		er.Post("/", createEventHandler(svc))
		er.Get("/", listEventsPageHandler(svc))
		er.Get("/upcoming", upcomingGlobalHandler(svc))
		er.Put("/{eventID}", adjustAlarmHandler(svc))
	})

	r.Get("/pets/{petID}/events", historyHandler(svc))
	r.Get("/pets/{petID}/events/upcoming", upcomingForPetHandler(svc))
	r.Get("/pets/{petID}/next-event/{eventTypeID}", nextEventHandler(svc))
	r.Post("/pets/{petID}/next-food-purchase", foodPurchaseHandler(svc))
}

// createEventRequest es el cuerpo para registrar un evento de cuidado.
// Si el caller manda alarm_made se ignora: siempre es false al crear.
type createEventRequest struct {
	EventTypeID int64           `json:"event_type_id" validate:"required,gt=0"`
	PetID       string          `json:"pet_id" validate:"required"`
	Body        json.RawMessage `json:"body"`
	Status      string          `json:"status"`
	AlarmAt     *time.Time      `json:"alarm_at"` // RFC3339, opcional
}

type foodPurchaseRequest struct {
	Body    json.RawMessage `json:"body"`
	Status  string          `json:"status"`
	AlarmAt *time.Time      `json:"alarm_at"`
}

type adjustAlarmRequest struct {
	AlarmAt *time.Time `json:"alarm_at"`
}

// eventResponse representa un evento devuelto por la API.
type eventResponse struct {
	ID          string          `json:"event_id"`
	EventTypeID int64           `json:"event_type_id"`
	PetID       string          `json:"pet_id"`
	Body        json.RawMessage `json:"body,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	AlarmAt     *time.Time      `json:"alarm_at,omitempty"`
	AlarmMade   bool            `json:"alarm_made"`
}

// enrichedEventResponse agrega los campos de display del join de lectura.
type enrichedEventResponse struct {
	eventResponse
	EventTypeTitle string `json:"event_type_title"`
	PetName        string `json:"pet_name"`
}

type pageResponse struct {
	Items  []enrichedEventResponse `json:"items"`
	Total  int                     `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

// createEventHandler godoc
// @Summary Registrar evento de cuidado
// @Description Registra un evento (vacuna, desparasitación, cita, laboratorio, compra de alimento) con alarma opcional. created_at lo asigna el servidor y alarm_made siempre queda en false.
// @Tags events
// @Accept json
// @Produce json
// @Param payload body createEventRequest true "Datos del evento; alarm_at en RFC3339"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 500 {string} string "store error"
// @Router /events [post]
func createEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.Create(r.Context(), CreateInput{
			EventTypeID: req.EventTypeID,
			PetID:       req.PetID,
			Body:        req.Body,
			Status:      req.Status,
			AlarmAt:     req.AlarmAt,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// foodPurchaseHandler godoc
// @Summary Programar próxima compra de alimento
// @Description Crea un evento con el tipo fijado a compra de alimento. Semánticamente idéntico a POST /events.
// @Tags events
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body foodPurchaseRequest true "Nota de compra y alarma"
// @Success 201 {object} eventResponse
// @Failure 400 {string} string "invalid json"
// @Failure 500 {string} string "store error"
// @Router /pets/{petID}/next-food-purchase [post]
func foodPurchaseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req foodPurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.ScheduleFoodPurchase(r.Context(), chi.URLParam(r, "petID"), FoodPurchaseInput{
			Body:    req.Body,
			Status:  req.Status,
			AlarmAt: req.AlarmAt,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toEventResponse(e))
	}
}

// adjustAlarmHandler godoc
// @Summary Ajustar la alarma de un evento
// @Description Sobreescribe únicamente alarm_at; los demás campos quedan intactos.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "ID del evento"
// @Param payload body adjustAlarmRequest true "Nueva fecha de alarma (RFC3339 o null)"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "invalid json"
// @Failure 404 {string} string "event not found"
// @Failure 500 {string} string "store error"
// @Router /events/{eventID} [put]
func adjustAlarmHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adjustAlarmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		e, err := svc.AdjustAlarm(r.Context(), chi.URLParam(r, "eventID"), req.AlarmAt)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(e))
	}
}

// nextEventHandler godoc
// @Summary Próximo evento pendiente por tipo
// @Description Devuelve el evento con alarma futura más próxima para el par mascota/tipo. Sin resultado devuelve {} (no es un error).
// @Tags events
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param eventTypeID path int true "ID del tipo de evento"
// @Success 200 {object} eventResponse
// @Failure 400 {string} string "event type inválido"
// @Failure 500 {string} string "store error"
// @Router /pets/{petID}/next-event/{eventTypeID} [get]
func nextEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typeID, err := strconv.ParseInt(chi.URLParam(r, "eventTypeID"), 10, 64)
		if err != nil {
			http.Error(w, "event type must be numeric", http.StatusBadRequest)
			return
		}

		e, err := svc.NextPending(r.Context(), chi.URLParam(r, "petID"), typeID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if e == nil {
			// Sin recordatorio próximo: registro vacío, no null.
			writeJSON(w, http.StatusOK, struct{}{})
			return
		}

		writeJSON(w, http.StatusOK, toEventResponse(*e))
	}
}

// upcomingForPetHandler godoc
// @Summary Próximos eventos de una mascota
// @Description Eventos con alarma futura, ascendente por alarm_at.
// @Tags events
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} eventResponse
// @Failure 500 {string} string "store error"
// @Router /pets/{petID}/events/upcoming [get]
func upcomingForPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.UpcomingForPet(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// upcomingGlobalHandler godoc
// @Summary Próximos eventos (ventana de 30 días)
// @Description Eventos con alarma dentro de (now, now+30d], ascendente por alarm_at, enriquecidos con título del tipo y nombre de la mascota. Filtro opcional por mascota y truncado opcional.
// @Tags events
// @Produce json
// @Param pet_id query string false "Restringir a una mascota"
// @Param limit query int false "Truncar a los primeros N resultados"
// @Success 200 {array} enrichedEventResponse
// @Failure 500 {string} string "store error"
// @Router /events/upcoming [get]
func upcomingGlobalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		items, err := svc.UpcomingGlobal(r.Context(), r.URL.Query().Get("pet_id"), limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]enrichedEventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEnrichedResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// historyHandler godoc
// @Summary Histórico de eventos de una mascota
// @Description Todos los eventos de la mascota, el más reciente primero.
// @Tags events
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} eventResponse
// @Failure 500 {string} string "store error"
// @Router /pets/{petID}/events [get]
func historyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.History(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]eventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// listEventsPageHandler godoc
// @Summary Listado paginado de eventos
// @Description Página global por created_at descendente, enriquecida, con el total para calcular páginas. limit se acota a [1,100] (default 10) y offset a >= 0 (default 0), en silencio.
// @Tags events
// @Produce json
// @Param limit query int false "Tamaño de página (1-100, default 10)"
// @Param offset query int false "Desplazamiento (default 0)"
// @Success 200 {object} pageResponse
// @Failure 500 {string} string "store error"
// @Router /events [get]
func listEventsPageHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := parsePageParams(r)

		page, err := svc.ListPage(r.Context(), limit, offset)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		items := make([]enrichedEventResponse, 0, len(page.Items))
		for _, e := range page.Items {
			items = append(items, toEnrichedResponse(e))
		}

		writeJSON(w, http.StatusOK, pageResponse{
			Items:  items,
			Total:  page.Total,
			Limit:  page.Limit,
			Offset: page.Offset,
		})
	}
}

// parsePageParams aplica los defaults; el clamping lo hace el service.
func parsePageParams(r *http.Request) (limit, offset int) {
	limit = DefaultPageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	offset = 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			offset = n
		}
	}
	return limit, offset
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		ID:          e.ID,
		EventTypeID: e.EventTypeID,
		PetID:       e.PetID,
		Body:        e.Body,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
		AlarmAt:     e.AlarmAt,
		AlarmMade:   e.AlarmMade,
	}
}

func toEnrichedResponse(e EnrichedEvent) enrichedEventResponse {
	return enrichedEventResponse{
		eventResponse:  toEventResponse(e.Event),
		EventTypeTitle: e.EventTypeTitle,
		PetName:        e.PetName,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "event not found", http.StatusNotFound)
	default:
		// Falla del store: se expone el mensaje para diagnóstico, sin retry.
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeJSON está duplicado a propósito en handlers de distintos módulos
// para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
