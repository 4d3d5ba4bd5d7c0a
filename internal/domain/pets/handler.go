package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/summary", summaryHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
	})
}

type createPetRequest struct {
	Name        string `json:"name"`
	BirthDate   string `json:"birthdate" validate:"required"` // YYYY-MM-DD
	MainOwnerID string `json:"main_owner_id" validate:"required"`
	VetID       string `json:"vet_id"`
	BreedID     int64  `json:"breed_id"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name        *string `json:"name"`
	BirthDate   *string `json:"birthdate"` // YYYY-MM-DD
	MainOwnerID *string `json:"main_owner_id"`
	VetID       *string `json:"vet_id"`
	BreedID     *int64  `json:"breed_id"`
}

type petResponse struct {
	ID          string     `json:"pet_id"`
	Name        string     `json:"name,omitempty"`
	BirthDate   *time.Time `json:"birthdate,omitempty"`
	MainOwnerID string     `json:"main_owner_id"`
	VetID       string     `json:"vet_id,omitempty"`
	BreedID     int64      `json:"breed_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type summaryResponse struct {
	Total            int           `json:"total"`
	AverageAgeYears  float64       `json:"average_age_years"`
	JuvenileFraction float64       `json:"juvenile_fraction"`
	Juveniles        []petResponse `json:"juveniles"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Registra una mascota con dueño, veterinario y raza. birthdate es obligatoria (las consultas por edad la necesitan).
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body createPetRequest true "Datos de la mascota; birthdate en YYYY-MM-DD"
// @Success 201 {object} petResponse
// @Failure 400 {string} string "invalid json / birthdate inválida"
// @Failure 500 {string} string "store error"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		bd, err := parseBirthDate(req.BirthDate)
		if err != nil {
			http.Error(w, "birthdate must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:        req.Name,
			BirthDate:   bd,
			MainOwnerID: req.MainOwnerID,
			VetID:       req.VetID,
			BreedID:     req.BreedID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

// getPetHandler godoc
// @Summary Perfil de una mascota
// @Tags pets
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// updatePetHandler godoc
// @Summary Editar mascota
// @Description PATCH parcial de name/birthdate/owner/vet/breed. created_at no se toca.
// @Tags pets
// @Accept json
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / birthdate inválida"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID} [patch]
func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:        req.Name,
			MainOwnerID: req.MainOwnerID,
			VetID:       req.VetID,
			BreedID:     req.BreedID,
		}
		if req.BirthDate != nil {
			bd, err := parseBirthDate(*req.BirthDate)
			if err != nil || bd == nil {
				http.Error(w, "birthdate must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.BirthDate = bd
		}

		p, err := svc.Update(r.Context(), chi.URLParam(r, "petID"), in)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Tags pets
// @Produce json
// @Success 200 {array} petResponse
// @Failure 500 {string} string "store error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// summaryHandler godoc
// @Summary Resumen de la población de mascotas
// @Description Total, edad promedio en años fraccionales y cohorte juvenil (< 2 años) con su porcentaje.
// @Tags pets
// @Produce json
// @Success 200 {object} summaryResponse
// @Failure 500 {string} string "store error"
// @Router /pets/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := svc.Summarize(r.Context())
		if err != nil {
			writeDomainError(w, err)
			return
		}

		juv := make([]petResponse, 0, len(sum.Juveniles))
		for _, p := range sum.Juveniles {
			juv = append(juv, toPetResponse(p))
		}

		writeJSON(w, http.StatusOK, summaryResponse{
			Total:            sum.Total,
			AverageAgeYears:  sum.AverageAgeYears,
			JuvenileFraction: sum.JuvenileFraction,
			Juveniles:        juv,
		})
	}
}

func parseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:          p.ID,
		Name:        p.Name,
		BirthDate:   p.BirthDate,
		MainOwnerID: p.MainOwnerID,
		VetID:       p.VetID,
		BreedID:     p.BreedID,
		CreatedAt:   p.CreatedAt,
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "pet not found", http.StatusNotFound)
	default:
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
