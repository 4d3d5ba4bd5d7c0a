package breeds

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/breeds", listBreedsHandler(svc))
}

type breedResponse struct {
	ID   int64  `json:"breed_id"`
	Name string `json:"name"`
}

// listBreedsHandler godoc
// @Summary Listar razas
// @Description Catálogo de razas (dato de referencia, solo lectura).
// @Tags breeds
// @Produce json
// @Success 200 {array} breedResponse
// @Failure 500 {string} string "store error"
// @Router /breeds [get]
func listBreedsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		out := make([]breedResponse, 0, len(items))
		for _, b := range items {
			out = append(out, breedResponse{ID: b.ID, Name: b.Name})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}
