package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "pet-care-reminders/internal/adapters/storage/memory"
	pg "pet-care-reminders/internal/adapters/storage/postgres"
	"pet-care-reminders/internal/domain/breeds"
	"pet-care-reminders/internal/domain/events"
	"pet-care-reminders/internal/domain/pets"
	"pet-care-reminders/internal/middleware"
)

type Options struct {
	Logger zerolog.Logger

	// Pool nil => repos in-memory (modo dev y tests).
	Pool *pgxpool.Pool
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(opts.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		petRepo   pets.Repository
		eventRepo events.Repository
		breedRepo breeds.Repository
	)

	if opts.Pool != nil {
		petRepo = pg.NewPetsRepo(opts.Pool)
		eventRepo = pg.NewEventsRepo(opts.Pool)
		breedRepo = pg.NewBreedsRepo(opts.Pool)
	} else {
		memPets := mem.NewPetRepo()
		petRepo = memPets
		eventRepo = mem.NewEventRepo(memPets)
		breedRepo = mem.NewBreedRepo()
	}

	petsSvc := pets.NewService(petRepo)
	eventsSvc := events.NewService(eventRepo)
	breedsSvc := breeds.NewService(breedRepo)

	pets.RegisterRoutes(r, petsSvc)
	events.RegisterRoutes(r, eventsSvc)
	breeds.RegisterRoutes(r, breedsSvc)

	return r
}
