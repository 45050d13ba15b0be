package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "pet-care-scheduler/docs" // spec OpenAPI generada por swag
	"pet-care-scheduler/internal/adapters/catalog"
	mem "pet-care-scheduler/internal/adapters/storage/memory"
	pg "pet-care-scheduler/internal/adapters/storage/postgres"
	"pet-care-scheduler/internal/domain/careevents"
	"pet-care-scheduler/internal/domain/careplan"
	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/middleware"
	"pet-care-scheduler/internal/platform/logger"
	"pet-care-scheduler/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Catálogo ya validado. Si es nil se carga el embebido
	// (main en producción siempre lo pasa explícito).
	Catalog    *careplan.Catalog
	Classifier *pets.SpeciesClassifier

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	cat := opts.Catalog
	cls := opts.Classifier
	if cat == nil {
		data, err := catalog.LoadDefault()
		if err != nil {
			// el catálogo embebido está cubierto por tests; si falla acá
			// es un binario roto y no hay nada que servir
			panic(err)
		}
		cat = data.Catalog
		cls = data.Classifier
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	var (
		petRepo   pets.Repository
		eventRepo careevents.Repository
	)

	if db != nil {
		petRepo = pg.NewPetsRepo(db)
		eventRepo = pg.NewCareEventsRepo(db)
	} else {
		petRepo = mem.NewPetRepo()
		eventRepo = mem.NewCareEventRepo()
	}

	// Services por módulo
	petsSvc := pets.NewService(petRepo)
	eventsSvc := careevents.NewService(eventRepo)
	gen := careplan.NewGenerator(cat, cls, petRepo, eventRepo, log)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	careevents.RegisterRoutes(r, eventsSvc, petsSvc)
	careplan.RegisterRoutes(r, gen, petsSvc, cat)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
