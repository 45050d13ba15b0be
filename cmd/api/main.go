package main

import (
	"net/http"
	"os"
	"time"

	"pet-care-scheduler/internal/adapters/auth/iam"
	"pet-care-scheduler/internal/adapters/catalog"
	"pet-care-scheduler/internal/platform/logger"
	"pet-care-scheduler/internal/ports/auth"
	"pet-care-scheduler/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	// El catálogo se valida acá, una sola vez: con catálogo malformado
	// el servicio no arranca.
	data, err := catalog.LoadFromEnv()
	if err != nil {
		log.Error("invalid care catalog, refusing to start", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	var verifier auth.AuthVerifier
	if base := os.Getenv("IAM_BASE_URL"); base != "" {
		client, err := iam.NewClient(iam.Config{
			BaseURL: base,
			APIKey:  os.Getenv("IAM_API_KEY"),
		})
		if err != nil {
			log.Error("invalid IAM config", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		verifier = iam.NewVerifier(client)
	}

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	r := router.NewRouter(router.Options{
		AuthVerifier: verifier, // nil => modo dev (X-Debug-User-ID)
		Catalog:      data.Catalog,
		Classifier:   data.Classifier,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{
		"addr":            addr,
		"catalog_version": data.Catalog.Version(),
		"rules":           len(data.Catalog.AllRules()),
	})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
