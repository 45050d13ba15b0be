package careplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-care-scheduler/internal/domain/careevents"
	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/platform/logger"

	"github.com/google/uuid"
)

// PetReader es lo único que el orquestador necesita del store de mascotas.
type PetReader interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
}

// EventStore es el borde de persistencia de eventos de cuidado.
type EventStore interface {
	ListWithSource(ctx context.Context, petID string) ([]careevents.CareEvent, error)
	BulkInsert(ctx context.Context, evs []careevents.CareEvent) error
}

// Result agrega el resultado de un intento de generación para una mascota.
type Result struct {
	Created int
	Skipped int
	Errors  []*GenerationError
}

// ErrorMessages traduce las variantes a texto para el borde (HTTP/CLI).
func (r Result) ErrorMessages() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Message())
	}
	return out
}

// Generator es el orquestador de generación: carga hechos de la mascota,
// clasifica, calcula candidatos para cada regla del catálogo, filtra
// duplicados y persiste el lote resultante.
type Generator struct {
	catalog    *Catalog
	classifier *pets.SpeciesClassifier
	pets       PetReader
	events     EventStore
	log        logger.Logger
	now        func() time.Time
}

func NewGenerator(catalog *Catalog, classifier *pets.SpeciesClassifier, petReader PetReader, events EventStore, log logger.Logger) *Generator {
	if classifier == nil {
		classifier = pets.NewSpeciesClassifier(nil)
	}
	return &Generator{
		catalog:    catalog,
		classifier: classifier,
		pets:       petReader,
		events:     events,
		log:        log,
		now:        time.Now,
	}
}

// GenerateForPet es el único punto de entrada público del motor.
// Nunca deja escapar un error: toda falla queda en Result.Errors,
// incluso un panic inesperado durante la generación.
func (g *Generator) GenerateForPet(ctx context.Context, petID string) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = Result{Errors: []*GenerationError{{
				Code:  CodeInternal,
				PetID: petID,
				Err:   fmt.Errorf("panic: %v", rec),
			}}}
			if g.log != nil {
				g.log.Error("care event generation panicked", map[string]any{
					"pet_id": petID,
					"panic":  fmt.Sprintf("%v", rec),
				})
			}
		}
	}()

	p, err := g.pets.GetByID(ctx, petID)
	if err != nil {
		code := CodePersistence
		if errors.Is(err, pets.ErrNotFound) {
			code = CodePetNotFound
		}
		res.Errors = append(res.Errors, &GenerationError{Code: code, PetID: petID, Err: err})
		return res
	}

	now := g.now()

	age, ok := pets.AgeInMonths(p.BirthDate, now)
	if !ok {
		res.Errors = append(res.Errors, &GenerationError{Code: CodeAgeIndeterminate, PetID: petID})
		return res
	}

	existing, err := g.events.ListWithSource(ctx, petID)
	if err != nil {
		res.Errors = append(res.Errors, &GenerationError{Code: CodePersistence, PetID: petID, Err: err})
		return res
	}

	species, ok := g.classifier.Classify(p.Breed)
	if !ok {
		res.Errors = append(res.Errors, &GenerationError{Code: CodeTypeIndeterminate, PetID: petID})
		return res
	}

	var batch []careevents.CareEvent
	for _, rule := range g.catalog.RulesForPetType(species) {
		due, ok := NextOccurrence(rule, p, age, existing, now)
		if !ok {
			// Regla no aplicable (edad fuera de ventana): se ignora sin contar.
			continue
		}

		if isDuplicate(rule.ID, due, existing) {
			res.Skipped++
			continue
		}

		batch = append(batch, careevents.CareEvent{
			ID:             uuid.NewString(),
			PetID:          p.ID,
			Title:          rule.Name,
			Description:    rule.Description,
			DueDate:        due,
			Type:           rule.EventType,
			Priority:       rule.Priority,
			ScheduleRuleID: rule.ID,
			Status:         careevents.StatusPending,
			OwnerUserID:    p.OwnerUserID,
			CreatedAt:      now,
		})
	}

	if len(batch) > 0 {
		// Lote completo o nada: una falla del insert no deja mitades.
		if err := g.events.BulkInsert(ctx, batch); err != nil {
			res.Errors = append(res.Errors, &GenerationError{Code: CodePersistence, PetID: petID, Err: err})
			return res
		}
		res.Created = len(batch)
	}

	if g.log != nil {
		g.log.Debug("care events generated", map[string]any{
			"pet_id":  petID,
			"species": string(species),
			"created": res.Created,
			"skipped": res.Skipped,
		})
	}

	return res
}
