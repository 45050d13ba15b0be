package careplan

import (
	"context"
	"sync"

	"pet-care-scheduler/internal/platform/logger"

	"golang.org/x/time/rate"
)

// PetLister enumera la población completa de mascotas para el batch.
type PetLister interface {
	ListIDs(ctx context.Context) ([]string, error)
}

type RunnerOptions struct {
	// Concurrency acota cuántas mascotas se procesan en paralelo.
	// Mascotas distintas son independientes entre sí; <=0 => 4.
	Concurrency int

	// RatePerMinute acota los arranques por minuto contra el store.
	// <=0 => sin límite.
	RatePerMinute int
}

// Runner es el batch driver: recorre todas las mascotas e invoca el
// orquestador una vez por cada una, con aislamiento de errores por
// mascota. Una mascota que falla no corta la corrida.
type Runner struct {
	gen     *Generator
	pets    PetLister
	limiter *rate.Limiter
	workers int
	log     logger.Logger
}

func NewRunner(gen *Generator, petLister PetLister, log logger.Logger, opts RunnerOptions) *Runner {
	workers := opts.Concurrency
	if workers <= 0 {
		workers = 4
	}

	var limiter *rate.Limiter
	if opts.RatePerMinute > 0 {
		perSecond := float64(opts.RatePerMinute) / 60.0
		limiter = rate.NewLimiter(rate.Limit(perSecond), opts.RatePerMinute)
	}

	return &Runner{
		gen:     gen,
		pets:    petLister,
		limiter: limiter,
		workers: workers,
		log:     log,
	}
}

// RunSummary agrega los contadores de una corrida completa.
type RunSummary struct {
	Pets    int
	Created int
	Skipped int
	Failed  int // mascotas con al menos un error
}

// Run procesa toda la población. Solo devuelve error si no pudo ni
// listar las mascotas o si el contexto se canceló; los errores por
// mascota van a logs y al contador Failed.
func (r *Runner) Run(ctx context.Context) (RunSummary, error) {
	ids, err := r.pets.ListIDs(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sum = RunSummary{Pets: len(ids)}
	)

	sem := make(chan struct{}, r.workers)

	for _, id := range ids {
		if r.limiter != nil {
			if err := r.limiter.Wait(ctx); err != nil {
				wg.Wait()
				return sum, err
			}
		} else if err := ctx.Err(); err != nil {
			wg.Wait()
			return sum, err
		}

		wg.Add(1)
		sem <- struct{}{}
		go func(petID string) {
			defer wg.Done()
			defer func() { <-sem }()

			res := r.gen.GenerateForPet(ctx, petID)

			mu.Lock()
			sum.Created += res.Created
			sum.Skipped += res.Skipped
			if len(res.Errors) > 0 {
				sum.Failed++
			}
			mu.Unlock()

			if len(res.Errors) > 0 && r.log != nil {
				for _, genErr := range res.Errors {
					r.log.Warn("care event generation failed for pet", map[string]any{
						"pet_id": petID,
						"code":   string(genErr.Code),
						"error":  genErr.Message(),
					})
				}
			}
		}(id)
	}

	wg.Wait()

	if r.log != nil {
		r.log.Info("care event generation run finished", map[string]any{
			"pets":    sum.Pets,
			"created": sum.Created,
			"skipped": sum.Skipped,
			"failed":  sum.Failed,
		})
	}

	return sum, nil
}
