package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pet-care-scheduler/internal/domain/careevents"
)

type careEventRepo struct {
	mu   sync.RWMutex
	byID map[string]careevents.CareEvent
}

func NewCareEventRepo() careevents.Repository {
	return &careEventRepo{
		byID: make(map[string]careevents.CareEvent),
	}
}

func (r *careEventRepo) BulkInsert(ctx context.Context, evs []careevents.CareEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Validación previa completa: el lote entra entero o no entra.
	// El chequeo de (pet, source, due_date) replica el índice único de
	// Postgres para que dos corridas concurrentes no dupliquen.
	for _, e := range evs {
		if strings.TrimSpace(e.ID) == "" {
			return errors.New("care event id required")
		}
		if _, exists := r.byID[e.ID]; exists {
			return fmt.Errorf("care event %s already exists", e.ID)
		}
		for _, prev := range r.byID {
			if prev.PetID == e.PetID &&
				prev.ScheduleRuleID != "" &&
				prev.ScheduleRuleID == e.ScheduleRuleID &&
				careevents.DateOnly(prev.DueDate).Equal(careevents.DateOnly(e.DueDate)) {
				return fmt.Errorf("duplicate care event for pet %s rule %s", e.PetID, e.ScheduleRuleID)
			}
		}
	}

	for _, e := range evs {
		r.byID[e.ID] = e
	}
	return nil
}

func (r *careEventRepo) GetByID(ctx context.Context, id string) (careevents.CareEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byID[id]
	if !ok {
		return careevents.CareEvent{}, careevents.ErrNotFound
	}
	return e, nil
}

func (r *careEventRepo) ListWithSource(ctx context.Context, petID string) ([]careevents.CareEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]careevents.CareEvent, 0)
	for _, e := range r.byID {
		if e.PetID == petID && strings.TrimSpace(e.ScheduleRuleID) != "" {
			out = append(out, e)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})

	return out, nil
}

func (r *careEventRepo) ListByPet(ctx context.Context, petID string, filter careevents.ListFilter) ([]careevents.CareEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]careevents.CareEvent, 0)

	for _, e := range r.byID {
		if e.PetID != petID {
			continue
		}

		// Type filter
		if len(filter.Types) > 0 {
			ok := false
			for _, t := range filter.Types {
				if e.Type == t {
					ok = true
					break
				}
			}
			if !ok {
				continue
			}
		}

		// Status filter
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}

		// Date filters (due_date)
		if filter.From != nil && e.DueDate.Before(careevents.DateOnly(*filter.From)) {
			continue
		}
		if filter.To != nil && e.DueDate.After(careevents.DateOnly(*filter.To)) {
			continue
		}

		out = append(out, e)
	}

	// Orden por due_date asc (lo más próximo primero)
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.Before(out[j].DueDate)
	})

	if len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

func (r *careEventRepo) Complete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.byID[id]
	if !ok {
		return careevents.ErrNotFound
	}
	e.Status = careevents.StatusCompleted
	r.byID[id] = e
	return nil
}
