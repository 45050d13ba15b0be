package careevents

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("care event not found")

type Repository interface {
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]CareEvent, error)

	// ListWithSource devuelve los eventos del pet que tienen ScheduleRuleID
	// no vacío. Es la entrada del paso de deduplicación del motor.
	ListWithSource(ctx context.Context, petID string) ([]CareEvent, error)

	// BulkInsert persiste el lote completo o nada (all-or-nothing).
	BulkInsert(ctx context.Context, evs []CareEvent) error

	Complete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (CareEvent, error)
}

type ListFilter struct {
	Types  []EventType
	Status Status // vacío = todos
	From   *time.Time
	To     *time.Time
	Limit  int
}
