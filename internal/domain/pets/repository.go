package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven todas las implementaciones del Repository
// cuando la mascota no existe (lo distingue de una falla del store).
var ErrNotFound = errors.New("pet not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// ListIDs devuelve los IDs de todas las mascotas registradas.
	// Lo usa el batch driver para recorrer la población completa.
	ListIDs(ctx context.Context) ([]string, error)
}
