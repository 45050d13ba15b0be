package pets

import "time"

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Pet representa el perfil básico de una mascota registrada en el sistema.
//
// Breed es texto libre (lo que escriba el dueño); la especie se deriva
// por clasificación de keywords, no se persiste (ver classify.go).
type Pet struct {
	ID          string
	OwnerUserID string

	Name  string
	Breed string // texto libre, puede venir vacío
	Sex   Sex    // male, female, unknown

	BirthDate *time.Time // opcional; sin fecha no hay edad calculable

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
