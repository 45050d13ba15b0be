package careplan

import (
	"time"

	"pet-care-scheduler/internal/domain/careevents"
	"pet-care-scheduler/internal/domain/pets"
)

// RecurrenceUnit define las unidades de recurrencia soportadas.
// @Enum days, weeks, months, years
type RecurrenceUnit string

const (
	UnitDays   RecurrenceUnit = "days"
	UnitWeeks  RecurrenceUnit = "weeks"
	UnitMonths RecurrenceUnit = "months"
	UnitYears  RecurrenceUnit = "years"
)

var RecurrenceUnits = []RecurrenceUnit{UnitDays, UnitWeeks, UnitMonths, UnitYears}

func (u RecurrenceUnit) Valid() bool {
	for _, v := range RecurrenceUnits {
		if u == v {
			return true
		}
	}
	return false
}

// StartCondition marca desde cuándo aplica una regla.
// AgeMonths: edad mínima en meses. Trigger queda reservado para reglas
// activadas por eventos; el catálogo actual no lo usa y el calculador
// solo actúa sobre AgeMonths.
type StartCondition struct {
	AgeMonths *int
	Trigger   string
}

// EndCondition marca la edad máxima en meses tras la cual la regla deja de aplicar.
type EndCondition struct {
	AgeMonths *int
}

// RecurrenceConditions acota la ventana de edad dentro de la cual recurre la regla.
type RecurrenceConditions struct {
	AgeMinMonths *int
	AgeMaxMonths *int
}

type Recurrence struct {
	Interval   int // siempre > 0 (lo garantiza el validador)
	Unit       RecurrenceUnit
	Conditions *RecurrenceConditions
}

// CareScheduleRule es una regla declarativa de recurrencia para una
// categoría de cuidado. Inmutable: se define en el catálogo y nunca se
// muta en runtime. El ID es único en el catálogo y actúa como clave de
// deduplicación (source) de los eventos generados.
type CareScheduleRule struct {
	ID          string
	Name        string
	Description string

	PetType   pets.Species
	EventType careevents.EventType

	StartCondition *StartCondition
	Recurrence     Recurrence
	EndCondition   *EndCondition

	Priority careevents.Priority

	// Source es la atribución de la regla (guía veterinaria de origen).
	Source string

	CreatedAt time.Time
	UpdatedAt time.Time
}
