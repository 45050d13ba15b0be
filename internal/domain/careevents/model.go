package careevents

import "time"

// CareEvent es una obligación de cuidado con fecha de vencimiento.
// Los genera el motor de care-plan a partir de reglas del catálogo;
// ScheduleRuleID guarda el ID de la regla que lo produjo y funciona
// como clave de deduplicación (source).
type CareEvent struct {
	ID    string
	PetID string

	Title       string
	Description string

	// DueDate es fecha pura (medianoche UTC), sin componente horario.
	DueDate time.Time

	Type     EventType
	Priority Priority

	ScheduleRuleID string

	Status Status

	OwnerUserID string
	CreatedAt   time.Time
}

// DateOnly normaliza un instante a fecha pura en UTC.
// Toda comparación de vencimientos se hace sobre fechas normalizadas.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
