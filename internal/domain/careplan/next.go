package careplan

import (
	"time"

	"pet-care-scheduler/internal/domain/careevents"
	"pet-care-scheduler/internal/domain/pets"
)

// NextOccurrence calcula la próxima fecha de vencimiento de una regla para
// una mascota, o ok=false si la regla no aplica (todavía o ya no).
//
// Es una función pura: mismo input + mismo today => mismo output, sin
// efectos secundarios. Devuelve siempre UNA fecha, la más cercana en el
// futuro estricto; las ocurrencias históricas perdidas no se enumeran.
func NextOccurrence(rule CareScheduleRule, pet pets.Pet, ageMonths int, existing []careevents.CareEvent, today time.Time) (time.Time, bool) {
	today = careevents.DateOnly(today)

	// Puertas de elegibilidad por edad; cualquier falla => no aplica.
	if sc := rule.StartCondition; sc != nil && sc.AgeMonths != nil && ageMonths < *sc.AgeMonths {
		return time.Time{}, false // demasiado joven
	}
	if ec := rule.EndCondition; ec != nil && ec.AgeMonths != nil && ageMonths > *ec.AgeMonths {
		return time.Time{}, false // demasiado mayor
	}
	if cond := rule.Recurrence.Conditions; cond != nil {
		if cond.AgeMinMonths != nil && ageMonths < *cond.AgeMinMonths {
			return time.Time{}, false
		}
		if cond.AgeMaxMonths != nil && ageMonths > *cond.AgeMaxMonths {
			return time.Time{}, false
		}
	}

	// Fecha base, en orden de prioridad:
	// 1. el evento previo MÁS RECIENTE generado por esta regla
	// 2. nacimiento + edad mínima de inicio
	// 3. hoy
	var base time.Time
	haveBase := false
	for _, e := range existing {
		if e.ScheduleRuleID != rule.ID {
			continue
		}
		d := careevents.DateOnly(e.DueDate)
		if !haveBase || d.After(base) {
			base = d
			haveBase = true
		}
	}
	if !haveBase {
		if sc := rule.StartCondition; sc != nil && sc.AgeMonths != nil && pet.BirthDate != nil {
			base = careevents.DateOnly(*pet.BirthDate).AddDate(0, *sc.AgeMonths, 0)
		} else {
			base = today
		}
	}

	// Avanzar hasta quedar en futuro estricto. Si la base ya es futura
	// (un evento previo aún no vencido) la base ES el candidato: el
	// dedup lo detecta y re-correr la generación no apila eventos.
	candidate := base
	for !candidate.After(today) {
		candidate = advance(candidate, rule.Recurrence.Interval, rule.Recurrence.Unit)
	}

	return candidate, true
}

// advance suma un intervalo calendario. La unidad ya viene validada por el
// catálogo; AddDate normaliza meses/años (31-ene + 1 mes => normalización
// estándar de calendario).
func advance(t time.Time, interval int, unit RecurrenceUnit) time.Time {
	switch unit {
	case UnitWeeks:
		return t.AddDate(0, 0, 7*interval)
	case UnitMonths:
		return t.AddDate(0, interval, 0)
	case UnitYears:
		return t.AddDate(interval, 0, 0)
	default:
		return t.AddDate(0, 0, interval)
	}
}

// isDuplicate: igualdad exacta de (source, fecha); dos fechas con un día
// de diferencia son eventos distintos, sin ventana de tolerancia.
func isDuplicate(ruleID string, due time.Time, existing []careevents.CareEvent) bool {
	due = careevents.DateOnly(due)
	for _, e := range existing {
		if e.ScheduleRuleID == ruleID && careevents.DateOnly(e.DueDate).Equal(due) {
			return true
		}
	}
	return false
}
