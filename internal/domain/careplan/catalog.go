package careplan

import (
	"fmt"
	"strings"

	"pet-care-scheduler/internal/domain/pets"
)

// Validate chequea la estructura de una regla y devuelve la lista de
// problemas encontrados (vacía si la regla es válida).
func Validate(r CareScheduleRule) []string {
	var problems []string

	if strings.TrimSpace(r.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(r.Description) == "" {
		problems = append(problems, "description is required")
	}

	if r.PetType != pets.SpeciesDog && r.PetType != pets.SpeciesCat {
		problems = append(problems, fmt.Sprintf("pet_type %q is not a valid species", r.PetType))
	}
	if !r.EventType.Valid() {
		problems = append(problems, fmt.Sprintf("event_type %q is not valid", r.EventType))
	}
	if !r.Priority.Valid() {
		problems = append(problems, fmt.Sprintf("priority %q is not valid", r.Priority))
	}

	if r.Recurrence.Interval <= 0 {
		problems = append(problems, "recurrence.interval must be positive")
	}
	if !r.Recurrence.Unit.Valid() {
		problems = append(problems, fmt.Sprintf("recurrence.unit %q is not valid", r.Recurrence.Unit))
	}

	if strings.TrimSpace(r.Source) == "" {
		problems = append(problems, "source is required")
	}

	if r.CreatedAt.IsZero() {
		problems = append(problems, "created_at is required")
	}
	if r.UpdatedAt.IsZero() {
		problems = append(problems, "updated_at is required")
	}

	return problems
}

// Catalog es la colección inmutable de reglas, particionada por especie.
// Se construye una sola vez al inicio del proceso y se inyecta en el
// orquestador (nada de estado global importable).
type Catalog struct {
	version   string
	rules     []CareScheduleRule
	bySpecies map[pets.Species][]CareScheduleRule
}

// NewCatalog valida todas las reglas y falla si alguna es inválida o si
// hay IDs repetidos: un catálogo a medias no sirve para generar nada.
func NewCatalog(version string, rules []CareScheduleRule) (*Catalog, error) {
	var problems []string
	seen := make(map[string]bool, len(rules))

	for i, r := range rules {
		for _, p := range Validate(r) {
			problems = append(problems, fmt.Sprintf("rule #%d (%s): %s", i, r.ID, p))
		}
		if r.ID != "" && seen[r.ID] {
			problems = append(problems, fmt.Sprintf("rule #%d: duplicate id %q", i, r.ID))
		}
		seen[r.ID] = true
	}

	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	c := &Catalog{
		version:   version,
		rules:     make([]CareScheduleRule, len(rules)),
		bySpecies: make(map[pets.Species][]CareScheduleRule),
	}
	copy(c.rules, rules)
	for _, r := range c.rules {
		c.bySpecies[r.PetType] = append(c.bySpecies[r.PetType], r)
	}

	return c, nil
}

func (c *Catalog) Version() string { return c.version }

// RulesForPetType devuelve las reglas de la especie, en el orden del catálogo.
func (c *Catalog) RulesForPetType(sp pets.Species) []CareScheduleRule {
	return c.bySpecies[sp]
}

func (c *Catalog) AllRules() []CareScheduleRule {
	return c.rules
}
