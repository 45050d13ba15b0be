// Package catalog carga el catálogo estático de reglas de cuidado desde
// su archivo TOML versionado. El default va embebido en el binario; se
// puede reemplazar por un archivo externo vía CARE_CATALOG_PATH.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"pet-care-scheduler/internal/domain/careevents"
	"pet-care-scheduler/internal/domain/careplan"
	"pet-care-scheduler/internal/domain/pets"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var embeddedCatalog []byte

// Data es el resultado de cargar y validar un archivo de catálogo.
type Data struct {
	Catalog    *careplan.Catalog
	Classifier *pets.SpeciesClassifier
}

type tomlFile struct {
	Version    string         `toml:"version"`
	Classifier tomlClassifier `toml:"classifier"`
	Rules      []tomlRule     `toml:"rules"`
}

type tomlClassifier struct {
	CatKeywords []string `toml:"cat_keywords"`
}

type tomlRule struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`

	PetType   string `toml:"pet_type"`
	EventType string `toml:"event_type"`
	Priority  string `toml:"priority"`
	Source    string `toml:"source"`

	StartCondition *tomlStartCondition `toml:"start_condition"`
	Recurrence     tomlRecurrence      `toml:"recurrence"`
	EndCondition   *tomlEndCondition   `toml:"end_condition"`

	CreatedAt time.Time `toml:"created_at"`
	UpdatedAt time.Time `toml:"updated_at"`
}

type tomlStartCondition struct {
	AgeMonths *int   `toml:"age_months"`
	Trigger   string `toml:"trigger"`
}

type tomlEndCondition struct {
	AgeMonths *int `toml:"age_months"`
}

type tomlRecurrence struct {
	Interval   int             `toml:"interval"`
	Unit       string          `toml:"unit"`
	Conditions *tomlConditions `toml:"conditions"`
}

type tomlConditions struct {
	AgeMinMonths *int `toml:"age_min_months"`
	AgeMaxMonths *int `toml:"age_max_months"`
}

// LoadFromEnv carga desde CARE_CATALOG_PATH si está seteado, si no usa el
// catálogo embebido. Un catálogo inválido devuelve error: el proceso no
// debe arrancar sin catálogo validado.
func LoadFromEnv() (Data, error) {
	if path := strings.TrimSpace(os.Getenv("CARE_CATALOG_PATH")); path != "" {
		return LoadFile(path)
	}
	return load(embeddedCatalog)
}

// LoadDefault carga el catálogo embebido en el binario.
func LoadDefault() (Data, error) {
	return load(embeddedCatalog)
}

func LoadFile(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return load(raw)
}

func load(raw []byte) (Data, error) {
	var f tomlFile
	if err := toml.Unmarshal(raw, &f); err != nil {
		return Data{}, fmt.Errorf("catalog: parse toml: %w", err)
	}

	rules := make([]careplan.CareScheduleRule, 0, len(f.Rules))
	for _, tr := range f.Rules {
		rules = append(rules, toRule(tr))
	}

	cat, err := careplan.NewCatalog(f.Version, rules)
	if err != nil {
		return Data{}, err
	}

	return Data{
		Catalog:    cat,
		Classifier: pets.NewSpeciesClassifier(f.Classifier.CatKeywords),
	}, nil
}

func toRule(tr tomlRule) careplan.CareScheduleRule {
	r := careplan.CareScheduleRule{
		ID:          tr.ID,
		Name:        tr.Name,
		Description: tr.Description,
		PetType:     pets.Species(tr.PetType),
		EventType:   careevents.EventType(tr.EventType),
		Priority:    careevents.Priority(tr.Priority),
		Source:      tr.Source,
		Recurrence: careplan.Recurrence{
			Interval: tr.Recurrence.Interval,
			Unit:     careplan.RecurrenceUnit(tr.Recurrence.Unit),
		},
		CreatedAt: tr.CreatedAt,
		UpdatedAt: tr.UpdatedAt,
	}

	if tr.StartCondition != nil {
		r.StartCondition = &careplan.StartCondition{
			AgeMonths: tr.StartCondition.AgeMonths,
			Trigger:   tr.StartCondition.Trigger,
		}
	}
	if tr.EndCondition != nil {
		r.EndCondition = &careplan.EndCondition{
			AgeMonths: tr.EndCondition.AgeMonths,
		}
	}
	if tr.Recurrence.Conditions != nil {
		r.Recurrence.Conditions = &careplan.RecurrenceConditions{
			AgeMinMonths: tr.Recurrence.Conditions.AgeMinMonths,
			AgeMaxMonths: tr.Recurrence.Conditions.AgeMaxMonths,
		}
	}

	return r
}
