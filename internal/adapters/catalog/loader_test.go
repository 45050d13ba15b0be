package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"pet-care-scheduler/internal/domain/pets"
)

func TestLoadDefault_EmbeddedCatalogIsValid(t *testing.T) {
	data, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	if data.Catalog.Version() == "" {
		t.Fatal("embedded catalog must carry a version")
	}
	if len(data.Catalog.AllRules()) == 0 {
		t.Fatal("embedded catalog must not be empty")
	}

	// Ambas especies tienen que tener reglas en el catálogo default.
	if len(data.Catalog.RulesForPetType(pets.SpeciesDog)) == 0 {
		t.Fatal("no dog rules in embedded catalog")
	}
	if len(data.Catalog.RulesForPetType(pets.SpeciesCat)) == 0 {
		t.Fatal("no cat rules in embedded catalog")
	}
}

func TestLoadDefault_ClassifierUsesFileKeywords(t *testing.T) {
	data, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault: %v", err)
	}

	cases := []struct {
		breed string
		want  pets.Species
	}{
		{"Persian Cat", pets.SpeciesCat},
		{"Siamese", pets.SpeciesCat},
		{"Labrador Retriever", pets.SpeciesDog},
	}
	for _, tc := range cases {
		got, ok := data.Classifier.Classify(tc.breed)
		if !ok || got != tc.want {
			t.Errorf("Classify(%q) = %v, %v; want %v", tc.breed, got, ok, tc.want)
		}
	}
}

func TestLoadFromEnv_PathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	raw := `
version = "test.1"

[classifier]
cat_keywords = ["cat"]

[[rules]]
id = "r-1"
name = "Regla"
description = "una regla"
pet_type = "dog"
event_type = "grooming"
priority = "low"
source = "test"
created_at = 2026-01-01T00:00:00Z
updated_at = 2026-01-01T00:00:00Z

[rules.recurrence]
interval = 1
unit = "months"
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write temp catalog: %v", err)
	}
	t.Setenv("CARE_CATALOG_PATH", path)

	data, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	if data.Catalog.Version() != "test.1" {
		t.Fatalf("version = %q", data.Catalog.Version())
	}
	if len(data.Catalog.AllRules()) != 1 {
		t.Fatalf("rules = %d, want 1", len(data.Catalog.AllRules()))
	}
}

func TestLoadFile_InvalidRuleFailsLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	raw := `
version = "test.bad"

[[rules]]
id = ""
name = ""
description = ""
pet_type = "hamster"
event_type = "grooming"
priority = "low"
source = "test"

[rules.recurrence]
interval = 0
unit = "fortnights"
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write temp catalog: %v", err)
	}

	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected validation error for invalid rule")
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
