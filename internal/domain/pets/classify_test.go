package pets

import (
	"testing"
	"time"
)

func TestClassify_CatKeywords(t *testing.T) {
	c := NewSpeciesClassifier(nil)

	cases := []struct {
		breed string
		want  Species
	}{
		{"Persian Cat", SpeciesCat},
		{"persian", SpeciesCat},
		{"Siamese", SpeciesCat},
		{"Domestic Shorthair", SpeciesCat},
		{"kitten mix", SpeciesCat},
		{"Gato común europeo", SpeciesCat},
		{"Labrador Retriever", SpeciesDog},
		{"mixed", SpeciesDog},
		{"Poodle", SpeciesDog},
	}

	for _, tc := range cases {
		got, ok := c.Classify(tc.breed)
		if !ok {
			t.Fatalf("Classify(%q): expected determinate result", tc.breed)
		}
		if got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.breed, got, tc.want)
		}
	}
}

func TestClassify_EmptyBreed_Indeterminate(t *testing.T) {
	c := NewSpeciesClassifier(nil)

	for _, breed := range []string{"", "   "} {
		if _, ok := c.Classify(breed); ok {
			t.Fatalf("Classify(%q): expected indeterminate", breed)
		}
	}
}

func TestClassify_CustomKeywordTable(t *testing.T) {
	// La tabla es reemplazable por completo (p.ej. otro idioma).
	c := NewSpeciesClassifier([]string{"michi"})

	if got, _ := c.Classify("michi naranja"); got != SpeciesCat {
		t.Fatalf("expected cat for custom keyword, got %s", got)
	}
	// Con tabla custom, los defaults ya no aplican.
	if got, _ := c.Classify("persian"); got != SpeciesDog {
		t.Fatalf("expected dog fallback with custom table, got %s", got)
	}
}

func TestAgeInMonths_WholeCalendarMonths(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"five months", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 5},
		{"same month", time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), 0},
		{"day of month ignored", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), 1},
		{"across years", time.Date(2022, 8, 15, 0, 0, 0, 0, time.UTC), 22},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := AgeInMonths(&tc.birth, today)
			if !ok {
				t.Fatalf("expected determinate age")
			}
			if got != tc.want {
				t.Fatalf("AgeInMonths = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestAgeInMonths_Indeterminate(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	if _, ok := AgeInMonths(nil, today); ok {
		t.Fatalf("expected indeterminate for nil birth date")
	}

	future := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, ok := AgeInMonths(&future, today); ok {
		t.Fatalf("expected indeterminate for future birth date")
	}
}
