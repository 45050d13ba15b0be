package pets

import (
	"strings"
	"time"
)

// Species define las especies soportadas por el planificador de cuidados.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// DefaultCatKeywords son los términos que identifican razas/menciones de gato
// dentro del texto libre de Breed. Es data, no lógica: el catálogo puede
// reemplazar la lista completa sin tocar código.
var DefaultCatKeywords = []string{
	"cat",
	"kitten",
	"gato",
	"gata",
	"felino",
	"feline",
	"persian",
	"siamese",
	"siames",
	"maine coon",
	"bengal",
	"sphynx",
	"ragdoll",
	"abyssinian",
	"birman",
	"burmese",
	"himalayan",
	"british shorthair",
	"domestic shorthair",
	"domestic longhair",
}

// SpeciesClassifier clasifica una raza en especie por coincidencia de keywords.
// Cualquier keyword de gato presente en la raza => cat.
// Raza no vacía sin coincidencia => dog (default).
// Raza vacía => indeterminado.
type SpeciesClassifier struct {
	catKeywords []string
}

// NewSpeciesClassifier crea un clasificador con la tabla de keywords dada.
// Lista vacía o nil => usa DefaultCatKeywords.
func NewSpeciesClassifier(catKeywords []string) *SpeciesClassifier {
	kws := catKeywords
	if len(kws) == 0 {
		kws = DefaultCatKeywords
	}

	norm := make([]string, 0, len(kws))
	for _, k := range kws {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		norm = append(norm, k)
	}

	return &SpeciesClassifier{catKeywords: norm}
}

// Classify devuelve la especie y ok=false si la raza está vacía
// (no se puede determinar).
func (c *SpeciesClassifier) Classify(breed string) (Species, bool) {
	b := strings.ToLower(strings.TrimSpace(breed))
	if b == "" {
		return "", false
	}

	for _, kw := range c.catKeywords {
		if strings.Contains(b, kw) {
			return SpeciesCat, true
		}
	}

	return SpeciesDog, true
}

// AgeInMonths calcula la edad en meses calendario completos a la fecha dada.
// Se ignora el día del mes a propósito: (año*12 + mes) de diferencia, truncado.
// La imprecisión de hasta ~29 días es una simplificación conocida del dominio.
// ok=false si no hay fecha de nacimiento o si está en el futuro.
func AgeInMonths(birthDate *time.Time, today time.Time) (int, bool) {
	if birthDate == nil {
		return 0, false
	}

	months := (today.Year()-birthDate.Year())*12 + int(today.Month()) - int(birthDate.Month())
	if months < 0 {
		return 0, false
	}
	return months, true
}
