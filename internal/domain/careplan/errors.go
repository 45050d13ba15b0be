package careplan

import (
	"fmt"
	"strings"
)

// ErrorCode es el conjunto cerrado de fallas por mascota durante la
// generación. Se acumulan en el Result de cada intento en vez de
// propagarse, para que un batch driver aísle fallas por mascota.
type ErrorCode string

const (
	CodePetNotFound       ErrorCode = "pet_not_found"
	CodeAgeIndeterminate  ErrorCode = "age_indeterminate"
	CodeTypeIndeterminate ErrorCode = "type_indeterminate"
	CodePersistence       ErrorCode = "persistence"
	CodeInternal          ErrorCode = "internal"
)

// GenerationError es una variante etiquetada con contexto estructurado.
// La traducción a texto para mostrar ocurre recién en el borde (HTTP/CLI),
// vía Message().
type GenerationError struct {
	Code  ErrorCode
	PetID string
	Err   error // causa subyacente, opcional
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("careplan: %s (pet=%s): %v", e.Code, e.PetID, e.Err)
	}
	return fmt.Sprintf("careplan: %s (pet=%s)", e.Code, e.PetID)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Message devuelve el texto orientado a usuario para cada variante.
func (e *GenerationError) Message() string {
	switch e.Code {
	case CodePetNotFound:
		return "Pet not found"
	case CodeAgeIndeterminate:
		return "Unable to determine pet age"
	case CodeTypeIndeterminate:
		return "Unable to determine pet type from breed"
	case CodePersistence:
		if e.Err != nil {
			return "Failed to save care events: " + e.Err.Error()
		}
		return "Failed to save care events"
	default:
		return "Unexpected error during care event generation"
	}
}

// ValidationError agrupa los problemas de un catálogo malformado.
// Es fatal: el motor no debe arrancar con un catálogo inválido.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("careplan: invalid catalog: %s", strings.Join(e.Problems, "; "))
}
