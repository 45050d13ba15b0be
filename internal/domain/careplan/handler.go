package careplan

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"pet-care-scheduler/internal/domain/careevents"
	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, gen *Generator, petsSvc *pets.Service, catalog *Catalog) {
	// Generación on-demand (el cron/batch usa el Runner, no esta ruta)
	r.Post("/pets/{petID}/care-plan/generate", generateHandler(gen, petsSvc))

	// Inspección del catálogo de reglas
	r.Get("/care-plan/rules", listRulesHandler(catalog))
}

// generateResponse es el resultado agregado de un intento de generación.
type generateResponse struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

// generateHandler godoc
// @Summary Generar eventos de cuidado para una mascota
// @Description Evalúa el catálogo completo de reglas para la mascota y crea los eventos pendientes que falten. Idempotente: reinvocar sin cambios no duplica eventos.
// @Tags care-plan
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} generateResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/care-plan/generate [post]
func generateHandler(gen *Generator, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := petsSvc.GetByID(r.Context(), petID)
		if err != nil {
			http.Error(w, "pet not found", http.StatusNotFound)
			return
		}
		if p.OwnerUserID != claims.UserID {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		res := gen.GenerateForPet(r.Context(), petID)

		writeJSON(w, http.StatusOK, generateResponse{
			Created: res.Created,
			Skipped: res.Skipped,
			Errors:  res.ErrorMessages(),
		})
	}
}

type ruleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`

	PetType   pets.Species         `json:"pet_type"`
	EventType careevents.EventType `json:"event_type"`
	Priority  careevents.Priority  `json:"priority"`

	StartAgeMonths *int `json:"start_age_months,omitempty"`
	EndAgeMonths   *int `json:"end_age_months,omitempty"`

	RecurrenceInterval int            `json:"recurrence_interval"`
	RecurrenceUnit     RecurrenceUnit `json:"recurrence_unit"`
	AgeMinMonths       *int           `json:"age_min_months,omitempty"`
	AgeMaxMonths       *int           `json:"age_max_months,omitempty"`

	Source    string    `json:"source"`
	UpdatedAt time.Time `json:"updated_at"`
}

// listRulesHandler godoc
// @Summary Listar reglas del catálogo
// @Description Devuelve el catálogo de reglas de cuidado vigente. Filtro opcional `pet_type` (dog|cat).
// @Tags care-plan
// @Produce json
// @Param pet_type query string false "dog o cat"
// @Success 200 {array} ruleResponse
// @Router /care-plan/rules [get]
func listRulesHandler(catalog *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rules := catalog.AllRules()
		if pt := strings.TrimSpace(r.URL.Query().Get("pet_type")); pt != "" {
			rules = catalog.RulesForPetType(pets.Species(pt))
		}

		out := make([]ruleResponse, 0, len(rules))
		for _, rule := range rules {
			out = append(out, toRuleResponse(rule))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func toRuleResponse(r CareScheduleRule) ruleResponse {
	resp := ruleResponse{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		PetType:            r.PetType,
		EventType:          r.EventType,
		Priority:           r.Priority,
		RecurrenceInterval: r.Recurrence.Interval,
		RecurrenceUnit:     r.Recurrence.Unit,
		Source:             r.Source,
		UpdatedAt:          r.UpdatedAt,
	}
	if r.StartCondition != nil {
		resp.StartAgeMonths = r.StartCondition.AgeMonths
	}
	if r.EndCondition != nil {
		resp.EndAgeMonths = r.EndCondition.AgeMonths
	}
	if r.Recurrence.Conditions != nil {
		resp.AgeMinMonths = r.Recurrence.Conditions.AgeMinMonths
		resp.AgeMaxMonths = r.Recurrence.Conditions.AgeMaxMonths
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
