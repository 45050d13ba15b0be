package careevents

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-care-scheduler/internal/domain/pets"
	"pet-care-scheduler/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{petID}/care-events", func(er chi.Router) {
		er.Get("/", listCareEventsHandler(svc, petsSvc))
		er.Post("/{eventID}/complete", completeCareEventHandler(svc, petsSvc))
	})
}

// careEventResponse representa una obligación de cuidado devuelta por la API.
type careEventResponse struct {
	ID             string    `json:"id"`
	PetID          string    `json:"pet_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	DueDate        string    `json:"due_date"` // YYYY-MM-DD
	Type           EventType `json:"type"`
	Priority       Priority  `json:"priority"`
	ScheduleRuleID string    `json:"schedule_rule_id"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// listCareEventsHandler godoc
// @Summary Listar eventos de cuidado de una mascota
// @Description Lista las obligaciones de cuidado (pendientes y completadas). Filtros: `type` (repetible), `status`, `from`/`to` (YYYY-MM-DD), `limit`.
// @Tags care-events
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param type query string false "Filtrar por tipo de evento"
// @Param status query string false "pending o completed"
// @Param from query string false "Fecha mínima de vencimiento YYYY-MM-DD"
// @Param to query string false "Fecha máxima de vencimiento YYYY-MM-DD"
// @Param limit query int false "Máximo de resultados"
// @Success 200 {array} careEventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{petID}/care-events [get]
func listCareEventsHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		filter := ListFilter{}

		q := r.URL.Query()
		for _, t := range q["type"] {
			et := EventType(strings.TrimSpace(t))
			if et != "" && et.Valid() {
				filter.Types = append(filter.Types, et)
			}
		}
		if st := strings.TrimSpace(q.Get("status")); st != "" {
			filter.Status = Status(st)
		}
		if from := strings.TrimSpace(q.Get("from")); from != "" {
			t, err := time.Parse("2006-01-02", from)
			if err != nil {
				http.Error(w, "from must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.From = &t
		}
		if to := strings.TrimSpace(q.Get("to")); to != "" {
			t, err := time.Parse("2006-01-02", to)
			if err != nil {
				http.Error(w, "to must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			filter.To = &t
		}
		if l := strings.TrimSpace(q.Get("limit")); l != "" {
			n, err := strconv.Atoi(l)
			if err != nil || n < 0 {
				http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
				return
			}
			filter.Limit = n
		}

		items, err := svc.ListByPet(r.Context(), petID, filter)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]careEventResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toCareEventResponse(e))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// completeCareEventHandler godoc
// @Summary Completar evento de cuidado
// @Description Marca como completada una obligación de cuidado de la mascota.
// @Tags care-events
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param eventID path string true "ID del evento"
// @Success 200 {object} careEventResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 403 {string} string "forbidden"
// @Failure 404 {string} string "not found"
// @Router /pets/{petID}/care-events/{eventID}/complete [post]
func completeCareEventHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
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

		eventID := chi.URLParam(r, "eventID")
		e, err := svc.GetByID(r.Context(), eventID)
		if err != nil || e.PetID != petID {
			http.Error(w, "event not found", http.StatusNotFound)
			return
		}

		completed, err := svc.Complete(r.Context(), eventID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toCareEventResponse(completed))
	}
}

func toCareEventResponse(e CareEvent) careEventResponse {
	return careEventResponse{
		ID:             e.ID,
		PetID:          e.PetID,
		Title:          e.Title,
		Description:    e.Description,
		DueDate:        e.DueDate.Format("2006-01-02"),
		Type:           e.Type,
		Priority:       e.Priority,
		ScheduleRuleID: e.ScheduleRuleID,
		Status:         e.Status,
		CreatedAt:      e.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
