package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-care-scheduler/internal/router"
)

func TestHTTP_EndToEnd_CarePlanGeneration(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	strangerID := "stranger-1"

	// 1) Owner crea mascota con fecha de nacimiento
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Milo",
		"breed":      "Labrador Retriever",
		"sex":        "male",
		"birth_date": "2024-01-01",
	})

	// 2) Sin auth no se puede generar
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care-plan/generate", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without auth, got %d", st)
		}
	}

	// 3) Otro usuario tampoco
	{
		st, _ := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care-plan/generate", strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for non-owner, got %d", st)
		}
	}

	// 4) Owner genera el plan: debe crear eventos
	first := generate(t, ts.URL, ownerID, petID)
	if first.Created == 0 {
		t.Fatalf("expected events created on first run, got %+v", first)
	}
	if len(first.Errors) != 0 {
		t.Fatalf("unexpected generation errors: %v", first.Errors)
	}

	// 5) Regenerar sin cambios es idempotente: nada nuevo
	second := generate(t, ts.URL, ownerID, petID)
	if second.Created != 0 {
		t.Fatalf("regeneration must not duplicate, created=%d", second.Created)
	}
	if second.Skipped == 0 {
		t.Fatalf("regeneration should report skipped duplicates, got %+v", second)
	}

	// 6) Los eventos quedan listables y pendientes
	events := listEvents(t, ts.URL, ownerID, petID, "")
	if len(events) != first.Created {
		t.Fatalf("listed %d events, created %d", len(events), first.Created)
	}
	for _, e := range events {
		if e.Status != "pending" {
			t.Fatalf("expected pending event, got %+v", e)
		}
		if e.ScheduleRuleID == "" {
			t.Fatalf("generated event without schedule_rule_id: %+v", e)
		}
		if e.DueDate == "" {
			t.Fatalf("event without due_date: %+v", e)
		}
	}

	// 7) Completar un evento
	{
		st, body := doReq(t, ts.URL, "POST", "/pets/"+petID+"/care-events/"+events[0].ID+"/complete", ownerID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 complete, got %d body=%s", st, string(body))
		}
	}
	completed := listEvents(t, ts.URL, ownerID, petID, "?status=completed")
	if len(completed) != 1 || completed[0].ID != events[0].ID {
		t.Fatalf("expected 1 completed event, got %+v", completed)
	}

	// 8) Otro usuario no puede ver los eventos
	{
		st, _ := doReq(t, ts.URL, "GET", "/pets/"+petID+"/care-events", strangerID, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 listing by non-owner, got %d", st)
		}
	}
}

func TestHTTP_Generate_NoBirthDateReportsError(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":  "Misterio",
		"breed": "Labrador",
	})

	res := generate(t, ts.URL, ownerID, petID)
	if res.Created != 0 || res.Skipped != 0 {
		t.Fatalf("expected no events without birth date, got %+v", res)
	}
	if len(res.Errors) != 1 || res.Errors[0] != "Unable to determine pet age" {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
}

func TestHTTP_Generate_CatBreedGetsCatPlan(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	ownerID := "owner-1"
	petID := createPet(t, ts.URL, ownerID, map[string]any{
		"name":       "Luna",
		"breed":      "Persian Cat",
		"birth_date": "2023-06-01",
	})

	res := generate(t, ts.URL, ownerID, petID)
	if res.Created == 0 || len(res.Errors) != 0 {
		t.Fatalf("expected cat plan events, got %+v", res)
	}

	// Todos los eventos generados deben venir de reglas de gato
	catRules := map[string]bool{}
	for _, r := range listRules(t, ts.URL, "?pet_type=cat") {
		catRules[r.ID] = true
	}
	for _, e := range listEvents(t, ts.URL, ownerID, petID, "") {
		if !catRules[e.ScheduleRuleID] {
			t.Fatalf("event from non-cat rule %q", e.ScheduleRuleID)
		}
	}
}

func TestHTTP_ListRules_FiltersByPetType(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()

	all := listRules(t, ts.URL, "")
	dogs := listRules(t, ts.URL, "?pet_type=dog")
	cats := listRules(t, ts.URL, "?pet_type=cat")

	if len(all) == 0 || len(dogs) == 0 || len(cats) == 0 {
		t.Fatalf("catalog must expose rules: all=%d dogs=%d cats=%d", len(all), len(dogs), len(cats))
	}
	if len(dogs)+len(cats) != len(all) {
		t.Fatalf("dog+cat (%d+%d) != all (%d)", len(dogs), len(cats), len(all))
	}
	for _, r := range dogs {
		if r.PetType != "dog" {
			t.Fatalf("dog filter returned %+v", r)
		}
	}
}

// -------------------------
// Helpers HTTP
// -------------------------

type generateResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

type eventResult struct {
	ID             string `json:"id"`
	DueDate        string `json:"due_date"`
	Type           string `json:"type"`
	ScheduleRuleID string `json:"schedule_rule_id"`
	Status         string `json:"status"`
}

type ruleResult struct {
	ID        string `json:"id"`
	PetType   string `json:"pet_type"`
	EventType string `json:"event_type"`
}

func createPet(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create pet, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create pet: missing id body=%s", string(body))
	}
	return resp.ID
}

func generate(t *testing.T, baseURL, userID, petID string) generateResult {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/pets/"+petID+"/care-plan/generate", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 generate, got %d body=%s", st, string(body))
	}

	var resp generateResult
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode generate response: %v body=%s", err, string(body))
	}
	return resp
}

func listEvents(t *testing.T, baseURL, userID, petID, query string) []eventResult {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/pets/"+petID+"/care-events"+query, userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list events, got %d body=%s", st, string(body))
	}

	var resp []eventResult
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode events: %v body=%s", err, string(body))
	}
	return resp
}

func listRules(t *testing.T, baseURL, query string) []ruleResult {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/care-plan/rules"+query, "any-user", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list rules, got %d body=%s", st, string(body))
	}

	var resp []ruleResult
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode rules: %v body=%s", err, string(body))
	}
	return resp
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
