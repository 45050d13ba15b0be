package careplan

import (
	"context"
	"errors"
	"testing"

	"pet-care-scheduler/internal/domain/pets"
)

type testPetLister struct {
	ids []string
	err error
}

func (l *testPetLister) ListIDs(ctx context.Context) ([]string, error) {
	return l.ids, l.err
}

func TestRunner_IsolatesFailingPets(t *testing.T) {
	// Tres mascotas: una sana, una sin fecha de nacimiento y una que
	// no existe. Las fallas no deben frenar la corrida.
	birth := date(2024, 1, 1)
	petStore := &testPetStore{byID: map[string]pets.Pet{
		"ok":       {ID: "ok", OwnerUserID: "owner-1", Breed: "Labrador", BirthDate: &birth},
		"no-birth": {ID: "no-birth", OwnerUserID: "owner-1", Breed: "Labrador"},
	}}
	eventStore := &testEventStore{}

	gen := newTestGenerator(t, []CareScheduleRule{monthlyRule("rule-a", 2)}, petStore, eventStore, date(2024, 6, 1))
	runner := NewRunner(gen, &testPetLister{ids: []string{"ok", "no-birth", "ghost"}}, nil, RunnerOptions{Concurrency: 2})

	sum, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if sum.Pets != 3 {
		t.Fatalf("pets = %d, want 3", sum.Pets)
	}
	if sum.Created != 1 || sum.Failed != 2 {
		t.Fatalf("created=%d failed=%d, want 1/2", sum.Created, sum.Failed)
	}
	if len(eventStore.inserted) != 1 || eventStore.inserted[0].PetID != "ok" {
		t.Fatalf("unexpected inserts: %+v", eventStore.inserted)
	}
}

func TestRunner_ListFailureAbortsRun(t *testing.T) {
	gen := newTestGenerator(t, []CareScheduleRule{monthlyRule("rule-a", 2)},
		&testPetStore{byID: map[string]pets.Pet{}}, &testEventStore{}, date(2024, 6, 1))
	runner := NewRunner(gen, &testPetLister{err: errors.New("db down")}, nil, RunnerOptions{})

	if _, err := runner.Run(context.Background()); err == nil {
		t.Fatal("expected error when listing fails")
	}
}

func TestRunner_CancelledContextStopsScheduling(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gen := newTestGenerator(t, []CareScheduleRule{monthlyRule("rule-a", 2)},
		&testPetStore{byID: map[string]pets.Pet{}}, &testEventStore{}, date(2024, 6, 1))
	runner := NewRunner(gen, &testPetLister{ids: []string{"a", "b"}}, nil, RunnerOptions{})

	if _, err := runner.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunner_AggregatesSkipped(t *testing.T) {
	birth := date(2024, 1, 1)
	petStore := &testPetStore{byID: map[string]pets.Pet{
		"pet-1": {ID: "pet-1", OwnerUserID: "owner-1", Breed: "Labrador", BirthDate: &birth},
	}}
	eventStore := &testEventStore{}

	gen := newTestGenerator(t, []CareScheduleRule{monthlyRule("rule-a", 2)}, petStore, eventStore, date(2024, 6, 1))
	runner := NewRunner(gen, &testPetLister{ids: []string{"pet-1"}}, nil, RunnerOptions{RatePerMinute: 600})

	first, err := runner.Run(context.Background())
	if err != nil || first.Created != 1 {
		t.Fatalf("first run: created=%d err=%v", first.Created, err)
	}

	// Segunda corrida con el evento ya persistido: mismo candidato => skipped.
	eventStore.existing = eventStore.inserted
	second, err := runner.Run(context.Background())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Created != 0 || second.Skipped != 1 {
		t.Fatalf("second run: created=%d skipped=%d, want 0/1", second.Created, second.Skipped)
	}
}
