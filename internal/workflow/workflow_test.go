package workflow_test

import (
	"testing"

	"go.uber.org/zap"

	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
	"festival-app/internal/repository"
	"festival-app/internal/workflow"
)

type env struct {
	store *repository.MemStore
	fw    *workflow.FestivalWorkflow
	pw    *workflow.PerformanceWorkflow
}

func newEnv() *env {
	store := repository.NewMemStore()
	log := zap.NewNop()
	return &env{
		store: store,
		fw:    workflow.NewFestivalWorkflow(store, log),
		pw:    workflow.NewPerformanceWorkflow(store, log),
	}
}

func (e *env) user(t *testing.T, username string, role users.Role) *users.User {
	t.Helper()
	u := &users.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		Status:   users.StatusActive,
	}
	if err := e.store.SaveUser(u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func (e *env) inactiveUser(t *testing.T, username string, role users.Role) *users.User {
	t.Helper()
	u := e.user(t, username, role)
	u.Status = users.StatusInactive
	if err := e.store.SaveUser(u); err != nil {
		t.Fatalf("deactivate user %s: %v", username, err)
	}
	return u
}

func (e *env) festival(t *testing.T, name string, state festivals.State, organizer *users.User) *festivals.Festival {
	t.Helper()
	f := &festivals.Festival{Name: name, State: state}
	if err := e.store.CreateFestival(f); err != nil {
		t.Fatalf("seed festival %s: %v", name, err)
	}
	if organizer != nil {
		if err := e.store.AddOrganizer(f, organizer); err != nil {
			t.Fatalf("seed organizer for %s: %v", name, err)
		}
	}
	return f
}

func (e *env) performance(t *testing.T, f *festivals.Festival, name string, state performances.State, creator *users.User) *performances.Performance {
	t.Helper()
	p := &performances.Performance{
		FestivalID: f.ID,
		Name:       name,
		State:      state,
		CreatorID:  creator.ID,
	}
	if err := e.store.CreatePerformance(p); err != nil {
		t.Fatalf("seed performance %s: %v", name, err)
	}
	return p
}

func (e *env) setFestivalState(t *testing.T, f *festivals.Festival, state festivals.State) {
	t.Helper()
	f.State = state
	if err := e.store.SaveFestival(f); err != nil {
		t.Fatalf("set festival state: %v", err)
	}
}

func (e *env) reloadPerformance(t *testing.T, id uint) *performances.Performance {
	t.Helper()
	p, err := e.store.PerformanceByID(id)
	if err != nil {
		t.Fatalf("reload performance %d: %v", id, err)
	}
	return p
}

func (e *env) reloadFestival(t *testing.T, id uint) *festivals.Festival {
	t.Helper()
	f, err := e.store.FestivalByID(id)
	if err != nil {
		t.Fatalf("reload festival %d: %v", id, err)
	}
	return f
}

func wantKind(t *testing.T, err error, kind workflow.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %s error, got nil", kind)
	}
	if got := workflow.KindOf(err); got != kind {
		t.Fatalf("want %s error, got %s: %v", kind, got, err)
	}
}

func intp(v int) *int { return &v }
