// ABOUTME: Tests for the todo controller
// ABOUTME: Verifies refetch reconciliation, stale-on-failure, and offline tracking

package todo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ahermansen/todochat/internal/api"
	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func fixedUser(id int) func() int {
	return func() int { return id }
}

func TestController_FetchAllReplacesCollection(t *testing.T) {
	todos := []domain.Todo{{ID: 1, Notes: "buy milk", Status: domain.StatusPending}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(todos)
	}))
	defer server.Close()

	client := api.New(server.URL, newTestStore(t), nil)
	c := NewController(client, nil, fixedUser(1), nil)

	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Todos(); len(got) != 1 || got[0].Notes != "buy milk" {
		t.Errorf("unexpected todos: %+v", got)
	}
	if c.LastFetch().IsZero() {
		t.Error("expected lastFetch to be set")
	}

	// A second fetch replaces wholesale, it does not merge.
	todos = []domain.Todo{{ID: 2, Notes: "walk dog"}}
	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Todos(); len(got) != 1 || got[0].ID != 2 {
		t.Errorf("expected replaced collection, got %+v", got)
	}
}

func TestController_FailedFetchKeepsStaleTodos(t *testing.T) {
	var fail atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]domain.Todo{{ID: 1, Notes: "buy milk"}})
	}))
	defer server.Close()

	client := api.New(server.URL, newTestStore(t), nil)
	c := NewController(client, nil, fixedUser(1), nil)

	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fail.Store(true)
	if err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := c.Todos(); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected stale todos to survive, got %+v", got)
	}
}

func TestController_NetworkFailureFlipsOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Todo{})
	}))

	client := api.New(server.URL, newTestStore(t), nil)
	c := NewController(client, nil, fixedUser(1), nil)

	if err := c.FetchAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Offline() {
		t.Error("expected online after successful fetch")
	}

	server.Close()
	if err := c.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error after server shutdown")
	}
	if !c.Offline() {
		t.Error("expected offline after connection failure")
	}
}

func TestController_AuthExpiredInvokesCallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	torn := false
	client := api.New(server.URL, newTestStore(t), nil)
	c := NewController(client, nil, fixedUser(1), func() { torn = true })

	err := c.FetchAll(context.Background())
	if !domain.IsCode(err, domain.ErrCodeAuthExpired) {
		t.Fatalf("expected auth expired, got %v", err)
	}
	if !torn {
		t.Error("expected auth-expired callback to fire")
	}
}

func TestController_CreateReconcilesViaRefetch(t *testing.T) {
	var created atomic.Bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			created.Store(true)
			json.NewEncoder(w).Encode(domain.Todo{ID: 5, Notes: "new task"})
			return
		}
		if created.Load() {
			json.NewEncoder(w).Encode([]domain.Todo{{ID: 5, Notes: "new task"}})
			return
		}
		json.NewEncoder(w).Encode([]domain.Todo{})
	}))
	defer server.Close()

	client := api.New(server.URL, newTestStore(t), nil)
	c := NewController(client, nil, fixedUser(1), nil)

	notes := "new task"
	if err := c.Create(context.Background(), domain.TodoInput{Notes: &notes}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Todos(); len(got) != 1 || got[0].ID != 5 {
		t.Errorf("expected refetched collection, got %+v", got)
	}
}

func TestController_DeleteClearsPendingID(t *testing.T) {
	sawDelete := make(chan int, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			sawDelete <- 1
			w.WriteHeader(http.StatusOK)
			return
		}
		json.NewEncoder(w).Encode([]domain.Todo{})
	}))
	defer server.Close()

	client := api.New(server.URL, newTestStore(t), nil)
	c := NewController(client, nil, fixedUser(1), nil)

	if err := c.Delete(context.Background(), 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-sawDelete
	if id := c.DeletingID(); id != 0 {
		t.Errorf("expected cleared deleting id, got %d", id)
	}
}

func TestController_ReplaceActsLikeFetch(t *testing.T) {
	c := NewController(nil, nil, fixedUser(1), nil)

	c.Replace([]domain.Todo{{ID: 9, Notes: "from chat"}})
	if got := c.Todos(); len(got) != 1 || got[0].ID != 9 {
		t.Errorf("unexpected todos: %+v", got)
	}
	if c.LastFetch().IsZero() {
		t.Error("expected lastFetch to be set by Replace")
	}
}
