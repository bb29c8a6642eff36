// ABOUTME: Tests for the auth session manager
// ABOUTME: Covers restore, login persistence, logout teardown, and registration

package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ahermansen/todochat/internal/api"
	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/session"
	"github.com/ahermansen/todochat/internal/store"
)

type fixture struct {
	store   *store.Store
	session *session.Manager
	manager *Manager
}

func newFixture(t *testing.T, baseURL string) *fixture {
	t.Helper()
	st, err := store.OpenPath(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	sess := session.New(st)
	client := api.New(baseURL, st, nil)
	return &fixture{
		store:   st,
		session: sess,
		manager: New(client, st, sess, nil),
	}
}

func authBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req api.LoginRequest
			json.NewDecoder(r.Body).Decode(&req)
			if req.Password != "secret" {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect username or password"})
				return
			}
			json.NewEncoder(w).Encode(api.TokenResponse{
				AccessToken:  "access-1",
				TokenType:    "Bearer",
				RefreshToken: "refresh-1",
			})
		case "/auth/register":
			json.NewEncoder(w).Encode(api.RegisteredUser{ID: 2, Username: "bob", Email: "bob@example.com"})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer access-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(domain.UserProfile{ID: 1, Username: "alice", Email: "alice@example.com"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestInitialize_NoStoredSession(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	f.manager.Initialize(context.Background())

	if !f.manager.IsInitialized() {
		t.Error("expected initialized")
	}
	if f.manager.State() != Unauthenticated {
		t.Errorf("expected Unauthenticated, got %v", f.manager.State())
	}
	if f.manager.IsAuthenticated() {
		t.Error("expected not authenticated")
	}
}

func TestInitialize_RestoresStoredSession(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	f.store.Set(store.KeyAuthToken, "Bearer access-1")
	f.store.Set(store.KeyAuthUser, `{"id":1,"username":"alice"}`)

	f.manager.Initialize(context.Background())

	if f.manager.State() != Authenticated {
		t.Fatalf("expected Authenticated, got %v", f.manager.State())
	}
	profile := f.manager.Profile()
	if profile == nil || profile.Email != "alice@example.com" {
		t.Errorf("expected verified profile, got %+v", profile)
	}
}

func TestInitialize_RejectedTokenTearsDown(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	f.store.Set(store.KeyAuthToken, "Bearer revoked")
	f.store.Set(store.KeyAuthUser, `{"id":1,"username":"alice"}`)

	f.manager.Initialize(context.Background())

	if f.manager.State() != Unauthenticated {
		t.Errorf("expected Unauthenticated, got %v", f.manager.State())
	}
	if token, _ := f.store.Get(store.KeyAuthToken); token != "" {
		t.Errorf("expected stored token cleared, got %q", token)
	}
}

func TestInitialize_BackendDownKeepsStoredCredentials(t *testing.T) {
	f := newFixture(t, "http://127.0.0.1:1")

	f.store.Set(store.KeyAuthToken, "Bearer access-1")
	f.store.Set(store.KeyAuthUser, `{"id":1,"username":"alice"}`)

	f.manager.Initialize(context.Background())

	if f.manager.State() != Unauthenticated {
		t.Errorf("expected Unauthenticated, got %v", f.manager.State())
	}
	// A transport failure is not evidence the session is invalid; the
	// credentials stay for the next run.
	if token, _ := f.store.Get(store.KeyAuthToken); token != "Bearer access-1" {
		t.Errorf("expected stored token kept, got %q", token)
	}
}

func TestInitialize_CorruptProfileDiscardsSession(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	f.store.Set(store.KeyAuthToken, "Bearer access-1")
	f.store.Set(store.KeyAuthUser, "{not json")

	f.manager.Initialize(context.Background())

	if f.manager.State() != Unauthenticated {
		t.Errorf("expected Unauthenticated, got %v", f.manager.State())
	}
	if token, _ := f.store.Get(store.KeyAuthToken); token != "" {
		t.Errorf("expected cleared token, got %q", token)
	}
}

func TestInitialize_ExpiredTokenRefreshedUpFront(t *testing.T) {
	var refreshCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls++
			json.NewEncoder(w).Encode(api.RefreshResponse{AccessToken: "access-2", TokenType: "Bearer"})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer access-2" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(domain.UserProfile{ID: 1, Username: "alice"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()
	f := newFixture(t, server.URL)

	f.store.Set(store.KeyAuthToken, "Bearer "+signedToken(t, time.Now().Add(-time.Hour)))
	f.store.Set(store.KeyAuthUser, `{"id":1,"username":"alice"}`)
	f.store.Set(store.KeyRefreshToken, "refresh-1")

	f.manager.Initialize(context.Background())

	if f.manager.State() != Authenticated {
		t.Fatalf("expected Authenticated, got %v", f.manager.State())
	}
	if refreshCalls != 1 {
		t.Errorf("expected 1 refresh call, got %d", refreshCalls)
	}
	// The refreshed token must be adopted in memory, not just persisted.
	if got := f.manager.credential.Token; got != "Bearer access-2" {
		t.Errorf("expected in-memory credential updated, got %q", got)
	}
}

func TestManager_ConcurrentStatusReads(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	f.store.Set(store.KeyAuthToken, "Bearer access-1")
	f.store.Set(store.KeyAuthUser, `{"id":1,"username":"alice"}`)

	// Render-loop reads run concurrently with the lifecycle transitions;
	// the race detector flags any unguarded field.
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			f.manager.IsAuthenticated()
			f.manager.IsInitialized()
			f.manager.State()
			f.manager.Profile()
			f.manager.LastError()
		}
	}()

	f.manager.Initialize(context.Background())
	f.manager.Logout()
	if err := f.manager.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	close(done)
	wg.Wait()

	if !f.manager.IsAuthenticated() {
		t.Error("expected authenticated")
	}
}

func TestLogin_PersistsCredentialAndProfile(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	if err := f.manager.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !f.manager.IsAuthenticated() {
		t.Fatal("expected authenticated")
	}
	if token, _ := f.store.Get(store.KeyAuthToken); token != "Bearer access-1" {
		t.Errorf("expected scheme-prefixed token stored, got %q", token)
	}
	if refresh, _ := f.store.Get(store.KeyRefreshToken); refresh != "refresh-1" {
		t.Errorf("expected refresh token stored, got %q", refresh)
	}
	userJSON, _ := f.store.Get(store.KeyAuthUser)
	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &profile); err != nil || profile.Username != "alice" {
		t.Errorf("expected cached profile, got %q", userJSON)
	}
}

func TestLogin_FailureSetsUserMessage(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	err := f.manager.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if f.manager.IsAuthenticated() {
		t.Error("expected not authenticated")
	}
	if got := f.manager.LastError(); got != "Incorrect username or password" {
		t.Errorf("expected backend detail, got %q", got)
	}
}

func TestLogin_ClearsChatSession(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	before, _ := f.session.GetOrCreate()
	if err := f.manager.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after, _ := f.session.GetOrCreate()
	if before == after {
		t.Error("expected a fresh chat session after login")
	}
}

func TestLogout_Idempotent(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	if err := f.manager.Login(context.Background(), "alice", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.manager.Logout()
	if f.manager.IsAuthenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if token, _ := f.store.Get(store.KeyAuthToken); token != "" {
		t.Errorf("expected cleared token, got %q", token)
	}

	// A second logout must not fail or resurrect anything.
	f.manager.Logout()
	if f.manager.State() != Unauthenticated {
		t.Errorf("expected Unauthenticated, got %v", f.manager.State())
	}
}

func TestRegister_PerformsImplicitLogin(t *testing.T) {
	server := authBackend(t)
	f := newFixture(t, server.URL)

	if err := f.manager.Register(context.Background(), "bob", "bob@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !f.manager.IsAuthenticated() {
		t.Error("expected authenticated after registration")
	}
	if token, _ := f.store.Get(store.KeyAuthToken); token != "Bearer access-1" {
		t.Errorf("expected stored token, got %q", token)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Uninitialized, "uninitialized"},
		{RestoringSession, "restoring"},
		{Authenticated, "authenticated"},
		{Unauthenticated, "unauthenticated"},
		{RefreshingToken, "refreshing"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
