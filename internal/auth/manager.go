// ABOUTME: Auth session manager owning login, registration, logout, and restore
// ABOUTME: State machine over Uninitialized/Restoring/Authenticated/Unauthenticated/Refreshing

package auth

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ahermansen/todochat/internal/api"
	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/session"
	"github.com/ahermansen/todochat/internal/store"
)

// State is the auth manager's lifecycle state.
type State int

const (
	Uninitialized State = iota
	RestoringSession
	Authenticated
	Unauthenticated
	RefreshingToken
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case RestoringSession:
		return "restoring"
	case Authenticated:
		return "authenticated"
	case Unauthenticated:
		return "unauthenticated"
	case RefreshingToken:
		return "refreshing"
	default:
		return "unknown"
	}
}

// Manager owns the session lifecycle. All state transitions happen here;
// other components only read the derived status. Transitions run on UI
// command goroutines while the render loop reads, so the mutable fields
// are guarded. The lock is never held across a network call.
type Manager struct {
	client  *api.Client
	store   *store.Store
	session *session.Manager
	logger  *zap.Logger

	mu          sync.RWMutex
	state       State
	initialized bool
	credential  domain.Credential
	profile     *domain.UserProfile
	lastError   string
}

// New creates a manager. Nothing is loaded until Initialize runs.
func New(client *api.Client, st *store.Store, sess *session.Manager, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		client:  client,
		store:   st,
		session: sess,
		logger:  logger,
		state:   Uninitialized,
	}
}

// Initialize restores a persisted session, verifying it against the
// identity endpoint. It always terminates with IsInitialized() true so
// the UI can never hang on a perpetual loading state.
func (m *Manager) Initialize(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.initialized = true
		m.mu.Unlock()
	}()

	token, _ := m.store.Get(store.KeyAuthToken)
	userJSON, _ := m.store.Get(store.KeyAuthUser)
	refreshToken, _ := m.store.Get(store.KeyRefreshToken)

	if token == "" || userJSON == "" {
		m.setState(Unauthenticated)
		return
	}

	var profile domain.UserProfile
	if err := json.Unmarshal([]byte(userJSON), &profile); err != nil {
		m.logger.Warn("stored profile is unreadable, discarding session", zap.Error(err))
		m.clearPersisted()
		m.setState(Unauthenticated)
		return
	}

	// Optimistically authenticated from cache while verification runs.
	m.mu.Lock()
	m.state = RestoringSession
	m.credential = domain.Credential{Token: token, RefreshToken: refreshToken}
	m.profile = &profile
	m.mu.Unlock()

	// A token already known to be expired would only bounce off the
	// backend; refresh it up front when possible.
	if refreshToken != "" && TokenExpired(token, time.Now()) {
		if _, err := m.RefreshAccessToken(ctx); err != nil {
			m.logger.Info("session restore failed, refresh rejected", zap.Error(err))
			return
		}
	}

	verified, err := m.client.Me(ctx)
	if err != nil {
		if domain.IsCode(err, domain.ErrCodeAuthExpired) {
			// The gateway already attempted the one refresh this wave
			// allows; an auth error here means the session is gone.
			m.logger.Info("session restore failed, token rejected", zap.Error(err))
			m.teardown()
			return
		}
		// Non-auth failure: keep the stored credentials for the next
		// run, but do not claim an authenticated session.
		m.logger.Warn("session verification unavailable", zap.Error(err))
		m.mu.Lock()
		m.state = Unauthenticated
		m.credential = domain.Credential{}
		m.profile = nil
		m.mu.Unlock()
		return
	}

	m.cacheProfile(verified)
	m.setState(Authenticated)
	m.logger.Info("session restored", zap.String("username", verified.Username))
}

// Login authenticates and persists the credential. A failed profile
// fetch after a successful login keeps the session valid with
// best-effort profile data; only a failed login call fails the operation.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	m.setLastError("")

	// New conversation for a new session.
	if err := m.session.Clear(); err != nil {
		m.logger.Warn("failed to clear chat session", zap.Error(err))
	}

	resp, err := m.client.Login(ctx, username, password)
	if err != nil {
		m.setLastError(domain.UserMessage(err, "Login failed"))
		return err
	}

	token := resp.TokenType + " " + resp.AccessToken
	if err := m.store.Set(store.KeyAuthToken, token); err != nil {
		return err
	}
	if resp.RefreshToken != "" {
		if err := m.store.Set(store.KeyRefreshToken, resp.RefreshToken); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.credential = domain.Credential{Token: token, RefreshToken: resp.RefreshToken}
	m.mu.Unlock()

	profile, err := m.client.Me(ctx)
	if err != nil {
		m.logger.Warn("profile fetch failed, continuing with basic auth", zap.Error(err))
		m.mu.Lock()
		m.profile = &domain.UserProfile{Username: username}
		m.mu.Unlock()
	} else {
		m.cacheProfile(profile)
	}

	m.setState(Authenticated)
	m.logger.Info("logged in", zap.String("username", username))
	return nil
}

// Register creates the account and performs an implicit login with the
// same credentials. The user-visible outcome is the login step's.
func (m *Manager) Register(ctx context.Context, username, email, password string) error {
	m.setLastError("")

	if _, err := m.client.Register(ctx, username, email, password); err != nil {
		m.setLastError(domain.UserMessage(err, "Registration failed"))
		return err
	}

	return m.Login(ctx, username, password)
}

// Logout tears down all local session state. It is idempotent and
// succeeds without any network call.
func (m *Manager) Logout() {
	m.teardown()
	m.setLastError("")
	m.logger.Info("logged out")
}

// RefreshAccessToken forces a token refresh through the shared
// coordinator and adopts the new token in memory. The restore path uses
// it to pre-empt a known-expired token.
func (m *Manager) RefreshAccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	prev := m.state
	m.state = RefreshingToken
	m.mu.Unlock()

	token, err := m.client.RefreshAccessToken(ctx)
	if err != nil {
		m.teardown()
		return "", err
	}

	m.mu.Lock()
	m.credential.Token = token
	m.state = prev
	m.mu.Unlock()
	return token, nil
}

func (m *Manager) teardown() {
	m.clearPersisted()
	if err := m.session.Clear(); err != nil {
		m.logger.Warn("failed to clear chat session", zap.Error(err))
	}
	m.mu.Lock()
	m.credential = domain.Credential{}
	m.profile = nil
	m.state = Unauthenticated
	m.mu.Unlock()
}

func (m *Manager) clearPersisted() {
	if err := m.store.Delete(store.KeyAuthToken, store.KeyAuthUser, store.KeyRefreshToken); err != nil {
		m.logger.Warn("failed to clear stored credentials", zap.Error(err))
	}
}

func (m *Manager) cacheProfile(profile *domain.UserProfile) {
	m.mu.Lock()
	m.profile = profile
	m.mu.Unlock()
	if data, err := json.Marshal(profile); err == nil {
		if err := m.store.Set(store.KeyAuthUser, string(data)); err != nil {
			m.logger.Warn("failed to cache profile", zap.Error(err))
		}
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

func (m *Manager) setLastError(text string) {
	m.mu.Lock()
	m.lastError = text
	m.mu.Unlock()
}

// IsAuthenticated is the single definition site for the authenticated
// invariant: a non-empty credential and a resolved profile.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.credential.HasToken() && m.profile != nil
}

// IsInitialized reports whether Initialize has terminated.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Profile returns the cached user profile, or nil when unauthenticated.
func (m *Manager) Profile() *domain.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profile
}

// LastError returns the user-facing message from the last failed login
// or registration, or "".
func (m *Manager) LastError() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError
}
