// ABOUTME: HTTP client for the todo backend's auth, todo, and chat endpoints
// ABOUTME: Wraps every call with timeouts, credential injection, and error classification

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/ahermansen/todochat/internal/domain"
	"github.com/ahermansen/todochat/internal/store"
)

// Default timeouts. Data calls fail fast; chat turns run through the
// backend's language model and need headroom.
const (
	DefaultDataTimeout = 5 * time.Second
	DefaultChatTimeout = 30 * time.Second
)

// Client is the API client for the todo backend.
type Client struct {
	baseURL     string
	store       *store.Store
	logger      *zap.Logger
	coordinator *RefreshCoordinator

	dataClient  *http.Client // authenticated, short timeout
	chatClient  *http.Client // authenticated, long timeout
	plainClient *http.Client // no credential injection (login/register/refresh)
}

// Option adjusts client construction.
type Option func(*Client)

// WithTimeouts overrides the data and chat call timeouts.
func WithTimeouts(data, chat time.Duration) Option {
	return func(c *Client) {
		c.dataClient.Timeout = data
		c.chatClient.Timeout = chat
		c.plainClient.Timeout = data
	}
}

// New creates a client for the given base URL. The refresh coordinator
// is built here, once, and shared by both authenticated transports.
func New(baseURL string, st *store.Store, logger *zap.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:     baseURL,
		store:       st,
		logger:      logger,
		plainClient: &http.Client{Timeout: DefaultDataTimeout},
	}
	c.coordinator = NewRefreshCoordinator(c.refreshAccessToken)

	transport := &authTransport{
		base:    http.DefaultTransport,
		store:   st,
		refresh: c.coordinator,
		logger:  logger,
	}
	c.dataClient = &http.Client{Timeout: DefaultDataTimeout, Transport: transport}
	c.chatClient = &http.Client{Timeout: DefaultChatTimeout, Transport: transport}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login calls POST /auth/login and returns the issued token pair. It
// does not persist anything; that is the auth manager's job.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	var token TokenResponse
	err := c.doJSON(ctx, c.plainClient, http.MethodPost, "/auth/login", LoginRequest{
		Username: username,
		Password: password,
	}, nil, &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Register calls POST /auth/register and returns the created user record.
func (c *Client) Register(ctx context.Context, username, email, password string) (*RegisteredUser, error) {
	var user RegisteredUser
	err := c.doJSON(ctx, c.plainClient, http.MethodPost, "/auth/register", RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RefreshAccessToken exchanges the stored refresh token for a new access
// token through the shared coordinator, so concurrent callers join the
// single in-flight attempt. Returns the stored scheme-prefixed token.
func (c *Client) RefreshAccessToken(ctx context.Context) (string, error) {
	return c.coordinator.Refresh(ctx)
}

// refreshAccessToken is the single-flight body: it performs the actual
// exchange, persists the new token on success, and clears all persisted
// credentials when no refresh is possible.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	refreshToken, err := c.store.Get(store.KeyRefreshToken)
	if err != nil {
		return "", err
	}
	if refreshToken == "" {
		c.clearCredentials()
		return "", domain.ErrNoRefreshToken
	}

	var resp RefreshResponse
	err = c.doJSON(ctx, c.plainClient, http.MethodPost, "/auth/refresh", RefreshRequest{
		RefreshToken: refreshToken,
	}, nil, &resp)
	if err != nil {
		c.clearCredentials()
		return "", domain.WrapError(domain.ErrCodeAuthExpired, "refresh rejected", err)
	}

	scheme := resp.TokenType
	if scheme == "" {
		scheme = "Bearer"
	}
	token := scheme + " " + resp.AccessToken
	if err := c.store.Set(store.KeyAuthToken, token); err != nil {
		return "", err
	}
	c.logger.Info("access token refreshed")
	return token, nil
}

func (c *Client) clearCredentials() {
	if err := c.store.Delete(store.KeyAuthToken, store.KeyAuthUser, store.KeyRefreshToken); err != nil {
		c.logger.Warn("failed to clear credentials", zap.Error(err))
	}
}

// Me calls GET /auth/me using the stored credential.
func (c *Client) Me(ctx context.Context) (*domain.UserProfile, error) {
	var profile domain.UserProfile
	if err := c.doJSON(ctx, c.dataClient, http.MethodGet, "/auth/me", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListTodos calls GET /auth/todo/{userID} and returns the full
// collection for the authenticated user.
func (c *Client) ListTodos(ctx context.Context, userID int) ([]domain.Todo, error) {
	headers := map[string]string{"user-id": strconv.Itoa(userID)}
	var todos []domain.Todo
	path := fmt.Sprintf("/auth/todo/%d", userID)
	if err := c.doJSON(ctx, c.dataClient, http.MethodGet, path, nil, headers, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo calls POST /auth/todo.
func (c *Client) CreateTodo(ctx context.Context, input domain.TodoInput) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.doJSON(ctx, c.dataClient, http.MethodPost, "/auth/todo", input, nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo calls PATCH /auth/todo/{id} with the changed fields only.
func (c *Client) UpdateTodo(ctx context.Context, id int, input domain.TodoInput) (*domain.Todo, error) {
	var todo domain.Todo
	path := fmt.Sprintf("/auth/todo/%d", id)
	if err := c.doJSON(ctx, c.dataClient, http.MethodPatch, path, input, nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo calls DELETE /auth/todo/{id}.
func (c *Client) DeleteTodo(ctx context.Context, id int) error {
	path := fmt.Sprintf("/auth/todo/%d", id)
	return c.doJSON(ctx, c.dataClient, http.MethodDelete, path, nil, nil, nil)
}

// Chat calls POST /ai/chat and returns the raw response body. The answer
// field is heterogeneous (todo array or free text), so decoding is left
// to the chat interpreter.
func (c *Client) Chat(ctx context.Context, userID int, message, sessionUUID string) ([]byte, error) {
	body, err := json.Marshal(ChatRequest{Message: message, SessionUUID: sessionUUID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ai/chat", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("user-id", strconv.Itoa(userID))

	resp, err := c.chatClient.Do(req)
	if err != nil {
		return nil, c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.handleErrorResponse(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}
	return raw, nil
}

// doJSON performs a JSON request/response round trip with classified
// errors. A nil out skips response decoding.
func (c *Client) doJSON(ctx context.Context, hc *http.Client, method, path string, in interface{}, headers map[string]string, out interface{}) error {
	var bodyReader io.Reader
	if in != nil {
		body, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport failures into classified errors.
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return domain.WrapError(domain.ErrCodeNetwork, "request canceled", err)
	}
	if ctx.Err() == context.DeadlineExceeded {
		return domain.WrapError(domain.ErrCodeNetwork, "request timed out", err)
	}
	return domain.WrapError(domain.ErrCodeNetwork,
		fmt.Sprintf("cannot connect to backend at %s", c.baseURL), err)
}

// handleErrorResponse maps a non-2xx response to the error taxonomy.
// The server's detail message is preserved verbatim for 4xx responses.
func (c *Client) handleErrorResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrAuthExpired
	}

	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Detail == "" {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return domain.NewError(domain.ErrCodeValidation,
				fmt.Sprintf("backend rejected the request (status %d)", resp.StatusCode))
		}
		return domain.NewError(domain.ErrCodeInternal,
			fmt.Sprintf("backend returned status %d", resp.StatusCode))
	}

	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return domain.NewError(domain.ErrCodeValidation, errResp.Detail)
	}
	return domain.NewError(domain.ErrCodeInternal, errResp.Detail)
}
