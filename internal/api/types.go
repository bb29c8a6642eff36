// ABOUTME: Wire types for the todo backend's REST and chat endpoints
// ABOUTME: Field names follow the backend's JSON contract exactly

package api

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is returned by POST /auth/login.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshRequest is the body for POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse is returned by POST /auth/refresh.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// RegisteredUser is the created user record from POST /auth/register.
type RegisteredUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// ChatRequest is the body for POST /ai/chat.
type ChatRequest struct {
	Message     string `json:"message"`
	SessionUUID string `json:"session_uuid"`
}

// errorResponse is the backend's error envelope. The backend puts the
// human-readable message in "detail".
type errorResponse struct {
	Detail string `json:"detail"`
}
