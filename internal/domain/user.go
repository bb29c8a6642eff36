// ABOUTME: Authenticated user and credential types
// ABOUTME: Credential is owned by the auth manager and persisted in the settings store

package domain

// UserProfile is the cached snapshot of the authenticated user, fetched
// from the backend identity endpoint.
type UserProfile struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Credential holds the token pair identifying an authenticated session.
// Token carries the scheme prefix (e.g. "Bearer eyJ..."), matching how it
// is sent on the wire and stored.
type Credential struct {
	Token        string
	RefreshToken string
}

// HasToken reports whether an access token is present.
func (c Credential) HasToken() bool {
	return c.Token != ""
}
