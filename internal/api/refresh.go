// ABOUTME: Refresh coordinator serializing token-refresh attempts
// ABOUTME: singleflight guarantees one refresh per failure wave; waiters share its result

package api

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// RefreshCoordinator ensures at most one token refresh is in flight at a
// time. Callers that arrive while a refresh is running block on the same
// attempt and receive its result. Constructed once and injected wherever
// the HTTP layer is built.
type RefreshCoordinator struct {
	group     singleflight.Group
	refreshFn func(ctx context.Context) (string, error)
}

// NewRefreshCoordinator wraps the given refresh function. The function
// must exchange the stored refresh token for a new access token, persist
// it, and return the stored (scheme-prefixed) token.
func NewRefreshCoordinator(fn func(ctx context.Context) (string, error)) *RefreshCoordinator {
	return &RefreshCoordinator{refreshFn: fn}
}

// Refresh runs or joins the single in-flight refresh attempt and returns
// the new scheme-prefixed access token.
func (c *RefreshCoordinator) Refresh(ctx context.Context) (string, error) {
	v, err, _ := c.group.Do("refresh", func() (interface{}, error) {
		return c.refreshFn(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}
