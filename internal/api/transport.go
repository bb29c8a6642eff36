// ABOUTME: RoundTripper injecting credentials and intercepting 401 responses
// ABOUTME: One refresh per failure wave, one replay per request, no retry loops

package api

import (
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/ahermansen/todochat/internal/store"
)

// retryHeader marks a replayed request so a second 401 propagates
// instead of triggering another refresh.
const retryHeader = "X-Auth-Retry"

// authTransport attaches the stored access token to outgoing requests
// and funnels 401 responses through the refresh coordinator.
type authTransport struct {
	base    http.RoundTripper
	store   *store.Store
	refresh *RefreshCoordinator
	logger  *zap.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" {
		if token, err := t.store.Get(store.KeyAuthToken); err == nil && token != "" {
			req.Header.Set("Authorization", token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || req.Header.Get(retryHeader) != "" {
		return resp, nil
	}

	// The request can only be replayed when its body is replayable.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	token, refreshErr := t.refresh.Refresh(req.Context())
	if refreshErr != nil {
		// Credentials were cleared by the refresher. Hand back the 401
		// so the caller classifies it as an expired session.
		t.logger.Warn("token refresh failed", zap.Error(refreshErr))
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", token)
	retry.Header.Set(retryHeader, "1")

	t.logger.Debug("replaying request with refreshed token",
		zap.String("method", retry.Method),
		zap.String("path", retry.URL.Path))

	return t.base.RoundTrip(retry)
}
