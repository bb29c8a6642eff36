// ABOUTME: Shared construction of the client-side application environment
// ABOUTME: Wires config, logger, store, API client, session, and auth manager

package cmd

import (
	"go.uber.org/zap"

	"github.com/ahermansen/todochat/internal/api"
	"github.com/ahermansen/todochat/internal/auth"
	"github.com/ahermansen/todochat/internal/config"
	"github.com/ahermansen/todochat/internal/logger"
	"github.com/ahermansen/todochat/internal/session"
	"github.com/ahermansen/todochat/internal/store"
	"github.com/ahermansen/todochat/internal/tui"
)

// appEnv bundles the long-lived objects every command needs.
type appEnv struct {
	cfg     config.Config
	logger  *zap.Logger
	store   *store.Store
	client  *api.Client
	session *session.Manager
	auth    *auth.Manager
}

// newAppEnv builds the environment. The API URL honors flag > env >
// default precedence via GetAPIURL.
func newAppEnv() (*appEnv, error) {
	cfg := config.Load()
	cfg.APIURL = GetAPIURL()

	log, err := logger.New(cfg.Logger)
	if err != nil {
		// A broken log file must not take the client down.
		log = zap.NewNop()
	}

	st, err := store.Open()
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.APIURL, st, log,
		api.WithTimeouts(cfg.DataTimeout, cfg.ChatTimeout))
	sess := session.New(st)
	authMgr := auth.New(client, st, sess, log)

	return &appEnv{
		cfg:     cfg,
		logger:  log,
		store:   st,
		client:  client,
		session: sess,
		auth:    authMgr,
	}, nil
}

func (e *appEnv) deps() tui.Deps {
	return tui.Deps{
		Config:  e.cfg,
		Logger:  e.logger,
		Store:   e.store,
		Client:  e.client,
		Session: e.session,
		Auth:    e.auth,
	}
}

// Close releases held resources.
func (e *appEnv) Close() {
	_ = e.logger.Sync()
	_ = e.store.Close()
}
