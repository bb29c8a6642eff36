// ABOUTME: Todo list controller holding the authoritative in-memory collection
// ABOUTME: Every mutation reconciles through a full refetch; no optimistic patching

package todo

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ahermansen/todochat/internal/api"
	"github.com/ahermansen/todochat/internal/domain"
)

// Controller mediates between the API client and the views. Fetches may
// be issued from concurrent UI commands, so its state is guarded; two
// racing fetches both replace the collection and the last one to
// resolve wins.
type Controller struct {
	client        *api.Client
	logger        *zap.Logger
	userID        func() int
	onAuthExpired func()

	mu         sync.RWMutex
	todos      []domain.Todo
	offline    bool
	deletingID int
	lastFetch  time.Time
}

// NewController creates a controller. userID supplies the authenticated
// user's id for list requests; onAuthExpired is invoked when a fetch
// fails with an unrecoverable auth error so the session can be torn down.
func NewController(client *api.Client, logger *zap.Logger, userID func() int, onAuthExpired func()) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		client:        client,
		logger:        logger,
		userID:        userID,
		onAuthExpired: onAuthExpired,
	}
}

// FetchAll requests the full collection and replaces the in-memory one
// wholesale. On failure the previously displayed todos stay untouched
// (stale but visible); network failures additionally flip the offline
// flag. Two racing fetches both replace, so the last one to resolve wins.
func (c *Controller) FetchAll(ctx context.Context) error {
	todos, err := c.client.ListTodos(ctx, c.userID())
	if err != nil {
		if domain.IsCode(err, domain.ErrCodeAuthExpired) {
			c.logger.Info("list fetch rejected, tearing down session")
			if c.onAuthExpired != nil {
				c.onAuthExpired()
			}
			return err
		}
		if domain.IsCode(err, domain.ErrCodeNetwork) {
			c.mu.Lock()
			c.offline = true
			c.mu.Unlock()
		}
		return err
	}

	c.mu.Lock()
	c.todos = todos
	c.offline = false
	c.lastFetch = time.Now()
	c.mu.Unlock()
	return nil
}

// Replace swaps in a collection obtained out of band, such as a chat
// read result. The chat answer is the server's own rendering of the
// list, so it is treated like a fetch result.
func (c *Controller) Replace(todos []domain.Todo) {
	c.mu.Lock()
	c.todos = todos
	c.lastFetch = time.Now()
	c.mu.Unlock()
}

// Create issues the create request and reconciles via FetchAll.
func (c *Controller) Create(ctx context.Context, input domain.TodoInput) error {
	if _, err := c.client.CreateTodo(ctx, input); err != nil {
		return err
	}
	return c.FetchAll(ctx)
}

// Update issues a partial update and reconciles via FetchAll.
func (c *Controller) Update(ctx context.Context, id int, input domain.TodoInput) error {
	if _, err := c.client.UpdateTodo(ctx, id, input); err != nil {
		return err
	}
	return c.FetchAll(ctx)
}

// Delete removes a todo and reconciles via FetchAll. While the request
// is outstanding DeletingID reports the affected row so it can render a
// pending state. Deletes of different items are independent.
func (c *Controller) Delete(ctx context.Context, id int) error {
	c.mu.Lock()
	c.deletingID = id
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.deletingID = 0
		c.mu.Unlock()
	}()

	if err := c.client.DeleteTodo(ctx, id); err != nil {
		return err
	}
	return c.FetchAll(ctx)
}

// Todos returns the current collection.
func (c *Controller) Todos() []domain.Todo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.todos
}

// Offline reports whether the last fetch failed at the transport level.
func (c *Controller) Offline() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offline
}

// DeletingID returns the id of the todo with a delete in flight, or 0.
func (c *Controller) DeletingID() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deletingID
}

// LastFetch returns when the collection was last replaced.
func (c *Controller) LastFetch() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastFetch
}
