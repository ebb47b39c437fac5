package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"smartchef/internal/logger"
	"smartchef/internal/repository"
	"smartchef/internal/voice"
)

// ErrSessionUnavailable is returned when a controller is requested for a
// session that exists nowhere (durable store or staging).
var ErrSessionUnavailable = fmt.Errorf("cooking session not found")

// SessionRuntime keeps one live controller per session. Controllers are
// created lazily on first attach and share the runtime's base context, so
// shutting the runtime down cancels every pending clock tick.
type SessionRuntime struct {
	loader  Sessions
	repos   *repository.Repository
	speaker voice.Speaker
	log     *logger.Logger
	tick    time.Duration

	baseCtx context.Context
	cancel  context.CancelFunc

	mu          sync.Mutex
	controllers map[string]*Controller
}

var _ Runtime = (*SessionRuntime)(nil)

func NewSessionRuntime(loader Sessions, repos *repository.Repository, speaker voice.Speaker, log *logger.Logger, tick time.Duration) *SessionRuntime {
	ctx, cancel := context.WithCancel(context.Background())
	return &SessionRuntime{
		loader:      loader,
		repos:       repos,
		speaker:     speaker,
		log:         log,
		tick:        tick,
		baseCtx:     ctx,
		cancel:      cancel,
		controllers: make(map[string]*Controller),
	}
}

// Attach returns the live controller for a session, loading the session and
// creating the controller on first use. A session found mid-cooking has its
// clock restarted immediately.
func (r *SessionRuntime) Attach(ctx context.Context, sessionID string) (*Controller, error) {
	r.mu.Lock()
	if c, ok := r.controllers[sessionID]; ok {
		r.mu.Unlock()
		return c, nil
	}
	r.mu.Unlock()

	// Load outside the lock; session fetches can hit the database.
	session, err := r.loader.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionUnavailable
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.controllers[sessionID]; ok {
		return c, nil
	}
	c := NewController(session, r.repos, r.speaker, r.log, r.baseCtx, r.tick)
	r.controllers[sessionID] = c
	c.EnsureClock()
	return c, nil
}

// Detach stops a session's clock and drops its controller. Safe to call for
// unknown ids.
func (r *SessionRuntime) Detach(sessionID string) {
	r.mu.Lock()
	c, ok := r.controllers[sessionID]
	delete(r.controllers, sessionID)
	r.mu.Unlock()
	if ok {
		c.StopClock()
	}
}

// Close cancels every controller's clock. Used on shutdown.
func (r *SessionRuntime) Close() {
	r.cancel()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers = make(map[string]*Controller)
}
