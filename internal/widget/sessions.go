package widget

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type session struct {
	widget   *Widget
	lastSeen time.Time
}

// Registry keeps one widget per browser session and drops sessions that
// have been idle for longer than the ttl. At most maxSessions are held; the
// least recently seen one makes room for a new visitor.
type Registry struct {
	factory     func() *Widget
	ttl         time.Duration
	maxSessions int
	logger      zerolog.Logger
	now         func() time.Time

	cron      *cron.Cron
	sweepSpec string

	mu       sync.Mutex
	sessions map[string]*session
}

// NewRegistry builds a registry. maxSessions <= 0 means no limit.
func NewRegistry(
	factory func() *Widget,
	ttl time.Duration,
	maxSessions int,
	sweepSpec string,
	logger zerolog.Logger,
) *Registry {
	logger = logger.With().Str("component", "SessionRegistry").Logger()
	return &Registry{
		factory:     factory,
		ttl:         ttl,
		maxSessions: maxSessions,
		logger:      logger,
		now:         time.Now,
		cron:        cron.New(),
		sweepSpec:   sweepSpec,
		sessions:    make(map[string]*session),
	}
}

// Acquire returns the widget bound to id. Unknown or empty ids get a fresh
// session under a new id. The widget is not mounted here; callers decide
// whether the request needs the default city.
func (r *Registry) Acquire(id string) (string, *Widget) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		if r.maxSessions > 0 && len(r.sessions) >= r.maxSessions {
			r.evictOldest()
		}
		id = uuid.NewString()
		s = &session{widget: r.factory()}
		r.sessions[id] = s
		r.logger.Debug().Str("session", id).Msg("session created")
	}
	s.lastSeen = r.now()

	return id, s.widget
}

// evictOldest must be called with mu held.
func (r *Registry) evictOldest() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, s := range r.sessions {
		if oldestID == "" || s.lastSeen.Before(oldest) {
			oldestID, oldest = id, s.lastSeen
		}
	}
	delete(r.sessions, oldestID)
	r.logger.Warn().
		Str("session", oldestID).
		Int("limit", r.maxSessions).
		Msg("session limit reached, evicted least recently seen session")
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than the ttl.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Info().Int("removed", removed).Int("remaining", len(r.sessions)).Msg("idle sessions swept")
	}
	return removed
}

// Start schedules the sweep job.
func (r *Registry) Start() error {
	if _, err := r.cron.AddFunc(r.sweepSpec, func() { r.Sweep() }); err != nil {
		r.logger.Error().Err(err).Str("spec", r.sweepSpec).Msg("failed to schedule session sweep")
		return err
	}
	r.cron.Start()
	r.logger.Info().Str("spec", r.sweepSpec).Dur("ttl", r.ttl).Msg("session sweeper started")
	return nil
}

// Stop halts the scheduler and waits for a running sweep.
func (r *Registry) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info().Msg("session sweeper stopped")
}
