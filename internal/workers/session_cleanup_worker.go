// Package workers provides background job processors for the storefront service.
package workers

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"storefront-service/internal/middleware"
	"storefront-service/internal/state"
)

// DefaultCleanupInterval is the default interval for session cleanup sweeps
const DefaultCleanupInterval = 1 * time.Hour

// SessionCleanupWorker reaps expired sessions from the in-memory store.
// Redis-backed deployments expire keys natively and do not need it.
type SessionCleanupWorker struct {
	store    *state.MemoryStore
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
	mu       sync.Mutex
	running  bool
	lastRun  time.Time
	stats    CleanupStats
}

// CleanupStats tracks cleanup statistics.
type CleanupStats struct {
	SessionsReaped int64     `json:"sessionsReaped"`
	LiveSessions   int       `json:"liveSessions"`
	LastRunAt      time.Time `json:"lastRunAt,omitempty"`
}

// NewSessionCleanupWorker creates a new session cleanup worker.
func NewSessionCleanupWorker(store *state.MemoryStore, interval time.Duration) *SessionCleanupWorker {
	if interval == 0 {
		interval = DefaultCleanupInterval
	}

	return &SessionCleanupWorker{
		store:    store,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the cleanup loop.
func (w *SessionCleanupWorker) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.run()
	log.WithField("interval", w.interval).Info("Session cleanup worker started")
}

// Stop stops the cleanup loop.
func (w *SessionCleanupWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopChan)
	<-w.doneChan
	log.Info("Session cleanup worker stopped")
}

// ForceRun triggers an immediate cleanup sweep.
func (w *SessionCleanupWorker) ForceRun() {
	w.sweep()
}

// IsRunning returns whether the worker is running.
func (w *SessionCleanupWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// Stats returns the current cleanup statistics.
func (w *SessionCleanupWorker) Stats() CleanupStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// run is the main cleanup loop.
func (w *SessionCleanupWorker) run() {
	defer close(w.doneChan)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

// sweep reaps expired entries and refreshes the session gauge.
func (w *SessionCleanupWorker) sweep() {
	start := time.Now()
	reaped := w.store.Cleanup()
	live := w.store.Count()
	middleware.SetActiveSessions(live)

	w.mu.Lock()
	w.lastRun = start
	w.stats.SessionsReaped += int64(reaped)
	w.stats.LiveSessions = live
	w.stats.LastRunAt = start
	w.mu.Unlock()

	if reaped > 0 {
		log.WithFields(log.Fields{
			"reaped": reaped,
			"live":   live,
		}).Info("Session cleanup sweep completed")
	}
}
