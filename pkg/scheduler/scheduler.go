package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/session_cleaner.go -pkg mocks -skip-ensure -fmt goimports . SessionCleaner
//go:generate moq -out mocks/warmer.go -pkg mocks -skip-ensure -fmt goimports . Warmer

// Scheduler runs background jobs: anchor cache warmup at start and periodic removal of idle sessions
type Scheduler struct {
	sessions        SessionCleaner
	warmer          Warmer
	examples        []string
	sessionTTL      time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	wg              sync.WaitGroup
	cancel          context.CancelFunc
}

// SessionCleaner removes sessions not updated since a given time
type SessionCleaner interface {
	DeleteSessionsBefore(ctx context.Context, before time.Time) (int64, error)
}

// Warmer embeds phrases ahead of time
type Warmer interface {
	Warm(ctx context.Context, texts []string) (int, error)
}

// Config holds scheduler configuration
type Config struct {
	Examples        []string // example phrases to warm up, nothing is warmed if empty
	SessionTTL      time.Duration
	CleanupInterval time.Duration
}

// NewScheduler creates a new scheduler instance, warmer is optional
func NewScheduler(sessions SessionCleaner, warmer Warmer, cfg Config) *Scheduler {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.CleanupInterval == 0 {
		cfg.CleanupInterval = time.Hour
	}

	return &Scheduler{
		sessions:        sessions,
		warmer:          warmer,
		examples:        cfg.Examples,
		sessionTTL:      cfg.SessionTTL,
		cleanupInterval: cfg.CleanupInterval,
		now:             time.Now,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	// warm up anchor embeddings if there is a warmer
	if s.warmer != nil && len(s.examples) > 0 {
		s.wg.Add(1)
		go s.warmupWorker(ctx)
	}

	s.wg.Add(1)
	go s.cleanupWorker(ctx)

	lgr.Printf("[INFO] scheduler started with session ttl %v, cleanup interval %v", s.sessionTTL, s.cleanupInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// warmupWorker embeds all example phrases once, failures leave them to be embedded on first use
func (s *Scheduler) warmupWorker(ctx context.Context) {
	defer s.wg.Done()

	st := time.Now()
	n, err := s.warmer.Warm(ctx, s.examples)
	if err != nil {
		if ctx.Err() == nil {
			lgr.Printf("[WARN] failed to warm up %d example embeddings: %v", len(s.examples), err)
		}
		return
	}
	lgr.Printf("[INFO] warmed up example embeddings, %d of %d embedded in %v", n, len(s.examples), time.Since(st))
}

// cleanupWorker periodically removes idle sessions
func (s *Scheduler) cleanupWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	// run immediately on start
	s.cleanupSessions(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupSessions(ctx)
		}
	}
}

// cleanupSessions removes sessions idle longer than the ttl
func (s *Scheduler) cleanupSessions(ctx context.Context) {
	deleted, err := s.sessions.DeleteSessionsBefore(ctx, s.now().Add(-s.sessionTTL))
	if err != nil {
		if ctx.Err() == nil {
			lgr.Printf("[ERROR] failed to remove expired sessions: %v", err)
		}
		return
	}
	if deleted > 0 {
		lgr.Printf("[INFO] removed %d expired sessions", deleted)
	}
}
