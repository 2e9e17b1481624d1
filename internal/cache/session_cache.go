package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/studyhive/studyhive-api/internal/models"
	"github.com/studyhive/studyhive-api/pkg/logger"
	"github.com/studyhive/studyhive-api/pkg/metrics"
	"go.uber.org/zap"
)

// ApprovedSessionSource fetches the approved sessions listing from the
// database. Satisfied by repository.SessionRepository.
type ApprovedSessionSource interface {
	GetApproved(ctx context.Context, limit int) ([]*models.Session, error)
}

const (
	approvedSessionsKey = "sessions:approved"
	cacheCheckPeriod    = 10 * time.Second
	maxRetries          = 3
	initialRetryWait    = 2 * time.Second

	// ApprovedListingLimit caps the public homepage listing
	ApprovedListingLimit = 6
)

// SessionCache serves the public approved-sessions listing from memory
// so the homepage never waits on the database. Entries expire on TTL
// and a background refresher repopulates them; moderation invalidates
// eagerly so a freshly approved session shows up before the next tick.
type SessionCache struct {
	cache      *gocache.Cache
	source     ApprovedSessionSource
	mu         sync.RWMutex
	refreshing bool
	ready      bool
	ttl        time.Duration
}

// NewSessionCache creates a new approved-sessions cache
func NewSessionCache(source ApprovedSessionSource, ttlSeconds int) *SessionCache {
	return &SessionCache{
		cache:  gocache.New(gocache.NoExpiration, cacheCheckPeriod),
		source: source,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Initialize performs the initial cache population (synchronous, blocks
// until ready). Call during startup before accepting requests.
func (sc *SessionCache) Initialize() error {
	logger.Info("Initializing approved sessions cache...")
	startTime := time.Now()

	if err := sc.refreshWithRetry(); err != nil {
		logger.Error("Failed to initialize approved sessions cache", zap.Error(err))
		return err
	}

	sc.mu.Lock()
	sc.ready = true
	sc.mu.Unlock()

	logger.Info("Approved sessions cache initialized successfully",
		zap.Duration("duration", time.Since(startTime)))

	go sc.schedulePeriodicRefresh()

	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (sc *SessionCache) IsReady() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.ready
}

// GetApproved returns the cached approved sessions listing. On an
// expired entry it falls back to the database and repopulates.
func (sc *SessionCache) GetApproved(ctx context.Context) ([]*models.Session, error) {
	if !sc.IsReady() {
		return nil, fmt.Errorf("cache not initialized")
	}

	data, found := sc.cache.Get(approvedSessionsKey)
	if found {
		sessions, ok := data.([]*models.Session)
		if ok {
			metrics.CacheHits.WithLabelValues("approved_sessions").Inc()
			return sessions, nil
		}
		logger.Error("Invalid cache data type for approved sessions")
		sc.cache.Delete(approvedSessionsKey)
	}

	metrics.CacheMisses.WithLabelValues("approved_sessions").Inc()

	sessions, err := sc.source.GetApproved(ctx, ApprovedListingLimit)
	if err != nil {
		return nil, err
	}
	sc.populate(sessions)

	return sessions, nil
}

// Invalidate drops the cached listing and repopulates in the
// background. Called after session moderation or deletion.
func (sc *SessionCache) Invalidate() {
	sc.cache.Delete(approvedSessionsKey)

	go func() {
		if err := sc.refreshInBackground(); err != nil {
			logger.Error("Cache refresh after invalidation failed", zap.Error(err))
		}
	}()
}

// schedulePeriodicRefresh runs background refresh at TTL intervals
func (sc *SessionCache) schedulePeriodicRefresh() {
	ticker := time.NewTicker(sc.ttl)
	defer ticker.Stop()

	for range ticker.C {
		if err := sc.refreshInBackground(); err != nil {
			logger.Error("Scheduled cache refresh failed", zap.Error(err))
			// Scheduler keeps running; next tick retries
		}
	}
}

func (sc *SessionCache) refreshInBackground() error {
	sc.mu.Lock()
	if sc.refreshing {
		sc.mu.Unlock()
		logger.Debug("Cache refresh already in progress, skipping")
		return nil
	}
	sc.refreshing = true
	sc.mu.Unlock()

	defer func() {
		sc.mu.Lock()
		sc.refreshing = false
		sc.mu.Unlock()
	}()

	sessions, err := sc.source.GetApproved(context.Background(), ApprovedListingLimit)
	if err != nil {
		return err
	}

	sc.populate(sessions)
	return nil
}

// refreshWithRetry performs a refresh with exponential backoff
func (sc *SessionCache) refreshWithRetry() error {
	var err error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			waitTime := initialRetryWait * time.Duration(1<<uint(attempt-1))
			logger.Info("Retrying cache refresh",
				zap.Int("attempt", attempt+1),
				zap.Int("max_attempts", maxRetries),
				zap.Duration("wait_time", waitTime))
			time.Sleep(waitTime)
		}

		var sessions []*models.Session
		sessions, err = sc.source.GetApproved(context.Background(), ApprovedListingLimit)
		if err != nil {
			logger.Error("Cache refresh attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			continue
		}

		sc.populate(sessions)
		return nil
	}

	return fmt.Errorf("failed to refresh cache after %d attempts: %w", maxRetries, err)
}

func (sc *SessionCache) populate(sessions []*models.Session) {
	sc.cache.Set(approvedSessionsKey, sessions, sc.ttl)
	metrics.CacheSize.WithLabelValues("approved_sessions").Set(float64(len(sessions)))
}

// Clear clears the entire cache
func (sc *SessionCache) Clear() {
	sc.cache.Flush()
	logger.Info("Approved sessions cache cleared")
}
