package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/userboard/userboard/internal/logging"
)

const (
	recentWindow = 7 * 24 * time.Hour
	activeWindow = 30 * 24 * time.Hour
)

// Stats holds the derived counts shown on the dashboard
type Stats struct {
	TotalUsers  int64 `json:"totalUsers"`
	RecentUsers int64 `json:"recentUsers"` // created within the last 7 days
	ActiveUsers int64 `json:"activeUsers"` // logged in within the last 30 days
}

// Counter is the slice of the user repository the stats service needs
type Counter interface {
	CountUsers(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)
	CountActiveSince(ctx context.Context, t time.Time) (int64, error)
}

// Service computes user statistics, with an optional short-TTL cache in
// front of the store. A cache failure is logged and falls through to the
// store; it never fails the request.
type Service struct {
	counter Counter
	cache   *Cache
	logger  *logging.Logger
}

func NewService(counter Counter, cache *Cache, logger *logging.Logger) *Service {
	return &Service{
		counter: counter,
		cache:   cache,
		logger:  logger,
	}
}

// Get returns current statistics, cached or freshly computed
func (s *Service) Get(ctx context.Context) (*Stats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn("stats cache read failed", "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	computed, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, computed); err != nil {
			s.logger.Warn("stats cache write failed", "error", err.Error())
		}
	}

	return computed, nil
}

func (s *Service) compute(ctx context.Context) (*Stats, error) {
	now := time.Now()

	total, err := s.counter.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	recent, err := s.counter.CountCreatedSince(ctx, now.Add(-recentWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count recent users: %w", err)
	}

	active, err := s.counter.CountActiveSince(ctx, now.Add(-activeWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	return &Stats{
		TotalUsers:  total,
		RecentUsers: recent,
		ActiveUsers: active,
	}, nil
}
