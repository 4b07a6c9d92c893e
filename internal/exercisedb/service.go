package exercisedb

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/claude/webfit/internal/catalog"
	"github.com/claude/webfit/internal/models"
)

// DefaultThrottle is the pause between two sub-fetches of one group.
const DefaultThrottle = 300 * time.Millisecond

// Fetcher performs one catalog request for a normalized muscle identifier.
// *Client satisfies it.
type Fetcher interface {
	FetchMuscle(ctx context.Context, muscle string) ([]models.ExerciseRecord, error)
}

// Compile-time check: Client satisfies Fetcher.
var _ Fetcher = (*Client)(nil)

// Service aggregates catalog results per muscle group on top of a Cache.
type Service struct {
	fetcher  Fetcher
	cache    *Cache
	throttle time.Duration
	sleep    func(context.Context, time.Duration) error
	log      *slog.Logger
}

// NewService creates a Service. A nil cache gets a fresh one.
func NewService(fetcher Fetcher, cache *Cache, throttle time.Duration, log *slog.Logger) *Service {
	if cache == nil {
		cache = NewCache()
	}
	return &Service{
		fetcher:  fetcher,
		cache:    cache,
		throttle: throttle,
		sleep:    sleepContext,
		log:      log,
	}
}

// Cache returns the cache backing the service.
func (s *Service) Cache() *Cache {
	return s.cache
}

// FetchByMuscle returns the records for one canonical muscle identifier.
// A cached entry is returned without network access, even when empty.
// Failures are logged and cached as empty, so the same identifier is never
// retried within the session.
func (s *Service) FetchByMuscle(ctx context.Context, muscle string) []models.ExerciseRecord {
	key := NormalizeMuscle(muscle)
	if recs, ok := s.cache.Get(key); ok {
		return recs
	}

	recs, err := s.fetcher.FetchMuscle(ctx, key)
	if err != nil {
		if ctx.Err() != nil {
			// The caller gave up; the catalog did not fail.
			s.log.Warn("exercise fetch aborted", "muscle", muscle, "error", err)
			return []models.ExerciseRecord{}
		}
		s.log.Error("exercise fetch failed", "muscle", muscle, "error", err)
		s.cache.Put(key, nil)
		return []models.ExerciseRecord{}
	}

	s.cache.Put(key, recs)
	s.log.Debug("exercises fetched", "muscle", muscle, "count", len(recs))
	return recs
}

// FetchGroup fetches every muscle of a group one after another in catalog
// order, pausing for the throttle interval between requests, and returns the
// deduplicated result. Sub-fetches never overlap. An unknown group yields an
// empty result. The error is non-nil only when ctx ends mid-chain.
func (s *Service) FetchGroup(ctx context.Context, group string) ([]models.ExerciseRecord, error) {
	muscles, ok := catalog.Muscles(group)
	if !ok {
		return []models.ExerciseRecord{}, nil
	}

	var all []models.ExerciseRecord
	for i, muscle := range muscles {
		if i > 0 {
			if err := s.sleep(ctx, s.throttle); err != nil {
				return nil, fmt.Errorf("fetching group %s: %w", group, err)
			}
		}
		if recs := s.FetchByMuscle(ctx, muscle); len(recs) > 0 {
			all = append(all, recs...)
		}
	}

	unique := Dedupe(all)
	s.log.Info("group fetched", "group", group, "muscles", len(muscles), "records", len(all), "unique", len(unique))
	return unique, nil
}

// FindByName returns the first record of the group whose name matches name
// case-insensitively.
func (s *Service) FindByName(ctx context.Context, name, group string) (models.ExerciseRecord, bool, error) {
	recs, err := s.FetchGroup(ctx, group)
	if err != nil {
		return models.ExerciseRecord{}, false, err
	}
	if rec, ok := MatchName(recs, name); ok {
		return rec, true, nil
	}
	return models.ExerciseRecord{}, false, nil
}

// MatchName finds the first named record equal to name ignoring case.
func MatchName(records []models.ExerciseRecord, name string) (models.ExerciseRecord, bool) {
	want := strings.ToLower(name)
	for _, r := range records {
		if r.Name != "" && strings.ToLower(r.Name) == want {
			return r, true
		}
	}
	return models.ExerciseRecord{}, false
}

// Dedupe keeps the first record for every DedupKey, preserving order.
func Dedupe(records []models.ExerciseRecord) []models.ExerciseRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]models.ExerciseRecord, 0, len(records))
	for _, r := range records {
		key := r.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
