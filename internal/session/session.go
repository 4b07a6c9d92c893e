// Package session holds everything one user's browsing session shares: the
// exercise cache, the equipment filters, the expanded muscle groups and the
// workout. Front ends (the CLI and the MCP server) drive it through the
// methods below.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/claude/webfit/internal/catalog"
	"github.com/claude/webfit/internal/exercisedb"
	"github.com/claude/webfit/internal/filter"
	"github.com/claude/webfit/internal/howto"
	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/workout"
)

// ErrUnknownGroup is returned for a muscle group that is not in the catalog.
var ErrUnknownGroup = errors.New("unknown muscle group")

// GroupResult is the filtered view of one expanded group.
type GroupResult struct {
	Group   string                  `json:"group"`
	Records []models.ExerciseRecord `json:"exercises"`
}

// Session is the per-user context. It is safe for concurrent use; two
// groups may be fetched at the same time.
type Session struct {
	service   *exercisedb.Service
	selection *filter.Selection
	workout   *workout.Manager
	resolver  *howto.Resolver
	log       *slog.Logger

	mu      sync.Mutex
	loaded  []string
	results map[string][]models.ExerciseRecord
}

// New creates a session on top of a catalog service and a workout manager.
func New(service *exercisedb.Service, manager *workout.Manager, log *slog.Logger) *Session {
	return &Session{
		service:   service,
		selection: filter.NewSelection(),
		workout:   manager,
		resolver:  howto.NewResolver(service, manager, log),
		log:       log,
		results:   make(map[string][]models.ExerciseRecord),
	}
}

// Workout returns the session's workout manager.
func (s *Session) Workout() *workout.Manager {
	return s.workout
}

// SelectGroup expands a muscle group: it fetches the group and returns its
// records with the current equipment filters applied. If the group is
// deselected before the fetch completes, the result is dropped and nil is
// returned; whatever was cached meanwhile stays cached.
func (s *Session) SelectGroup(ctx context.Context, group string) ([]models.ExerciseRecord, error) {
	if !catalog.IsGroup(group) {
		return nil, fmt.Errorf("%q: %w", group, ErrUnknownGroup)
	}

	s.mu.Lock()
	if !slices.Contains(s.loaded, group) {
		s.loaded = append(s.loaded, group)
	}
	s.mu.Unlock()

	recs, err := s.service.FetchGroup(ctx, group)
	if err != nil {
		s.DeselectGroup(group)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.loaded, group) {
		s.log.Debug("dropping result of collapsed group", "group", group)
		return nil, nil
	}
	s.results[group] = recs
	return s.selection.Apply(recs), nil
}

// DeselectGroup collapses a group. It reports whether the group was expanded.
func (s *Session) DeselectGroup(group string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.loaded, group)
	if i < 0 {
		return false
	}
	s.loaded = slices.Delete(s.loaded, i, i+1)
	delete(s.results, group)
	return true
}

// Loaded returns the expanded groups in the order they were selected.
func (s *Session) Loaded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.loaded)
}

// Results returns the filtered records of every expanded group whose fetch
// has completed, in selection order.
func (s *Session) Results() []GroupResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]GroupResult, 0, len(s.loaded))
	for _, g := range s.loaded {
		recs, ok := s.results[g]
		if !ok {
			continue
		}
		out = append(out, GroupResult{Group: g, Records: s.selection.Apply(recs)})
	}
	return out
}

// ApplyFilters replaces the equipment filters and re-filters the groups
// already fetched. It never touches the network.
func (s *Session) ApplyFilters(equipment []string) []GroupResult {
	s.selection.Set(equipment)
	return s.Results()
}

// ToggleFilter flips one equipment filter and reports whether it is now on.
func (s *Session) ToggleFilter(equipment string) bool {
	return s.selection.Toggle(equipment)
}

// Filters returns the selected equipment.
func (s *Session) Filters() []string {
	return s.selection.Values()
}

// AddExercise adds an exercise to the workout. Demo media is taken from the
// group's fetched records when the name is found there.
func (s *Session) AddExercise(ctx context.Context, name, group string) (models.WorkoutItem, bool) {
	s.mu.Lock()
	rec, _ := exercisedb.MatchName(s.results[group], name)
	s.mu.Unlock()

	if rec.Name != "" {
		name = rec.Name
	}
	return s.workout.AddItem(ctx, name, group, rec.GifURL)
}

// HowTo returns the workout item with its demo media, looking it up in the
// catalog when missing.
func (s *Session) HowTo(ctx context.Context, id string) (models.WorkoutItem, error) {
	item, ok := s.workout.Item(id)
	if !ok {
		return models.WorkoutItem{}, workout.ErrItemNotFound
	}
	return s.resolver.Resolve(ctx, item)
}
