// Package workout owns the personal workout: one in-memory list of chosen
// exercises that is mirrored into the shareable link and the durable store
// after every change.
package workout

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/sharelink"
	"github.com/claude/webfit/internal/storage"
	"github.com/claude/webfit/internal/textutil"
	"github.com/google/uuid"
)

// ErrItemNotFound is returned when no item has the given id.
var ErrItemNotFound = errors.New("workout item not found")

// Store is the durable key/value store the workout is saved in.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Location is where the shareable link lives. Replace swaps the query of the
// current page without any other effect.
type Location interface {
	Query() (url.Values, error)
	Replace(rawQuery string) error
}

// Source tells where Initialize found the workout.
type Source int

const (
	SourceEmpty Source = iota
	SourceLink
	SourceStore
)

func (s Source) String() string {
	switch s {
	case SourceLink:
		return "link"
	case SourceStore:
		return "store"
	default:
		return "empty"
	}
}

// Manager is the single source of truth for the workout. The link and the
// store are derived from it and rewritten in full after each mutation.
type Manager struct {
	mu    sync.Mutex
	state models.WorkoutState
	store Store
	loc   Location
	key   string
	newID func() string
	log   *slog.Logger
}

// New creates a Manager with an empty workout. Call Initialize to load one.
func New(store Store, loc Location, log *slog.Logger) *Manager {
	return &Manager{
		state: models.NewWorkoutState(),
		store: store,
		loc:   loc,
		key:   storage.WorkoutKey,
		newID: uuid.NewString,
		log:   log,
	}
}

// Initialize loads the workout. A link carrying a workout wins and
// overwrites the stored copy; otherwise the stored copy is used; otherwise
// the workout stays empty.
func (m *Manager) Initialize(ctx context.Context) Source {
	m.mu.Lock()
	defer m.mu.Unlock()

	q, err := m.loc.Query()
	if err != nil {
		m.log.Warn("reading share link failed", "error", err)
	}
	if sharelink.HasWorkout(q) {
		m.state = sharelink.Decode(q, m.newID)
		m.log.Info("workout loaded from link", "items", len(m.state.Items))
		m.sync(ctx, true)
		return SourceLink
	}

	state, ok := m.load(ctx)
	if !ok {
		return SourceEmpty
	}
	m.state = state
	m.log.Info("workout loaded from store", "items", len(state.Items))
	if len(state.Items) > 0 {
		m.sync(ctx, true)
	}
	return SourceStore
}

// State returns a copy of the current workout.
func (m *Manager) State() models.WorkoutState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// Item returns the item with the given id.
func (m *Manager) Item(id string) (models.WorkoutItem, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.state.Index(id); i >= 0 {
		return m.state.Items[i], true
	}
	return models.WorkoutItem{}, false
}

// ShareQuery returns the link query for the current workout.
func (m *Manager) ShareQuery() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return sharelink.Encode(m.state).Encode()
}

// AddItem appends an exercise with default sets and reps. It is a no-op,
// returning false, for an empty name or when the same name is already in the
// workout for the same muscle group. An empty group is recorded as "Custom".
func (m *Manager) AddItem(ctx context.Context, name, muscleGroup, gifURL string) (models.WorkoutItem, bool) {
	if name == "" {
		return models.WorkoutItem{}, false
	}
	if muscleGroup == "" {
		muscleGroup = models.CustomGroup
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Contains(name, muscleGroup) {
		return models.WorkoutItem{}, false
	}
	item := models.WorkoutItem{
		ID:          m.newID(),
		Name:        name,
		DisplayName: textutil.TitleCase(name),
		MuscleGroup: muscleGroup,
		GifURL:      gifURL,
		Sets:        models.DefaultSets,
		Reps:        models.DefaultReps,
	}
	m.state.Items = append(m.state.Items, item)
	m.sync(ctx, true)
	return item, true
}

// RemoveItem drops the item with the given id.
func (m *Manager) RemoveItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.state.Index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	m.state.Items = append(m.state.Items[:i:i], m.state.Items[i+1:]...)
	m.sync(ctx, true)
	return nil
}

// SetSets sets the set count from user input. Values below 1 and input that
// does not start with a number become 1. It returns the stored value.
func (m *Manager) SetSets(ctx context.Context, id, value string) (int, error) {
	return m.setCount(ctx, id, value, func(it *models.WorkoutItem, n int) { it.Sets = n })
}

// SetReps is SetSets for repetitions.
func (m *Manager) SetReps(ctx context.Context, id, value string) (int, error) {
	return m.setCount(ctx, id, value, func(it *models.WorkoutItem, n int) { it.Reps = n })
}

func (m *Manager) setCount(ctx context.Context, id, value string, apply func(*models.WorkoutItem, int)) (int, error) {
	n, ok := textutil.LeadingInt(value)
	if !ok || n < 1 {
		n = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.state.Index(id)
	if i < 0 {
		return 0, ErrItemNotFound
	}
	apply(&m.state.Items[i], n)
	m.sync(ctx, true)
	return n, nil
}

// Rename replaces the workout title. An empty title becomes the default;
// surrounding whitespace is trimmed. It returns the stored title.
func (m *Manager) Rename(ctx context.Context, title string) string {
	if title == "" {
		title = models.DefaultTitle
	}
	title = strings.TrimSpace(title)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Title = title
	m.sync(ctx, true)
	return title
}

// ResolveGif records demo media for an item. Media is not part of the link,
// so only the store is rewritten.
func (m *Manager) ResolveGif(ctx context.Context, id, gifURL string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.state.Index(id)
	if i < 0 {
		return ErrItemNotFound
	}
	m.state.Items[i].GifURL = gifURL
	m.sync(ctx, false)
	return nil
}

// Clear empties the workout and resets the title.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = models.NewWorkoutState()
	m.sync(ctx, true)
}

// sync rewrites the derived representations from the in-memory state. Both
// writes are best effort: failures are logged and the state is kept.
// Callers hold m.mu.
func (m *Manager) sync(ctx context.Context, withLink bool) {
	if withLink {
		if err := m.loc.Replace(sharelink.Encode(m.state).Encode()); err != nil {
			m.log.Error("updating share link failed", "error", err)
		}
	}

	data, err := encodeStored(m.state)
	if err != nil {
		m.log.Error("encoding workout failed", "error", err)
		return
	}
	if err := m.store.Set(ctx, m.key, data); err != nil {
		m.log.Error("saving workout failed", "error", err)
	}
}
