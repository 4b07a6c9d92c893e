package workout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/sharelink"
	"github.com/claude/webfit/internal/storage"
)

type memStore struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
	getErr error
	setErr error
}

func newMemStore() *memStore { return &memStore{data: map[string]string{}} }

func (s *memStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *memStore) state(t *testing.T) models.WorkoutState {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	var st models.WorkoutState
	if err := json.Unmarshal([]byte(s.data[storage.WorkoutKey]), &st); err != nil {
		t.Fatalf("stored payload: %v", err)
	}
	return st
}

type memLocation struct {
	query    string
	replaced int
	err      error
}

func (l *memLocation) Query() (url.Values, error) { return url.ParseQuery(l.query) }

func (l *memLocation) Replace(rawQuery string) error {
	l.replaced++
	if l.err != nil {
		return l.err
	}
	l.query = rawQuery
	return nil
}

func newTestManager(store Store, loc Location) *Manager {
	m := New(store, loc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	n := 0
	m.newID = func() string {
		n++
		return "id-" + strconv.Itoa(n)
	}
	return m
}

// TestInitializeFromLink verifies a link workout wins over the store and is
// written back to both representations.
func TestInitializeFromLink(t *testing.T) {
	store := newMemStore()
	store.data[storage.WorkoutKey] = `{"workoutTitle":"Old","workouts":[]}`
	loc := &memLocation{query: "workoutTitle=Leg+Day&w1Name=squat&w1Sets=4&w1Reps=8&w1Group=Legs"}
	m := newTestManager(store, loc)

	if src := m.Initialize(context.Background()); src != SourceLink {
		t.Fatalf("source = %v, want link", src)
	}
	st := m.State()
	if st.Title != "Leg Day" || len(st.Items) != 1 {
		t.Fatalf("state = %+v", st)
	}
	it := st.Items[0]
	if it.ID != "id-1" || it.Name != "squat" || it.DisplayName != "Squat" || it.Sets != 4 || it.Reps != 8 || it.MuscleGroup != "Legs" {
		t.Errorf("item = %+v", it)
	}
	if got := store.state(t); got.Title != "Leg Day" || len(got.Items) != 1 {
		t.Errorf("stored = %+v", got)
	}
	if loc.replaced != 1 {
		t.Errorf("link rewritten %d times, want 1", loc.replaced)
	}
}

// TestInitializeFromStore verifies the stored workout is adopted and the link
// is rebuilt from it.
func TestInitializeFromStore(t *testing.T) {
	store := newMemStore()
	store.data[storage.WorkoutKey] = `{"workoutTitle":"Push","workouts":[
		{"id":"a","name":"push up","displayName":"Push Up","muscleGroup":"Chest","gifUrl":"g.gif","sets":4,"reps":12}]}`
	loc := &memLocation{}
	m := newTestManager(store, loc)

	if src := m.Initialize(context.Background()); src != SourceStore {
		t.Fatalf("source = %v, want store", src)
	}
	want := models.WorkoutItem{ID: "a", Name: "push up", DisplayName: "Push Up", MuscleGroup: "Chest", GifURL: "g.gif", Sets: 4, Reps: 12}
	st := m.State()
	if st.Title != "Push" || len(st.Items) != 1 || st.Items[0] != want {
		t.Fatalf("state = %+v", st)
	}
	wantQuery := "workoutTitle=Push&w1Name=push+up&w1Sets=4&w1Reps=12&w1Group=Chest"
	if loc.query != wantQuery {
		t.Errorf("link = %q, want %q", loc.query, wantQuery)
	}
}

// TestInitializeStoreWithoutItems verifies an empty stored workout keeps its
// title but nothing is rewritten.
func TestInitializeStoreWithoutItems(t *testing.T) {
	store := newMemStore()
	store.data[storage.WorkoutKey] = `{"workoutTitle":"Rest","workouts":[]}`
	loc := &memLocation{}
	m := newTestManager(store, loc)

	if src := m.Initialize(context.Background()); src != SourceStore {
		t.Fatalf("source = %v", src)
	}
	if st := m.State(); st.Title != "Rest" || len(st.Items) != 0 {
		t.Errorf("state = %+v", st)
	}
	if loc.replaced != 0 || store.writes != 0 {
		t.Errorf("replaced=%d writes=%d, want no sync", loc.replaced, store.writes)
	}
}

// TestInitializeEmpty verifies the default state when neither source has a
// workout, and that an unreadable store counts as absent.
func TestInitializeEmpty(t *testing.T) {
	for name, raw := range map[string]string{
		"missing": "",
		"corrupt": "{not json",
		"null":    "null",
		"array":   "[1,2]",
	} {
		t.Run(name, func(t *testing.T) {
			store := newMemStore()
			if raw != "" {
				store.data[storage.WorkoutKey] = raw
			}
			m := newTestManager(store, &memLocation{query: "other=1"})

			if src := m.Initialize(context.Background()); src != SourceEmpty {
				t.Fatalf("source = %v, want empty", src)
			}
			if st := m.State(); st.Title != models.DefaultTitle || len(st.Items) != 0 {
				t.Errorf("state = %+v", st)
			}
		})
	}
}

// TestInitializeStoreReadError verifies a failing store read leaves the
// workout empty.
func TestInitializeStoreReadError(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk gone")
	m := newTestManager(store, &memLocation{})

	if src := m.Initialize(context.Background()); src != SourceEmpty {
		t.Errorf("source = %v, want empty", src)
	}
}

// TestStoredItemNormalization verifies partial or malformed stored items are
// filled in with defaults.
func TestStoredItemNormalization(t *testing.T) {
	store := newMemStore()
	store.data[storage.WorkoutKey] = `{"workouts":[
		{"name":"push up","sets":"x","reps":0},
		5,
		{},
		{"id":"k","name":"row","sets":2.9,"reps":-4,"muscleGroup":""}]}`
	m := newTestManager(store, &memLocation{})
	m.Initialize(context.Background())

	st := m.State()
	if st.Title != models.DefaultTitle {
		t.Errorf("title = %q", st.Title)
	}
	want := []models.WorkoutItem{
		{ID: "id-1", Name: "push up", DisplayName: "Push Up", MuscleGroup: "Custom", Sets: 3, Reps: 10},
		{ID: "id-2", Name: "Exercise", DisplayName: "Exercise", MuscleGroup: "Custom", Sets: 3, Reps: 10},
		{ID: "k", Name: "row", DisplayName: "Row", MuscleGroup: "Custom", Sets: 2, Reps: 10},
	}
	if len(st.Items) != len(want) {
		t.Fatalf("items = %+v", st.Items)
	}
	for i := range want {
		if st.Items[i] != want[i] {
			t.Errorf("item %d = %+v, want %+v", i, st.Items[i], want[i])
		}
	}
}

// TestStoredWorkoutsNotList verifies a non-list workouts value keeps the
// title and yields no items.
func TestStoredWorkoutsNotList(t *testing.T) {
	store := newMemStore()
	store.data[storage.WorkoutKey] = `{"workoutTitle":"T","workouts":{"a":1}}`
	m := newTestManager(store, &memLocation{})

	if src := m.Initialize(context.Background()); src != SourceStore {
		t.Fatalf("source = %v", src)
	}
	if st := m.State(); st.Title != "T" || len(st.Items) != 0 {
		t.Errorf("state = %+v", st)
	}
}

// TestAddItem covers defaults and duplicate rules.
func TestAddItem(t *testing.T) {
	store := newMemStore()
	loc := &memLocation{}
	m := newTestManager(store, loc)
	ctx := context.Background()

	it, ok := m.AddItem(ctx, "barbell curl", "Biceps", "curl.gif")
	if !ok {
		t.Fatal("first add rejected")
	}
	want := models.WorkoutItem{ID: "id-1", Name: "barbell curl", DisplayName: "Barbell Curl", MuscleGroup: "Biceps", GifURL: "curl.gif", Sets: 3, Reps: 10}
	if it != want {
		t.Errorf("item = %+v, want %+v", it, want)
	}

	if _, ok := m.AddItem(ctx, "barbell curl", "Biceps", ""); ok {
		t.Error("duplicate in same group accepted")
	}
	if _, ok := m.AddItem(ctx, "barbell curl", "Forearms", ""); !ok {
		t.Error("same name in another group rejected")
	}
	if _, ok := m.AddItem(ctx, "", "Biceps", ""); ok {
		t.Error("empty name accepted")
	}
	if it, ok := m.AddItem(ctx, "plank", "", ""); !ok || it.MuscleGroup != models.CustomGroup {
		t.Errorf("add without group = %+v, %v", it, ok)
	}
	if _, ok := m.AddItem(ctx, "plank", "Custom", ""); ok {
		t.Error("duplicate of defaulted group accepted")
	}

	st := m.State()
	if len(st.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(st.Items))
	}
	if got := store.state(t); len(got.Items) != 3 || got.Items[2].Name != "plank" {
		t.Errorf("stored = %+v", got)
	}
	if loc.query != sharelink.Encode(st).Encode() {
		t.Errorf("link = %q out of sync", loc.query)
	}
	if loc.replaced != 3 || store.writes != 3 {
		t.Errorf("replaced=%d writes=%d, want one sync per accepted add", loc.replaced, store.writes)
	}
}

// TestSetCounts verifies user input is parsed leniently and clamped to 1.
func TestSetCounts(t *testing.T) {
	m := newTestManager(newMemStore(), &memLocation{})
	ctx := context.Background()
	it, _ := m.AddItem(ctx, "squat", "Legs", "")

	tests := []struct {
		in   string
		want int
	}{
		{"5", 5},
		{"7 sets", 7},
		{"0", 1},
		{"-2", 1},
		{"abc", 1},
		{"", 1},
	}
	for _, tt := range tests {
		n, err := m.SetSets(ctx, it.ID, tt.in)
		if err != nil || n != tt.want {
			t.Errorf("SetSets(%q) = %d, %v; want %d", tt.in, n, err, tt.want)
		}
		if got, _ := m.Item(it.ID); got.Sets != tt.want {
			t.Errorf("after SetSets(%q) sets = %d", tt.in, got.Sets)
		}
	}

	if n, err := m.SetReps(ctx, it.ID, "15"); err != nil || n != 15 {
		t.Errorf("SetReps = %d, %v", n, err)
	}
	if got, _ := m.Item(it.ID); got.Reps != 15 {
		t.Errorf("reps = %d, want 15", got.Reps)
	}
}

// TestUnknownID verifies operations on a missing id fail without syncing.
func TestUnknownID(t *testing.T) {
	store := newMemStore()
	loc := &memLocation{}
	m := newTestManager(store, loc)
	ctx := context.Background()

	if _, err := m.SetSets(ctx, "nope", "4"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("SetSets err = %v", err)
	}
	if _, err := m.SetReps(ctx, "nope", "4"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("SetReps err = %v", err)
	}
	if err := m.RemoveItem(ctx, "nope"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("RemoveItem err = %v", err)
	}
	if err := m.ResolveGif(ctx, "nope", "x.gif"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("ResolveGif err = %v", err)
	}
	if store.writes != 0 || loc.replaced != 0 {
		t.Errorf("writes=%d replaced=%d, want none", store.writes, loc.replaced)
	}
}

// TestRemoveItemKeepsOrder verifies removal leaves the other items in order.
func TestRemoveItemKeepsOrder(t *testing.T) {
	m := newTestManager(newMemStore(), &memLocation{})
	ctx := context.Background()
	a, _ := m.AddItem(ctx, "a", "G", "")
	b, _ := m.AddItem(ctx, "b", "G", "")
	c, _ := m.AddItem(ctx, "c", "G", "")

	if err := m.RemoveItem(ctx, b.ID); err != nil {
		t.Fatal(err)
	}
	st := m.State()
	if len(st.Items) != 2 || st.Items[0].ID != a.ID || st.Items[1].ID != c.ID {
		t.Errorf("items = %+v", st.Items)
	}
}

// TestRename covers the default and trimming.
func TestRename(t *testing.T) {
	loc := &memLocation{}
	m := newTestManager(newMemStore(), loc)
	ctx := context.Background()

	if got := m.Rename(ctx, "  Push Day "); got != "Push Day" {
		t.Errorf("Rename = %q", got)
	}
	if loc.query != "workoutTitle=Push+Day" {
		t.Errorf("link = %q", loc.query)
	}
	if got := m.Rename(ctx, ""); got != models.DefaultTitle {
		t.Errorf("Rename(\"\") = %q", got)
	}
	if got := m.Rename(ctx, "   "); got != "" {
		t.Errorf("Rename(blank) = %q, want empty", got)
	}
}

// TestResolveGifSkipsLink verifies media updates reach only the store.
func TestResolveGifSkipsLink(t *testing.T) {
	store := newMemStore()
	loc := &memLocation{}
	m := newTestManager(store, loc)
	ctx := context.Background()
	it, _ := m.AddItem(ctx, "dip", "Triceps", "")
	replaced := loc.replaced

	if err := m.ResolveGif(ctx, it.ID, "dip.gif"); err != nil {
		t.Fatal(err)
	}
	if loc.replaced != replaced {
		t.Error("link rewritten for a media update")
	}
	if got := store.state(t); got.Items[0].GifURL != "dip.gif" {
		t.Errorf("stored gif = %q", got.Items[0].GifURL)
	}
}

// TestSyncFailuresKeepState verifies failing writes are not fatal.
func TestSyncFailuresKeepState(t *testing.T) {
	store := newMemStore()
	store.setErr = errors.New("quota exceeded")
	loc := &memLocation{err: errors.New("read only")}
	m := newTestManager(store, loc)
	ctx := context.Background()

	it, ok := m.AddItem(ctx, "lunge", "Legs", "")
	if !ok {
		t.Fatal("add rejected")
	}
	if _, err := m.SetReps(ctx, it.ID, "20"); err != nil {
		t.Fatal(err)
	}
	if got, _ := m.Item(it.ID); got.Reps != 20 {
		t.Errorf("reps = %d, want 20", got.Reps)
	}
}

// TestClear verifies the workout resets and the empty state is persisted.
func TestClear(t *testing.T) {
	store := newMemStore()
	loc := &memLocation{}
	m := newTestManager(store, loc)
	ctx := context.Background()
	m.Rename(ctx, "Mine")
	m.AddItem(ctx, "a", "G", "")

	m.Clear(ctx)
	if st := m.State(); st.Title != models.DefaultTitle || len(st.Items) != 0 {
		t.Errorf("state = %+v", st)
	}
	if got := store.data[storage.WorkoutKey]; got != `{"workoutTitle":"My Workout","workouts":[]}` {
		t.Errorf("stored = %s", got)
	}
}

// TestShareQueryRoundTrip verifies a shared link reproduces the workout
// apart from ids and media.
func TestShareQueryRoundTrip(t *testing.T) {
	m := newTestManager(newMemStore(), &memLocation{})
	ctx := context.Background()
	m.Rename(ctx, "Full Body & Core")
	a, _ := m.AddItem(ctx, "push up", "Chest", "p.gif")
	m.SetSets(ctx, a.ID, "5")
	m.AddItem(ctx, "plank", "", "")

	q, err := url.ParseQuery(m.ShareQuery())
	if err != nil {
		t.Fatal(err)
	}
	other := newTestManager(newMemStore(), &memLocation{query: m.ShareQuery()})
	if src := other.Initialize(ctx); src != SourceLink {
		t.Fatalf("source = %v", src)
	}
	if !sharelink.HasWorkout(q) {
		t.Fatal("share query carries no workout")
	}
	got, want := other.State(), m.State()
	if got.Title != want.Title || len(got.Items) != len(want.Items) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want.Items {
		g, w := got.Items[i], want.Items[i]
		if g.Name != w.Name || g.MuscleGroup != w.MuscleGroup || g.Sets != w.Sets || g.Reps != w.Reps {
			t.Errorf("item %d = %+v, want %+v", i, g, w)
		}
		if g.GifURL != "" {
			t.Errorf("item %d gif = %q, want empty", i, g.GifURL)
		}
	}
}
