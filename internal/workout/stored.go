package workout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/textutil"
)

// storedPayload mirrors the stored document loosely so that payloads written
// by older or foreign clients still load field by field.
type storedPayload struct {
	WorkoutTitle any             `json:"workoutTitle"`
	Workouts     json.RawMessage `json:"workouts"`
}

type storedItem struct {
	ID          any `json:"id"`
	Name        any `json:"name"`
	DisplayName any `json:"displayName"`
	MuscleGroup any `json:"muscleGroup"`
	GifURL      any `json:"gifUrl"`
	Sets        any `json:"sets"`
	Reps        any `json:"reps"`
}

func encodeStored(state models.WorkoutState) (string, error) {
	if state.Items == nil {
		state.Items = []models.WorkoutItem{}
	}
	data, err := json.Marshal(state)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// load reads and normalizes the stored workout. Anything unreadable is
// logged and reported as absent.
func (m *Manager) load(ctx context.Context) (models.WorkoutState, bool) {
	raw, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		m.log.Error("reading stored workout failed", "error", err)
		return models.WorkoutState{}, false
	}
	if !ok {
		return models.WorkoutState{}, false
	}
	state, err := decodeStored([]byte(raw), m.newID)
	if err != nil {
		m.log.Warn("stored workout unreadable", "error", err)
		return models.WorkoutState{}, false
	}
	return state, true
}

var errEmptyPayload = errors.New("empty payload")

func decodeStored(raw []byte, newID func() string) (models.WorkoutState, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.WorkoutState{}, errEmptyPayload
	}

	var p storedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return models.WorkoutState{}, err
	}

	state := models.WorkoutState{Title: stringField(p.WorkoutTitle)}
	if state.Title == "" {
		state.Title = models.DefaultTitle
	}

	// A workouts value that is not a list is ignored rather than fatal.
	var elems []json.RawMessage
	if err := json.Unmarshal(p.Workouts, &elems); err != nil {
		return state, nil
	}
	for _, e := range elems {
		var si storedItem
		if err := json.Unmarshal(e, &si); err != nil {
			continue
		}
		state.Items = append(state.Items, normalizeItem(si, newID))
	}
	return state, nil
}

func normalizeItem(si storedItem, newID func() string) models.WorkoutItem {
	it := models.WorkoutItem{
		ID:          stringField(si.ID),
		Name:        stringField(si.Name),
		DisplayName: stringField(si.DisplayName),
		MuscleGroup: stringField(si.MuscleGroup),
		GifURL:      stringField(si.GifURL),
		Sets:        countField(si.Sets, models.DefaultSets),
		Reps:        countField(si.Reps, models.DefaultReps),
	}
	if it.ID == "" {
		it.ID = newID()
	}
	if it.Name == "" {
		it.Name = "Exercise"
	}
	if it.DisplayName == "" {
		it.DisplayName = textutil.TitleCase(it.Name)
	}
	if it.MuscleGroup == "" {
		it.MuscleGroup = models.CustomGroup
	}
	return it
}

func stringField(v any) string {
	s, _ := v.(string)
	return s
}

// countField accepts JSON numbers of at least 1; anything else is def.
func countField(v any, def int) int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f < 1 || f > math.MaxInt32 {
		return def
	}
	return int(f)
}
