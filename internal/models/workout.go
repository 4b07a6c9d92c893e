package models

// Defaults applied when a workout item or title is missing or invalid.
const (
	DefaultTitle = "My Workout"
	DefaultSets  = 3
	DefaultReps  = 10
	CustomGroup  = "Custom"
)

// WorkoutItem is one exercise in the personal workout. The JSON names match
// the payload kept in the durable store.
type WorkoutItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	MuscleGroup string `json:"muscleGroup"`
	GifURL      string `json:"gifUrl"`
	Sets        int    `json:"sets"`
	Reps        int    `json:"reps"`
}

// WorkoutState is the title plus the ordered list of chosen exercises.
// Item order is insertion order and is preserved by every representation.
type WorkoutState struct {
	Title string        `json:"workoutTitle"`
	Items []WorkoutItem `json:"workouts"`
}

// NewWorkoutState returns an empty state with the default title.
func NewWorkoutState() WorkoutState {
	return WorkoutState{Title: DefaultTitle}
}

// Clone returns a copy that shares no memory with s.
func (s WorkoutState) Clone() WorkoutState {
	out := WorkoutState{Title: s.Title}
	if s.Items != nil {
		out.Items = make([]WorkoutItem, len(s.Items))
		copy(out.Items, s.Items)
	}
	return out
}

// Index returns the position of the item with the given id, or -1.
func (s WorkoutState) Index(id string) int {
	for i, it := range s.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Contains reports whether an item with the same name and muscle group exists.
func (s WorkoutState) Contains(name, muscleGroup string) bool {
	for _, it := range s.Items {
		if it.Name == name && it.MuscleGroup == muscleGroup {
			return true
		}
	}
	return false
}
