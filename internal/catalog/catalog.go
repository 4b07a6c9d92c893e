// Package catalog holds the static vocabularies of the remote exercise
// catalog: user-facing muscle groups and canonical equipment identifiers.
package catalog

// groupOrder is the order groups are presented in.
var groupOrder = []string{"Legs", "Biceps", "Triceps", "Core", "Back", "Chest", "Shoulders", "Traps"}

// muscleGroups maps a group name to the canonical muscle identifiers the
// remote catalog understands, in fetch order.
var muscleGroups = map[string][]string{
	"Legs": {
		"quadriceps", "quads", "hamstrings", "glutes", "calves", "soleus", "shins",
		"inner thighs", "groin", "hip flexors", "abductors", "adductors",
	},
	"Biceps":    {"biceps", "brachialis"},
	"Triceps":   {"triceps"},
	"Core":      {"abs", "abdominals", "lower abs", "obliques", "core", "serratus anterior", "hip flexors"},
	"Back":      {"back", "upper back", "lower back", "latissimus dorsi", "lats", "rhomboids", "spine"},
	"Chest":     {"chest", "upper chest", "pectorals"},
	"Shoulders": {"shoulders", "deltoids", "delts", "rear deltoids", "rotator cuff"},
	"Traps":     {"traps", "trapezius", "levator scapulae", "sternocleidomastoid"},
}

// Groups returns the group names in presentation order.
func Groups() []string {
	out := make([]string, len(groupOrder))
	copy(out, groupOrder)
	return out
}

// Muscles returns a copy of the canonical muscle identifiers for a group.
// Group names are matched exactly.
func Muscles(group string) ([]string, bool) {
	m, ok := muscleGroups[group]
	if !ok {
		return nil, false
	}
	out := make([]string, len(m))
	copy(out, m)
	return out, true
}

// IsGroup reports whether the group is known.
func IsGroup(group string) bool {
	_, ok := muscleGroups[group]
	return ok
}
