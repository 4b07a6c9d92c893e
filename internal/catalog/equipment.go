package catalog

var equipment = []string{
	"stepmill machine",
	"elliptical machine",
	"trap bar",
	"tire",
	"stationary bike",
	"wheel roller",
	"smith machine",
	"hammer",
	"skierg machine",
	"roller",
	"resistance band",
	"bosu ball",
	"weighted",
	"olympic barbell",
	"kettlebell",
	"upper body ergometer",
	"sled machine",
	"ez barbell",
	"dumbbell",
	"rope",
	"barbell",
	"band",
	"stability ball",
	"medicine ball",
	"assisted",
	"leverage machine",
	"cable",
	"body weight",
}

// BodyWeight is the equipment an exercise without equipment is matched as.
const BodyWeight = "body weight"

// Equipment returns the canonical equipment identifiers.
func Equipment() []string {
	out := make([]string, len(equipment))
	copy(out, equipment)
	return out
}

// IsEquipment reports whether id is a canonical equipment identifier.
func IsEquipment(id string) bool {
	for _, e := range equipment {
		if e == id {
			return true
		}
	}
	return false
}
