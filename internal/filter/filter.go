// Package filter narrows exercise records by the equipment a user selected.
package filter

import (
	"sort"
	"strings"
	"sync"

	"github.com/claude/webfit/internal/catalog"
	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/textutil"
)

// Filter keeps the records that use at least one selected equipment. An
// empty selection returns records unchanged. A record without equipment is
// matched as body weight.
func Filter(records []models.ExerciseRecord, selected map[string]bool) []models.ExerciseRecord {
	if len(selected) == 0 {
		return records
	}

	out := make([]models.ExerciseRecord, 0, len(records))
	for _, r := range records {
		if matches(r, selected) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.ExerciseRecord, selected map[string]bool) bool {
	if len(r.Equipments) == 0 {
		return selected[catalog.BodyWeight]
	}
	for _, eq := range r.Equipments {
		if selected[normalize(eq)] {
			return true
		}
	}
	return false
}

// FormatDisplayName renders an equipment identifier for display:
// "ez barbell" -> "Ez Barbell".
func FormatDisplayName(equipment string) string {
	return textutil.CapitalizeWords(equipment)
}

func normalize(equipment string) string {
	return strings.ToLower(strings.TrimSpace(equipment))
}

// Selection is the set of equipment filters chosen in a session.
// It is safe for concurrent use.
type Selection struct {
	mu  sync.Mutex
	set map[string]bool
}

// NewSelection returns a selection holding equipment.
func NewSelection(equipment ...string) *Selection {
	s := &Selection{}
	s.Set(equipment)
	return s
}

// Set replaces the selection. Blank entries are ignored.
func (s *Selection) Set(equipment []string) {
	set := make(map[string]bool, len(equipment))
	for _, eq := range equipment {
		if n := normalize(eq); n != "" {
			set[n] = true
		}
	}
	s.mu.Lock()
	s.set = set
	s.mu.Unlock()
}

// Toggle adds equipment when absent and removes it when present. It reports
// whether the equipment is selected afterwards.
func (s *Selection) Toggle(equipment string) bool {
	n := normalize(equipment)
	if n == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.set[n] {
		delete(s.set, n)
		return false
	}
	if s.set == nil {
		s.set = make(map[string]bool)
	}
	s.set[n] = true
	return true
}

// Clear removes every filter.
func (s *Selection) Clear() {
	s.mu.Lock()
	clear(s.set)
	s.mu.Unlock()
}

// Active reports whether any filter is selected.
func (s *Selection) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.set) > 0
}

// Contains reports whether equipment is selected.
func (s *Selection) Contains(equipment string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set[normalize(equipment)]
}

// Values returns the selected equipment sorted alphabetically.
func (s *Selection) Values() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.set))
	for eq := range s.set {
		out = append(out, eq)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}

// Apply filters records against a snapshot of the selection.
func (s *Selection) Apply(records []models.ExerciseRecord) []models.ExerciseRecord {
	s.mu.Lock()
	snapshot := make(map[string]bool, len(s.set))
	for k := range s.set {
		snapshot[k] = true
	}
	s.mu.Unlock()
	return Filter(records, snapshot)
}
