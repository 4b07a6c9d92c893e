package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestEquipmentsScalarOrArray verifies that the catalog's scalar equipment
// form decodes to the same slice shape as the array form.
func TestEquipmentsScalarOrArray(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Equipments
	}{
		{"array", `{"equipments":["barbell","dumbbell"]}`, Equipments{"barbell", "dumbbell"}},
		{"scalar", `{"equipments":"dumbbell"}`, Equipments{"dumbbell"}},
		{"empty scalar", `{"equipments":""}`, nil},
		{"null", `{"equipments":null}`, nil},
		{"missing", `{}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r ExerciseRecord
			if err := json.Unmarshal([]byte(tt.json), &r); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if !reflect.DeepEqual(r.Equipments, tt.want) {
				t.Errorf("equipments = %#v, want %#v", r.Equipments, tt.want)
			}
		})
	}
}

// TestEquipmentsRejectsObject verifies that a nonsensical equipment value is a
// decode error rather than a silent empty list.
func TestEquipmentsRejectsObject(t *testing.T) {
	var r ExerciseRecord
	if err := json.Unmarshal([]byte(`{"equipments":{"a":1}}`), &r); err == nil {
		t.Fatal("expected error for object equipments")
	}
}

// TestDedupKey covers the id/name fallback and the "none" equipment marker.
func TestDedupKey(t *testing.T) {
	tests := []struct {
		name string
		rec  ExerciseRecord
		want string
	}{
		{"id wins", ExerciseRecord{ExerciseID: "ex1", Name: "Curl", Equipments: Equipments{"dumbbell"}}, "ex1-dumbbell"},
		{"name fallback", ExerciseRecord{Name: "Bicep Curl", Equipments: Equipments{"dumbbell"}}, "Bicep Curl-dumbbell"},
		{"multiple equipment", ExerciseRecord{Name: "Row", Equipments: Equipments{"cable", "rope"}}, "Row-cable,rope"},
		{"no equipment", ExerciseRecord{Name: "Push Up"}, "Push Up-none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rec.DedupKey(); got != tt.want {
				t.Errorf("DedupKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := (ExerciseRecord{}).DisplayName(); got != UnnamedExercise {
		t.Errorf("DisplayName() = %q, want %q", got, UnnamedExercise)
	}
	if got := (ExerciseRecord{Name: "squat"}).DisplayName(); got != "squat" {
		t.Errorf("DisplayName() = %q, want %q", got, "squat")
	}
}

// TestWorkoutStateClone verifies a clone can be mutated without touching the source.
func TestWorkoutStateClone(t *testing.T) {
	s := WorkoutState{Title: "Leg Day", Items: []WorkoutItem{{ID: "a", Name: "Squat", Sets: 3}}}
	c := s.Clone()
	c.Items[0].Sets = 9
	c.Title = "Other"
	if s.Items[0].Sets != 3 || s.Title != "Leg Day" {
		t.Errorf("source mutated: %+v", s)
	}
	if s.Index("a") != 0 || s.Index("b") != -1 {
		t.Errorf("Index lookup wrong")
	}
	if !s.Contains("Squat", "") || s.Contains("Squat", "Legs") {
		t.Errorf("Contains lookup wrong")
	}
}
