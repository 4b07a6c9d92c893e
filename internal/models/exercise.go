package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ExerciseRecord is one entry of the remote exercise catalog.
// Records are treated as immutable once fetched.
type ExerciseRecord struct {
	ExerciseID       string     `json:"exerciseId,omitempty"`
	Name             string     `json:"name,omitempty"`
	GifURL           string     `json:"gifUrl,omitempty"`
	TargetMuscles    []string   `json:"targetMuscles,omitempty"`
	SecondaryMuscles []string   `json:"secondaryMuscles,omitempty"`
	BodyParts        []string   `json:"bodyParts,omitempty"`
	Equipments       Equipments `json:"equipments,omitempty"`
	Instructions     []string   `json:"instructions,omitempty"`
}

// UnnamedExercise is shown in place of a missing name. It is never stored.
const UnnamedExercise = "Unnamed Exercise"

// DisplayName returns the name to render for the record.
func (r ExerciseRecord) DisplayName() string {
	if r.Name == "" {
		return UnnamedExercise
	}
	return r.Name
}

// DedupKey identifies a record across sub-queries: the exercise id (or the
// name when the id is missing) followed by the joined equipment list, or
// "none" when the record carries no equipment.
func (r ExerciseRecord) DedupKey() string {
	id := r.ExerciseID
	if id == "" {
		id = r.Name
	}
	if len(r.Equipments) == 0 {
		return id + "-none"
	}
	return id + "-" + strings.Join(r.Equipments, ",")
}

// Equipments is the equipment list of a record. The catalog sometimes sends
// a single string instead of an array; both decode to a slice.
type Equipments []string

func (e *Equipments) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*e = nil
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*e = nil
			return nil
		}
		*e = Equipments{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("equipments: %w", err)
	}
	*e = list
	return nil
}
