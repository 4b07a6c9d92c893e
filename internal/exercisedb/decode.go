package exercisedb

import (
	"bytes"
	"encoding/json"

	"github.com/claude/webfit/internal/models"
)

// ResponseShape names the body layouts the catalog is known to return.
type ResponseShape int

const (
	ShapeUnknown  ResponseShape = iota
	ShapeArray                  // [ {...}, ... ]
	ShapeEnvelope               // {"success": true, "data": [ ... ]}
)

func (s ResponseShape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeEnvelope:
		return "envelope"
	default:
		return "unknown"
	}
}

type envelope struct {
	Success bool                    `json:"success"`
	Data    []models.ExerciseRecord `json:"data"`
}

// DetectShape classifies a response body without fully decoding it.
func DetectShape(body []byte) ResponseShape {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return ShapeUnknown
	}
	switch body[0] {
	case '[':
		return ShapeArray
	case '{':
		return ShapeEnvelope
	default:
		return ShapeUnknown
	}
}

// DecodeExercises maps either accepted body shape to a plain record list.
// An envelope without success, a body that fails to decode or any other
// shape yields an empty list.
func DecodeExercises(body []byte) []models.ExerciseRecord {
	switch DetectShape(body) {
	case ShapeArray:
		var list []models.ExerciseRecord
		if err := json.Unmarshal(body, &list); err != nil {
			return []models.ExerciseRecord{}
		}
		if list == nil {
			return []models.ExerciseRecord{}
		}
		return list
	case ShapeEnvelope:
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return []models.ExerciseRecord{}
		}
		if !env.Success || env.Data == nil {
			return []models.ExerciseRecord{}
		}
		return env.Data
	default:
		return []models.ExerciseRecord{}
	}
}
