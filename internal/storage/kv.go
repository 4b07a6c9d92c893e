// Package storage is the durable key/value store that keeps a client's
// workout across restarts.
package storage

import "context"

// WorkoutKey addresses the serialized workout state.
const WorkoutKey = "webfit-workout-state"

// KV is a string key/value store. Values are whole documents; writes always
// replace the previous value.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}
