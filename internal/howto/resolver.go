// Package howto finds demonstration media for workout items that were added
// without one, such as items decoded from a shared link.
package howto

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/claude/webfit/internal/catalog"
	"github.com/claude/webfit/internal/models"
)

// ErrNoDemo means no demonstration media could be found for an item.
var ErrNoDemo = errors.New("no demo found")

// Finder looks up a catalog record by name within a muscle group.
// *exercisedb.Service satisfies it.
type Finder interface {
	FindByName(ctx context.Context, name, group string) (models.ExerciseRecord, bool, error)
}

// GifSetter records resolved media. *workout.Manager satisfies it.
type GifSetter interface {
	ResolveGif(ctx context.Context, id, gifURL string) error
}

// Resolver fills in missing demo media from the exercise catalog.
type Resolver struct {
	finder Finder
	setter GifSetter
	log    *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(finder Finder, setter GifSetter, log *slog.Logger) *Resolver {
	return &Resolver{finder: finder, setter: setter, log: log}
}

// Resolve returns item with its demo media. Items that already have media
// are returned untouched without catalog access. Otherwise the item's group
// is fetched and searched for the item's name; a hit is saved through the
// setter. Any miss, including a fetch failure, returns ErrNoDemo.
func (r *Resolver) Resolve(ctx context.Context, item models.WorkoutItem) (models.WorkoutItem, error) {
	if item.GifURL != "" {
		return item, nil
	}
	if !catalog.IsGroup(item.MuscleGroup) {
		return item, fmt.Errorf("%s: %w", item.Name, ErrNoDemo)
	}

	rec, ok, err := r.finder.FindByName(ctx, item.Name, item.MuscleGroup)
	if err != nil {
		r.log.Warn("demo lookup failed", "exercise", item.Name, "group", item.MuscleGroup, "error", err)
		return item, fmt.Errorf("%s: %w", item.Name, ErrNoDemo)
	}
	if !ok || rec.GifURL == "" {
		return item, fmt.Errorf("%s: %w", item.Name, ErrNoDemo)
	}

	item.GifURL = rec.GifURL
	if err := r.setter.ResolveGif(ctx, item.ID, item.GifURL); err != nil {
		// The item may have been removed while the lookup ran.
		r.log.Warn("saving demo failed", "id", item.ID, "error", err)
	}
	return item, nil
}
