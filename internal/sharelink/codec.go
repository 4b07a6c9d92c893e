// Package sharelink converts a workout to and from the flat query-string
// form used in shareable links.
//
// A link carries the title and, for each item i (1-based), the keys
// w{i}Name, w{i}Sets, w{i}Reps and w{i}Group. Item ids and demo media are
// never part of a link, so decoding always assigns fresh ids and empty gif
// urls.
package sharelink

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/textutil"
)

// TitleKey is the query key holding the workout title.
const TitleKey = "workoutTitle"

// Param is one key/value pair of a link.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of link parameters.
type Params []Param

// Encode renders the parameters as a query string, keeping their order.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.Value))
	}
	return b.String()
}

// Values converts the parameters to url.Values.
func (p Params) Values() url.Values {
	v := make(url.Values, len(p))
	for _, kv := range p {
		v.Add(kv.Key, kv.Value)
	}
	return v
}

func itemKey(i int, field string) string {
	return "w" + strconv.Itoa(i) + field
}

// Encode derives the link parameters for a workout. An empty title is
// omitted.
func Encode(state models.WorkoutState) Params {
	p := make(Params, 0, 1+4*len(state.Items))
	if state.Title != "" {
		p = append(p, Param{TitleKey, state.Title})
	}
	for i, it := range state.Items {
		n := i + 1
		p = append(p,
			Param{itemKey(n, "Name"), it.Name},
			Param{itemKey(n, "Sets"), strconv.Itoa(it.Sets)},
			Param{itemKey(n, "Reps"), strconv.Itoa(it.Reps)},
			Param{itemKey(n, "Group"), it.MuscleGroup},
		)
	}
	return p
}

// HasWorkout reports whether q carries a workout at all.
func HasWorkout(q url.Values) bool {
	return q.Has(TitleKey) || q.Has(itemKey(1, "Name"))
}

// Decode rebuilds a workout from link parameters. Items are read from index
// 1 upward until the first missing name. Missing or invalid numbers fall
// back to the default sets and reps, a missing group becomes "Custom", and
// every item gets a fresh id from newID.
func Decode(q url.Values, newID func() string) models.WorkoutState {
	state := models.WorkoutState{Title: q.Get(TitleKey)}
	if state.Title == "" {
		state.Title = models.DefaultTitle
	}

	for i := 1; ; i++ {
		name := q.Get(itemKey(i, "Name"))
		if name == "" {
			break
		}
		group := q.Get(itemKey(i, "Group"))
		if group == "" {
			group = models.CustomGroup
		}
		state.Items = append(state.Items, models.WorkoutItem{
			ID:          newID(),
			Name:        name,
			DisplayName: textutil.TitleCase(name),
			MuscleGroup: group,
			Sets:        textutil.PositiveInt(q.Get(itemKey(i, "Sets")), models.DefaultSets),
			Reps:        textutil.PositiveInt(q.Get(itemKey(i, "Reps")), models.DefaultReps),
		})
	}
	return state
}

// ShareURL returns page with the workout encoded as its query string.
// Any query or fragment already on page is replaced.
func ShareURL(page string, state models.WorkoutState) (string, error) {
	u, err := url.Parse(page)
	if err != nil {
		return "", err
	}
	u.RawQuery = Encode(state).Encode()
	u.Fragment = ""
	return u.String(), nil
}
