package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/claude/webfit/internal/catalog"
	"github.com/claude/webfit/internal/filter"
	"github.com/claude/webfit/internal/howto"
	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/session"
	"github.com/claude/webfit/internal/workout"
	"github.com/mark3labs/mcp-go/mcp"
)

// splitList parses a comma-separated argument, dropping blank entries.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Tool definitions ---

var toolListMuscleGroups = mcp.NewTool("list_muscle_groups",
	mcp.WithDescription("List the muscle groups that can be expanded, with the catalog muscles each one covers."),
)

var toolListEquipment = mcp.NewTool("list_equipment",
	mcp.WithDescription("List the equipment filters and whether each is currently selected."),
)

var toolSelectGroup = mcp.NewTool("select_group",
	mcp.WithDescription("Expand a muscle group: fetch its exercises from the catalog (cached per session) and return them with the current equipment filters applied."),
	mcp.WithString("group", mcp.Required(), mcp.Description("Muscle group name (e.g. 'Legs', 'Biceps'). See list_muscle_groups.")),
)

var toolDeselectGroup = mcp.NewTool("deselect_group",
	mcp.WithDescription("Collapse a previously expanded muscle group."),
	mcp.WithString("group", mcp.Required(), mcp.Description("Muscle group name")),
)

var toolApplyEquipmentFilters = mcp.NewTool("apply_equipment_filters",
	mcp.WithDescription("Replace the equipment filters and return every expanded group re-filtered. No catalog requests are made. Exercises without equipment match 'body weight'."),
	mcp.WithString("equipment", mcp.Description("Comma-separated equipment (e.g. 'dumbbell, body weight'). Empty clears all filters.")),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Return the workout title, its exercises with sets and reps, and the share link."),
)

var toolAddExercise = mcp.NewTool("add_exercise",
	mcp.WithDescription("Add an exercise to the workout with 3 sets of 10 reps. Adding the same exercise for the same group twice has no effect."),
	mcp.WithString("name", mcp.Required(), mcp.Description("Exercise name")),
	mcp.WithString("group", mcp.Description("Muscle group the exercise was picked from. Defaults to 'Custom'.")),
)

var toolRemoveExercise = mcp.NewTool("remove_exercise",
	mcp.WithDescription("Remove an exercise from the workout."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout item id")),
)

var toolSetSets = mcp.NewTool("set_sets",
	mcp.WithDescription("Set the number of sets for a workout item. Values below 1 become 1."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout item id")),
	mcp.WithString("value", mcp.Required(), mcp.Description("Number of sets")),
)

var toolSetReps = mcp.NewTool("set_reps",
	mcp.WithDescription("Set the number of repetitions for a workout item. Values below 1 become 1."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout item id")),
	mcp.WithString("value", mcp.Required(), mcp.Description("Number of repetitions")),
)

var toolRenameWorkout = mcp.NewTool("rename_workout",
	mcp.WithDescription("Rename the workout. An empty title resets it to 'My Workout'."),
	mcp.WithString("title", mcp.Description("New title")),
)

var toolExerciseHowTo = mcp.NewTool("exercise_howto",
	mcp.WithDescription("Return a workout item with its demonstration gif, looking it up in the catalog when missing."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout item id")),
)

// --- Tool handlers ---

type groupInfo struct {
	Group   string   `json:"group"`
	Muscles []string `json:"muscles"`
	Loaded  bool     `json:"loaded"`
}

func (h *handlers) listMuscleGroups(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loaded := make(map[string]bool)
	for _, g := range h.sess.Loaded() {
		loaded[g] = true
	}

	var groups []groupInfo
	for _, g := range catalog.Groups() {
		muscles, _ := catalog.Muscles(g)
		groups = append(groups, groupInfo{Group: g, Muscles: muscles, Loaded: loaded[g]})
	}
	return jsonResult(groups)
}

type equipmentInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

func (h *handlers) listEquipment(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	selected := make(map[string]bool)
	for _, eq := range h.sess.Filters() {
		selected[eq] = true
	}

	var out []equipmentInfo
	for _, eq := range catalog.Equipment() {
		out = append(out, equipmentInfo{ID: eq, Name: filter.FormatDisplayName(eq), Selected: selected[eq]})
	}
	return jsonResult(out)
}

func (h *handlers) selectGroup(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, err := req.RequireString("group")
	if err != nil {
		return mcp.NewToolResultError("group parameter is required"), nil
	}

	recs, err := h.sess.SelectGroup(ctx, group)
	if errors.Is(err, session.ErrUnknownGroup) {
		return mcp.NewToolResultError("unknown muscle group " + group + "; see list_muscle_groups"), nil
	}
	if err != nil {
		h.log.Error("mcp select_group", "group", group, "error", err)
		return mcp.NewToolResultError("fetch failed: " + err.Error()), nil
	}
	if recs == nil {
		recs = []models.ExerciseRecord{}
	}

	return jsonResult(session.GroupResult{Group: group, Records: recs})
}

func (h *handlers) deselectGroup(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, err := req.RequireString("group")
	if err != nil {
		return mcp.NewToolResultError("group parameter is required"), nil
	}

	return jsonResult(map[string]any{
		"group":     group,
		"collapsed": h.sess.DeselectGroup(group),
		"loaded":    h.sess.Loaded(),
	})
}

func (h *handlers) applyEquipmentFilters(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var unknown []string
	equipment := splitList(req.GetString("equipment", ""))
	for _, eq := range equipment {
		if !catalog.IsEquipment(strings.ToLower(eq)) {
			unknown = append(unknown, eq)
		}
	}
	if len(unknown) > 0 {
		return mcp.NewToolResultError("unknown equipment: " + strings.Join(unknown, ", ") + "; see list_equipment"), nil
	}

	results := h.sess.ApplyFilters(equipment)
	return jsonResult(map[string]any{
		"filters": h.sess.Filters(),
		"groups":  results,
	})
}

func (h *handlers) getWorkout(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.workoutView())
}

func (h *handlers) addExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil || strings.TrimSpace(name) == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	item, added := h.sess.AddExercise(ctx, name, req.GetString("group", ""))
	return jsonResult(map[string]any{
		"added":   added,
		"item":    item,
		"workout": h.workoutView(),
	})
}

func (h *handlers) removeExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	if err := h.sess.Workout().RemoveItem(ctx, id); err != nil {
		return itemError(id, err), nil
	}
	return jsonResult(h.workoutView())
}

func (h *handlers) setSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.setCount(ctx, req, h.sess.Workout().SetSets)
}

func (h *handlers) setReps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.setCount(ctx, req, h.sess.Workout().SetReps)
}

func (h *handlers) setCount(ctx context.Context, req mcp.CallToolRequest, set func(context.Context, string, string) (int, error)) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	value, err := req.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("value parameter is required"), nil
	}

	if _, err := set(ctx, id, value); err != nil {
		return itemError(id, err), nil
	}
	item, _ := h.sess.Workout().Item(id)
	return jsonResult(item)
}

func (h *handlers) renameWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h.sess.Workout().Rename(ctx, req.GetString("title", ""))
	return jsonResult(h.workoutView())
}

func (h *handlers) exerciseHowTo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	item, err := h.sess.HowTo(ctx, id)
	if errors.Is(err, howto.ErrNoDemo) {
		return mcp.NewToolResultError("No demo found for " + item.DisplayName), nil
	}
	if err != nil {
		return itemError(id, err), nil
	}
	return jsonResult(item)
}

func itemError(id string, err error) *mcp.CallToolResult {
	if errors.Is(err, workout.ErrItemNotFound) {
		return mcp.NewToolResultError("no workout item with id " + id + "; see get_workout")
	}
	return mcp.NewToolResultError(err.Error())
}
