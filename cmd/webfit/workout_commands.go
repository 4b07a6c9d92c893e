package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claude/webfit/internal/catalog"
	"github.com/claude/webfit/internal/howto"
	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/sharelink"
	"github.com/claude/webfit/internal/workout"
)

func newWorkoutCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workout",
		Short: "Show and edit the workout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				return printWorkout(cmd, ctx, a)
			})
		},
	}

	cmd.AddCommand(
		newWorkoutShowCommand(ctx),
		newWorkoutAddCommand(ctx),
		newWorkoutRemoveCommand(ctx),
		newWorkoutCountCommand(ctx, "sets", "Set the number of sets of an item"),
		newWorkoutCountCommand(ctx, "reps", "Set the number of repetitions of an item"),
		newWorkoutRenameCommand(ctx),
		newWorkoutHowToCommand(ctx),
		newWorkoutOpenCommand(ctx),
		newWorkoutClearCommand(ctx),
		newWorkoutLinkCommand(ctx),
	)
	return cmd
}

func newWorkoutShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				return printWorkout(cmd, ctx, a)
			})
		},
	}
}

func newWorkoutAddCommand(ctx *commandContext) *cobra.Command {
	var group string
	var offline bool

	cmd := &cobra.Command{
		Use:   "add <exercise name>",
		Short: "Add an exercise with 3 sets of 10 reps",
		Long: "Add an exercise to the workout. When --group names a catalog group the group is " +
			"fetched first so the catalog name and demo gif are recorded; --offline skips that.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.Join(args, " ")
			return ctx.withApp(cmd, func(a *app) error {
				if !offline && catalog.IsGroup(group) {
					if _, err := a.sess.SelectGroup(cmd.Context(), group); err != nil {
						a.log.Warn("catalog lookup skipped", "group", group, "error", err)
					}
				}

				item, added := a.sess.AddExercise(cmd.Context(), name, group)
				if !added {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is already in the workout\n", name)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", item.DisplayName, item.MuscleGroup)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Muscle group the exercise belongs to (default \"Custom\")")
	cmd.Flags().BoolVar(&offline, "offline", false, "Do not look the exercise up in the catalog")
	return cmd
}

func newWorkoutRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item>",
		Short: "Remove an item by id or position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				item, err := lookupItem(a, args[0])
				if err != nil {
					return err
				}
				if err := a.sess.Workout().RemoveItem(cmd.Context(), item.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", item.DisplayName)
				return nil
			})
		},
	}
}

func newWorkoutCountCommand(ctx *commandContext, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <item> <value>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				item, err := lookupItem(a, args[0])
				if err != nil {
					return err
				}
				set := a.sess.Workout().SetSets
				if use == "reps" {
					set = a.sess.Workout().SetReps
				}
				n, err := set(cmd.Context(), item.ID, args[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s set to %d\n", item.DisplayName, use, n)
				return nil
			})
		},
	}
}

func newWorkoutRenameCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rename [title]",
		Short: "Rename the workout; no title resets it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				title := a.sess.Workout().Rename(cmd.Context(), strings.Join(args, " "))
				fmt.Fprintf(cmd.OutOrStdout(), "Workout renamed to %q\n", title)
				return nil
			})
		},
	}
}

func newWorkoutHowToCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "howto <item>",
		Short: "Show the demo gif of an item, looking it up when missing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				item, err := lookupItem(a, args[0])
				if err != nil {
					return err
				}
				item, err = a.sess.HowTo(cmd.Context(), item.ID)
				if errors.Is(err, howto.ErrNoDemo) {
					fmt.Fprintf(cmd.OutOrStdout(), "No demo found for %s\n", item.DisplayName)
					return nil
				}
				if err != nil {
					return err
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, item)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", item.DisplayName, item.GifURL)
				return nil
			})
		},
	}
}

func newWorkoutOpenCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "open <link>",
		Short: "Load a shared workout link, replacing the current workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := ctx.location()
			if err != nil {
				return err
			}
			if err := loc.Open(args[0]); err != nil {
				return err
			}
			return ctx.withApp(cmd, func(a *app) error {
				return printWorkout(cmd, ctx, a)
			})
		},
	}
}

func newWorkoutClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every item and reset the title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				a.sess.Workout().Clear(cmd.Context())
				fmt.Fprintln(cmd.OutOrStdout(), "Workout cleared")
				return nil
			})
		},
	}
}

func newWorkoutLinkCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "link",
		Short: "Print the share link of the workout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withApp(cmd, func(a *app) error {
				link, err := sharelink.ShareURL(a.cfg.Share.BaseURL, a.sess.Workout().State())
				if err != nil {
					return fmt.Errorf("build share link: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), link)
				return nil
			})
		},
	}
}

// lookupItem finds an item by id, or by 1-based position in the workout.
func lookupItem(a *app, ref string) (models.WorkoutItem, error) {
	mgr := a.sess.Workout()
	if item, ok := mgr.Item(ref); ok {
		return item, nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		items := mgr.State().Items
		if n >= 1 && n <= len(items) {
			return items[n-1], nil
		}
	}
	return models.WorkoutItem{}, fmt.Errorf("%s: %w; see `webfit workout show`", ref, workout.ErrItemNotFound)
}

func printWorkout(cmd *cobra.Command, ctx *commandContext, a *app) error {
	st := a.sess.Workout().State()
	link, err := sharelink.ShareURL(a.cfg.Share.BaseURL, st)
	if err != nil {
		return fmt.Errorf("build share link: %w", err)
	}

	if ctx.jsonOutput() {
		items := st.Items
		if items == nil {
			items = []models.WorkoutItem{}
		}
		return writeJSON(cmd, map[string]any{"title": st.Title, "items": items, "share_link": link})
	}

	out := cmd.OutOrStdout()
	if len(st.Items) == 0 {
		fmt.Fprintf(out, "%s is empty. Add exercises with `webfit workout add`.\n", st.Title)
		return nil
	}

	rows := make([][]string, 0, len(st.Items))
	for i, it := range st.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			it.DisplayName,
			it.MuscleGroup,
			strconv.Itoa(it.Sets),
			strconv.Itoa(it.Reps),
			it.ID,
		})
	}
	writeTable(out, st.Title, []string{"#", "Exercise", "Group", "Sets", "Reps", "ID"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft})
	fmt.Fprintf(out, "Share: %s\n", link)
	return nil
}
