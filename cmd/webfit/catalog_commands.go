package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/claude/webfit/internal/catalog"
	"github.com/claude/webfit/internal/filter"
	"github.com/claude/webfit/internal/models"
	"github.com/claude/webfit/internal/session"
)

func newGroupsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "List muscle groups and the catalog muscles they cover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := catalog.Groups()
			if ctx.jsonOutput() {
				out := make([]map[string]any, 0, len(groups))
				for _, g := range groups {
					muscles, _ := catalog.Muscles(g)
					out = append(out, map[string]any{"group": g, "muscles": muscles})
				}
				return writeJSON(cmd, out)
			}

			rows := make([][]string, 0, len(groups))
			for _, g := range groups {
				muscles, _ := catalog.Muscles(g)
				rows = append(rows, []string{g, strings.Join(muscles, ", ")})
			}
			writeTable(cmd.OutOrStdout(), "", []string{"Group", "Muscles"}, rows, nil)
			return nil
		},
	}
}

func newEquipmentCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "equipment",
		Short: "List equipment filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			equipment := catalog.Equipment()
			if ctx.jsonOutput() {
				return writeJSON(cmd, equipment)
			}

			rows := make([][]string, 0, len(equipment))
			for _, eq := range equipment {
				rows = append(rows, []string{eq, filter.FormatDisplayName(eq)})
			}
			writeTable(cmd.OutOrStdout(), "", []string{"ID", "Name"}, rows, nil)
			return nil
		},
	}
}

func newBrowseCommand(ctx *commandContext) *cobra.Command {
	var equipment []string

	cmd := &cobra.Command{
		Use:   "browse <group>...",
		Short: "Fetch the exercises of one or more muscle groups",
		Long: "Fetch the exercises of one or more muscle groups from the catalog. " +
			"--equipment narrows the list; exercises without equipment match \"body weight\".",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, eq := range equipment {
				if !catalog.IsEquipment(strings.ToLower(strings.TrimSpace(eq))) {
					return fmt.Errorf("unknown equipment %q; see `webfit equipment`", eq)
				}
			}

			return ctx.withApp(cmd, func(a *app) error {
				a.sess.ApplyFilters(equipment)
				for _, g := range args {
					if _, err := a.sess.SelectGroup(cmd.Context(), g); err != nil {
						return fmt.Errorf("browse %s: %w", g, err)
					}
				}

				results := a.sess.Results()
				if ctx.jsonOutput() {
					return writeJSON(cmd, results)
				}
				for _, r := range results {
					printGroup(cmd, r)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&equipment, "equipment", "e", nil, "Only show exercises using this equipment (repeatable)")
	return cmd
}

func printGroup(cmd *cobra.Command, r session.GroupResult) {
	out := cmd.OutOrStdout()
	if len(r.Records) == 0 {
		fmt.Fprintf(out, "%s: no exercises found\n", r.Group)
		return
	}

	rows := make([][]string, 0, len(r.Records))
	for i, rec := range r.Records {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			rec.DisplayName(),
			equipmentLabel(rec),
			strings.Join(rec.TargetMuscles, ", "),
		})
	}
	title := fmt.Sprintf("%s (%d)", r.Group, len(r.Records))
	writeTable(out, title, []string{"#", "Exercise", "Equipment", "Target"}, rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft})
}

func equipmentLabel(rec models.ExerciseRecord) string {
	if len(rec.Equipments) == 0 {
		return filter.FormatDisplayName(catalog.BodyWeight)
	}
	names := make([]string, len(rec.Equipments))
	for i, eq := range rec.Equipments {
		names[i] = filter.FormatDisplayName(eq)
	}
	return strings.Join(names, ", ")
}
