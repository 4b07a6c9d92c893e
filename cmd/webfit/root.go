package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:           "webfit",
		Short:         "Browse exercises by muscle group and build a shareable workout",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Write JSON instead of tables")

	rootCmd.AddCommand(newGroupsCommand(ctx))
	rootCmd.AddCommand(newEquipmentCommand(ctx))
	rootCmd.AddCommand(newBrowseCommand(ctx))
	rootCmd.AddCommand(newWorkoutCommand(ctx))
	rootCmd.AddCommand(newMCPCommand(ctx))

	return rootCmd
}
