package cmd

import (
	"timetabler/pkg/grid"
	"timetabler/pkg/planner"
	"timetabler/pkg/tui"

	"github.com/spf13/cobra"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Launch the interactive TUI",
	Long:  `Launch the Text User Interface to search lectures, build timetables, and export them interactively.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cache := newCatalogCache(ctx)
		// Start fetching while the menu is shown
		cache.Get()

		p := planner.New(cfg.Page(), grid.DefaultLayout(), logger)
		return tui.NewApp(ctx, cache, p).Run()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
