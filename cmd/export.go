package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"timetabler/pkg/catalog"
	"timetabler/pkg/exporter"
	"timetabler/pkg/grid"
	"timetabler/pkg/planner"
	"timetabler/pkg/timetable"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Directly export lectures to an ICS file",
	Long:  `Place the given lectures on a timetable and export it to an ICS file without using the interactive TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetStringSlice("lecture")
		output, _ := cmd.Flags().GetString("output")
		weekStartRaw, _ := cmd.Flags().GetString("week-start")
		weeks, _ := cmd.Flags().GetInt("weeks")

		if weeks < 1 {
			return fmt.Errorf("--weeks must be positive")
		}
		weekStart := time.Now()
		if weekStartRaw != "" {
			parsed, err := time.Parse(time.DateOnly, weekStartRaw)
			if err != nil {
				return fmt.Errorf("--week-start must be YYYY-MM-DD: %w", err)
			}
			weekStart = parsed
		}
		if !strings.HasSuffix(output, ".ics") {
			output += ".ics"
		}

		cache := newCatalogCache(cmd.Context())
		var lectures []catalog.Lecture
		var err error

		_ = spinner.New().
			Title(fmt.Sprintf("Exporting %d lectures to %s...", len(ids), output)).
			Action(func() {
				lectures, err = cache.Get().Wait(cmd.Context())
			}).
			Run()

		if err != nil {
			return fmt.Errorf("failed to fetch catalog: %w", err)
		}

		p := planner.New(cfg.Page(), grid.DefaultLayout(), logger)
		p.SetCatalog(lectures)
		for _, id := range ids {
			if err := p.OpenSearch(timetable.InitialTableID); err != nil {
				return err
			}
			if _, err := p.SelectByID(id); err != nil {
				return fmt.Errorf("lecture %s: %w", id, err)
			}
		}

		entries, err := p.Tables().Entries(timetable.InitialTableID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return fmt.Errorf("none of the given lectures has a schedulable time")
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()

		if err := exporter.GenerateICS(entries, weekStart, weeks, file); err != nil {
			return fmt.Errorf("failed to generate ICS: %w", err)
		}

		fmt.Printf("Successfully exported %d blocks of %d lectures to %s\n", len(entries), len(ids), output)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringSliceP("lecture", "l", nil, "Lecture codes to export (e.g. 502007,502011)")
	exportCmd.Flags().StringP("output", "o", "timetable.ics", "Output file path")
	exportCmd.Flags().StringP("week-start", "w", "", "Any day of the first week, YYYY-MM-DD (defaults to this week)")
	exportCmd.Flags().Int("weeks", 16, "Number of weeks to repeat the timetable")
	exportCmd.MarkFlagRequired("lecture")
}
