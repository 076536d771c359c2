package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"timetabler/pkg/exporter"

	"github.com/charmbracelet/huh"
)

// runExportTUI writes one timetable to an .ics file as repeating weekly events.
func (a *App) runExportTUI() error {
	tableID, err := a.chooseTable("Export which timetable?")
	if err != nil {
		return err
	}

	entries, err := a.planner.Tables().Entries(tableID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println(errorStyle.Render("This timetable is empty!"))
		return nil
	}

	// Defaults
	outputFile := "timetable.ics"
	weekStart := time.Now().Format(time.DateOnly)
	weeks := "16"

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First week (any day in it)").
				Placeholder("YYYY-MM-DD").
				Value(&weekStart).
				Validate(func(s string) error {
					if _, err := time.Parse(time.DateOnly, s); err != nil {
						return fmt.Errorf("use the format YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewInput().
				Title("Number of weeks").
				Value(&weeks).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 1 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Output file name").
				Value(&outputFile).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("file name cannot be empty")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	if !strings.HasSuffix(outputFile, ".ics") {
		outputFile += ".ics"
	}
	start, _ := time.Parse(time.DateOnly, weekStart)
	n, _ := strconv.Atoi(weeks)

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := exporter.GenerateICS(entries, start, n, file); err != nil {
		return fmt.Errorf("failed to generate ICS: %w", err)
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\nSuccess! Exported %d blocks over %d weeks to %s", len(entries), n, outputFile)))
	return nil
}
