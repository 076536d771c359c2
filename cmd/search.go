package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"timetabler/pkg/catalog"
	"timetabler/pkg/schedule"
	"timetabler/pkg/search"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search the lecture catalog",
	Long:  `Filter the lecture catalog by text, grade, day, period, major and credits and print the matching lectures page by page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		grades, _ := cmd.Flags().GetIntSlice("grade")
		days, _ := cmd.Flags().GetStringSlice("day")
		times, _ := cmd.Flags().GetIntSlice("time")
		majors, _ := cmd.Flags().GetStringSlice("major")
		credits, _ := cmd.Flags().GetInt("credits")
		pages, _ := cmd.Flags().GetInt("pages")
		asJSON, _ := cmd.Flags().GetBool("json")

		cache := newCatalogCache(cmd.Context())
		var lectures []catalog.Lecture
		var err error

		_ = spinner.New().
			Title(fmt.Sprintf("Fetching lecture catalog from %s...", cfg.Catalog())).
			Action(func() {
				lectures, err = cache.Get().Wait(cmd.Context())
			}).
			Run()

		if err != nil {
			return fmt.Errorf("failed to fetch catalog: %w", err)
		}

		session := search.NewSession(cfg.Page())
		session.SetCatalog(lectures)
		session.SetOptions(search.Options{
			Query:   query,
			Grades:  grades,
			Days:    days,
			Times:   times,
			Majors:  resolveMajors(session.Majors(), majors),
			Credits: credits,
		})

		for i := 1; i < pages; i++ {
			if !session.RequestMore() {
				break
			}
		}

		visible := session.Visible()
		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(visible)
		}

		if len(visible) == 0 {
			fmt.Println("No lectures match the given filters.")
			return nil
		}

		title := cases.Title(language.English)
		fmt.Printf("\n--- 🔍 %d of %d lectures (page %d/%d) ---\n", len(visible), session.Total(), session.Page(), session.LastPage())
		for _, l := range visible {
			fmt.Printf("%-10s %s\n", l.ID, l.Title)
			fmt.Printf("           grade %d · %s credits · %s\n", l.Grade, l.Credits, title.String(catalog.MajorLabel(l.Major)))
			if slots := schedule.Parse(l.Schedule); len(slots) > 0 {
				fmt.Printf("           %s\n", formatSlots(slots))
			}
		}
		if session.Page() < session.LastPage() {
			fmt.Printf("\nUse --pages %d to show more.\n", session.Page()+1)
		}
		return nil
	},
}

func formatSlots(slots []schedule.Slot) string {
	parts := make([]string, 0, len(slots))
	for _, s := range slots {
		first, last := s.Periods[0], s.Periods[len(s.Periods)-1]
		part := fmt.Sprintf("%s %s~%s", s.Day, schedule.PeriodLabel(first)[:5], schedule.PeriodLabel(last)[6:])
		if s.Room != "" {
			part += " (" + s.Room + ")"
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// resolveMajors maps user input to catalog majors: the raw value, its label or its tag.
func resolveMajors(all, wanted []string) []string {
	if len(wanted) == 0 {
		return nil
	}
	want := make(map[string]bool, len(wanted))
	for _, w := range wanted {
		want[w] = true
	}

	var resolved []string
	for _, m := range all {
		if want[m] || want[catalog.MajorLabel(m)] || want[catalog.MajorTag(m)] {
			resolved = append(resolved, m)
		}
	}
	if len(resolved) == 0 {
		// Keep the filter so nothing matches, rather than silently matching everything
		return wanted
	}
	return resolved
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringP("query", "q", "", "Text matched against lecture title and code (case-insensitive)")
	searchCmd.Flags().IntSliceP("grade", "g", nil, "Grades to include (e.g. 1,2)")
	searchCmd.Flags().StringSliceP("day", "d", nil, "Days to include (월,화,수,목,금,토)")
	searchCmd.Flags().IntSliceP("time", "t", nil, "Periods to include (1-24)")
	searchCmd.Flags().StringSliceP("major", "m", nil, "Majors to include, by full name or department")
	searchCmd.Flags().IntP("credits", "c", 0, "Credits (0 = any)")
	searchCmd.Flags().IntP("pages", "p", 1, "Number of result pages to reveal")
	searchCmd.Flags().Bool("json", false, "Print the results as JSON")
}
