package cmd

import (
	"fmt"
	"net/url"
	"strings"

	"timetabler/pkg/catalog"
	"timetabler/pkg/config"
	"timetabler/pkg/tui"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage timetabler configuration",
	Long:  "View or edit your local configuration settings (like the catalog URL and the search page size).",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Edit the file as saved, without environment overrides
		saved, err := config.Load()
		if err != nil {
			return err
		}

		changed := false

		if setURL, _ := cmd.Flags().GetString("set-catalog-url"); setURL != "" {
			u, err := url.Parse(setURL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("invalid catalog URL '%s'", setURL)
			}

			// Check that the catalog actually answers before saving it
			client := catalog.NewClient(strings.TrimRight(setURL, "/"))
			lectures, err := client.FetchLectures(cmd.Context(), catalog.MajorsPath)
			if err != nil {
				return fmt.Errorf("could not reach catalog: %w", err)
			}

			saved.CatalogURL = client.BaseURL()
			changed = true
			fmt.Printf("✅ Catalog URL saved as: %s (%d lectures in %s)\n", saved.CatalogURL, len(lectures), catalog.MajorsPath)
		}

		if cmd.Flags().Changed("set-page-size") {
			size, _ := cmd.Flags().GetInt("set-page-size")
			if size < 1 {
				return fmt.Errorf("page size must be positive")
			}
			saved.PageSize = size
			changed = true
			fmt.Printf("✅ Page size saved as: %d\n", size)
		}

		if color, _ := cmd.Flags().GetString("set-accent-color"); color != "" {
			saved.AccentColor = color
			changed = true
			fmt.Printf("✅ Accent color saved as: %s\n", color)
		}

		if changed {
			return config.Save(saved)
		}

		// If no flags are given, launch the interactive TUI flow
		return tui.RunConfigTUI()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringP("set-catalog-url", "u", "", "Set the base URL the lecture catalog is fetched from")
	configCmd.Flags().Int("set-page-size", 0, "Set how many search results are revealed per page")
	configCmd.Flags().String("set-accent-color", "", "Set the accent color (ANSI number or #RRGGBB)")
}
