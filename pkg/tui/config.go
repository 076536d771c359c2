package tui

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"timetabler/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// RunConfigTUI launches the interactive experience for managing configurations
func RunConfigTUI() error {
	for {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var action string

		initialForm := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Configuration Settings").
					Options(
						huh.NewOption("Set Accent Color (Theme)", "theme"),
						huh.NewOption("Set Catalog URL", "catalog"),
						huh.NewOption("Set Search Page Size", "page"),
						huh.NewOption("View Current Config", "view"),
						huh.NewOption("Back to Main Menu", "back"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := initialForm.Run(); err != nil {
			return err
		}

		switch action {
		case "back":
			return nil
		case "theme":
			err = runSetThemeTUI(cfg)
		case "catalog":
			err = runSetCatalogTUI(cfg)
		case "page":
			err = runSetPageSizeTUI(cfg)
		case "view":
			fmt.Println(accentStyle.Render("\n--- Current Configuration (~/.timetabler.json) ---"))
			fmt.Printf("Catalog URL: %s\n", cfg.Catalog())
			fmt.Printf("Page Size: %d\n", cfg.Page())
			fmt.Printf("Snapshot TTL: %s (disabled: %t)\n", cfg.SnapshotDuration(), cfg.DisableSnapshot)
			fmt.Printf("Listen Address: %s\n", cfg.Addr())
			fmt.Printf("Accent Color: %s\n", cfg.AccentColor)
			fmt.Println()
		}

		if err != nil {
			return err
		}
	}
}

func runSetCatalogTUI(cfg *config.AppConfig) error {
	input := cfg.Catalog()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Catalog base URL").
				Description("The lecture lists are fetched from here. Takes effect on the next start.").
				Value(&input).
				Validate(func(s string) error {
					u, err := url.Parse(s)
					if err != nil || u.Scheme == "" || u.Host == "" {
						return fmt.Errorf("must be an absolute URL such as http://localhost:5173")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.CatalogURL = strings.TrimRight(input, "/")
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Catalog URL saved: %s\n", cfg.CatalogURL)))
	return nil
}

func runSetPageSizeTUI(cfg *config.AppConfig) error {
	input := strconv.Itoa(cfg.Page())

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Search results per page").
				Value(&input).
				Validate(func(s string) error {
					if n, err := strconv.Atoi(s); err != nil || n < 1 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	cfg.PageSize, _ = strconv.Atoi(input)
	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Page size saved: %d\n", cfg.PageSize)))
	return nil
}

func colorBlock(color string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("██")
}

func runSetThemeTUI(cfg *config.AppConfig) error {
	var input string

	inputForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose an Accent Color").
				Description("Select a curated Charm style or choose Custom to enter your own Hex.").
				Options(
					huh.NewOption(fmt.Sprintf("%s Violet", colorBlock("99")), "99"),
					huh.NewOption(fmt.Sprintf("%s Sakura Pink", colorBlock("205")), "205"),
					huh.NewOption(fmt.Sprintf("%s Ocean Blue", colorBlock("86")), "86"),
					huh.NewOption(fmt.Sprintf("%s Matrix Green", colorBlock("42")), "42"),
					huh.NewOption("✨ Custom Hex Code", "custom"),
				).
				Value(&input),
		),
	).WithTheme(GetTheme())

	if err := inputForm.Run(); err != nil {
		return err
	}

	if input == "custom" {
		var hexInput string
		hexForm := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Enter a Hex Color Code").
					Description("Include the `#` symbol. Example: #FF00FF").
					Placeholder("#").
					Value(&hexInput).
					Validate(validateHex),
			),
		).WithTheme(GetTheme())

		if err := hexForm.Run(); err != nil {
			return err
		}
		cfg.AccentColor = hexInput
	} else {
		cfg.AccentColor = input
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Println(accentStyle.Render("\n✅ The theme color is now saved.\n"))
	return nil
}

func validateHex(str string) error {
	if len(str) != 7 || !strings.HasPrefix(str, "#") {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	if _, err := strconv.ParseUint(str[1:], 16, 32); err != nil {
		return fmt.Errorf("must be a valid 6-character hex code starting with #")
	}
	return nil
}
