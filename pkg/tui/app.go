package tui

import (
	"context"
	"fmt"

	"timetabler/pkg/catalog"
	"timetabler/pkg/config"
	"timetabler/pkg/planner"
	"timetabler/pkg/timetable"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"github.com/charmbracelet/lipgloss"
)

const defaultAccent = "99"

var (
	// Fallbacks until GetTheme has read the saved accent color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

// GetTheme loads the saved accent color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := defaultAccent

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Keep plain printed output in the same color as the forms
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a huh.Theme built around the given lipgloss color string.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// App is one interactive planning session. Timetables live for the session only.
type App struct {
	ctx     context.Context
	cache   *catalog.Cache
	planner *planner.Planner
	loaded  bool
}

func NewApp(ctx context.Context, cache *catalog.Cache, p *planner.Planner) *App {
	return &App{ctx: ctx, cache: cache, planner: p}
}

// Run shows the main menu until the user quits.
func (a *App) Run() error {
	fmt.Println(accentStyle.Render("Welcome to timetabler!"))

	for {
		var action string

		menu := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("🔍 Search & Add Lectures", "search"),
						huh.NewOption("📅 View Timetables", "view"),
						huh.NewOption("🗂️ Manage Timetables", "tables"),
						huh.NewOption("📤 Export Timetable", "export"),
						huh.NewOption("⚙️ Settings", "config"),
						huh.NewOption("🚪 Quit", "quit"),
					).
					Value(&action),
			),
		).WithTheme(GetTheme())

		if err := menu.Run(); err != nil {
			return err
		}

		var err error
		switch action {
		case "quit":
			return nil
		case "search":
			err = a.runSearchTUI()
		case "view":
			a.printTables()
		case "tables":
			err = a.runTablesTUI()
		case "export":
			err = a.runExportTUI()
		case "config":
			err = RunConfigTUI()
		}
		if err != nil {
			return err
		}
	}
}

// ensureCatalog waits for the catalog behind a spinner and installs it once.
func (a *App) ensureCatalog() error {
	if a.loaded {
		return nil
	}

	var lectures []catalog.Lecture
	var err error

	_ = spinner.New().
		Title("Fetching lecture catalog...").
		Action(func() {
			lectures, err = a.cache.Get().Wait(a.ctx)
		}).
		Run()

	if err != nil {
		return fmt.Errorf("failed to fetch catalog: %w", err)
	}

	a.planner.SetCatalog(lectures)
	a.loaded = true
	return nil
}

// chooseTable asks for a table when there is more than one.
func (a *App) chooseTable(title string) (string, error) {
	ids := a.planner.Tables().IDs()
	if len(ids) == 1 {
		return ids[0], nil
	}

	var options []huh.Option[string]
	for i, id := range ids {
		options = append(options, huh.NewOption(timetable.Heading(i), id))
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

func (a *App) printTables() {
	for i, id := range a.planner.Tables().IDs() {
		a.printTable(i, id)
	}
}

func (a *App) printTable(index int, id string) {
	blocks, err := a.planner.Blocks(id)
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		return
	}
	fmt.Println(renderTable(timetable.Heading(index), blocks, a.planner.ActiveTable() == id))
	fmt.Println()
}

func (a *App) tableIndex(id string) int {
	for i, t := range a.planner.Tables().IDs() {
		if t == id {
			return i
		}
	}
	return -1
}
