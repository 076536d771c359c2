package tui

import (
	"fmt"
	"strconv"

	"timetabler/pkg/catalog"
	"timetabler/pkg/schedule"
	"timetabler/pkg/search"

	"github.com/charmbracelet/huh"
)

const anyValue = "any"

// runSearchTUI targets a table (optionally at a cell), edits the filters, then lets
// the user pick a lecture from the results.
func (a *App) runSearchTUI() error {
	if err := a.ensureCatalog(); err != nil {
		// Stay in the session; the next search starts a new fetch attempt
		fmt.Println(errorStyle.Render(err.Error()))
		return nil
	}

	tableID, err := a.chooseTable("Add lectures to which timetable?")
	if err != nil {
		return err
	}

	day, period := anyValue, anyValue
	cellForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Start from a cell?").
				Description("Picking a day and period presets those filters, like clicking the grid.").
				Options(dayOptions()...).
				Value(&day),
			huh.NewSelect[string]().
				Title("Period").
				Options(periodOptions()...).
				Height(8).
				Value(&period),
		),
	).WithTheme(GetTheme())

	if err := cellForm.Run(); err != nil {
		return err
	}

	if day != anyValue && period != anyValue {
		p, _ := strconv.Atoi(period)
		err = a.planner.OnCellClick(tableID, day, p)
	} else {
		err = a.planner.OpenSearch(tableID)
	}
	if err != nil {
		return err
	}

	session := a.planner.Search()
	opts, err := runOptionsForm(session.Options(), session.Majors())
	if err != nil {
		a.planner.CloseSearch()
		return err
	}
	a.planner.SetOptions(opts)

	lecture, err := runResults(session)
	if err != nil {
		a.planner.CloseSearch()
		return err
	}
	if lecture == nil {
		a.planner.CloseSearch()
		return nil
	}

	added, err := a.planner.OnSelect(*lecture)
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("%s has no schedulable time and was not placed.", lecture.Title)))
		return nil
	}

	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Added %s (%d blocks)\n", lecture.Title, added)))
	a.printTable(a.tableIndex(tableID), tableID)
	return nil
}

// runOptionsForm edits every filter except the text query, which the results list owns.
func runOptionsForm(current search.Options, majors []string) (search.Options, error) {
	opts := current.Clone()

	var majorOptions []huh.Option[string]
	selectedMajors := make(map[string]bool)
	for _, m := range opts.Majors {
		selectedMajors[m] = true
	}
	for _, m := range majors {
		opt := huh.NewOption(catalog.MajorLabel(m), m)
		if selectedMajors[m] {
			opt = opt.Selected(true)
		}
		majorOptions = append(majorOptions, opt)
	}

	var gradeOptions []huh.Option[int]
	for g := 1; g <= 4; g++ {
		gradeOptions = append(gradeOptions, huh.NewOption(fmt.Sprintf("%d학년", g), g))
	}

	var dayOpts []huh.Option[string]
	for _, d := range schedule.DayLabels {
		dayOpts = append(dayOpts, huh.NewOption(d, d))
	}

	var timeOpts []huh.Option[int]
	for p := 1; p <= schedule.PeriodCount; p++ {
		timeOpts = append(timeOpts, huh.NewOption(fmt.Sprintf("%d교시 %s", p, schedule.PeriodLabel(p)), p))
	}

	fields := []huh.Field{
		huh.NewSelect[int]().
			Title("Credits").
			Options(
				huh.NewOption("Any", 0),
				huh.NewOption("1", 1),
				huh.NewOption("2", 2),
				huh.NewOption("3", 3),
				huh.NewOption("4", 4),
			).
			Value(&opts.Credits),
		huh.NewMultiSelect[int]().
			Title("Grades").
			Options(gradeOptions...).
			Value(&opts.Grades),
		huh.NewMultiSelect[string]().
			Title("Days").
			Options(dayOpts...).
			Value(&opts.Days),
		huh.NewMultiSelect[int]().
			Title("Periods").
			Options(timeOpts...).
			Height(8).
			Value(&opts.Times),
	}
	if len(majorOptions) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Majors").
			Description("Space = toggle, Enter = confirm. Start typing to filter.").
			Options(majorOptions...).
			Value(&opts.Majors).
			Filterable(true).
			Height(10))
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(GetTheme())
	if err := form.Run(); err != nil {
		return current, err
	}
	return opts, nil
}

func dayOptions() []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("No, search everything", anyValue)}
	for _, d := range schedule.DayLabels {
		options = append(options, huh.NewOption(d, d))
	}
	return options
}

func periodOptions() []huh.Option[string] {
	options := []huh.Option[string]{huh.NewOption("Any", anyValue)}
	for p := 1; p <= schedule.PeriodCount; p++ {
		options = append(options, huh.NewOption(fmt.Sprintf("%d교시 %s", p, schedule.PeriodLabel(p)), strconv.Itoa(p)))
	}
	return options
}
