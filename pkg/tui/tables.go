package tui

import (
	"fmt"
	"strconv"

	"timetabler/pkg/grid"
	"timetabler/pkg/planner"
	"timetabler/pkg/schedule"
	"timetabler/pkg/timetable"

	"github.com/charmbracelet/huh"
)

// runTablesTUI offers the per-table actions: duplicate, remove, move and delete blocks.
func (a *App) runTablesTUI() error {
	tableID, err := a.chooseTable("Which timetable?")
	if err != nil {
		return err
	}

	var action string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(timetable.Heading(a.tableIndex(tableID))).
				Options(
					huh.NewOption("Duplicate", "duplicate"),
					huh.NewOption("Move a lecture block", "move"),
					huh.NewOption("Delete a lecture block", "delete"),
					huh.NewOption("Remove this timetable", "remove"),
					huh.NewOption("Back", "back"),
				).
				Value(&action),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	switch action {
	case "duplicate":
		id, err := a.planner.Duplicate(tableID)
		if err != nil {
			return err
		}
		fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Created %s\n", timetable.Heading(a.tableIndex(id)))))
	case "remove":
		if err := a.planner.RemoveTable(tableID); err != nil {
			fmt.Println(errorStyle.Render(err.Error()))
			return nil
		}
		fmt.Println(accentStyle.Render("\n✅ Timetable removed\n"))
	case "move":
		return a.runMoveTUI(tableID)
	case "delete":
		return a.runDeleteTUI(tableID)
	}
	return nil
}

// chooseBlock lists a table's blocks by title and position.
func (a *App) chooseBlock(tableID, title string) (*planner.Block, error) {
	blocks, err := a.planner.Blocks(tableID)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		fmt.Println(errorStyle.Render("This timetable is empty!"))
		return nil, nil
	}

	var options []huh.Option[int]
	for i, b := range blocks {
		options = append(options, huh.NewOption(blockLabel(b), i))
	}

	var selected int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(options...).
				Value(&selected),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return nil, err
	}
	return &blocks[selected], nil
}

func blockLabel(b planner.Block) string {
	first := b.Entry.FirstPeriod()
	last := b.Entry.Periods[len(b.Entry.Periods)-1]
	return fmt.Sprintf("%s  %s %d~%d교시  %s", b.Entry.Lecture.Title, b.Entry.Day, first, last, b.Entry.Room)
}

func (a *App) runDeleteTUI(tableID string) error {
	block, err := a.chooseBlock(tableID, "Delete which block?")
	if err != nil || block == nil {
		return err
	}

	removed, err := a.planner.OnBlockDelete(block.ID)
	if err != nil {
		return err
	}
	fmt.Println(accentStyle.Render(fmt.Sprintf("\n✅ Removed %d block(s)\n", removed)))
	a.printTable(a.tableIndex(tableID), tableID)
	return nil
}

func (a *App) runMoveTUI(tableID string) error {
	block, err := a.chooseBlock(tableID, "Move which block?")
	if err != nil || block == nil {
		return err
	}

	day := block.Entry.Day
	period := strconv.Itoa(block.Entry.FirstPeriod())

	var dayOpts []huh.Option[string]
	for _, d := range schedule.DayLabels {
		dayOpts = append(dayOpts, huh.NewOption(d, d))
	}
	var periodOpts []huh.Option[string]
	for p := 1; p <= schedule.PeriodCount; p++ {
		periodOpts = append(periodOpts, huh.NewOption(fmt.Sprintf("%d교시 %s", p, schedule.PeriodLabel(p)), strconv.Itoa(p)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Move to day").Options(dayOpts...).Value(&day),
			huh.NewSelect[string]().Title("Starting period").Options(periodOpts...).Height(8).Value(&period),
		),
	).WithTheme(GetTheme())

	if err := form.Run(); err != nil {
		return err
	}

	p, _ := strconv.Atoi(period)
	dx, dy, err := dragDelta(a.planner.Layout(), *block, day, p)
	if err != nil {
		return err
	}

	a.planner.OnDragStart(block.ID)
	if !a.planner.OnEntryDragEnd(block.ID, dx, dy) {
		fmt.Println(errorStyle.Render("The block could not be moved."))
		return nil
	}
	a.printTable(a.tableIndex(tableID), tableID)
	return nil
}

// dragDelta is the pixel offset that carries a block's top-left corner onto (day, period).
func dragDelta(layout grid.Layout, b planner.Block, day string, period int) (int, int, error) {
	target, err := layout.CellRect(grid.Coordinate{Day: schedule.DayIndex(day), Period: period - 1})
	if err != nil {
		return 0, 0, err
	}
	return target.X - b.Rect.X, target.Y - b.Rect.Y, nil
}
