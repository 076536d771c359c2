package tui

import (
	"strings"

	"timetabler/pkg/planner"
	"timetabler/pkg/schedule"

	"github.com/charmbracelet/lipgloss"
)

const (
	labelWidth = 12
	cellWidth  = 12
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(labelWidth).Foreground(lipgloss.Color("245"))
	emptyStyle   = lipgloss.NewStyle().Width(cellWidth).Foreground(lipgloss.Color("238"))
	dayStyle     = lipgloss.NewStyle().Width(cellWidth).Bold(true).Align(lipgloss.Center)
	blockStyle   = lipgloss.NewStyle().Width(cellWidth).MaxWidth(cellWidth).MaxHeight(1).Foreground(lipgloss.Color("0"))
)

type gridCell struct {
	text  string
	color string
	used  bool
}

// renderTable draws a timetable as a period by day grid. Rows after the last
// occupied evening period are left out.
func renderTable(heading string, blocks []planner.Block, active bool) string {
	var cells [schedule.PeriodCount][]gridCell
	for p := range cells {
		cells[p] = make([]gridCell, len(schedule.DayLabels))
	}

	lastRow := schedule.ShortPeriods
	for _, b := range blocks {
		day := schedule.DayIndex(b.Entry.Day)
		if day < 0 {
			continue
		}
		for i, period := range b.Entry.Periods {
			if period < 1 || period > schedule.PeriodCount {
				continue
			}
			cell := gridCell{color: b.Color, used: true}
			switch i {
			case 0:
				cell.text = b.Entry.Lecture.Title
			case 1:
				cell.text = b.Entry.Room
			}
			cells[period-1][day] = cell
			lastRow = max(lastRow, period)
		}
	}

	var rows []string

	title := heading
	if active {
		title += " ◆"
	}
	rows = append(rows, headingStyle.Render(accentStyle.Render(title)))

	header := []string{labelStyle.Render("")}
	for _, d := range schedule.DayLabels {
		header = append(header, dayStyle.Render(d))
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, header...))

	for p := 0; p < lastRow; p++ {
		line := []string{labelStyle.Render(schedule.PeriodLabel(p + 1))}
		for _, cell := range cells[p] {
			if !cell.used {
				line = append(line, emptyStyle.Render("·"))
				continue
			}
			line = append(line, blockStyle.Background(lipgloss.Color(cell.color)).Render(" "+cell.text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, line...))
	}

	return strings.Join(rows, "\n")
}
