package grid

import (
	"errors"

	"timetabler/pkg/schedule"
)

var (
	ErrOutOfGrid    = errors.New("coordinate is outside the grid")
	ErrUnknownDay   = errors.New("unknown day label")
	ErrEmptyPeriods = errors.New("slot has no periods")
)

// Rect is a pixel rectangle.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Center returns the pixel at the middle of r.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Coordinate addresses one cell. Period is 0-based; labels shown to users are Period+1.
type Coordinate struct {
	Day    int `json:"day"`
	Period int `json:"period"`
}

// Layout describes the pixel geometry of a timetable grid: a header row of height
// OriginY, a label column of width OriginX, then Days columns of CellWidth and
// Periods rows. The first ShortPeriods rows are ShortRowHeight tall, the rest LongRowHeight.
type Layout struct {
	CellWidth      int
	ShortRowHeight int
	LongRowHeight  int
	OriginX        int
	OriginY        int
	Days           int
	Periods        int
	ShortPeriods   int
}

// DefaultLayout is the geometry used by the web and terminal views.
func DefaultLayout() Layout {
	return Layout{
		CellWidth:      80,
		ShortRowHeight: 30,
		LongRowHeight:  50,
		OriginX:        120,
		OriginY:        40,
		Days:           len(schedule.DayLabels),
		Periods:        schedule.PeriodCount,
		ShortPeriods:   schedule.ShortPeriods,
	}
}

// RowHeight returns the height of a 0-based period row.
func (l Layout) RowHeight(period int) int {
	if period < l.ShortPeriods {
		return l.ShortRowHeight
	}
	return l.LongRowHeight
}

// rowOffset is the distance from OriginY to the top of a 0-based period row.
func (l Layout) rowOffset(period int) int {
	short := min(period, l.ShortPeriods)
	long := max(0, period-l.ShortPeriods)
	return short*l.ShortRowHeight + long*l.LongRowHeight
}

// Width is the width of the day columns, excluding the label column.
func (l Layout) Width() int { return l.Days * l.CellWidth }

// Height is the height of the period rows, excluding the header row.
func (l Layout) Height() int { return l.rowOffset(l.Periods) }

// Contains reports whether c addresses a cell of the grid.
func (l Layout) Contains(c Coordinate) bool {
	return c.Day >= 0 && c.Day < l.Days && c.Period >= 0 && c.Period < l.Periods
}

// CellRect maps a cell to its pixel rectangle.
func (l Layout) CellRect(c Coordinate) (Rect, error) {
	if !l.Contains(c) {
		return Rect{}, ErrOutOfGrid
	}
	return Rect{
		X: l.OriginX + c.Day*l.CellWidth,
		Y: l.OriginY + l.rowOffset(c.Period),
		W: l.CellWidth,
		H: l.RowHeight(c.Period),
	}, nil
}

// BlockRect maps a placed block starting at the 0-based period start and spanning
// length rows to its pixel rectangle.
func (l Layout) BlockRect(day, start, length int) (Rect, error) {
	if length <= 0 {
		return Rect{}, ErrEmptyPeriods
	}
	first, err := l.CellRect(Coordinate{Day: day, Period: start})
	if err != nil {
		return Rect{}, err
	}
	if start+length > l.Periods {
		return Rect{}, ErrOutOfGrid
	}
	first.H = l.rowOffset(start+length) - l.rowOffset(start)
	return first, nil
}

// SlotRect maps a parsed slot to the rectangle of its block.
func (l Layout) SlotRect(s schedule.Slot) (Rect, error) {
	day := schedule.DayIndex(s.Day)
	if day < 0 {
		return Rect{}, ErrUnknownDay
	}
	if len(s.Periods) == 0 {
		return Rect{}, ErrEmptyPeriods
	}
	return l.BlockRect(day, s.Periods[0]-1, len(s.Periods))
}

// CellAt hit-tests a pixel. It reports false for pixels outside the day/period area.
func (l Layout) CellAt(x, y int) (Coordinate, bool) {
	dx, dy := x-l.OriginX, y-l.OriginY
	if dx < 0 || dy < 0 || dx >= l.Width() || dy >= l.Height() {
		return Coordinate{}, false
	}

	var period int
	if shortBand := l.ShortPeriods * l.ShortRowHeight; dy < shortBand {
		period = dy / l.ShortRowHeight
	} else {
		period = l.ShortPeriods + (dy-shortBand)/l.LongRowHeight
	}
	return Coordinate{Day: dx / l.CellWidth, Period: period}, true
}

// ClampedCellAt hit-tests a pixel after pulling it inside the grid.
func (l Layout) ClampedCellAt(x, y int) Coordinate {
	x = min(max(x, l.OriginX), l.OriginX+l.Width()-1)
	y = min(max(y, l.OriginY), l.OriginY+l.Height()-1)
	c, _ := l.CellAt(x, y)
	return c
}
