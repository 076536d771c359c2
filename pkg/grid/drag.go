package grid

import (
	"errors"
	"strconv"
	"strings"

	"timetabler/pkg/schedule"
)

// DragSeparator joins the table id and entry index in an encoded drag id.
const DragSeparator = ":"

var ErrMalformedDragID = errors.New("malformed drag id")

// DragID identifies a placed entry during a drag: the owning table and the entry's
// index in that table at render time. The index is positional, so a DragID is only
// meaningful for the render pass that issued it.
type DragID struct {
	TableID string
	Index   int
}

// String encodes the id as "tableId:index".
func (d DragID) String() string {
	return d.TableID + DragSeparator + strconv.Itoa(d.Index)
}

// ParseDragID decodes "tableId:index", splitting on the first separator.
func ParseDragID(s string) (DragID, error) {
	tableID, index, ok := strings.Cut(s, DragSeparator)
	if !ok || tableID == "" {
		return DragID{}, ErrMalformedDragID
	}
	i, err := strconv.Atoi(index)
	if err != nil || i < 0 {
		return DragID{}, ErrMalformedDragID
	}
	return DragID{TableID: tableID, Index: i}, nil
}

// ActiveTable returns the table part of an encoded drag id, "" when nothing is dragged.
func ActiveTable(dragID string) string {
	tableID, _, _ := strings.Cut(dragID, DragSeparator)
	return tableID
}

// ValidTableID reports whether id can be used inside a drag id.
func ValidTableID(id string) bool {
	return id != "" && !strings.Contains(id, DragSeparator)
}

// Move returns where a slot lands after its block is dragged by (dx, dy) pixels.
// The block's top-left corner is moved and the cell under it wins, so a delta is
// floored to whole cells: less than a cell to the right or down stays put, any
// amount to the left or up moves one cell. Positions outside the grid are clamped
// so the whole block stays inside it.
func (l Layout) Move(s schedule.Slot, dx, dy int) (schedule.Slot, error) {
	rect, err := l.SlotRect(s)
	if err != nil {
		return schedule.Slot{}, err
	}

	target := l.ClampedCellAt(rect.X+dx, rect.Y+dy)

	length := len(s.Periods)
	target.Period = min(target.Period, l.Periods-length)
	if target.Day >= len(schedule.DayLabels) {
		return schedule.Slot{}, ErrOutOfGrid
	}

	periods := make([]int, length)
	for i := range periods {
		periods[i] = target.Period + i + 1
	}
	return schedule.Slot{Day: schedule.DayLabels[target.Day], Periods: periods, Room: s.Room}, nil
}
