package timetable

import (
	"reflect"
	"testing"

	"timetabler/pkg/catalog"
	"timetabler/pkg/grid"
	"timetabler/pkg/schedule"
)

func entry(id, day string, periods ...int) schedule.Entry {
	return schedule.Entry{
		Slot:    schedule.Slot{Day: day, Periods: periods, Room: "R"},
		Lecture: catalog.Lecture{ID: id, Title: "Lecture " + id},
	}
}

func TestNewCollection(t *testing.T) {
	c := NewCollection()
	if !reflect.DeepEqual(c.IDs(), []string{InitialTableID}) {
		t.Fatalf("expected one initial table, got %v", c.IDs())
	}
	entries, err := c.Entries(InitialTableID)
	if err != nil || len(entries) != 0 {
		t.Errorf("expected the initial table to be empty, got %v, %v", entries, err)
	}
}

func TestAddAndRemoveAt(t *testing.T) {
	c := NewCollection()
	if err := c.AddEntries(InitialTableID, entry("A", "월", 1, 2)); err != nil {
		t.Fatalf("AddEntries failed: %v", err)
	}

	removed, err := c.RemoveAt(InitialTableID, "월", 1)
	if err != nil || removed != 1 {
		t.Fatalf("expected 1 removal, got %d, %v", removed, err)
	}
	if entries, _ := c.Entries(InitialTableID); len(entries) != 0 {
		t.Errorf("expected the table to be empty, got %v", entries)
	}
}

func TestRemoveAtMatchesDayAndPeriod(t *testing.T) {
	c := NewCollection()
	c.AddEntries(InitialTableID, entry("A", "월", 1, 2), entry("B", "화", 2), entry("C", "월", 3), entry("D", "월", 2, 3))

	removed, _ := c.RemoveAt(InitialTableID, "월", 2)
	if removed != 2 {
		t.Errorf("expected 2 removals, got %d", removed)
	}

	entries, _ := c.Entries(InitialTableID)
	var left []string
	for _, e := range entries {
		left = append(left, e.Lecture.ID)
	}
	if !reflect.DeepEqual(left, []string{"B", "C"}) {
		t.Errorf("expected B and C to remain in order, got %v", left)
	}

	if _, err := c.RemoveAt("missing", "월", 1); err != ErrTableNotFound {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestDuplicateAndRemove(t *testing.T) {
	c := NewCollection()
	c.AddEntries(InitialTableID, entry("A", "월", 1))

	if err := c.Remove(InitialTableID); err != ErrLastTable {
		t.Fatalf("expected ErrLastTable when removing the only table, got %v", err)
	}

	copyID, err := c.Duplicate(InitialTableID)
	if err != nil {
		t.Fatalf("Duplicate failed: %v", err)
	}
	if copyID == InitialTableID || !grid.ValidTableID(copyID) {
		t.Fatalf("expected a fresh valid id, got %q", copyID)
	}

	// The copy is independent of the source
	c.AddEntries(copyID, entry("B", "화", 2))
	src, _ := c.Entries(InitialTableID)
	dup, _ := c.Entries(copyID)
	if len(src) != 1 || len(dup) != 2 {
		t.Errorf("expected 1 source entry and 2 copy entries, got %d and %d", len(src), len(dup))
	}

	if err := c.Remove(copyID); err != nil {
		t.Fatalf("expected removal of one of two tables to succeed, got %v", err)
	}
	if !reflect.DeepEqual(c.IDs(), []string{InitialTableID}) {
		t.Errorf("expected only the initial table to remain, got %v", c.IDs())
	}
	if remaining, _ := c.Entries(InitialTableID); !reflect.DeepEqual(remaining, src) {
		t.Errorf("remaining table was modified: %v", remaining)
	}
}

func TestDragIDsAndPlace(t *testing.T) {
	c := NewCollection()
	c.AddEntries(InitialTableID, entry("A", "월", 1), entry("B", "화", 2))

	ids := c.DragIDs(InitialTableID)
	if len(ids) != 2 || ids[1] != (grid.DragID{TableID: InitialTableID, Index: 1}) {
		t.Fatalf("unexpected drag ids: %v", ids)
	}

	moved := schedule.Slot{Day: "수", Periods: []int{4}, Room: "R"}
	if !c.Place(ids[1], moved) {
		t.Fatalf("expected Place to succeed for a fresh id")
	}
	e, _ := c.Entry(ids[1])
	if e.Lecture.ID != "B" || !reflect.DeepEqual(e.Slot, moved) {
		t.Errorf("unexpected entry after Place: %+v", e)
	}

	c.RemoveAt(InitialTableID, "수", 4)
	if c.Place(ids[1], moved) {
		t.Errorf("expected a stale id to be ignored")
	}
	if c.Place(grid.DragID{TableID: "missing", Index: 0}, moved) {
		t.Errorf("expected an unknown table to be ignored")
	}
}

func TestColors(t *testing.T) {
	entries := []schedule.Entry{entry("A", "월", 1), entry("B", "화", 1), entry("A", "수", 1)}
	colors := Colors(entries)
	if colors["A"] != Palette[0] || colors["B"] != Palette[1] || len(colors) != 2 {
		t.Errorf("unexpected colours: %v", colors)
	}
}

func TestHeading(t *testing.T) {
	if got := Heading(0); got != "Timetable 1" {
		t.Errorf("Heading(0) = %q", got)
	}
	if got := Heading(2); got != "Timetable 3" {
		t.Errorf("Heading(2) = %q", got)
	}
}
