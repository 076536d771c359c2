package timetable

import (
	"errors"
	"slices"

	"timetabler/pkg/grid"
	"timetabler/pkg/schedule"

	"github.com/google/uuid"
)

// InitialTableID names the table every collection starts with.
const InitialTableID = "schedule-1"

var (
	ErrTableNotFound  = errors.New("timetable not found")
	ErrLastTable      = errors.New("cannot remove the only timetable")
	ErrInvalidTableID = errors.New("invalid timetable id")
)

// Collection maps table ids to their placed entries. Tables keep creation order and
// entries keep insertion order, which is also their render order and drag index.
// A collection always holds at least one table.
type Collection struct {
	order  []string
	tables map[string][]schedule.Entry
	newID  func() string
}

// NewCollection returns a collection holding one empty table, InitialTableID.
func NewCollection() *Collection {
	return &Collection{
		order:  []string{InitialTableID},
		tables: map[string][]schedule.Entry{InitialTableID: nil},
		newID:  func() string { return "schedule-" + uuid.NewString() },
	}
}

// IDs returns the table ids in creation order.
func (c *Collection) IDs() []string {
	return slices.Clone(c.order)
}

func (c *Collection) Len() int { return len(c.order) }

func (c *Collection) Has(tableID string) bool {
	_, ok := c.tables[tableID]
	return ok
}

// Entries returns a copy of a table's entries.
func (c *Collection) Entries(tableID string) ([]schedule.Entry, error) {
	entries, ok := c.tables[tableID]
	if !ok {
		return nil, ErrTableNotFound
	}
	return slices.Clone(entries), nil
}

// AddEntries appends entries to a table.
func (c *Collection) AddEntries(tableID string, entries ...schedule.Entry) error {
	current, ok := c.tables[tableID]
	if !ok {
		return ErrTableNotFound
	}
	c.tables[tableID] = append(slices.Clip(current), entries...)
	return nil
}

// RemoveAt removes every entry of the table on day whose periods include period,
// and returns how many were removed.
func (c *Collection) RemoveAt(tableID, day string, period int) (int, error) {
	current, ok := c.tables[tableID]
	if !ok {
		return 0, ErrTableNotFound
	}
	kept := make([]schedule.Entry, 0, len(current))
	for _, e := range current {
		if !e.Covers(day, period) {
			kept = append(kept, e)
		}
	}
	c.tables[tableID] = kept
	return len(current) - len(kept), nil
}

// Duplicate creates a new table holding a copy of the source's entries and returns its id.
func (c *Collection) Duplicate(sourceID string) (string, error) {
	entries, ok := c.tables[sourceID]
	if !ok {
		return "", ErrTableNotFound
	}
	id := c.newID()
	if !grid.ValidTableID(id) || c.Has(id) {
		return "", ErrInvalidTableID
	}
	c.tables[id] = slices.Clone(entries)
	c.order = append(c.order, id)
	return id, nil
}

// Remove deletes a table. Removing the only table fails with ErrLastTable.
func (c *Collection) Remove(tableID string) error {
	if !c.Has(tableID) {
		return ErrTableNotFound
	}
	if len(c.order) == 1 {
		return ErrLastTable
	}
	delete(c.tables, tableID)
	c.order = slices.DeleteFunc(c.order, func(id string) bool { return id == tableID })
	return nil
}

// DragIDs issues the drag ids of a table's entries for the current render pass.
func (c *Collection) DragIDs(tableID string) []grid.DragID {
	entries := c.tables[tableID]
	ids := make([]grid.DragID, len(entries))
	for i := range entries {
		ids[i] = grid.DragID{TableID: tableID, Index: i}
	}
	return ids
}

// Entry resolves a drag id. Ids issued before the table changed size may no longer resolve.
func (c *Collection) Entry(id grid.DragID) (schedule.Entry, bool) {
	entries, ok := c.tables[id.TableID]
	if !ok || id.Index < 0 || id.Index >= len(entries) {
		return schedule.Entry{}, false
	}
	return entries[id.Index], true
}

// Place moves the entry behind id to slot, keeping its lecture. Stale ids are ignored.
func (c *Collection) Place(id grid.DragID, slot schedule.Slot) bool {
	entry, ok := c.Entry(id)
	if !ok {
		return false
	}
	entry.Slot = slot
	updated := slices.Clone(c.tables[id.TableID])
	updated[id.Index] = entry
	c.tables[id.TableID] = updated
	return true
}
