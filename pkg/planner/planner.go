package planner

import (
	"errors"
	"log/slog"

	"timetabler/pkg/catalog"
	"timetabler/pkg/grid"
	"timetabler/pkg/schedule"
	"timetabler/pkg/search"
	"timetabler/pkg/timetable"
)

var (
	ErrNoTarget       = errors.New("no timetable is targeted by the search")
	ErrUnknownLecture = errors.New("lecture not found in catalog")
	ErrOutsideGrid    = errors.New("pixel is outside the grid")
)

// Target is the table (and optionally the cell) a search adds lectures to.
type Target struct {
	TableID string `json:"tableId"`
	Day     string `json:"day,omitempty"`
	Period  int    `json:"period,omitempty"` // 1-based, 0 when opened without a cell
}

// Block is one placed entry as rendered: its drag id, geometry and colour.
type Block struct {
	ID    string         `json:"id"`
	Entry schedule.Entry `json:"entry"`
	Rect  grid.Rect      `json:"rect"`
	Color string         `json:"color"`
}

// Planner is the single actor behind the search dialog and the timetable grids.
// Every method runs to completion; callers that serve concurrent requests must
// serialize calls.
type Planner struct {
	tables *timetable.Collection
	search *search.Session
	layout grid.Layout
	log    *slog.Logger

	target   *Target
	dragging string
}

// New wires a planner over a fresh collection and search session.
func New(pageSize int, layout grid.Layout, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		tables: timetable.NewCollection(),
		search: search.NewSession(pageSize),
		layout: layout,
		log:    logger,
	}
}

func (p *Planner) Tables() *timetable.Collection { return p.tables }
func (p *Planner) Search() *search.Session       { return p.search }
func (p *Planner) Layout() grid.Layout           { return p.layout }

// SetCatalog installs the resolved catalog; the filtered result and page reset follow.
func (p *Planner) SetCatalog(lectures []catalog.Lecture) {
	p.search.SetCatalog(lectures)
	p.log.Debug("catalog installed", "lectures", len(lectures), "filtered", p.search.Total())
}

// SetOptions replaces the search options.
func (p *Planner) SetOptions(opts search.Options) bool {
	return p.search.SetOptions(opts)
}

// OpenSearch targets a table without a cell; day and period presets are cleared.
func (p *Planner) OpenSearch(tableID string) error {
	return p.openSearch(Target{TableID: tableID})
}

// OnCellClick targets a table and presets the day and period filters to the clicked cell.
func (p *Planner) OnCellClick(tableID, day string, period int) error {
	if schedule.DayIndex(day) < 0 || period < 1 || period > p.layout.Periods {
		return ErrOutsideGrid
	}
	return p.openSearch(Target{TableID: tableID, Day: day, Period: period})
}

// ClickAt hit-tests a pixel and handles it as a cell click.
func (p *Planner) ClickAt(tableID string, x, y int) (grid.Coordinate, error) {
	c, ok := p.layout.CellAt(x, y)
	if !ok || c.Day >= len(schedule.DayLabels) {
		return grid.Coordinate{}, ErrOutsideGrid
	}
	return c, p.OnCellClick(tableID, schedule.DayLabels[c.Day], c.Period+1)
}

func (p *Planner) openSearch(t Target) error {
	if !p.tables.Has(t.TableID) {
		return timetable.ErrTableNotFound
	}
	opts := p.search.Options()
	opts.Days, opts.Times = nil, nil
	if t.Day != "" {
		opts.Days = []string{t.Day}
	}
	if t.Period > 0 {
		opts.Times = []int{t.Period}
	}
	p.search.SetOptions(opts)
	p.target = &t
	return nil
}

// Target returns the current search target.
func (p *Planner) Target() (Target, bool) {
	if p.target == nil {
		return Target{}, false
	}
	return *p.target, true
}

// CloseSearch drops the search target.
func (p *Planner) CloseSearch() {
	p.target = nil
}

// OnSelect parses the lecture's schedule into the targeted table and closes the search.
// It returns the number of entries added.
func (p *Planner) OnSelect(lecture catalog.Lecture) (int, error) {
	if p.target == nil {
		return 0, ErrNoTarget
	}
	entries := schedule.Entries(lecture)
	if err := p.tables.AddEntries(p.target.TableID, entries...); err != nil {
		return 0, err
	}
	p.log.Debug("lecture added", "table", p.target.TableID, "lecture", lecture.ID, "entries", len(entries))
	p.target = nil
	return len(entries), nil
}

// SelectByID looks the lecture up in the catalog and selects it.
func (p *Planner) SelectByID(lectureID string) (int, error) {
	lecture, ok := p.search.Lecture(lectureID)
	if !ok {
		return 0, ErrUnknownLecture
	}
	return p.OnSelect(lecture)
}

// CellAt hit-tests a pixel.
func (p *Planner) CellAt(x, y int) (grid.Coordinate, bool) {
	return p.layout.CellAt(x, y)
}

// RectFor maps an entry to its block rectangle.
func (p *Planner) RectFor(e schedule.Entry) (grid.Rect, error) {
	return p.layout.SlotRect(e.Slot)
}

// Blocks renders a table: one block per entry, ids issued for this pass.
// Entries whose geometry is invalid are left out.
func (p *Planner) Blocks(tableID string) ([]Block, error) {
	entries, err := p.tables.Entries(tableID)
	if err != nil {
		return nil, err
	}
	colors := timetable.Colors(entries)
	ids := p.tables.DragIDs(tableID)

	blocks := make([]Block, 0, len(entries))
	for i, e := range entries {
		rect, err := p.RectFor(e)
		if err != nil {
			p.log.Warn("skipping entry outside the grid", "table", tableID, "index", i, "error", err)
			continue
		}
		blocks = append(blocks, Block{
			ID:    ids[i].String(),
			Entry: e,
			Rect:  rect,
			Color: colors[e.Lecture.ID],
		})
	}
	return blocks, nil
}

// OnDragStart records the dragged block so its table can be highlighted.
func (p *Planner) OnDragStart(dragID string) {
	p.dragging = dragID
}

// ActiveTable is the table whose overlay should highlight, "" when nothing is dragged.
func (p *Planner) ActiveTable() string {
	return grid.ActiveTable(p.dragging)
}

// OnEntryDragEnd moves the dragged entry by a pixel delta. Malformed or stale ids
// are ignored and reported as false.
func (p *Planner) OnEntryDragEnd(dragID string, dx, dy int) bool {
	p.dragging = ""

	id, err := grid.ParseDragID(dragID)
	if err != nil {
		p.log.Debug("ignoring malformed drag id", "id", dragID)
		return false
	}
	entry, ok := p.tables.Entry(id)
	if !ok {
		p.log.Debug("ignoring stale drag id", "id", dragID)
		return false
	}
	slot, err := p.layout.Move(entry.Slot, dx, dy)
	if err != nil {
		return false
	}
	return p.tables.Place(id, slot)
}

// OnEntryDeleteRequest removes the entries of a table covering (day, period).
func (p *Planner) OnEntryDeleteRequest(tableID, day string, period int) (int, error) {
	return p.tables.RemoveAt(tableID, day, period)
}

// OnBlockDelete removes the entries under a block, using its day and first period.
func (p *Planner) OnBlockDelete(dragID string) (int, error) {
	id, err := grid.ParseDragID(dragID)
	if err != nil {
		return 0, err
	}
	entry, ok := p.tables.Entry(id)
	if !ok {
		return 0, nil
	}
	return p.tables.RemoveAt(id.TableID, entry.Day, entry.FirstPeriod())
}

// Duplicate copies a table.
func (p *Planner) Duplicate(tableID string) (string, error) {
	return p.tables.Duplicate(tableID)
}

// RemoveTable deletes a table, clearing the search target if it pointed there.
func (p *Planner) RemoveTable(tableID string) error {
	if err := p.tables.Remove(tableID); err != nil {
		return err
	}
	if p.target != nil && p.target.TableID == tableID {
		p.target = nil
	}
	return nil
}
