package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"timetabler/pkg/catalog"
	"timetabler/pkg/grid"
	"timetabler/pkg/planner"
	"timetabler/pkg/search"
	"timetabler/pkg/timetable"

	tea "github.com/charmbracelet/bubbletea"
)

func testSession(n, pageSize int) *search.Session {
	lectures := make([]catalog.Lecture, n)
	for i := range lectures {
		lectures[i] = catalog.Lecture{ID: fmt.Sprintf("L%03d", i), Title: fmt.Sprintf("Lecture %d", i), Schedule: "월1"}
	}
	lectures[0].Title = "Algorithms"
	s := search.NewSession(pageSize)
	s.SetCatalog(lectures)
	return s
}

func TestRenderTable(t *testing.T) {
	p := planner.New(10, grid.DefaultLayout(), nil)
	p.SetCatalog([]catalog.Lecture{{ID: "A", Title: "Algo", Schedule: "화1,2(A-1)"}})
	if err := p.OpenSearch(timetable.InitialTableID); err != nil {
		t.Fatal(err)
	}
	if _, err := p.SelectByID("A"); err != nil {
		t.Fatal(err)
	}
	blocks, err := p.Blocks(timetable.InitialTableID)
	if err != nil {
		t.Fatal(err)
	}

	out := renderTable(timetable.Heading(0), blocks, false)
	for _, want := range []string{"Timetable 1", "09:00~09:30", "Algo", "A-1", "화"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected rendered table to contain %q:\n%s", want, out)
		}
	}
	// Evening rows are omitted while unused
	if strings.Contains(out, "18:00~18:50") {
		t.Error("expected unused evening rows to be left out")
	}
}

func TestDragDelta(t *testing.T) {
	layout := grid.DefaultLayout()
	p := planner.New(10, layout, nil)
	p.SetCatalog([]catalog.Lecture{{ID: "A", Title: "Algo", Schedule: "월1,2"}})
	_ = p.OpenSearch(timetable.InitialTableID)
	if _, err := p.SelectByID("A"); err != nil {
		t.Fatal(err)
	}
	blocks, _ := p.Blocks(timetable.InitialTableID)

	for _, tc := range []struct {
		day    string
		period int
	}{
		{"수", 5},
		{"토", 19},
		{"월", 1},
	} {
		dx, dy, err := dragDelta(layout, blocks[0], tc.day, tc.period)
		if err != nil {
			t.Fatalf("dragDelta(%s, %d) failed: %v", tc.day, tc.period, err)
		}
		moved, err := layout.Move(blocks[0].Entry.Slot, dx, dy)
		if err != nil {
			t.Fatal(err)
		}
		if moved.Day != tc.day || moved.FirstPeriod() != tc.period || len(moved.Periods) != 2 {
			t.Errorf("expected block at %s %d, got %+v", tc.day, tc.period, moved)
		}
	}

	if _, _, err := dragDelta(layout, blocks[0], "일", 1); err == nil {
		t.Error("expected an error for an unknown day")
	}
}

func TestResultsModel_TypingFilters(t *testing.T) {
	s := testSession(5, 100)
	m := newResultsModel(s)

	for _, r := range "algo" {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	if got := s.Options().Query; got != "algo" {
		t.Fatalf("expected query %q, got %q", "algo", got)
	}
	if s.Total() != 1 {
		t.Errorf("expected 1 match, got %d", s.Total())
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || m.chosen == nil || m.chosen.ID != "L000" {
		t.Errorf("expected enter to choose L000, got %+v", m.chosen)
	}
}

func TestResultsModel_ScrollingRevealsPages(t *testing.T) {
	s := testSession(50, 10)
	m := newResultsModel(s)
	m.rows = 5

	// Initial proximity check: the viewport ends at 5 of 10 revealed rows
	m.Update(recheckMsg{})
	if s.Page() != 1 || s.NeedsProximityCheck() {
		t.Fatalf("expected page 1 with no pending check, got page %d", s.Page())
	}

	for i := 0; i < 8; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != 8 || m.offset != 4 {
		t.Errorf("unexpected cursor/offset: %d/%d", m.cursor, m.offset)
	}
	if s.Page() != 2 {
		t.Errorf("expected scrolling near the end to reveal page 2, got %d", s.Page())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.quitting || m.chosen != nil {
		t.Error("expected esc to cancel without a choice")
	}
}

func TestValidateHex(t *testing.T) {
	for in, ok := range map[string]bool{"#FF00FF": true, "#ff00f": false, "FF00FF0": false, "#GG0000": false} {
		if err := validateHex(in); (err == nil) != ok {
			t.Errorf("validateHex(%q) = %v", in, err)
		}
	}
}

type failingFetcher struct{}

func (failingFetcher) FetchLectures(ctx context.Context, path string) ([]catalog.Lecture, error) {
	return nil, errors.New("catalog host unreachable")
}

func TestSearchSurvivesCatalogFailure(t *testing.T) {
	cache := catalog.NewCache(context.Background(), failingFetcher{}, catalog.CacheOptions{RetryOnFailure: true})
	p := planner.New(10, grid.DefaultLayout(), nil)
	app := NewApp(context.Background(), cache, p)

	if err := app.ensureCatalog(); err == nil {
		t.Fatal("expected ensureCatalog to report the fetch failure")
	}
	if app.loaded {
		t.Error("expected the catalog to stay unloaded")
	}

	// The search flow reports the failure and returns to the menu
	if err := app.runSearchTUI(); err != nil {
		t.Fatalf("expected the session to continue, got %v", err)
	}

	if p.Tables().Len() != 1 {
		t.Errorf("expected the collection to be untouched, got %d tables", p.Tables().Len())
	}
	entries, err := p.Tables().Entries(timetable.InitialTableID)
	if err != nil || len(entries) != 0 {
		t.Errorf("expected the initial table to stay empty, got %v (%v)", entries, err)
	}
	if len(p.Search().Catalog()) != 0 {
		t.Errorf("expected an empty catalog after the failure")
	}
	if cache.Attempts() != 2 {
		t.Errorf("expected each search to start a new attempt, got %d", cache.Attempts())
	}
}
