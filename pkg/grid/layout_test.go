package grid

import (
	"testing"

	"timetabler/pkg/schedule"
)

func TestCellRect(t *testing.T) {
	l := DefaultLayout()

	r, err := l.CellRect(Coordinate{Day: 2, Period: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != (Rect{X: 120 + 160, Y: 40, W: 80, H: 30}) {
		t.Errorf("unexpected rect for day 2 period 0: %+v", r)
	}

	r, _ = l.CellRect(Coordinate{Day: 0, Period: 18})
	if r.Y != 40+18*30 || r.H != 50 {
		t.Errorf("expected the first long row at y=%d with height 50, got %+v", 40+18*30, r)
	}

	r, _ = l.CellRect(Coordinate{Day: 0, Period: 20})
	if r.Y != 40+18*30+2*50 {
		t.Errorf("unexpected y for period 20: %d", r.Y)
	}

	if _, err := l.CellRect(Coordinate{Day: 6, Period: 0}); err != ErrOutOfGrid {
		t.Errorf("expected ErrOutOfGrid for day 6, got %v", err)
	}
	if _, err := l.CellRect(Coordinate{Day: 0, Period: 24}); err != ErrOutOfGrid {
		t.Errorf("expected ErrOutOfGrid for period 24, got %v", err)
	}
}

func TestCellAtInvertsCellRect(t *testing.T) {
	l := DefaultLayout()
	for day := 0; day < l.Days; day++ {
		for period := 0; period < l.Periods; period++ {
			want := Coordinate{Day: day, Period: period}
			r, err := l.CellRect(want)
			if err != nil {
				t.Fatalf("unexpected error for %+v: %v", want, err)
			}
			x, y := r.Center()
			got, ok := l.CellAt(x, y)
			if !ok || got != want {
				t.Errorf("CellAt(center of %+v) = %+v, %v", want, got, ok)
			}
			// Top-left and bottom-right pixels belong to the same cell
			if got, _ := l.CellAt(r.X, r.Y); got != want {
				t.Errorf("CellAt(top-left of %+v) = %+v", want, got)
			}
			if got, _ := l.CellAt(r.X+r.W-1, r.Y+r.H-1); got != want {
				t.Errorf("CellAt(bottom-right of %+v) = %+v", want, got)
			}
		}
	}
}

func TestCellAtOutside(t *testing.T) {
	l := DefaultLayout()
	outside := [][2]int{{0, 0}, {119, 100}, {200, 39}, {120 + 6*80, 100}, {200, 40 + l.Height()}}
	for _, p := range outside {
		if _, ok := l.CellAt(p[0], p[1]); ok {
			t.Errorf("expected pixel %v to be outside the grid", p)
		}
	}
}

func TestSlotRect(t *testing.T) {
	l := DefaultLayout()

	r, err := l.SlotRect(schedule.Slot{Day: "화", Periods: []int{3, 4, 5}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != (Rect{X: 200, Y: 40 + 60, W: 80, H: 90}) {
		t.Errorf("unexpected block rect: %+v", r)
	}

	// A block crossing into the long rows sums both heights
	r, _ = l.SlotRect(schedule.Slot{Day: "월", Periods: []int{18, 19}})
	if r.H != 30+50 {
		t.Errorf("expected mixed block height 80, got %d", r.H)
	}

	if _, err := l.SlotRect(schedule.Slot{Day: "일", Periods: []int{1}}); err != ErrUnknownDay {
		t.Errorf("expected ErrUnknownDay, got %v", err)
	}
	if _, err := l.SlotRect(schedule.Slot{Day: "월"}); err != ErrEmptyPeriods {
		t.Errorf("expected ErrEmptyPeriods, got %v", err)
	}
	if _, err := l.SlotRect(schedule.Slot{Day: "월", Periods: []int{24, 25}}); err != ErrOutOfGrid {
		t.Errorf("expected ErrOutOfGrid for a block past the last row, got %v", err)
	}
}
