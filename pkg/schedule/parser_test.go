package schedule

import (
	"reflect"
	"testing"

	"timetabler/pkg/catalog"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []Slot
	}{
		{
			name: "empty text",
			raw:  "",
			want: nil,
		},
		{
			name: "single block",
			raw:  "월1,2,3(A-101)",
			want: []Slot{{Day: "월", Periods: []int{1, 2, 3}, Room: "A-101"}},
		},
		{
			name: "multiple blocks keep source order",
			raw:  "수4,5(B-202)<p>월1,2(A-101)",
			want: []Slot{
				{Day: "수", Periods: []int{4, 5}, Room: "B-202"},
				{Day: "월", Periods: []int{1, 2}, Room: "A-101"},
			},
		},
		{
			name: "tilde range",
			raw:  "화7~9(C-3)",
			want: []Slot{{Day: "화", Periods: []int{7, 8, 9}, Room: "C-3"}},
		},
		{
			name: "no room",
			raw:  "금10,11",
			want: []Slot{{Day: "금", Periods: []int{10, 11}, Room: ""}},
		},
		{
			name: "non contiguous periods split into runs",
			raw:  "목1,2,5(D-1)",
			want: []Slot{
				{Day: "목", Periods: []int{1, 2}, Room: "D-1"},
				{Day: "목", Periods: []int{5}, Room: "D-1"},
			},
		},
		{
			name: "malformed block is skipped",
			raw:  "x1,2(A)<p>월abc(B)<p>화3(C)<p>수99(D)",
			want: []Slot{{Day: "화", Periods: []int{3}, Room: "C"}},
		},
		{
			name: "upper case separator",
			raw:  "월1(A)<P>토2(B)",
			want: []Slot{
				{Day: "월", Periods: []int{1}, Room: "A"},
				{Day: "토", Periods: []int{2}, Room: "B"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q)\nGot: %+v\nExpected: %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseNeverPanicsOnGarbage(t *testing.T) {
	inputs := []string{"<p>", "<p><p>", "월", "월(", "월,,", "월~", "월3~1", "월0", "(((", "월1,2(A<p>"}
	for _, in := range inputs {
		for _, s := range Parse(in) {
			if len(s.Periods) == 0 {
				t.Errorf("Parse(%q) produced a slot with no periods: %+v", in, s)
			}
		}
	}
}

func TestEntries(t *testing.T) {
	lecture := catalog.Lecture{ID: "502007", Title: "Algorithms", Schedule: "월1,2(A)<p>수3(B)"}

	entries := Entries(lecture)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Lecture.ID != "502007" {
			t.Errorf("expected entry to reference lecture 502007, got %s", e.Lecture.ID)
		}
	}
	if !entries[0].Covers("월", 2) || entries[0].Covers("월", 3) || entries[0].Covers("화", 1) {
		t.Errorf("unexpected Covers result for %+v", entries[0])
	}
	if entries[1].FirstPeriod() != 3 {
		t.Errorf("expected first period 3, got %d", entries[1].FirstPeriod())
	}
}
