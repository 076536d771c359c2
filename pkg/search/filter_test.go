package search

import (
	"reflect"
	"testing"

	"timetabler/pkg/catalog"
)

func testCatalog() []catalog.Lecture {
	return []catalog.Lecture{
		{ID: "A100", Title: "Algorithms", Grade: 2, Major: "CS", Credits: "3", Schedule: "월1,2(A-101)"},
		{ID: "B200", Title: "Biology", Grade: 1, Major: "BIO", Credits: "2", Schedule: "화3(B-202)"},
		{ID: "C300", Title: "Calculus", Grade: 1, Major: "MATH", Credits: "3(2)", Schedule: "월5<p>수6,7(C-1)"},
		{ID: "D400", Title: "Databases", Grade: 3, Major: "CS", Credits: "3", Schedule: ""},
		{ID: "E500", Title: "Ethics", Grade: 4, Major: "PHIL", Credits: "1", Schedule: "broken"},
	}
}

func ids(lectures []catalog.Lecture) []string {
	out := []string{}
	for _, l := range lectures {
		out = append(out, l.ID)
	}
	return out
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"query matches title case-insensitively", Options{Query: "ALGO"}, []string{"A100"}},
		{"query matches code", Options{Query: "c3"}, []string{"C300"}},
		{"grades are OR within field", Options{Grades: []int{1, 3}}, []string{"B200", "C300", "D400"}},
		{"majors", Options{Majors: []string{"CS"}}, []string{"A100", "D400"}},
		{"credits prefix", Options{Credits: 3}, []string{"A100", "C300", "D400"}},
		{"day", Options{Days: []string{"월"}}, []string{"A100", "C300"}},
		{"period", Options{Times: []int{3}}, []string{"B200"}},
		{"period in second block", Options{Times: []int{7}}, []string{"C300"}},
		{"fields combine with AND", Options{Days: []string{"월"}, Grades: []int{1}}, []string{"C300"}},
		{"no schedule never matches a day filter", Options{Days: []string{"월", "화", "수", "목", "금", "토"}}, []string{"A100", "B200", "C300"}},
		{"nothing matches", Options{Query: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(testCatalog(), tt.opts))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter(%+v) = %v, expected %v", tt.opts, got, tt.want)
			}
		})
	}
}

func TestFilter_EmptyOptionsIsIdentity(t *testing.T) {
	lectures := testCatalog()
	if got := Filter(lectures, Options{}); !reflect.DeepEqual(got, lectures) {
		t.Errorf("expected the full catalog for empty options, got %v", ids(got))
	}
}

func TestFilter_SubsetPreservesOrder(t *testing.T) {
	lectures := testCatalog()
	got := Filter(lectures, Options{Credits: 3, Grades: []int{1, 2, 3}})

	next := 0
	for _, l := range got {
		for next < len(lectures) && lectures[next].ID != l.ID {
			next++
		}
		if next == len(lectures) {
			t.Fatalf("result %v is not an ordered subset of the catalog", ids(got))
		}
		next++
	}
}

func TestOptionsEqualAndClone(t *testing.T) {
	a := Options{Query: "x", Grades: []int{1}, Days: []string{"월"}}
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatalf("expected a clone to be equal")
	}
	b.Grades[0] = 2
	if a.Grades[0] != 1 {
		t.Errorf("clone shares slices with the original")
	}
	if a.Equal(b) {
		t.Errorf("expected modified clone to differ")
	}
}
