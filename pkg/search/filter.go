package search

import (
	"slices"
	"strconv"
	"strings"

	"timetabler/pkg/catalog"
	"timetabler/pkg/schedule"

	"golang.org/x/text/cases"
)

// Options is a compound lecture filter. Multi-valued fields match if any value
// matches; fields combine with AND. Empty fields do not constrain.
type Options struct {
	Query   string   `json:"query,omitempty"`
	Grades  []int    `json:"grades,omitempty"`
	Days    []string `json:"days,omitempty"`
	Times   []int    `json:"times,omitempty"`
	Majors  []string `json:"majors,omitempty"`
	Credits int      `json:"credits,omitempty"` // 0 = any
}

// IsEmpty reports whether no field constrains the result.
func (o Options) IsEmpty() bool {
	return o.Query == "" && len(o.Grades) == 0 && len(o.Days) == 0 &&
		len(o.Times) == 0 && len(o.Majors) == 0 && o.Credits <= 0
}

// Equal compares two option sets field by field.
func (o Options) Equal(other Options) bool {
	return o.Query == other.Query &&
		o.Credits == other.Credits &&
		slices.Equal(o.Grades, other.Grades) &&
		slices.Equal(o.Days, other.Days) &&
		slices.Equal(o.Times, other.Times) &&
		slices.Equal(o.Majors, other.Majors)
}

// Clone returns a copy that shares no slices with o.
func (o Options) Clone() Options {
	return Options{
		Query:   o.Query,
		Grades:  slices.Clone(o.Grades),
		Days:    slices.Clone(o.Days),
		Times:   slices.Clone(o.Times),
		Majors:  slices.Clone(o.Majors),
		Credits: o.Credits,
	}
}

// Filter returns the lectures matching opts in catalog order.
// With empty options the input slice itself is returned.
func Filter(lectures []catalog.Lecture, opts Options) []catalog.Lecture {
	if opts.IsEmpty() {
		return lectures
	}

	m := newMatcher(opts)
	filtered := make([]catalog.Lecture, 0, len(lectures))
	for _, l := range lectures {
		if m.match(l) {
			filtered = append(filtered, l)
		}
	}
	return filtered
}

type matcher struct {
	fold    cases.Caser
	query   string
	grades  map[int]bool
	days    map[string]bool
	times   map[int]bool
	majors  map[string]bool
	credits string
}

func newMatcher(opts Options) *matcher {
	m := &matcher{
		fold:   cases.Fold(),
		grades: toSet(opts.Grades),
		days:   toSet(opts.Days),
		times:  toSet(opts.Times),
		majors: toSet(opts.Majors),
	}
	if opts.Query != "" {
		m.query = m.fold.String(opts.Query)
	}
	if opts.Credits > 0 {
		m.credits = strconv.Itoa(opts.Credits)
	}
	return m
}

func (m *matcher) match(l catalog.Lecture) bool {
	if m.query != "" &&
		!strings.Contains(m.fold.String(l.Title), m.query) &&
		!strings.Contains(m.fold.String(l.ID), m.query) {
		return false
	}
	if len(m.grades) > 0 && !m.grades[l.Grade] {
		return false
	}
	if len(m.majors) > 0 && !m.majors[l.Major] {
		return false
	}
	if m.credits != "" && !strings.HasPrefix(l.Credits, m.credits) {
		return false
	}
	if len(m.days) == 0 && len(m.times) == 0 {
		return true
	}

	slots := schedule.Parse(l.Schedule)
	if len(m.days) > 0 && !slices.ContainsFunc(slots, func(s schedule.Slot) bool { return m.days[s.Day] }) {
		return false
	}
	if len(m.times) > 0 && !slices.ContainsFunc(slots, func(s schedule.Slot) bool {
		return slices.ContainsFunc(s.Periods, func(p int) bool { return m.times[p] })
	}) {
		return false
	}
	return true
}

func toSet[T comparable](values []T) map[T]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[T]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
