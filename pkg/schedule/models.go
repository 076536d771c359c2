package schedule

import "timetabler/pkg/catalog"

// Slot is one day block of a lecture's schedule text: a day, a contiguous run of
// 1-based periods and the room.
type Slot struct {
	Day     string `json:"day"`
	Periods []int  `json:"range"`
	Room    string `json:"room"`
}

// Entry is a Slot placed into a timetable, carrying the lecture it was parsed from.
type Entry struct {
	Slot
	Lecture catalog.Lecture `json:"lecture"`
}

// FirstPeriod returns the first period of the slot.
func (s Slot) FirstPeriod() int {
	if len(s.Periods) == 0 {
		return 0
	}
	return s.Periods[0]
}

// Covers reports whether the slot is on day and includes period.
func (s Slot) Covers(day string, period int) bool {
	if s.Day != day {
		return false
	}
	for _, p := range s.Periods {
		if p == period {
			return true
		}
	}
	return false
}
