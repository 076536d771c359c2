package schedule

// DayLabels lists the weekday labels used by the catalog, Monday through Saturday.
// The order is the column order of the timetable grid.
var DayLabels = []string{"월", "화", "수", "목", "금", "토"}

// DayIndex returns the grid column of a day label, or -1 if the label is unknown.
func DayIndex(day string) int {
	for i, d := range DayLabels {
		if d == day {
			return i
		}
	}
	return -1
}
