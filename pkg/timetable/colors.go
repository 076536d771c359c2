package timetable

import (
	"fmt"

	"timetabler/pkg/schedule"
)

// Palette is cycled through to tell lectures apart within one table.
var Palette = []string{"#fdd", "#ffd", "#dff", "#ddf", "#fdf", "#dfd"}

// Colors assigns a palette colour to each lecture id in order of first appearance.
func Colors(entries []schedule.Entry) map[string]string {
	colors := make(map[string]string)
	for _, e := range entries {
		if _, ok := colors[e.Lecture.ID]; !ok {
			colors[e.Lecture.ID] = Palette[len(colors)%len(Palette)]
		}
	}
	return colors
}

// Heading is the label shown above the table at position index in creation order.
func Heading(index int) string {
	return fmt.Sprintf("Timetable %d", index+1)
}
