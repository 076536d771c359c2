package schedule

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"timetabler/pkg/catalog"
)

// Day blocks inside a schedule text are separated by the same <p> marker the
// catalog uses for line breaks, e.g. "월1,2,3(A-101)<p>수4~5(B-202)".
var blockSeparator = regexp.MustCompile(`(?i)</?p\s*/?>`)

// Parse converts a raw schedule text into slots in source order.
// Blocks that cannot be parsed are skipped; an empty text yields no slots.
func Parse(raw string) []Slot {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var slots []Slot
	for _, block := range blockSeparator.Split(raw, -1) {
		parsed, ok := parseBlock(block)
		if !ok {
			continue
		}
		slots = append(slots, parsed...)
	}
	return slots
}

// Entries parses a lecture's schedule and attaches the lecture to every slot.
func Entries(lecture catalog.Lecture) []Entry {
	slots := Parse(lecture.Schedule)
	entries := make([]Entry, 0, len(slots))
	for _, s := range slots {
		entries = append(entries, Entry{Slot: s, Lecture: lecture})
	}
	return entries
}

func parseBlock(block string) ([]Slot, bool) {
	block = strings.TrimSpace(block)
	if block == "" {
		return nil, false
	}

	day := ""
	for _, d := range DayLabels {
		if strings.HasPrefix(block, d) {
			day = d
			break
		}
	}
	if day == "" {
		return nil, false
	}

	rest := strings.TrimPrefix(block, day)
	periodText, room := rest, ""
	if idx := strings.IndexByte(rest, '('); idx >= 0 {
		periodText = rest[:idx]
		room = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(rest[idx+1:]), ")"))
	} else if idx := strings.IndexByte(rest, ' '); idx >= 0 {
		periodText = rest[:idx]
		room = strings.TrimSpace(rest[idx+1:])
	}

	periods, ok := parsePeriods(periodText)
	if !ok {
		return nil, false
	}

	var slots []Slot
	for _, run := range contiguousRuns(periods) {
		slots = append(slots, Slot{Day: day, Periods: run, Room: room})
	}
	return slots, true
}

// parsePeriods accepts comma separated periods and a~b ranges. The result is sorted and unique.
func parsePeriods(text string) ([]int, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	seen := make(map[int]bool)
	var periods []int
	add := func(p int) bool {
		if p < 1 || p > PeriodCount {
			return false
		}
		if !seen[p] {
			seen[p] = true
			periods = append(periods, p)
		}
		return true
	}

	for _, piece := range strings.Split(text, ",") {
		piece = strings.TrimSpace(piece)
		if from, to, isRange := strings.Cut(piece, "~"); isRange {
			a, errA := strconv.Atoi(strings.TrimSpace(from))
			b, errB := strconv.Atoi(strings.TrimSpace(to))
			if errA != nil || errB != nil || a > b {
				return nil, false
			}
			for p := a; p <= b; p++ {
				if !add(p) {
					return nil, false
				}
			}
			continue
		}

		p, err := strconv.Atoi(piece)
		if err != nil || !add(p) {
			return nil, false
		}
	}

	sort.Ints(periods)
	return periods, true
}

// contiguousRuns splits sorted periods into runs of consecutive values.
func contiguousRuns(periods []int) [][]int {
	var runs [][]int
	start := 0
	for i := 1; i <= len(periods); i++ {
		if i == len(periods) || periods[i] != periods[i-1]+1 {
			runs = append(runs, periods[start:i:i])
			start = i
		}
	}
	return runs
}
