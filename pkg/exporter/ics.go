package exporter

import (
	"fmt"
	"io"
	"time"
	_ "time/tzdata"

	"timetabler/pkg/catalog"
	"timetabler/pkg/schedule"

	ics "github.com/arran4/golang-ical"
)

// Timezone the period table is expressed in
const Timezone = "Asia/Seoul"

// GenerateICS writes a timetable's entries as one event per entry per week, for weeks
// weeks starting with the week of weekStart.
func GenerateICS(entries []schedule.Entry, weekStart time.Time, weeks int, w io.Writer) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)

	loc, err := time.LoadLocation(Timezone)
	if err != nil {
		return fmt.Errorf("could not load timezone: %w", err)
	}

	monday := mondayOf(weekStart.In(loc))
	now := time.Now()

	for week := 0; week < weeks; week++ {
		for i, e := range entries {
			day := schedule.DayIndex(e.Day)
			if day < 0 || len(e.Periods) == 0 {
				continue // Skip entries that are not on the grid
			}
			first, ok := schedule.PeriodSpan(e.Periods[0])
			if !ok {
				continue
			}
			last, ok := schedule.PeriodSpan(e.Periods[len(e.Periods)-1])
			if !ok {
				continue
			}

			date := monday.AddDate(0, 0, week*7+day)
			startTime := date.Add(time.Duration(first.Start) * time.Minute)
			endTime := date.Add(time.Duration(last.End) * time.Minute)

			event := cal.AddEvent(fmt.Sprintf("%s-%s-%d", e.Lecture.ID, startTime.Format("20060102T150405"), i))
			event.SetCreatedTime(now)
			event.SetDtStampTime(now)
			event.SetModifiedAt(now)
			event.SetStartAt(startTime)
			event.SetEndAt(endTime)
			event.SetSummary(e.Lecture.Title)
			event.SetLocation(e.Room)

			description := fmt.Sprintf("Code: %s\nCredits: %s\nMajor: %s", e.Lecture.ID, e.Lecture.Credits, catalog.MajorLabel(e.Lecture.Major))
			event.SetDescription(description)
		}
	}

	return cal.SerializeTo(w)
}

// mondayOf returns midnight of the Monday of t's week.
func mondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}
