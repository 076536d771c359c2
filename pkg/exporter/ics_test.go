package exporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"timetabler/pkg/catalog"
	"timetabler/pkg/schedule"
)

func TestGenerateICS(t *testing.T) {
	lecture := catalog.Lecture{ID: "502007", Title: "Algorithms", Credits: "3", Major: "공과대학<p>컴퓨터공학과"}
	entries := []schedule.Entry{
		{Slot: schedule.Slot{Day: "월", Periods: []int{1, 2}, Room: "A-101"}, Lecture: lecture},
		{Slot: schedule.Slot{Day: "수", Periods: []int{19}, Room: "B-202"}, Lecture: lecture},
		{Slot: schedule.Slot{Day: "일", Periods: []int{1}}, Lecture: lecture},
	}

	// A Thursday; events start from that week's Monday
	weekStart := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := GenerateICS(entries, weekStart, 2, &buf); err != nil {
		t.Fatalf("GenerateICS failed: %v", err)
	}

	output := buf.String()

	if got := strings.Count(output, "BEGIN:VEVENT"); got != 4 {
		t.Errorf("expected 4 events (2 valid entries x 2 weeks), got %d", got)
	}
	if !strings.Contains(output, "SUMMARY:Algorithms") {
		t.Errorf("Expected ICS to contain lecture summary, got: \n%s", output)
	}
	if !strings.Contains(output, "LOCATION:A-101") {
		t.Errorf("Expected ICS to contain room location")
	}

	// Monday 02-Mar-2026 09:00 Seoul time is 00:00 UTC, period 2 ends 10:00 Seoul
	if !strings.Contains(output, "DTSTART:20260302T000000Z") || !strings.Contains(output, "DTEND:20260302T010000Z") {
		t.Errorf("Expected first lecture block in UTC, got: \n%s", output)
	}
	// Period 19 on Wednesday of the second week: 18:00-18:50 Seoul
	if !strings.Contains(output, "DTSTART:20260311T090000Z") || !strings.Contains(output, "DTEND:20260311T095000Z") {
		t.Errorf("Expected evening block in the second week, got: \n%s", output)
	}
}

func TestMondayOf(t *testing.T) {
	sunday := time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC)
	if got := mondayOf(sunday); got.Day() != 2 || got.Weekday() != time.Monday {
		t.Errorf("expected Monday 2 March, got %v", got)
	}
}
