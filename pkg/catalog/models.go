package catalog

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Lecture is one catalog record. Lectures are never modified after they are fetched.
type Lecture struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Grade    int    `json:"grade"`
	Major    string `json:"major"`
	Credits  string `json:"credits"`  // e.g. "3" or "3(2)"
	Schedule string `json:"schedule"` // e.g. "월1,2,3(A-101)<p>수4(B-202)"
}

// MajorSegments splits a major string on the <p> markers the catalog embeds,
// e.g. "공과대학<p>컴퓨터공학과" -> ["공과대학", "컴퓨터공학과"].
func MajorSegments(major string) []string {
	if !strings.Contains(major, "<") {
		if s := strings.TrimSpace(major); s != "" {
			return []string{s}
		}
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(major))
	if err != nil {
		return []string{major}
	}

	var segments []string
	doc.Find("body").Contents().Each(func(i int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			segments = append(segments, text)
		}
	})
	return segments
}

// MajorLabel renders a major for option lists, markers replaced by spaces.
func MajorLabel(major string) string {
	return strings.Join(MajorSegments(major), " ")
}

// MajorTag is the short form shown on a selected filter tag: the last segment.
func MajorTag(major string) string {
	segments := MajorSegments(major)
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// Majors returns the distinct non-empty majors of lectures in first-seen order.
func Majors(lectures []Lecture) []string {
	seen := make(map[string]bool)
	var majors []string
	for _, l := range lectures {
		if l.Major != "" && !seen[l.Major] {
			seen[l.Major] = true
			majors = append(majors, l.Major)
		}
	}
	return majors
}
