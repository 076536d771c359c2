package catalog

import (
	"reflect"
	"testing"
)

func TestMajorLabels(t *testing.T) {
	major := "공과대학<p>컴퓨터공학과<p>소프트웨어전공"

	if got := MajorSegments(major); !reflect.DeepEqual(got, []string{"공과대학", "컴퓨터공학과", "소프트웨어전공"}) {
		t.Errorf("unexpected segments: %v", got)
	}
	if got := MajorLabel(major); got != "공과대학 컴퓨터공학과 소프트웨어전공" {
		t.Errorf("unexpected label: %q", got)
	}
	if got := MajorTag(major); got != "소프트웨어전공" {
		t.Errorf("unexpected tag: %q", got)
	}
	if got := MajorTag("교양"); got != "교양" {
		t.Errorf("expected plain majors to be returned as is, got %q", got)
	}
	if got := MajorTag(""); got != "" {
		t.Errorf("expected empty tag for empty major, got %q", got)
	}
}

func TestMajors(t *testing.T) {
	lectures := []Lecture{{Major: "B"}, {Major: "A"}, {}, {Major: "B"}, {Major: "C"}}
	if got := Majors(lectures); !reflect.DeepEqual(got, []string{"B", "A", "C"}) {
		t.Errorf("expected first-seen order, got %v", got)
	}
}
