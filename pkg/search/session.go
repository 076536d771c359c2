package search

import (
	"timetabler/pkg/catalog"
)

// Session holds one search: the catalog, the current options, the filtered result
// and the feed revealing it. The result is recomputed on exactly two events,
// SetCatalog and a changing SetOptions, and each recompute resets the feed.
type Session struct {
	catalog  []catalog.Lecture
	majors   []string
	options  Options
	filtered []catalog.Lecture
	feed     *Feed

	recomputes   int
	pendingCheck bool
}

// NewSession creates an empty session revealing pageSize rows per page.
func NewSession(pageSize int) *Session {
	return &Session{feed: NewFeed(pageSize)}
}

// SetCatalog installs the fetched catalog and recomputes the result.
func (s *Session) SetCatalog(lectures []catalog.Lecture) {
	s.catalog = lectures
	s.majors = catalog.Majors(lectures)
	s.recompute()
}

// SetOptions replaces the options. Unchanged options are ignored and reported as false.
func (s *Session) SetOptions(opts Options) bool {
	if opts.Equal(s.options) {
		return false
	}
	s.options = opts.Clone()
	s.recompute()
	return true
}

func (s *Session) recompute() {
	s.filtered = Filter(s.catalog, s.options)
	s.feed.Reset(len(s.filtered))
	s.recomputes++
	s.pendingCheck = true
}

// Options returns a copy of the current options.
func (s *Session) Options() Options { return s.options.Clone() }

// Catalog returns the installed catalog.
func (s *Session) Catalog() []catalog.Lecture { return s.catalog }

// Majors lists the catalog's majors in first-seen order.
func (s *Session) Majors() []string { return s.majors }

// Filtered returns the whole filtered result.
func (s *Session) Filtered() []catalog.Lecture { return s.filtered }

// Visible returns the revealed part of the filtered result.
func (s *Session) Visible() []catalog.Lecture { return Window(s.feed, s.filtered) }

func (s *Session) Total() int    { return len(s.filtered) }
func (s *Session) Page() int     { return s.feed.Page() }
func (s *Session) LastPage() int { return s.feed.LastPage() }

// Recomputes counts how many times the filter has run.
func (s *Session) Recomputes() int { return s.recomputes }

// RequestMore reveals the next page.
func (s *Session) RequestMore() bool { return s.feed.RequestMore() }

// Observe forwards a proximity report to the feed and clears any pending re-check.
func (s *Session) Observe(viewportEnd int) bool {
	s.pendingCheck = false
	return s.feed.Observe(viewportEnd)
}

// NeedsProximityCheck reports whether the result changed since the last Observe,
// in which case the consumer should report its viewport again once it has re-rendered.
func (s *Session) NeedsProximityCheck() bool { return s.pendingCheck }

// Lecture finds a catalog lecture by id.
func (s *Session) Lecture(id string) (catalog.Lecture, bool) {
	for _, l := range s.catalog {
		if l.ID == id {
			return l, true
		}
	}
	return catalog.Lecture{}, false
}
