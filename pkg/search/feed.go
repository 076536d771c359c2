package search

// DefaultPageSize is the number of rows revealed per page.
const DefaultPageSize = 100

// ProximityRows is how close (in rows) the viewport end must come to the end of the
// revealed window before the next page is revealed.
const ProximityRows = 3

// Feed tracks how much of a result set is revealed. Page is 1-based and
// never exceeds LastPage (or 1 for an empty result).
type Feed struct {
	pageSize int
	page     int
	total    int
}

// NewFeed creates a feed; a non-positive pageSize uses DefaultPageSize.
func NewFeed(pageSize int) *Feed {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Feed{pageSize: pageSize, page: 1}
}

// Reset starts over at page 1 for a result set of total rows.
func (f *Feed) Reset(total int) {
	f.total = total
	f.page = 1
}

func (f *Feed) Page() int     { return f.page }
func (f *Feed) PageSize() int { return f.pageSize }
func (f *Feed) Total() int    { return f.total }

// LastPage is ceil(total / pageSize), 0 for an empty result.
func (f *Feed) LastPage() int {
	return (f.total + f.pageSize - 1) / f.pageSize
}

// End is the number of revealed rows.
func (f *Feed) End() int {
	return min(f.page*f.pageSize, f.total)
}

// RequestMore reveals the next page. It reports false when already at the last page.
func (f *Feed) RequestMore() bool {
	if f.page >= f.LastPage() {
		return false
	}
	f.page++
	return true
}

// Observe is the proximity signal: viewportEnd is one past the last row the consumer
// currently shows. Near the end of the revealed window it requests the next page.
func (f *Feed) Observe(viewportEnd int) bool {
	if viewportEnd+ProximityRows < f.End() {
		return false
	}
	return f.RequestMore()
}

// Window returns the revealed prefix of items.
func Window[T any](f *Feed, items []T) []T {
	return items[:min(f.End(), len(items))]
}
