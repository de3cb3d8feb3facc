package feed

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageSpec is a page request for the BEFORE direction of the feed.
// AFTER queries are never paged; new-item lists are assumed small.
type PageSpec struct {
	Page int // zero-based page index
	Size int // items per page; 0 means unspecified
}

// Normalize clamps the spec into its valid range. Malformed paging
// input is corrected, never rejected: a negative page becomes 0, a
// missing size becomes the default, and the size is bounded to
// [1, 100]. Callers are not trusted to do this themselves.
func (p PageSpec) Normalize() PageSpec {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size == 0 {
		p.Size = defaultPageSize
	}
	if p.Size < 1 {
		p.Size = 1
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	return p
}

// Offset returns the row offset of the page within the bounded result set.
func (p PageSpec) Offset() int {
	return p.Page * p.Size
}
