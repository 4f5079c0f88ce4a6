package shared

// PageRequest asks a repository for one page of aggregates.
type PageRequest struct {
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 24
	MaxPageSize     = 100
)

// Normalize clamps the request into the supported range. Page numbers are
// 1-based.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset is the row offset of the first item on the page.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Page is one page of aggregates plus pagination metadata.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int64
	TotalPages int
}

// NewPage assembles pagination metadata from the normalized request and the
// total row count.
func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	pages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}
