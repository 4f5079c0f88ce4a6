package shared

import "testing"

func TestPageRequestNormalize(t *testing.T) {
	cases := []struct {
		name     string
		in       PageRequest
		page     int
		pageSize int
	}{
		{"defaults", PageRequest{}, 1, DefaultPageSize},
		{"negative page", PageRequest{Page: -3, PageSize: 10}, 1, 10},
		{"oversized page size", PageRequest{Page: 2, PageSize: 500}, 2, MaxPageSize},
		{"already valid", PageRequest{Page: 4, PageSize: 24}, 4, 24},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if got.Page != tc.page || got.PageSize != tc.pageSize {
				t.Errorf("Normalize() = %+v, want page=%d size=%d", got, tc.page, tc.pageSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 24}
	if req.Offset() != 48 {
		t.Errorf("Offset() = %d, want 48", req.Offset())
	}
}

func TestNewPageMetadata(t *testing.T) {
	req := PageRequest{Page: 2, PageSize: 24}.Normalize()
	items := make([]int, 24)
	page := NewPage(items, req, 50)

	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
	if page.TotalItems != 50 {
		t.Errorf("TotalItems = %d, want 50", page.TotalItems)
	}
	if page.Page != 2 || page.PageSize != 24 {
		t.Errorf("page metadata = %d/%d", page.Page, page.PageSize)
	}
}

func TestNewPageEmptyResultStillHasOnePage(t *testing.T) {
	req := PageRequest{Page: 1, PageSize: 24}.Normalize()
	page := NewPage([]string{}, req, 0)
	if page.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", page.TotalPages)
	}
}

func TestNewPageExactMultiple(t *testing.T) {
	req := PageRequest{Page: 1, PageSize: 10}.Normalize()
	page := NewPage(make([]int, 10), req, 30)
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
}
