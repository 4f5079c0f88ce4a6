package mocks

import (
	"strconv"

	"podmarket/domain/shared"
)

// newestFirst orders decimal string ids numerically descending, matching the
// ORDER BY id DESC the MySQL repositories use.
func newestFirst(a, b string) bool {
	ka, _ := strconv.ParseUint(a, 10, 64)
	kb, _ := strconv.ParseUint(b, 10, 64)
	return ka > kb
}

// pageSlice cuts one page out of the full sorted slice.
func pageSlice[T any](items []T, req shared.PageRequest) []T {
	start := req.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
