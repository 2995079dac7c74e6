// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of items returned per page.
const PageSize = 50

// ParseStart extracts the 1-based "start" query parameter.
// Returns 1 if not present or invalid.
func ParseStart(r *http.Request) int {
	s := query.Get(r, "start")
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Page holds one window of a larger result set plus the values a client
// needs to walk it.
type Page[T any] struct {
	Items     []T `json:"items"`
	Total     int `json:"total"`
	Start     int `json:"start"`      // 1-based index of the first item, 0 when empty
	End       int `json:"end"`        // 1-based index of the last item, 0 when empty
	NextStart int `json:"next_start"` // start value for the next page, 0 when on the last page
}

// Window slices items to the page beginning at the 1-based start index.
// A start past the end yields an empty page.
func Window[T any](items []T, start int) Page[T] {
	return windowWithSize(items, start, PageSize)
}

func windowWithSize[T any](items []T, start, pageSize int) Page[T] {
	total := len(items)
	if start < 1 {
		start = 1
	}
	if start > total {
		return Page[T]{Items: []T{}, Total: total}
	}

	end := start + pageSize - 1
	if end > total {
		end = total
	}

	p := Page[T]{
		Items: items[start-1 : end],
		Total: total,
		Start: start,
		End:   end,
	}
	if end < total {
		p.NextStart = end + 1
	}
	return p
}
