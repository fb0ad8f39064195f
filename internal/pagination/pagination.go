// Package pagination parses and normalizes page/per_page query parameters.
package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/janus/apiserver/types"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

var (
	ErrInvalidPage    = errors.New("page must be >= 1")
	ErrInvalidPerPage = fmt.Errorf("per_page must be between 1 and %d", MaxPerPage)
)

type Params struct {
	Page    int
	PerPage int
}

func Default() Params {
	return Params{Page: DefaultPage, PerPage: DefaultPerPage}
}

func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func (p Params) Limit() int {
	return p.PerPage
}

// Validate rejects out-of-range values instead of clamping them.
func (p Params) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		return ErrInvalidPerPage
	}
	return nil
}

// Clamp forces page >= 1 and per_page into [1, MaxPerPage].
func (p Params) Clamp() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	if p.PerPage > MaxPerPage {
		p.PerPage = MaxPerPage
	}
	return p
}

// FromRequest reads page and per_page from the query string. Absent values
// take the defaults, out-of-range values are clamped and non-integers fail.
func FromRequest(r *http.Request) (Params, error) {
	q := r.URL.Query()
	p := Default()

	var err error
	if p.Page, err = intParam(q.Get("page"), DefaultPage); err != nil {
		return Params{}, fmt.Errorf("invalid page: %w", err)
	}
	if p.PerPage, err = intParam(q.Get("per_page"), DefaultPerPage); err != nil {
		return Params{}, fmt.Errorf("invalid per_page: %w", err)
	}
	return p.Clamp(), nil
}

// intParam parses a 32-bit query value, which keeps (page-1)*per_page far
// from overflowing int.
func intParam(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// TotalPages is ceil(total / perPage), zero when there is nothing to page.
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// NewPage wraps items in the list envelope. A nil slice is returned as empty.
func NewPage[T any](items []T, total int64, p Params) types.Page[T] {
	if items == nil {
		items = []T{}
	}
	return types.Page[T]{
		Items:      items,
		Total:      total,
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalPages: TotalPages(total, p.PerPage),
	}
}
