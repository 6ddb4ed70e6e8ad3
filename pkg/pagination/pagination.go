// Package pagination extracts paging, sorting and search parameters from
// requests and applies them to in-memory slices or SQL queries. Both
// backends honor the same contract: identical metadata, identical clamping.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is the page window requested by the client.
type Params struct {
	Page    int
	PerPage int
}

// ParamsFromRequest reads page and per_page from the query string.
// Page is floored at 1; per_page is clamped to [1, MaxPerPage].
func ParamsFromRequest(r *http.Request) Params {
	page := intQuery(r, "page", DefaultPage)
	perPage := intQuery(r, "per_page", DefaultPerPage)

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Sort is a requested ordering. Order is always "asc" or "desc".
type Sort struct {
	Field string
	Order string
}

// SortFromRequest reads sort_by and order from the query string. An
// unrecognized order falls back to asc; validating Field against the
// entity's whitelist is the caller's job.
func SortFromRequest(r *http.Request) Sort {
	order := strings.ToLower(r.URL.Query().Get("order"))
	if order != "asc" && order != "desc" {
		order = "asc"
	}
	return Sort{Field: r.URL.Query().Get("sort_by"), Order: order}
}

// SearchFromRequest reads the free-text search term. Empty means no filter.
func SearchFromRequest(r *http.Request) string {
	return strings.TrimSpace(r.URL.Query().Get("search"))
}

// Unpaginated reports whether the client asked for the full list
// (paginate=false).
func Unpaginated(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("paginate"), "false")
}

// Meta is the pagination block returned alongside page data.
type Meta struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
	NextPage   *int `json:"next_page"`
	PrevPage   *int `json:"prev_page"`
}

// NewMeta computes metadata for a window over total items.
func NewMeta(p Params, total int) Meta {
	totalPages := 0
	if total > 0 {
		totalPages = (total + p.PerPage - 1) / p.PerPage
	}
	m := Meta{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    p.Page < totalPages,
		HasPrev:    p.Page > 1,
	}
	if m.HasNext {
		next := p.Page + 1
		m.NextPage = &next
	}
	if m.HasPrev {
		prev := p.Page - 1
		m.PrevPage = &prev
	}
	return m
}

// Slice pages an in-memory list. A window past the end yields an empty
// (non-nil) page with correct metadata.
func Slice[T any](items []T, p Params) ([]T, Meta) {
	total := len(items)
	offset := (p.Page - 1) * p.PerPage
	if offset > total {
		offset = total
	}
	end := offset + p.PerPage
	if end > total {
		end = total
	}
	page := make([]T, end-offset)
	copy(page, items[offset:end])
	return page, NewMeta(p, total)
}

// Matches reports whether any of the candidate field values contains term,
// case-insensitive. An empty term matches everything.
func Matches(term string, values ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

// OrderBy renders an ORDER BY clause from a whitelist of sortable fields
// mapped to their column names. Unknown fields produce the fallback so
// unsortable requests are a no-op rather than an error.
func OrderBy(s Sort, allowed map[string]string, fallback string) string {
	col, ok := allowed[s.Field]
	if !ok {
		col = fallback
	}
	if col == "" {
		return ""
	}
	dir := "ASC"
	if s.Order == "desc" {
		dir = "DESC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", col, dir)
}

// SearchClause builds an OR-combined ILIKE predicate over the given
// columns, starting placeholders at argIndex. Empty terms return no clause.
func SearchClause(term string, columns []string, argIndex int) (string, []any) {
	if term == "" || len(columns) == 0 {
		return "", nil
	}
	preds := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		preds[i] = fmt.Sprintf("%s ILIKE $%d", col, argIndex+i)
		args[i] = "%" + term + "%"
	}
	return "(" + strings.Join(preds, " OR ") + ")", args
}

// LimitOffset converts a window to SQL LIMIT/OFFSET values.
func LimitOffset(p Params) (limit, offset int) {
	return p.PerPage, (p.Page - 1) * p.PerPage
}

func intQuery(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
