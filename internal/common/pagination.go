package common

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultSortBy     = "createdAt"
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListQuery is the paging and ordering part shared by every list endpoint.
// Resource specific search terms live next to it in each service.
type ListQuery struct {
	SortBy        string
	SortDirection SortDirection
	PageNumber    int
	PageSize      int
}

// DefaultListQuery returns the query used when a client sends no parameters.
func DefaultListQuery() ListQuery {
	return ListQuery{
		SortBy:        DefaultSortBy,
		SortDirection: SortDesc,
		PageNumber:    DefaultPageNumber,
		PageSize:      DefaultPageSize,
	}
}

// ListQueryFromValues reads sortBy, sortDirection, pageNumber and pageSize.
// Missing, malformed or non-positive values fall back to the defaults.
func ListQueryFromValues(qs url.Values) ListQuery {
	q := DefaultListQuery()

	if s := strings.TrimSpace(qs.Get("sortBy")); s != "" {
		q.SortBy = s
	}

	if strings.EqualFold(qs.Get("sortDirection"), string(SortAsc)) {
		q.SortDirection = SortAsc
	}

	q.PageNumber = parsePositiveInt(qs, "pageNumber", DefaultPageNumber)
	q.PageSize = parsePositiveInt(qs, "pageSize", DefaultPageSize)

	return q
}

func parsePositiveInt(qs url.Values, key string, defaultVal int) int {
	raw := qs.Get(key)
	if raw == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return defaultVal
	}

	return n
}

// Normalize replaces out-of-range values set by callers that did not go
// through ListQueryFromValues.
func (q ListQuery) Normalize() ListQuery {
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.SortDirection != SortAsc {
		q.SortDirection = SortDesc
	}
	if q.PageNumber < 1 {
		q.PageNumber = DefaultPageNumber
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of wrapping for page numbers far past the last page.
func (q ListQuery) Offset() int {
	if q.PageNumber < 1 || q.PageSize < 1 {
		return 0
	}
	if q.PageNumber-1 > math.MaxInt/q.PageSize {
		return math.MaxInt
	}
	return (q.PageNumber - 1) * q.PageSize
}

// OrderBy renders an ORDER BY clause. columns maps public field names to SQL
// columns; unknown sort fields fall back to createdAt. id is always the
// tiebreaker so pages do not overlap.
func (q ListQuery) OrderBy(columns map[string]string) string {
	col, ok := columns[q.SortBy]
	if !ok {
		col = columns[DefaultSortBy]
	}

	dir := "DESC"
	if q.SortDirection == SortAsc {
		dir = "ASC"
	}

	return "ORDER BY " + col + " " + dir + ", id " + dir
}

// Page is the pagination envelope returned by every list operation.
type Page[T any] struct {
	PagesCount int `json:"pagesCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalCount"`
	Items      []T `json:"items"`
}

func NewPage[T any](items []T, total int, q ListQuery) Page[T] {
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		PagesCount: PagesCount(total, q.PageSize),
		Page:       q.PageNumber,
		PageSize:   q.PageSize,
		TotalCount: total,
		Items:      items,
	}
}

// PagesCount is ceil(total/pageSize).
func PagesCount(total, pageSize int) int {
	if pageSize < 1 {
		return 0
	}

	n := total / pageSize
	if total%pageSize != 0 {
		n++
	}
	return n
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns a search term into an ILIKE pattern matching it as a
// literal substring.
func ContainsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}
