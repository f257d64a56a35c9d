package common

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQueryFromValues(t *testing.T) {
	testCases := []struct {
		name  string
		query string
		want  ListQuery
	}{
		{
			name:  "defaults",
			query: "",
			want:  ListQuery{SortBy: "createdAt", SortDirection: SortDesc, PageNumber: 1, PageSize: 10},
		},
		{
			name:  "explicit values",
			query: "sortBy=name&sortDirection=asc&pageNumber=3&pageSize=5",
			want:  ListQuery{SortBy: "name", SortDirection: SortAsc, PageNumber: 3, PageSize: 5},
		},
		{
			name:  "garbage falls back",
			query: "sortDirection=sideways&pageNumber=abc&pageSize=-4",
			want:  ListQuery{SortBy: "createdAt", SortDirection: SortDesc, PageNumber: 1, PageSize: 10},
		},
		{
			name:  "zero page size",
			query: "pageSize=0&pageNumber=0",
			want:  ListQuery{SortBy: "createdAt", SortDirection: SortDesc, PageNumber: 1, PageSize: 10},
		},
		{
			name:  "upper case direction",
			query: "sortDirection=ASC",
			want:  ListQuery{SortBy: "createdAt", SortDirection: SortAsc, PageNumber: 1, PageSize: 10},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			qs, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, ListQueryFromValues(qs))
		})
	}
}

func TestListQuery_Normalize(t *testing.T) {
	q := ListQuery{SortDirection: "up", PageNumber: -1}.Normalize()
	assert.Equal(t, DefaultListQuery(), q)
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, ListQuery{PageNumber: 1, PageSize: 10}.Offset())
	assert.Equal(t, 20, ListQuery{PageNumber: 3, PageSize: 10}.Offset())
	assert.Equal(t, 7, ListQuery{PageNumber: 2, PageSize: 7}.Offset())
	assert.Equal(t, 0, ListQuery{}.Offset())
	assert.Equal(t, math.MaxInt, ListQuery{PageNumber: math.MaxInt, PageSize: 10}.Offset())
	assert.Equal(t, math.MaxInt, ListQuery{PageNumber: 2, PageSize: math.MaxInt}.Offset())

	qs := url.Values{"pageNumber": {strconv.Itoa(math.MaxInt)}, "pageSize": {"10"}}
	assert.Equal(t, math.MaxInt, ListQueryFromValues(qs).Offset())
}

func TestListQuery_OrderBy(t *testing.T) {
	columns := map[string]string{"createdAt": "created_at", "name": "name"}

	testCases := []struct {
		name string
		q    ListQuery
		want string
	}{
		{"known field", ListQuery{SortBy: "name", SortDirection: SortAsc}, "ORDER BY name ASC, id ASC"},
		{"default", ListQuery{SortBy: "createdAt", SortDirection: SortDesc}, "ORDER BY created_at DESC, id DESC"},
		{"unknown field", ListQuery{SortBy: "password; DROP TABLE", SortDirection: SortDesc}, "ORDER BY created_at DESC, id DESC"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.q.OrderBy(columns))
		})
	}
}

func TestPagesCount(t *testing.T) {
	testCases := []struct {
		total, size, want int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{12, 5, 3},
		{3, 0, 0},
		{2, math.MaxInt, 1},
		{math.MaxInt, math.MaxInt, 1},
		{math.MaxInt, 1, math.MaxInt},
		{math.MaxInt, 2, math.MaxInt/2 + 1},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, PagesCount(tc.total, tc.size), "total=%d size=%d", tc.total, tc.size)
	}
}

func TestNewPage(t *testing.T) {
	q := ListQuery{PageNumber: 2, PageSize: 3}

	p := NewPage[string](nil, 7, q)
	assert.Equal(t, 3, p.PagesCount)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.PageSize)
	assert.Equal(t, 7, p.TotalCount)

	b, err := json.Marshal(p)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"pagesCount":3,"page":2,"pageSize":3,"totalCount":7,"items":[]}`, string(b))
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%abc%", ContainsPattern("abc"))
	assert.Equal(t, `%50\%\_off\\%`, ContainsPattern(`50%_off\`))
}
