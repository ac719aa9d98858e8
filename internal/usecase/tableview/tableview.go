// Package tableview is the one filter/sort/paginate engine behind every
// dashboard table. Tables declare their columns with typed accessors; the
// engine applies a Query without mutating the input rows.
package tableview

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// PageSize is the fixed number of rows per page.
const PageSize = 50

// Sort directions. An empty direction leaves rows in input order.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Column declares one table column over rows of type T.
type Column[T any] struct {
	Key      string
	Label    string
	GetValue func(row T) any
	// Searchable columns participate in the free-text search.
	Searchable bool
	Sortable   bool
}

// Table is a set of column declarations for a row type.
type Table[T any] struct {
	columns map[string]Column[T]
	order   []string
}

// NewTable builds a table from ordered column declarations. Duplicate keys
// panic; tables are static wiring, not runtime input.
func NewTable[T any](columns ...Column[T]) *Table[T] {
	t := &Table[T]{columns: make(map[string]Column[T], len(columns))}
	for _, c := range columns {
		if _, dup := t.columns[c.Key]; dup {
			panic(fmt.Sprintf("tableview: duplicate column %q", c.Key))
		}
		t.columns[c.Key] = c
		t.order = append(t.order, c.Key)
	}
	return t
}

// Columns returns the declared keys in order.
func (t *Table[T]) Columns() []string {
	return append([]string(nil), t.order...)
}

// NumericRange filters a numeric column to [Min, Max]; nil bounds are open.
type NumericRange struct {
	Min *float64
	Max *float64
}

// TimeRange filters a time column to [From, To]; zero bounds are open.
type TimeRange struct {
	From time.Time
	To   time.Time
}

// Query is one table request. All filters AND together.
type Query struct {
	// Search matches case-insensitively against every searchable column.
	Search string
	// ValueFilters keeps rows whose column value is in the selected set.
	// An empty set for a key means no filter on that column.
	ValueFilters map[string][]string
	// NumericFilters keeps rows whose column value is within range.
	// Rows with a nil value pass.
	NumericFilters map[string]NumericRange
	// TimeFilters keeps rows whose column time is within range.
	// Rows with a nil value pass.
	TimeFilters map[string]TimeRange
	SortKey     string
	SortDir     string
	Page        int
}

// Result is one page of a filtered, sorted table.
type Result[T any] struct {
	Rows       []T `json:"rows"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// Apply runs the query: filter, sort, paginate. The input slice is never
// reordered or modified.
func (t *Table[T]) Apply(rows []T, q Query) Result[T] {
	filtered := t.filter(rows, q)
	t.sortRows(filtered, q)
	return paginate(filtered, q.Page)
}

func (t *Table[T]) filter(rows []T, q Query) []T {
	out := make([]T, 0, len(rows))
	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, row := range rows {
		if search != "" && !t.matchesSearch(row, search) {
			continue
		}
		if !t.matchesValues(row, q.ValueFilters) {
			continue
		}
		if !t.matchesNumeric(row, q.NumericFilters) {
			continue
		}
		if !t.matchesTime(row, q.TimeFilters) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (t *Table[T]) matchesSearch(row T, search string) bool {
	for _, key := range t.order {
		col := t.columns[key]
		if !col.Searchable {
			continue
		}
		s, ok := stringValue(col.GetValue(row))
		if ok && strings.Contains(strings.ToLower(s), search) {
			return true
		}
	}
	return false
}

func (t *Table[T]) matchesValues(row T, filters map[string][]string) bool {
	for key, selected := range filters {
		if len(selected) == 0 {
			continue
		}
		col, ok := t.columns[key]
		if !ok {
			continue
		}
		s, _ := stringValue(col.GetValue(row))
		found := false
		for _, want := range selected {
			if s == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (t *Table[T]) matchesNumeric(row T, filters map[string]NumericRange) bool {
	for key, r := range filters {
		col, ok := t.columns[key]
		if !ok {
			continue
		}
		v, present := numericValue(col.GetValue(row))
		if !present {
			continue
		}
		if r.Min != nil && v < *r.Min {
			return false
		}
		if r.Max != nil && v > *r.Max {
			return false
		}
	}
	return true
}

func (t *Table[T]) matchesTime(row T, filters map[string]TimeRange) bool {
	for key, r := range filters {
		col, ok := t.columns[key]
		if !ok {
			continue
		}
		v, present := timeValue(col.GetValue(row))
		if !present {
			continue
		}
		if !r.From.IsZero() && v.Before(r.From) {
			return false
		}
		if !r.To.IsZero() && v.After(r.To) {
			return false
		}
	}
	return true
}

func (t *Table[T]) sortRows(rows []T, q Query) {
	if q.SortKey == "" || q.SortDir == "" {
		return
	}
	col, ok := t.columns[q.SortKey]
	if !ok || !col.Sortable {
		return
	}
	desc := q.SortDir == SortDesc

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := col.GetValue(rows[i]), col.GetValue(rows[j])

		// nil sorts last regardless of direction
		aNil, bNil := isNil(a), isNil(b)
		if aNil || bNil {
			return !aNil && bNil
		}

		if an, aok := numericValue(a); aok {
			if bn, bok := numericValue(b); bok {
				if desc {
					return an > bn
				}
				return an < bn
			}
		}
		if at, aok := timeValue(a); aok {
			if bt, bok := timeValue(b); bok {
				if desc {
					return at.After(bt)
				}
				return at.Before(bt)
			}
		}

		as, _ := stringValue(a)
		bs, _ := stringValue(b)
		as, bs = strings.ToLower(as), strings.ToLower(bs)
		if desc {
			return as > bs
		}
		return as < bs
	})
}

func paginate[T any](rows []T, page int) Result[T] {
	total := len(rows)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages == 0 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return Result[T]{
		Rows:       rows[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

// NextSortDir implements the header-click cycle asc -> desc -> off.
func NextSortDir(current string) string {
	switch current {
	case "":
		return SortAsc
	case SortAsc:
		return SortDesc
	default:
		return ""
	}
}

func isNil(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case *float64:
		return x == nil
	case *int:
		return x == nil
	case *int64:
		return x == nil
	case *string:
		return x == nil
	case *time.Time:
		return x == nil
	default:
		return false
	}
}

// numericValue normalizes a cell to float64. The bool is false for nils and
// non-numeric values.
func numericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case *float64:
		if x == nil {
			return 0, false
		}
		return *x, true
	case int:
		return float64(x), true
	case *int:
		if x == nil {
			return 0, false
		}
		return float64(*x), true
	case int64:
		return float64(x), true
	case *int64:
		if x == nil {
			return 0, false
		}
		return float64(*x), true
	default:
		return 0, false
	}
}

func timeValue(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case *time.Time:
		if x == nil {
			return time.Time{}, false
		}
		return *x, true
	default:
		return time.Time{}, false
	}
}

// stringValue renders a cell for search and categorical matching. The bool
// is false only for nils.
func stringValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case *string:
		if x == nil {
			return "", false
		}
		return *x, true
	case bool:
		return strconv.FormatBool(x), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case *float64:
		if x == nil {
			return "", false
		}
		return strconv.FormatFloat(*x, 'f', -1, 64), true
	case int:
		return strconv.Itoa(x), true
	case *int:
		if x == nil {
			return "", false
		}
		return strconv.Itoa(*x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case *int64:
		if x == nil {
			return "", false
		}
		return strconv.FormatInt(*x, 10), true
	case time.Time:
		return x.Format(time.RFC3339), true
	case *time.Time:
		if x == nil {
			return "", false
		}
		return x.Format(time.RFC3339), true
	default:
		return fmt.Sprint(x), true
	}
}
