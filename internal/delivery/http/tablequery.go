package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"botadmin-backend/internal/usecase/tableview"
)

// parseTableQuery reads the optional table parameters. The second return is
// false when the request carries none of them, in which case list endpoints
// return the full collection and the page filters client-side.
//
//	?search=...&filter.col=a,b&min.col=&max.col=&from.col=&to.col=
//	&sort=col&dir=asc|desc&page=N
func parseTableQuery(r *http.Request) (tableview.Query, bool) {
	q := tableview.Query{
		ValueFilters:   map[string][]string{},
		NumericFilters: map[string]tableview.NumericRange{},
		TimeFilters:    map[string]tableview.TimeRange{},
	}
	present := false

	for key, values := range r.URL.Query() {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		v := values[0]
		switch {
		case key == "search":
			q.Search = v
			present = true
		case key == "sort":
			q.SortKey = v
			present = true
		case key == "dir":
			q.SortDir = v
			present = true
		case key == "page":
			if n, err := strconv.Atoi(v); err == nil {
				q.Page = n
				present = true
			}
		case strings.HasPrefix(key, "filter."):
			col := strings.TrimPrefix(key, "filter.")
			q.ValueFilters[col] = strings.Split(v, ",")
			present = true
		case strings.HasPrefix(key, "min."):
			col := strings.TrimPrefix(key, "min.")
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				nr := q.NumericFilters[col]
				nr.Min = &n
				q.NumericFilters[col] = nr
				present = true
			}
		case strings.HasPrefix(key, "max."):
			col := strings.TrimPrefix(key, "max.")
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				nr := q.NumericFilters[col]
				nr.Max = &n
				q.NumericFilters[col] = nr
				present = true
			}
		case strings.HasPrefix(key, "from."):
			col := strings.TrimPrefix(key, "from.")
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				tr := q.TimeFilters[col]
				tr.From = t
				q.TimeFilters[col] = tr
				present = true
			}
		case strings.HasPrefix(key, "to."):
			col := strings.TrimPrefix(key, "to.")
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				tr := q.TimeFilters[col]
				tr.To = t
				q.TimeFilters[col] = tr
				present = true
			}
		}
	}
	return q, present
}
