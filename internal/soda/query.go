package soda

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// floatingTimestampLayout is the literal layout SODA expects for
// floating_timestamp comparisons. Trip datasets store local wall-clock
// times with no zone, so the layout carries no offset.
const floatingTimestampLayout = "2006-01-02T15:04:05"

// Query describes one SoQL request against a dataset resource.
//
// Zero values are omitted from the encoded form: an empty Select means
// "all columns", an empty Where no filter, a zero Limit no cap.
type Query struct {
	Select []string
	Where  string
	Order  string
	Limit  int
}

// Encode renders the query as SODA request parameters ($select, $where,
// $order, $limit).
func (q Query) Encode() url.Values {
	v := url.Values{}
	if len(q.Select) > 0 {
		v.Set("$select", strings.Join(q.Select, ","))
	}
	if q.Where != "" {
		v.Set("$where", q.Where)
	}
	if q.Order != "" {
		v.Set("$order", q.Order)
	}
	if q.Limit > 0 {
		v.Set("$limit", strconv.Itoa(q.Limit))
	}
	return v
}

// TimeLiteral formats t as a SODA floating_timestamp literal suitable for
// interpolation into a $where clause.
func TimeLiteral(t time.Time) string {
	return "'" + t.Format(floatingTimestampLayout) + "'::floating_timestamp"
}

// RowSet is the decoded tabular payload of one resource request: the header
// row and the data records, both in response order.
type RowSet struct {
	Columns []string
	Records [][]string
}
