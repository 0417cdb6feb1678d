package ingestion

import "time"

// Window is the half-open pickup-time interval [Start, End) a load covers.
// Trip datasets carry naive local timestamps, so both bounds are wall-clock
// values in UTC with no offset semantics.
type Window struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the window covering one calendar month:
// [first of month, first of next month).
func MonthWindow(year int, month time.Month) Window {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: start.AddDate(0, 1, 0)}
}

// IsEmpty reports whether the window selects nothing: a zero-length or
// inverted interval.
func (w Window) IsEmpty() bool {
	return !w.Start.Before(w.End)
}

// Contains reports whether t falls inside the window. The lower bound is
// inclusive, the upper exclusive, so adjacent windows never double-count
// a trip on the boundary.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// String renders the window for logs.
func (w Window) String() string {
	const layout = "2006-01-02T15:04:05"
	return w.Start.Format(layout) + ".." + w.End.Format(layout)
}
