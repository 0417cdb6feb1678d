package stats

import (
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
)

// Filter narrows a trip table the way the dashboard sidebar does: pickup
// date range, exact passenger count, payment type. Nil/zero fields match
// everything.
type Filter struct {
	// From is the inclusive lower bound on pickup time.
	From *time.Time
	// To is the exclusive upper bound on pickup time, consistent with the
	// loader's half-open window.
	To *time.Time
	// Passengers matches trips with exactly this recorded count. Trips with
	// no recorded count never match a set filter.
	Passengers *int64
	// Payment matches the TLC payment code; 0 means any.
	Payment int64
}

// Matches reports whether one trip passes the filter.
func (f Filter) Matches(t models.TripRecord) bool {
	if f.From != nil && t.PickupTime.Before(*f.From) {
		return false
	}
	if f.To != nil && !t.PickupTime.Before(*f.To) {
		return false
	}
	if f.Passengers != nil {
		if t.PassengerCount == nil || *t.PassengerCount != *f.Passengers {
			return false
		}
	}
	if f.Payment != 0 && t.PaymentType != f.Payment {
		return false
	}
	return true
}

// Apply returns the trips passing the filter, in input order.
func Apply(table models.TripTable, f Filter) models.TripTable {
	out := make(models.TripTable, 0, len(table))
	for _, t := range table {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}
