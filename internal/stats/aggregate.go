// Package stats computes the dashboard aggregations over a loaded trip
// table: headline KPIs, per-borough breakdowns, the trip-distance
// histogram, and the pickup-borough ranking. All functions are pure and
// leave the input table untouched.
package stats

import (
	"sort"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
)

const (
	// DefaultHistogramBins matches the dashboard's distance chart.
	DefaultHistogramBins = 50
	// DefaultTopBoroughs matches the dashboard's pickup ranking.
	DefaultTopBoroughs = 10
)

// Summarize computes the headline figures for a table. An empty table
// yields all zeros.
func Summarize(table models.TripTable) models.Summary {
	if len(table) == 0 {
		return models.Summary{}
	}

	var sumFare, sumDist, sumTip float64
	for _, t := range table {
		sumFare += t.FareAmount
		sumDist += t.TripDistance
		sumTip += t.TipAmount
	}
	n := float64(len(table))

	return models.Summary{
		TotalTrips:  int64(len(table)),
		AvgFare:     sumFare / n,
		AvgDistance: sumDist / n,
		AvgTip:      sumTip / n,
	}
}

// AvgFareByBorough groups trips by pickup borough and averages fare_amount,
// sorted by average fare descending (ties broken by borough name).
func AvgFareByBorough(table models.TripTable) []models.BoroughFare {
	sums := map[string]float64{}
	counts := map[string]int64{}
	for _, t := range table {
		sums[t.PUBorough] += t.FareAmount
		counts[t.PUBorough]++
	}

	out := make([]models.BoroughFare, 0, len(sums))
	for borough, sum := range sums {
		out = append(out, models.BoroughFare{
			Borough: borough,
			AvgFare: sum / float64(counts[borough]),
			Trips:   counts[borough],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgFare != out[j].AvgFare {
			return out[i].AvgFare > out[j].AvgFare
		}
		return out[i].Borough < out[j].Borough
	})
	return out
}

// AvgPassengersByBorough groups trips by pickup borough and averages the
// recorded passenger count, sorted descending. Trips with no recorded count
// or a zero count are excluded, matching the dashboard chart.
func AvgPassengersByBorough(table models.TripTable) []models.BoroughPassengers {
	sums := map[string]int64{}
	counts := map[string]int64{}
	for _, t := range table {
		if t.PassengerCount == nil || *t.PassengerCount <= 0 {
			continue
		}
		sums[t.PUBorough] += *t.PassengerCount
		counts[t.PUBorough]++
	}

	out := make([]models.BoroughPassengers, 0, len(sums))
	for borough, sum := range sums {
		out = append(out, models.BoroughPassengers{
			Borough:       borough,
			AvgPassengers: float64(sum) / float64(counts[borough]),
			Trips:         counts[borough],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AvgPassengers != out[j].AvgPassengers {
			return out[i].AvgPassengers > out[j].AvgPassengers
		}
		return out[i].Borough < out[j].Borough
	})
	return out
}

// DistanceHistogram buckets trip_distance into bins equal-width bins
// spanning [min, max]. The last bin includes the maximum. bins <= 0 selects
// DefaultHistogramBins. A table whose distances are all equal collapses to
// a single bin.
func DistanceHistogram(table models.TripTable, bins int) []models.HistogramBin {
	if bins <= 0 {
		bins = DefaultHistogramBins
	}
	if len(table) == 0 {
		return []models.HistogramBin{}
	}

	min, max := table[0].TripDistance, table[0].TripDistance
	for _, t := range table[1:] {
		if t.TripDistance < min {
			min = t.TripDistance
		}
		if t.TripDistance > max {
			max = t.TripDistance
		}
	}

	if min == max {
		return []models.HistogramBin{{Low: min, High: max, Count: int64(len(table))}}
	}

	width := (max - min) / float64(bins)
	out := make([]models.HistogramBin, bins)
	for i := range out {
		out[i].Low = min + float64(i)*width
		out[i].High = min + float64(i+1)*width
	}
	out[bins-1].High = max

	for _, t := range table {
		idx := int((t.TripDistance - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		out[idx].Count++
	}
	return out
}

// TopPickupBoroughs ranks boroughs by trip count descending (ties broken by
// borough name) and returns the first n. n <= 0 selects DefaultTopBoroughs.
func TopPickupBoroughs(table models.TripTable, n int) []models.BoroughCount {
	if n <= 0 {
		n = DefaultTopBoroughs
	}

	counts := map[string]int64{}
	for _, t := range table {
		counts[t.PUBorough]++
	}

	out := make([]models.BoroughCount, 0, len(counts))
	for borough, c := range counts {
		out = append(out, models.BoroughCount{Borough: borough, Trips: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Trips != out[j].Trips {
			return out[i].Trips > out[j].Trips
		}
		return out[i].Borough < out[j].Borough
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
