package models

import "time"

// LoadStats summarizes one loader run: how many rows the API returned,
// how many survived normalization, and why the rest were dropped.
//
// Dropped rows are counted by reason so a sudden data-quality regression
// in the upstream dataset is visible without logging every bad row.
type LoadStats struct {
	Fetched      int            `json:"fetched" example:"50000"`
	Kept         int            `json:"kept" example:"49612"`
	Dropped      int            `json:"dropped" example:"388"`
	SuspectFares int            `json:"suspect_fares" example:"12"`
	DropReasons  map[string]int `json:"drop_reasons,omitempty"`
	WindowStart  time.Time      `json:"window_start"`
	WindowEnd    time.Time      `json:"window_end"`
	TruncatedAtN bool           `json:"truncated_at_limit" example:"false"`
}

// Summary holds the headline figures for the loaded window.
//
// swagger:model Summary
type Summary struct {
	TotalTrips  int64   `json:"total_trips" example:"49612"`
	AvgFare     float64 `json:"avg_fare" example:"14.32"`
	AvgDistance float64 `json:"avg_distance" example:"3.47"`
	AvgTip      float64 `json:"avg_tip" example:"2.74"`
}

// BoroughFare is one row of the average-fare-by-borough aggregation.
//
// swagger:model BoroughFare
type BoroughFare struct {
	Borough string  `json:"borough" example:"Manhattan"`
	AvgFare float64 `json:"avg_fare" example:"13.85"`
	Trips   int64   `json:"trips" example:"38211"`
}

// BoroughPassengers is one row of the average-passengers-by-pickup-borough
// aggregation. Trips with zero or unknown passenger counts are excluded.
//
// swagger:model BoroughPassengers
type BoroughPassengers struct {
	Borough       string  `json:"borough" example:"Queens"`
	AvgPassengers float64 `json:"avg_passengers" example:"1.42"`
	Trips         int64   `json:"trips" example:"5120"`
}

// HistogramBin is one bucket of the trip-distance histogram.
//
// swagger:model HistogramBin
type HistogramBin struct {
	Low   float64 `json:"low" example:"0"`
	High  float64 `json:"high" example:"0.5"`
	Count int64   `json:"count" example:"1204"`
}

// BoroughCount is one row of the trips-by-pickup-borough ranking.
//
// swagger:model BoroughCount
type BoroughCount struct {
	Borough string `json:"borough" example:"Manhattan"`
	Trips   int64  `json:"trips" example:"38211"`
}

// FarePrediction is the fitted fare estimate for a requested distance,
// along with the regression line it came from.
//
// swagger:model FarePrediction
type FarePrediction struct {
	DistanceMiles float64 `json:"distance_miles" example:"3.2"`
	PredictedFare float64 `json:"predicted_fare" example:"15.74"`
	Intercept     float64 `json:"intercept" example:"4.91"`
	Slope         float64 `json:"slope" example:"3.38"`
	RSquared      float64 `json:"r_squared" example:"0.81"`
	SampleSize    int64   `json:"sample_size" example:"49612"`
}
