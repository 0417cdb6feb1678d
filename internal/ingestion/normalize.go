package ingestion

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/soda"
)

// tripColumns enforces strict column ordering for the trip dataset response.
// The loader selects exactly these columns; if the header doesn't match
// EXACTLY (order + count), the whole load must fail.
var tripColumns = []string{
	"vendorid",
	"tpep_pickup_datetime",
	"tpep_dropoff_datetime",
	"passenger_count",
	"trip_distance",
	"ratecodeid",
	"store_and_fwd_flag",
	"pulocationid",
	"dolocationid",
	"payment_type",
	"fare_amount",
	"extra",
	"mta_tax",
	"tip_amount",
	"tolls_amount",
	"improvement_surcharge",
	"total_amount",
	"congestion_surcharge",
	"airport_fee",
}

// Record field positions, matching tripColumns.
const (
	colVendorID = iota
	colPickupTime
	colDropoffTime
	colPassengerCount
	colTripDistance
	colRateCodeID
	colStoreAndFwdFlag
	colPULocationID
	colDOLocationID
	colPaymentType
	colFareAmount
	colExtra
	colMTATax
	colTipAmount
	colTollsAmount
	colImprovementSurcharge
	colTotalAmount
	colCongestionSurcharge
	colAirportFee
)

// Drop reasons reported in LoadStats.DropReasons. Row-level anomalies never
// abort a load; they are counted under one of these keys and skipped.
const (
	dropBadPickupTime   = "bad_pickup_time"
	dropBadDropoffTime  = "bad_dropoff_time"
	dropBadPassengers   = "bad_passenger_count"
	dropBadInteger      = "bad_integer"
	dropBadNumber       = "bad_number"
	dropBadDistance     = "negative_distance"
	dropOutsideWindow   = "outside_window"
	dropNegativeFare    = "negative_fare"
	dropPickupAfterDrop = "pickup_after_dropoff"
)

// validateTripColumns checks the response header against the selected
// columns, strictly: same count, same names, same order. A mismatch means
// the portal answered with a different table shape than requested.
func validateTripColumns(cols []string) error {
	if len(cols) != len(tripColumns) {
		return fmt.Errorf("%w: header has %d columns, expected %d", soda.ErrMalformedResponse, len(cols), len(tripColumns))
	}
	for i, c := range cols {
		if strings.TrimSpace(c) != tripColumns[i] {
			return fmt.Errorf("%w: header col %d is %q, expected %q", soda.ErrMalformedResponse, i+1, c, tripColumns[i])
		}
	}
	return nil
}

// normalizeRow converts a single record (already validated length==19) into
// a TripRecord. It is STRICT about present values but TOLERATES empty cells,
// mapping them to zero values (passenger_count keeps nil, matching the
// nullable source column).
//
// The second return value is "" on success, or the drop reason.
//
// Column coercion:
//
//	 0 vendorid               → int64  (empty→0)
//	 1 tpep_pickup_datetime   → time   (required)
//	 2 tpep_dropoff_datetime  → time   (required)
//	 3 passenger_count        → *int64 (empty→nil, non-negative integral)
//	 4 trip_distance          → float  (empty→0, must be ≥ 0)
//	 5 ratecodeid             → int64  (empty→0)
//	 6 store_and_fwd_flag     → string (kept as-is)
//	 7 pulocationid           → int64  (empty→0)
//	 8 dolocationid           → int64  (empty→0)
//	 9 payment_type           → int64  (empty→0)
//	10..18 money columns      → float  (empty→0)
func normalizeRow(rec []string) (models.TripRecord, string) {
	var t models.TripRecord
	var err error

	// Pickup and dropoff timestamps are the only hard-required fields: a trip
	// without a pickup time cannot be windowed, charted, or modeled.
	t.PickupTime, err = parseTimestamp(rec[colPickupTime])
	if err != nil {
		return t, dropBadPickupTime
	}
	t.DropoffTime, err = parseTimestamp(rec[colDropoffTime])
	if err != nil {
		return t, dropBadDropoffTime
	}
	if t.DropoffTime.Before(t.PickupTime) {
		return t, dropPickupAfterDrop
	}

	if t.VendorID, err = coerceInt(rec[colVendorID]); err != nil {
		return t, dropBadInteger
	}
	if t.PassengerCount, err = coerceCount(rec[colPassengerCount]); err != nil {
		return t, dropBadPassengers
	}
	if t.TripDistance, err = coerceFloat(rec[colTripDistance]); err != nil {
		return t, dropBadNumber
	}
	if t.TripDistance < 0 {
		return t, dropBadDistance
	}
	if t.RateCodeID, err = coerceInt(rec[colRateCodeID]); err != nil {
		return t, dropBadInteger
	}
	t.StoreAndFwdFlag = strings.TrimSpace(rec[colStoreAndFwdFlag])
	if t.PULocationID, err = coerceInt(rec[colPULocationID]); err != nil {
		return t, dropBadInteger
	}
	if t.DOLocationID, err = coerceInt(rec[colDOLocationID]); err != nil {
		return t, dropBadInteger
	}
	if t.PaymentType, err = coerceInt(rec[colPaymentType]); err != nil {
		return t, dropBadInteger
	}

	money := []struct {
		col int
		dst *float64
	}{
		{colFareAmount, &t.FareAmount},
		{colExtra, &t.Extra},
		{colMTATax, &t.MTATax},
		{colTipAmount, &t.TipAmount},
		{colTollsAmount, &t.TollsAmount},
		{colImprovementSurcharge, &t.ImprovementSurcharge},
		{colTotalAmount, &t.TotalAmount},
		{colCongestionSurcharge, &t.CongestionSurcharge},
		{colAirportFee, &t.AirportFee},
	}
	for _, m := range money {
		if *m.dst, err = coerceFloat(rec[m.col]); err != nil {
			return t, dropBadNumber
		}
	}

	return t, ""
}

// parseTimestamp parses a SODA floating_timestamp value. CSV exports carry
// millisecond precision ("2023-01-01T00:18:22.000"); older extracts omit it.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range []string{"2006-01-02T15:04:05.000", "2006-01-02T15:04:05"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// coerceInt parses an integer column. Numeric SODA columns may serialize
// integral values with a decimal part ("2.0"), so a float form is accepted
// as long as it is integral. Empty cells become 0.
func coerceInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return int64(f), nil
}

// coerceFloat parses a money or distance column. Empty cells become 0.
// ParseFloat accepts "NaN" and "Inf" spellings, which are never legitimate
// meter values, so non-finite results are rejected.
func coerceFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

// coerceCount parses the nullable passenger_count column: empty stays nil
// rather than collapsing to 0, which would be indistinguishable from a
// recorded zero-passenger trip. Present values must be non-negative.
func coerceCount(s string) (*int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := coerceInt(s)
	if err != nil {
		return nil, err
	}
	if v < 0 {
		return nil, fmt.Errorf("negative passenger count %d", v)
	}
	return &v, nil
}
