package ingestion

import (
	"errors"
	"testing"
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/soda"
)

// validRecord returns a fully populated 19-column trip record.
func validRecord() []string {
	return []string{
		"2",                       // vendorid
		"2023-01-05T08:15:30.000", // tpep_pickup_datetime
		"2023-01-05T08:32:10.000", // tpep_dropoff_datetime
		"1",                       // passenger_count
		"3.20",                    // trip_distance
		"1",                       // ratecodeid
		"N",                       // store_and_fwd_flag
		"161",                     // pulocationid
		"237",                     // dolocationid
		"1",                       // payment_type
		"14.2",                    // fare_amount
		"1",                       // extra
		"0.5",                     // mta_tax
		"3.1",                     // tip_amount
		"0",                       // tolls_amount
		"1",                       // improvement_surcharge
		"22.3",                    // total_amount
		"2.5",                     // congestion_surcharge
		"0",                       // airport_fee
	}
}

func withCol(rec []string, col int, val string) []string {
	out := append([]string(nil), rec...)
	out[col] = val
	return out
}

func TestNormalizeRow_Valid(t *testing.T) {
	tr, reason := normalizeRow(validRecord())
	if reason != "" {
		t.Fatalf("unexpected drop reason %q", reason)
	}
	if tr.VendorID != 2 {
		t.Fatalf("VendorID=%d", tr.VendorID)
	}
	wantPickup := time.Date(2023, 1, 5, 8, 15, 30, 0, time.UTC)
	if !tr.PickupTime.Equal(wantPickup) {
		t.Fatalf("PickupTime=%v, want %v", tr.PickupTime, wantPickup)
	}
	if tr.PassengerCount == nil || *tr.PassengerCount != 1 {
		t.Fatalf("PassengerCount=%v", tr.PassengerCount)
	}
	if tr.TripDistance != 3.2 || tr.FareAmount != 14.2 || tr.TotalAmount != 22.3 {
		t.Fatalf("numeric fields wrong: %+v", tr)
	}
	if tr.StoreAndFwdFlag != "N" || tr.PULocationID != 161 || tr.DOLocationID != 237 {
		t.Fatalf("fields wrong: %+v", tr)
	}
}

func TestNormalizeRow_TableDriven(t *testing.T) {
	cases := []struct {
		name       string
		rec        []string
		wantReason string
	}{
		{name: "ok", rec: validRecord(), wantReason: ""},
		{name: "timestamp without millis ok", rec: withCol(validRecord(), colPickupTime, "2023-01-05T08:15:30"), wantReason: ""},
		{name: "empty pickup", rec: withCol(validRecord(), colPickupTime, ""), wantReason: dropBadPickupTime},
		{name: "garbage pickup", rec: withCol(validRecord(), colPickupTime, "jan 5th"), wantReason: dropBadPickupTime},
		{name: "empty dropoff", rec: withCol(validRecord(), colDropoffTime, ""), wantReason: dropBadDropoffTime},
		{name: "dropoff before pickup", rec: withCol(validRecord(), colDropoffTime, "2023-01-05T08:00:00.000"), wantReason: dropPickupAfterDrop},
		{name: "empty passenger count kept as nil", rec: withCol(validRecord(), colPassengerCount, ""), wantReason: ""},
		{name: "float-integral passenger count ok", rec: withCol(validRecord(), colPassengerCount, "2.0"), wantReason: ""},
		{name: "fractional passenger count", rec: withCol(validRecord(), colPassengerCount, "1.5"), wantReason: dropBadPassengers},
		{name: "negative passenger count", rec: withCol(validRecord(), colPassengerCount, "-1"), wantReason: dropBadPassengers},
		{name: "garbage passenger count", rec: withCol(validRecord(), colPassengerCount, "two"), wantReason: dropBadPassengers},
		{name: "empty distance tolerated", rec: withCol(validRecord(), colTripDistance, ""), wantReason: ""},
		{name: "garbage distance", rec: withCol(validRecord(), colTripDistance, "far"), wantReason: dropBadNumber},
		{name: "negative distance", rec: withCol(validRecord(), colTripDistance, "-1.2"), wantReason: dropBadDistance},
		{name: "non-finite distance", rec: withCol(validRecord(), colTripDistance, "NaN"), wantReason: dropBadNumber},
		{name: "infinite fare", rec: withCol(validRecord(), colFareAmount, "Inf"), wantReason: dropBadNumber},
		{name: "garbage vendor", rec: withCol(validRecord(), colVendorID, "x"), wantReason: dropBadInteger},
		{name: "empty vendor tolerated", rec: withCol(validRecord(), colVendorID, ""), wantReason: ""},
		{name: "garbage fare", rec: withCol(validRecord(), colFareAmount, "$14"), wantReason: dropBadNumber},
		{name: "negative fare is not a parse error", rec: withCol(validRecord(), colFareAmount, "-5.00"), wantReason: ""},
		{name: "garbage airport fee", rec: withCol(validRecord(), colAirportFee, "n/a"), wantReason: dropBadNumber},
		{name: "garbage location id", rec: withCol(validRecord(), colPULocationID, "loc-161"), wantReason: dropBadInteger},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, reason := normalizeRow(tc.rec)
			if reason != tc.wantReason {
				t.Fatalf("reason=%q, want %q", reason, tc.wantReason)
			}
		})
	}
}

func TestNormalizeRow_EmptyCellsBecomeZeroValues(t *testing.T) {
	rec := validRecord()
	for _, col := range []int{colVendorID, colPassengerCount, colTripDistance, colRateCodeID, colStoreAndFwdFlag, colPULocationID, colDOLocationID, colPaymentType, colFareAmount, colExtra, colMTATax, colTipAmount, colTollsAmount, colImprovementSurcharge, colTotalAmount, colCongestionSurcharge, colAirportFee} {
		rec[col] = ""
	}

	tr, reason := normalizeRow(rec)
	if reason != "" {
		t.Fatalf("unexpected drop reason %q", reason)
	}
	if tr.VendorID != 0 || tr.TripDistance != 0 || tr.FareAmount != 0 || tr.StoreAndFwdFlag != "" {
		t.Fatalf("zero values expected: %+v", tr)
	}
	if tr.PassengerCount != nil {
		t.Fatalf("empty passenger count should stay nil, got %v", *tr.PassengerCount)
	}
	// Label methods resolve the fallbacks
	if tr.VendorName() != "Other" || tr.PaymentTypeName() != "Unknown" || tr.StoreAndFwdLabel() != "Unknown" {
		t.Fatalf("fallback labels wrong: %q %q %q", tr.VendorName(), tr.PaymentTypeName(), tr.StoreAndFwdLabel())
	}
}

func TestValidateTripColumns(t *testing.T) {
	if err := validateTripColumns(tripColumns); err != nil {
		t.Fatalf("exact header rejected: %v", err)
	}

	short := tripColumns[:len(tripColumns)-1]
	if err := validateTripColumns(short); !errors.Is(err, soda.ErrMalformedResponse) {
		t.Fatalf("short header: err=%v, want ErrMalformedResponse", err)
	}

	swapped := append([]string(nil), tripColumns...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if err := validateTripColumns(swapped); !errors.Is(err, soda.ErrMalformedResponse) {
		t.Fatalf("swapped header: err=%v, want ErrMalformedResponse", err)
	}

	padded := append([]string(nil), tripColumns...)
	padded[3] = " " + padded[3] + " "
	if err := validateTripColumns(padded); err != nil {
		t.Fatalf("whitespace-padded header rejected: %v", err)
	}
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"2", 2, false},
		{"2.0", 2, false},
		{" 99 ", 99, false},
		{"", 0, false},
		{"1.5", 0, true},
		{"abc", 0, true},
		{"Inf", 0, true},
		{"NaN", 0, true},
	}
	for _, c := range cases {
		got, err := coerceInt(c.in)
		if (err != nil) != c.wantErr {
			t.Fatalf("coerceInt(%q) err=%v, wantErr=%v", c.in, err, c.wantErr)
		}
		if err == nil && got != c.want {
			t.Fatalf("coerceInt(%q)=%d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2023, 1, 1, 0, 18, 22, 0, time.UTC)
	for _, in := range []string{"2023-01-01T00:18:22.000", "2023-01-01T00:18:22"} {
		got, err := parseTimestamp(in)
		if err != nil {
			t.Fatalf("parseTimestamp(%q): %v", in, err)
		}
		if !got.Equal(want) {
			t.Fatalf("parseTimestamp(%q)=%v, want %v", in, got, want)
		}
	}
	if _, err := parseTimestamp(""); err == nil {
		t.Fatal("empty timestamp must error")
	}
	if _, err := parseTimestamp("2023-13-45T99:00:00"); err == nil {
		t.Fatal("impossible timestamp must error")
	}
}
