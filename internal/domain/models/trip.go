package models

import "time"

// TripRecord represents a single normalized yellow-taxi trip row.
// Each field matches one column of the TLC trip record dataset.
//
// Column order (as selected from the API):
//  1. VendorID
//  2. PickupTime (tpep_pickup_datetime)
//  3. DropoffTime (tpep_dropoff_datetime)
//  4. PassengerCount
//  5. TripDistance
//  6. RateCodeID
//  7. StoreAndFwdFlag
//  8. PULocationID
//  9. DOLocationID
//  10. PaymentType
//  11. FareAmount
//  12. Extra
//  13. MTATax
//  14. TipAmount
//  15. TollsAmount
//  16. ImprovementSurcharge
//  17. TotalAmount
//  18. CongestionSurcharge
//  19. AirportFee
//
// PUBorough and DOBorough are derived during normalization from the taxi
// zone lookup table; they are not columns of the trip dataset itself.
type TripRecord struct {
	VendorID             int64
	PickupTime           time.Time
	DropoffTime          time.Time
	PassengerCount       *int64 // nullable in the source data
	TripDistance         float64
	RateCodeID           int64
	StoreAndFwdFlag      string
	PULocationID         int64
	DOLocationID         int64
	PaymentType          int64
	FareAmount           float64
	Extra                float64
	MTATax               float64
	TipAmount            float64
	TollsAmount          float64
	ImprovementSurcharge float64
	TotalAmount          float64
	CongestionSurcharge  float64
	AirportFee           float64
	PUBorough            string
	DOBorough            string
}

// vendorNames maps the TLC vendor codes to provider names.
var vendorNames = map[int64]string{
	1: "Creative Mobile Technologies (CMT)",
	2: "Curb Mobility",
	6: "Myle Technologies",
	7: "Helix",
}

// rateCodeNames maps the TLC rate codes to their published meanings.
var rateCodeNames = map[int64]string{
	1:  "Standard Rate",
	2:  "JFK Airport",
	3:  "Newark Airport",
	4:  "Nassau or Westchester County",
	5:  "Negotiated Fare",
	6:  "Group Ride",
	99: "Private Hire",
}

// paymentTypeNames maps the TLC payment codes to their published meanings.
var paymentTypeNames = map[int64]string{
	1: "Credit Card",
	2: "Cash",
	3: "No Charge",
	4: "Dispute",
	5: "Unknown",
	6: "Voided Trip",
}

// VendorName returns the provider name for the trip's vendor code,
// or "Other" for codes outside the published table.
func (t TripRecord) VendorName() string {
	if name, ok := vendorNames[t.VendorID]; ok {
		return name
	}
	return "Other"
}

// RateCodeName returns the label for the trip's rate code,
// or "Other" for codes outside the published table.
func (t TripRecord) RateCodeName() string {
	if name, ok := rateCodeNames[t.RateCodeID]; ok {
		return name
	}
	return "Other"
}

// StoreAndFwdLabel expands the store-and-forward flag. Trips recorded in
// vehicle memory before transmission carry "Y"; anything other than "Y"
// or "N" (including blank) reads "Unknown".
func (t TripRecord) StoreAndFwdLabel() string {
	switch t.StoreAndFwdFlag {
	case "Y":
		return "Store and forward"
	case "N":
		return "Not a store and forward trip"
	default:
		return "Unknown"
	}
}

// PaymentTypeName returns the label for the trip's payment code,
// or "Unknown" for codes outside the published table.
func (t TripRecord) PaymentTypeName() string {
	if name, ok := paymentTypeNames[t.PaymentType]; ok {
		return name
	}
	return "Unknown"
}

// TripTable is the loader's output: an ordered slice of normalized trips.
type TripTable []TripRecord
