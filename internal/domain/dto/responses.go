package dto

import (
	"time"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
)

// TripResponse represents one trip row as returned by GET /api/v1/trips.
//
// Code columns are expanded to their published labels (vendor, rate code,
// payment type, store-and-forward flag) so chart clients never need the
// TLC code tables. Fields match the API contract and may differ from
// internal domain models.
type TripResponse struct {
	Vendor               string    `json:"vendor" example:"Curb Mobility"`
	PickupTime           time.Time `json:"pickup_time"`
	DropoffTime          time.Time `json:"dropoff_time"`
	PassengerCount       *int64    `json:"passenger_count" example:"2"`
	TripDistance         float64   `json:"trip_distance" example:"3.2"`
	RateCode             string    `json:"rate_code" example:"Standard Rate"`
	StoreAndFwd          string    `json:"store_and_fwd" example:"Not a store and forward trip"`
	PULocationID         int64     `json:"pu_location_id" example:"161"`
	DOLocationID         int64     `json:"do_location_id" example:"237"`
	PUBorough            string    `json:"pu_borough" example:"Manhattan"`
	DOBorough            string    `json:"do_borough" example:"Manhattan"`
	PaymentType          string    `json:"payment_type" example:"Credit Card"`
	FareAmount           float64   `json:"fare_amount" example:"14.2"`
	Extra                float64   `json:"extra" example:"1"`
	MTATax               float64   `json:"mta_tax" example:"0.5"`
	TipAmount            float64   `json:"tip_amount" example:"3.1"`
	TollsAmount          float64   `json:"tolls_amount" example:"0"`
	ImprovementSurcharge float64   `json:"improvement_surcharge" example:"1"`
	TotalAmount          float64   `json:"total_amount" example:"22.3"`
	CongestionSurcharge  float64   `json:"congestion_surcharge" example:"2.5"`
	AirportFee           float64   `json:"airport_fee" example:"0"`
}

// NewTripResponse converts a normalized trip record into its API shape.
func NewTripResponse(t models.TripRecord) TripResponse {
	return TripResponse{
		Vendor:               t.VendorName(),
		PickupTime:           t.PickupTime,
		DropoffTime:          t.DropoffTime,
		PassengerCount:       t.PassengerCount,
		TripDistance:         t.TripDistance,
		RateCode:             t.RateCodeName(),
		StoreAndFwd:          t.StoreAndFwdLabel(),
		PULocationID:         t.PULocationID,
		DOLocationID:         t.DOLocationID,
		PUBorough:            t.PUBorough,
		DOBorough:            t.DOBorough,
		PaymentType:          t.PaymentTypeName(),
		FareAmount:           t.FareAmount,
		Extra:                t.Extra,
		MTATax:               t.MTATax,
		TipAmount:            t.TipAmount,
		TollsAmount:          t.TollsAmount,
		ImprovementSurcharge: t.ImprovementSurcharge,
		TotalAmount:          t.TotalAmount,
		CongestionSurcharge:  t.CongestionSurcharge,
		AirportFee:           t.AirportFee,
	}
}

// TripsPageResponse is the paginated envelope for GET /api/v1/trips.
type TripsPageResponse struct {
	Trips  []TripResponse `json:"trips"`
	Total  int            `json:"total" example:"49612"`
	Limit  int            `json:"limit" example:"100"`
	Offset int            `json:"offset" example:"0"`
}

// RefreshResponse reports the outcome of a data reload triggered via
// POST /api/v1/refresh.
type RefreshResponse struct {
	Fetched      int       `json:"fetched" example:"50000"`
	Kept         int       `json:"kept" example:"49612"`
	Dropped      int       `json:"dropped" example:"388"`
	SuspectFares int       `json:"suspect_fares" example:"12"`
	LoadedAt     time.Time `json:"loaded_at"`
}
