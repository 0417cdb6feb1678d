package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/dto"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/service"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/soda"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/stats"
)

type mockDashService struct {
	trips        models.TripTable
	total        int
	summary      models.Summary
	fares        []models.BoroughFare
	passengers   []models.BoroughPassengers
	hist         []models.HistogramBin
	top          []models.BoroughCount
	prediction   models.FarePrediction
	refreshStats models.LoadStats
	refreshErr   error
	err          error
	loadedAt     time.Time
	loaded       bool

	gotFilter stats.Filter
	gotLimit  int
	gotOffset int
	gotBins   int
	gotN      int
	gotMiles  float64
}

func (m *mockDashService) Refresh(_ context.Context) (models.LoadStats, error) {
	return m.refreshStats, m.refreshErr
}

func (m *mockDashService) Trips(f stats.Filter, limit, offset int) (models.TripTable, int, error) {
	m.gotFilter, m.gotLimit, m.gotOffset = f, limit, offset
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.trips, m.total, nil
}

func (m *mockDashService) Summary(f stats.Filter) (models.Summary, error) {
	m.gotFilter = f
	return m.summary, m.err
}

func (m *mockDashService) FareByBorough(f stats.Filter) ([]models.BoroughFare, error) {
	m.gotFilter = f
	return m.fares, m.err
}

func (m *mockDashService) PassengersByBorough(f stats.Filter) ([]models.BoroughPassengers, error) {
	m.gotFilter = f
	return m.passengers, m.err
}

func (m *mockDashService) DistanceHistogram(f stats.Filter, bins int) ([]models.HistogramBin, error) {
	m.gotFilter, m.gotBins = f, bins
	return m.hist, m.err
}

func (m *mockDashService) TopPickupBoroughs(f stats.Filter, n int) ([]models.BoroughCount, error) {
	m.gotFilter, m.gotN = f, n
	return m.top, m.err
}

func (m *mockDashService) PredictFare(distanceMiles float64) (models.FarePrediction, error) {
	m.gotMiles = distanceMiles
	return m.prediction, m.err
}

func (m *mockDashService) LoadedAt() (time.Time, bool) {
	return m.loadedAt, m.loaded
}

var _ service.DashboardService = (*mockDashService)(nil)

func setupRouterWithMock(m *mockDashService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(m)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/trips", h.GetTrips)
	v1.GET("/model/fare", h.PredictFare)
	v1.POST("/refresh", h.Refresh)
	st := v1.Group("/stats")
	st.GET("/summary", h.GetSummary)
	st.GET("/fare-by-borough", h.GetFareByBorough)
	st.GET("/passengers-by-borough", h.GetPassengersByBorough)
	st.GET("/distance-histogram", h.GetDistanceHistogram)
	st.GET("/top-pickups", h.GetTopPickups)
	return r
}

func doRequest(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func sampleTrip() models.TripRecord {
	two := int64(2)
	return models.TripRecord{
		VendorID:       2,
		PickupTime:     time.Date(2023, 1, 15, 9, 30, 0, 0, time.UTC),
		DropoffTime:    time.Date(2023, 1, 15, 9, 50, 0, 0, time.UTC),
		PassengerCount: &two,
		TripDistance:   3.2,
		RateCodeID:     1,
		PULocationID:   161,
		DOLocationID:   237,
		PaymentType:    1,
		FareAmount:     14.2,
		PUBorough:      "Manhattan",
		DOBorough:      "Manhattan",
	}
}

func TestHandlers_StatusTable(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockDashService
		method string
		target string
		status int
		assert func(t *testing.T, body []byte)
	}{
		{
			name:   "trips invalid from",
			svc:    &mockDashService{},
			method: http.MethodGet,
			target: "/api/v1/trips?from=2023/01/01",
			status: http.StatusBadRequest,
		},
		{
			name:   "trips negative passengers",
			svc:    &mockDashService{},
			method: http.MethodGet,
			target: "/api/v1/trips?passengers=-1",
			status: http.StatusBadRequest,
		},
		{
			name:   "trips limit too large",
			svc:    &mockDashService{},
			method: http.MethodGet,
			target: "/api/v1/trips?limit=1001",
			status: http.StatusBadRequest,
		},
		{
			name:   "trips payment out of range",
			svc:    &mockDashService{},
			method: http.MethodGet,
			target: "/api/v1/trips?payment=9",
			status: http.StatusBadRequest,
		},
		{
			name:   "trips before any load",
			svc:    &mockDashService{err: service.ErrNoData},
			method: http.MethodGet,
			target: "/api/v1/trips",
			status: http.StatusNotFound,
		},
		{
			name:   "trips success",
			svc:    &mockDashService{trips: models.TripTable{sampleTrip()}, total: 42},
			method: http.MethodGet,
			target: "/api/v1/trips?offset=10",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.TripsPageResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Total != 42 || out.Limit != service.DefaultPageSize || out.Offset != 10 {
					t.Fatalf("unexpected page meta: %+v", out)
				}
				if len(out.Trips) != 1 || out.Trips[0].PUBorough != "Manhattan" {
					t.Fatalf("unexpected trips: %+v", out.Trips)
				}
				if out.Trips[0].Vendor != "Curb Mobility" || out.Trips[0].PaymentType != "Credit Card" {
					t.Fatalf("code labels not expanded: %+v", out.Trips[0])
				}
			},
		},
		{
			name:   "summary success",
			svc:    &mockDashService{summary: models.Summary{TotalTrips: 3, AvgFare: 12.5, AvgDistance: 2.1}},
			method: http.MethodGet,
			target: "/api/v1/stats/summary",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out models.Summary
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.TotalTrips != 3 || out.AvgFare != 12.5 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "summary no data",
			svc:    &mockDashService{err: service.ErrNoData},
			method: http.MethodGet,
			target: "/api/v1/stats/summary",
			status: http.StatusNotFound,
		},
		{
			name:   "fare by borough success",
			svc:    &mockDashService{fares: []models.BoroughFare{{Borough: "Queens", AvgFare: 18.4, Trips: 12}}},
			method: http.MethodGet,
			target: "/api/v1/stats/fare-by-borough?payment=2",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out []models.BoroughFare
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if len(out) != 1 || out[0].Borough != "Queens" {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "passengers by borough success",
			svc:    &mockDashService{passengers: []models.BoroughPassengers{{Borough: "Bronx", AvgPassengers: 1.5, Trips: 4}}},
			method: http.MethodGet,
			target: "/api/v1/stats/passengers-by-borough",
			status: http.StatusOK,
		},
		{
			name:   "histogram bins out of range",
			svc:    &mockDashService{},
			method: http.MethodGet,
			target: "/api/v1/stats/distance-histogram?bins=501",
			status: http.StatusBadRequest,
		},
		{
			name:   "histogram success",
			svc:    &mockDashService{hist: []models.HistogramBin{{Low: 0, High: 1, Count: 7}}},
			method: http.MethodGet,
			target: "/api/v1/stats/distance-histogram?bins=20",
			status: http.StatusOK,
		},
		{
			name:   "top pickups success",
			svc:    &mockDashService{top: []models.BoroughCount{{Borough: "Manhattan", Trips: 100}}},
			method: http.MethodGet,
			target: "/api/v1/stats/top-pickups?n=1",
			status: http.StatusOK,
		},
		{
			name:   "predict fare missing distance",
			svc:    &mockDashService{},
			method: http.MethodGet,
			target: "/api/v1/model/fare",
			status: http.StatusBadRequest,
		},
		{
			name:   "predict fare non-positive distance",
			svc:    &mockDashService{},
			method: http.MethodGet,
			target: "/api/v1/model/fare?distance=0",
			status: http.StatusBadRequest,
		},
		{
			name:   "predict fare model unavailable",
			svc:    &mockDashService{err: service.ErrModelUnavailable},
			method: http.MethodGet,
			target: "/api/v1/model/fare?distance=3.2",
			status: http.StatusNotFound,
		},
		{
			name: "predict fare success",
			svc: &mockDashService{prediction: models.FarePrediction{
				DistanceMiles: 3.2, PredictedFare: 15.7, Slope: 3.3, Intercept: 5.1, SampleSize: 100,
			}},
			method: http.MethodGet,
			target: "/api/v1/model/fare?distance=3.2",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out models.FarePrediction
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.PredictedFare != 15.7 || out.SampleSize != 100 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name: "refresh success",
			svc: &mockDashService{
				refreshStats: models.LoadStats{Fetched: 10, Kept: 9, Dropped: 1},
				loaded:       true,
				loadedAt:     time.Date(2023, 2, 1, 8, 0, 0, 0, time.UTC),
			},
			method: http.MethodPost,
			target: "/api/v1/refresh",
			status: http.StatusOK,
			assert: func(t *testing.T, body []byte) {
				var out dto.RefreshResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Fetched != 10 || out.Kept != 9 || out.Dropped != 1 {
					t.Fatalf("unexpected body: %+v", out)
				}
				if out.LoadedAt.IsZero() {
					t.Fatalf("missing loaded_at")
				}
			},
		},
		{
			name:   "refresh remote unavailable",
			svc:    &mockDashService{refreshErr: fmt.Errorf("fetch trips: %w", soda.ErrRemoteUnavailable)},
			method: http.MethodPost,
			target: "/api/v1/refresh",
			status: http.StatusBadGateway,
		},
		{
			name:   "refresh malformed response",
			svc:    &mockDashService{refreshErr: fmt.Errorf("parse rows: %w", soda.ErrMalformedResponse)},
			method: http.MethodPost,
			target: "/api/v1/refresh",
			status: http.StatusBadGateway,
		},
		{
			name:   "refresh unexpected error",
			svc:    &mockDashService{refreshErr: errors.New("boom")},
			method: http.MethodPost,
			target: "/api/v1/refresh",
			status: http.StatusInternalServerError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := doRequest(r, tc.method, tc.target)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (body %s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w.Body.Bytes())
			}
		})
	}
}

func TestFilterQuery_PassesThrough(t *testing.T) {
	svc := &mockDashService{}
	r := setupRouterWithMock(svc)

	w := doRequest(r, http.MethodGet, "/api/v1/trips?from=2023-01-01&to=2023-01-31&passengers=2&payment=1&limit=50&offset=100")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	f := svc.gotFilter
	if f.From == nil || !f.From.Equal(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("from=%v", f.From)
	}
	// Inclusive "to" day becomes the next midnight as exclusive bound.
	if f.To == nil || !f.To.Equal(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("to=%v", f.To)
	}
	if f.Passengers == nil || *f.Passengers != 2 {
		t.Fatalf("passengers=%v", f.Passengers)
	}
	if f.Payment != 1 {
		t.Fatalf("payment=%d", f.Payment)
	}
	if svc.gotLimit != 50 || svc.gotOffset != 100 {
		t.Fatalf("limit=%d offset=%d", svc.gotLimit, svc.gotOffset)
	}
}

func TestHistogramAndTopDefaults(t *testing.T) {
	svc := &mockDashService{}
	r := setupRouterWithMock(svc)

	// Omitted bins/n arrive at the service as zero; the stats layer picks
	// its documented defaults.
	if w := doRequest(r, http.MethodGet, "/api/v1/stats/distance-histogram"); w.Code != http.StatusOK {
		t.Fatalf("histogram status=%d", w.Code)
	}
	if svc.gotBins != 0 {
		t.Fatalf("bins=%d, want 0", svc.gotBins)
	}

	if w := doRequest(r, http.MethodGet, "/api/v1/stats/top-pickups"); w.Code != http.StatusOK {
		t.Fatalf("top status=%d", w.Code)
	}
	if svc.gotN != 0 {
		t.Fatalf("n=%d, want 0", svc.gotN)
	}
}
