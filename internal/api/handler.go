package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/dto"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/middleware"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/service"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/soda"
	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/stats"
)

var validate = validator.New()

const (
	// dateLayout is the calendar-day format accepted by the filter params.
	dateLayout = "2006-01-02"

	// refreshTimeout bounds a manual reload. The reload runs on a detached
	// context so the request timeout cannot cancel the portal fetch midway.
	refreshTimeout = 2 * time.Minute
)

// Handler provides HTTP handlers for the dashboard endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Interact with the dashboard service for snapshot queries
//   - Translate service results into response DTOs
//   - Return structured JSON responses with appropriate HTTP status codes
type Handler struct {
	svc service.DashboardService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.DashboardService) *Handler {
	return &Handler{svc: svc}
}

// filterQuery holds the shared filter params of the dashboard endpoints.
// Both dates name pickup calendar days; `to` is inclusive.
type filterQuery struct {
	From       string `form:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `form:"to" validate:"omitempty,datetime=2006-01-02"`
	Passengers *int64 `form:"passengers" validate:"omitempty,gte=0"`
	Payment    int64  `form:"payment" validate:"omitempty,gte=1,lte=6"`
}

// toFilter converts the validated params into the stats filter. The
// inclusive `to` day becomes the half-open upper bound of the next midnight.
func (q filterQuery) toFilter() stats.Filter {
	f := stats.Filter{Passengers: q.Passengers, Payment: q.Payment}
	if q.From != "" {
		from, _ := time.Parse(dateLayout, q.From)
		f.From = &from
	}
	if q.To != "" {
		to, _ := time.Parse(dateLayout, q.To)
		to = to.AddDate(0, 0, 1)
		f.To = &to
	}
	return f
}

type tripsQuery struct {
	filterQuery
	Limit  int `form:"limit" validate:"omitempty,gte=1,lte=1000"`
	Offset int `form:"offset" validate:"omitempty,gte=0"`
}

type histogramQuery struct {
	filterQuery
	Bins int `form:"bins" validate:"omitempty,gte=1,lte=500"`
}

type topQuery struct {
	filterQuery
	N int `form:"n" validate:"omitempty,gte=1,lte=100"`
}

type fareQuery struct {
	Distance float64 `form:"distance" validate:"required,gt=0"`
}

// bindQuery binds and validates query params, replying 400 on failure.
func bindQuery(c *gin.Context, q any) bool {
	if err := c.ShouldBindQuery(q); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return false
	}
	if err := validate.Struct(q); err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return false
	}
	return true
}

// replyServiceError maps service and portal errors onto HTTP statuses.
func replyServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoData):
		middleware.AbortWithError(c, http.StatusNotFound, "no data loaded", err)
	case errors.Is(err, service.ErrModelUnavailable):
		middleware.AbortWithError(c, http.StatusNotFound, "fare model unavailable", err)
	case errors.Is(err, soda.ErrRemoteUnavailable), errors.Is(err, soda.ErrMalformedResponse):
		middleware.AbortWithError(c, http.StatusBadGateway, "data portal request failed", err)
	default:
		middleware.AbortWithError(c, http.StatusInternalServerError, "request failed", err)
	}
}

// GetTrips godoc
// @Summary      List trips
// @Description  Returns one page of loaded trips, optionally filtered by pickup day range, passenger count, and payment type
// @Tags         trips
// @Produce      json
// @Param        from        query     string  false  "Pickup day lower bound (inclusive), YYYY-MM-DD"  example(2023-01-01)
// @Param        to          query     string  false  "Pickup day upper bound (inclusive), YYYY-MM-DD"  example(2023-01-31)
// @Param        passengers  query     int     false  "Exact passenger count"
// @Param        payment     query     int     false  "TLC payment type code (1-6)"
// @Param        limit       query     int     false  "Page size (default 100, max 1000)"
// @Param        offset      query     int     false  "Rows to skip"
// @Success      200  {object}  dto.TripsPageResponse  "Success"
// @Failure      400  {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse      "No Data Loaded"
// @Router       /api/v1/trips [get]
func (h *Handler) GetTrips(c *gin.Context) {
	var q tripsQuery
	if !bindQuery(c, &q) {
		return
	}

	page, total, err := h.svc.Trips(q.toFilter(), q.Limit, q.Offset)
	if err != nil {
		replyServiceError(c, err)
		return
	}

	limit := q.Limit
	if limit <= 0 {
		limit = service.DefaultPageSize
	}

	trips := make([]dto.TripResponse, 0, len(page))
	for _, t := range page {
		trips = append(trips, dto.NewTripResponse(t))
	}

	c.JSON(http.StatusOK, dto.TripsPageResponse{
		Trips:  trips,
		Total:  total,
		Limit:  limit,
		Offset: q.Offset,
	})
}

// GetSummary godoc
// @Summary      Headline figures
// @Description  Returns total trips, average fare, and average distance for the filtered table
// @Tags         stats
// @Produce      json
// @Param        from        query     string  false  "Pickup day lower bound (inclusive), YYYY-MM-DD"
// @Param        to          query     string  false  "Pickup day upper bound (inclusive), YYYY-MM-DD"
// @Param        passengers  query     int     false  "Exact passenger count"
// @Param        payment     query     int     false  "TLC payment type code (1-6)"
// @Success      200  {object}  models.Summary     "Success"
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "No Data Loaded"
// @Router       /api/v1/stats/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	var q filterQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.svc.Summary(q.toFilter())
	if err != nil {
		replyServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetFareByBorough godoc
// @Summary      Average fare by pickup borough
// @Tags         stats
// @Produce      json
// @Param        from        query     string  false  "Pickup day lower bound (inclusive), YYYY-MM-DD"
// @Param        to          query     string  false  "Pickup day upper bound (inclusive), YYYY-MM-DD"
// @Param        passengers  query     int     false  "Exact passenger count"
// @Param        payment     query     int     false  "TLC payment type code (1-6)"
// @Success      200  {array}   models.BoroughFare  "Success"
// @Failure      400  {object}  dto.ErrorResponse   "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse   "No Data Loaded"
// @Router       /api/v1/stats/fare-by-borough [get]
func (h *Handler) GetFareByBorough(c *gin.Context) {
	var q filterQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.svc.FareByBorough(q.toFilter())
	if err != nil {
		replyServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetPassengersByBorough godoc
// @Summary      Average passengers by pickup borough
// @Description  Trips with no recorded or zero passenger count are excluded
// @Tags         stats
// @Produce      json
// @Param        from        query     string  false  "Pickup day lower bound (inclusive), YYYY-MM-DD"
// @Param        to          query     string  false  "Pickup day upper bound (inclusive), YYYY-MM-DD"
// @Param        passengers  query     int     false  "Exact passenger count"
// @Param        payment     query     int     false  "TLC payment type code (1-6)"
// @Success      200  {array}   models.BoroughPassengers  "Success"
// @Failure      400  {object}  dto.ErrorResponse         "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse         "No Data Loaded"
// @Router       /api/v1/stats/passengers-by-borough [get]
func (h *Handler) GetPassengersByBorough(c *gin.Context) {
	var q filterQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.svc.PassengersByBorough(q.toFilter())
	if err != nil {
		replyServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetDistanceHistogram godoc
// @Summary      Trip distance histogram
// @Tags         stats
// @Produce      json
// @Param        bins        query     int     false  "Number of equal-width bins (default 50, max 500)"
// @Param        from        query     string  false  "Pickup day lower bound (inclusive), YYYY-MM-DD"
// @Param        to          query     string  false  "Pickup day upper bound (inclusive), YYYY-MM-DD"
// @Param        passengers  query     int     false  "Exact passenger count"
// @Param        payment     query     int     false  "TLC payment type code (1-6)"
// @Success      200  {array}   models.HistogramBin  "Success"
// @Failure      400  {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse    "No Data Loaded"
// @Router       /api/v1/stats/distance-histogram [get]
func (h *Handler) GetDistanceHistogram(c *gin.Context) {
	var q histogramQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.svc.DistanceHistogram(q.toFilter(), q.Bins)
	if err != nil {
		replyServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetTopPickups godoc
// @Summary      Busiest pickup boroughs
// @Tags         stats
// @Produce      json
// @Param        n           query     int     false  "How many boroughs to return (default 10, max 100)"
// @Param        from        query     string  false  "Pickup day lower bound (inclusive), YYYY-MM-DD"
// @Param        to          query     string  false  "Pickup day upper bound (inclusive), YYYY-MM-DD"
// @Param        passengers  query     int     false  "Exact passenger count"
// @Param        payment     query     int     false  "TLC payment type code (1-6)"
// @Success      200  {array}   models.BoroughCount  "Success"
// @Failure      400  {object}  dto.ErrorResponse    "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse    "No Data Loaded"
// @Router       /api/v1/stats/top-pickups [get]
func (h *Handler) GetTopPickups(c *gin.Context) {
	var q topQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.svc.TopPickupBoroughs(q.toFilter(), q.N)
	if err != nil {
		replyServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// PredictFare godoc
// @Summary      Predict fare for a distance
// @Description  Evaluates the fare regression fitted over the current snapshot
// @Tags         model
// @Produce      json
// @Param        distance  query     number  true  "Trip distance in miles"  example(3.2)
// @Success      200  {object}  models.FarePrediction  "Success"
// @Failure      400  {object}  dto.ErrorResponse      "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse      "No Data Or Model"
// @Router       /api/v1/model/fare [get]
func (h *Handler) PredictFare(c *gin.Context) {
	var q fareQuery
	if !bindQuery(c, &q) {
		return
	}

	out, err := h.svc.PredictFare(q.Distance)
	if err != nil {
		replyServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Refresh godoc
// @Summary      Reload trip data
// @Description  Fetches the configured window from the data portal and swaps the snapshot
// @Tags         trips
// @Produce      json
// @Success      200  {object}  dto.RefreshResponse  "Success"
// @Failure      502  {object}  dto.ErrorResponse    "Data Portal Unavailable"
// @Router       /api/v1/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	// Detached from the request context: a slow portal fetch should finish
	// and swap the snapshot even if the client gives up waiting.
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	loadStats, err := h.svc.Refresh(ctx)
	if err != nil {
		replyServiceError(c, err)
		return
	}

	loadedAt, _ := h.svc.LoadedAt()
	c.JSON(http.StatusOK, dto.RefreshResponse{
		Fetched:      loadStats.Fetched,
		Kept:         loadStats.Kept,
		Dropped:      loadStats.Dropped,
		SuspectFares: loadStats.SuspectFares,
		LoadedAt:     loadedAt,
	})
}
