// Package model fits the fare-vs-distance regression the modeling
// collaborators consume. Training happens on each snapshot refresh; the
// fitted line is cheap to keep and evaluate per request.
package model

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/anniepuy/nyc-yellow-taxi-dashboard/internal/domain/models"
)

var (
	// ErrInsufficientData means fewer than two usable trips survived the
	// training exclusions.
	ErrInsufficientData = errors.New("model: insufficient data to fit")

	// ErrNoVariance means every usable trip has the same distance, so the
	// slope is undefined.
	ErrNoVariance = errors.New("model: zero distance variance")
)

// FareModel is an ordinary-least-squares line fare = Intercept + Slope*miles.
type FareModel struct {
	Intercept  float64
	Slope      float64
	RSquared   float64
	SampleSize int64
}

// TrainFareModel fits fare_amount against trip_distance. Trips with a
// non-positive distance or a non-finite fare are excluded: zero-distance
// rows are meter artifacts and would drag the intercept.
func TrainFareModel(table models.TripTable) (FareModel, error) {
	xs := make([]float64, 0, len(table))
	ys := make([]float64, 0, len(table))
	for _, t := range table {
		if t.TripDistance <= 0 {
			continue
		}
		if math.IsNaN(t.FareAmount) || math.IsInf(t.FareAmount, 0) {
			continue
		}
		xs = append(xs, t.TripDistance)
		ys = append(ys, t.FareAmount)
	}

	if len(xs) < 2 {
		return FareModel{}, ErrInsufficientData
	}
	if stat.Variance(xs, nil) == 0 {
		return FareModel{}, ErrNoVariance
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)

	return FareModel{
		Intercept:  alpha,
		Slope:      beta,
		RSquared:   r2,
		SampleSize: int64(len(xs)),
	}, nil
}

// Predict evaluates the fitted line at the given distance in miles.
func (m FareModel) Predict(distanceMiles float64) float64 {
	return m.Intercept + m.Slope*distanceMiles
}

// Prediction packages a prediction with the line it came from.
func (m FareModel) Prediction(distanceMiles float64) models.FarePrediction {
	return models.FarePrediction{
		DistanceMiles: distanceMiles,
		PredictedFare: m.Predict(distanceMiles),
		Intercept:     m.Intercept,
		Slope:         m.Slope,
		RSquared:      m.RSquared,
		SampleSize:    m.SampleSize,
	}
}
