package route

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/medi-route/triage-api/schema"
)

const logPrefix = "route"

// DistanceProvider returns the driving distance in kilometers, or nil
// when there is no route.
type DistanceProvider interface {
	Route(ctx context.Context, from, to schema.Location) (*float64, error)
}

// TravelTimePredictor predicts minutes needed to drive a distance.
type TravelTimePredictor interface {
	PredictTravelTime(ctx context.Context, from schema.Location, distanceKm float64) (int, error)
}

// Estimate of a drive to a destination. Both values may be unknown.
type Estimate struct {
	DistanceKm *float64 `json:"distanceKm"`
	ETAMinutes *int     `json:"etaMinutes"`
}

type Estimator struct {
	distances DistanceProvider
	predictor TravelTimePredictor
}

func NewEstimator(distances DistanceProvider, predictor TravelTimePredictor) *Estimator {
	return &Estimator{
		distances: distances,
		predictor: predictor,
	}
}

// Distance returns the driving distance between two locations.
func (e *Estimator) Distance(ctx context.Context, from, to schema.Location) (*float64, error) {
	km, err := e.distances.Route(ctx, from, to)
	if err != nil {
		return nil, err
	}
	if km == nil {
		return nil, nil
	}

	rounded := schema.RoundKilometers(*km)
	return &rounded, nil
}

// TravelTime returns the predicted travel time in minutes.
func (e *Estimator) TravelTime(ctx context.Context, from schema.Location, distanceKm float64) (*int, error) {
	minutes, err := e.predictor.PredictTravelTime(ctx, from, distanceKm)
	if err != nil {
		return nil, err
	}
	return &minutes, nil
}

// Estimate computes the distance and then the travel time. A failed
// travel time prediction leaves the ETA unknown; a failed distance is
// returned as an error.
func (e *Estimator) Estimate(ctx context.Context, from, to schema.Location) (Estimate, error) {
	km, err := e.Distance(ctx, from, to)
	if err != nil {
		return Estimate{}, err
	}
	if km == nil {
		return Estimate{}, nil
	}

	eta, err := e.TravelTime(ctx, from, *km)
	if err != nil {
		if ctx.Err() != nil {
			return Estimate{}, ctx.Err()
		}
		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"distance": *km,
		}).WithError(err).Warn("travel time prediction unavailable")
		return Estimate{DistanceKm: km}, nil
	}

	return Estimate{DistanceKm: km, ETAMinutes: eta}, nil
}
