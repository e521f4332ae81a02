package geo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"googlemaps.github.io/maps"

	"github.com/medi-route/triage-api/external/tmap"
	"github.com/medi-route/triage-api/schema"
)

const logPrefix = "geo"

var ErrNoCoordinateFound = fmt.Errorf("no coordinate found")

// Geocoder - interface for resolving an address into coordinates
type Geocoder interface {
	Geocode(ctx context.Context, address string) (schema.Location, error)
}

type MultipleGeocoderErrors struct {
	errors []error
}

func (e *MultipleGeocoderErrors) Error() string {
	errorStrings := make([]string, len(e.errors))
	for i, err := range e.errors {
		errorStrings[i] = fmt.Sprintf("#%d: %s", i, err.Error())
	}
	return strings.Join(errorStrings, "\n")
}

// Is reports a chain in which every geocoder found nothing as ErrNoCoordinateFound.
func (e *MultipleGeocoderErrors) Is(target error) bool {
	if target != ErrNoCoordinateFound || len(e.errors) == 0 {
		return false
	}
	for _, err := range e.errors {
		if !errors.Is(err, ErrNoCoordinateFound) {
			return false
		}
	}
	return true
}

func NewMultipleGeocoderErrors(errors []error) *MultipleGeocoderErrors {
	return &MultipleGeocoderErrors{
		errors: errors,
	}
}

type TmapGeocoder struct {
	client tmap.Tmap
}

func NewTmapGeocoder(client tmap.Tmap) *TmapGeocoder {
	return &TmapGeocoder{
		client: client,
	}
}

func (g *TmapGeocoder) Geocode(ctx context.Context, address string) (schema.Location, error) {
	loc, err := g.client.Geocode(ctx, address)
	if err != nil {
		if errors.Is(err, tmap.ErrNoCoordinate) {
			return schema.Location{}, ErrNoCoordinateFound
		}
		return schema.Location{}, err
	}

	if loc.IsZero() {
		return schema.Location{}, ErrNoCoordinateFound
	}

	return loc, nil
}

type GoogleGeocoder struct {
	client *maps.Client
}

func NewGoogleGeocoder(client *maps.Client) *GoogleGeocoder {
	return &GoogleGeocoder{
		client: client,
	}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (schema.Location, error) {
	geos, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  address,
		Region:   "kr",
		Language: "ko",
	})
	if nil != err {
		return schema.Location{}, err
	}

	if len(geos) == 0 {
		return schema.Location{}, ErrNoCoordinateFound
	}

	return schema.Location{
		Latitude:  geos[0].Geometry.Location.Lat,
		Longitude: geos[0].Geometry.Location.Lng,
	}, nil
}

// MultipleGeocoder asks each geocoder in turn and returns the first coordinate found.
type MultipleGeocoder struct {
	geocoders []Geocoder
}

func NewMultipleGeocoder(geocoders ...Geocoder) *MultipleGeocoder {
	return &MultipleGeocoder{
		geocoders: geocoders,
	}
}

func (r *MultipleGeocoder) Geocode(ctx context.Context, address string) (schema.Location, error) {
	var errors []error
	for i, geocoder := range r.geocoders {
		result, err := geocoder.Geocode(ctx, address)
		if err == nil {
			return result, nil
		}

		log.WithFields(log.Fields{
			"prefix":   logPrefix,
			"geocoder": i,
			"address":  address,
		}).WithError(err).Warn("geocode address")
		errors = append(errors, err)

		if ctx.Err() != nil {
			break
		}
	}

	return schema.Location{}, NewMultipleGeocoderErrors(errors)
}
