package tmap

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/medi-route/triage-api/consts"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/share/upstream"
)

const (
	logPrefix  = "tmap"
	defaultURL = "https://apis.openapi.sk.com/tmap"

	geocodingPath = "/geo/geocoding"
	poisPath      = "/pois/search/around"
	routesPath    = "/routes"
)

var (
	ErrEmptyAppKey       = errors.New("empty tmap app key")
	ErrUnexpectedStatus  = errors.New("unexpected tmap response status")
	ErrMalformedResponse = errors.New("malformed tmap response")
	ErrNoCoordinate      = errors.New("no coordinate for address")
)

// Tmap - interface to the Tmap geocoding, places and routing APIs
type Tmap interface {
	Geocode(ctx context.Context, address string) (schema.Location, error)
	SearchAround(ctx context.Context, category string, center schema.Location, radiusKm float64, count int) ([]schema.POI, error)
	Route(ctx context.Context, from, to schema.Location) (*float64, error)
}

type tmap struct {
	url    string
	appKey string
	client *http.Client
	caller *upstream.Caller
}

type coordinateInfo struct {
	Lat    string `json:"lat"`
	Lon    string `json:"lon"`
	NewLat string `json:"newLat"`
	NewLon string `json:"newLon"`
}

type geocodingResponse struct {
	CoordinateInfo *coordinateInfo `json:"coordinateInfo"`
}

type poi struct {
	Name    string `json:"name"`
	NoorLat string `json:"noorLat"`
	NoorLon string `json:"noorLon"`
}

type poisResponse struct {
	SearchPoiInfo struct {
		Pois struct {
			Poi []poi `json:"poi"`
		} `json:"pois"`
	} `json:"searchPoiInfo"`
}

type routeRequest struct {
	StartX       float64 `json:"startX"`
	StartY       float64 `json:"startY"`
	EndX         float64 `json:"endX"`
	EndY         float64 `json:"endY"`
	ReqCoordType string  `json:"reqCoordType"`
	ResCoordType string  `json:"resCoordType"`
}

type routeResponse struct {
	Features []struct {
		Properties struct {
			TotalDistance *float64 `json:"totalDistance"`
		} `json:"properties"`
	} `json:"features"`
}

// Geocode resolves a Korean street address into coordinates. The address
// is split into province, district and the remaining street part.
func (t *tmap) Geocode(ctx context.Context, address string) (schema.Location, error) {
	a, err := consts.SplitAddress(address)
	if err != nil {
		return schema.Location{}, fmt.Errorf("%w: %s", ErrNoCoordinate, err)
	}

	q := url.Values{}
	q.Set("version", "1")
	q.Set("format", "json")
	q.Set("city_do", a.City)
	q.Set("gu_gun", a.District)
	q.Set("dong", a.Street)
	q.Set("addressFlag", "F00")
	q.Set("coordType", "WGS84GEO")

	var r geocodingResponse
	if err := t.caller.DoIdempotent(ctx, "geocoding", func(ctx context.Context) error {
		return t.do(ctx, http.MethodGet, geocodingPath, q, nil, &r)
	}); err != nil {
		// unknown addresses are answered with 400 or 404
		var se *statusError
		if errors.As(err, &se) && (se.code == http.StatusBadRequest || se.code == http.StatusNotFound) {
			return schema.Location{}, fmt.Errorf("%w: %s", ErrNoCoordinate, err)
		}
		return schema.Location{}, err
	}

	if r.CoordinateInfo == nil {
		return schema.Location{}, ErrNoCoordinate
	}

	lat, lon := r.CoordinateInfo.NewLat, r.CoordinateInfo.NewLon
	if lat == "" || lon == "" {
		lat, lon = r.CoordinateInfo.Lat, r.CoordinateInfo.Lon
	}

	loc, err := parseLocation(lat, lon)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix":  logPrefix,
			"address": address,
		}).WithError(err).Warn("geocoding returned no usable coordinate")
		return schema.Location{}, ErrNoCoordinate
	}

	return loc, nil
}

// SearchAround lists places of a category around center. Positions are
// converted from EPSG:3857 into WGS84.
func (t *tmap) SearchAround(ctx context.Context, category string, center schema.Location, radiusKm float64, count int) ([]schema.POI, error) {
	q := url.Values{}
	q.Set("version", "1")
	q.Set("format", "json")
	q.Set("categories", category)
	q.Set("searchType", "name")
	q.Set("searchtypCd", "A")
	q.Set("reqCoordType", "WGS84GEO")
	q.Set("resCoordType", "EPSG3857")
	q.Set("centerLat", strconv.FormatFloat(center.Latitude, 'f', -1, 64))
	q.Set("centerLon", strconv.FormatFloat(center.Longitude, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	q.Set("count", strconv.Itoa(count))

	var r poisResponse
	if err := t.caller.DoIdempotent(ctx, "pois", func(ctx context.Context) error {
		return t.do(ctx, http.MethodGet, poisPath, q, nil, &r)
	}); err != nil {
		return nil, err
	}

	pois := make([]schema.POI, 0, len(r.SearchPoiInfo.Pois.Poi))
	for _, p := range r.SearchPoiInfo.Pois.Poi {
		x, errX := strconv.ParseFloat(p.NoorLon, 64)
		y, errY := strconv.ParseFloat(p.NoorLat, 64)
		if errX != nil || errY != nil {
			log.WithFields(log.Fields{
				"prefix": logPrefix,
				"name":   p.Name,
			}).Warn("skip place without position")
			continue
		}

		pois = append(pois, schema.POI{
			Name:     p.Name,
			Location: MercatorToWGS84(x, y),
		})
	}

	return pois, nil
}

// Route returns the driving distance in kilometers, rounded to three
// decimals. A nil distance means no route was found.
func (t *tmap) Route(ctx context.Context, from, to schema.Location) (*float64, error) {
	q := url.Values{}
	q.Set("version", "1")
	q.Set("format", "json")

	body := routeRequest{
		StartX:       from.Longitude,
		StartY:       from.Latitude,
		EndX:         to.Longitude,
		EndY:         to.Latitude,
		ReqCoordType: "WGS84GEO",
		ResCoordType: "WGS84GEO",
	}

	var r routeResponse
	if err := t.caller.DoIdempotent(ctx, "routes", func(ctx context.Context) error {
		return t.do(ctx, http.MethodPost, routesPath, q, body, &r)
	}); err != nil {
		return nil, err
	}

	if len(r.Features) == 0 || r.Features[0].Properties.TotalDistance == nil {
		return nil, nil
	}

	km := schema.RoundKilometers(*r.Features[0].Properties.TotalDistance / 1000)
	return &km, nil
}

func (t *tmap) do(ctx context.Context, method, path string, query url.Values, body, result interface{}) error {
	if t.appKey == "" {
		return upstream.Permanent(ErrEmptyAppKey)
	}

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return upstream.Permanent(err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.url+path+"?"+query.Encode(), reader)
	if err != nil {
		return upstream.Permanent(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("appKey", t.appKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	// places search answers 204 when nothing is around
	if resp.StatusCode == http.StatusNoContent || (resp.StatusCode == http.StatusOK && len(bytes.TrimSpace(d)) == 0) {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		err := &statusError{code: resp.StatusCode, path: path}
		if resp.StatusCode < http.StatusInternalServerError && resp.StatusCode != http.StatusTooManyRequests {
			return upstream.Permanent(err)
		}
		return err
	}

	if err := json.Unmarshal(d, result); err != nil {
		return upstream.Permanent(fmt.Errorf("%w: %s", ErrMalformedResponse, err))
	}

	return nil
}

type statusError struct {
	code int
	path string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: %d %s", ErrUnexpectedStatus, e.code, e.path)
}

func (e *statusError) Unwrap() error {
	return ErrUnexpectedStatus
}

func parseLocation(lat, lon string) (schema.Location, error) {
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return schema.Location{}, err
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return schema.Location{}, err
	}

	return schema.Location{Latitude: la, Longitude: lo}, nil
}

// New - new Tmap client. An empty url uses the public endpoint.
func New(baseURL, appKey string, client *http.Client, caller *upstream.Caller) Tmap {
	u := defaultURL
	if baseURL != "" {
		u = strings.TrimRight(baseURL, "/")
	}
	if client == nil {
		client = http.DefaultClient
	}
	if caller == nil {
		caller = upstream.NewCaller(upstream.Config{}, nil)
	}

	return &tmap{
		url:    u,
		appKey: appKey,
		client: client,
		caller: caller,
	}
}
