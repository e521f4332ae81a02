package tmap_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medi-route/triage-api/external/tmap"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/share/upstream"
)

func TestGeocode(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/geocoding", r.URL.Path)
		assert.Equal(t, "test", r.Header.Get("appKey"))

		q := r.URL.Query()
		assert.Equal(t, "서울", q.Get("city_do"))
		assert.Equal(t, "중구", q.Get("gu_gun"))
		assert.Equal(t, "세종대로 110", q.Get("dong"))
		assert.Equal(t, "F00", q.Get("addressFlag"))

		_, _ = w.Write([]byte(`{"coordinateInfo":{"newLat":"37.5663","newLon":"126.9779"}}`))
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", nil, nil)
	loc, err := c.Geocode(context.Background(), "서울 중구 세종대로 110")
	assert.NoError(t, err)
	assert.Equal(t, schema.Location{Latitude: 37.5663, Longitude: 126.9779}, loc)
}

func TestGeocodeFallsBackToLotNumberCoordinate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"coordinateInfo":{"lat":"35.1","lon":"129.0","newLat":"","newLon":""}}`))
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", nil, nil)
	loc, err := c.Geocode(context.Background(), "부산 중구")
	assert.NoError(t, err)
	assert.Equal(t, schema.Location{Latitude: 35.1, Longitude: 129.0}, loc)
}

func TestGeocodeNoCoordinate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", nil, nil)
	_, err := c.Geocode(context.Background(), "서울 없는구 어딘가")
	assert.Equal(t, tmap.ErrNoCoordinate, err)
}

func TestGeocodeInvalidAddress(t *testing.T) {
	c := tmap.New("http://127.0.0.1:0", "test", nil, nil)
	_, err := c.Geocode(context.Background(), "서울")
	assert.True(t, errors.Is(err, tmap.ErrNoCoordinate))
}

func TestGeocodeUnknownAddressStatus(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		c := tmap.New(ts.URL, "test", ts.Client(), nil)
		_, err := c.Geocode(context.Background(), "서울특별시 없는구 없는로 1")
		assert.True(t, errors.Is(err, tmap.ErrNoCoordinate), "status %d", status)
		assert.True(t, errors.Is(err, tmap.ErrUnexpectedStatus))
		ts.Close()
	}
}

func TestGeocodeServerErrorIsNotNoCoordinate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", ts.Client(), upstream.NewCaller(upstream.Config{Attempts: 1}, nil))
	_, err := c.Geocode(context.Background(), "서울특별시 중구 세종대로 110")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, tmap.ErrNoCoordinate))
}

func TestEmptyAppKey(t *testing.T) {
	c := tmap.New("http://127.0.0.1:0", "", nil, nil)
	_, err := c.Geocode(context.Background(), "서울 중구")
	assert.True(t, errors.Is(err, tmap.ErrEmptyAppKey))
}

func TestSearchAround(t *testing.T) {
	x, y := tmap.WGS84ToMercator(schema.Location{Latitude: 37.5, Longitude: 127.0})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pois/search/around", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "응급실", q.Get("categories"))
		assert.Equal(t, "3", q.Get("radius"))
		assert.Equal(t, "20", q.Get("count"))
		assert.Equal(t, "EPSG3857", q.Get("resCoordType"))
		assert.Equal(t, "37.5", q.Get("centerLat"))

		body := map[string]interface{}{
			"searchPoiInfo": map[string]interface{}{
				"pois": map[string]interface{}{
					"poi": []map[string]string{
						{"name": "서울병원", "noorLat": jsonFloat(y), "noorLon": jsonFloat(x)},
						{"name": "broken", "noorLat": "", "noorLon": ""},
					},
				},
			},
		}
		b, _ := json.Marshal(body)
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", nil, nil)
	pois, err := c.SearchAround(context.Background(), "응급실", schema.Location{Latitude: 37.5, Longitude: 127.0}, 3, 20)
	require.NoError(t, err)
	require.Len(t, pois, 1)
	assert.Equal(t, "서울병원", pois[0].Name)
	assert.InDelta(t, 37.5, pois[0].Location.Latitude, 1e-6)
	assert.InDelta(t, 127.0, pois[0].Location.Longitude, 1e-6)
}

func TestSearchAroundNoContent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", nil, nil)
	pois, err := c.SearchAround(context.Background(), "피부과", schema.Location{Latitude: 37.5, Longitude: 127.0}, 3, 20)
	assert.NoError(t, err)
	assert.Empty(t, pois)
}

func TestRoute(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/routes", r.URL.Path)

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 127.0, req["startX"])
		assert.Equal(t, 37.5, req["startY"])
		assert.Equal(t, 127.1, req["endX"])
		assert.Equal(t, 37.6, req["endY"])

		_, _ = w.Write([]byte(`{"features":[{"properties":{"totalDistance":12345}}]}`))
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", nil, nil)
	km, err := c.Route(context.Background(),
		schema.Location{Latitude: 37.5, Longitude: 127.0},
		schema.Location{Latitude: 37.6, Longitude: 127.1})
	require.NoError(t, err)
	require.NotNil(t, km)
	assert.Equal(t, 12.345, *km)
}

func TestRouteNoFeature(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"features":[]}`))
	}))
	defer ts.Close()

	c := tmap.New(ts.URL, "test", nil, nil)
	km, err := c.Route(context.Background(), schema.Location{}, schema.Location{})
	assert.NoError(t, err)
	assert.Nil(t, km)
}

func TestRouteRetriesServerError(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"features":[{"properties":{"totalDistance":1000}}]}`))
	}))
	defer ts.Close()

	caller := upstream.NewCaller(upstream.Config{Attempts: 2, Backoff: 1}, nil)
	c := tmap.New(ts.URL, "test", nil, caller)
	km, err := c.Route(context.Background(), schema.Location{}, schema.Location{})
	require.NoError(t, err)
	assert.Equal(t, 1.0, *km)
	assert.Equal(t, 2, calls)
}

func TestRouteClientErrorIsNotRetried(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	caller := upstream.NewCaller(upstream.Config{Attempts: 3, Backoff: 1}, nil)
	c := tmap.New(ts.URL, "test", nil, caller)
	_, err := c.Route(context.Background(), schema.Location{}, schema.Location{})
	assert.True(t, errors.Is(err, tmap.ErrUnexpectedStatus))
	assert.Equal(t, 1, calls)
}

func jsonFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
