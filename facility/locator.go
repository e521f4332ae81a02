// Package facility finds care facilities of a category around a patient
// and ranks them by driving distance.
package facility

import (
	"context"
	"sort"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/medi-route/triage-api/consts"
	"github.com/medi-route/triage-api/geo"
	"github.com/medi-route/triage-api/schema"
	"github.com/medi-route/triage-api/utils"
)

const (
	logPrefix      = "facility"
	defaultWorkers = 4
)

// PlaceSearcher lists places of a category around a center.
type PlaceSearcher interface {
	SearchAround(ctx context.Context, category string, center schema.Location, radiusKm float64, count int) ([]schema.POI, error)
}

// Router computes the driving distance between two locations. A nil
// distance means there is no route.
type Router interface {
	Distance(ctx context.Context, from, to schema.Location) (*float64, error)
}

type Config struct {
	RadiusKm         float64
	FallbackRadiusKm float64
	Count            int
	FallbackCount    int
	Exclude          []string
	Workers          int
}

// Result of a facility search. Fallback is set when nothing was within
// the preferred radius and Facilities holds the wide search instead.
type Result struct {
	Origin     schema.Location   `json:"origin"`
	Facilities []schema.Facility `json:"facilities"`
	Fallback   bool              `json:"fallback"`
}

type Locator struct {
	geocoder geo.Geocoder
	places   PlaceSearcher
	router   Router
	cache    Cache
	cfg      Config
}

func NewLocator(geocoder geo.Geocoder, places PlaceSearcher, router Router, cache Cache, cfg Config) *Locator {
	if cfg.RadiusKm <= 0 {
		cfg.RadiusKm = consts.SEARCH_RADIUS_KM
	}
	if cfg.FallbackRadiusKm <= 0 {
		cfg.FallbackRadiusKm = consts.FALLBACK_SEARCH_RADIUS_KM
	}
	if cfg.Count <= 0 {
		cfg.Count = consts.SEARCH_COUNT
	}
	if cfg.FallbackCount <= 0 {
		cfg.FallbackCount = consts.FALLBACK_SEARCH_COUNT
	}
	if cfg.Exclude == nil {
		cfg.Exclude = []string{consts.ParkingKeyword}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cache == nil {
		cache = NewMemoryCache(0)
	}

	return &Locator{
		geocoder: geocoder,
		places:   places,
		router:   router,
		cache:    cache,
		cfg:      cfg,
	}
}

// Geocode resolves the patient address.
func (l *Locator) Geocode(ctx context.Context, address string) (schema.Location, error) {
	return l.geocoder.Geocode(ctx, address)
}

// Locate geocodes address and searches facilities of category around it.
func (l *Locator) Locate(ctx context.Context, category, address string) (*Result, error) {
	origin, err := l.geocoder.Geocode(ctx, address)
	if err != nil {
		return nil, err
	}

	return l.LocateFrom(ctx, category, origin)
}

// LocateFrom searches facilities of category around origin. Candidates
// farther than the radius are dropped. When none remain, the wide search
// is returned without the radius filter.
func (l *Locator) LocateFrom(ctx context.Context, category string, origin schema.Location) (*Result, error) {
	candidates, err := l.search(ctx, category, origin, l.cfg.RadiusKm, l.cfg.Count)
	if err != nil {
		return nil, err
	}

	within := make([]schema.Facility, 0, len(candidates))
	for _, c := range candidates {
		if c.DistanceKm != nil && *c.DistanceKm <= l.cfg.RadiusKm {
			within = append(within, c)
		}
	}

	if len(within) > 0 {
		return &Result{Origin: origin, Facilities: within}, nil
	}

	log.WithFields(log.Fields{
		"prefix":   logPrefix,
		"category": category,
		"radius":   l.cfg.FallbackRadiusKm,
	}).Info("nothing within radius, widen search")

	wide, err := l.search(ctx, category, origin, l.cfg.FallbackRadiusKm, l.cfg.FallbackCount)
	if err != nil {
		return nil, err
	}

	return &Result{Origin: origin, Facilities: wide, Fallback: true}, nil
}

func (l *Locator) search(ctx context.Context, category string, origin schema.Location, radiusKm float64, count int) ([]schema.Facility, error) {
	pois, err := l.places.SearchAround(ctx, category, origin, radiusKm, count)
	if err != nil {
		return nil, err
	}

	facilities := make([]schema.Facility, 0, len(pois))
	for _, p := range pois {
		if utils.ExcludedPlace(p.Name, l.cfg.Exclude) {
			continue
		}
		facilities = append(facilities, schema.Facility{Name: p.Name, Location: p.Location})
	}

	if err := l.measure(ctx, radiusKm, origin, facilities); err != nil {
		return nil, err
	}

	sortByDistance(facilities)
	return facilities, nil
}

// measure fills in the driving distance of every facility, at most
// Workers routes at a time. A failed route leaves the distance unknown.
func (l *Locator) measure(ctx context.Context, radiusKm float64, origin schema.Location, facilities []schema.Facility) error {
	var g errgroup.Group
	g.SetLimit(l.cfg.Workers)

	for i := range facilities {
		f := &facilities[i]
		key := CacheKey(radiusKm, origin, f.Name)
		if km, ok := l.cache.Get(ctx, key); ok {
			f.DistanceKm = &km
			continue
		}

		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			km, err := l.router.Distance(ctx, origin, f.Location)
			if err != nil {
				log.WithFields(log.Fields{
					"prefix": logPrefix,
					"name":   f.Name,
				}).WithError(err).Warn("driving distance")
				return nil
			}
			if km == nil {
				return nil
			}

			f.DistanceKm = km
			l.cache.Set(ctx, key, *km)
			return nil
		})
	}

	_ = g.Wait()
	return ctx.Err()
}

func sortByDistance(facilities []schema.Facility) {
	sort.SliceStable(facilities, func(i, j int) bool {
		a, b := facilities[i].DistanceKm, facilities[j].DistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}
