package vacationmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/errgroup"
)

// Loader turns vacations into overlays: markers for climbing areas, built on
// the spot, and route overlays fetched from the backend.
// Safe for concurrent use.
type Loader struct {
	client *Client
	log    *slog.Logger
	tol    float64
	cache  *lru.Cache[string, *geojson.FeatureCollection] // nil when disabled
}

// NewLoader creates a loader.
func NewLoader(opts ...Option) (*Loader, error) {
	return newLoader(newConfig(opts))
}

func newLoader(cfg *Config) (*Loader, error) {
	l := &Loader{
		client: newClient(cfg),
		log:    cfg.Logger,
		tol:    cfg.SimplifyTolerance,
	}
	if cfg.CacheSize > 0 {
		c, err := lru.New[string, *geojson.FeatureCollection](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating geojson cache: %w", err)
		}
		l.cache = c
	}
	return l, nil
}

// Client returns the backend client the loader fetches with.
func (l *Loader) Client() *Client {
	return l.client
}

// Pending tracks the route fetches of one Load call.
type Pending struct {
	eg     errgroup.Group
	mu     sync.Mutex
	routes []*Overlay
	errs   []error
	total  int
}

// Total is the number of route files requested.
func (p *Pending) Total() int {
	return p.total
}

// Wait blocks until every fetch has settled. It returns the route overlays
// that loaded, in completion order, and the per-file failures joined into
// one error (nil if all succeeded).
func (p *Pending) Wait() ([]*Overlay, error) {
	// Fetches never return an error; failures are collected per file in
	// settle and the group only waits for them to finish.
	_ = p.eg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.routes), errors.Join(p.errs...)
}

func (p *Pending) settle(o *Overlay, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errs = append(p.errs, err)
		return
	}
	p.routes = append(p.routes, o)
}

// Load starts fetching every route file of vs at once and returns the
// climbing area markers immediately. onRoute, if not nil, is called from the
// fetching goroutine for each route overlay as soon as it is built; it is
// never called for failed files. A failure never stops the other fetches.
func (l *Loader) Load(ctx context.Context, vs []Vacation, onRoute func(*Overlay)) ([]*Overlay, *Pending) {
	p := &Pending{}
	var markers []*Overlay
	for _, v := range vs {
		v := v
		for _, ref := range v.GeoJSONFiles {
			ref := ref
			p.total++
			p.eg.Go(func() error {
				o, err := l.Route(ctx, v, ref)
				if err != nil {
					l.log.Warn("geojson load failed", "folder", v.Folder, "file", ref.Filename, "err", err)
				} else if onRoute != nil {
					onRoute(o)
				}
				p.settle(o, err)
				return nil
			})
		}
		markers = append(markers, l.Markers(v)...)
	}
	return markers, p
}

// Route fetches and builds the overlay of a single route file.
func (l *Loader) Route(ctx context.Context, v Vacation, ref GeoRef) (*Overlay, error) {
	url := l.client.URL(GeoJSONPath(v.Folder, ref))
	fc, err := l.document(ctx, url)
	if err != nil {
		return nil, err
	}
	return newRouteOverlay(v, ref, url, fc), nil
}

func (l *Loader) document(ctx context.Context, url string) (*geojson.FeatureCollection, error) {
	if l.cache != nil {
		if fc, ok := l.cache.Get(url); ok {
			return fc, nil
		}
	}
	body, err := l.client.GeoJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	fc, err := parseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", url, err)
	}
	if l.tol > 0 {
		fc = simplifyCollection(fc, l.tol)
	}
	if l.cache != nil {
		l.cache.Add(url, fc)
	}
	return fc, nil
}

// Markers builds one marker per climbing area of v that has a [lat, lon]
// pair, ordered by area name. Areas without valid coordinates are skipped.
func (l *Loader) Markers(v Vacation) []*Overlay {
	names := make([]string, 0, len(v.Climbing))
	for name := range v.Climbing {
		names = append(names, name)
	}
	slices.Sort(names)

	var out []*Overlay
	for _, name := range names {
		area := v.Climbing[name]
		lat, lng, ok := area.LatLng()
		if !ok {
			continue
		}
		out = append(out, newMarkerOverlay(v, name, lat, lng, area.RouteCount()))
	}
	return out
}
