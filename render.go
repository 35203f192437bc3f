package vacationmap

import (
	"context"
	"log/slog"
	"sync"

	"github.com/golang/geo/s2"
)

// Map is the drawing surface. The Renderer serializes all calls, so
// implementations see a single writer.
type Map interface {
	AddOverlay(o *Overlay)
	RemoveOverlay(o *Overlay)
	// FitBounds moves the viewport so region is fully visible.
	FitBounds(region s2.Rect, opts FitOptions)
}

// FitOptions controls viewport fitting.
type FitOptions struct {
	MaxZoom int // never zoom in further than this
	Padding int // margin in pixels on every side
}

// DefaultFitOptions keeps a single short route from filling the screen.
var DefaultFitOptions = FitOptions{MaxZoom: 14, Padding: 40}

// Renderer owns the overlays on a Map. Each Render call is a pass identified
// by a generation number; starting a pass tears down everything the previous
// pass drew, and results that arrive for an older generation are dropped.
type Renderer struct {
	m      Map
	loader *Loader
	log    *slog.Logger
	fit    FitOptions

	mu     sync.Mutex
	gen    uint64
	active []*Overlay
}

// NewRenderer creates a renderer drawing on m.
func NewRenderer(m Map, opts ...Option) (*Renderer, error) {
	cfg := newConfig(opts)
	l, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}
	return &Renderer{
		m:      m,
		loader: l,
		log:    cfg.Logger,
		fit:    cfg.Fit,
	}, nil
}

// Loader returns the loader used for every pass.
func (r *Renderer) Loader() *Loader {
	return r.loader
}

// Generation returns the number of the latest pass.
func (r *Renderer) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen
}

// Active returns the overlays currently drawn.
func (r *Renderer) Active() []*Overlay {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Overlay, len(r.active))
	copy(out, r.active)
	return out
}

// PassResult summarizes a settled render pass.
type PassResult struct {
	Generation uint64
	Markers    int   // markers drawn
	Routes     int   // route overlays loaded
	Failed     int   // route files that could not be loaded
	Err        error // the per-file failures, joined
	Stale      bool  // a newer pass started before this one settled
	Fitted     bool  // the viewport was moved
	Region     s2.Rect
}

// Pass is a render pass in progress.
type Pass struct {
	gen  uint64
	done chan struct{}
	res  PassResult
}

// Generation is the pass number.
func (p *Pass) Generation() uint64 {
	return p.gen
}

// Done is closed once every fetch of the pass has settled and the viewport
// has been handled.
func (p *Pass) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the pass has settled.
func (p *Pass) Wait() PassResult {
	<-p.done
	return p.res
}

// Render replaces whatever is on the map with the overlays of vs. The previous
// pass's overlays are removed before any fetch is issued. Markers appear at
// once; routes appear as they arrive. When all fetches have settled the
// viewport is fit to the overlays of this pass that loaded, unless none did
// or a newer pass has started in the meantime.
func (r *Renderer) Render(ctx context.Context, vs []Vacation) *Pass {
	r.mu.Lock()
	for _, o := range r.active {
		r.m.RemoveOverlay(o)
	}
	r.active = nil
	r.gen++
	gen := r.gen
	r.mu.Unlock()

	pass := &Pass{gen: gen, done: make(chan struct{})}

	markers, pending := r.loader.Load(ctx, vs, func(o *Overlay) {
		r.track(gen, o)
	})

	r.mu.Lock()
	drawn := 0
	if gen == r.gen {
		for _, o := range markers {
			o.Generation = gen
			r.m.AddOverlay(o)
			r.active = append(r.active, o)
		}
		drawn = len(markers)
	}
	r.mu.Unlock()

	r.log.Debug("render pass started", "generation", gen, "vacations", len(vs),
		"markers", drawn, "routes", pending.Total())

	go func() {
		defer close(pass.done)
		routes, err := pending.Wait()
		pass.res = r.settle(gen, markers[:drawn], routes, err, pending.Total())
	}()
	return pass
}

// track adds a freshly loaded route overlay if its pass is still current.
func (r *Renderer) track(gen uint64, o *Overlay) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		r.log.Debug("dropping stale overlay", "generation", gen, "current", r.gen, "source", o.Source)
		return
	}
	o.Generation = gen
	r.m.AddOverlay(o)
	r.active = append(r.active, o)
}

func (r *Renderer) settle(gen uint64, markers, routes []*Overlay, err error, total int) PassResult {
	res := PassResult{
		Generation: gen,
		Markers:    len(markers),
		Routes:     len(routes),
		Failed:     total - len(routes),
		Err:        err,
		Region:     s2.EmptyRect(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		res.Stale = true
		return res
	}

	for _, o := range markers {
		res.Region = res.Region.Union(o.Region())
	}
	for _, o := range routes {
		res.Region = res.Region.Union(o.Region())
	}
	if res.Region.IsEmpty() {
		return res
	}
	r.m.FitBounds(res.Region, r.fit)
	res.Fitted = true
	return res
}

// Run renders the vacations matching each selection published by st until
// ctx is done. The current selection is rendered first.
func (r *Renderer) Run(ctx context.Context, st *FilterState, all []Vacation) error {
	updates := st.Subscribe()
	r.Render(ctx, Filter(all, st.Snapshot()))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sel := <-updates:
			r.Render(ctx, Filter(all, sel))
		}
	}
}
