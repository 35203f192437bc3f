package vacationmap

import (
	"math"
	"sort"
	"sync"

	"github.com/golang/geo/s2"
)

// tileSize is the edge of a web map tile in pixels.
const tileSize = 256

// MemoryMap is a headless Map that records what would be drawn. It is safe
// for concurrent use, so it can be inspected while a pass is running.
type MemoryMap struct {
	Width, Height int // viewport size in pixels, used for Zoom

	mu       sync.Mutex
	overlays map[string]*Overlay
	viewport s2.Rect
	fitOpts  FitOptions
	fits     int
	removed  int
}

// NewMemoryMap creates a map with a viewport of the given size. The viewport
// starts empty.
func NewMemoryMap(width, height int) *MemoryMap {
	return &MemoryMap{
		Width:    width,
		Height:   height,
		overlays: make(map[string]*Overlay),
		viewport: s2.EmptyRect(),
	}
}

// AddOverlay records o as drawn.
func (m *MemoryMap) AddOverlay(o *Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overlays[o.ID] = o
}

// RemoveOverlay drops o if it is drawn and counts the removal.
func (m *MemoryMap) RemoveOverlay(o *Overlay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.overlays[o.ID]; ok {
		delete(m.overlays, o.ID)
		m.removed++
	}
}

// FitBounds moves the viewport to region.
func (m *MemoryMap) FitBounds(region s2.Rect, opts FitOptions) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewport = region
	m.fits++
	m.fitOpts = opts
}

// Overlays returns the drawn overlays sorted by kind, folder and source.
func (m *MemoryMap) Overlays() []*Overlay {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Overlay, 0, len(m.overlays))
	for _, o := range m.overlays {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Folder != b.Folder {
			return a.Folder < b.Folder
		}
		return a.Source < b.Source
	})
	return out
}

// Viewport returns the region of the last FitBounds call and how many times
// the viewport was fit.
func (m *MemoryMap) Viewport() (s2.Rect, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport, m.fits
}

// Removed is the number of overlays taken off the map so far.
func (m *MemoryMap) Removed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removed
}

// Zoom is the web mercator zoom level a slippy map of Width x Height pixels
// would pick for the current viewport, honoring the padding and maximum zoom
// of the last fit. It returns -1 if the viewport was never fit.
func (m *MemoryMap) Zoom() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.viewport.IsEmpty() {
		return -1
	}
	return boundsZoom(m.viewport, m.Width, m.Height, m.fitOpts)
}

func boundsZoom(r s2.Rect, width, height int, opts FitOptions) int {
	w := float64(width - 2*opts.Padding)
	h := float64(height - 2*opts.Padding)
	if w <= 0 || h <= 0 {
		return 0
	}

	// Fractions of the world covered at zoom 0.
	dx := r.Size().Lng.Degrees() / 360
	dy := math.Abs(mercatorY(r.Hi().Lat.Degrees()) - mercatorY(r.Lo().Lat.Degrees()))

	zoom := opts.MaxZoom
	if dx > 0 {
		zoom = min(zoom, int(math.Floor(math.Log2(w/(dx*tileSize)))))
	}
	if dy > 0 {
		zoom = min(zoom, int(math.Floor(math.Log2(h/(dy*tileSize)))))
	}
	return max(zoom, 0)
}

// mercatorY maps a latitude to [0, 1] from north to south.
func mercatorY(lat float64) float64 {
	lat = math.Max(-85.0511, math.Min(85.0511, lat))
	s := math.Sin(lat * math.Pi / 180)
	return 0.5 - math.Log((1+s)/(1-s))/(4*math.Pi)
}
