package vacationmap

import (
	"fmt"
	"html"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// OverlayKind distinguishes route overlays from point markers.
type OverlayKind int

const (
	// KindRoute is a loaded GeoJSON route file.
	KindRoute OverlayKind = iota
	// KindMarker is a climbing area circle marker.
	KindMarker
)

func (k OverlayKind) String() string {
	switch k {
	case KindRoute:
		return "route"
	case KindMarker:
		return "marker"
	}
	return fmt.Sprintf("OverlayKind(%d)", int(k))
}

// markerHashPrecision gives ~5m cells, enough to tell crags apart.
const markerHashPrecision = 9

// Style is the drawing style of an overlay. Radius and the fill fields only
// apply to markers.
type Style struct {
	Color       string
	Weight      float64
	Radius      float64
	FillColor   string
	FillOpacity float64
}

// Popup is the description bound to an overlay.
type Popup struct {
	Title      string
	Lines      []string
	DetailsURL string
}

// HTML renders the popup the way the map widget displays it.
func (p Popup) HTML() string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(html.EscapeString(p.Title))
	b.WriteString("</b><br>")
	for _, l := range p.Lines {
		b.WriteString(html.EscapeString(l))
		b.WriteString("<br>")
	}
	fmt.Fprintf(&b, `<a href="%s">Details</a>`, html.EscapeString(p.DetailsURL))
	return b.String()
}

// Overlay is a route or marker drawn for one vacation during one render pass.
type Overlay struct {
	ID         string
	Kind       OverlayKind
	Folder     string // owning vacation
	Generation uint64 // render pass that created it
	Source     string // GeoJSON URL for routes, area geohash for markers
	Style      Style
	Popup      Popup

	Features *geojson.FeatureCollection // routes only
	Point    orb.Point                  // markers only, [lon, lat]

	Bound    orb.Bound
	HasBound bool // false for documents without any geometry
}

// Region returns the overlay's extent as a lat/lng rectangle, or an empty
// rectangle when the overlay has no geometry.
func (o *Overlay) Region() s2.Rect {
	if !o.HasBound {
		return s2.EmptyRect()
	}
	r := s2.RectFromLatLng(s2.LatLngFromDegrees(o.Bound.Min.Lat(), o.Bound.Min.Lon()))
	return r.AddPoint(s2.LatLngFromDegrees(o.Bound.Max.Lat(), o.Bound.Max.Lon()))
}

func newRouteOverlay(v Vacation, ref GeoRef, src string, fc *geojson.FeatureCollection) *Overlay {
	o := &Overlay{
		ID:     uuid.NewString(),
		Kind:   KindRoute,
		Folder: v.Folder,
		Source: src,
		Style: Style{
			Color:  ColorFor(ref.Activity),
			Weight: 3,
		},
		Popup: Popup{
			Title:      fmt.Sprintf("%s (%d)", v.Destination, v.Year),
			Lines:      []string{"Activiteit: " + ref.Activity},
			DetailsURL: DetailsPath(v.Folder),
		},
		Features: fc,
	}
	o.Bound, o.HasBound = collectionBound(fc)
	return o
}

func newMarkerOverlay(v Vacation, name string, lat, lng float64, routes int) *Overlay {
	p := orb.Point{lng, lat}
	return &Overlay{
		ID:     uuid.NewString(),
		Kind:   KindMarker,
		Folder: v.Folder,
		Source: geohash.EncodeWithPrecision(lat, lng, markerHashPrecision),
		Style: Style{
			Color:       MarkerColor,
			Weight:      2,
			Radius:      7,
			FillColor:   MarkerColor,
			FillOpacity: 0.85,
		},
		Popup: Popup{
			Title:      name,
			Lines:      []string{fmt.Sprintf("Routes: %d", routes)},
			DetailsURL: DetailsPath(v.Folder),
		},
		Point:    p,
		Bound:    p.Bound(),
		HasBound: true,
	}
}

// collectionBound unions the bounds of every feature that has a geometry.
func collectionBound(fc *geojson.FeatureCollection) (orb.Bound, bool) {
	var (
		b  orb.Bound
		ok bool
	)
	for _, f := range fc.Features {
		if f == nil || f.Geometry == nil {
			continue
		}
		fb := f.Geometry.Bound()
		if fb.IsEmpty() {
			continue
		}
		if !ok {
			b, ok = fb, true
			continue
		}
		b = b.Union(fb)
	}
	return b, ok
}
