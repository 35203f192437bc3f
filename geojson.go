package vacationmap

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb/geojson"
)

// parseDocument accepts a FeatureCollection, a single Feature or a bare
// geometry and always returns a collection.
func parseDocument(data []byte) (*geojson.FeatureCollection, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("parsing feature collection: %w", err)
		}
		return fc, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("parsing feature: %w", err)
		}
		fc := geojson.NewFeatureCollection()
		fc.Append(f)
		return fc, nil
	case "":
		return nil, fmt.Errorf("parsing geojson: missing type")
	}

	g, err := geojson.UnmarshalGeometry(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s geometry: %w", head.Type, err)
	}
	fc := geojson.NewFeatureCollection()
	fc.Append(geojson.NewFeature(g.Geometry()))
	return fc, nil
}

// simplifyCollection returns a copy of fc with every line thinned by tol.
func simplifyCollection(fc *geojson.FeatureCollection, tol float64) *geojson.FeatureCollection {
	out := geojson.NewFeatureCollection()
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		nf := *f
		if f.Geometry != nil {
			nf.Geometry = simplifyGeometry(f.Geometry, tol)
		}
		out.Append(&nf)
	}
	return out
}
