package vacationmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
)

// Vacation is one trip as served by /api/vacations.
// Values are treated as immutable once decoded.
type Vacation struct {
	Year         int                     `json:"year"`
	Folder       string                  `json:"folder"`
	Destination  string                  `json:"destination"`
	Activities   []string                `json:"activities"`
	Participants []string                `json:"participants"`
	GeoJSONFiles []GeoRef                `json:"geojson_files"`
	Climbing     map[string]ClimbingArea `json:"climbing"`
}

// GeoRef points at one route file of a vacation.
type GeoRef struct {
	Activity string `json:"activity"`
	Filename string `json:"filename"`
}

// ClimbingArea is a crag visited during a vacation. Coords is [lat, lon];
// entries with any other arity are not drawn.
type ClimbingArea struct {
	Coords []float64       `json:"coords"`
	Routes []ClimbingRoute `json:"routes"`
}

// ClimbingRoute is a single logged route. Only the count is used for display,
// so the fields are kept as free-form JSON.
type ClimbingRoute map[string]any

// LatLng returns the area's position and whether Coords has exactly two components.
func (a ClimbingArea) LatLng() (lat, lng float64, ok bool) {
	if len(a.Coords) != 2 {
		return 0, 0, false
	}
	return a.Coords[0], a.Coords[1], true
}

// RouteCount is the number of logged routes, 0 when none were recorded.
func (a ClimbingArea) RouteCount() int {
	return len(a.Routes)
}

var whitespaceRun = sync.OnceValue(func() *regexp.Regexp {
	return regexp.MustCompile(`[\s\p{Z}\x{FEFF}]+`)
})

// ActivitySlug lowercases an activity tag and replaces whitespace runs with a
// single underscore, e.g. "Via Ferrata" -> "via_ferrata".
func ActivitySlug(activity string) string {
	return whitespaceRun().ReplaceAllString(strings.ToLower(activity), "_")
}

// GeoJSONPath is the server path of a vacation's route file.
func GeoJSONPath(folder string, ref GeoRef) string {
	return "/vacation/" + url.PathEscape(folder) +
		"/geojson/" + url.PathEscape(ActivitySlug(ref.Activity)) +
		"/" + url.PathEscape(ref.Filename)
}

// DetailsPath is the server path of a vacation's details page.
func DetailsPath(folder string) string {
	return "/vacation/" + url.PathEscape(folder)
}

// DecodeVacations parses the /api/vacations payload.
func DecodeVacations(data []byte) ([]Vacation, error) {
	var vs []Vacation
	if err := json.Unmarshal(data, &vs); err != nil {
		return nil, fmt.Errorf("decoding vacations: %w", err)
	}
	return vs, nil
}

// Validate checks the invariants the renderer relies on: every vacation has a
// folder and folders are unique. All violations are reported together.
func Validate(vs []Vacation) error {
	var errs []error
	seen := make(map[string]int, len(vs))
	for i, v := range vs {
		if v.Folder == "" {
			errs = append(errs, fmt.Errorf("vacation %d (%q): empty folder", i, v.Destination))
			continue
		}
		if j, ok := seen[v.Folder]; ok {
			errs = append(errs, fmt.Errorf("vacation %d: folder %q already used by vacation %d", i, v.Folder, j))
			continue
		}
		seen[v.Folder] = i
	}
	return errors.Join(errs...)
}
