package vacationmap

// DefaultColor is used for activity tags missing from the legend.
const DefaultColor = "#555"

// MarkerColor is the stroke and fill of climbing area markers.
const MarkerColor = "#8e44ad"

// LegendEntry is one swatch of the map legend.
type LegendEntry struct {
	Activity string
	Color    string
}

var legend = []LegendEntry{
	{Activity: "wandelen", Color: "#2E8B57"},
	{Activity: "via_ferrata", Color: "#E74C3C"},
	{Activity: "fietsen", Color: "#3498DB"},
	{Activity: "alpineren", Color: "#1ABC9C"},
}

// Legend returns the known activity tags and their colors in display order.
// Unknown tags are drawn in DefaultColor and are not part of the legend.
func Legend() []LegendEntry {
	out := make([]LegendEntry, len(legend))
	copy(out, legend)
	return out
}

// ColorFor returns the route color of an activity tag. The lookup is exact:
// tags are matched as they appear in the vacation data.
func ColorFor(activity string) string {
	for _, e := range legend {
		if e.Activity == activity {
			return e.Color
		}
	}
	return DefaultColor
}
