package vacationmap

import (
	"slices"
	"sort"
)

// Facets is the universe of filter options for a dataset. It is computed once
// after the vacations are loaded and does not change with the selection.
type Facets struct {
	Activities   []string    // distinct activity tags, ascending
	Participants []string    // distinct participant names, ascending
	Years        []YearGroup // vacations grouped by year, newest first
}

// YearGroup is one year of the sidebar with its vacations in dataset order.
type YearGroup struct {
	Year      int
	Vacations []Vacation
}

// Folders returns the folders of the vacations in the group.
func (g YearGroup) Folders() []string {
	out := make([]string, len(g.Vacations))
	for i, v := range g.Vacations {
		out[i] = v.Folder
	}
	return out
}

// BuildFacets derives the filter options from the full vacation collection.
func BuildFacets(vs []Vacation) Facets {
	activities := make(map[string]struct{})
	participants := make(map[string]struct{})
	byYear := make(map[int][]Vacation)
	for _, v := range vs {
		for _, a := range v.Activities {
			activities[a] = struct{}{}
		}
		for _, p := range v.Participants {
			participants[p] = struct{}{}
		}
		byYear[v.Year] = append(byYear[v.Year], v)
	}

	f := Facets{
		Activities:   sortedKeys(activities),
		Participants: sortedKeys(participants),
		Years:        make([]YearGroup, 0, len(byYear)),
	}
	for y, group := range byYear {
		f.Years = append(f.Years, YearGroup{Year: y, Vacations: group})
	}
	sort.Slice(f.Years, func(i, j int) bool { return f.Years[i].Year > f.Years[j].Year })
	return f
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
