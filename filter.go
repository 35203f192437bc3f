package vacationmap

import "slices"

// StringSet is a set of facet values.
type StringSet map[string]struct{}

// NewStringSet returns a set holding vals.
func NewStringSet(vals ...string) StringSet {
	s := make(StringSet, len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Has reports whether v is in the set. A nil set has no members.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order.
func (s StringSet) Sorted() []string {
	return sortedKeys(s)
}

func (s StringSet) clone() StringSet {
	out := make(StringSet, len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// anyIn reports whether at least one of vals is in s.
func (s StringSet) anyIn(vals []string) bool {
	return slices.ContainsFunc(vals, s.Has)
}

// Selection is a snapshot of the checked values of each facet.
type Selection struct {
	Folders      StringSet
	Activities   StringSet
	Participants StringSet
}

// Matches reports whether v passes all three facet gates. The folder gate is
// mandatory; the activity and participant gates pass vacuously when nothing is
// selected in them and otherwise need at least one overlapping value.
func (s Selection) Matches(v Vacation) bool {
	if !s.Folders.Has(v.Folder) {
		return false
	}
	if len(s.Activities) > 0 && !s.Activities.anyIn(v.Activities) {
		return false
	}
	if len(s.Participants) > 0 && !s.Participants.anyIn(v.Participants) {
		return false
	}
	return true
}

// Filter returns the vacations matching sel, in input order. With no folder
// selected the result is always empty.
func Filter(all []Vacation, sel Selection) []Vacation {
	var out []Vacation
	for _, v := range all {
		if sel.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}
