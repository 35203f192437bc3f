package vacationmap

import "sync"

// FilterState owns the current facet selection and notifies subscribers
// whenever it changes. It is safe for concurrent use.
type FilterState struct {
	mu     sync.Mutex
	sel    Selection
	years  map[int][]string // year -> folders
	yearOn map[int]bool     // year checkbox state, set only by the toggles
	facets Facets
	subs   []chan Selection
}

// NewFilterState creates an empty selection for the dataset described by f.
// Nothing is checked initially.
func NewFilterState(f Facets) *FilterState {
	st := &FilterState{
		sel: Selection{
			Folders:      NewStringSet(),
			Activities:   NewStringSet(),
			Participants: NewStringSet(),
		},
		years:  make(map[int][]string, len(f.Years)),
		yearOn: make(map[int]bool, len(f.Years)),
		facets: f,
	}
	for _, g := range f.Years {
		st.years[g.Year] = g.Folders()
	}
	return st
}

// Subscribe returns a channel that receives a snapshot after every change.
// The channel holds at most one pending snapshot: a slow reader only ever
// sees the latest selection.
func (st *FilterState) Subscribe() <-chan Selection {
	ch := make(chan Selection, 1)
	st.mu.Lock()
	st.subs = append(st.subs, ch)
	st.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current selection.
func (st *FilterState) Snapshot() Selection {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.snapshotLocked()
}

func (st *FilterState) snapshotLocked() Selection {
	return Selection{
		Folders:      st.sel.Folders.clone(),
		Activities:   st.sel.Activities.clone(),
		Participants: st.sel.Participants.clone(),
	}
}

// SetFolder checks or unchecks one vacation.
func (st *FilterState) SetFolder(folder string, checked bool) {
	st.update(func() bool { return set(st.sel.Folders, checked, folder) })
}

// SetActivity checks or unchecks one activity tag.
func (st *FilterState) SetActivity(activity string, checked bool) {
	st.update(func() bool { return set(st.sel.Activities, checked, activity) })
}

// SetParticipant checks or unchecks one participant.
func (st *FilterState) SetParticipant(name string, checked bool) {
	st.update(func() bool { return set(st.sel.Participants, checked, name) })
}

// ToggleYear checks every vacation of year if any of them is unchecked, and
// unchecks all of them otherwise. The year checkbox follows the same value.
func (st *FilterState) ToggleYear(year int) {
	st.update(func() bool {
		folders, ok := st.years[year]
		if !ok {
			return false
		}
		on := false
		for _, f := range folders {
			if !st.sel.Folders.Has(f) {
				on = true
				break
			}
		}
		changed := set(st.sel.Folders, on, folders...)
		if st.yearOn[year] != on {
			st.yearOn[year] = on
			changed = true
		}
		return changed
	})
}

// ToggleAll checks every year and every vacation if any year checkbox is
// unchecked, and clears them all otherwise. Only the year checkboxes are
// consulted, not the individual vacations.
func (st *FilterState) ToggleAll() {
	st.update(func() bool {
		on := false
		for y := range st.years {
			if !st.yearOn[y] {
				on = true
				break
			}
		}
		changed := false
		for y, folders := range st.years {
			if set(st.sel.Folders, on, folders...) {
				changed = true
			}
			if st.yearOn[y] != on {
				st.yearOn[y] = on
				changed = true
			}
		}
		return changed
	})
}

// YearChecked reports the state of the year checkbox. It changes only through
// ToggleYear and ToggleAll; checking vacations one by one leaves it alone.
func (st *FilterState) YearChecked(year int) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.yearOn[year]
}

// SelectAllActivities checks every known activity tag.
func (st *FilterState) SelectAllActivities() {
	st.update(func() bool { return set(st.sel.Activities, true, st.facets.Activities...) })
}

// SelectAllParticipants checks every known participant.
func (st *FilterState) SelectAllParticipants() {
	st.update(func() bool { return set(st.sel.Participants, true, st.facets.Participants...) })
}

// update applies fn and notifies subscribers if fn reports a change.
func (st *FilterState) update(fn func() bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !fn() {
		return
	}
	snap := st.snapshotLocked()
	for _, ch := range st.subs {
		// Replace a pending snapshot nobody has read yet.
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// set adds or removes vals and reports whether s changed.
func set(s StringSet, checked bool, vals ...string) bool {
	changed := false
	for _, v := range vals {
		if s.Has(v) == checked {
			continue
		}
		if checked {
			s[v] = struct{}{}
		} else {
			delete(s, v)
		}
		changed = true
	}
	return changed
}
