package vacationmap

import (
	. "gopkg.in/check.v1"
)

type FilterSuite struct {
	vs []Vacation
}

var _ = Suite(&FilterSuite{})

func (s *FilterSuite) SetUpTest(c *C) {
	s.vs = []Vacation{
		vacation("2024-dolomieten", 2024, []string{"wandelen", "via_ferrata"}, []string{"Anna", "Bram"}),
		vacation("2023-ardennen", 2023, []string{"fietsen"}, []string{"Bram"}),
		vacation("2022-engadin", 2022, []string{"wandelen"}, []string{"Anna", "Cees"}),
		vacation("2021-thuis", 2021, nil, nil),
	}
}

func folders(vs []Vacation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Folder
	}
	return out
}

func (s *FilterSuite) allFolders() StringSet {
	return NewStringSet(folders(s.vs)...)
}

func (s *FilterSuite) TestSingleVacationSelected(c *C) {
	vs := []Vacation{vacation("f1", 2024, []string{"wandelen"}, []string{"A"})}
	got := Filter(vs, Selection{Folders: NewStringSet("f1")})
	c.Assert(folders(got), DeepEquals, []string{"f1"})
}

func (s *FilterSuite) TestNonMatchingActivity(c *C) {
	vs := []Vacation{vacation("f1", 2024, []string{"wandelen"}, []string{"A"})}
	got := Filter(vs, Selection{
		Folders:    NewStringSet("f1"),
		Activities: NewStringSet("fietsen"),
	})
	c.Assert(got, HasLen, 0)
}

func (s *FilterSuite) TestNoFoldersMeansNothing(c *C) {
	got := Filter(s.vs, Selection{
		Activities:   NewStringSet("wandelen", "fietsen"),
		Participants: NewStringSet("Anna", "Bram", "Cees"),
	})
	c.Assert(got, HasLen, 0)

	got = Filter(s.vs, Selection{Folders: NewStringSet()})
	c.Assert(got, HasLen, 0)
}

func (s *FilterSuite) TestAllFoldersNoFacets(c *C) {
	got := Filter(s.vs, Selection{Folders: s.allFolders()})
	c.Assert(folders(got), DeepEquals, folders(s.vs))
}

func (s *FilterSuite) TestActivityOrWithinFacet(c *C) {
	got := Filter(s.vs, Selection{
		Folders:    s.allFolders(),
		Activities: NewStringSet("via_ferrata", "fietsen"),
	})
	c.Assert(folders(got), DeepEquals, []string{"2024-dolomieten", "2023-ardennen"})
}

func (s *FilterSuite) TestVacationWithoutActivitiesFailsActiveFilter(c *C) {
	got := Filter(s.vs, Selection{
		Folders:    NewStringSet("2021-thuis"),
		Activities: NewStringSet("wandelen"),
	})
	c.Assert(got, HasLen, 0)

	got = Filter(s.vs, Selection{Folders: NewStringSet("2021-thuis")})
	c.Assert(folders(got), DeepEquals, []string{"2021-thuis"})
}

func (s *FilterSuite) TestFacetsCombineWithAnd(c *C) {
	got := Filter(s.vs, Selection{
		Folders:      NewStringSet("2024-dolomieten", "2023-ardennen", "2022-engadin"),
		Activities:   NewStringSet("wandelen"),
		Participants: NewStringSet("Cees"),
	})
	c.Assert(folders(got), DeepEquals, []string{"2022-engadin"})
}

func (s *FilterSuite) TestFolderGateIsMandatory(c *C) {
	got := Filter(s.vs, Selection{
		Folders:      NewStringSet("2023-ardennen"),
		Activities:   NewStringSet("wandelen"),
		Participants: NewStringSet("Anna"),
	})
	c.Assert(got, HasLen, 0)
}

func (s *FilterSuite) TestMatchesAgreesWithDefinition(c *C) {
	sel := Selection{Folders: s.allFolders(), Activities: NewStringSet("wandelen")}
	for _, v := range s.vs {
		want := false
		for _, a := range v.Activities {
			if a == "wandelen" {
				want = true
			}
		}
		c.Check(sel.Matches(v), Equals, want, Commentf("folder %s", v.Folder))
	}
}

func (s *FilterSuite) TestStringSet(c *C) {
	set := NewStringSet("b", "a", "b")
	c.Assert(set, HasLen, 2)
	c.Assert(set.Has("a"), Equals, true)
	c.Assert(set.Has("c"), Equals, false)
	c.Assert(set.Sorted(), DeepEquals, []string{"a", "b"})

	var empty StringSet
	c.Assert(empty.Has("a"), Equals, false)
}
