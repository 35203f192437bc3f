package vacationmap

import (
	"time"

	. "gopkg.in/check.v1"
)

type StateSuite struct {
	st *FilterState
}

var _ = Suite(&StateSuite{})

func (s *StateSuite) SetUpTest(c *C) {
	vs := []Vacation{
		vacation("2024-a", 2024, []string{"wandelen"}, []string{"Anna"}),
		vacation("2024-b", 2024, []string{"fietsen"}, []string{"Bram"}),
		vacation("2023-a", 2023, []string{"via_ferrata"}, []string{"Anna"}),
	}
	s.st = NewFilterState(BuildFacets(vs))
}

func (s *StateSuite) TestStartsEmpty(c *C) {
	sel := s.st.Snapshot()
	c.Assert(sel.Folders, HasLen, 0)
	c.Assert(sel.Activities, HasLen, 0)
	c.Assert(sel.Participants, HasLen, 0)
}

func (s *StateSuite) TestToggleYearChecksAllWhenAnyUnchecked(c *C) {
	s.st.SetFolder("2024-a", true)
	s.st.ToggleYear(2024)
	c.Assert(s.st.Snapshot().Folders.Sorted(), DeepEquals, []string{"2024-a", "2024-b"})
	c.Assert(s.st.YearChecked(2024), Equals, true)

	s.st.ToggleYear(2024)
	c.Assert(s.st.Snapshot().Folders, HasLen, 0)
	c.Assert(s.st.YearChecked(2024), Equals, false)
}

func (s *StateSuite) TestYearCheckboxIgnoresIndividualChanges(c *C) {
	s.st.ToggleYear(2024)
	s.st.SetFolder("2024-b", false)
	c.Assert(s.st.YearChecked(2024), Equals, true)

	// One vacation of 2024 is unchecked again, so the toggle checks them all.
	s.st.ToggleYear(2024)
	c.Assert(s.st.Snapshot().Folders.Sorted(), DeepEquals, []string{"2024-a", "2024-b"})
}

func (s *StateSuite) TestToggleAllLooksAtYearCheckboxes(c *C) {
	s.st.ToggleAll()
	c.Assert(s.st.Snapshot().Folders, HasLen, 3)
	c.Assert(s.st.YearChecked(2023), Equals, true)

	// All year boxes are still checked, so the next toggle clears everything
	// even though a vacation was unchecked by hand.
	s.st.SetFolder("2023-a", false)
	s.st.ToggleAll()
	c.Assert(s.st.Snapshot().Folders, HasLen, 0)
	c.Assert(s.st.YearChecked(2024), Equals, false)

	s.st.ToggleYear(2024)
	s.st.ToggleAll()
	c.Assert(s.st.Snapshot().Folders, HasLen, 3)
}

func (s *StateSuite) TestToggleUnknownYear(c *C) {
	s.st.ToggleYear(1999)
	c.Assert(s.st.Snapshot().Folders, HasLen, 0)
	c.Assert(s.st.YearChecked(1999), Equals, false)
}

func (s *StateSuite) TestSelectAllFacets(c *C) {
	s.st.SelectAllActivities()
	s.st.SelectAllParticipants()
	sel := s.st.Snapshot()
	c.Assert(sel.Activities.Sorted(), DeepEquals, []string{"fietsen", "via_ferrata", "wandelen"})
	c.Assert(sel.Participants.Sorted(), DeepEquals, []string{"Anna", "Bram"})

	s.st.SetActivity("fietsen", false)
	s.st.SetParticipant("Bram", false)
	sel = s.st.Snapshot()
	c.Assert(sel.Activities.Has("fietsen"), Equals, false)
	c.Assert(sel.Participants.Has("Bram"), Equals, false)
}

func (s *StateSuite) TestSnapshotIsACopy(c *C) {
	sel := s.st.Snapshot()
	sel.Folders["2024-a"] = struct{}{}
	c.Assert(s.st.Snapshot().Folders, HasLen, 0)
}

func (s *StateSuite) TestSubscribeCoalescesToLatest(c *C) {
	ch := s.st.Subscribe()
	s.st.SetFolder("2024-a", true)
	s.st.SetFolder("2024-b", true)
	s.st.SetFolder("2023-a", true)

	select {
	case sel := <-ch:
		c.Assert(sel.Folders, HasLen, 3)
	case <-time.After(time.Second):
		c.Fatal("no notification")
	}

	select {
	case sel := <-ch:
		c.Fatalf("unexpected extra notification: %v", sel.Folders.Sorted())
	default:
	}
}

func (s *StateSuite) TestEverySubscriberIsNotified(c *C) {
	a, b := s.st.Subscribe(), s.st.Subscribe()
	s.st.SetActivity("wandelen", true)
	for _, ch := range []<-chan Selection{a, b} {
		sel := <-ch
		c.Assert(sel.Activities.Has("wandelen"), Equals, true)
	}
}

func (s *StateSuite) TestNoNotificationWithoutChange(c *C) {
	ch := s.st.Subscribe()
	s.st.ToggleYear(1999)
	s.st.SetFolder("2024-a", false)
	s.st.SetActivity("kajakken", false)

	s.st.SetParticipant("Anna", true)
	<-ch
	s.st.SetParticipant("Anna", true)
	s.st.SelectAllParticipants()
	<-ch
	s.st.SelectAllParticipants()
	s.st.SetParticipant("Bram", true)

	select {
	case sel := <-ch:
		c.Fatalf("notified without a change: %v", sel.Participants.Sorted())
	default:
	}
}
