package feed

import (
	"testing"
	"time"

	"snapfix/types"
)

func TestStoreAppliesPollEvents(t *testing.T) {
	s := NewStore()
	if !s.Snapshot().ShowLoading() {
		t.Fatal("new store should be loading")
	}

	s.PollStarted("t1")
	s.PollFinished(Result{TickID: "t1", At: time.Now(), Records: []types.AnalysisRecord{
		{Filename: "b.png", Timestamp: "2024-01-02T10:00:00Z"},
		{Filename: "a.png", Timestamp: "2024-01-01T10:00:00Z"},
	}})

	snap := s.Snapshot()
	if len(snap.Records) != 2 || snap.Loading {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	s.PollStarted("t2")
	if !s.Snapshot().ShowRefreshing() {
		t.Fatal("second fetch should show refreshing")
	}
	s.PollFinished(Result{TickID: "t2", Err: &FetchError{StatusCode: 500}})
	snap = s.Snapshot()
	if snap.Err == nil || len(snap.Records) != 2 {
		t.Fatalf("failure should keep records and set error: %+v", snap)
	}
}

func TestStoreViewFor(t *testing.T) {
	s := NewStore()
	s.PollFinished(Result{At: time.Now(), Records: []types.AnalysisRecord{
		{Filename: "old.png", Timestamp: "2024-01-01T10:00:00Z", FinalSolution: "old analysis"},
	}})
	s.PollFinished(Result{At: time.Now(), Records: []types.AnalysisRecord{
		{Filename: "new.png", Timestamp: "2024-01-02T10:00:00Z"},
	}})

	cases := []struct {
		name     string
		selected string
		want     string
	}{
		{"no choice gets newest", "", "new.png"},
		{"current record", "new.png", "new.png"},
		{"record that left the feed", "old.png", "old.png"},
		{"never seen falls back to newest", "nope.png", "new.png"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			view := s.ViewFor(c.selected)
			if !view.IsSelected(c.want) {
				t.Fatalf("ViewFor(%q) selected %v; want %s", c.selected, view.Selected, c.want)
			}
		})
	}

	if view := s.ViewFor("old.png"); view.Selected.FinalSolution != "old analysis" {
		t.Fatalf("stale record content lost: %q", view.Selected.FinalSolution)
	}
}

func TestStoreRemembersOnlyDroppedRecords(t *testing.T) {
	s := NewStoreWithLimit(2)
	feedOf := func(names ...string) Result {
		recs := make([]types.AnalysisRecord, 0, len(names))
		for _, n := range names {
			recs = append(recs, types.AnalysisRecord{Filename: n, Timestamp: "2024-01-01T10:00:00Z"})
		}
		return Result{At: time.Now(), Records: recs}
	}

	s.PollFinished(feedOf("a.png", "b.png", "c.png", "d.png"))
	if n := s.Dropped(); n != 0 {
		t.Fatalf("records still in the feed are not dropped, got %d", n)
	}

	s.PollFinished(feedOf("d.png"))
	if n := s.Dropped(); n != 2 {
		t.Fatalf("dropped = %d; want the limit of 2", n)
	}
	if _, ok := s.Lookup("a.png"); ok {
		t.Fatal("oldest drop should be evicted")
	}
	for _, name := range []string{"b.png", "c.png", "d.png"} {
		if _, ok := s.Lookup(name); !ok {
			t.Fatalf("%s should still resolve", name)
		}
	}

	s.PollFinished(feedOf("c.png", "d.png"))
	if n := s.Dropped(); n != 1 {
		t.Fatalf("a record back in the feed is no longer dropped, got %d", n)
	}

	s.PollFinished(Result{Err: &FetchError{StatusCode: 500}})
	if n := s.Dropped(); n != 1 {
		t.Fatalf("a failed poll must not change drops, got %d", n)
	}
}
