package feed

import (
	"time"

	"snapfix/types"
)

// State is an immutable snapshot of the feed as the viewer sees it.
// Every transition returns a new State; Records is never modified in place.
type State struct {
	Records     []types.AnalysisRecord
	Selected    *types.AnalysisRecord
	Loading     bool
	Err         error
	LastUpdated time.Time
}

// NewState returns the state a viewer starts with: nothing loaded yet and a
// fetch about to begin.
func NewState() State {
	return State{Loading: true}
}

// BeginFetch marks a fetch as in flight.
func (s State) BeginFetch() State {
	s.Loading = true
	return s
}

// ApplyRecords replaces the record list after a successful fetch and clears
// the error.
//
// With nothing selected the newest record becomes the selection. An existing
// selection is kept: it is refreshed from the new list when its filename is
// still present and otherwise keeps showing the last record seen.
func (s State) ApplyRecords(records []types.AnalysisRecord, at time.Time) State {
	s.Records = records
	s.Loading = false
	s.Err = nil
	s.LastUpdated = at

	switch {
	case s.Selected == nil:
		s = s.AutoSelect()
	default:
		if rec, ok := s.Find(s.Selected.Filename); ok {
			s.Selected = &rec
		}
	}
	return s
}

// ApplyError records a failed fetch. Records and selection are left as they were.
func (s State) ApplyError(err error) State {
	s.Loading = false
	s.Err = err
	return s
}

// Apply folds a poll result into the state.
func (s State) Apply(res Result) State {
	if res.Err != nil {
		return s.ApplyError(res.Err)
	}
	return s.ApplyRecords(res.Records, res.At)
}

// AutoSelect selects the newest record if nothing is selected.
func (s State) AutoSelect() State {
	if s.Selected == nil && len(s.Records) > 0 {
		rec := s.Records[0]
		s.Selected = &rec
	}
	return s
}

// Select selects the record with the given filename from the current list.
// Unknown filenames leave the state unchanged.
func (s State) Select(filename string) State {
	if rec, ok := s.Find(filename); ok {
		s.Selected = &rec
	}
	return s
}

// SelectIndex selects Records[i]; out of range indexes are clamped.
func (s State) SelectIndex(i int) State {
	if len(s.Records) == 0 {
		return s
	}
	if i < 0 {
		i = 0
	}
	if i >= len(s.Records) {
		i = len(s.Records) - 1
	}
	return s.Select(s.Records[i].Filename)
}

// WithSelected replaces the selection with rec, which need not be in Records.
func (s State) WithSelected(rec *types.AnalysisRecord) State {
	if rec != nil {
		cp := *rec
		rec = &cp
	}
	s.Selected = rec
	return s
}

// SelectedIndex returns the position of the selection in Records, or -1 when
// nothing is selected or the selected record has left the feed.
func (s State) SelectedIndex() int {
	if s.Selected == nil {
		return -1
	}
	for i, r := range s.Records {
		if r.Filename == s.Selected.Filename {
			return i
		}
	}
	return -1
}

// IsSelected reports whether filename is the current selection.
func (s State) IsSelected(filename string) bool {
	return s.Selected != nil && s.Selected.Filename == filename
}

// Find looks a record up by filename in the current list.
func (s State) Find(filename string) (types.AnalysisRecord, bool) {
	for _, r := range s.Records {
		if r.Filename == filename {
			return r, true
		}
	}
	return types.AnalysisRecord{}, false
}

// ShowLoading reports whether the full-page loading indicator applies:
// a fetch is in flight and nothing has been loaded yet.
func (s State) ShowLoading() bool {
	return s.Loading && len(s.Records) == 0
}

// ShowRefreshing reports whether a fetch is in flight on top of loaded records.
func (s State) ShowRefreshing() bool {
	return s.Loading && len(s.Records) > 0
}

// ShowEmpty reports whether the capture instructions should replace the grid.
func (s State) ShowEmpty() bool {
	return !s.Loading && s.Err == nil && len(s.Records) == 0
}
