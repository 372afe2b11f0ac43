package dashboard

import (
	"context"

	"github.com/rileyhilliard/usagedash/internal/api"
)

// Tab is one of the dashboard panels.
type Tab int

const (
	TabOverview Tab = iota
	TabApps
	TabStats

	tabCount
)

// String returns the tab's identifier.
func (t Tab) String() string {
	switch t {
	case TabOverview:
		return "overview"
	case TabApps:
		return "apps"
	case TabStats:
		return "stats"
	default:
		return "unknown"
	}
}

// Next cycles forward through the tabs.
func (t Tab) Next() Tab {
	return (t + 1) % tabCount
}

// Prev cycles backward through the tabs.
func (t Tab) Prev() Tab {
	return (t + tabCount - 1) % tabCount
}

// lazy reports whether the tab reloads its data every time it is entered.
func (t Tab) lazy() bool {
	return t == TabApps || t == TabStats
}

// load tracks the newest request batch issued for a tab.
type load struct {
	gen    uint64
	cancel context.CancelFunc
}

// State is everything the dashboard knows. It is owned by the model and
// only changed from Update.
type State struct {
	// Running is the last monitoring state confirmed by the tracker or by
	// a successful toggle.
	Running bool

	// Polling guards the status poll loop. StartPolling is a no-op while
	// it is set.
	Polling   bool
	pollEpoch uint64

	Tab    Tab
	Period api.Period

	loads [tabCount]load

	// Status is the latest snapshot; each poll replaces it wholesale.
	Status    api.Status
	HasStatus bool

	TopApps AppList
	Apps    AppList
	Week    *api.WeekSummary

	Charts Charts

	Monitor        Toggle
	Autostart      Toggle
	AutostartKnown bool
}

// StartPolling arms the poll loop unless it is already running. It
// returns the epoch the new loop runs under and whether a loop was started.
func (s *State) StartPolling() (uint64, bool) {
	if s.Polling {
		return s.pollEpoch, false
	}
	s.Polling = true
	s.pollEpoch++
	return s.pollEpoch, true
}

// StopPolling tears the poll loop down. Ticks and poll responses from the
// old epoch are ignored from now on.
func (s *State) StopPolling() {
	s.Polling = false
	s.pollEpoch++
}

// PollEpoch returns the current poll epoch.
func (s State) PollEpoch() uint64 {
	return s.pollEpoch
}

// livePoll reports whether a tick or response from epoch still counts.
func (s *State) livePoll(epoch uint64) bool {
	return s.Polling && epoch == s.pollEpoch
}

// beginLoad cancels whatever tab t still has in flight and returns a fresh
// context and generation for the next batch.
func (s *State) beginLoad(parent context.Context, t Tab) (context.Context, uint64) {
	s.abandon(t)
	ctx, cancel := context.WithCancel(parent)
	s.loads[t].cancel = cancel
	return ctx, s.loads[t].gen
}

// abandon cancels tab t's in-flight batch and moves its generation on.
func (s *State) abandon(t Tab) {
	if c := s.loads[t].cancel; c != nil {
		c()
	}
	s.loads[t].cancel = nil
	s.loads[t].gen++
}

// current reports whether a response tagged gen is still wanted by tab t.
func (s *State) current(t Tab, gen uint64) bool {
	return s.loads[t].gen == gen
}

// Generation returns tab t's current load generation.
func (s State) Generation(t Tab) uint64 {
	return s.loads[t].gen
}

// cancelAll cancels every in-flight load.
func (s *State) cancelAll() {
	for t := Tab(0); t < tabCount; t++ {
		if c := s.loads[t].cancel; c != nil {
			c()
			s.loads[t].cancel = nil
		}
	}
}
