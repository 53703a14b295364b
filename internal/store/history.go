package store

import (
	"time"

	"github.com/fieldline-data/measurekit/internal/measure"
)

// snapshot is a full deep copy of the measurement and group maps. History
// keeps the initial state plus one snapshot per mutation, so walking the
// index backward and forward replays every committed state exactly.
type snapshot struct {
	measurements map[string]*measure.Measurement
	groups       map[string]*measure.Group
	takenAt      time.Time
	action       string
}

func (s *Store) takeSnapshot(action string) snapshot {
	ms := make(map[string]*measure.Measurement, len(s.measurements))
	for id, m := range s.measurements {
		ms[id] = m.Clone()
	}
	gs := make(map[string]*measure.Group, len(s.groups))
	for id, g := range s.groups {
		gs[id] = g.Clone()
	}
	return snapshot{
		measurements: ms,
		groups:       gs,
		takenAt:      time.Now().UTC(),
		action:       action,
	}
}

// record appends a post-mutation snapshot, discarding any redo tail first.
// When the history exceeds its bound the oldest entry is evicted and the
// index shifted down with it; the index never goes negative.
func (s *Store) record(action string) {
	s.history = s.history[:s.historyIndex+1]
	s.history = append(s.history, s.takeSnapshot(action))
	s.historyIndex = len(s.history) - 1
	for len(s.history) > s.maxHistory {
		s.history = s.history[1:]
		if s.historyIndex > 0 {
			s.historyIndex--
		}
	}
}

// restore installs deep copies of a snapshot, so later mutations cannot
// reach back into history.
func (s *Store) restore(sn snapshot) {
	ms := make(map[string]*measure.Measurement, len(sn.measurements))
	for id, m := range sn.measurements {
		ms[id] = m.Clone()
	}
	gs := make(map[string]*measure.Group, len(sn.groups))
	for id, g := range sn.groups {
		gs[id] = g.Clone()
	}
	s.measurements = ms
	s.groups = gs
}

// Undo steps back one snapshot. Returns false at the backward boundary.
func (s *Store) Undo() bool {
	if s.historyIndex <= 0 {
		return false
	}
	s.historyIndex--
	s.restore(s.history[s.historyIndex])
	return true
}

// Redo steps forward one snapshot. Returns false at the forward boundary.
func (s *Store) Redo() bool {
	if s.historyIndex >= len(s.history)-1 {
		return false
	}
	s.historyIndex++
	s.restore(s.history[s.historyIndex])
	return true
}

// CanUndo reports whether Undo would succeed.
func (s *Store) CanUndo() bool { return s.historyIndex > 0 }

// CanRedo reports whether Redo would succeed.
func (s *Store) CanRedo() bool { return s.historyIndex < len(s.history)-1 }

// HistoryLen returns the number of snapshots held.
func (s *Store) HistoryLen() int { return len(s.history) }

// LastAction returns the label of the snapshot at the current index.
func (s *Store) LastAction() string {
	return s.history[s.historyIndex].action
}
