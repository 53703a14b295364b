// Package store implements the measurement repository: the single source of
// truth for finalized measurements and groups, with bounded full-snapshot
// undo/redo, aggregates and JSON/CSV interchange. A store is an explicit
// object, constructor-configured; tests and independent sessions each get
// their own.
//
// The store is not synchronized. Snapshot-based undo is unsafe under
// concurrent mutation, so an embedding host must serialize all mutating
// calls (single-writer discipline); the HTTP layer does this with a mutex.
package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fieldline-data/measurekit/internal/measure"
)

// DefaultMaxHistory bounds the undo history when Options does not.
const DefaultMaxHistory = 50

// Options configures a new store. DefaultPrecision is a pointer so an
// explicit zero (whole numbers) is distinguishable from unset.
type Options struct {
	MaxHistory       int
	DefaultUnit      string
	DefaultPrecision *int
	SnapTolerance    float64
}

// Settings is the durable preference subset persisted alongside
// measurements and groups. In-flight capture state is never part of this.
type Settings struct {
	Unit          string  `json:"unit"`
	Precision     int     `json:"precision"`
	SnapTolerance float64 `json:"snap_tolerance"`
}

// Store holds finalized measurements and groups.
type Store struct {
	measurements map[string]*measure.Measurement
	groups       map[string]*measure.Group
	settings     Settings

	maxHistory   int
	history      []snapshot
	historyIndex int
}

// New returns an empty store. Zero options get working defaults: feet,
// two decimals, history of DefaultMaxHistory entries.
func New(opts Options) *Store {
	if opts.MaxHistory <= 0 {
		opts.MaxHistory = DefaultMaxHistory
	}
	if opts.DefaultUnit == "" {
		opts.DefaultUnit = "feet"
	}
	precision := 2
	if opts.DefaultPrecision != nil && *opts.DefaultPrecision >= 0 {
		precision = *opts.DefaultPrecision
	}
	if opts.SnapTolerance <= 0 {
		opts.SnapTolerance = 0.5
	}
	s := &Store{
		measurements: make(map[string]*measure.Measurement),
		groups:       make(map[string]*measure.Group),
		settings: Settings{
			Unit:          opts.DefaultUnit,
			Precision:     precision,
			SnapTolerance: opts.SnapTolerance,
		},
		maxHistory: opts.MaxHistory,
	}
	s.history = []snapshot{s.takeSnapshot("init")}
	s.historyIndex = 0
	return s
}

// Settings returns the current durable preferences.
func (s *Store) Settings() Settings { return s.settings }

// SetSettings replaces the durable preferences. Preference changes are not
// part of the undo history, which covers measurement and group state only.
func (s *Store) SetSettings(set Settings) { s.settings = set }

// Len returns the number of measurements held.
func (s *Store) Len() int { return len(s.measurements) }

// Add assigns a fresh id, stamps timestamps, fills unit/name defaults,
// recomputes the derived result and appends the measurement. A negative
// precision inherits the store default; zero is a valid precision meaning
// whole numbers. Returns the assigned id.
func (s *Store) Add(m *measure.Measurement) string {
	now := time.Now().UTC()
	stored := m.Clone()
	stored.ID = uuid.New().String()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Unit == "" {
		stored.Unit = s.settings.Unit
	}
	if stored.Precision < 0 {
		stored.Precision = s.settings.Precision
	}
	if stored.Name == "" {
		stored.Name = s.defaultName(stored.Kind)
	}
	if stored.Geometry != nil {
		stored.Result = measure.Compute(stored.Geometry)
	}
	s.measurements[stored.ID] = stored
	s.record("add " + stored.Kind.String())
	return stored.ID
}

// Get returns a copy of the measurement, or false for an unknown id.
func (s *Store) Get(id string) (*measure.Measurement, bool) {
	m, ok := s.measurements[id]
	if !ok {
		return nil, false
	}
	return m.Clone(), true
}

// List returns copies of all measurements ordered by creation time.
func (s *Store) List() []*measure.Measurement {
	out := make([]*measure.Measurement, 0, len(s.measurements))
	for _, m := range s.measurements {
		out = append(out, m.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// MeasurementPatch is a partial update; nil fields are left unchanged.
// A new Geometry triggers recomputation of the derived result.
type MeasurementPatch struct {
	Name      *string          `json:"name,omitempty"`
	Visible   *bool            `json:"visible,omitempty"`
	Locked    *bool            `json:"locked,omitempty"`
	GroupID   *string          `json:"group_id,omitempty"`
	Unit      *string          `json:"unit,omitempty"`
	Precision *int             `json:"precision,omitempty"`
	Style     *measure.Style   `json:"style,omitempty"`
	Geometry  measure.Geometry `json:"-"`
}

// Update merges the patch into the measurement, stamps UpdatedAt and
// snapshots. Unknown ids and patches carrying invalid geometry are silent
// no-ops returning false.
func (s *Store) Update(id string, patch MeasurementPatch) bool {
	m, ok := s.measurements[id]
	if !ok {
		return false
	}
	if patch.Geometry != nil {
		if measure.Validate(patch.Geometry) != nil {
			return false
		}
		if measure.KindOf(patch.Geometry) != m.Kind {
			return false
		}
	}
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.Visible != nil {
		m.Visible = *patch.Visible
	}
	if patch.Locked != nil {
		m.Locked = *patch.Locked
	}
	if patch.GroupID != nil {
		m.GroupID = *patch.GroupID
	}
	if patch.Unit != nil {
		m.Unit = *patch.Unit
	}
	if patch.Precision != nil {
		m.Precision = *patch.Precision
	}
	if patch.Style != nil {
		m.Style = *patch.Style
	}
	if patch.Geometry != nil {
		m.Geometry = measure.CloneGeometry(patch.Geometry)
		m.Result = measure.Compute(m.Geometry)
	}
	m.UpdatedAt = time.Now().UTC()
	s.record("update measurement")
	return true
}

// Delete removes the measurement and strips its id from every group's
// member list. Unknown ids are a silent no-op returning false.
func (s *Store) Delete(id string) bool {
	if _, ok := s.measurements[id]; !ok {
		return false
	}
	delete(s.measurements, id)
	for _, g := range s.groups {
		g.Members = removeString(g.Members, id)
	}
	s.record("delete measurement")
	return true
}

// Duplicate clones the measurement under "<name> (Copy)" through Add, so
// the copy gets its own id, timestamps and history entry.
func (s *Store) Duplicate(id string) (string, bool) {
	m, ok := s.measurements[id]
	if !ok {
		return "", false
	}
	clone := m.Clone()
	clone.Name = fmt.Sprintf("%s (Copy)", m.Name)
	clone.GroupID = ""
	return s.Add(clone), true
}

// SelectAll returns every measurement id, ordered by creation time.
func (s *Store) SelectAll() []string {
	list := s.List()
	ids := make([]string, len(list))
	for i, m := range list {
		ids[i] = m.ID
	}
	return ids
}

// DeleteSelected deletes each id in turn. Every deletion snapshots
// individually; the bulk is not atomic under undo.
func (s *Store) DeleteSelected(ids []string) int {
	n := 0
	for _, id := range ids {
		if s.Delete(id) {
			n++
		}
	}
	return n
}

// SetVisibleSelected shows or hides each id through Update, one history
// entry per item.
func (s *Store) SetVisibleSelected(ids []string, visible bool) int {
	n := 0
	for _, id := range ids {
		v := visible
		if s.Update(id, MeasurementPatch{Visible: &v}) {
			n++
		}
	}
	return n
}

// defaultName numbers measurements per kind: "linear 3" is the third
// linear measurement currently in the store.
func (s *Store) defaultName(kind measure.Kind) string {
	n := 1
	for _, m := range s.measurements {
		if m.Kind == kind {
			n++
		}
	}
	return fmt.Sprintf("%s %d", kind, n)
}

func removeString(list []string, v string) []string {
	out := list[:0]
	for _, s := range list {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}
