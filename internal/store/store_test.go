package store

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-data/measurekit/internal/geom"
	"github.com/fieldline-data/measurekit/internal/measure"
)

func linearMeasurement(name string, length float64) *measure.Measurement {
	return &measure.Measurement{
		Name:    name,
		Kind:    measure.Linear,
		Visible: true,
		Geometry: measure.LinearGeometry{
			Points: []geom.Point{{}, {X: length}},
		},
	}
}

func TestAddAssignsIdentityAndDefaults(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(&measure.Measurement{
		Kind:      measure.Linear,
		Precision: -1,
		Geometry:  measure.LinearGeometry{Points: []geom.Point{{}, {X: 10}}},
	})
	require.NotEmpty(t, id)

	m, ok := s.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "feet", m.Unit)
	assert.Equal(t, 2, m.Precision)
	assert.Equal(t, "linear 1", m.Name)
	assert.False(t, m.CreatedAt.IsZero())
	assert.Equal(t, 10.0, m.Result.TotalDistance)

	id2 := s.Add(linearMeasurement("", 5))
	m2, _ := s.Get(id2)
	assert.Equal(t, "linear 2", m2.Name)
	assert.Equal(t, "add linear", s.LastAction())
}

func TestGetReturnsCopy(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("a", 10))

	m, _ := s.Get(id)
	m.Name = "mutated"
	g := m.Geometry.(measure.LinearGeometry)
	g.Points[1].X = 99

	again, _ := s.Get(id)
	assert.Equal(t, "a", again.Name)
	assert.Equal(t, 10.0, again.Geometry.(measure.LinearGeometry).Points[1].X)
}

func TestUpdateMergesAndRecomputes(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("a", 10))
	before, _ := s.Get(id)

	name := "renamed"
	hidden := false
	ok := s.Update(id, MeasurementPatch{
		Name:     &name,
		Visible:  &hidden,
		Geometry: measure.LinearGeometry{Points: []geom.Point{{}, {X: 25}}},
	})
	require.True(t, ok)

	m, _ := s.Get(id)
	assert.Equal(t, "renamed", m.Name)
	assert.False(t, m.Visible)
	assert.Equal(t, 25.0, m.Result.TotalDistance)
	assert.True(t, m.CreatedAt.Equal(before.CreatedAt))
	assert.False(t, m.UpdatedAt.Before(before.UpdatedAt))
}

func TestUpdateUnknownIsNoOp(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	name := "x"
	assert.False(t, s.Update("missing", MeasurementPatch{Name: &name}))
	assert.False(t, s.CanUndo())
}

func TestUpdateRejectsInvalidOrMismatchedGeometry(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("a", 10))
	entries := s.HistoryLen()

	assert.False(t, s.Update(id, MeasurementPatch{
		Geometry: measure.LinearGeometry{Points: []geom.Point{{}}},
	}))
	assert.False(t, s.Update(id, MeasurementPatch{
		Geometry: measure.AreaGeometry{Points: []geom.Point{{}, {X: 1}, {Z: 1}}},
	}))
	assert.Equal(t, entries, s.HistoryLen())

	m, _ := s.Get(id)
	assert.Equal(t, 10.0, m.Result.TotalDistance)
}

func TestDeleteStripsGroupMembership(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("a", 10))
	gid := s.CreateGroup("aisles", "#ff0000")
	require.True(t, s.AddToGroup(gid, id))

	require.True(t, s.Delete(id))
	_, ok := s.Get(id)
	assert.False(t, ok)
	g, _ := s.GetGroup(gid)
	assert.Empty(t, g.Members)

	assert.False(t, s.Delete(id))
}

func TestDuplicate(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("Aisle", 10))
	copyID, ok := s.Duplicate(id)
	require.True(t, ok)
	require.NotEqual(t, id, copyID)

	c, _ := s.Get(copyID)
	assert.Equal(t, "Aisle (Copy)", c.Name)
	assert.Equal(t, 10.0, c.Result.TotalDistance)

	_, ok = s.Duplicate("missing")
	assert.False(t, ok)
}

func TestGroupLifecycle(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	a := s.Add(linearMeasurement("a", 1))
	b := s.Add(linearMeasurement("b", 2))
	gid := s.CreateGroup("racks", "#00ff00")

	require.True(t, s.AddToGroup(gid, a))
	require.True(t, s.AddToGroup(gid, b))
	// Idempotent re-add records no history.
	entries := s.HistoryLen()
	require.True(t, s.AddToGroup(gid, a))
	assert.Equal(t, entries, s.HistoryLen())

	g, _ := s.GetGroup(gid)
	assert.Equal(t, []string{a, b}, g.Members)
	ma, _ := s.Get(a)
	assert.Equal(t, gid, ma.GroupID)

	require.True(t, s.RemoveFromGroup(gid, a))
	require.True(t, s.RemoveFromGroup(gid, a)) // idempotent
	ma, _ = s.Get(a)
	assert.Empty(t, ma.GroupID)

	require.True(t, s.DeleteGroup(gid))
	mb, _ := s.Get(b)
	assert.Empty(t, mb.GroupID)
	_, ok := s.Get(b)
	assert.True(t, ok, "deleting a group must not delete members")

	assert.False(t, s.AddToGroup(gid, a))
}

func TestUndoRedoRoundTrip(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	const n = 5
	for i := 0; i < n; i++ {
		s.Add(linearMeasurement("m", float64(i+1)))
	}
	want := s.List()

	for i := 0; i < n; i++ {
		require.True(t, s.Undo())
	}
	assert.Zero(t, s.Len(), "n undos after n adds restore the empty store")
	assert.False(t, s.Undo())

	for i := 0; i < n; i++ {
		require.True(t, s.Redo())
	}
	assert.False(t, s.Redo())
	if diff := cmp.Diff(want, s.List()); diff != "" {
		t.Errorf("redo did not restore original order (-want +got):\n%s", diff)
	}
}

func TestUndoThenMutateDiscardsRedoTail(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Add(linearMeasurement("a", 1))
	s.Add(linearMeasurement("b", 2))
	require.True(t, s.Undo())

	s.Add(linearMeasurement("c", 3))
	assert.False(t, s.Redo())
	names := []string{}
	for _, m := range s.List() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestHistoryEvictionAtBound(t *testing.T) {
	t.Parallel()

	const max = 4
	s := New(Options{MaxHistory: max})
	for i := 0; i < max+1; i++ {
		s.Add(linearMeasurement("m", float64(i+1)))
	}

	assert.Equal(t, max, s.HistoryLen())
	assert.True(t, s.CanUndo())

	// Walk back to the boundary; the index never goes negative and the
	// store still holds the measurements the evicted snapshots covered.
	steps := 0
	for s.Undo() {
		steps++
	}
	assert.Equal(t, max-1, steps)
	assert.Equal(t, (max+1)-(max-1), s.Len())
}

func TestUndoRestoresDeepCopies(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("a", 10))
	name := "renamed"
	require.True(t, s.Update(id, MeasurementPatch{Name: &name}))

	require.True(t, s.Undo())
	m, _ := s.Get(id)
	assert.Equal(t, "a", m.Name)

	require.True(t, s.Redo())
	m, _ = s.Get(id)
	assert.Equal(t, "renamed", m.Name)
}

func TestBulkOpsSnapshotIndividually(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	a := s.Add(linearMeasurement("a", 1))
	b := s.Add(linearMeasurement("b", 2))

	ids := s.SelectAll()
	assert.Equal(t, []string{a, b}, ids)

	assert.Equal(t, 2, s.SetVisibleSelected(ids, false))
	for _, m := range s.List() {
		assert.False(t, m.Visible)
	}

	// One undo reverts exactly one item of the bulk.
	require.True(t, s.Undo())
	mb, _ := s.Get(b)
	assert.True(t, mb.Visible)
	ma, _ := s.Get(a)
	assert.False(t, ma.Visible)

	assert.Equal(t, 2, s.DeleteSelected(append(ids, "missing")))
	assert.Zero(t, s.Len())
}

func TestAggregates(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	s.Add(linearMeasurement("a", 10))
	s.Add(&measure.Measurement{
		Kind:     measure.Path,
		Geometry: measure.PathGeometry{Waypoints: []geom.Point{{}, {X: 5}}},
	})
	s.Add(&measure.Measurement{
		Kind: measure.Area,
		Geometry: measure.AreaGeometry{Points: []geom.Point{
			{}, {X: 10}, {X: 10, Z: 10}, {Z: 10},
		}},
	})
	s.Add(&measure.Measurement{
		Kind:     measure.Volume,
		Geometry: measure.VolumeGeometry{Max: geom.Point{X: 2, Y: 3, Z: 4}},
	})
	s.Add(&measure.Measurement{
		Kind: measure.Angular,
		Geometry: measure.AngularGeometry{
			Start: geom.Point{X: 1}, End: geom.Point{Z: 1},
		},
	})

	agg := s.Aggregates()
	assert.Equal(t, 15.0, agg.TotalDistance)
	assert.Equal(t, 100.0, agg.TotalArea)
	assert.Equal(t, 24.0, agg.TotalVolume)
	assert.Equal(t, 5, agg.Count)
}

func TestZeroPrecisionIsRepresentable(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("whole", 10))
	m, _ := s.Get(id)
	assert.Equal(t, 0, m.Precision, "an explicit zero precision is kept")

	inherit := linearMeasurement("inherited", 5)
	inherit.Precision = -1
	id2 := s.Add(inherit)
	m2, _ := s.Get(id2)
	assert.Equal(t, 2, m2.Precision, "a negative precision inherits the default")

	zero := 0
	require.True(t, s.Update(id2, MeasurementPatch{Precision: &zero}))
	m2, _ = s.Get(id2)
	assert.Equal(t, 0, m2.Precision)

	z := New(Options{DefaultPrecision: &zero})
	assert.Equal(t, 0, z.Settings().Precision)
}

func TestSettingsNotInHistory(t *testing.T) {
	t.Parallel()

	three := 3
	s := New(Options{DefaultUnit: "meters", DefaultPrecision: &three})
	assert.Equal(t, "meters", s.Settings().Unit)

	entries := s.HistoryLen()
	s.SetSettings(Settings{Unit: "feet", Precision: 2, SnapTolerance: 1})
	assert.Equal(t, entries, s.HistoryLen())
	assert.Equal(t, "feet", s.Settings().Unit)
}
