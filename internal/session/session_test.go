package session

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-data/measurekit/internal/geom"
	"github.com/fieldline-data/measurekit/internal/measure"
)

type fakeCommitter struct {
	added []*measure.Measurement
}

func (f *fakeCommitter) Add(m *measure.Measurement) string {
	id := fmt.Sprintf("m-%d", len(f.added)+1)
	m.ID = id
	f.added = append(f.added, m)
	return id
}

func newTestSession() (*Session, *fakeCommitter) {
	c := &fakeCommitter{}
	return New(c, "feet", 2), c
}

func TestLinearCaptureScenario(t *testing.T) {
	t.Parallel()

	s, c := newTestSession()
	assert.Equal(t, Idle, s.State())

	s.SelectTool(measure.Linear)
	assert.Equal(t, Capturing, s.State())

	require.True(t, s.AddPoint(geom.Point{}))
	assert.Equal(t, Capturing, s.State())
	assert.Nil(t, s.Preview())

	require.True(t, s.AddPoint(geom.Point{X: 10}))
	assert.Equal(t, Ready, s.State())
	preview := s.Preview()
	require.NotNil(t, preview)
	assert.Equal(t, 10.0, preview.Result.TotalDistance)

	id, err := s.Finalize()
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, Idle, s.State())
	assert.Nil(t, s.Preview())
	_, active := s.ActiveTool()
	assert.False(t, active)

	require.Len(t, c.added, 1)
	assert.Equal(t, measure.Linear, c.added[0].Kind)
	assert.Equal(t, 10.0, c.added[0].Result.TotalDistance)
}

func TestAreaCaptureScenario(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Area)
	for _, p := range []geom.Point{
		{X: 0, Z: 0}, {X: 10, Z: 0}, {X: 10, Z: 10}, {X: 0, Z: 10},
	} {
		require.True(t, s.AddPoint(p))
	}

	preview := s.Preview()
	require.NotNil(t, preview)
	assert.Equal(t, 100.0, preview.Result.Area)
	assert.Equal(t, 40.0, preview.Result.Perimeter)
	require.NotNil(t, preview.Result.Centroid)
	assert.Equal(t, geom.Point{X: 5, Y: 0, Z: 5}, *preview.Result.Centroid)
}

func TestInvalidPointRejectedSilently(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Linear)
	require.True(t, s.AddPoint(geom.Point{}))

	assert.False(t, s.AddPoint(geom.Point{X: math.NaN()}))
	assert.False(t, s.AddPoint(geom.Point{Y: math.Inf(1)}))
	assert.Len(t, s.Points(), 1)
	assert.Equal(t, Capturing, s.State())
}

func TestAddPointWithoutTool(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	assert.False(t, s.AddPoint(geom.Point{X: 1}))
	assert.Equal(t, Idle, s.State())
}

func TestRemoveLastPointDropsBackToCapturing(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Linear)
	s.AddPoint(geom.Point{})
	s.AddPoint(geom.Point{X: 10})
	require.Equal(t, Ready, s.State())

	s.RemoveLastPoint()
	assert.Equal(t, Capturing, s.State())
	assert.Nil(t, s.Preview())

	s.RemoveLastPoint()
	s.RemoveLastPoint() // already empty, no-op
	assert.Empty(t, s.Points())
}

func TestSwitchingToolDiscardsCapture(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Linear)
	s.AddPoint(geom.Point{})
	s.AddPoint(geom.Point{X: 10})
	require.Equal(t, Ready, s.State())

	s.SelectTool(measure.Area)
	assert.Equal(t, Capturing, s.State())
	assert.Empty(t, s.Points())
	assert.Nil(t, s.Preview())
}

func TestFinalizeIllegalOutsideReady(t *testing.T) {
	t.Parallel()

	s, c := newTestSession()
	_, err := s.Finalize()
	assert.ErrorIs(t, err, ErrNotReady)

	s.SelectTool(measure.Linear)
	s.AddPoint(geom.Point{})
	_, err = s.Finalize()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.Empty(t, c.added)
}

func TestCancelReturnsToIdle(t *testing.T) {
	t.Parallel()

	s, c := newTestSession()
	s.SelectTool(measure.Path)
	s.AddPoint(geom.Point{})
	s.AddPoint(geom.Point{X: 3})

	s.Cancel()
	assert.Equal(t, Idle, s.State())
	assert.Empty(t, s.Points())
	assert.Empty(t, c.added)
}

func TestAngularCaptureClickOrder(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Angular)
	s.AddPoint(geom.Point{X: 1}) // start
	s.AddPoint(geom.Point{})     // vertex
	assert.Equal(t, Capturing, s.State())
	s.AddPoint(geom.Point{Z: 1}) // end

	require.Equal(t, Ready, s.State())
	preview := s.Preview()
	require.NotNil(t, preview)
	assert.InDelta(t, math.Pi/2, preview.Result.Radians, 1e-12)
}

func TestAngularCoincidentVertexStaysCapturing(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Angular)
	s.AddPoint(geom.Point{})
	s.AddPoint(geom.Point{}) // vertex coincides with start arm
	s.AddPoint(geom.Point{Z: 1})

	assert.Equal(t, Capturing, s.State())
	_, err := s.Finalize()
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestRadiusDualCapture(t *testing.T) {
	t.Parallel()

	t.Run("center and edge", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestSession()
		s.SelectTool(measure.Radius)
		s.AddPoint(geom.Point{})
		s.AddPoint(geom.Point{X: 5})
		require.Equal(t, Ready, s.State())
		assert.Equal(t, 5.0, s.Preview().Result.Radius)
	})

	t.Run("three arc points", func(t *testing.T) {
		t.Parallel()
		s, _ := newTestSession()
		s.SelectTool(measure.Radius)
		s.AddPoint(geom.Point{X: 1})
		s.AddPoint(geom.Point{X: -1})
		s.AddPoint(geom.Point{Z: 1})
		require.Equal(t, Ready, s.State())
		assert.InDelta(t, 1.0, s.Preview().Result.Radius, 1e-12)
	})
}

func TestVolumeCaptureFromOppositeCorners(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Volume)
	s.AddPoint(geom.Point{X: 2, Y: 3, Z: 4})
	s.AddPoint(geom.Point{})

	require.Equal(t, Ready, s.State())
	preview := s.Preview()
	assert.Equal(t, 24.0, preview.Result.Volume)
	g := preview.Geometry.(measure.VolumeGeometry)
	assert.Equal(t, geom.Point{}, g.Min)
	assert.Equal(t, geom.Point{X: 2, Y: 3, Z: 4}, g.Max)
}

func TestClearanceDrivenBySelections(t *testing.T) {
	t.Parallel()

	s, c := newTestSession()
	s.SelectTool(measure.Clearance)

	// Clicks do not drive the clearance tool.
	assert.False(t, s.AddPoint(geom.Point{X: 1}))

	require.True(t, s.SelectObject("rack-1", []geom.Point{{}}))
	assert.Equal(t, Capturing, s.State())

	s.SetClearanceThreshold(6)
	require.True(t, s.SelectObject("rack-2", []geom.Point{{X: 3, Z: 4}}))
	require.Equal(t, Ready, s.State())

	preview := s.Preview()
	assert.Equal(t, 5.0, preview.Result.TotalDistance)
	require.NotNil(t, preview.Result.Compliant)
	assert.False(t, *preview.Result.Compliant)

	// A third object is refused; re-selecting replaces samples.
	assert.False(t, s.SelectObject("rack-3", nil))
	require.True(t, s.SelectObject("rack-2", []geom.Point{{X: 6, Z: 8}}))
	assert.Equal(t, 10.0, s.Preview().Result.TotalDistance)

	_, err := s.Finalize()
	require.NoError(t, err)
	require.Len(t, c.added, 1)
	assert.Equal(t, measure.Clearance, c.added[0].Kind)
}

func TestClearPointsKeepsTool(t *testing.T) {
	t.Parallel()

	s, _ := newTestSession()
	s.SelectTool(measure.Linear)
	s.AddPoint(geom.Point{})
	s.AddPoint(geom.Point{X: 1})

	s.ClearPoints()
	assert.Equal(t, Capturing, s.State())
	tool, active := s.ActiveTool()
	assert.True(t, active)
	assert.Equal(t, measure.Linear, tool)
}
