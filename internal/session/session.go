// Package session implements the point-capture state machine. A session
// owns the in-flight state of one measurement being taken: the active tool,
// the captured points and a live preview recomputed on every change. Nothing
// here is persisted; committed measurements leave through the store at
// finalize time and everything else is discarded on cancel.
package session

import (
	"errors"
	"fmt"

	"github.com/fieldline-data/measurekit/internal/geom"
	"github.com/fieldline-data/measurekit/internal/measure"
)

// State of the capture machine.
type State string

const (
	// Idle means no tool is active.
	Idle State = "idle"
	// Capturing means a tool is active but the capture is not yet complete.
	Capturing State = "capturing"
	// Ready means the capture satisfies the tool and can be finalized.
	Ready State = "ready"
)

// ErrNotReady is returned by Finalize from any state but Ready.
var ErrNotReady = errors.New("session: capture not ready to finalize")

// Committer receives finalized measurements. The store satisfies this.
type Committer interface {
	Add(m *measure.Measurement) string
}

// minPoints gives the click count at which each tool's capture is complete.
// Clearance is absent: it is driven by object selections, not clicks.
var minPoints = map[measure.Kind]int{
	measure.Linear:   2,
	measure.Path:     2,
	measure.Radius:   2,
	measure.Volume:   2,
	measure.Angular:  3,
	measure.Area:     3,
	measure.Diameter: 3,
}

type objectSelection struct {
	id     string
	points []geom.Point
}

// Session is a single-user capture machine. Not safe for concurrent use;
// the owner serializes calls the same way it serializes store mutations.
type Session struct {
	committer Committer
	unit      string
	precision int

	state   State
	tool    measure.Kind
	hasTool bool
	points  []geom.Point
	preview *measure.Measurement

	objects   []objectSelection
	threshold *float64
}

// New returns an idle session committing into c. Unit and precision are
// applied to every preview and finalized measurement.
func New(c Committer, unit string, precision int) *Session {
	return &Session{
		committer: c,
		unit:      unit,
		precision: precision,
		state:     Idle,
	}
}

// State reports the current machine state.
func (s *Session) State() State { return s.state }

// ActiveTool returns the active tool kind, or false when idle.
func (s *Session) ActiveTool() (measure.Kind, bool) { return s.tool, s.hasTool }

// Points returns a copy of the captured points.
func (s *Session) Points() []geom.Point {
	out := make([]geom.Point, len(s.points))
	copy(out, s.points)
	return out
}

// Preview returns the live preview measurement, or nil before the capture
// produces one. The preview has no ID or timestamps; the store assigns those
// at finalize.
func (s *Session) Preview() *measure.Measurement {
	if s.preview == nil {
		return nil
	}
	return s.preview.Clone()
}

// SelectTool begins a capture with the given tool. Selecting while a capture
// is in flight discards it, including switching to the same tool.
func (s *Session) SelectTool(kind measure.Kind) {
	s.reset()
	s.tool = kind
	s.hasTool = true
	s.state = Capturing
}

// Cancel discards the in-flight capture and returns to Idle.
func (s *Session) Cancel() {
	s.reset()
}

// AddPoint records a click. Points with NaN or infinite coordinates are
// rejected with no state change, as are clicks with no tool active. Returns
// whether the point was accepted.
func (s *Session) AddPoint(p geom.Point) bool {
	if !s.hasTool || s.tool == measure.Clearance || !p.Valid() {
		return false
	}
	s.points = append(s.points, p)
	s.refresh()
	return true
}

// RemoveLastPoint drops the most recent click. Dropping below the tool's
// minimum moves Ready back to Capturing.
func (s *Session) RemoveLastPoint() {
	if len(s.points) == 0 {
		return
	}
	s.points = s.points[:len(s.points)-1]
	s.refresh()
}

// ClearPoints drops every captured point but keeps the tool active.
func (s *Session) ClearPoints() {
	if !s.hasTool {
		return
	}
	s.points = s.points[:0]
	s.refresh()
}

// SelectObject records an object selection for the clearance tool: the
// element id plus sample points on its surface. The second distinct
// selection completes the capture. Re-selecting the same object replaces
// its samples.
func (s *Session) SelectObject(id string, samples []geom.Point) bool {
	if !s.hasTool || s.tool != measure.Clearance || id == "" {
		return false
	}
	for i := range s.objects {
		if s.objects[i].id == id {
			s.objects[i].points = clonePoints(samples)
			s.refresh()
			return true
		}
	}
	if len(s.objects) >= 2 {
		return false
	}
	s.objects = append(s.objects, objectSelection{id: id, points: clonePoints(samples)})
	s.refresh()
	return true
}

// SetClearanceThreshold arms a compliance threshold for the clearance tool.
func (s *Session) SetClearanceThreshold(feet float64) {
	s.threshold = &feet
	if s.hasTool && s.tool == measure.Clearance {
		s.refresh()
	}
}

// Finalize commits the preview through the store and resets to Idle.
// Illegal from any state but Ready.
func (s *Session) Finalize() (string, error) {
	if s.state != Ready || s.preview == nil {
		return "", fmt.Errorf("%w (state %s)", ErrNotReady, s.state)
	}
	id := s.committer.Add(s.preview.Clone())
	s.reset()
	return id, nil
}

func (s *Session) reset() {
	s.state = Idle
	s.tool = 0
	s.hasTool = false
	s.points = nil
	s.preview = nil
	s.objects = nil
}

// refresh recomputes the preview and the Capturing/Ready state after every
// mutation of the capture.
func (s *Session) refresh() {
	s.preview = nil
	s.state = Capturing

	g, ok := s.buildGeometry()
	if !ok {
		return
	}
	m := &measure.Measurement{
		Kind:      s.tool,
		Visible:   true,
		Unit:      s.unit,
		Precision: s.precision,
		Geometry:  g,
		Result:    measure.Compute(g),
	}
	s.preview = m
	if measure.Validate(g) == nil {
		s.state = Ready
	}
}

// buildGeometry assembles the tool's geometry from the capture so far.
// Returns false while there is not enough input to preview anything.
func (s *Session) buildGeometry() (measure.Geometry, bool) {
	if s.tool == measure.Clearance {
		if len(s.objects) < 2 {
			return nil, false
		}
		return measure.ClearanceGeometry{
			ObjectA:   s.objects[0].id,
			ObjectB:   s.objects[1].id,
			PointsA:   clonePoints(s.objects[0].points),
			PointsB:   clonePoints(s.objects[1].points),
			Threshold: s.threshold,
		}, true
	}

	if len(s.points) < minPoints[s.tool] {
		return nil, false
	}
	pts := clonePoints(s.points)
	switch s.tool {
	case measure.Linear:
		return measure.LinearGeometry{Points: pts}, true
	case measure.Path:
		return measure.PathGeometry{Waypoints: pts}, true
	case measure.Area:
		return measure.AreaGeometry{Points: pts}, true
	case measure.Angular:
		// Click order is start, vertex, end.
		return measure.AngularGeometry{Start: pts[0], Vertex: pts[1], End: pts[2]}, true
	case measure.Volume:
		return measure.VolumeGeometry{
			Min: pts[0].Min(pts[1]),
			Max: pts[0].Max(pts[1]),
		}, true
	case measure.Radius:
		// Two clicks are center then edge; three or more fit the circle
		// through the first three.
		if len(pts) >= 3 {
			return measure.RadiusGeometry{Points: pts[:3]}, true
		}
		return measure.RadiusGeometry{Center: pts[0], Edge: pts[1]}, true
	case measure.Diameter:
		return measure.DiameterGeometry{Points: pts[:3]}, true
	default:
		return nil, false
	}
}

func clonePoints(pts []geom.Point) []geom.Point {
	if pts == nil {
		return nil
	}
	out := make([]geom.Point, len(pts))
	copy(out, pts)
	return out
}
