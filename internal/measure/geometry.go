package measure

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldline-data/measurekit/internal/geom"
)

// Geometry is the sealed union of per-kind measurement geometry. The
// unexported method keeps the set closed to this package.
type Geometry interface {
	geometryKind() Kind
}

// LinearGeometry is an ordered run of two or more points measured as a chain
// dimension in plan view.
type LinearGeometry struct {
	Points []geom.Point `json:"points"`
}

// AngularGeometry is an angle at Vertex between the arms toward Start and
// End.
type AngularGeometry struct {
	Start  geom.Point `json:"start"`
	Vertex geom.Point `json:"vertex"`
	End    geom.Point `json:"end"`
}

// AreaGeometry is an ordered planar boundary of three or more points.
type AreaGeometry struct {
	Points []geom.Point `json:"points"`
}

// VolumeGeometry is an axis-aligned box.
type VolumeGeometry struct {
	Min geom.Point `json:"min"`
	Max geom.Point `json:"max"`
}

// RadiusGeometry is either a center plus a point on the edge, or three
// points on the arc (start/vertex/end) from which the circumscribed circle
// is fitted. Points takes precedence when it holds exactly three entries.
type RadiusGeometry struct {
	Center geom.Point   `json:"center"`
	Edge   geom.Point   `json:"edge"`
	Points []geom.Point `json:"points,omitempty"`
}

// DiameterGeometry mirrors RadiusGeometry; the derived value is the full
// diameter instead of the radius.
type DiameterGeometry struct {
	Center geom.Point   `json:"center"`
	Edge   geom.Point   `json:"edge"`
	Points []geom.Point `json:"points,omitempty"`
}

// PathGeometry is an ordered run of waypoints reporting per-segment distance
// and direction.
type PathGeometry struct {
	Waypoints []geom.Point `json:"waypoints"`
}

// ClearanceGeometry references two external scene objects by id and carries
// the sampled surface points used for the nearest-pair search. Threshold,
// when set, is the minimum compliant clearance in feet.
type ClearanceGeometry struct {
	ObjectA   string       `json:"object_a"`
	ObjectB   string       `json:"object_b"`
	PointsA   []geom.Point `json:"points_a"`
	PointsB   []geom.Point `json:"points_b"`
	Threshold *float64     `json:"threshold,omitempty"`
}

func (LinearGeometry) geometryKind() Kind    { return Linear }
func (AngularGeometry) geometryKind() Kind   { return Angular }
func (AreaGeometry) geometryKind() Kind      { return Area }
func (VolumeGeometry) geometryKind() Kind    { return Volume }
func (RadiusGeometry) geometryKind() Kind    { return Radius }
func (DiameterGeometry) geometryKind() Kind  { return Diameter }
func (PathGeometry) geometryKind() Kind      { return Path }
func (ClearanceGeometry) geometryKind() Kind { return Clearance }

// KindOf returns the kind a geometry variant belongs to.
func KindOf(g Geometry) Kind {
	return g.geometryKind()
}

// CloneGeometry returns a deep copy of a geometry variant.
func CloneGeometry(g Geometry) Geometry {
	switch v := g.(type) {
	case LinearGeometry:
		v.Points = append([]geom.Point(nil), v.Points...)
		return v
	case AngularGeometry:
		return v
	case AreaGeometry:
		v.Points = append([]geom.Point(nil), v.Points...)
		return v
	case VolumeGeometry:
		return v
	case RadiusGeometry:
		v.Points = append([]geom.Point(nil), v.Points...)
		return v
	case DiameterGeometry:
		v.Points = append([]geom.Point(nil), v.Points...)
		return v
	case PathGeometry:
		v.Waypoints = append([]geom.Point(nil), v.Waypoints...)
		return v
	case ClearanceGeometry:
		v.PointsA = append([]geom.Point(nil), v.PointsA...)
		v.PointsB = append([]geom.Point(nil), v.PointsB...)
		if v.Threshold != nil {
			th := *v.Threshold
			v.Threshold = &th
		}
		return v
	default:
		return g
	}
}

// DecodeGeometry decodes a raw geometry JSON payload for the given kind.
// Callers that receive kind and geometry as separate fields (patch bodies)
// use this; whole measurements decode through Measurement.UnmarshalJSON.
func DecodeGeometry(kind Kind, raw []byte) (Geometry, error) {
	return decodeGeometry(kind, raw)
}

// decodeGeometry decodes the raw geometry JSON for the given kind. The
// switch enumerates every kind; an unknown kind cannot reach here because
// Kind.UnmarshalText rejects it first.
func decodeGeometry(kind Kind, raw json.RawMessage) (Geometry, error) {
	var (
		g   Geometry
		err error
	)
	switch kind {
	case Linear:
		var v LinearGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	case Angular:
		var v AngularGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	case Area:
		var v AreaGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	case Volume:
		var v VolumeGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	case Radius:
		var v RadiusGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	case Diameter:
		var v DiameterGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	case Path:
		var v PathGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	case Clearance:
		var v ClearanceGeometry
		err = json.Unmarshal(raw, &v)
		g = v
	default:
		return nil, fmt.Errorf("unknown measurement kind %d", int(kind))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s geometry: %w", kind, err)
	}
	return g, nil
}

// UnmarshalJSON decodes a measurement, dispatching the geometry payload on
// the kind tag. Timestamps are ISO-8601 strings on the wire.
func (m *Measurement) UnmarshalJSON(data []byte) error {
	var w struct {
		ID        string          `json:"id"`
		Name      string          `json:"name"`
		Kind      Kind            `json:"kind"`
		CreatedAt time.Time       `json:"created_at"`
		UpdatedAt time.Time       `json:"updated_at"`
		Visible   bool            `json:"visible"`
		Locked    bool            `json:"locked"`
		GroupID   string          `json:"group_id"`
		Unit      string          `json:"unit"`
		Precision int             `json:"precision"`
		Style     Style           `json:"style"`
		Geometry  json.RawMessage `json:"geometry"`
		Result    Result          `json:"result"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	g, err := decodeGeometry(w.Kind, w.Geometry)
	if err != nil {
		return err
	}
	m.ID = w.ID
	m.Name = w.Name
	m.Kind = w.Kind
	m.CreatedAt = w.CreatedAt
	m.UpdatedAt = w.UpdatedAt
	m.Visible = w.Visible
	m.Locked = w.Locked
	m.GroupID = w.GroupID
	m.Unit = w.Unit
	m.Precision = w.Precision
	m.Style = w.Style
	m.Geometry = g
	m.Result = w.Result
	return nil
}

// Clone returns a deep copy of the measurement.
func (m *Measurement) Clone() *Measurement {
	out := *m
	out.Geometry = CloneGeometry(m.Geometry)
	out.Result = m.Result.clone()
	return &out
}
