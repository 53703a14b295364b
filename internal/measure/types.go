// Package measure defines the measurement domain model: the closed set of
// measurement kinds, their geometry variants, derived results, and groups.
// Derived results are never stored authoritatively; Compute recomputes them
// from geometry whenever a measurement is created or updated.
package measure

import (
	"fmt"
	"time"
)

// Kind identifies a measurement variant. The set is closed: adding a kind
// requires touching every switch that matches on it, which is the point —
// formatting, export and aggregation can never silently skip a new kind.
type Kind int

const (
	Linear Kind = iota
	Angular
	Area
	Volume
	Radius
	Diameter
	Path
	Clearance
)

var kindNames = map[Kind]string{
	Linear:    "linear",
	Angular:   "angular",
	Area:      "area",
	Volume:    "volume",
	Radius:    "radius",
	Diameter:  "diameter",
	Path:      "path",
	Clearance: "clearance",
}

var kindValues = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// String returns the wire name of the kind.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind as its wire name.
func (k Kind) MarshalText() ([]byte, error) {
	n, ok := kindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown measurement kind %d", int(k))
	}
	return []byte(n), nil
}

// UnmarshalText decodes a kind from its wire name.
func (k *Kind) UnmarshalText(text []byte) error {
	v, ok := kindValues[string(text)]
	if !ok {
		return fmt.Errorf("unknown measurement kind %q", string(text))
	}
	*k = v
	return nil
}

// Style carries display attributes for dimension rendering. The kernel does
// not interpret these; they round-trip through storage for the renderer.
type Style struct {
	Color     string  `json:"color,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
	ShowLabel bool    `json:"show_label"`
}

// Measurement is a finalized measurement. Instances are created by a capture
// session, mutated only through the store (which stamps UpdatedAt and
// snapshots history) and deleted only through the store.
type Measurement struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Visible   bool      `json:"visible"`
	Locked    bool      `json:"locked"`
	GroupID   string    `json:"group_id,omitempty"`
	Unit      string    `json:"unit"`
	Precision int       `json:"precision"`
	Style     Style     `json:"style"`
	Geometry  Geometry  `json:"geometry"`
	Result    Result    `json:"result"`
}

// Group is a named collection of measurements. Members is ordered; deleting
// a measurement strips its id from every group, deleting a group orphans its
// members without deleting them.
type Group struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color,omitempty"`
	Visible bool     `json:"visible"`
	Locked  bool     `json:"locked"`
	Members []string `json:"members"`
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	out := *g
	out.Members = append([]string(nil), g.Members...)
	return &out
}
