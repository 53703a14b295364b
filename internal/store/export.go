package store

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/fieldline-data/measurekit/internal/measure"
)

// Aggregates are the rolled-up totals across the whole store. Distance sums
// linear and path totals; area and volume sum their own kinds only.
type Aggregates struct {
	TotalDistance float64 `json:"total_distance"`
	TotalArea     float64 `json:"total_area"`
	TotalVolume   float64 `json:"total_volume"`
	Count         int     `json:"count"`
}

// Aggregates computes the current totals.
func (s *Store) Aggregates() Aggregates {
	var agg Aggregates
	for _, m := range s.measurements {
		agg.Count++
		switch m.Kind {
		case measure.Linear, measure.Path:
			agg.TotalDistance += m.Result.TotalDistance
		case measure.Area:
			agg.TotalArea += m.Result.Area
		case measure.Volume:
			agg.TotalVolume += m.Result.Volume
		}
	}
	return agg
}

// exportDoc is the JSON interchange envelope. Timestamps ride as ISO-8601
// strings; version guards future schema changes.
type exportDoc struct {
	Measurements map[string]*measure.Measurement `json:"measurements"`
	Groups       map[string]*measure.Group       `json:"groups"`
	ExportedAt   time.Time                       `json:"exportedAt"`
	Version      string                          `json:"version"`
}

const exportVersion = "1.0"

// Export serializes the store. Format is "json" or "csv".
func (s *Store) Export(format string) ([]byte, error) {
	switch format {
	case "json":
		return s.exportJSON()
	case "csv":
		return s.exportCSV()
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

func (s *Store) exportJSON() ([]byte, error) {
	doc := exportDoc{
		Measurements: make(map[string]*measure.Measurement, len(s.measurements)),
		Groups:       make(map[string]*measure.Group, len(s.groups)),
		ExportedAt:   time.Now().UTC(),
		Version:      exportVersion,
	}
	for id, m := range s.measurements {
		doc.Measurements[id] = m
	}
	for id, g := range s.groups {
		doc.Groups[id] = g
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// exportCSV writes one row per measurement in creation order. Value maps
// only linear (total distance), angular (radians), area and volume; the
// remaining kinds export an empty value.
func (s *Store) exportCSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Type", "Name", "Value", "Unit", "Created", "Updated"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, m := range s.List() {
		row := []string{
			m.ID,
			m.Kind.String(),
			m.Name,
			csvValue(m),
			m.Unit,
			m.CreatedAt.Format(time.RFC3339),
			m.UpdatedAt.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func csvValue(m *measure.Measurement) string {
	switch m.Kind {
	case measure.Linear:
		return formatFloat(m.Result.TotalDistance)
	case measure.Angular:
		return formatFloat(m.Result.Radians)
	case measure.Area:
		return formatFloat(m.Result.Area)
	case measure.Volume:
		return formatFloat(m.Result.Volume)
	default:
		return ""
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Import replaces measurements and groups from a JSON export. Derived
// results are recomputed from geometry rather than trusted from the file.
// The replacement is one undoable history entry.
func (s *Store) Import(data []byte) error {
	var doc exportDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse import: %w", err)
	}
	ms := make(map[string]*measure.Measurement, len(doc.Measurements))
	for id, m := range doc.Measurements {
		if m == nil || m.ID == "" || m.ID != id {
			return fmt.Errorf("import: measurement key %q does not match id", id)
		}
		c := m.Clone()
		if c.Geometry != nil {
			c.Result = measure.Compute(c.Geometry)
		}
		ms[id] = c
	}
	gs := make(map[string]*measure.Group, len(doc.Groups))
	for id, g := range doc.Groups {
		if g == nil || g.ID == "" || g.ID != id {
			return fmt.Errorf("import: group key %q does not match id", id)
		}
		gs[id] = g.Clone()
	}
	s.measurements = ms
	s.groups = gs
	s.record("import")
	return nil
}

// State returns deep copies of the measurement and group maps for the
// persistence layer. History is deliberately excluded from durable state.
func (s *Store) State() (map[string]*measure.Measurement, map[string]*measure.Group) {
	ms := make(map[string]*measure.Measurement, len(s.measurements))
	for id, m := range s.measurements {
		ms[id] = m.Clone()
	}
	gs := make(map[string]*measure.Group, len(s.groups))
	for id, g := range s.groups {
		gs[id] = g.Clone()
	}
	return ms, gs
}

// LoadState replaces the store contents from persisted state and resets the
// undo history to this state as its new baseline.
func (s *Store) LoadState(ms map[string]*measure.Measurement, gs map[string]*measure.Group, set Settings) {
	s.measurements = make(map[string]*measure.Measurement, len(ms))
	for id, m := range ms {
		s.measurements[id] = m.Clone()
	}
	s.groups = make(map[string]*measure.Group, len(gs))
	for id, g := range gs {
		s.groups[id] = g.Clone()
	}
	if set.Unit != "" {
		s.settings = set
	}
	s.history = []snapshot{s.takeSnapshot("load")}
	s.historyIndex = 0
}
