package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fieldline-data/measurekit/internal/measure"
	"github.com/fieldline-data/measurekit/internal/store"
)

// PersistStore reads and writes the durable subset to a sqlite database.
type PersistStore struct {
	db *sql.DB
}

// NewPersistStore creates a PersistStore backed by the given database.
func NewPersistStore(db *sql.DB) *PersistStore {
	return &PersistStore{db: db}
}

// Save replaces the persisted state with the given maps and settings in one
// transaction. The database always holds exactly the latest committed state.
func (p *PersistStore) Save(ms map[string]*measure.Measurement, gs map[string]*measure.Group, set store.Settings) error {
	tx, err := p.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM measurements`); err != nil {
		return fmt.Errorf("clear measurements: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM measurement_groups`); err != nil {
		return fmt.Errorf("clear groups: %w", err)
	}

	for _, m := range ms {
		styleJSON, err := json.Marshal(m.Style)
		if err != nil {
			return fmt.Errorf("marshal style for %s: %w", m.ID, err)
		}
		geomJSON, err := json.Marshal(m.Geometry)
		if err != nil {
			return fmt.Errorf("marshal geometry for %s: %w", m.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO measurements (
				id, kind, name, created_at_ns, updated_at_ns,
				visible, locked, group_id, unit, precision,
				style_json, geometry_json
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			m.ID,
			m.Kind.String(),
			m.Name,
			m.CreatedAt.UnixNano(),
			m.UpdatedAt.UnixNano(),
			boolInt(m.Visible),
			boolInt(m.Locked),
			m.GroupID,
			m.Unit,
			m.Precision,
			string(styleJSON),
			string(geomJSON),
		)
		if err != nil {
			return fmt.Errorf("insert measurement %s: %w", m.ID, err)
		}
	}

	for _, g := range gs {
		membersJSON, err := json.Marshal(g.Members)
		if err != nil {
			return fmt.Errorf("marshal members for %s: %w", g.ID, err)
		}
		_, err = tx.Exec(`
			INSERT INTO measurement_groups (id, name, color, visible, locked, members_json)
			VALUES (?, ?, ?, ?, ?, ?)
		`, g.ID, g.Name, g.Color, boolInt(g.Visible), boolInt(g.Locked), string(membersJSON))
		if err != nil {
			return fmt.Errorf("insert group %s: %w", g.ID, err)
		}
	}

	_, err = tx.Exec(`
		INSERT INTO settings (id, unit, precision, snap_tolerance) VALUES (1, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET unit = excluded.unit,
			precision = excluded.precision, snap_tolerance = excluded.snap_tolerance
	`, set.Unit, set.Precision, set.SnapTolerance)
	if err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Load reads the persisted state. Derived results are recomputed from
// geometry, not stored. An empty database yields empty maps and zero
// settings.
func (p *PersistStore) Load() (map[string]*measure.Measurement, map[string]*measure.Group, store.Settings, error) {
	ms, err := p.loadMeasurements()
	if err != nil {
		return nil, nil, store.Settings{}, err
	}
	gs, err := p.loadGroups()
	if err != nil {
		return nil, nil, store.Settings{}, err
	}
	set, err := p.loadSettings()
	if err != nil {
		return nil, nil, store.Settings{}, err
	}
	return ms, gs, set, nil
}

func (p *PersistStore) loadMeasurements() (map[string]*measure.Measurement, error) {
	rows, err := p.db.Query(`
		SELECT id, kind, name, created_at_ns, updated_at_ns,
		       visible, locked, group_id, unit, precision,
		       style_json, geometry_json
		FROM measurements
	`)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*measure.Measurement)
	for rows.Next() {
		var (
			m                    measure.Measurement
			kindName             string
			createdNs, updatedNs int64
			visible, locked      int
			styleJSON, geomJSON  string
		)
		if err := rows.Scan(
			&m.ID, &kindName, &m.Name, &createdNs, &updatedNs,
			&visible, &locked, &m.GroupID, &m.Unit, &m.Precision,
			&styleJSON, &geomJSON,
		); err != nil {
			return nil, fmt.Errorf("scan measurement: %w", err)
		}
		if err := m.Kind.UnmarshalText([]byte(kindName)); err != nil {
			return nil, fmt.Errorf("measurement %s: %w", m.ID, err)
		}
		if err := json.Unmarshal([]byte(styleJSON), &m.Style); err != nil {
			return nil, fmt.Errorf("measurement %s style: %w", m.ID, err)
		}
		g, err := measure.DecodeGeometry(m.Kind, []byte(geomJSON))
		if err != nil {
			return nil, fmt.Errorf("measurement %s: %w", m.ID, err)
		}
		m.Geometry = g
		m.Result = measure.Compute(g)
		m.CreatedAt = time.Unix(0, createdNs).UTC()
		m.UpdatedAt = time.Unix(0, updatedNs).UTC()
		m.Visible = visible != 0
		m.Locked = locked != 0
		out[m.ID] = &m
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate measurements: %w", err)
	}
	return out, nil
}

func (p *PersistStore) loadGroups() (map[string]*measure.Group, error) {
	rows, err := p.db.Query(`
		SELECT id, name, color, visible, locked, members_json
		FROM measurement_groups
	`)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*measure.Group)
	for rows.Next() {
		var (
			g               measure.Group
			visible, locked int
			membersJSON     string
		)
		if err := rows.Scan(&g.ID, &g.Name, &g.Color, &visible, &locked, &membersJSON); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		if err := json.Unmarshal([]byte(membersJSON), &g.Members); err != nil {
			return nil, fmt.Errorf("group %s members: %w", g.ID, err)
		}
		g.Visible = visible != 0
		g.Locked = locked != 0
		out[g.ID] = &g
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate groups: %w", err)
	}
	return out, nil
}

func (p *PersistStore) loadSettings() (store.Settings, error) {
	var set store.Settings
	err := p.db.QueryRow(`
		SELECT unit, precision, snap_tolerance FROM settings WHERE id = 1
	`).Scan(&set.Unit, &set.Precision, &set.SnapTolerance)
	if err == sql.ErrNoRows {
		return store.Settings{}, nil
	}
	if err != nil {
		return store.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return set, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
