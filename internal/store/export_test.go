package store

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldline-data/measurekit/internal/geom"
	"github.com/fieldline-data/measurekit/internal/measure"
)

func populated(t *testing.T) *Store {
	t.Helper()
	s := New(Options{})
	a := s.Add(linearMeasurement("Aisle", 10))
	s.Add(&measure.Measurement{
		Kind: measure.Angular,
		Geometry: measure.AngularGeometry{
			Start: geom.Point{X: 1}, End: geom.Point{Z: 1},
		},
	})
	s.Add(&measure.Measurement{
		Kind:     measure.Radius,
		Geometry: measure.RadiusGeometry{Edge: geom.Point{X: 3}},
	})
	gid := s.CreateGroup("zone-a", "#0000ff")
	require.True(t, s.AddToGroup(gid, a))
	return s
}

func TestExportImportJSONRoundTrip(t *testing.T) {
	t.Parallel()

	s := populated(t)
	data, err := s.Export("json")
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "measurements")
	assert.Contains(t, doc, "groups")
	assert.Contains(t, doc, "exportedAt")
	assert.JSONEq(t, `"1.0"`, string(doc["version"]))

	dst := New(Options{})
	staleID := dst.Add(linearMeasurement("stale", 1))
	require.NoError(t, dst.Import(data))

	// Import replaces the existing contents outright.
	_, ok := dst.Get(staleID)
	assert.False(t, ok)

	wantM, wantG := s.State()
	gotM, gotG := dst.State()
	if diff := cmp.Diff(wantM, gotM); diff != "" {
		t.Errorf("measurements differ after round trip (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(wantG, gotG); diff != "" {
		t.Errorf("groups differ after round trip (-want +got):\n%s", diff)
	}

	// The import is one undoable entry restoring the pre-import contents.
	require.True(t, dst.Undo())
	require.Equal(t, 1, dst.Len())
	_, ok = dst.Get(staleID)
	assert.True(t, ok)
}

func TestImportRecomputesResults(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	id := s.Add(linearMeasurement("a", 10))
	data, err := s.Export("json")
	require.NoError(t, err)

	// Tamper with the stored derived value; import must not trust it.
	tampered := strings.Replace(string(data), `"total_distance": 10`, `"total_distance": 999`, 1)
	require.NotEqual(t, string(data), tampered)

	dst := New(Options{})
	require.NoError(t, dst.Import([]byte(tampered)))
	m, ok := dst.Get(id)
	require.True(t, ok)
	assert.Equal(t, 10.0, m.Result.TotalDistance)
}

func TestImportRejectsMalformed(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	assert.Error(t, s.Import([]byte("{")))
	assert.Error(t, s.Import([]byte(`{"measurements":{"x":{"id":"y","kind":"linear","geometry":{"points":[]}}}}`)))
}

func TestExportCSV(t *testing.T) {
	t.Parallel()

	s := populated(t)
	data, err := s.Export("csv")
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"ID", "Type", "Name", "Value", "Unit", "Created", "Updated"}, rows[0])

	assert.Equal(t, "linear", rows[1][1])
	assert.Equal(t, "10", rows[1][3])
	assert.Equal(t, "angular", rows[2][1])
	assert.NotEmpty(t, rows[2][3])
	// Radius carries no CSV value.
	assert.Equal(t, "radius", rows[3][1])
	assert.Empty(t, rows[3][3])
}

func TestExportUnknownFormat(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	_, err := s.Export("xml")
	assert.Error(t, err)
}

func TestLoadStateResetsHistory(t *testing.T) {
	t.Parallel()

	src := populated(t)
	ms, gs := src.State()

	dst := New(Options{})
	dst.Add(linearMeasurement("stale", 1))
	dst.LoadState(ms, gs, Settings{Unit: "meters", Precision: 1, SnapTolerance: 0.25})

	assert.Equal(t, src.Len(), dst.Len())
	assert.Equal(t, "meters", dst.Settings().Unit)
	assert.False(t, dst.CanUndo())
	assert.False(t, dst.CanRedo())
}
