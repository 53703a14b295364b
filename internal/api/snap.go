package api

import (
	"net/http"
	"strconv"

	"github.com/fieldline-data/measurekit/internal/geom"
	"github.com/fieldline-data/measurekit/internal/httputil"
	"github.com/fieldline-data/measurekit/internal/snap"
)

// rebuildBody carries the scene description for an index rebuild. Grid is
// optional; when present a planar fallback grid is appended.
type rebuildBody struct {
	Providers []snap.Provider   `json:"providers"`
	Grid      *snap.GridOptions `json:"grid,omitempty"`
}

func (s *Server) rebuildSnapIndex(w http.ResponseWriter, r *http.Request) {
	var body rebuildBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	s.mu.Lock()
	s.snaps.Build(body.Providers, body.Grid)
	count := s.snaps.Len()
	s.mu.Unlock()

	httputil.WriteJSONOK(w, map[string]int{"candidates": count})
}

func (s *Server) findSnap(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pos, err := parsePoint(q.Get("x"), q.Get("y"), q.Get("z"))
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	s.mu.Lock()
	tol := s.store.Settings().SnapTolerance
	if t := q.Get("tol"); t != "" {
		v, perr := strconv.ParseFloat(t, 64)
		if perr != nil || v <= 0 {
			s.mu.Unlock()
			httputil.BadRequest(w, "invalid 'tol' parameter")
			return
		}
		tol = v
	}
	best, ok := s.snaps.FindBest(pos, tol)
	s.mu.Unlock()

	if !ok {
		httputil.NotFound(w, "no snap candidate within tolerance")
		return
	}
	httputil.WriteJSONOK(w, best)
}

func parsePoint(xs, ys, zs string) (geom.Point, error) {
	var p geom.Point
	for _, c := range []struct {
		name  string
		raw   string
		field *float64
	}{
		{"x", xs, &p.X},
		{"y", ys, &p.Y},
		{"z", zs, &p.Z},
	} {
		if c.raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(c.raw, 64)
		if err != nil {
			return geom.Point{}, &badParamError{c.name}
		}
		*c.field = v
	}
	if !p.Valid() {
		return geom.Point{}, &badParamError{"position"}
	}
	return p, nil
}

type badParamError struct{ name string }

func (e *badParamError) Error() string {
	return "invalid '" + e.name + "' parameter"
}
