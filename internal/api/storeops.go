package api

import (
	"io"
	"net/http"

	"github.com/fieldline-data/measurekit/internal/httputil"
	"github.com/fieldline-data/measurekit/internal/report"
	"github.com/fieldline-data/measurekit/internal/store"
	"github.com/fieldline-data/measurekit/internal/units"
)

// historyStatus reports the outcome of an undo/redo plus the remaining
// travel in both directions.
type historyStatus struct {
	OK      bool `json:"ok"`
	CanUndo bool `json:"can_undo"`
	CanRedo bool `json:"can_redo"`
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := historyStatus{OK: s.store.Undo()}
	status.CanUndo = s.store.CanUndo()
	status.CanRedo = s.store.CanRedo()
	s.mu.Unlock()
	httputil.WriteJSONOK(w, status)
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	status := historyStatus{OK: s.store.Redo()}
	status.CanUndo = s.store.CanUndo()
	status.CanRedo = s.store.CanRedo()
	s.mu.Unlock()
	httputil.WriteJSONOK(w, status)
}

func (s *Server) aggregates(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	agg := s.store.Aggregates()
	s.mu.Unlock()
	httputil.WriteJSONOK(w, agg)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	s.mu.Lock()
	data, err := s.store.Export(format)
	s.mu.Unlock()
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	switch format {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="measurements.csv"`)
	default:
		w.Header().Set("Content-Type", "application/json")
	}
	w.Write(data)
}

func (s *Server) importState(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, 8<<20))
	if err != nil {
		httputil.BadRequest(w, "read import body: "+err.Error())
		return
	}

	s.mu.Lock()
	err = s.store.Import(data)
	count := s.store.Len()
	s.mu.Unlock()
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.WriteJSONOK(w, map[string]int{"imported": count})
}

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	set := s.store.Settings()
	s.mu.Unlock()
	httputil.WriteJSONOK(w, set)
}

func (s *Server) putSettings(w http.ResponseWriter, r *http.Request) {
	var set store.Settings
	if err := httputil.DecodeJSON(r, &set); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if !units.IsValidLengthUnit(set.Unit) {
		httputil.BadRequest(w, "unknown unit "+set.Unit)
		return
	}
	if set.Precision < 0 || set.Precision > 10 {
		httputil.BadRequest(w, "precision out of range")
		return
	}
	if set.SnapTolerance <= 0 {
		httputil.BadRequest(w, "snap tolerance must be positive")
		return
	}

	s.mu.Lock()
	s.store.SetSettings(set)
	s.mu.Unlock()
	httputil.WriteJSONOK(w, set)
}

func (s *Server) reportPage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	html, err := report.Render(s.store)
	s.mu.Unlock()
	if err != nil {
		httputil.InternalServerError(w, err.Error())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}
