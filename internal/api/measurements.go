package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/fieldline-data/measurekit/internal/httputil"
	"github.com/fieldline-data/measurekit/internal/measure"
	"github.com/fieldline-data/measurekit/internal/store"
)

func (s *Server) listMeasurements(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	list := s.store.List()
	s.mu.Unlock()
	httputil.WriteJSONOK(w, list)
}

// createMeasurementBody carries a new measurement. Geometry is decoded
// against the declared kind. Precision is a pointer: omitted inherits the
// store default, an explicit zero means whole numbers.
type createMeasurementBody struct {
	Name      string          `json:"name,omitempty"`
	Kind      measure.Kind    `json:"kind"`
	Unit      string          `json:"unit,omitempty"`
	Precision *int            `json:"precision,omitempty"`
	Style     measure.Style   `json:"style,omitempty"`
	GroupID   string          `json:"group_id,omitempty"`
	Geometry  json.RawMessage `json:"geometry"`
}

func (s *Server) createMeasurement(w http.ResponseWriter, r *http.Request) {
	var body createMeasurementBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if len(body.Geometry) == 0 {
		httputil.BadRequest(w, "geometry is required")
		return
	}
	g, err := measure.DecodeGeometry(body.Kind, body.Geometry)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := measure.Validate(g); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	precision := -1
	if body.Precision != nil {
		if *body.Precision < 0 || *body.Precision > 10 {
			httputil.BadRequest(w, "precision out of range")
			return
		}
		precision = *body.Precision
	}

	m := &measure.Measurement{
		Name:      body.Name,
		Kind:      body.Kind,
		Visible:   true,
		GroupID:   body.GroupID,
		Unit:      body.Unit,
		Precision: precision,
		Style:     body.Style,
		Geometry:  g,
	}

	s.mu.Lock()
	id := s.store.Add(m)
	created, _ := s.store.Get(id)
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, created)
}

func (s *Server) getMeasurement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	m, ok := s.store.Get(id)
	s.mu.Unlock()
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("measurement %s not found", id))
		return
	}
	httputil.WriteJSONOK(w, m)
}

// patchMeasurementBody extends the store patch with a raw geometry payload,
// decoded against the measurement's existing kind.
type patchMeasurementBody struct {
	store.MeasurementPatch
	Geometry json.RawMessage `json:"geometry,omitempty"`
}

func (s *Server) patchMeasurement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body patchMeasurementBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if body.Precision != nil && (*body.Precision < 0 || *body.Precision > 10) {
		httputil.BadRequest(w, "precision out of range")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.store.Get(id)
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("measurement %s not found", id))
		return
	}
	patch := body.MeasurementPatch
	if len(body.Geometry) > 0 {
		g, err := measure.DecodeGeometry(current.Kind, body.Geometry)
		if err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		if err := measure.Validate(g); err != nil {
			httputil.BadRequest(w, err.Error())
			return
		}
		patch.Geometry = g
	}
	if !s.store.Update(id, patch) {
		httputil.BadRequest(w, "patch rejected")
		return
	}
	updated, _ := s.store.Get(id)
	httputil.WriteJSONOK(w, updated)
}

func (s *Server) deleteMeasurement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	ok := s.store.Delete(id)
	s.mu.Unlock()
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("measurement %s not found", id))
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"deleted": id})
}

func (s *Server) duplicateMeasurement(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	copyID, ok := s.store.Duplicate(id)
	var copied *measure.Measurement
	if ok {
		copied, _ = s.store.Get(copyID)
	}
	s.mu.Unlock()
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("measurement %s not found", id))
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, copied)
}
