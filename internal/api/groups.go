package api

import (
	"fmt"
	"net/http"

	"github.com/fieldline-data/measurekit/internal/httputil"
	"github.com/fieldline-data/measurekit/internal/store"
)

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	groups := s.store.ListGroups()
	s.mu.Unlock()
	httputil.WriteJSONOK(w, groups)
}

type createGroupBody struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var body createGroupBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if body.Name == "" {
		httputil.BadRequest(w, "name is required")
		return
	}

	s.mu.Lock()
	id := s.store.CreateGroup(body.Name, body.Color)
	g, _ := s.store.GetGroup(id)
	s.mu.Unlock()

	httputil.WriteJSON(w, http.StatusCreated, g)
}

func (s *Server) patchGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var patch store.GroupPatch
	if err := httputil.DecodeJSON(r, &patch); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	s.mu.Lock()
	ok := s.store.UpdateGroup(id, patch)
	var g interface{}
	if ok {
		g, _ = s.store.GetGroup(id)
	}
	s.mu.Unlock()
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("group %s not found", id))
		return
	}
	httputil.WriteJSONOK(w, g)
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	ok := s.store.DeleteGroup(id)
	s.mu.Unlock()
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("group %s not found", id))
		return
	}
	httputil.WriteJSONOK(w, map[string]string{"deleted": id})
}

type groupMemberBody struct {
	MeasurementID string `json:"measurement_id"`
}

func (s *Server) addGroupMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body groupMemberBody
	if err := httputil.DecodeJSON(r, &body); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	s.mu.Lock()
	ok := s.store.AddToGroup(id, body.MeasurementID)
	var g interface{}
	if ok {
		g, _ = s.store.GetGroup(id)
	}
	s.mu.Unlock()
	if !ok {
		httputil.NotFound(w, "group or measurement not found")
		return
	}
	httputil.WriteJSONOK(w, g)
}

func (s *Server) removeGroupMember(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	mid := r.PathValue("mid")

	s.mu.Lock()
	ok := s.store.RemoveFromGroup(id, mid)
	var g interface{}
	if ok {
		g, _ = s.store.GetGroup(id)
	}
	s.mu.Unlock()
	if !ok {
		httputil.NotFound(w, fmt.Sprintf("group %s not found", id))
		return
	}
	httputil.WriteJSONOK(w, g)
}
