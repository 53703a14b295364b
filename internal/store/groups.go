package store

import (
	"sort"

	"github.com/google/uuid"

	"github.com/fieldline-data/measurekit/internal/measure"
)

// CreateGroup adds an empty visible group and returns its id.
func (s *Store) CreateGroup(name, color string) string {
	g := &measure.Group{
		ID:      uuid.New().String(),
		Name:    name,
		Color:   color,
		Visible: true,
	}
	s.groups[g.ID] = g
	s.record("create group")
	return g.ID
}

// GetGroup returns a copy of the group, or false for an unknown id.
func (s *Store) GetGroup(id string) (*measure.Group, bool) {
	g, ok := s.groups[id]
	if !ok {
		return nil, false
	}
	return g.Clone(), true
}

// ListGroups returns copies of all groups ordered by name, then id.
func (s *Store) ListGroups() []*measure.Group {
	out := make([]*measure.Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// GroupPatch is a partial group update; nil fields are left unchanged.
type GroupPatch struct {
	Name    *string `json:"name,omitempty"`
	Color   *string `json:"color,omitempty"`
	Visible *bool   `json:"visible,omitempty"`
	Locked  *bool   `json:"locked,omitempty"`
}

// UpdateGroup merges the patch and snapshots. Unknown ids are a silent
// no-op returning false.
func (s *Store) UpdateGroup(id string, patch GroupPatch) bool {
	g, ok := s.groups[id]
	if !ok {
		return false
	}
	if patch.Name != nil {
		g.Name = *patch.Name
	}
	if patch.Color != nil {
		g.Color = *patch.Color
	}
	if patch.Visible != nil {
		g.Visible = *patch.Visible
	}
	if patch.Locked != nil {
		g.Locked = *patch.Locked
	}
	s.record("update group")
	return true
}

// DeleteGroup removes the group and clears the group reference on its
// members. The member measurements themselves survive.
func (s *Store) DeleteGroup(id string) bool {
	g, ok := s.groups[id]
	if !ok {
		return false
	}
	for _, mid := range g.Members {
		if m, ok := s.measurements[mid]; ok && m.GroupID == id {
			m.GroupID = ""
		}
	}
	delete(s.groups, id)
	s.record("delete group")
	return true
}

// AddToGroup appends the measurement to the group's member list and sets
// its group reference. Idempotent: adding an existing member changes
// nothing and records no history. Unknown group or measurement ids return
// false.
func (s *Store) AddToGroup(groupID, measurementID string) bool {
	g, ok := s.groups[groupID]
	if !ok {
		return false
	}
	m, ok := s.measurements[measurementID]
	if !ok {
		return false
	}
	for _, mid := range g.Members {
		if mid == measurementID {
			return true
		}
	}
	g.Members = append(g.Members, measurementID)
	m.GroupID = groupID
	s.record("add to group")
	return true
}

// RemoveFromGroup strips the measurement from the group. Idempotent:
// removing a non-member changes nothing and records no history.
func (s *Store) RemoveFromGroup(groupID, measurementID string) bool {
	g, ok := s.groups[groupID]
	if !ok {
		return false
	}
	member := false
	for _, mid := range g.Members {
		if mid == measurementID {
			member = true
			break
		}
	}
	if !member {
		return true
	}
	g.Members = removeString(g.Members, measurementID)
	if m, ok := s.measurements[measurementID]; ok && m.GroupID == groupID {
		m.GroupID = ""
	}
	s.record("remove from group")
	return true
}
