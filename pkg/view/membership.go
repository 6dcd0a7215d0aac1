package view

import (
	"slices"

	"github.com/archview/archview/pkg/model"
)

// ElementView is a membership record for one element in a view.
type ElementView struct {
	// Element is the referenced model element.
	Element model.Element
	// Explicit reports whether the element was added by a caller rather
	// than discovered during dependency expansion.
	Explicit bool
}

// RelationshipView is a membership record for one relationship in a view.
type RelationshipView struct {
	// Relationship is the referenced model relationship.
	Relationship *model.Relationship
}

// staticView is the shared membership machinery under ComponentView: an
// insertion-ordered element set with derived relationship membership.
type staticView struct {
	model      *model.Model
	elements   []ElementView
	present    map[string]struct{} // member element IDs
	suppressed map[string]struct{} // explicitly removed relationship IDs
}

func newStaticView(m *model.Model) staticView {
	return staticView{
		model:      m,
		present:    make(map[string]struct{}),
		suppressed: make(map[string]struct{}),
	}
}

// addElement inserts the element, or no-ops if it is nil or already a
// member. Calling it twice with the same element leaves a single record.
func (v *staticView) addElement(e model.Element, explicit bool) {
	if e == nil {
		return
	}
	if _, ok := v.present[e.ID()]; ok {
		return
	}
	v.present[e.ID()] = struct{}{}
	v.elements = append(v.elements, ElementView{Element: e, Explicit: explicit})
}

// removeElement removes the element's membership record. Relationships that
// no longer have both endpoints inside disappear from Relationships()
// without further bookkeeping. Suppressions of relationships touching the
// element are cleared: they recorded a removal made while both endpoints
// were shown, and are stale once an endpoint is gone.
func (v *staticView) removeElement(e model.Element) {
	if e == nil {
		return
	}
	if _, ok := v.present[e.ID()]; !ok {
		return
	}
	delete(v.present, e.ID())
	v.elements = slices.DeleteFunc(v.elements, func(ev ElementView) bool {
		return ev.Element.ID() == e.ID()
	})
	for _, r := range v.model.Relationships() {
		if _, gone := v.suppressed[r.ID()]; !gone {
			continue
		}
		if r.Source().ID() == e.ID() || r.Destination().ID() == e.ID() {
			delete(v.suppressed, r.ID())
		}
	}
}

// removeRelationship suppresses a relationship that would otherwise be
// derived from element membership. Suppression is keyed by relationship ID
// and lasts until an endpoint leaves the view.
func (v *staticView) removeRelationship(r *model.Relationship) {
	if r == nil {
		return
	}
	v.suppressed[r.ID()] = struct{}{}
}

// Elements returns the membership records in insertion order.
// The returned slice is a copy and safe to hold across mutations.
func (v *staticView) Elements() []ElementView {
	return slices.Clone(v.elements)
}

// Relationships returns the view's relationships: every model relationship
// whose both endpoints are member elements, minus explicitly removed ones,
// in the model's creation order. The slice is computed per call and safe to
// hold across mutations.
func (v *staticView) Relationships() []RelationshipView {
	var out []RelationshipView
	for _, r := range v.model.Relationships() {
		if _, gone := v.suppressed[r.ID()]; gone {
			continue
		}
		if _, ok := v.present[r.Source().ID()]; !ok {
			continue
		}
		if _, ok := v.present[r.Destination().ID()]; !ok {
			continue
		}
		out = append(out, RelationshipView{Relationship: r})
	}
	return out
}

// Model returns the model this view reads from.
func (v *staticView) Model() *model.Model { return v.model }
