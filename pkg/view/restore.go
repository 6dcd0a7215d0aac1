package view

import "github.com/archview/archview/pkg/model"

// State is the persistable part of a component view: the stored identifiers
// that, together with a model, reconstruct the view's membership.
type State struct {
	ContainerID   string
	Description   string
	ElementIDs    []string // member elements in insertion order
	ExplicitIDs   []string // subset of ElementIDs added explicitly
	RemovedRelIDs []string // relationships suppressed by pruning or removal
}

// State captures the view's current membership for storage.
func (v *ComponentView) State() State {
	s := State{
		ContainerID: v.ContainerID(),
		Description: v.description,
	}
	for _, ev := range v.elements {
		s.ElementIDs = append(s.ElementIDs, ev.Element.ID())
		if ev.Explicit {
			s.ExplicitIDs = append(s.ExplicitIDs, ev.Element.ID())
		}
	}
	// Model relationship order keeps the serialized state deterministic.
	for _, r := range v.model.Relationships() {
		if _, gone := v.suppressed[r.ID()]; gone {
			s.RemovedRelIDs = append(s.RemovedRelIDs, r.ID())
		}
	}
	return s
}

// Restore reconstructs a component view from stored state against a model.
//
// Membership is restored verbatim: element IDs that no longer resolve are
// skipped, and containment filtering is not re-applied, because the state
// was produced by a view that already enforced it. When the container ID
// itself no longer resolves the view is still returned, unbound, so its
// stored identifiers remain inspectable; mutation methods require a bound
// container.
func Restore(m *model.Model, s State) (*ComponentView, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	v := &ComponentView{
		staticView:  newStaticView(m),
		containerID: s.ContainerID,
		description: s.Description,
	}
	if e, ok := m.Element(s.ContainerID); ok {
		c, isContainer := e.(*model.Container)
		if !isContainer {
			return nil, ErrUnknownContainer
		}
		v.container = c
	}

	explicit := make(map[string]struct{}, len(s.ExplicitIDs))
	for _, id := range s.ExplicitIDs {
		explicit[id] = struct{}{}
	}
	for _, id := range s.ElementIDs {
		if e, ok := m.Element(id); ok {
			_, exp := explicit[id]
			v.addElement(e, exp)
		}
	}
	for _, id := range s.RemovedRelIDs {
		v.suppressed[id] = struct{}{}
	}
	return v, nil
}
