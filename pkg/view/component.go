package view

import (
	"errors"
	"fmt"

	"github.com/archview/archview/pkg/model"
)

var (
	// ErrNilModel is returned by [NewComponentView] when the model is nil.
	ErrNilModel = errors.New("model must not be nil")

	// ErrNilContainer is returned by [NewComponentView] when the focus
	// container is nil.
	ErrNilContainer = errors.New("focus container must not be nil")

	// ErrUnknownContainer is returned by [Restore] when the stored
	// container ID resolves to something other than a container.
	ErrUnknownContainer = errors.New("container ID does not resolve to a container")
)

// ComponentView is a view of the components inside one focus container,
// together with the people, software systems, containers, and foreign
// components they interact with.
type ComponentView struct {
	staticView
	container   *model.Container
	containerID string
	description string
}

// NewComponentView creates a view permanently bound to the given focus
// container.
func NewComponentView(m *model.Model, container *model.Container, description string) (*ComponentView, error) {
	if m == nil {
		return nil, ErrNilModel
	}
	if container == nil {
		return nil, ErrNilContainer
	}
	return &ComponentView{
		staticView:  newStaticView(m),
		container:   container,
		description: description,
	}, nil
}

// Container returns the focus container, or nil for a view restored from
// storage whose container could not be resolved.
func (v *ComponentView) Container() *model.Container { return v.container }

// ContainerID returns the focus container's ID. When the live container is
// bound it is authoritative; otherwise the identifier persisted with the
// view is returned, which lets a stored view be inspected without resolving
// the whole graph.
func (v *ComponentView) ContainerID() string {
	if v.container != nil {
		return v.container.ID()
	}
	return v.containerID
}

// Description returns the view's description.
func (v *ComponentView) Description() string { return v.description }

// Name returns the view's display name, derived from the owning software
// system and the focus container.
func (v *ComponentView) Name() string {
	sys := v.model.OwningSoftwareSystem(v.container)
	return fmt.Sprintf("%s - %s - Components", sys.Name(), v.container.Name())
}

// AddPerson adds a person to the view. People carry no containment
// constraint in a component view.
func (v *ComponentView) AddPerson(p *model.Person) { v.addPerson(p, true) }

func (v *ComponentView) addPerson(p *model.Person, explicit bool) {
	if p == nil {
		return
	}
	v.addElement(p, explicit)
}

// AddSoftwareSystem adds a software system to the view, unless it is the
// focus container's own software system. The owning system is implicit
// context, not a peer worth displaying.
func (v *ComponentView) AddSoftwareSystem(s *model.SoftwareSystem) { v.addSoftwareSystem(s, true) }

func (v *ComponentView) addSoftwareSystem(s *model.SoftwareSystem, explicit bool) {
	if s == nil {
		return
	}
	if owner := v.model.OwningSoftwareSystem(v.container); owner != nil && owner.ID() == s.ID() {
		return
	}
	v.addElement(s, explicit)
}

// AddContainer adds a container to the view, unless it is the focus
// container itself, which is always implicitly inside.
func (v *ComponentView) AddContainer(c *model.Container) { v.addContainer(c, true) }

func (v *ComponentView) addContainer(c *model.Container, explicit bool) {
	if c == nil || c.ID() == v.container.ID() {
		return
	}
	v.addElement(c, explicit)
}

// AddComponent adds a component to the view if it belongs to the focus
// container. Components of other containers are skipped silently: this is a
// filtering contract, not a validation failure.
func (v *ComponentView) AddComponent(c *model.Component) { v.addComponent(c, true) }

func (v *ComponentView) addComponent(c *model.Component, explicit bool) {
	if c == nil || c.ContainerID() != v.container.ID() {
		return
	}
	v.addElement(c, explicit)
}

// RemoveContainer removes a container from the view. Relationships that
// lose an endpoint disappear with it.
func (v *ComponentView) RemoveContainer(c *model.Container) {
	if c == nil {
		return
	}
	v.removeElement(c)
}

// RemoveComponent removes a component from the view. Relationships that
// lose an endpoint disappear with it.
func (v *ComponentView) RemoveComponent(c *model.Component) {
	if c == nil {
		return
	}
	v.removeElement(c)
}

// AddAllPeople adds every person in the model.
func (v *ComponentView) AddAllPeople() {
	for _, p := range v.model.People() {
		v.AddPerson(p)
	}
}

// AddAllSoftwareSystems adds every software system in the model, subject to
// the owning-system exclusion of [ComponentView.AddSoftwareSystem].
func (v *ComponentView) AddAllSoftwareSystems() {
	for _, s := range v.model.SoftwareSystems() {
		v.AddSoftwareSystem(s)
	}
}

// AddAllContainers adds every container of the owning software system,
// subject to the self-exclusion of [ComponentView.AddContainer].
func (v *ComponentView) AddAllContainers() {
	sys := v.model.OwningSoftwareSystem(v.container)
	if sys == nil {
		return
	}
	for _, c := range sys.Containers() {
		v.AddContainer(c)
	}
}

// AddAllComponents adds every component of the focus container.
func (v *ComponentView) AddAllComponents() {
	for _, c := range v.container.Components() {
		v.AddComponent(c)
	}
}

// AddAllElements adds all software systems, people, containers, and
// components, in that order. Order affects only initial insertion order,
// not final membership.
func (v *ComponentView) AddAllElements() {
	v.AddAllSoftwareSystems()
	v.AddAllPeople()
	v.AddAllContainers()
	v.AddAllComponents()
}

// AddDirectDependencies expands the view to everything one relationship hop
// away from the current selection, then prunes relationships that are
// irrelevant to it.
//
// The inside set - the focus container plus every current member element -
// is frozen before any mutation. A single scan over all model relationships
// adds the opposite endpoint of every relationship touching an inside
// element; elements discovered during the scan are not themselves expanded.
// Additions are routed through the typed Add methods so containment rules
// hold during automated expansion exactly as they do for manual calls.
//
// The prune pass then removes every view relationship with no endpoint in
// the frozen inside set. A relationship between two elements that were both
// merely discovered as neighbors says nothing about the focus container and
// is dropped.
//
// Calling this on an empty view expands to the direct neighbors of the
// focus container itself.
func (v *ComponentView) AddDirectDependencies() {
	inside := map[string]struct{}{v.container.ID(): {}}
	for _, ev := range v.Elements() {
		inside[ev.Element.ID()] = struct{}{}
	}

	for _, r := range v.model.Relationships() {
		if _, ok := inside[r.Source().ID()]; ok {
			v.addByKind(r.Destination())
		}
		if _, ok := inside[r.Destination().ID()]; ok {
			v.addByKind(r.Source())
		}
	}

	// Relationships() materializes a fresh slice, so removing entries while
	// ranging over it cannot skip candidates.
	for _, rv := range v.Relationships() {
		r := rv.Relationship
		_, srcInside := inside[r.Source().ID()]
		_, dstInside := inside[r.Destination().ID()]
		if !srcInside && !dstInside {
			v.removeRelationship(r)
		}
	}
}

// addByKind routes an element to its typed add method so that containment
// rules are never bypassed during expansion. Discovered elements are marked
// non-explicit. Unrecognized variants are ignored.
func (v *ComponentView) addByKind(e model.Element) {
	switch e := e.(type) {
	case *model.Person:
		v.addPerson(e, false)
	case *model.SoftwareSystem:
		v.addSoftwareSystem(e, false)
	case *model.Container:
		v.addContainer(e, false)
	case *model.Component:
		v.addComponent(e, false)
	}
}
