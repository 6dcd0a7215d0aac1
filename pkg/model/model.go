package model

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrEmptyName is returned when an element is created with an empty name.
	ErrEmptyName = errors.New("element name must not be empty")

	// ErrNilParent is returned by [Model.AddContainer] and
	// [Model.AddComponent] when the owning element is nil.
	ErrNilParent = errors.New("owning element must not be nil")

	// ErrUnknownParent is returned when the owning element does not belong
	// to this model.
	ErrUnknownParent = errors.New("owning element is not part of this model")

	// ErrNilEndpoint is returned by [Model.AddRelationship] when either
	// endpoint is nil.
	ErrNilEndpoint = errors.New("relationship endpoints must not be nil")

	// ErrUnknownEndpoint is returned by [Model.AddRelationship] when an
	// endpoint does not belong to this model.
	ErrUnknownEndpoint = errors.New("relationship endpoint is not part of this model")

	// ErrDuplicateID is returned when restoring an element whose ID is
	// already present in the model.
	ErrDuplicateID = errors.New("duplicate element ID")
)

// Model is the element graph: the root registry of people, software systems,
// and relationships. The zero value is not usable - use [New].
//
// Model is not safe for concurrent mutation without external
// synchronization.
type Model struct {
	people          []*Person
	softwareSystems []*SoftwareSystem
	relationships   []*Relationship
	elements        map[string]Element
}

// New creates an empty model.
func New() *Model {
	return &Model{elements: make(map[string]Element)}
}

// AddPerson creates a person and adds it to the model.
func (m *Model) AddPerson(name, description string) (*Person, error) {
	return m.restorePerson(uuid.NewString(), name, description)
}

// AddSoftwareSystem creates a software system and adds it to the model.
func (m *Model) AddSoftwareSystem(name, description string) (*SoftwareSystem, error) {
	return m.restoreSoftwareSystem(uuid.NewString(), name, description)
}

// AddContainer creates a container owned by the given software system.
func (m *Model) AddContainer(sys *SoftwareSystem, name, description, technology string) (*Container, error) {
	if sys == nil {
		return nil, ErrNilParent
	}
	return m.restoreContainer(sys, uuid.NewString(), name, description, technology)
}

// AddComponent creates a component owned by the given container.
func (m *Model) AddComponent(c *Container, name, description, technology string) (*Component, error) {
	if c == nil {
		return nil, ErrNilParent
	}
	return m.restoreComponent(c, uuid.NewString(), name, description, technology)
}

// AddRelationship creates a directed relationship between two elements
// already present in the model.
func (m *Model) AddRelationship(source, destination Element, description, technology string) (*Relationship, error) {
	return m.restoreRelationship(uuid.NewString(), source, destination, description, technology)
}

// People returns all people in creation order.
// The returned slice should not be modified.
func (m *Model) People() []*Person { return m.people }

// SoftwareSystems returns all software systems in creation order.
// The returned slice should not be modified.
func (m *Model) SoftwareSystems() []*SoftwareSystem { return m.softwareSystems }

// Relationships returns all relationships in creation order.
// The returned slice should not be modified.
func (m *Model) Relationships() []*Relationship { return m.relationships }

// Element returns the element with the given ID and true, or nil and false
// if no such element exists.
func (m *Model) Element(id string) (Element, bool) {
	e, ok := m.elements[id]
	return e, ok
}

// ElementCount returns the number of elements across all four levels.
func (m *Model) ElementCount() int { return len(m.elements) }

// OwningSoftwareSystem resolves a container's owning software system.
// Returns nil if the container is nil or its owner is not in this model.
func (m *Model) OwningSoftwareSystem(c *Container) *SoftwareSystem {
	if c == nil {
		return nil
	}
	if sys, ok := m.elements[c.softwareSystemID].(*SoftwareSystem); ok {
		return sys
	}
	return nil
}

// OwningContainer resolves a component's owning container.
// Returns nil if the component is nil or its owner is not in this model.
func (m *Model) OwningContainer(c *Component) *Container {
	if c == nil {
		return nil
	}
	if owner, ok := m.elements[c.containerID].(*Container); ok {
		return owner
	}
	return nil
}

func (m *Model) register(e Element) error {
	if e.Name() == "" {
		return ErrEmptyName
	}
	if _, exists := m.elements[e.ID()]; exists {
		return ErrDuplicateID
	}
	m.elements[e.ID()] = e
	return nil
}

func (m *Model) restorePerson(id, name, description string) (*Person, error) {
	p := &Person{element{id: id, name: name, description: description}}
	if err := m.register(p); err != nil {
		return nil, err
	}
	m.people = append(m.people, p)
	return p, nil
}

func (m *Model) restoreSoftwareSystem(id, name, description string) (*SoftwareSystem, error) {
	s := &SoftwareSystem{element: element{id: id, name: name, description: description}}
	if err := m.register(s); err != nil {
		return nil, err
	}
	m.softwareSystems = append(m.softwareSystems, s)
	return s, nil
}

func (m *Model) restoreContainer(sys *SoftwareSystem, id, name, description, technology string) (*Container, error) {
	if _, ok := m.elements[sys.ID()]; !ok {
		return nil, ErrUnknownParent
	}
	c := &Container{
		element:          element{id: id, name: name, description: description},
		technology:       technology,
		softwareSystemID: sys.ID(),
	}
	if err := m.register(c); err != nil {
		return nil, err
	}
	sys.containers = append(sys.containers, c)
	return c, nil
}

func (m *Model) restoreComponent(owner *Container, id, name, description, technology string) (*Component, error) {
	if _, ok := m.elements[owner.ID()]; !ok {
		return nil, ErrUnknownParent
	}
	c := &Component{
		element:     element{id: id, name: name, description: description},
		technology:  technology,
		containerID: owner.ID(),
	}
	if err := m.register(c); err != nil {
		return nil, err
	}
	owner.components = append(owner.components, c)
	return c, nil
}

func (m *Model) restoreRelationship(id string, source, destination Element, description, technology string) (*Relationship, error) {
	if source == nil || destination == nil {
		return nil, ErrNilEndpoint
	}
	if _, ok := m.elements[source.ID()]; !ok {
		return nil, ErrUnknownEndpoint
	}
	if _, ok := m.elements[destination.ID()]; !ok {
		return nil, ErrUnknownEndpoint
	}
	r := &Relationship{
		id:          id,
		source:      source,
		destination: destination,
		description: description,
		technology:  technology,
	}
	m.relationships = append(m.relationships, r)
	return r, nil
}
