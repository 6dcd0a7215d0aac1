package model

// Kind identifies the variant of an element. The four kinds form a closed
// set; code that dispatches on Kind should use an explicit switch so a new
// variant becomes a visible decision point.
type Kind int

const (
	// KindPerson represents a human actor interacting with the system.
	KindPerson Kind = iota
	// KindSoftwareSystem represents a top-level software system.
	KindSoftwareSystem
	// KindContainer represents a deployable unit within a software system.
	KindContainer
	// KindComponent represents a building block within a container.
	KindComponent
)

// String returns the lowercase name of the kind, used in serialization
// and DOT output.
func (k Kind) String() string {
	switch k {
	case KindPerson:
		return "person"
	case KindSoftwareSystem:
		return "softwareSystem"
	case KindContainer:
		return "container"
	case KindComponent:
		return "component"
	default:
		return "unknown"
	}
}

// Element is implemented by the four element variants: [Person],
// [SoftwareSystem], [Container], and [Component].
type Element interface {
	// ID returns the element's stable identifier.
	ID() string
	// Name returns the element's display name.
	Name() string
	// Description returns the element's description, which may be empty.
	Description() string
	// Kind returns the element's variant tag.
	Kind() Kind
}

// element carries the identity shared by all variants.
type element struct {
	id          string
	name        string
	description string
}

func (e *element) ID() string          { return e.id }
func (e *element) Name() string        { return e.name }
func (e *element) Description() string { return e.description }

// Person is a human actor. People have no containment constraints and can
// appear in any view.
type Person struct {
	element
}

// Kind returns KindPerson.
func (p *Person) Kind() Kind { return KindPerson }

// SoftwareSystem is a top-level system that owns containers.
type SoftwareSystem struct {
	element
	containers []*Container
}

// Kind returns KindSoftwareSystem.
func (s *SoftwareSystem) Kind() Kind { return KindSoftwareSystem }

// Containers returns the system's containers in creation order.
// The returned slice should not be modified.
func (s *SoftwareSystem) Containers() []*Container { return s.containers }

// Container is a deployable unit (application, data store, service) owned
// by exactly one software system. The owning system is referenced by ID and
// resolved through the model.
type Container struct {
	element
	technology       string
	softwareSystemID string
	components       []*Component
}

// Kind returns KindContainer.
func (c *Container) Kind() Kind { return KindContainer }

// Technology returns the container's technology label, which may be empty.
func (c *Container) Technology() string { return c.technology }

// SoftwareSystemID returns the ID of the owning software system.
func (c *Container) SoftwareSystemID() string { return c.softwareSystemID }

// Components returns the container's components in creation order.
// The returned slice should not be modified.
func (c *Container) Components() []*Component { return c.components }

// Component is a building block owned by exactly one container. The owning
// container is referenced by ID and resolved through the model.
type Component struct {
	element
	technology  string
	containerID string
}

// Kind returns KindComponent.
func (c *Component) Kind() Kind { return KindComponent }

// Technology returns the component's technology label, which may be empty.
func (c *Component) Technology() string { return c.technology }

// ContainerID returns the ID of the owning container.
func (c *Component) ContainerID() string { return c.containerID }
