// Package model implements the software-architecture element graph.
//
// A [Model] owns a four-level hierarchy of typed elements: people and
// software systems at the top level, containers owned by software systems,
// and components owned by containers. Directed [Relationship] edges connect
// any two elements. Elements and relationships are created only through the
// model, which assigns stable identifiers and maintains a global index.
//
// Ownership between levels is recorded as identifier references (a component
// stores its container's ID, a container stores its software system's ID)
// and resolved through the model via [Model.OwningContainer] and
// [Model.OwningSoftwareSystem]. Views never own elements - they reference
// them by identity.
//
// # Usage
//
//	m := model.New()
//	sys, _ := m.AddSoftwareSystem("Bank", "Internet banking")
//	api, _ := m.AddContainer(sys, "API", "Backend API", "Go")
//	ctrl, _ := m.AddComponent(api, "Controller", "HTTP controllers", "chi")
//	user, _ := m.AddPerson("Customer", "A bank customer")
//	m.AddRelationship(user, ctrl, "Uses", "HTTPS")
//
// The model is not safe for concurrent mutation without external
// synchronization. Read-only access may be shared across many views.
package model
