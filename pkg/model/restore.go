package model

// Restore functions re-create elements with known identifiers. They exist
// for the workspace deserialization path, where stored IDs must survive a
// save/load round trip so that view references and relationship endpoints
// keep resolving. New code building a model from scratch should use the
// Add functions instead, which assign fresh identifiers.

// RestorePerson re-creates a person with a known ID.
func (m *Model) RestorePerson(id, name, description string) (*Person, error) {
	return m.restorePerson(id, name, description)
}

// RestoreSoftwareSystem re-creates a software system with a known ID.
func (m *Model) RestoreSoftwareSystem(id, name, description string) (*SoftwareSystem, error) {
	return m.restoreSoftwareSystem(id, name, description)
}

// RestoreContainer re-creates a container with a known ID under sys.
func (m *Model) RestoreContainer(sys *SoftwareSystem, id, name, description, technology string) (*Container, error) {
	if sys == nil {
		return nil, ErrNilParent
	}
	return m.restoreContainer(sys, id, name, description, technology)
}

// RestoreComponent re-creates a component with a known ID under owner.
func (m *Model) RestoreComponent(owner *Container, id, name, description, technology string) (*Component, error) {
	if owner == nil {
		return nil, ErrNilParent
	}
	return m.restoreComponent(owner, id, name, description, technology)
}

// RestoreRelationship re-creates a relationship with a known ID.
func (m *Model) RestoreRelationship(id string, source, destination Element, description, technology string) (*Relationship, error) {
	return m.restoreRelationship(id, source, destination, description, technology)
}
