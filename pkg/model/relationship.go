package model

// Relationship is a directed edge between two elements. Relationships are
// owned by the model and created via [Model.AddRelationship].
type Relationship struct {
	id          string
	source      Element
	destination Element
	description string
	technology  string
}

// ID returns the relationship's stable identifier.
func (r *Relationship) ID() string { return r.id }

// Source returns the element the relationship originates from.
func (r *Relationship) Source() Element { return r.source }

// Destination returns the element the relationship points to.
func (r *Relationship) Destination() Element { return r.destination }

// Description returns the relationship's description, which may be empty.
func (r *Relationship) Description() string { return r.description }

// Technology returns the relationship's technology label, which may be empty.
func (r *Relationship) Technology() string { return r.technology }
