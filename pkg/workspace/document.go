package workspace

import (
	"fmt"

	"github.com/archview/archview/pkg/view"
)

// Document is the serialization format for a workspace. It is designed for
// round-trip fidelity: save then load produces a workspace with identical
// identifiers, ordering, and view membership. The same shape is stored as a
// Mongo document by pkg/store/mongo.
type Document struct {
	ID              string            `json:"id,omitempty" bson:"_id,omitempty"`
	Name            string            `json:"name" bson:"name"`
	Description     string            `json:"description,omitempty" bson:"description,omitempty"`
	People          []PersonDoc       `json:"people,omitempty" bson:"people,omitempty"`
	SoftwareSystems []SystemDoc       `json:"softwareSystems,omitempty" bson:"softwareSystems,omitempty"`
	Relationships   []RelationshipDoc `json:"relationships,omitempty" bson:"relationships,omitempty"`
	Views           []ViewDoc         `json:"views,omitempty" bson:"views,omitempty"`
}

// PersonDoc serializes a person.
type PersonDoc struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// SystemDoc serializes a software system with its nested containers.
type SystemDoc struct {
	ID          string         `json:"id" bson:"id"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Containers  []ContainerDoc `json:"containers,omitempty" bson:"containers,omitempty"`
}

// ContainerDoc serializes a container with its nested components.
type ContainerDoc struct {
	ID          string         `json:"id" bson:"id"`
	Name        string         `json:"name" bson:"name"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Technology  string         `json:"technology,omitempty" bson:"technology,omitempty"`
	Components  []ComponentDoc `json:"components,omitempty" bson:"components,omitempty"`
}

// ComponentDoc serializes a component.
type ComponentDoc struct {
	ID          string `json:"id" bson:"id"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Technology  string `json:"technology,omitempty" bson:"technology,omitempty"`
}

// RelationshipDoc serializes a directed relationship by endpoint IDs.
type RelationshipDoc struct {
	ID          string `json:"id" bson:"id"`
	SourceID    string `json:"sourceId" bson:"sourceId"`
	DestID      string `json:"destinationId" bson:"destinationId"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	Technology  string `json:"technology,omitempty" bson:"technology,omitempty"`
}

// ViewDoc serializes a component view's membership state.
type ViewDoc struct {
	ContainerID          string          `json:"containerId" bson:"containerId"`
	Description          string          `json:"description,omitempty" bson:"description,omitempty"`
	Elements             []ElementRefDoc `json:"elements,omitempty" bson:"elements,omitempty"`
	RemovedRelationships []string        `json:"removedRelationships,omitempty" bson:"removedRelationships,omitempty"`
}

// ElementRefDoc is one element membership record in a view.
type ElementRefDoc struct {
	ID       string `json:"id" bson:"id"`
	Explicit bool   `json:"explicit,omitempty" bson:"explicit,omitempty"`
}

// FromWorkspace converts a workspace to its document form. Output order
// follows model creation order, so marshaling is deterministic.
func FromWorkspace(w *Workspace) Document {
	doc := Document{Name: w.Name, Description: w.Description}

	for _, p := range w.Model.People() {
		doc.People = append(doc.People, PersonDoc{
			ID: p.ID(), Name: p.Name(), Description: p.Description(),
		})
	}
	for _, sys := range w.Model.SoftwareSystems() {
		sd := SystemDoc{ID: sys.ID(), Name: sys.Name(), Description: sys.Description()}
		for _, c := range sys.Containers() {
			cd := ContainerDoc{
				ID: c.ID(), Name: c.Name(), Description: c.Description(), Technology: c.Technology(),
			}
			for _, cmp := range c.Components() {
				cd.Components = append(cd.Components, ComponentDoc{
					ID: cmp.ID(), Name: cmp.Name(), Description: cmp.Description(), Technology: cmp.Technology(),
				})
			}
			sd.Containers = append(sd.Containers, cd)
		}
		doc.SoftwareSystems = append(doc.SoftwareSystems, sd)
	}
	for _, r := range w.Model.Relationships() {
		doc.Relationships = append(doc.Relationships, RelationshipDoc{
			ID:          r.ID(),
			SourceID:    r.Source().ID(),
			DestID:      r.Destination().ID(),
			Description: r.Description(),
			Technology:  r.Technology(),
		})
	}
	for _, v := range w.Views() {
		doc.Views = append(doc.Views, viewDoc(v))
	}
	return doc
}

func viewDoc(v *view.ComponentView) ViewDoc {
	s := v.State()
	vd := ViewDoc{
		ContainerID:          s.ContainerID,
		Description:          s.Description,
		RemovedRelationships: s.RemovedRelIDs,
	}
	explicit := make(map[string]struct{}, len(s.ExplicitIDs))
	for _, id := range s.ExplicitIDs {
		explicit[id] = struct{}{}
	}
	for _, id := range s.ElementIDs {
		_, exp := explicit[id]
		vd.Elements = append(vd.Elements, ElementRefDoc{ID: id, Explicit: exp})
	}
	return vd
}

// ToWorkspace converts a document back into a live workspace. Returns an
// error if the document violates model constraints (duplicate IDs, dangling
// relationship endpoints) or references an unknown view container.
func ToWorkspace(doc Document) (*Workspace, error) {
	w, err := New(doc.Name, doc.Description)
	if err != nil {
		return nil, err
	}
	m := w.Model

	for _, pd := range doc.People {
		if _, err := m.RestorePerson(pd.ID, pd.Name, pd.Description); err != nil {
			return nil, fmt.Errorf("person %s: %w", pd.Name, err)
		}
	}
	for _, sd := range doc.SoftwareSystems {
		sys, err := m.RestoreSoftwareSystem(sd.ID, sd.Name, sd.Description)
		if err != nil {
			return nil, fmt.Errorf("software system %s: %w", sd.Name, err)
		}
		for _, cd := range sd.Containers {
			c, err := m.RestoreContainer(sys, cd.ID, cd.Name, cd.Description, cd.Technology)
			if err != nil {
				return nil, fmt.Errorf("container %s: %w", cd.Name, err)
			}
			for _, cmp := range cd.Components {
				if _, err := m.RestoreComponent(c, cmp.ID, cmp.Name, cmp.Description, cmp.Technology); err != nil {
					return nil, fmt.Errorf("component %s: %w", cmp.Name, err)
				}
			}
		}
	}
	for _, rd := range doc.Relationships {
		src, ok := m.Element(rd.SourceID)
		if !ok {
			return nil, fmt.Errorf("relationship %s: unknown source %s", rd.ID, rd.SourceID)
		}
		dst, ok := m.Element(rd.DestID)
		if !ok {
			return nil, fmt.Errorf("relationship %s: unknown destination %s", rd.ID, rd.DestID)
		}
		if _, err := m.RestoreRelationship(rd.ID, src, dst, rd.Description, rd.Technology); err != nil {
			return nil, fmt.Errorf("relationship %s: %w", rd.ID, err)
		}
	}
	for _, vd := range doc.Views {
		state := view.State{
			ContainerID:   vd.ContainerID,
			Description:   vd.Description,
			RemovedRelIDs: vd.RemovedRelationships,
		}
		for _, ref := range vd.Elements {
			state.ElementIDs = append(state.ElementIDs, ref.ID)
			if ref.Explicit {
				state.ExplicitIDs = append(state.ExplicitIDs, ref.ID)
			}
		}
		v, err := view.Restore(m, state)
		if err != nil {
			return nil, fmt.Errorf("view %s: %w", vd.ContainerID, err)
		}
		w.views = append(w.views, v)
	}
	return w, nil
}
