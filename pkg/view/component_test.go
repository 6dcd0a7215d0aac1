package view

import (
	"testing"

	"github.com/archview/archview/pkg/model"
)

// fixture builds the model used across the tests in this file:
//
//	Bank (software system)
//	  API (container)     - components A, B
//	  DB (container)      - component X
//	External (software system)
//	Logging (software system)
//	Customer (person)
type fixture struct {
	m        *model.Model
	bank     *model.SoftwareSystem
	api      *model.Container
	db       *model.Container
	compA    *model.Component
	compB    *model.Component
	compX    *model.Component
	external *model.SoftwareSystem
	logging  *model.SoftwareSystem
	customer *model.Person
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	m := model.New()
	bank, _ := m.AddSoftwareSystem("Bank", "")
	api, _ := m.AddContainer(bank, "API", "", "Go")
	db, _ := m.AddContainer(bank, "DB", "", "Postgres")
	compA, _ := m.AddComponent(api, "A", "", "")
	compB, _ := m.AddComponent(api, "B", "", "")
	compX, _ := m.AddComponent(db, "X", "", "")
	external, _ := m.AddSoftwareSystem("External", "")
	logging, _ := m.AddSoftwareSystem("Logging", "")
	customer, _ := m.AddPerson("Customer", "")
	return &fixture{
		m: m, bank: bank, api: api, db: db,
		compA: compA, compB: compB, compX: compX,
		external: external, logging: logging, customer: customer,
	}
}

func (f *fixture) view(t *testing.T) *ComponentView {
	t.Helper()
	v, err := NewComponentView(f.m, f.api, "Components of the API")
	if err != nil {
		t.Fatalf("NewComponentView: %v", err)
	}
	return v
}

func elementNames(v *ComponentView) []string {
	var names []string
	for _, ev := range v.Elements() {
		names = append(names, ev.Element.Name())
	}
	return names
}

func hasElement(v *ComponentView, e model.Element) bool {
	for _, ev := range v.Elements() {
		if ev.Element.ID() == e.ID() {
			return true
		}
	}
	return false
}

func hasRelationship(v *ComponentView, r *model.Relationship) bool {
	for _, rv := range v.Relationships() {
		if rv.Relationship.ID() == r.ID() {
			return true
		}
	}
	return false
}

func TestNewComponentView(t *testing.T) {
	f := newFixture(t)

	v := f.view(t)
	if got, want := v.Name(), "Bank - API - Components"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	if v.ContainerID() != f.api.ID() {
		t.Errorf("ContainerID() = %q, want %q", v.ContainerID(), f.api.ID())
	}

	if _, err := NewComponentView(nil, f.api, ""); err != ErrNilModel {
		t.Errorf("nil model err = %v, want ErrNilModel", err)
	}
	if _, err := NewComponentView(f.m, nil, ""); err != ErrNilContainer {
		t.Errorf("nil container err = %v, want ErrNilContainer", err)
	}
}

func TestAddIsIdempotent(t *testing.T) {
	f := newFixture(t)
	v := f.view(t)

	v.AddComponent(f.compA)
	v.AddComponent(f.compA)
	v.AddPerson(f.customer)
	v.AddPerson(f.customer)

	if got := len(v.Elements()); got != 2 {
		t.Errorf("element count = %d, want 2 (duplicates collapse)", got)
	}
}

func TestContainmentFilter(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		add  func(v *ComponentView)
		want int
	}{
		{"ComponentOfFocusContainer", func(v *ComponentView) { v.AddComponent(f.compA) }, 1},
		{"ComponentOfOtherContainer", func(v *ComponentView) { v.AddComponent(f.compX) }, 0},
		{"FocusContainerItself", func(v *ComponentView) { v.AddContainer(f.api) }, 0},
		{"SiblingContainer", func(v *ComponentView) { v.AddContainer(f.db) }, 1},
		{"OwningSoftwareSystem", func(v *ComponentView) { v.AddSoftwareSystem(f.bank) }, 0},
		{"OtherSoftwareSystem", func(v *ComponentView) { v.AddSoftwareSystem(f.external) }, 1},
		{"Person", func(v *ComponentView) { v.AddPerson(f.customer) }, 1},
		{"NilComponent", func(v *ComponentView) { v.AddComponent(nil) }, 0},
		{"NilPerson", func(v *ComponentView) { v.AddPerson(nil) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := f.view(t)
			tt.add(v)
			if got := len(v.Elements()); got != tt.want {
				t.Errorf("element count = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddAllComponents(t *testing.T) {
	f := newFixture(t)
	v := f.view(t)

	v.AddAllComponents()

	want := []string{"A", "B"}
	got := elementNames(v)
	if len(got) != len(want) {
		t.Fatalf("elements = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("elements[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAddAllContainers(t *testing.T) {
	f := newFixture(t)
	v := f.view(t)

	v.AddAllContainers()

	// The focus container is excluded; only the sibling remains.
	if got := elementNames(v); len(got) != 1 || got[0] != "DB" {
		t.Errorf("elements = %v, want [DB]", got)
	}
}

func TestAddAllElements(t *testing.T) {
	f := newFixture(t)
	v := f.view(t)

	v.AddAllElements()

	// External + Logging systems, Customer, DB container, components A and B.
	// Bank (owning system) and API (focus container) are implicit.
	want := []string{"External", "Logging", "Customer", "DB", "A", "B"}
	got := elementNames(v)
	if len(got) != len(want) {
		t.Fatalf("elements = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("elements[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRemoveCascadesRelationships(t *testing.T) {
	f := newFixture(t)
	rel, _ := f.m.AddRelationship(f.compA, f.compB, "Calls", "")

	v := f.view(t)
	v.AddAllComponents()
	if !hasRelationship(v, rel) {
		t.Fatal("relationship between members missing before removal")
	}

	v.RemoveComponent(f.compB)
	if hasElement(v, f.compB) {
		t.Error("B still a member after removal")
	}
	if hasRelationship(v, rel) {
		t.Error("relationship survived losing an endpoint")
	}
}

func TestDerivedRelationshipMembership(t *testing.T) {
	f := newFixture(t)
	rel, _ := f.m.AddRelationship(f.compA, f.external, "Calls", "HTTPS")

	v := f.view(t)
	v.AddComponent(f.compA)
	if got := len(v.Relationships()); got != 0 {
		t.Fatalf("relationships = %d, want 0 while External is outside", got)
	}

	v.AddSoftwareSystem(f.external)
	if !hasRelationship(v, rel) {
		t.Error("relationship missing once both endpoints are members")
	}
}

func TestAddDirectDependenciesScenario(t *testing.T) {
	// The authoritative scenario: components {A, B} inside, relationships
	// A -> External and External -> Logging. After expansion External is
	// pulled in as a one-hop neighbor; Logging (two hops) is not, and the
	// External -> Logging relationship is pruned.
	f := newFixture(t)
	aToExt, _ := f.m.AddRelationship(f.compA, f.external, "Calls", "")
	extToLog, _ := f.m.AddRelationship(f.external, f.logging, "Logs to", "")

	v := f.view(t)
	v.AddAllComponents()
	v.AddDirectDependencies()

	want := []string{"A", "B", "External"}
	got := elementNames(v)
	if len(got) != len(want) {
		t.Fatalf("elements = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("elements[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if !hasRelationship(v, aToExt) {
		t.Error("A -> External missing")
	}
	if hasRelationship(v, extToLog) {
		t.Error("External -> Logging present, want pruned")
	}
}

func TestAddDirectDependenciesOneHopOnly(t *testing.T) {
	// Person -> A (inside); Logging -> Person. Logging is two hops from
	// the selection and must not be added.
	f := newFixture(t)
	f.m.AddRelationship(f.customer, f.compA, "Uses", "")
	f.m.AddRelationship(f.logging, f.customer, "Notifies", "")

	v := f.view(t)
	v.AddComponent(f.compA)
	v.AddDirectDependencies()

	if !hasElement(v, f.customer) {
		t.Error("Customer (direct neighbor) missing")
	}
	if hasElement(v, f.logging) {
		t.Error("Logging (two hops away) was added")
	}
}

func TestAddDirectDependenciesPrunesNeighborOnlyRelationships(t *testing.T) {
	// External and Logging are both direct neighbors of A, so both are
	// added. Their mutual relationship has no endpoint in the original
	// inside set and must be pruned even though both elements remain.
	f := newFixture(t)
	f.m.AddRelationship(f.compA, f.external, "Calls", "")
	f.m.AddRelationship(f.compA, f.logging, "Logs to", "")
	extToLog, _ := f.m.AddRelationship(f.external, f.logging, "Forwards to", "")

	v := f.view(t)
	v.AddComponent(f.compA)
	v.AddDirectDependencies()

	if !hasElement(v, f.external) || !hasElement(v, f.logging) {
		t.Fatal("direct neighbors missing")
	}
	if hasRelationship(v, extToLog) {
		t.Error("External -> Logging present, want pruned (neither endpoint in pre-expansion inside set)")
	}
}

func TestAddDirectDependenciesRespectsContainment(t *testing.T) {
	// X belongs to the DB container. Even when a relationship makes it a
	// direct neighbor, the containment filter keeps it out; its owning
	// container would only enter via its own relationship.
	f := newFixture(t)
	f.m.AddRelationship(f.compA, f.compX, "Reads", "")

	v := f.view(t)
	v.AddComponent(f.compA)
	v.AddDirectDependencies()

	if hasElement(v, f.compX) {
		t.Error("foreign component X added during expansion")
	}
}

func TestAddDirectDependenciesEmptyView(t *testing.T) {
	// With no selection, expansion degenerates to the direct neighbors of
	// the focus container itself.
	f := newFixture(t)
	f.m.AddRelationship(f.customer, f.api, "Uses", "")
	f.m.AddRelationship(f.external, f.logging, "Forwards to", "")

	v := f.view(t)
	v.AddDirectDependencies()

	if !hasElement(v, f.customer) {
		t.Error("Customer (neighbor of focus container) missing")
	}
	if got := len(v.Elements()); got != 1 {
		t.Errorf("element count = %d, want 1", got)
	}
}

func TestAddDirectDependenciesIdempotent(t *testing.T) {
	f := newFixture(t)
	f.m.AddRelationship(f.compA, f.external, "Calls", "")

	v := f.view(t)
	v.AddAllComponents()
	v.AddDirectDependencies()
	first := elementNames(v)

	v.AddDirectDependencies()
	second := elementNames(v)

	if len(first) != len(second) {
		t.Fatalf("second expansion changed membership: %v -> %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("element[%d] changed: %q -> %q", i, first[i], second[i])
		}
	}
}

func TestReAddedElementRestoresRelationships(t *testing.T) {
	// Removing a relationship suppresses it only while both endpoints
	// remain members. Once an endpoint leaves, the suppression is stale;
	// re-adding the endpoint brings the relationship back.
	f := newFixture(t)
	rel, _ := f.m.AddRelationship(f.compA, f.compB, "Calls", "")

	v := f.view(t)
	v.AddAllComponents()
	v.removeRelationship(rel)
	if hasRelationship(v, rel) {
		t.Fatal("relationship visible after removal")
	}

	v.RemoveComponent(f.compB)
	v.AddComponent(f.compB)
	if !hasRelationship(v, rel) {
		t.Error("relationship still suppressed after endpoint was removed and re-added")
	}
	if got := len(v.State().RemovedRelIDs); got != 0 {
		t.Errorf("RemovedRelIDs count = %d, want 0 after suppression cleared", got)
	}
}
