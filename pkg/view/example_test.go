package view_test

import (
	"fmt"

	"github.com/archview/archview/pkg/model"
	"github.com/archview/archview/pkg/view"
)

func ExampleComponentView_AddDirectDependencies() {
	m := model.New()
	bank, _ := m.AddSoftwareSystem("Bank", "")
	api, _ := m.AddContainer(bank, "API", "", "Go")
	a, _ := m.AddComponent(api, "A", "", "")
	_, _ = m.AddComponent(api, "B", "", "")
	external, _ := m.AddSoftwareSystem("External", "")
	logging, _ := m.AddSoftwareSystem("Logging", "")
	_, _ = m.AddRelationship(a, external, "Calls", "")
	_, _ = m.AddRelationship(external, logging, "Logs to", "")

	v, _ := view.NewComponentView(m, api, "Components of the API")
	v.AddAllComponents()
	v.AddDirectDependencies()

	fmt.Println(v.Name())
	for _, ev := range v.Elements() {
		fmt.Println("-", ev.Element.Name())
	}
	for _, rv := range v.Relationships() {
		r := rv.Relationship
		fmt.Printf("%s -> %s\n", r.Source().Name(), r.Destination().Name())
	}
	// Output:
	// Bank - API - Components
	// - A
	// - B
	// - External
	// A -> External
}

func ExampleComponentView_containmentFilter() {
	m := model.New()
	bank, _ := m.AddSoftwareSystem("Bank", "")
	api, _ := m.AddContainer(bank, "API", "", "")
	db, _ := m.AddContainer(bank, "DB", "", "")
	foreign, _ := m.AddComponent(db, "Schema", "", "")

	v, _ := view.NewComponentView(m, api, "")
	v.AddComponent(foreign)   // belongs to DB, silently skipped
	v.AddContainer(api)       // the focus container, silently skipped
	v.AddSoftwareSystem(bank) // the owning system, silently skipped

	fmt.Println("elements:", len(v.Elements()))
	// Output:
	// elements: 0
}
