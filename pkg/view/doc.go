// Package view composes filtered sub-views of an architecture model.
//
// A [ComponentView] is permanently bound to one focus container and holds an
// ordered, deduplicated selection of elements relevant to that container.
// The typed Add methods enforce containment: components from other
// containers, the focus container itself, and its owning software system are
// silently skipped rather than rejected with an error, because bulk
// operations routinely offer elements that simply don't apply.
//
// Relationship membership is derived, never stored: a relationship appears
// in [ComponentView.Relationships] exactly when both of its endpoints are
// member elements and it has not been explicitly removed. This makes it
// impossible for element and relationship membership to drift apart.
//
// [ComponentView.AddDirectDependencies] expands a populated view to its
// one-hop neighborhood and prunes relationships that only connect elements
// outside the original selection.
//
// # Usage
//
//	v, _ := view.NewComponentView(m, api, "Components of the API")
//	v.AddAllComponents()
//	v.AddDirectDependencies()
//	for _, ev := range v.Elements() {
//	    fmt.Println(ev.Element.Name())
//	}
//
// Views are not safe for concurrent mutation; callers must serialize access
// per view instance. The underlying model may be shared read-only across
// many views.
package view
