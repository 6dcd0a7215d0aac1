package view

import "testing"

func TestStateRoundTrip(t *testing.T) {
	f := newFixture(t)
	rel, _ := f.m.AddRelationship(f.compA, f.external, "Calls", "")
	extToLog, _ := f.m.AddRelationship(f.external, f.logging, "Forwards to", "")
	f.m.AddRelationship(f.compA, f.logging, "Logs to", "")

	v := f.view(t)
	v.AddAllComponents()
	v.AddDirectDependencies()

	restored, err := Restore(f.m, v.State())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if restored.ContainerID() != f.api.ID() {
		t.Errorf("ContainerID() = %q, want %q", restored.ContainerID(), f.api.ID())
	}
	if restored.Name() != v.Name() {
		t.Errorf("Name() = %q, want %q", restored.Name(), v.Name())
	}

	orig, back := elementNames(v), elementNames(restored)
	if len(orig) != len(back) {
		t.Fatalf("elements = %v, want %v", back, orig)
	}
	for i := range orig {
		if orig[i] != back[i] {
			t.Errorf("elements[%d] = %q, want %q", i, back[i], orig[i])
		}
	}

	if !hasRelationship(restored, rel) {
		t.Error("A -> External missing after restore")
	}
	if hasRelationship(restored, extToLog) {
		t.Error("pruned External -> Logging resurfaced after restore")
	}
}

func TestRestoreUnresolvedContainer(t *testing.T) {
	f := newFixture(t)

	restored, err := Restore(f.m, State{ContainerID: "gone", Description: "stale"})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Container() != nil {
		t.Error("Container() != nil for unresolvable ID")
	}
	// The persisted identifier is still reported.
	if restored.ContainerID() != "gone" {
		t.Errorf("ContainerID() = %q, want %q", restored.ContainerID(), "gone")
	}
}

func TestRestoreSkipsMissingElements(t *testing.T) {
	f := newFixture(t)

	restored, err := Restore(f.m, State{
		ContainerID: f.api.ID(),
		ElementIDs:  []string{f.compA.ID(), "deleted-element"},
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got := len(restored.Elements()); got != 1 {
		t.Errorf("element count = %d, want 1 (missing ID skipped)", got)
	}
}

func TestRestoreRejectsNonContainerID(t *testing.T) {
	f := newFixture(t)

	if _, err := Restore(f.m, State{ContainerID: f.customer.ID()}); err != ErrUnknownContainer {
		t.Errorf("err = %v, want ErrUnknownContainer", err)
	}
	if _, err := Restore(nil, State{}); err != ErrNilModel {
		t.Errorf("err = %v, want ErrNilModel", err)
	}
}

func TestStateRemovedRelationshipOrder(t *testing.T) {
	// Suppressed relationships are emitted in model order regardless of
	// the order they were removed in, so serialized state is stable.
	f := newFixture(t)
	first, _ := f.m.AddRelationship(f.compA, f.compB, "Calls", "")
	second, _ := f.m.AddRelationship(f.compA, f.external, "Posts to", "")
	third, _ := f.m.AddRelationship(f.compB, f.external, "Reads from", "")

	v := f.view(t)
	v.AddAllComponents()
	v.AddSoftwareSystem(f.external)

	v.removeRelationship(third)
	v.removeRelationship(first)

	want := []string{first.ID(), third.ID()}
	for i := 0; i < 10; i++ {
		got := v.State().RemovedRelIDs
		if len(got) != len(want) {
			t.Fatalf("RemovedRelIDs = %v, want %v", got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("RemovedRelIDs[%d] = %q, want %q", j, got[j], want[j])
			}
		}
	}

	if !hasRelationship(v, second) {
		t.Error("untouched relationship missing")
	}
}

func TestStateMarksExplicitElements(t *testing.T) {
	f := newFixture(t)
	f.m.AddRelationship(f.compA, f.external, "Calls", "")

	v := f.view(t)
	v.AddComponent(f.compA)
	v.AddDirectDependencies()

	s := v.State()
	if len(s.ExplicitIDs) != 1 || s.ExplicitIDs[0] != f.compA.ID() {
		t.Errorf("ExplicitIDs = %v, want just A", s.ExplicitIDs)
	}

	restored, err := Restore(f.m, s)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	for _, ev := range restored.Elements() {
		want := ev.Element.ID() == f.compA.ID()
		if ev.Explicit != want {
			t.Errorf("element %s Explicit = %v, want %v", ev.Element.Name(), ev.Explicit, want)
		}
	}
}
