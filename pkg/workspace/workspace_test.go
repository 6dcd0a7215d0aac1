package workspace

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// buildWorkspace creates a small banking workspace with one composed view.
func buildWorkspace(t *testing.T) *Workspace {
	t.Helper()
	w, err := New("Bank", "Internet banking architecture")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	bank, _ := w.Model.AddSoftwareSystem("Bank", "")
	api, _ := w.Model.AddContainer(bank, "API", "Backend API", "Go")
	a, _ := w.Model.AddComponent(api, "A", "", "")
	_, _ = w.Model.AddComponent(api, "B", "", "")
	external, _ := w.Model.AddSoftwareSystem("External", "")
	logging, _ := w.Model.AddSoftwareSystem("Logging", "")
	w.Model.AddRelationship(a, external, "Calls", "HTTPS")
	w.Model.AddRelationship(a, logging, "Logs to", "")
	// Both neighbor-to-neighbor relationships are pruned during
	// expansion, so the document carries several removed IDs.
	w.Model.AddRelationship(external, logging, "Forwards to", "")
	w.Model.AddRelationship(logging, external, "Reads config from", "")

	v, err := w.AddComponentView(api, "Components of the API")
	if err != nil {
		t.Fatalf("AddComponentView: %v", err)
	}
	v.AddAllComponents()
	v.AddDirectDependencies()
	return w
}

func TestNew(t *testing.T) {
	if _, err := New("", ""); !errors.Is(err, ErrEmptyName) {
		t.Errorf("err = %v, want ErrEmptyName", err)
	}
}

func TestFindContainer(t *testing.T) {
	w := buildWorkspace(t)

	api, err := w.FindContainer("API")
	if err != nil {
		t.Fatalf("FindContainer: %v", err)
	}
	if api.Name() != "API" {
		t.Errorf("Name() = %q, want API", api.Name())
	}

	if _, err := w.FindContainer("missing"); !errors.Is(err, ErrContainerNotFound) {
		t.Errorf("err = %v, want ErrContainerNotFound", err)
	}
}

func TestViewForContainer(t *testing.T) {
	w := buildWorkspace(t)
	api, _ := w.FindContainer("API")

	if v := w.ViewForContainer(api.ID()); v == nil {
		t.Error("ViewForContainer returned nil for registered view")
	}
	if v := w.ViewForContainer("other"); v != nil {
		t.Error("ViewForContainer returned a view for unknown container")
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	w := buildWorkspace(t)

	data, err := Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	back, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if back.Name != w.Name || back.Description != w.Description {
		t.Errorf("identity = %q/%q, want %q/%q", back.Name, back.Description, w.Name, w.Description)
	}
	if got, want := back.Model.ElementCount(), w.Model.ElementCount(); got != want {
		t.Errorf("ElementCount = %d, want %d", got, want)
	}
	if got, want := len(back.Model.Relationships()), len(w.Model.Relationships()); got != want {
		t.Errorf("relationship count = %d, want %d", got, want)
	}
	if len(back.Views()) != 1 {
		t.Fatalf("view count = %d, want 1", len(back.Views()))
	}

	orig, restored := w.Views()[0], back.Views()[0]
	if restored.Name() != orig.Name() {
		t.Errorf("view name = %q, want %q", restored.Name(), orig.Name())
	}
	if got, want := len(restored.Elements()), len(orig.Elements()); got != want {
		t.Errorf("view element count = %d, want %d", got, want)
	}
	for i, ev := range restored.Elements() {
		if want := orig.Elements()[i].Element.ID(); ev.Element.ID() != want {
			t.Errorf("view element[%d] = %s, want %s", i, ev.Element.ID(), want)
		}
	}
	// The pruned neighbor-to-neighbor relationships must stay pruned.
	if got, want := len(restored.Relationships()), len(orig.Relationships()); got != want {
		t.Errorf("view relationship count = %d, want %d", got, want)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	w := buildWorkspace(t)
	if got := len(w.Views()[0].State().RemovedRelIDs); got < 2 {
		t.Fatalf("removed relationship count = %d, want at least 2", got)
	}

	first, err := Marshal(w)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := Marshal(w)
		if err != nil {
			t.Fatalf("Marshal: %v", err)
		}
		if !bytes.Equal(first, next) {
			t.Fatal("repeated marshals differ")
		}
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"Malformed", `{`, "decode"},
		{"EmptyName", `{"name":""}`, "name"},
		{
			"DanglingRelationship",
			`{"name":"w","relationships":[{"id":"r","sourceId":"x","destinationId":"y"}]}`,
			"unknown source",
		},
		{
			"DuplicateElementID",
			`{"name":"w","people":[{"id":"p","name":"A"},{"id":"p","name":"B"}]}`,
			"duplicate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.json))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestFileRoundTrip(t *testing.T) {
	w := buildWorkspace(t)
	path := filepath.Join(t.TempDir(), "bank.json")

	if err := WriteFile(w, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
	back, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if back.Name != w.Name {
		t.Errorf("Name = %q, want %q", back.Name, w.Name)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
