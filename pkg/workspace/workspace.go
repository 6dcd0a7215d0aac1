// Package workspace bundles an architecture model with its component views
// and provides the canonical JSON document format used for files, the HTTP
// API, and Mongo storage.
package workspace

import (
	"errors"

	"github.com/archview/archview/pkg/model"
	"github.com/archview/archview/pkg/view"
)

var (
	// ErrEmptyName is returned by [New] when the workspace name is empty.
	ErrEmptyName = errors.New("workspace name must not be empty")

	// ErrContainerNotFound is returned when a container lookup by name
	// finds no match.
	ErrContainerNotFound = errors.New("container not found")
)

// Workspace is the top-level unit of storage: one model plus the views
// composed over it.
type Workspace struct {
	Name        string
	Description string
	Model       *model.Model

	views []*view.ComponentView
}

// New creates an empty workspace with a fresh model.
func New(name, description string) (*Workspace, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Workspace{Name: name, Description: description, Model: model.New()}, nil
}

// AddComponentView creates a component view bound to the given container
// and registers it with the workspace.
func (w *Workspace) AddComponentView(c *model.Container, description string) (*view.ComponentView, error) {
	v, err := view.NewComponentView(w.Model, c, description)
	if err != nil {
		return nil, err
	}
	w.views = append(w.views, v)
	return v, nil
}

// Views returns the registered views in creation order.
// The returned slice should not be modified.
func (w *Workspace) Views() []*view.ComponentView { return w.views }

// ViewForContainer returns the first registered view focused on the given
// container ID, or nil if none exists.
func (w *Workspace) ViewForContainer(containerID string) *view.ComponentView {
	for _, v := range w.views {
		if v.ContainerID() == containerID {
			return v
		}
	}
	return nil
}

// FindContainer looks up a container by name across all software systems.
func (w *Workspace) FindContainer(name string) (*model.Container, error) {
	for _, sys := range w.Model.SoftwareSystems() {
		for _, c := range sys.Containers() {
			if c.Name() == name {
				return c, nil
			}
		}
	}
	return nil, ErrContainerNotFound
}

// Containers returns every container across all software systems, in model
// order. Used by the CLI picker and API listings.
func (w *Workspace) Containers() []*model.Container {
	var out []*model.Container
	for _, sys := range w.Model.SoftwareSystems() {
		out = append(out, sys.Containers()...)
	}
	return out
}
