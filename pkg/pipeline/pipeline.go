// Package pipeline provides the compose and render pipeline shared by the
// CLI and the HTTP API.
//
// The pipeline has two stages:
//
//  1. Compose: bind a component view to a container, select its components
//     (or all elements), and optionally expand to direct dependencies
//  2. Render: generate output in one or more formats (DOT, SVG, PNG, JSON)
//
// Centralizing this logic keeps behavior identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//
//	opts := pipeline.Options{Container: "API", Expand: true, Formats: []string{"svg"}}
//	v, err := runner.Compose(ctx, ws, opts)
//	if err != nil {
//	    return err
//	}
//	artifacts, err := runner.Render(ctx, v, opts)
package pipeline

import (
	"encoding/json"

	"github.com/archview/archview/pkg/errors"
	"github.com/archview/archview/pkg/view"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatDOT, FormatSVG, FormatPNG, FormatJSON}

// Options contains all configuration for the compose and render pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Container selects the focus container by name.
	Container string `json:"container"`
	// Description is the view description for newly composed views.
	Description string `json:"description,omitempty"`
	// All selects every element in the model instead of just the focus
	// container's components.
	All bool `json:"all,omitempty"`
	// Expand adds direct dependencies after the initial selection.
	Expand bool `json:"expand,omitempty"`
	// Detailed includes technology and description labels in diagrams.
	Detailed bool `json:"detailed,omitempty"`
	// Formats lists the output formats to render.
	Formats []string `json:"formats,omitempty"`
	// Namespace scopes cached artifacts, so evicting one workspace's
	// entries cannot touch another's. Empty disables scoping.
	Namespace string `json:"-"`
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "no output format requested")
	}
	for _, f := range formats {
		if err := errors.ValidateFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	return nil
}

// ViewJSON is the JSON artifact rendered for a composed view: a flat
// listing of its membership, suitable for API responses.
type ViewJSON struct {
	Name          string             `json:"name"`
	Description   string             `json:"description,omitempty"`
	ContainerID   string             `json:"containerId"`
	Elements      []ViewJSONElement  `json:"elements"`
	Relationships []ViewJSONRelation `json:"relationships"`
}

// ViewJSONElement is one element row in a ViewJSON artifact.
type ViewJSONElement struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Kind     string `json:"kind"`
	Explicit bool   `json:"explicit,omitempty"`
}

// ViewJSONRelation is one relationship row in a ViewJSON artifact.
type ViewJSONRelation struct {
	ID          string `json:"id"`
	SourceID    string `json:"sourceId"`
	DestID      string `json:"destinationId"`
	Description string `json:"description,omitempty"`
}

// MarshalView produces the JSON artifact for a composed view.
func MarshalView(v *view.ComponentView) ([]byte, error) {
	out := ViewJSON{
		Name:        v.Name(),
		Description: v.Description(),
		ContainerID: v.ContainerID(),
		Elements:    []ViewJSONElement{},
	}
	for _, ev := range v.Elements() {
		out.Elements = append(out.Elements, ViewJSONElement{
			ID:       ev.Element.ID(),
			Name:     ev.Element.Name(),
			Kind:     ev.Element.Kind().String(),
			Explicit: ev.Explicit,
		})
	}
	out.Relationships = []ViewJSONRelation{}
	for _, rv := range v.Relationships() {
		r := rv.Relationship
		out.Relationships = append(out.Relationships, ViewJSONRelation{
			ID:          r.ID(),
			SourceID:    r.Source().ID(),
			DestID:      r.Destination().ID(),
			Description: r.Description(),
		})
	}
	return json.MarshalIndent(out, "", "  ")
}
