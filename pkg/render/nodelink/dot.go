package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/archview/archview/pkg/model"
	"github.com/archview/archview/pkg/view"
)

// Options configures component-view rendering.
type Options struct {
	// Detailed includes technology labels and descriptions in nodes.
	// When false, only the element name is shown.
	Detailed bool
}

// ToDOT converts a composed component view to Graphviz DOT. The resulting
// string can be rendered with [RenderSVG] or [RenderPNG].
//
// Components of the focus container are drawn filled; elements discovered
// through dependency expansion keep a plain outline. Node shapes follow
// element kind: ellipses for people, 3D boxes for software systems and
// containers, rounded boxes for components.
func ToDOT(v *view.ComponentView, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  label=%q;\n", v.Name())
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	focusID := v.ContainerID()
	for _, ev := range v.Elements() {
		attrs := nodeAttrs(ev.Element, focusID, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", ev.Element.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, rv := range v.Relationships() {
		r := rv.Relationship
		if label := edgeLabel(r, opts.Detailed); label != "" {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", r.Source().ID(), r.Destination().ID(), label)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", r.Source().ID(), r.Destination().ID())
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(e model.Element, focusID string, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", nodeLabel(e, detailed))}

	switch e := e.(type) {
	case *model.Person:
		attrs = append(attrs, "shape=ellipse")
	case *model.SoftwareSystem:
		attrs = append(attrs, "shape=box3d")
	case *model.Container:
		attrs = append(attrs, "shape=box3d", "style=\"rounded\"")
	case *model.Component:
		if e.ContainerID() == focusID {
			attrs = append(attrs, "shape=box", "style=\"rounded,filled\"", "fillcolor=lightblue")
		} else {
			attrs = append(attrs, "shape=box", "style=\"rounded\"")
		}
	default:
		attrs = append(attrs, "shape=box")
	}
	return attrs
}

func nodeLabel(e model.Element, detailed bool) string {
	if !detailed {
		return e.Name()
	}
	parts := []string{e.Name()}
	switch e := e.(type) {
	case *model.Container:
		if e.Technology() != "" {
			parts = append(parts, "["+e.Technology()+"]")
		}
	case *model.Component:
		if e.Technology() != "" {
			parts = append(parts, "["+e.Technology()+"]")
		}
	}
	if e.Description() != "" {
		parts = append(parts, e.Description())
	}
	return strings.Join(parts, "\n")
}

func edgeLabel(r *model.Relationship, detailed bool) string {
	if !detailed {
		return r.Description()
	}
	if r.Technology() != "" && r.Description() != "" {
		return r.Description() + "\n[" + r.Technology() + "]"
	}
	if r.Technology() != "" {
		return "[" + r.Technology() + "]"
	}
	return r.Description()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG, nil)
}

func render(dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the svg tag so the diagram scales to its
// container instead of using Graphviz's fixed point sizes.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
