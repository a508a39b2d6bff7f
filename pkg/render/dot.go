// Package render turns a diagram's presentation tree into Graphviz output:
// DOT text for debugging and tooling, SVG or PNG for viewing.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"vellum/pkg/model"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes element ids in node labels.
	// When false, only the subject kind (and comment text) is shown.
	Detailed bool
}

// ToDOT converts a diagram's presentations to Graphviz DOT format. Each
// presentation on the diagram becomes a node; presentation nesting
// (parent/children) becomes the edges. Comment subjects render with their
// body text and a dashed outline.
func ToDOT(diagram *model.Element, opts Options) (string, error) {
	if !diagram.IsKind(model.KindDiagram) {
		return "", fmt.Errorf("element %s is a %s, not a diagram", diagram.ID(), diagram.Kind().Name)
	}
	presentations, err := diagram.Get("ownedPresentation")
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, p := range presentations {
		label, dashed, err := nodeLabel(p, opts.Detailed)
		if err != nil {
			return "", err
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if dashed {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightyellow")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", p.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, p := range presentations {
		children, err := p.Get("children")
		if err != nil {
			return "", err
		}
		for _, c := range children {
			fmt.Fprintf(&buf, "  %q -> %q;\n", p.ID(), c.ID())
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// nodeLabel derives a display label for a presentation from its subject.
func nodeLabel(p *model.Element, detailed bool) (label string, dashed bool, err error) {
	subject, err := p.GetOne("subject")
	if err != nil {
		return "", false, err
	}

	switch {
	case subject == nil:
		label = p.Kind().Name
	case subject.IsKind(model.KindComment):
		body, err := subject.AttrString("body")
		if err != nil {
			return "", false, err
		}
		if body == "" {
			body = model.KindComment
		}
		label = body
		dashed = true
	default:
		label = subject.Kind().Name
	}

	if detailed {
		label += "\n" + shortID(p.ID())
	}
	return label, dashed, nil
}

// shortID truncates a uuid to its first group for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
