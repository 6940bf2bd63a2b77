// Package plandot renders layout plans as Graphviz diagrams.
//
// Every placed image becomes a box labelled with its input index, name,
// size, and canvas offset. Images of one column are grouped in a cluster and
// chained top to bottom in stacking order; clusters are ordered left to
// right. A horizontal stack is a single row.
package plandot

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/concatimg/pkg/layout"
)

// Options configures diagram output.
type Options struct {
	// Labels names each input by index, typically the file paths.
	// Only the base name is shown. Missing labels fall back to "#i".
	Labels []string

	// Direction is the stacking axis of a plain stack. Column plans are
	// always drawn top to bottom.
	Direction layout.Direction
}

// ToDOT converts a plan to Graphviz DOT.
func ToDOT(plan layout.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	if opts.Direction == layout.Horizontal && plan.Columns() <= 1 {
		buf.WriteString("  rankdir=LR;\n")
	} else {
		buf.WriteString("  rankdir=TB;\n")
	}
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", fmt.Sprintf("canvas %s", plan.Size()))
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")

	columns := groupColumns(plan.Placements)
	for c, col := range columns {
		if len(columns) > 1 {
			fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", c)
			fmt.Fprintf(&buf, "    label=%q;\n", fmt.Sprintf("column %d", c))
			buf.WriteString("    style=dashed;\n")
		} else {
			buf.WriteString("\n  {\n")
		}
		for _, p := range col {
			fmt.Fprintf(&buf, "    %s [label=%q];\n", nodeID(p.Index), nodeLabel(p, opts.Labels))
		}
		for i := 1; i < len(col); i++ {
			fmt.Fprintf(&buf, "    %s -> %s;\n", nodeID(col[i-1].Index), nodeID(col[i].Index))
		}
		buf.WriteString("  }\n")
	}

	if len(columns) > 1 {
		heads := make([]string, len(columns))
		for c, col := range columns {
			heads[c] = nodeID(col[0].Index)
		}
		fmt.Fprintf(&buf, "\n  { rank=same; %s; }\n", strings.Join(heads, "; "))
		for c := 1; c < len(heads); c++ {
			fmt.Fprintf(&buf, "  %s -> %s [style=invis];\n", heads[c-1], heads[c])
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// groupColumns splits placements into runs of equal Column, in order.
func groupColumns(placements []layout.Placement) [][]layout.Placement {
	var columns [][]layout.Placement
	for i, p := range placements {
		if i == 0 || p.Column != placements[i-1].Column {
			columns = append(columns, nil)
		}
		columns[len(columns)-1] = append(columns[len(columns)-1], p)
	}
	return columns
}

func nodeID(index int) string {
	return fmt.Sprintf("img%d", index)
}

func nodeLabel(p layout.Placement, labels []string) string {
	name := fmt.Sprintf("#%d", p.Index)
	if p.Index < len(labels) && labels[p.Index] != "" {
		name = fmt.Sprintf("#%d %s", p.Index, filepath.Base(labels[p.Index]))
	}
	return fmt.Sprintf("%s\n%s @ (%d,%d)", name, p.Size, p.X, p.Y)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
