// Package render draws diagrams of concatenation layouts.
//
// Diagrams are produced from a [layout.Plan] alone, so they only need image
// headers, never pixel data. The [plandot] subpackage emits Graphviz DOT and
// renders it to SVG:
//
//	plan, _ := policy.Plan(sizes)
//	dot := plandot.ToDOT(plan, plandot.Options{Labels: paths})
//	svg, err := plandot.RenderSVG(dot)
//
// [layout.Plan]: github.com/matzehuels/concatimg/pkg/layout.Plan
package render
