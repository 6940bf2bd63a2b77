package plandot

import (
	"strings"
	"testing"

	"github.com/matzehuels/concatimg/pkg/layout"
)

func sizes(dims ...int) []layout.Size {
	out := make([]layout.Size, 0, len(dims)/2)
	for i := 0; i+1 < len(dims); i += 2 {
		out = append(out, layout.Size{Width: dims[i], Height: dims[i+1]})
	}
	return out
}

func TestToDOTStack(t *testing.T) {
	plan := layout.PlanStack(sizes(100, 50, 100, 50), layout.Vertical)
	dot := ToDOT(plan, Options{Labels: []string{"dir/a.png", "dir/b.png"}})

	for _, want := range []string{
		"digraph plan {",
		"rankdir=TB;",
		`label="canvas 100x100"`,
		`img0 [label="#0 a.png\n100x50 @ (0,0)"]`,
		`img1 [label="#1 b.png\n100x50 @ (0,50)"]`,
		"img0 -> img1;",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "cluster_") {
		t.Error("a single stack should not be clustered")
	}
}

func TestToDOTHorizontal(t *testing.T) {
	plan := layout.PlanStack(sizes(10, 5, 20, 5), layout.Horizontal)
	dot := ToDOT(plan, Options{Direction: layout.Horizontal})
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("horizontal stack should be drawn left to right")
	}
	if !strings.Contains(dot, `"#1\n20x5 @ (10,0)"`) {
		t.Errorf("unlabelled inputs should fall back to the index:\n%s", dot)
	}
}

func TestToDOTColumns(t *testing.T) {
	plan, err := layout.PlanColumnLayout(sizes(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1), 3)
	if err != nil {
		t.Fatal(err)
	}
	dot := ToDOT(plan, Options{})

	for _, want := range []string{
		"subgraph cluster_0",
		"subgraph cluster_2",
		`label="column 1"`,
		"img0 -> img1;",
		"img1 -> img2;",
		"img3 -> img4;",
		"{ rank=same; img0; img3; img5; }",
		"img0 -> img3 [style=invis];",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "img2 -> img3;") {
		t.Error("images in different columns should not be chained")
	}
}

func TestToDOTEmpty(t *testing.T) {
	dot := ToDOT(layout.PlanStack(nil, layout.Vertical), Options{})
	if !strings.Contains(dot, `label="canvas 0x0"`) || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty plan DOT malformed:\n%s", dot)
	}
}
