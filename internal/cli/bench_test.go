package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/concatimg/pkg/layout"
)

func TestRunBench(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writePNG(t, dir, "a.png", 8, 3, 10),
		writePNG(t, dir, "b.png", 8, 5, 20),
	}

	results, err := runBench(context.Background(), benchStrategies(2), paths, 3)
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}

	names := []string{"fast", "copy", "decode+stack"}
	if len(results) != len(names) {
		t.Fatalf("got %d results, want %d", len(results), len(names))
	}
	for i, r := range results {
		if r.name != names[i] {
			t.Errorf("results[%d].name = %q, want %q", i, r.name, names[i])
		}
		if r.iterations != 3 {
			t.Errorf("%s: iterations = %d, want 3", r.name, r.iterations)
		}
		if r.size != (layout.Size{Width: 8, Height: 8}) {
			t.Errorf("%s: size = %v, want 8x8", r.name, r.size)
		}
		if r.average() > r.total {
			t.Errorf("%s: average %v exceeds total %v", r.name, r.average(), r.total)
		}
	}
}

func TestRunBenchCancelled(t *testing.T) {
	dir := t.TempDir()
	paths := []string{writePNG(t, dir, "a.png", 2, 2, 1)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := runBench(ctx, benchStrategies(1), paths, 5); err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSameWidth(t *testing.T) {
	tests := []struct {
		sizes []layout.Size
		want  bool
	}{
		{nil, true},
		{[]layout.Size{{Width: 4, Height: 1}}, true},
		{[]layout.Size{{Width: 4, Height: 1}, {Width: 4, Height: 9}}, true},
		{[]layout.Size{{Width: 4, Height: 1}, {Width: 5, Height: 1}}, false},
	}
	for _, tt := range tests {
		if got := sameWidth(tt.sizes); got != tt.want {
			t.Errorf("sameWidth(%v) = %v, want %v", tt.sizes, got, tt.want)
		}
	}
}

func TestBenchCommand(t *testing.T) {
	dir := t.TempDir()
	a := writePNG(t, dir, "a.png", 6, 2, 1)
	b := writePNG(t, dir, "b.png", 4, 2, 2)

	c, out := newTestCLI(t)
	root := c.RootCommand()
	root.SetArgs([]string{"bench", a, b, "-n", "2"})
	if err := root.Execute(); err != nil {
		t.Fatalf("bench: %v", err)
	}
	for _, s := range []string{"fast", "copy", "decode+stack", "6x4"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("output missing %q:\n%s", s, out.String())
		}
	}
}

func TestWriteBenchTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeBenchTable(&buf, []benchResult{{name: "fast", iterations: 4, size: layout.Size{Width: 1, Height: 2}}})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Strategy") || !strings.Contains(buf.String(), "1x2") {
		t.Errorf("table = %q", buf.String())
	}
}
