package loader

import (
	stderrors "errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/concatimg/pkg/compose"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/raster"
)

func TestLoadColumns(t *testing.T) {
	c := newMemCodec()
	var paths []string
	var images []*raster.Image
	for i := 0; i < 7; i++ {
		p := fmt.Sprintf("img%d", i)
		images = append(images, c.add(p, 10+i, 4, byte(i*30)))
		paths = append(paths, p)
	}

	canvas, err := New(WithCodec(c)).LoadColumns(paths, 3)
	if err != nil {
		t.Fatalf("LoadColumns() error = %v", err)
	}
	want, err := compose.Columns(images, 3, compose.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !canvas.Equal(want) {
		t.Error("LoadColumns() differs from compose.Columns")
	}
	// Columns [3,2,2]: widest per column 12, 14, 16.
	if canvas.Width() != 12+14+16 || canvas.Height() != 12 {
		t.Errorf("canvas = %dx%d, want 42x12", canvas.Width(), canvas.Height())
	}
}

func TestLoadColumnsMoreColumnsThanImages(t *testing.T) {
	c := newMemCodec()
	a := c.add("a", 20, 10, 5)

	canvas, err := New(WithCodec(c)).LoadColumns([]string{"a"}, 2)
	if err != nil {
		t.Fatalf("LoadColumns() error = %v", err)
	}
	if !canvas.Equal(a) {
		t.Error("single image in two columns should produce the image itself")
	}
}

func TestLoadColumnsZeroBeforeIO(t *testing.T) {
	for _, columns := range []int{0, -1} {
		c := newMemCodec()
		c.add("a", 1, 1, 0)

		_, err := New(WithCodec(c)).LoadColumns([]string{"a", "missing"}, columns)
		if !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("columns=%d: error = %v, want INVALID_ARGUMENT", columns, err)
		}
		if c.opens != 0 {
			t.Errorf("columns=%d: %d files opened before validation", columns, c.opens)
		}
	}
}

func TestLoadColumnsDecodeErrorIndex(t *testing.T) {
	c := newMemCodec()
	paths := []string{"a", "b", "c", "d", "e"}
	for _, p := range paths {
		c.add(p, 4, 4, 0)
	}
	c.badPixels["e"] = true

	_, err := New(WithCodec(c)).LoadColumns(paths, 2)
	var derr *errors.DecodeError
	if !stderrors.As(err, &derr) {
		t.Fatalf("error = %v, want DecodeError", err)
	}
	if derr.Index != 4 {
		t.Errorf("Index = %d, want 4 (position in the full input)", derr.Index)
	}
}

func TestLoadColumnsFromFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i, w := range []int{6, 6, 9, 3} {
		paths = append(paths, writeSolidPNG(t, dir, fmt.Sprintf("%d.png", i), w, 2, uint8(50*i)))
	}

	l := New()
	canvas, err := l.LoadColumns(paths, 2)
	if err != nil {
		t.Fatalf("LoadColumns() error = %v", err)
	}
	images, err := l.LoadImages(paths)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := compose.Columns(images, 2, compose.Options{})
	if !canvas.Equal(want) {
		t.Error("file-backed LoadColumns() differs from decode-then-compose")
	}
}

func writeSolidPNG(t *testing.T, dir, name string, w, h int, v uint8) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: uint8(x), B: uint8(y), A: 0xff})
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}
