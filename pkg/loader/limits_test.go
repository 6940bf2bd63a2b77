package loader

import (
	"encoding/binary"
	stderrors "errors"
	"hash/crc32"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// writeHeaderPNG writes a PNG that has only a signature and an IHDR chunk
// declaring a w x h 8-bit RGB image. Decoding its config succeeds; decoding
// pixels does not.
func writeHeaderPNG(t *testing.T, dir, name string, w, h uint32) string {
	t.Helper()
	ihdr := make([]byte, 0, 17)
	ihdr = append(ihdr, "IHDR"...)
	ihdr = binary.BigEndian.AppendUint32(ihdr, w)
	ihdr = binary.BigEndian.AppendUint32(ihdr, h)
	ihdr = append(ihdr, 8, 2, 0, 0, 0)

	data := []byte("\x89PNG\r\n\x1a\n")
	data = binary.BigEndian.AppendUint32(data, 13)
	data = append(data, ihdr...)
	data = binary.BigEndian.AppendUint32(data, crc32.ChecksumIEEE(ihdr))

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOversizedHeaderIsDecodeError(t *testing.T) {
	dir := t.TempDir()
	small := writeSolidPNG(t, dir, "small.png", 4, 2, 1)
	huge := writeHeaderPNG(t, dir, "huge.png", 1<<29, 1<<30)
	paths := []string{small, huge}

	loads := map[string]func(l *Loader) error{
		"vertical": func(l *Loader) error {
			_, err := l.LoadVertical(paths)
			return err
		},
		"horizontal": func(l *Loader) error {
			_, err := l.LoadHorizontal(paths)
			return err
		},
		"columns": func(l *Loader) error {
			_, err := l.LoadColumns(paths, 2)
			return err
		},
		"images": func(l *Loader) error {
			_, err := l.LoadImages(paths)
			return err
		},
	}

	for name, load := range loads {
		for _, workers := range []int{1, 4} {
			err := load(New(WithWorkers(workers)))
			var derr *errors.DecodeError
			if !stderrors.As(err, &derr) {
				t.Fatalf("%s workers=%d: error = %v, want DecodeError", name, workers, err)
			}
			if derr.Index != 1 || derr.Path != huge {
				t.Errorf("%s workers=%d: DecodeError = #%d %q, want #1 %q", name, workers, derr.Index, derr.Path, huge)
			}
			if !stderrors.Is(err, raster.ErrTooLarge) {
				t.Errorf("%s workers=%d: error = %v, want it to wrap ErrTooLarge", name, workers, err)
			}
		}
	}
}

func TestOversizedCanvasRejectedBeforeAllocation(t *testing.T) {
	dir := t.TempDir()
	// Each image fits on its own; stacked they exceed raster.MaxBytes.
	a := writeHeaderPNG(t, dir, "a.png", 1<<15, 1<<15)
	b := writeHeaderPNG(t, dir, "b.png", 1<<15, 1<<15)

	canvas, err := New().LoadVertical([]string{a, b})
	if canvas != nil {
		t.Error("canvas returned on failure")
	}
	if !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("LoadVertical() error = %v, want INVALID_ARGUMENT", err)
	}
	if !stderrors.Is(err, raster.ErrTooLarge) {
		t.Errorf("LoadVertical() error = %v, want it to wrap ErrTooLarge", err)
	}
}
