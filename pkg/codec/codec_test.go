package codec

import (
	"encoding/binary"
	stderrors "errors"
	"hash/crc32"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

func TestOpenPeeksHeader(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 7, 3, 9)

	h, err := Default().Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Close()

	if h.Size() != (layout.Size{Width: 7, Height: 3}) {
		t.Errorf("Size() = %v, want 7x3", h.Size())
	}
	if h.Kind() != "png" {
		t.Errorf("Kind() = %q, want png", h.Kind())
	}
	if got := h.RawLen(raster.RGB8); got != 7*3*3 {
		t.Errorf("RawLen(RGB8) = %d, want %d", got, 7*3*3)
	}
}

func TestDecodeIntoSlice(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 4, 2, 77)
	h, err := Default().Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Close()

	// Decode into the middle of a larger buffer.
	buf := make([]byte, 10+h.RawLen(raster.RGB8)+10)
	dst := buf[10 : 10+h.RawLen(raster.RGB8)]
	if err := h.DecodeInto(dst, raster.RGB8); err != nil {
		t.Fatalf("DecodeInto() error = %v", err)
	}
	// Pixel (3, 1) is (3, 1, 77).
	off := (1*4 + 3) * 3
	if dst[off] != 3 || dst[off+1] != 1 || dst[off+2] != 77 {
		t.Errorf("pixel (3,1) = %v, want [3 1 77]", dst[off:off+3])
	}
	for _, i := range []int{0, 9, len(buf) - 1} {
		if buf[i] != 0 {
			t.Fatalf("byte %d outside destination was written", i)
		}
	}

	if err := h.DecodeInto(dst, raster.RGB8); err == nil {
		t.Error("second DecodeInto() should fail")
	}
}

func TestDecodeIntoWrongLength(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 2, 2, 0)
	h, err := Default().Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Close()
	if err := h.DecodeInto(make([]byte, 5), raster.RGB8); err == nil {
		t.Error("DecodeInto() with a short buffer should fail")
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Default().Open(filepath.Join(t.TempDir(), "missing.png"))
	var perr *errors.PathOpenError
	if !stderrors.As(err, &perr) {
		t.Fatalf("Open() error = %v, want PathOpenError", err)
	}
	if !stderrors.Is(err, os.ErrNotExist) {
		t.Error("PathOpenError should wrap os.ErrNotExist")
	}
}

func TestOpenGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Default().Open(path)
	if err == nil {
		t.Fatal("Open() on garbage should fail")
	}
	var perr *errors.PathOpenError
	if stderrors.As(err, &perr) {
		t.Error("bad header should not be reported as a path error")
	}
}

func TestOpenOversizedHeader(t *testing.T) {
	// Signature and IHDR only, declaring 2^29 x 2^30 8-bit RGB.
	ihdr := binary.BigEndian.AppendUint32([]byte("IHDR"), 1<<29)
	ihdr = binary.BigEndian.AppendUint32(ihdr, 1<<30)
	ihdr = append(ihdr, 8, 2, 0, 0, 0)
	data := binary.BigEndian.AppendUint32([]byte("\x89PNG\r\n\x1a\n"), 13)
	data = append(data, ihdr...)
	data = binary.BigEndian.AppendUint32(data, crc32.ChecksumIEEE(ihdr))

	path := filepath.Join(t.TempDir(), "huge.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Default().Open(path); !stderrors.Is(err, raster.ErrTooLarge) {
		t.Errorf("Open() error = %v, want ErrTooLarge", err)
	}
	if _, err := Default().Decode(path, raster.RGB8); !stderrors.Is(err, raster.ErrTooLarge) {
		t.Errorf("Decode() error = %v, want ErrTooLarge", err)
	}
	if _, err := Peek(Default(), path); !stderrors.Is(err, raster.ErrTooLarge) {
		t.Errorf("Peek() error = %v, want ErrTooLarge", err)
	}
}

func TestDecode(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 5, 4, 1)
	img, err := Default().Decode(path, raster.Gray8)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Width() != 5 || img.Height() != 4 || img.Format() != raster.Gray8 {
		t.Errorf("Decode() = %dx%d %s", img.Width(), img.Height(), img.Format())
	}
}

func TestPeek(t *testing.T) {
	path := writePNG(t, t.TempDir(), "a.png", 11, 13, 1)
	size, err := Peek(Default(), path)
	if err != nil {
		t.Fatalf("Peek() error = %v", err)
	}
	if size.Width != 11 || size.Height != 13 {
		t.Errorf("Peek() = %v, want 11x13", size)
	}
}

func TestOpenJPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := jpeg.Encode(f, image.NewGray(image.Rect(0, 0, 16, 8)), nil); err != nil {
		t.Fatal(err)
	}
	f.Close()

	h, err := Default().Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer h.Close()
	if h.Kind() != "jpeg" || h.Size() != (layout.Size{Width: 16, Height: 8}) {
		t.Errorf("Open() = %s %v", h.Kind(), h.Size())
	}
}
