package codec

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// Handle is an opened image whose header has been read but whose pixels
// have not been decoded yet.
type Handle interface {
	// Path returns the file the handle was opened from.
	Path() string

	// Size returns the declared pixel dimensions.
	Size() layout.Size

	// Kind returns the container format name, e.g. "png".
	Kind() string

	// RawLen returns the number of bytes DecodeInto writes for format f.
	RawLen(f raster.Format) int

	// DecodeInto decodes the full image into dst as tightly packed rows of
	// format f. len(dst) must equal RawLen(f). A handle decodes at most once.
	DecodeInto(dst []byte, f raster.Format) error

	// Close releases the underlying file.
	Close() error
}

// Codec is the image codec collaborator.
type Codec interface {
	// Open opens path and reads its header. A missing or unreadable file is
	// reported as *errors.PathOpenError; a bad header as any other error.
	Open(path string) (Handle, error)

	// Decode opens and fully decodes path into an owned image of format f.
	Decode(path string, f raster.Format) (*raster.Image, error)
}

// Default returns the file-system codec backed by the registered decoders.
func Default() Codec { return fileCodec{} }

type fileCodec struct{}

func (fileCodec) Open(path string) (Handle, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &errors.PathOpenError{Path: path, Cause: err}
	}

	cfg, kind, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(cfg); err != nil {
		_ = f.Close()
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, &errors.PathOpenError{Path: path, Cause: err}
	}

	return &fileHandle{
		path: path,
		file: f,
		kind: kind,
		size: layout.Size{Width: cfg.Width, Height: cfg.Height},
	}, nil
}

func (fileCodec) Decode(path string, format raster.Format) (*raster.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, &errors.PathOpenError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	cfg, _, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkHeader(cfg); err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &errors.PathOpenError{Path: path, Cause: err}
	}

	img, _, err := image.Decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return raster.FromImage(img, format)
}

// checkHeader rejects declared dimensions whose pixels could not be held in
// the widest raster format. The standard decoders allocate from the header
// before reading any pixel data.
func checkHeader(cfg image.Config) error {
	if err := raster.CheckSize(cfg.Width, cfg.Height, raster.RGBA8); err != nil {
		return fmt.Errorf("read header: %dx%d: %w", cfg.Width, cfg.Height, err)
	}
	return nil
}

type fileHandle struct {
	path    string
	file    *os.File
	kind    string
	size    layout.Size
	decoded bool
}

func (h *fileHandle) Path() string      { return h.path }
func (h *fileHandle) Size() layout.Size { return h.size }
func (h *fileHandle) Kind() string      { return h.kind }

func (h *fileHandle) RawLen(f raster.Format) int {
	return f.RowBytes(h.size.Width) * h.size.Height
}

func (h *fileHandle) DecodeInto(dst []byte, f raster.Format) error {
	if h.decoded {
		return fmt.Errorf("decode: handle for %s already consumed", h.path)
	}
	h.decoded = true

	if len(dst) != h.RawLen(f) {
		return fmt.Errorf("decode: destination is %d bytes, image needs %d", len(dst), h.RawLen(f))
	}
	img, _, err := image.Decode(bufio.NewReader(h.file))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if b := img.Bounds(); b.Dx() != h.size.Width || b.Dy() != h.size.Height {
		return fmt.Errorf("decode: header declared %s, pixel data is %dx%d", h.size, b.Dx(), b.Dy())
	}
	return raster.WriteInto(dst, img, f)
}

func (h *fileHandle) Close() error {
	return h.file.Close()
}

// Peek opens path, reads its size, and closes it again.
func Peek(c Codec, path string) (layout.Size, error) {
	h, err := c.Open(path)
	if err != nil {
		return layout.Size{}, err
	}
	defer func() { _ = h.Close() }()
	return h.Size(), nil
}
