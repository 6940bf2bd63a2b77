package loader

import (
	"fmt"
	"os"
	"sync"

	"github.com/matzehuels/concatimg/pkg/codec"
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// memCodec serves RGB8 images from memory and counts how they were decoded.
type memCodec struct {
	mu         sync.Mutex
	images     map[string]*raster.Image
	badPixels  map[string]bool
	opens      int
	decodeInto int
	decodes    int
	closes     int
}

func newMemCodec() *memCodec {
	return &memCodec{images: map[string]*raster.Image{}, badPixels: map[string]bool{}}
}

// add registers a w x h image at path whose every byte is v.
func (c *memCodec) add(path string, w, h int, v byte) *raster.Image {
	img, _ := raster.New(w, h, raster.RGB8)
	for i := range img.Pix() {
		img.Pix()[i] = v + byte(i%7)
	}
	c.images[path] = img
	return img
}

func (c *memCodec) Open(path string) (codec.Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.images[path]
	if !ok {
		return nil, &errors.PathOpenError{Path: path, Cause: os.ErrNotExist}
	}
	c.opens++
	return &memHandle{codec: c, path: path, img: img}, nil
}

func (c *memCodec) Decode(path string, f raster.Format) (*raster.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.images[path]
	if !ok {
		return nil, &errors.PathOpenError{Path: path, Cause: os.ErrNotExist}
	}
	if c.badPixels[path] {
		return nil, fmt.Errorf("corrupt pixel data")
	}
	c.decodes++
	return img.Clone(), nil
}

type memHandle struct {
	codec *memCodec
	path  string
	img   *raster.Image
}

func (h *memHandle) Path() string { return h.path }
func (h *memHandle) Size() layout.Size {
	return layout.Size{Width: h.img.Width(), Height: h.img.Height()}
}
func (h *memHandle) Kind() string               { return "mem" }
func (h *memHandle) RawLen(f raster.Format) int { return len(h.img.Pix()) }

func (h *memHandle) DecodeInto(dst []byte, f raster.Format) error {
	h.codec.mu.Lock()
	defer h.codec.mu.Unlock()
	if h.codec.badPixels[h.path] {
		return fmt.Errorf("corrupt pixel data")
	}
	if len(dst) != len(h.img.Pix()) {
		return fmt.Errorf("destination is %d bytes, want %d", len(dst), len(h.img.Pix()))
	}
	h.codec.decodeInto++
	copy(dst, h.img.Pix())
	return nil
}

func (h *memHandle) Close() error {
	h.codec.mu.Lock()
	defer h.codec.mu.Unlock()
	h.codec.closes++
	return nil
}
