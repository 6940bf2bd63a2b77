package raster

import (
	"image"
	"image/color"
)

// putPixel stores c into px using the layout of format f.
func putPixel(px []byte, f Format, c color.Color) {
	switch f {
	case Gray8:
		px[0] = color.GrayModel.Convert(c).(color.Gray).Y
	case RGBA8:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		px[0], px[1], px[2], px[3] = n.R, n.G, n.B, n.A
	default:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		px[0], px[1], px[2] = n.R, n.G, n.B
	}
}

// FromImage converts any decoded image into a new buffer of format f.
func FromImage(src image.Image, f Format) (*Image, error) {
	b := src.Bounds()
	out, err := New(b.Dx(), b.Dy(), f)
	if err != nil {
		return nil, err
	}
	if err := WriteInto(out.pix, src, f); err != nil {
		return nil, err
	}
	return out, nil
}

// WriteInto converts src into dst as tightly packed rows of format f.
// dst must be exactly f.RowBytes(width)*height bytes long. This is the
// "decode into a destination byte range" primitive: dst is usually a slice
// of a larger canvas.
func WriteInto(dst []byte, src image.Image, f Format) error {
	if !f.IsValid() {
		return ErrInvalidFormat
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := f.RowBytes(w)
	if len(dst) != stride*h {
		return ErrDataSize
	}

	switch s := src.(type) {
	case *Image:
		if s.format == f {
			copy(dst, s.pix)
			return nil
		}
	case *image.NRGBA:
		if f == RGBA8 {
			for y := 0; y < h; y++ {
				off := s.PixOffset(b.Min.X, b.Min.Y+y)
				copy(dst[y*stride:(y+1)*stride], s.Pix[off:off+w*4])
			}
			return nil
		}
		if f == RGB8 {
			for y := 0; y < h; y++ {
				row := dst[y*stride : (y+1)*stride]
				off := s.PixOffset(b.Min.X, b.Min.Y+y)
				for x := 0; x < w; x++ {
					copy(row[x*3:x*3+3], s.Pix[off+x*4:off+x*4+3])
				}
			}
			return nil
		}
	case *image.Gray:
		if f == Gray8 {
			for y := 0; y < h; y++ {
				off := s.PixOffset(b.Min.X, b.Min.Y+y)
				copy(dst[y*stride:(y+1)*stride], s.Pix[off:off+w])
			}
			return nil
		}
	}

	bpp := f.BytesPerPixel()
	for y := 0; y < h; y++ {
		row := dst[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			putPixel(row[x*bpp:(x+1)*bpp], f, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return nil
}

// ToStd copies m into the closest standard library image type, which the
// stdlib and x/image encoders handle without per-pixel interface calls.
func ToStd(m *Image) image.Image {
	r := m.Bounds()
	switch m.format {
	case Gray8:
		out := image.NewGray(r)
		copy(out.Pix, m.pix)
		return out
	case RGBA8:
		out := image.NewNRGBA(r)
		copy(out.Pix, m.pix)
		return out
	default:
		out := image.NewRGBA(r)
		for i, j := 0, 0; i < len(m.pix); i, j = i+3, j+4 {
			out.Pix[j] = m.pix[i]
			out.Pix[j+1] = m.pix[i+1]
			out.Pix[j+2] = m.pix[i+2]
			out.Pix[j+3] = 0xff
		}
		return out
	}
}
