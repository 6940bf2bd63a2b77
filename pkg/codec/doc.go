// Package codec opens, peeks, decodes, and encodes image files.
//
// # Overview
//
// The concatenation engine never decodes pixels itself. It talks to a
// [Codec], which hands out a [Handle] per input file. A handle knows the
// image dimensions as soon as it is opened (only the header is read), and
// decodes the full pixel data on demand straight into a caller-supplied
// byte range:
//
//	h, err := codec.Default().Open("1.png")
//	size := h.Size()                  // header only
//	dst := canvas.Rows(y, y+size.Height)
//	err = h.DecodeInto(dst, raster.RGB8)
//
// # Supported Formats
//
// Decoding: PNG, JPEG, GIF (standard library), BMP, TIFF, and WebP
// (golang.org/x/image). Encoding: PNG, JPEG, BMP, and TIFF.
//
// # Persistence
//
// [Save] writes through a temporary file in the destination directory and
// renames it into place, so a failed encode never leaves a partial file.
package codec
