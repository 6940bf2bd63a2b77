// Package loader reads image files straight into a concatenated canvas.
//
// # Fast Path
//
// [Loader.LoadVertical] opens every file and peeks its header before any
// pixel data is decoded. Once the canvas size is known it is allocated exactly
// once, and when every image is as wide as the canvas each image is decoded
// directly into its contiguous row range of the canvas. No owned per-image
// raster is allocated and the compositor copy is skipped. The standard library
// decoders still build their own image.Image, which is converted into the row
// range and then dropped.
//
// Declared dimensions are checked against [raster.MaxBytes] for every image
// and for the canvas before anything is allocated, so a crafted header fails
// with an error instead of an oversized allocation.
//
// Decoding raw bytes into a row range is only correct when the image stride
// equals the canvas stride. If any image is narrower than the widest one, the
// loader falls back to the general path: each image is decoded into an owned
// buffer and copied row by row by the compositor.
//
// # Columns
//
// [Loader.LoadColumns] splits the input into contiguous column slices with
// [layout.ColumnRanges], stacks each slice with LoadVertical, and joins the
// column canvases horizontally. The column count is validated before any file
// is opened.
//
// # Failure
//
// Every operation either returns a complete canvas or an error. A file that
// cannot be opened is reported as *errors.PathOpenError; a bad header or
// pixel stream as *errors.DecodeError carrying the index of the image in the
// caller's input order. A partially written canvas is never returned.
package loader
