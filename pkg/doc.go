// Package pkg provides the core libraries for concatimg image concatenation.
//
// # Overview
//
// concatimg joins a sequence of images into a single canvas. The pkg
// directory is organized bottom-up:
//
//  1. [raster] - Fixed-format pixel buffers and conversion from image.Image
//  2. [layout] - Pure planning: canvas size and per-image offsets
//  3. [compose] - Copying images into a canvas at planned offsets
//  4. [codec] - Opening, decoding, and atomically saving image files
//  5. [loader] - File-backed stacking with the direct-decode fast path
//  6. [concat] - The public entry points for paths and in-memory images
//  7. [pipeline] - Orchestration with caching, timing, and hooks
//
// # Architecture
//
// The typical data flow:
//
//	image files
//	     ↓
//	codec.Open        (read headers: width, height)
//	     ↓
//	layout.Plan       (canvas size, offsets, column split)
//	     ↓
//	loader            (decode straight into canvas rows, or decode then copy)
//	     ↓
//	codec.Encode      (PNG, JPEG, BMP, TIFF)
//	     ↓
//	output file       (written via temp file + rename)
//
// # Supporting Packages
//
//   - [errors] - Coded errors: PathOpenError, DecodeError, InvalidArgument, OutOfBounds
//   - [job] - TOML job files
//   - [cache] - Output cache keyed by input content hashes
//   - [observability] - Pipeline and cache hooks
//   - [render/plandot] - Graphviz diagrams of layout plans
//   - [buildinfo] - Version information
package pkg
