// Package layout plans where each source image lands in a concatenated canvas.
//
// # Overview
//
// The planner is pure: it works on image sizes only, never on pixels, and
// performs no I/O. Given an ordered list of [Size] values and a [Policy], it
// produces a [Plan] holding the canvas dimensions and one [Placement] per
// input, in input order.
//
// Three policies are available:
//
//   - Vertical: images stacked top to bottom. The canvas is as wide as the
//     widest image and as tall as the sum of heights.
//   - Horizontal: images placed left to right. The canvas is as wide as the
//     sum of widths and as tall as the tallest image.
//   - Columns(n): images split into n contiguous groups, each stacked
//     vertically, with the groups placed left to right.
//
// # Column Distribution
//
// [PlanColumns] distributes N images over C columns remainder-first: the
// first N mod C columns receive one extra image. Column boundaries are always
// derived from those sizes arithmetically ([ColumnRanges]); trailing columns
// that receive no images are skipped and leave no gap.
//
//	sizes, _ := layout.PlanColumns(7, 3) // [3 2 2]
//
// # Guarantees
//
// Placements never overlap, preserve input order, and the canvas bounds
// their union exactly. Zero-width or zero-height inputs contribute nothing
// to the canvas but still receive a placement.
package layout
