package layout

import "github.com/matzehuels/concatimg/pkg/errors"

// Range is a half-open index range [Start, End) into the input sequence.
type Range struct {
	Start, End int
}

// Len returns the number of images in the range.
func (r Range) Len() int { return r.End - r.Start }

// PlanColumns distributes n images over columns remainder-first.
//
// With base = n / columns and rem = n % columns, the first rem columns get
// base+1 images and the rest get base. The sizes always sum to n, differ by
// at most one, and never increase with column index. When columns > n the
// trailing sizes are zero.
func PlanColumns(n, columns int) ([]int, error) {
	if err := errors.ValidateColumns(columns); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.InvalidArgument("image count must be >= 0, got %d", n)
	}
	base, rem := n/columns, n%columns
	sizes := make([]int, columns)
	for i := range sizes {
		sizes[i] = base
		if i < rem {
			sizes[i]++
		}
	}
	return sizes, nil
}

// ColumnRanges returns the contiguous input range of every non-empty column.
// Column 0 takes the first sizes[0] images, column 1 the next sizes[1], and
// so on; there is no interleaving. Zero-size columns are omitted, so the
// result never reads past the end of the input.
func ColumnRanges(n, columns int) ([]Range, error) {
	sizes, err := PlanColumns(n, columns)
	if err != nil {
		return nil, err
	}
	ranges := make([]Range, 0, min(n, columns))
	start := 0
	for _, size := range sizes {
		if size == 0 {
			continue
		}
		ranges = append(ranges, Range{Start: start, End: start + size})
		start += size
	}
	return ranges, nil
}

// PlanColumnLayout places images in vertical columns read top-to-bottom,
// then left-to-right.
//
// Each non-empty column is planned with [PlanStack] (Vertical) and shifted
// right by the summed widths of the previous columns. A column contributes
// its widest image to that sum. The canvas is as wide as all column widths
// together and as tall as the tallest column. The result equals a horizontal
// stack of the per-column vertical canvases without materialising them.
func PlanColumnLayout(sizes []Size, columns int) (Plan, error) {
	ranges, err := ColumnRanges(len(sizes), columns)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Placements: make([]Placement, 0, len(sizes))}
	for col, r := range ranges {
		sub := planStackAt(sizes[r.Start:r.End], Vertical, r.Start, plan.Width, 0)
		for _, pl := range sub.Placements {
			pl.Column = col
			plan.Placements = append(plan.Placements, pl)
		}
		plan.Width += sub.Width
		plan.Height = max(plan.Height, sub.Height)
	}
	return plan, nil
}

// ColumnSizes returns the canvas size of every non-empty column in a column layout.
func ColumnSizes(sizes []Size, columns int) ([]Size, error) {
	ranges, err := ColumnRanges(len(sizes), columns)
	if err != nil {
		return nil, err
	}
	out := make([]Size, len(ranges))
	for i, r := range ranges {
		out[i] = PlanStack(sizes[r.Start:r.End], Vertical).Size()
	}
	return out, nil
}
