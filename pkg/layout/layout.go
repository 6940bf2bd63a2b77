package layout

import (
	"fmt"
	"strings"

	"github.com/matzehuels/concatimg/pkg/errors"
)

// Size is the pixel extent of an image.
type Size struct {
	Width, Height int
}

// Empty reports whether the size covers no pixels.
func (s Size) Empty() bool { return s.Width == 0 || s.Height == 0 }

// String returns "WxH".
func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Width, s.Height) }

// Point is a canvas coordinate. The origin is the top-left corner.
type Point struct {
	X, Y int
}

// Placement positions one input image on the canvas.
type Placement struct {
	Index  int // position of the image in the input sequence
	Column int // column the image belongs to (always 0 for stacks)
	Point
	Size
}

// Right returns the exclusive right edge of the placed rectangle.
func (p Placement) Right() int { return p.X + p.Width }

// Bottom returns the exclusive bottom edge of the placed rectangle.
func (p Placement) Bottom() int { return p.Y + p.Height }

// Plan is the result of layout planning: canvas dimensions plus placements.
type Plan struct {
	Width, Height int
	Placements    []Placement
}

// Size returns the canvas size.
func (p Plan) Size() Size { return Size{Width: p.Width, Height: p.Height} }

// Columns returns the number of non-empty columns in the plan.
func (p Plan) Columns() int {
	n := 0
	for i, pl := range p.Placements {
		if i == 0 || pl.Column != p.Placements[i-1].Column {
			n++
		}
	}
	return n
}

// Validate checks that every placement fits inside the canvas.
// Plans produced by this package always validate.
func (p Plan) Validate() error {
	for _, pl := range p.Placements {
		if pl.X < 0 || pl.Y < 0 || pl.Right() > p.Width || pl.Bottom() > p.Height {
			return errors.OutOfBounds("image #%d at (%d,%d) size %s exceeds canvas %dx%d",
				pl.Index, pl.X, pl.Y, pl.Size, p.Width, p.Height)
		}
	}
	return nil
}

// Direction selects the axis images are stacked along.
type Direction uint8

const (
	// Vertical stacks images top to bottom.
	Vertical Direction = iota
	// Horizontal places images left to right.
	Horizontal
)

// String returns "vertical" or "horizontal".
func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseDirection parses "vertical"/"v" or "horizontal"/"h", case-insensitively.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "vertical", "v":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return 0, errors.InvalidArgument("invalid direction %q (must be 'vertical' or 'horizontal')", s)
}

// PlanStack places images one after another along dir, starting at the origin.
//
// Vertical: width = max(width_i), height = sum(height_i), image i at
// (0, sum of previous heights). Horizontal is the transpose. An empty input
// yields a 0x0 plan with no placements.
func PlanStack(sizes []Size, dir Direction) Plan {
	return planStackAt(sizes, dir, 0, 0, 0)
}

// planStackAt is PlanStack with an index base and a starting offset.
// The returned canvas size is relative to the origin, not to the offset.
func planStackAt(sizes []Size, dir Direction, base, x0, y0 int) Plan {
	plan := Plan{Placements: make([]Placement, 0, len(sizes))}
	x, y := x0, y0
	for i, s := range sizes {
		plan.Placements = append(plan.Placements, Placement{
			Index: base + i,
			Point: Point{X: x, Y: y},
			Size:  s,
		})
		if dir == Vertical {
			y += s.Height
			plan.Width = max(plan.Width, s.Width)
		} else {
			x += s.Width
			plan.Height = max(plan.Height, s.Height)
		}
	}
	if dir == Vertical {
		plan.Height = y - y0
	} else {
		plan.Width = x - x0
	}
	return plan
}
