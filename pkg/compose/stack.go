package compose

import (
	"github.com/matzehuels/concatimg/pkg/errors"
	"github.com/matzehuels/concatimg/pkg/layout"
	"github.com/matzehuels/concatimg/pkg/raster"
)

// Sizes returns the size of each image, in order. A nil image has size 0x0.
func Sizes(images []*raster.Image) []layout.Size {
	sizes := make([]layout.Size, len(images))
	for i, img := range images {
		if img != nil {
			sizes[i] = layout.Size{Width: img.Width(), Height: img.Height()}
		}
	}
	return sizes
}

func checkSources(images []*raster.Image) error {
	for i, img := range images {
		if img == nil {
			return errors.InvalidArgument("image #%d is nil", i)
		}
	}
	return nil
}

// Blits lays images out one after another along dir, the first image at
// (startX, startY).
func Blits(images []*raster.Image, dir layout.Direction, startX, startY int) []Blit {
	blits := make([]Blit, len(images))
	x, y := startX, startY
	for i, img := range images {
		blits[i] = Blit{Src: img, X: x, Y: y}
		if img == nil {
			continue
		}
		if dir == layout.Vertical {
			y += img.Height()
		} else {
			x += img.Width()
		}
	}
	return blits
}

// FromPlan pairs every placement with its image. images must be indexed the
// same way as the sizes the plan was computed from.
func FromPlan(plan layout.Plan, images []*raster.Image) []Blit {
	blits := make([]Blit, len(plan.Placements))
	for i, p := range plan.Placements {
		blits[i] = Blit{Src: images[p.Index], X: p.X, Y: p.Y}
	}
	return blits
}

// Stack concatenates images along dir into a new canvas.
// An empty input returns a 0x0 canvas.
func Stack(images []*raster.Image, dir layout.Direction, opts Options) (*raster.Image, error) {
	if err := checkSources(images); err != nil {
		return nil, err
	}
	plan := layout.PlanStack(Sizes(images), dir)
	return Composite(plan.Width, plan.Height, FromPlan(plan, images), opts)
}

// Columns arranges images in columns vertical columns read top to bottom,
// then left to right, copying every image exactly once.
func Columns(images []*raster.Image, columns int, opts Options) (*raster.Image, error) {
	if err := checkSources(images); err != nil {
		return nil, err
	}
	plan, err := layout.PlanColumnLayout(Sizes(images), columns)
	if err != nil {
		return nil, err
	}
	return Composite(plan.Width, plan.Height, FromPlan(plan, images), opts)
}

// Apply composites images according to policy.
func Apply(images []*raster.Image, policy layout.Policy, opts Options) (*raster.Image, error) {
	if err := checkSources(images); err != nil {
		return nil, err
	}
	plan, err := policy.Plan(Sizes(images))
	if err != nil {
		return nil, err
	}
	return Composite(plan.Width, plan.Height, FromPlan(plan, images), opts)
}
