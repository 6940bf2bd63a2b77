package layout

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/concatimg/pkg/errors"
)

// Kind identifies a layout policy.
type Kind uint8

const (
	KindVertical Kind = iota
	KindHorizontal
	KindColumns
)

// Policy is a layout configuration. It holds no mutable state.
type Policy struct {
	Kind    Kind
	Columns int // only meaningful for KindColumns
}

// VerticalPolicy stacks images top to bottom.
func VerticalPolicy() Policy { return Policy{Kind: KindVertical} }

// HorizontalPolicy places images left to right.
func HorizontalPolicy() Policy { return Policy{Kind: KindHorizontal} }

// ColumnsPolicy arranges images in n vertical columns.
func ColumnsPolicy(n int) Policy { return Policy{Kind: KindColumns, Columns: n} }

// String returns "vertical", "horizontal", or "columns(n)".
func (p Policy) String() string {
	switch p.Kind {
	case KindHorizontal:
		return "horizontal"
	case KindColumns:
		return fmt.Sprintf("columns(%d)", p.Columns)
	default:
		return "vertical"
	}
}

// Validate checks the policy parameters.
func (p Policy) Validate() error {
	switch p.Kind {
	case KindVertical, KindHorizontal:
		return nil
	case KindColumns:
		return errors.ValidateColumns(p.Columns)
	}
	return errors.InvalidArgument("unknown layout kind %d", p.Kind)
}

// Plan computes the layout for sizes under this policy.
func (p Policy) Plan(sizes []Size) (Plan, error) {
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	switch p.Kind {
	case KindHorizontal:
		return PlanStack(sizes, Horizontal), nil
	case KindColumns:
		return PlanColumnLayout(sizes, p.Columns)
	default:
		return PlanStack(sizes, Vertical), nil
	}
}

// ParsePolicy parses a policy name. Accepted forms are "vertical", "horizontal",
// "columns" (which takes its count from columns), and "columns:N".
func ParsePolicy(name string, columns int) (Policy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n, ok := strings.CutPrefix(name, "columns:"); ok {
		c, err := strconv.Atoi(n)
		if err != nil {
			return Policy{}, errors.InvalidArgument("invalid column count %q", n)
		}
		columns, name = c, "columns"
	}

	var p Policy
	switch name {
	case "", "vertical", "v":
		p = VerticalPolicy()
	case "horizontal", "h":
		p = HorizontalPolicy()
	case "columns", "grid":
		p = ColumnsPolicy(columns)
	default:
		return Policy{}, errors.InvalidArgument("invalid layout %q (must be 'vertical', 'horizontal', or 'columns')", name)
	}
	if err := p.Validate(); err != nil {
		return Policy{}, err
	}
	return p, nil
}
