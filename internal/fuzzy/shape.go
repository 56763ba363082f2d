package fuzzy

import (
	"fmt"
	"math"
)

// ShapeKind identifies a membership function family.
type ShapeKind int

const (
	KindTriangular ShapeKind = iota + 1
	KindRampUp
	KindRampDown
)

var shapeKindNames = map[ShapeKind]string{
	KindTriangular: "triangular",
	KindRampUp:     "ramp_up",
	KindRampDown:   "ramp_down",
}

func (k ShapeKind) String() string {
	if s, ok := shapeKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("ShapeKind(%d)", int(k))
}

// ParseShapeKind maps a shape name as written in rule files to its kind.
func ParseShapeKind(s string) (ShapeKind, error) {
	for k, name := range shapeKindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown shape kind %q", ErrInvalidShape, s)
}

// Shape is a piecewise-linear membership function.
type Shape struct {
	kind    ShapeKind
	a, b, c float64
}

// Triangular rises from a to a peak at b and falls to c. a == b makes a left
// shoulder (membership 1 for every x <= b) and b == c a right shoulder
// (membership 1 for every x >= b).
func Triangular(a, b, c float64) Shape {
	return Shape{kind: KindTriangular, a: a, b: b, c: c}
}

// RampUp is 0 up to a, rises linearly to 1 at b and stays at 1 afterwards.
func RampUp(a, b float64) Shape {
	return Shape{kind: KindRampUp, a: a, b: b}
}

// RampDown is 1 up to a, falls linearly to 0 at b and stays at 0 afterwards.
func RampDown(a, b float64) Shape {
	return Shape{kind: KindRampDown, a: a, b: b}
}

// NewShape builds a shape from its kind and parameter list, as stored in rule
// files: three parameters for triangular, two for the ramps.
func NewShape(kind ShapeKind, params []float64) (Shape, error) {
	var s Shape
	switch kind {
	case KindTriangular:
		if len(params) != 3 {
			return Shape{}, fmt.Errorf("%w: triangular takes 3 parameters, got %d", ErrInvalidShape, len(params))
		}
		s = Triangular(params[0], params[1], params[2])
	case KindRampUp, KindRampDown:
		if len(params) != 2 {
			return Shape{}, fmt.Errorf("%w: %s takes 2 parameters, got %d", ErrInvalidShape, kind, len(params))
		}
		s = Shape{kind: kind, a: params[0], b: params[1]}
	default:
		return Shape{}, fmt.Errorf("%w: unknown shape kind %d", ErrInvalidShape, int(kind))
	}
	return s, s.Validate()
}

func (s Shape) Kind() ShapeKind { return s.kind }

// Params returns the breakpoints in declaration order.
func (s Shape) Params() []float64 {
	if s.kind == KindTriangular {
		return []float64{s.a, s.b, s.c}
	}
	return []float64{s.a, s.b}
}

// Validate checks the breakpoint ordering for the shape's family.
func (s Shape) Validate() error {
	for _, p := range s.Params() {
		if !isFinite(p) {
			return fmt.Errorf("%w: non-finite breakpoint in %s", ErrInvalidShape, s)
		}
	}
	switch s.kind {
	case KindTriangular:
		if s.a > s.b || s.b > s.c {
			return fmt.Errorf("%w: %s requires a <= b <= c", ErrInvalidShape, s)
		}
		if s.a == s.c {
			return fmt.Errorf("%w: %s has zero width", ErrInvalidShape, s)
		}
	case KindRampUp, KindRampDown:
		if s.a >= s.b {
			return fmt.Errorf("%w: %s requires a < b", ErrInvalidShape, s)
		}
	default:
		return fmt.Errorf("%w: unknown shape kind %d", ErrInvalidShape, int(s.kind))
	}
	return nil
}

// Eval returns the degree of membership of x, always within [0, 1].
// NaN maps to 0.
func (s Shape) Eval(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	switch s.kind {
	case KindTriangular:
		return evalTriangular(s.a, s.b, s.c, x)
	case KindRampUp:
		switch {
		case x <= s.a:
			return 0
		case x >= s.b:
			return 1
		}
		return clamp01((x - s.a) / (s.b - s.a))
	case KindRampDown:
		switch {
		case x <= s.a:
			return 1
		case x >= s.b:
			return 0
		}
		return clamp01((s.b - x) / (s.b - s.a))
	}
	return 0
}

// evalTriangular handles the shoulders before any division so a zero-width
// flank never divides by zero.
func evalTriangular(a, b, c, x float64) float64 {
	if a == b && x <= b {
		return 1
	}
	if b == c && x >= b {
		return 1
	}
	if x <= a || x >= c {
		return 0
	}
	if x == b {
		return 1
	}
	if x < b {
		return clamp01((x - a) / (b - a))
	}
	return clamp01((c - x) / (c - b))
}

func (s Shape) String() string {
	if s.kind == KindTriangular {
		return fmt.Sprintf("triangular(%g, %g, %g)", s.a, s.b, s.c)
	}
	return fmt.Sprintf("%s(%g, %g)", s.kind, s.a, s.b)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Term is a labelled membership function on a variable.
type Term struct {
	Label string
	Shape Shape
}

// Membership returns the degree to which x belongs to the term.
func Membership(t Term, x float64) float64 {
	return t.Shape.Eval(x)
}
