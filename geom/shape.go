package geom

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Kind identifies one of the three shape variants.
type Kind int

const (
	KindPoint Kind = iota
	KindCircle
	KindRect
)

func (k Kind) String() string {
	switch k {
	case KindPoint:
		return "point"
	case KindCircle:
		return "circle"
	case KindRect:
		return "rect"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Shape is a closed set of primitives: Point, Circle and Rect. Only this
// package can add variants. Pass shapes by value; *Point, *Circle and *Rect
// satisfy the interface too but every query panics on them.
type Shape interface {
	Kind() Kind
	String() string
	isShape()
}

// Point is a zero-area shape at Pos.
type Point struct {
	Pos Vec2
}

// Circle is a disk centered at Center with radius R >= 0.
type Circle struct {
	Center Vec2
	R      float64
}

// Rect is an axis-aligned rectangle. MinX <= MaxX and MinY <= MaxY; zero
// width or height is allowed.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

func (Point) Kind() Kind  { return KindPoint }
func (Circle) Kind() Kind { return KindCircle }
func (Rect) Kind() Kind   { return KindRect }

func (Point) isShape()  {}
func (Circle) isShape() {}
func (Rect) isShape()   {}

func (p Point) String() string {
	return fmt.Sprintf("Point (%g, %g)", p.Pos.X, p.Pos.Y)
}

func (c Circle) String() string {
	return fmt.Sprintf("Circle (r: %g, center: %g, %g)", c.R, c.Center.X, c.Center.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect (%g, %g, %g, %g)", r.MinX, r.MaxX, r.MinY, r.MaxY)
}

// Pt is shorthand for a Point at (x, y).
func Pt(x, y float64) Point {
	return Point{Pos: Vec2{X: x, Y: y}}
}

// NewRect builds a Rect from a min corner and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

func (r Rect) W() float64 { return r.MaxX - r.MinX }
func (r Rect) H() float64 { return r.MaxY - r.MinY }

func (r Rect) Center() Vec2 {
	return Vec2{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{MinX: r.MinX + d.X, MinY: r.MinY + d.Y, MaxX: r.MaxX + d.X, MaxY: r.MaxY + d.Y}
}

// Expand grows r by dx on both X sides and dy on both Y sides.
func (r Rect) Expand(dx, dy float64) Rect {
	return Rect{MinX: r.MinX - dx, MinY: r.MinY - dy, MaxX: r.MaxX + dx, MaxY: r.MaxY + dy}
}

// BB converts r to a chipmunk bounding box.
func (r Rect) BB() cp.BB {
	return cp.BB{L: r.MinX, B: r.MinY, R: r.MaxX, T: r.MaxY}
}

// RectFromBB converts a chipmunk bounding box to a Rect.
func RectFromBB(bb cp.BB) Rect {
	return Rect{MinX: bb.L, MinY: bb.B, MaxX: bb.R, MaxY: bb.T}
}

// LineSegment is an edge from A to B. Normal is supplied by the caller and
// points away from the owning shape's interior.
type LineSegment struct {
	A, B   Vec2
	Normal Vec2
}

func (r Rect) LeftEdge() LineSegment {
	return LineSegment{A: Vec2{X: r.MinX, Y: r.MinY}, B: Vec2{X: r.MinX, Y: r.MaxY}, Normal: left}
}

func (r Rect) RightEdge() LineSegment {
	return LineSegment{A: Vec2{X: r.MaxX, Y: r.MaxY}, B: Vec2{X: r.MaxX, Y: r.MinY}, Normal: right}
}

func (r Rect) BottomEdge() LineSegment {
	return LineSegment{A: Vec2{X: r.MinX, Y: r.MinY}, B: Vec2{X: r.MaxX, Y: r.MinY}, Normal: down}
}

func (r Rect) TopEdge() LineSegment {
	return LineSegment{A: Vec2{X: r.MinX, Y: r.MaxY}, B: Vec2{X: r.MaxX, Y: r.MaxY}, Normal: up}
}

// Translate returns s moved by d.
func Translate(s Shape, d Vec2) Shape {
	switch s := s.(type) {
	case Point:
		return Point{Pos: s.Pos.Add(d)}
	case Circle:
		return Circle{Center: s.Center.Add(d), R: s.R}
	case Rect:
		return s.Translate(d)
	}
	panic(fmt.Sprintf("geom: translate: unhandled shape %T", s))
}

// Position returns the reference point of s: the point itself, the circle
// center, or the rect center.
func Position(s Shape) Vec2 {
	switch s := s.(type) {
	case Point:
		return s.Pos
	case Circle:
		return s.Center
	case Rect:
		return s.Center()
	}
	panic(fmt.Sprintf("geom: position: unhandled shape %T", s))
}

// Bounds returns the axis-aligned box around s.
func Bounds(s Shape) Rect {
	switch s := s.(type) {
	case Point:
		return Rect{MinX: s.Pos.X, MinY: s.Pos.Y, MaxX: s.Pos.X, MaxY: s.Pos.Y}
	case Circle:
		return Rect{MinX: s.Center.X - s.R, MinY: s.Center.Y - s.R, MaxX: s.Center.X + s.R, MaxY: s.Center.Y + s.R}
	case Rect:
		return s
	}
	panic(fmt.Sprintf("geom: bounds: unhandled shape %T", s))
}

// OverlapResult is a minimum translation: moving the first shape by
// Normal*Distance separates it from the second.
type OverlapResult struct {
	Normal   Vec2
	Distance float64
}

// SweepResult is the earliest contact along a step. T == 1 means no
// contact; otherwise contact happens at step*T with surface Normal.
type SweepResult struct {
	Normal Vec2
	T      float64
}

// Hit reports whether the sweep found a contact.
func (r SweepResult) Hit() bool {
	return r.T < 1
}

// noHit is the starting value for every sweep fold.
func noHit() SweepResult {
	return SweepResult{T: 1}
}

// ProjectionResult carries a circle's remaining step while it is clamped
// against edges.
type ProjectionResult struct {
	Step            Vec2
	StepMag         float64
	CollisionNormal Vec2
}
