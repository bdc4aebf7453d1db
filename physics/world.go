// Package physics mirrors a set of geom obstacles in a chipmunk space so
// sweeps can be cross-checked against chipmunk's own queries and drawn
// with its debug renderer.
package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/collide/geom"
)

// World owns a chipmunk space holding only static shapes.
type World struct {
	space *cp.Space

	shapeToObstacle map[*cp.Shape]int
}

// NewWorld adds one static chipmunk shape per obstacle. Points become
// zero-radius circles.
func NewWorld(obstacles []geom.Shape) *World {
	space := cp.NewSpace()
	w := &World{
		space:           space,
		shapeToObstacle: make(map[*cp.Shape]int, len(obstacles)),
	}
	for i, o := range obstacles {
		shape := newStaticShape(space.StaticBody, o)
		shape.SetFriction(0.8)
		space.AddShape(shape)
		w.shapeToObstacle[shape] = i
	}
	return w
}

func newStaticShape(body *cp.Body, s geom.Shape) *cp.Shape {
	switch s := s.(type) {
	case geom.Point:
		return cp.NewCircle(body, 0, s.Pos)
	case geom.Circle:
		return cp.NewCircle(body, s.R, s.Center)
	case geom.Rect:
		return cp.NewBox2(body, s.BB(), 0)
	}
	panic(fmt.Sprintf("physics: unhandled shape %T", s))
}

// Space returns the underlying chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// SegmentFirst traces a disk of the given radius from `from` along step
// and returns the first obstacle hit as a sweep result together with the
// obstacle's index. It returns false when nothing is hit.
func (w *World) SegmentFirst(from, step geom.Vec2, radius float64) (geom.SweepResult, int, bool) {
	if w == nil || w.space == nil {
		return geom.SweepResult{T: 1}, -1, false
	}
	info := w.space.SegmentQueryFirst(from, from.Add(step), radius, cp.SHAPE_FILTER_ALL)
	if info.Shape == nil {
		return geom.SweepResult{T: 1}, -1, false
	}
	idx, ok := w.shapeToObstacle[info.Shape]
	if !ok {
		return geom.SweepResult{T: 1}, -1, false
	}
	return geom.SweepResult{T: info.Alpha, Normal: info.Normal}, idx, true
}

// Nearest returns the obstacle closest to p within maxDist and the signed
// distance to its surface (negative when p is inside).
func (w *World) Nearest(p geom.Vec2, maxDist float64) (float64, int, bool) {
	if w == nil || w.space == nil {
		return 0, -1, false
	}
	info := w.space.PointQueryNearest(p, maxDist, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return 0, -1, false
	}
	idx, ok := w.shapeToObstacle[info.Shape]
	if !ok {
		return 0, -1, false
	}
	return info.Distance, idx, true
}
