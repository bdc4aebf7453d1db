package geom

// TestPointVCircle reports whether p lies strictly inside c.
func TestPointVCircle(p Vec2, c Circle) bool {
	d := p.Sub(c.Center)
	return d.X*d.X+d.Y*d.Y < c.R*c.R
}

// TestPointVAABB reports whether p lies strictly inside r.
func TestPointVAABB(p Vec2, r Rect) bool {
	return p.X > r.MinX && p.X < r.MaxX && p.Y > r.MinY && p.Y < r.MaxY
}

// TestAABBVAABB reports whether the open boxes a and b overlap.
func TestAABBVAABB(a, b Rect) bool {
	if !TestIntervalOverlap(Interval{Min: a.MinY, Max: a.MaxY}, Interval{Min: b.MinY, Max: b.MaxY}) {
		return false
	}
	return TestIntervalOverlap(Interval{Min: a.MinX, Max: a.MaxX}, Interval{Min: b.MinX, Max: b.MaxX})
}

// TestCircleVCircle merges a into b and tests a's center as a point.
func TestCircleVCircle(a, b Circle) bool {
	return TestPointVCircle(a.Center, Circle{Center: b.Center, R: a.R + b.R})
}

// TestCircleVAABB covers corner contact with four point/circle tests and
// face contact with the rect grown by the radius along each axis.
func TestCircleVAABB(c Circle, r Rect) bool {
	corners := [4]Vec2{
		{X: r.MinX, Y: r.MinY},
		{X: r.MinX, Y: r.MaxY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MaxX, Y: r.MinY},
	}
	for _, corner := range corners {
		if TestPointVCircle(corner, c) {
			return true
		}
	}
	if TestPointVAABB(c.Center, r.Expand(0, c.R)) {
		return true
	}
	return TestPointVAABB(c.Center, r.Expand(c.R, 0))
}

// TestOverlap reports whether a and b overlap. The result does not depend
// on argument order.
func (d Detector) TestOverlap(a, b Shape) bool {
	switch a := a.(type) {
	case Point:
		switch b := b.(type) {
		case Point:
			return VecNearly(a.Pos, b.Pos, d.Eps())
		case Circle:
			return TestPointVCircle(a.Pos, b)
		case Rect:
			return TestPointVAABB(a.Pos, b)
		}
	case Circle:
		switch b := b.(type) {
		case Point:
			return TestPointVCircle(b.Pos, a)
		case Circle:
			return TestCircleVCircle(a, b)
		case Rect:
			return TestCircleVAABB(a, b)
		}
	case Rect:
		switch b := b.(type) {
		case Point:
			return TestPointVAABB(b.Pos, a)
		case Circle:
			return TestCircleVAABB(b, a)
		case Rect:
			return TestAABBVAABB(a, b)
		}
	}
	panic(unhandledPair("test overlap", a, b))
}
