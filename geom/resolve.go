package geom

import "math"

// GetOverlapPointVAABB pushes p out of r through the nearest face. Faces
// are checked left, right, up, down; the first smallest distance wins.
func GetOverlapPointVAABB(p Vec2, r Rect) OverlapResult {
	res := OverlapResult{Normal: left, Distance: p.X - r.MinX}
	if d := r.MaxX - p.X; d < res.Distance {
		res = OverlapResult{Normal: right, Distance: d}
	}
	if d := r.MaxY - p.Y; d < res.Distance {
		res = OverlapResult{Normal: up, Distance: d}
	}
	if d := p.Y - r.MinY; d < res.Distance {
		res = OverlapResult{Normal: down, Distance: d}
	}
	return res
}

// GetOverlapPointVCircle pushes p radially out of c. There is no boundary
// check: a point outside c yields a negative distance. When p is at the
// center the direction is undefined and Normal is the zero vector.
func GetOverlapPointVCircle(p Vec2, c Circle) OverlapResult {
	delta := p.Sub(c.Center)
	return OverlapResult{
		Normal:   normalize(delta),
		Distance: c.R - delta.Length(),
	}
}

// GetOverlapCircleVCircle resolves a against b as a point against the
// merged circle.
func GetOverlapCircleVCircle(a, b Circle) OverlapResult {
	return GetOverlapPointVCircle(a.Center, Circle{Center: b.Center, R: a.R + b.R})
}

// GetOverlapCircleVAABB resolves c against r. A center beyond both bounds
// of a corner is pushed away from that corner; corners are checked
// max/max, min/max, max/min, min/min. Anything else is pushed out of r
// grown by the radius.
func GetOverlapCircleVAABB(c Circle, r Rect) OverlapResult {
	p := c.Center
	switch {
	case p.X > r.MaxX && p.Y > r.MaxY:
		return GetOverlapPointVCircle(p, Circle{Center: Vec2{X: r.MaxX, Y: r.MaxY}, R: c.R})
	case p.X < r.MinX && p.Y > r.MaxY:
		return GetOverlapPointVCircle(p, Circle{Center: Vec2{X: r.MinX, Y: r.MaxY}, R: c.R})
	case p.X > r.MaxX && p.Y < r.MinY:
		return GetOverlapPointVCircle(p, Circle{Center: Vec2{X: r.MaxX, Y: r.MinY}, R: c.R})
	case p.X < r.MinX && p.Y < r.MinY:
		return GetOverlapPointVCircle(p, Circle{Center: Vec2{X: r.MinX, Y: r.MinY}, R: c.R})
	}
	return GetOverlapPointVAABB(p, r.Expand(c.R, c.R))
}

// GetOverlapAABBVAABB picks the smallest of the four penetrations, checked
// left, right, down, up. Ties keep the earlier axis.
func GetOverlapAABBVAABB(a, b Rect) OverlapResult {
	res := OverlapResult{Distance: math.Inf(1)}
	candidates := [4]struct {
		dist   float64
		normal Vec2
	}{
		{a.MaxX - b.MinX, left},
		{b.MaxX - a.MinX, right},
		{a.MaxY - b.MinY, down},
		{b.MaxY - a.MinY, up},
	}
	for _, c := range candidates {
		if c.dist < res.Distance {
			res = OverlapResult{Normal: c.normal, Distance: c.dist}
		}
	}
	return res
}

// GetOverlap returns the minimum translation that moves a out of b. It
// assumes the shapes overlap; check with TestOverlap first.
//
// Two points have no separating axis: the result has a zero normal and an
// infinite distance and must not be applied. Swapping the arguments negates
// the normal.
func (d Detector) GetOverlap(a, b Shape) OverlapResult {
	switch a := a.(type) {
	case Point:
		switch b := b.(type) {
		case Point:
			return OverlapResult{Distance: math.Inf(1)}
		case Circle:
			return GetOverlapPointVCircle(a.Pos, b)
		case Rect:
			return GetOverlapPointVAABB(a.Pos, b)
		}
	case Circle:
		switch b := b.(type) {
		case Point:
			return flipOverlap(GetOverlapPointVCircle(b.Pos, a))
		case Circle:
			return GetOverlapCircleVCircle(a, b)
		case Rect:
			return GetOverlapCircleVAABB(a, b)
		}
	case Rect:
		switch b := b.(type) {
		case Point:
			return flipOverlap(GetOverlapPointVAABB(b.Pos, a))
		case Circle:
			return flipOverlap(GetOverlapCircleVAABB(b, a))
		case Rect:
			return GetOverlapAABBVAABB(a, b)
		}
	}
	panic(unhandledPair("get overlap", a, b))
}

func flipOverlap(r OverlapResult) OverlapResult {
	r.Normal = r.Normal.Neg()
	return r
}
