package geom

import "math"

// LineIntersection intersects segment p0-p1 with segment p2-p3, endpoints
// included. Parallel segments never intersect.
func LineIntersection(p0, p1, p2, p3 Vec2) (Vec2, bool) {
	s1 := p1.Sub(p0)
	s2 := p3.Sub(p2)

	denom := -s2.X*s1.Y + s1.X*s2.Y
	if denom == 0 {
		return Vec2{}, false
	}
	s := (-s1.Y*(p0.X-p2.X) + s1.X*(p0.Y-p2.Y)) / denom
	t := (s2.X*(p0.Y-p2.Y) - s2.Y*(p0.X-p2.X)) / denom

	if s < 0 || s > 1 || t < 0 || t > 1 {
		return Vec2{}, false
	}
	return Vec2{X: p0.X + t*s1.X, Y: p0.Y + t*s1.Y}, true
}

// ProjectCircleVSegment shortens res.Step so that c stops on edge. Only the
// point of c nearest the edge (opposite its normal) can touch first, so
// that point is traced along the step.
func ProjectCircleVSegment(res ProjectionResult, c Circle, edge LineSegment) ProjectionResult {
	from := c.Center.Sub(edge.Normal.Mult(c.R))
	to := from.Add(res.Step)

	hit, ok := LineIntersection(edge.A, edge.B, from, to)
	if !ok {
		return res
	}
	mag := hit.Sub(from).Length()
	if mag < res.StepMag {
		res.Step = normalize(res.Step).Mult(mag)
		res.StepMag = mag
		res.CollisionNormal = edge.Normal
	}
	return res
}

// SweepPointVEdge traces p along step against edge and returns res updated
// when the crossing is earlier than res.T. Both the motion parameter and
// the edge parameter must fall strictly inside (0, 1).
func SweepPointVEdge(res SweepResult, step, p Vec2, edge LineSegment) SweepResult {
	x1, y1 := p.X, p.Y
	x2, y2 := p.X+step.X, p.Y+step.Y
	x3, y3 := edge.A.X, edge.A.Y
	x4, y4 := edge.B.X, edge.B.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom == 0 {
		// parallel or no motion
		return res
	}

	t := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	if t <= 0 || t >= 1 {
		return res
	}
	u := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denom
	if u <= 0 || u >= 1 {
		return res
	}

	if t < res.T {
		res.T = t
		res.Normal = edge.Normal
	}
	return res
}

// SweepPointVAABB traces p against the two faces of r that face the
// direction of travel.
func SweepPointVAABB(res SweepResult, step, p Vec2, r Rect) SweepResult {
	if step.X > 0 {
		res = SweepPointVEdge(res, step, p, r.LeftEdge())
	} else {
		res = SweepPointVEdge(res, step, p, r.RightEdge())
	}
	if step.Y > 0 {
		res = SweepPointVEdge(res, step, p, r.BottomEdge())
	} else {
		res = SweepPointVEdge(res, step, p, r.TopEdge())
	}
	return res
}

// SweepPointVCircle traces p along step against c by solving the ray/circle
// quadratic. A zero step never hits. Grazing rays (discriminant below eps)
// miss, as does an entry root outside [0, 1]. res is replaced only by a strictly earlier hit.
func SweepPointVCircle(res SweepResult, step, p Vec2, c Circle, eps float64) SweepResult {
	f := p.Sub(c.Center)

	a := step.Dot(step)
	if a == 0 {
		return res
	}
	b := 2 * f.Dot(step)
	cc := f.Dot(f) - c.R*c.R

	disc := b*b - 4*a*cc
	if disc < eps {
		return res
	}
	disc = math.Sqrt(disc)

	// a and disc are both non-negative, so t1 <= t2.
	t1 := (-b - disc) / (2 * a)
	t2 := (-b + disc) / (2 * a)

	// falls short or already past
	if t1 > 1 || t1 < 0 {
		return res
	}

	t := math.Min(t1, t2)
	if t >= res.T {
		return res
	}

	contact := p.Add(step.Mult(t))
	return SweepResult{T: t, Normal: normalize(contact.Sub(c.Center))}
}

// SweepCircleVAABB traces c against r as the center against each corner
// grown to radius c.R and against r grown by c.R along each axis.
func SweepCircleVAABB(res SweepResult, step Vec2, c Circle, r Rect, eps float64) SweepResult {
	corners := [4]Vec2{
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MinX, Y: r.MinY},
	}
	for _, corner := range corners {
		res = SweepPointVCircle(res, step, c.Center, Circle{Center: corner, R: c.R}, eps)
	}
	res = SweepPointVAABB(res, step, c.Center, r.Expand(c.R, 0))
	res = SweepPointVAABB(res, step, c.Center, r.Expand(0, c.R))
	return res
}

// sweptBounds is the box covering a over its whole step.
func sweptBounds(step Vec2, a Rect) Rect {
	out := a
	if step.X < 0 {
		out.MinX += step.X
	} else {
		out.MaxX += step.X
	}
	if step.Y < 0 {
		out.MinY += step.Y
	} else {
		out.MaxY += step.Y
	}
	return out
}

// SweepAABBVAABB is the classic swept AABB test of a moving by step
// against a stationary b. The normal is the face of b that was hit, so it
// points from b back toward a: moving right into b gives (-1, 0).
func SweepAABBVAABB(res SweepResult, step Vec2, a, b Rect) SweepResult {
	if !TestAABBVAABB(sweptBounds(step, a), b) {
		return res
	}

	// gaps to the near and far sides on each axis
	var xInvEntry, xInvExit, yInvEntry, yInvExit float64
	if step.X > 0 {
		xInvEntry = b.MinX - a.MaxX
		xInvExit = b.MaxX - a.MinX
	} else {
		xInvEntry = b.MaxX - a.MinX
		xInvExit = b.MinX - a.MaxX
	}
	if step.Y > 0 {
		yInvEntry = b.MinY - a.MaxY
		yInvExit = b.MaxY - a.MinY
	} else {
		yInvEntry = b.MaxY - a.MinY
		yInvExit = b.MinY - a.MaxY
	}

	// an axis without motion never limits the contact time
	xEntry, xExit := math.Inf(-1), math.Inf(1)
	if step.X != 0 {
		xEntry = xInvEntry / step.X
		xExit = xInvExit / step.X
	}
	yEntry, yExit := math.Inf(-1), math.Inf(1)
	if step.Y != 0 {
		yEntry = yInvEntry / step.Y
		yExit = yInvExit / step.Y
	}

	entry := math.Max(xEntry, yEntry)
	exit := math.Min(xExit, yExit)

	if entry >= res.T {
		return res
	}
	if entry > exit || (xEntry < 0 && yEntry < 0) || xEntry > 1 || yEntry > 1 {
		return res
	}

	res.T = entry
	if xEntry > yEntry {
		if xInvEntry < 0 {
			res.Normal = right
		} else {
			res.Normal = left
		}
	} else {
		if yInvEntry < 0 {
			res.Normal = up
		} else {
			res.Normal = down
		}
	}
	return res
}

// Sweep moves a by step against the stationary b and returns the earliest
// contact. T == 1 means a travels the whole step without touching b.
// Swapping the arguments is the same as sweeping b by -step and negating
// the normal.
func (d Detector) Sweep(step Vec2, a, b Shape) SweepResult {
	return d.sweepFrom(noHit(), step, a, b)
}

// SweepAll folds Sweep over obstacles and keeps the earliest contact.
// Adding obstacles never makes T larger.
func (d Detector) SweepAll(step Vec2, a Shape, obstacles ...Shape) SweepResult {
	res := noHit()
	for _, b := range obstacles {
		res = d.sweepFrom(res, step, a, b)
	}
	return res
}

// sweepFrom is Sweep seeded with an earlier best result.
func (d Detector) sweepFrom(res SweepResult, step Vec2, a, b Shape) SweepResult {
	switch a := a.(type) {
	case Point:
		switch b := b.(type) {
		case Point:
			// points are too precise to collide
			return res
		case Circle:
			return SweepPointVCircle(res, step, a.Pos, b, d.Eps())
		case Rect:
			return SweepPointVAABB(res, step, a.Pos, b)
		}
	case Circle:
		switch b := b.(type) {
		case Point:
			return reversed(res, func(r SweepResult) SweepResult {
				return SweepPointVCircle(r, step.Neg(), b.Pos, a, d.Eps())
			})
		case Circle:
			return SweepPointVCircle(res, step, a.Center, Circle{Center: b.Center, R: a.R + b.R}, d.Eps())
		case Rect:
			return SweepCircleVAABB(res, step, a, b, d.Eps())
		}
	case Rect:
		switch b := b.(type) {
		case Point:
			return reversed(res, func(r SweepResult) SweepResult {
				return SweepPointVAABB(r, step.Neg(), b.Pos, a)
			})
		case Circle:
			return reversed(res, func(r SweepResult) SweepResult {
				return SweepCircleVAABB(r, step.Neg(), b, a, d.Eps())
			})
		case Rect:
			return SweepAABBVAABB(res, step, a, b)
		}
	}
	panic(unhandledPair("sweep", a, b))
}

// reversed runs a swapped-argument sweep in the frame of the second shape
// and flips any new contact normal back into the caller's frame.
func reversed(res SweepResult, fn func(SweepResult) SweepResult) SweepResult {
	out := fn(SweepResult{T: res.T, Normal: res.Normal.Neg()})
	out.Normal = out.Normal.Neg()
	return out
}
