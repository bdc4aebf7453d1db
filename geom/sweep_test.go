package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func v(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func TestSweepRectVRect(t *testing.T) {
	a := rect(0, 0, 10, 10)
	b := rect(25, 0, 35, 10)

	got := Sweep(v(20, 0), a, b)
	require.InDelta(t, 0.75, got.T, 1e-9)
	// B's left face
	requireVec(t, Left(), got.Normal)
	require.True(t, got.Hit())
}

func TestSweepCircleVCircle(t *testing.T) {
	got := Sweep(v(10, 0), circ(0, 0, 1), circ(5, 0, 1))
	require.InDelta(t, 0.3, got.T, 1e-9)
	requireVec(t, Left(), got.Normal)
}

func TestSweepCases(t *testing.T) {
	corner := (math.Sqrt(18) - 1) / math.Sqrt(72)
	diag := 1 / math.Sqrt2

	cases := []struct {
		name   string
		step   Vec2
		a, b   Shape
		t      float64
		normal Vec2
	}{
		{"point_point", v(10, 0), Pt(0, 0), Pt(5, 0), 1, Vec2{}},
		{"point_rect_left_face", v(10, 0), Pt(-5, 5), rect(0, 0, 10, 10), 0.5, Left()},
		{"point_rect_bottom_face", v(0, 10), Pt(5, -5), rect(0, 0, 10, 10), 0.5, Down()},
		{"point_rect_right_face", v(-10, 0), Pt(15, 5), rect(0, 0, 10, 10), 0.5, Right()},
		{"point_rect_top_face", v(0, -10), Pt(5, 15), rect(0, 0, 10, 10), 0.5, Up()},
		{"point_rect_miss", v(10, 0), Pt(-5, 20), rect(0, 0, 10, 10), 1, Vec2{}},
		{"point_rect_short", v(2, 0), Pt(-5, 5), rect(0, 0, 10, 10), 1, Vec2{}},
		{"point_circle", v(10, 0), Pt(-5, 0), circ(0, 0, 1), 0.4, Left()},
		{"point_circle_from_inside", v(10, 0), Pt(0, 0), circ(0, 0, 1), 1, Vec2{}},
		{"point_circle_past", v(10, 0), Pt(5, 0), circ(0, 0, 1), 1, Vec2{}},
		{"circle_rect_face", v(10, 0), circ(-5, 5, 1), rect(0, 0, 10, 10), 0.4, Left()},
		{"circle_rect_corner", v(6, 6), circ(-3, -3, 1), rect(0, 0, 10, 10), corner, v(-diag, -diag)},
		{"rect_rect_down", v(0, -20), rect(0, 20, 10, 30), rect(0, 0, 10, 5), 0.75, Up()},
		{"rect_rect_miss_beside", v(20, 0), rect(0, 0, 10, 10), rect(25, 20, 35, 30), 1, Vec2{}},
		{"rect_rect_too_far", v(10, 0), rect(0, 0, 10, 10), rect(25, 0, 35, 10), 1, Vec2{}},
		{"rect_point_flipped", v(10, 0), rect(0, 0, 10, 10), Pt(15, 5), 0.5, Left()},
		{"circle_point_flipped", v(10, 0), circ(0, 0, 1), Pt(5, 0), 0.4, Left()},
		{"rect_circle_flipped", v(-10, 0), rect(0, 0, 10, 10), circ(-5, 5, 1), 0.4, Right()},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Sweep(c.step, c.a, c.b)
			require.InDelta(t, c.t, got.T, 1e-9, "t")
			requireVec(t, c.normal, got.Normal, "normal")
		})
	}
}

func TestSweepReversedMatchesSwapped(t *testing.T) {
	cases := []struct {
		name string
		step Vec2
		a, b Shape
	}{
		{"rect_point", v(10, 0), rect(0, 0, 10, 10), Pt(15, 5)},
		{"circle_point", v(10, 0), circ(0, 0, 1), Pt(5, 0.5)},
		{"rect_circle", v(-10, -3), rect(0, 0, 10, 10), circ(-5, 5, 1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fwd := Sweep(c.step, c.a, c.b)
			rev := Sweep(c.step.Neg(), c.b, c.a)
			require.InDelta(t, rev.T, fwd.T, 1e-12)
			requireVec(t, rev.Normal.Neg(), fwd.Normal)
			require.True(t, fwd.Hit(), "fixture should collide")
		})
	}
}

func TestSweepZeroStep(t *testing.T) {
	shapes := []Shape{
		Pt(-20, -20),
		circ(20, 20, 2),
		rect(-5, 30, 5, 40),
		Pt(50, 0),
		circ(-30, 5, 1),
		rect(60, 60, 70, 80),
	}
	for i, a := range shapes {
		for j, b := range shapes {
			if i == j {
				continue
			}
			require.False(t, TestOverlap(a, b), "fixtures must be disjoint")
			got := Sweep(Vec2{}, a, b)
			require.Equal(t, 1.0, got.T, "Sweep(0, %v, %v)", a, b)
		}
	}
}

func TestSweepZeroStepZeroDetector(t *testing.T) {
	var d Detector
	cases := []struct {
		name string
		a, b Shape
	}{
		{"point circle", Pt(-5, 0), circ(0, 0, 1)},
		{"circle point", circ(0, 0, 1), Pt(-5, 0)},
		{"circle circle", circ(-5, 0, 1), circ(0, 0, 1)},
		{"circle rect", circ(-5, 0, 1), rect(0, 0, 10, 10)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := d.Sweep(Vec2{}, c.a, c.b)
			require.Equal(t, 1.0, got.T)
			require.False(t, math.IsNaN(got.Normal.X) || math.IsNaN(got.Normal.Y))
		})
	}

	all := d.SweepAll(Vec2{}, Pt(-5, 0), circ(0, 0, 1), circ(-20, 0, 2))
	require.Equal(t, 1.0, all.T)

	got := SweepPointVCircle(noHit(), Vec2{}, Pt(-5, 0).Pos, circ(0, 0, 1), 0)
	require.Equal(t, noHit(), got)
}

func TestSweepShortStepAgainstCircle(t *testing.T) {
	// halfway to the circle's surface, but the discriminant is ~4e-8
	p := Pt(-1-5e-5, 0)
	step := v(1e-4, 0)
	c := circ(0, 0, 1)

	require.Equal(t, 1.0, Sweep(step, p, c).T, "discriminant below NearZero misses")

	got := NewDetector(1e-12).Sweep(step, p, c)
	require.InDelta(t, 0.5, got.T, 1e-3)
	require.InDelta(t, -1, got.Normal.X, 1e-6)

	require.InDelta(t, 0.5, Sweep(step, p, rect(-1, -1, 1, 1)).T, 1e-6, "rects have no such cutoff")
}

func TestSweepAllKeepsEarliest(t *testing.T) {
	a := rect(0, 0, 10, 10)
	step := v(20, 0)
	far := rect(25, 0, 35, 10)
	near := rect(15, 0, 20, 10)
	ball := circ(22, 5, 1)

	onlyFar := SweepAll(step, a, far)
	require.InDelta(t, 0.75, onlyFar.T, 1e-9)

	withBall := SweepAll(step, a, far, ball)
	require.LessOrEqual(t, withBall.T, onlyFar.T)

	all := SweepAll(step, a, far, ball, near)
	require.InDelta(t, 0.25, all.T, 1e-9)
	require.LessOrEqual(t, all.T, withBall.T)

	reordered := SweepAll(step, a, near, ball, far)
	require.Equal(t, all, reordered, "order of obstacles must not change the earliest hit")

	require.Equal(t, 1.0, SweepAll(step, a).T)
}

func TestSweepPointVEdgeParallel(t *testing.T) {
	edge := rect(0, 0, 10, 10).TopEdge()
	got := SweepPointVEdge(noHit(), v(10, 0), v(-5, 10), edge)
	require.Equal(t, noHit(), got)
}

func TestSweepPointVCircleKeepsEarlier(t *testing.T) {
	best := SweepResult{T: 0.1, Normal: Up()}
	got := SweepPointVCircle(best, v(10, 0), v(-5, 0), circ(0, 0, 1), NearZero)
	require.Equal(t, best, got)
}

func TestLineIntersection(t *testing.T) {
	p, ok := LineIntersection(v(10, 0), v(10, 10), v(1, 5), v(21, 5))
	require.True(t, ok)
	requireVec(t, v(10, 5), p)

	_, ok = LineIntersection(v(0, 0), v(10, 0), v(0, 1), v(10, 1))
	require.False(t, ok, "parallel segments")

	_, ok = LineIntersection(v(0, 0), v(1, 0), v(5, -1), v(5, 1))
	require.False(t, ok, "lines cross beyond the first segment")
}

func TestProjectCircleVSegment(t *testing.T) {
	edge := rect(10, 0, 20, 10).LeftEdge()
	start := ProjectionResult{Step: v(20, 0), StepMag: 20}

	got := ProjectCircleVSegment(start, circ(0, 5, 1), edge)
	requireVec(t, v(9, 0), got.Step)
	require.InDelta(t, 9, got.StepMag, 1e-9)
	require.Equal(t, Left(), got.CollisionNormal)

	miss := ProjectCircleVSegment(start, circ(0, 50, 1), edge)
	require.Equal(t, start, miss)
}
