// Package geom implements narrow-phase collision queries between points,
// circles and axis-aligned rectangles: static overlap tests, minimum
// translation vectors and swept time-of-impact.
//
// All functions are pure and safe for concurrent use.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec2 is the vector type used throughout the package.
type Vec2 = cp.Vector

// NearZero is the default tolerance, in world-space distance units, for
// "nearly zero" and "nearly equal" comparisons.
const NearZero = 0.0000001

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

var (
	left  = Vec2{X: -1, Y: 0}
	right = Vec2{X: 1, Y: 0}
	down  = Vec2{X: 0, Y: -1}
	up    = Vec2{X: 0, Y: 1}
)

// Left returns the unit vector (-1, 0).
func Left() Vec2 { return left }

// Right returns the unit vector (1, 0).
func Right() Vec2 { return right }

// Down returns the unit vector (0, -1).
func Down() Vec2 { return down }

// Up returns the unit vector (0, 1).
func Up() Vec2 { return up }

// Lerp interpolates linearly from a (t = 0) to b (t = 1).
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// ToRadians converts an angle in degrees to radians.
func ToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// nearZero reports whether |v| < eps.
func nearZero(v, eps float64) bool {
	return v < eps && v > -eps
}

// VecZeroish reports whether both components of v are within eps of zero.
func VecZeroish(v Vec2, eps float64) bool {
	return nearZero(v.X, eps) && nearZero(v.Y, eps)
}

// VecNearly reports whether a and b are within eps of each other on each axis.
func VecNearly(a, b Vec2, eps float64) bool {
	return VecZeroish(a.Sub(b), eps)
}

// normalize returns v scaled to unit length, or the zero vector when v has
// no length.
func normalize(v Vec2) Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return v.Mult(1 / l)
}

// Interval is a closed range on one axis. Min <= Max is the caller's job.
type Interval struct {
	Min, Max float64
}

// TestIntervalOverlap reports whether the open intervals a and b overlap.
// Intervals that only touch do not overlap.
func TestIntervalOverlap(a, b Interval) bool {
	return a.Min < b.Max && b.Min < a.Max
}

// GetIntervalOverlap returns how far a reaches into b. Positive when a.Max
// passes b.Min, negative when only b.Max passes a.Min, zero otherwise.
func GetIntervalOverlap(a, b Interval) float64 {
	if a.Max > b.Min {
		return a.Max - b.Min
	}
	if b.Max > a.Min {
		return a.Min - b.Max
	}
	return 0
}
