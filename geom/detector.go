package geom

import "fmt"

// Detector runs collision queries with a fixed tolerance. A non-positive
// Epsilon, including the zero value, behaves as NearZero.
type Detector struct {
	// Epsilon is the distance within which two points coincide. Sweeps
	// against circles also compare it with the ray/circle discriminant,
	// which scales with length to the fourth power, so very short steps
	// can miss a circle they would touch.
	Epsilon float64
}

// Default is the detector used by the package-level functions.
var Default = Detector{Epsilon: NearZero}

// NewDetector returns a Detector with the given tolerance. A non-positive
// eps falls back to NearZero.
func NewDetector(eps float64) Detector {
	if eps <= 0 {
		eps = NearZero
	}
	return Detector{Epsilon: eps}
}

// Eps returns the tolerance d actually applies.
func (d Detector) Eps() float64 {
	if d.Epsilon <= 0 {
		return NearZero
	}
	return d.Epsilon
}

// TestOverlap reports whether a and b overlap using Default.
func TestOverlap(a, b Shape) bool {
	return Default.TestOverlap(a, b)
}

// GetOverlap returns the minimum translation for a out of b using Default.
func GetOverlap(a, b Shape) OverlapResult {
	return Default.GetOverlap(a, b)
}

// Sweep moves a by step against a stationary b using Default.
func Sweep(step Vec2, a, b Shape) SweepResult {
	return Default.Sweep(step, a, b)
}

// SweepAll returns the earliest contact of a moving by step against any of
// obstacles using Default.
func SweepAll(step Vec2, a Shape, obstacles ...Shape) SweepResult {
	return Default.SweepAll(step, a, obstacles...)
}

func unhandledPair(op string, a, b Shape) string {
	return fmt.Sprintf("geom: %s: unhandled shape pair %T, %T", op, a, b)
}
