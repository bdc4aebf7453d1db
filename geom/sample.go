package geom

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// RandInShape returns a uniformly distributed point inside s. A nil rng
// uses the global source.
func RandInShape(rng *rand.Rand, s Shape) Vec2 {
	float := rand.Float64
	if rng != nil {
		float = rng.Float64
	}

	switch s := s.(type) {
	case Point:
		return s.Pos
	case Rect:
		return Vec2{
			X: Lerp(s.MinX, s.MaxX, float()),
			Y: Lerp(s.MinY, s.MaxY, float()),
		}
	case Circle:
		a := float() * Tau
		// sqrt keeps the density uniform over area rather than radius
		r := s.R * math.Sqrt(float())
		return s.Center.Add(Vec2{X: r * math.Cos(a), Y: r * math.Sin(a)})
	}
	panic(fmt.Sprintf("geom: rand in shape: unhandled shape %T", s))
}
