package scenario

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/collide/geom"
)

// Motion drives a scene's mover from a tengo script. Each call sets the
// globals frame, x and y, resets dx and dy to zero, and runs the script;
// whatever the script assigns to dx and dy is the step for that frame.
//
//	math := import("math")
//	dx = math.cos(frame / 30.0) * 4
//	dy = math.sin(frame / 30.0) * 4
//
// A Motion is not safe for concurrent use.
type Motion struct {
	compiled *tengo.Compiled
}

func NewMotion(src string) (*Motion, error) {
	script := tengo.NewScript([]byte(src))
	_ = script.Add("frame", 0)
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("dx", 0.0)
	_ = script.Add("dy", 0.0)

	script.SetImports(stdlib.GetModuleMap("math"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scenario: compile motion script: %w", err)
	}
	return &Motion{compiled: compiled}, nil
}

// Step runs the script for one frame with the mover at pos.
func (m *Motion) Step(frame int, pos geom.Vec2) (geom.Vec2, error) {
	if m == nil || m.compiled == nil {
		return geom.Vec2{}, fmt.Errorf("scenario: nil motion")
	}
	globals := []struct {
		name  string
		value any
	}{
		{"frame", frame},
		{"x", pos.X},
		{"y", pos.Y},
		{"dx", 0.0},
		{"dy", 0.0},
	}
	for _, g := range globals {
		if err := m.compiled.Set(g.name, g.value); err != nil {
			return geom.Vec2{}, fmt.Errorf("scenario: motion set %s: %w", g.name, err)
		}
	}
	if err := m.compiled.Run(); err != nil {
		return geom.Vec2{}, fmt.Errorf("scenario: motion frame %d: %w", frame, err)
	}
	return geom.Vec2{X: m.compiled.Get("dx").Float(), Y: m.compiled.Get("dy").Float()}, nil
}
