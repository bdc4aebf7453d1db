package main

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/milk9111/collide/geom"
	"github.com/milk9111/collide/physics"
	"github.com/milk9111/collide/scenario"
)

// samplesPerObstacle is how many dots a scatter drops into each obstacle.
const samplesPerObstacle = 150

// contactSkin is the gap, in pixels, left between the mover and a surface
// it stops against.
const contactSkin = 0.01

// Scene is the live state of the viewer: the mover, the static obstacles
// and the chipmunk mirror of those obstacles.
type Scene struct {
	file      *scenario.File
	detector  geom.Detector
	mover     geom.Shape
	obstacles []geom.Shape
	world     *physics.World
	motion    *scenario.Motion
	samples   []geom.Vec2
}

func LoadScene(name string) (*Scene, error) {
	f, err := scenario.LoadFile(name)
	if err != nil {
		return nil, err
	}
	return NewScene(f)
}

func NewScene(f *scenario.File) (*Scene, error) {
	if f.Scene == nil {
		return nil, fmt.Errorf("viewer: %s has no scene", f.Name)
	}
	mover, obstacles, err := f.Scene.Shapes()
	if err != nil {
		return nil, fmt.Errorf("viewer: %s: %w", f.Name, err)
	}

	s := &Scene{
		file:      f,
		detector:  f.Detector(),
		mover:     mover,
		obstacles: obstacles,
		world:     physics.NewWorld(obstacles),
	}
	if f.Scene.Script != "" {
		m, err := scenario.NewMotion(f.Scene.Script)
		if err != nil {
			return nil, fmt.Errorf("viewer: %s: %w", f.Name, err)
		}
		s.motion = m
	}
	return s, nil
}

// Probe sweeps the mover toward target without moving it.
func (s *Scene) Probe(target geom.Vec2) (geom.Vec2, geom.SweepResult) {
	step := target.Sub(geom.Position(s.mover))
	return step, s.detector.SweepAll(step, s.mover, s.obstacles...)
}

// Move advances the mover by step. It stops at the first contact, backs
// off contactSkin along the contact normal so the next sweep still sees
// the surface ahead, and then slides whatever is left of the step along
// the surface once.
func (s *Scene) Move(step geom.Vec2) geom.SweepResult {
	res := s.advance(step)
	if !res.Hit() {
		return res
	}

	rest := step.Mult(1 - res.T)
	slide := rest.Sub(res.Normal.Mult(rest.Dot(res.Normal)))
	if geom.VecZeroish(slide, s.detector.Eps()) {
		return res
	}
	s.advance(slide)
	return res
}

func (s *Scene) advance(step geom.Vec2) geom.SweepResult {
	res := s.detector.SweepAll(step, s.mover, s.obstacles...)
	s.mover = geom.Translate(s.mover, step.Mult(res.T))
	if res.Hit() {
		s.mover = geom.Translate(s.mover, res.Normal.Mult(contactSkin))
	}
	return res
}

// Contacts returns the indices of obstacles the mover overlaps.
func (s *Scene) Contacts() []int {
	var out []int
	for i, o := range s.obstacles {
		if s.detector.TestOverlap(s.mover, o) {
			out = append(out, i)
		}
	}
	return out
}

// Depenetrate pushes the mover out of every obstacle it overlaps, one
// obstacle at a time, and reports how many pushes were applied.
func (s *Scene) Depenetrate() int {
	pushes := 0
	for _, i := range s.Contacts() {
		o := s.obstacles[i]
		if !s.detector.TestOverlap(s.mover, o) {
			continue
		}
		mtv := s.detector.GetOverlap(s.mover, o)
		if geom.VecZeroish(mtv.Normal, s.detector.Eps()) {
			continue
		}
		s.mover = geom.Translate(s.mover, mtv.Normal.Mult(mtv.Distance))
		pushes++
	}
	return pushes
}

// StepScript runs the scene's motion script for one frame, if it has one.
func (s *Scene) StepScript(frame int) (geom.SweepResult, error) {
	if s.motion == nil {
		return geom.SweepResult{T: 1}, nil
	}
	step, err := s.motion.Step(frame, geom.Position(s.mover))
	if err != nil {
		return geom.SweepResult{T: 1}, err
	}
	return s.Move(step), nil
}

// CycleMover swaps the mover to the next shape kind, keeping its position
// and roughly its size.
func (s *Scene) CycleMover() {
	pos := geom.Position(s.mover)
	b := geom.Bounds(s.mover)
	half := max(b.W(), b.H()) / 2
	if half <= 0 {
		half = 18
	}

	switch s.mover.(type) {
	case geom.Point:
		s.mover = geom.Circle{Center: pos, R: half}
	case geom.Circle:
		s.mover = geom.Rect{MinX: pos.X - half, MinY: pos.Y - half, MaxX: pos.X + half, MaxY: pos.Y + half}
	case geom.Rect:
		s.mover = geom.Point{Pos: pos}
	}
}

// Scatter replaces the sample dots with points drawn uniformly from each
// obstacle.
func (s *Scene) Scatter(rng *rand.Rand) {
	s.samples = s.samples[:0]
	for _, o := range s.obstacles {
		for range samplesPerObstacle {
			s.samples = append(s.samples, geom.RandInShape(rng, o))
		}
	}
}

// YAML encodes the scene as it currently stands, mover included.
func (s *Scene) YAML() ([]byte, error) {
	out := &scenario.File{
		Name:    s.file.Name,
		Epsilon: s.file.Epsilon,
		Scene: &scenario.Scene{
			Mover: scenario.SpecOf(s.mover),
		},
	}
	if s.file.Scene != nil {
		out.Scene.Script = s.file.Scene.Script
	}
	for _, o := range s.obstacles {
		out.Scene.Obstacles = append(out.Scene.Obstacles, scenario.SpecOf(o))
	}
	return scenario.Marshal(out)
}

// moverRadius is the radius chipmunk's segment query should sweep for s.
// Rects have no equivalent query.
func moverRadius(s geom.Shape) (float64, bool) {
	switch s := s.(type) {
	case geom.Point:
		return 0, true
	case geom.Circle:
		return s.R, true
	}
	return 0, false
}

// sameScene reports whether a changed file is the scene named by name,
// which may be a path or a bare embedded name.
func sameScene(path, name string) bool {
	if ext := filepath.Ext(path); ext != ".yaml" && ext != ".yml" {
		return false
	}
	return sceneKey(path) == sceneKey(name)
}

func sceneKey(p string) string {
	base := filepath.Base(filepath.Clean(p))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
