// Package scenario loads YAML collision scenarios and checks them against
// the geom package.
package scenario

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/milk9111/collide/geom"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidShape = errors.New("invalid shape")
	ErrUnknownOp    = errors.New("unknown op")
)

// Op names the query a case runs.
type Op string

const (
	OpOverlap Op = "overlap"
	OpResolve Op = "resolve"
	OpSweep   Op = "sweep"
)

// File is one scenario document.
type File struct {
	Name string `yaml:"name"`
	// Epsilon overrides geom.NearZero for every case in the file.
	Epsilon float64 `yaml:"epsilon,omitempty"`
	Cases   []Case  `yaml:"cases,omitempty"`
	Scene   *Scene  `yaml:"scene,omitempty"`
}

type Case struct {
	Name   string    `yaml:"name"`
	Op     Op        `yaml:"op"`
	A      ShapeSpec `yaml:"a"`
	B      ShapeSpec `yaml:"b"`
	Step   Vec       `yaml:"step,omitempty"`
	Expect Expect    `yaml:"expect"`
}

// Expect lists the checks for a case. Unset fields are not checked.
type Expect struct {
	// Hit is the overlap result for overlap cases and T < 1 for sweeps.
	Hit      *bool    `yaml:"hit,omitempty"`
	T        *float64 `yaml:"t,omitempty"`
	Normal   *Vec     `yaml:"normal,omitempty"`
	Distance *float64 `yaml:"distance,omitempty"`
	// Separates checks that moving A by the resolved MTV ends the overlap.
	Separates bool    `yaml:"separates,omitempty"`
	Tol       float64 `yaml:"tol,omitempty"`
}

// Scene is an interactive layout for the viewer.
type Scene struct {
	Mover     ShapeSpec   `yaml:"mover"`
	Obstacles []ShapeSpec `yaml:"obstacles"`
	// Script is tengo source driving the mover; see Motion.
	Script string `yaml:"script,omitempty"`
}

// Vec is written as a two element flow sequence: [x, y].
type Vec struct {
	X, Y float64
}

func (v Vec) Geom() geom.Vec2 {
	return geom.Vec2{X: v.X, Y: v.Y}
}

func (v Vec) String() string {
	return fmt.Sprintf("[%g, %g]", v.X, v.Y)
}

func FromGeom(p geom.Vec2) Vec {
	return Vec{X: p.X, Y: p.Y}
}

func (v *Vec) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("vec: expected [x, y] at line %d", value.Line)
	}
	var xy []float64
	if err := value.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("vec: expected 2 components at line %d, got %d", value.Line, len(xy))
	}
	v.X, v.Y = xy[0], xy[1]
	return nil
}

func (v Vec) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, f := range []float64{v.X, v.Y} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: strconv.FormatFloat(f, 'g', -1, 64)})
	}
	return n, nil
}

type CircleSpec struct {
	Center Vec     `yaml:"center"`
	R      float64 `yaml:"r"`
}

type RectSpec struct {
	Min Vec `yaml:"min"`
	Max Vec `yaml:"max"`
}

// ShapeSpec holds exactly one of its fields.
type ShapeSpec struct {
	Point  *Vec        `yaml:"point,omitempty"`
	Circle *CircleSpec `yaml:"circle,omitempty"`
	Rect   *RectSpec   `yaml:"rect,omitempty"`
}

// Shape checks that exactly one kind is set and converts it.
func (s ShapeSpec) Shape() (geom.Shape, error) {
	set := 0
	for _, ok := range []bool{s.Point != nil, s.Circle != nil, s.Rect != nil} {
		if ok {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: want exactly one of point, circle, rect; got %d", ErrInvalidShape, set)
	}

	switch {
	case s.Point != nil:
		return geom.Point{Pos: s.Point.Geom()}, nil
	case s.Circle != nil:
		if s.Circle.R < 0 {
			return nil, fmt.Errorf("%w: negative radius %g", ErrInvalidShape, s.Circle.R)
		}
		return geom.Circle{Center: s.Circle.Center.Geom(), R: s.Circle.R}, nil
	default:
		r := geom.Rect{MinX: s.Rect.Min.X, MinY: s.Rect.Min.Y, MaxX: s.Rect.Max.X, MaxY: s.Rect.Max.Y}
		if r.MinX > r.MaxX || r.MinY > r.MaxY {
			return nil, fmt.Errorf("%w: rect min %v exceeds max %v", ErrInvalidShape, s.Rect.Min, s.Rect.Max)
		}
		return r, nil
	}
}

// SpecOf converts a shape back into its YAML form.
func SpecOf(s geom.Shape) ShapeSpec {
	switch s := s.(type) {
	case geom.Point:
		p := FromGeom(s.Pos)
		return ShapeSpec{Point: &p}
	case geom.Circle:
		return ShapeSpec{Circle: &CircleSpec{Center: FromGeom(s.Center), R: s.R}}
	case geom.Rect:
		return ShapeSpec{Rect: &RectSpec{Min: Vec{X: s.MinX, Y: s.MinY}, Max: Vec{X: s.MaxX, Y: s.MaxY}}}
	}
	return ShapeSpec{}
}

// Detector returns the detector configured by the file.
func (f *File) Detector() geom.Detector {
	return geom.NewDetector(f.Epsilon)
}

// Shapes converts the scene's mover and obstacles.
func (s *Scene) Shapes() (geom.Shape, []geom.Shape, error) {
	mover, err := s.Mover.Shape()
	if err != nil {
		return nil, nil, fmt.Errorf("scenario: scene mover: %w", err)
	}
	obstacles := make([]geom.Shape, 0, len(s.Obstacles))
	for i, o := range s.Obstacles {
		shape, err := o.Shape()
		if err != nil {
			return nil, nil, fmt.Errorf("scenario: scene obstacle %d: %w", i, err)
		}
		obstacles = append(obstacles, shape)
	}
	return mover, obstacles, nil
}

// Parse decodes a scenario document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("scenario: unmarshal: %w", err)
	}
	return &f, nil
}

// Marshal encodes f as YAML.
func Marshal(f *File) ([]byte, error) {
	b, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("scenario: marshal %s: %w", f.Name, err)
	}
	return b, nil
}

// LoadFile loads and parses a scenario by name; see Load.
func LoadFile(name string) (*File, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("scenario: load %s: %w", name, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario: %s: %w", name, err)
	}
	if f.Name == "" {
		f.Name = cleanScenarioPath(name)
	}
	return f, nil
}
