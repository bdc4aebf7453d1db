package scenario

import (
	"fmt"
	"math"

	"github.com/milk9111/collide/geom"
)

// DefaultTol is the comparison tolerance for expectations without tol.
const DefaultTol = 1e-6

// separationSlack pushes a little past the MTV before re-testing overlap.
const separationSlack = 1e-9

// Outcome is the result of one case.
type Outcome struct {
	Case     string
	Op       Op
	Overlap  bool
	MTV      geom.OverlapResult
	Sweep    geom.SweepResult
	Failures []string
}

func (o Outcome) Passed() bool {
	return len(o.Failures) == 0
}

func (o Outcome) String() string {
	switch o.Op {
	case OpOverlap:
		return fmt.Sprintf("overlap=%t", o.Overlap)
	case OpResolve:
		return fmt.Sprintf("normal=(%g, %g) distance=%g", o.MTV.Normal.X, o.MTV.Normal.Y, o.MTV.Distance)
	case OpSweep:
		return fmt.Sprintf("t=%g normal=(%g, %g)", o.Sweep.T, o.Sweep.Normal.X, o.Sweep.Normal.Y)
	}
	return string(o.Op)
}

type Report struct {
	Name     string
	Outcomes []Outcome
}

// Failed counts failing outcomes.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Passed() {
			n++
		}
	}
	return n
}

// Run evaluates every case in f with the file's detector.
func (f *File) Run() (Report, error) {
	d := f.Detector()
	rep := Report{Name: f.Name, Outcomes: make([]Outcome, 0, len(f.Cases))}
	for _, c := range f.Cases {
		out, err := RunCase(d, c)
		if err != nil {
			return rep, fmt.Errorf("scenario: %s: case %q: %w", f.Name, c.Name, err)
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}
	return rep, nil
}

// RunCase evaluates a single case.
func RunCase(d geom.Detector, c Case) (Outcome, error) {
	a, err := c.A.Shape()
	if err != nil {
		return Outcome{}, fmt.Errorf("shape a: %w", err)
	}
	b, err := c.B.Shape()
	if err != nil {
		return Outcome{}, fmt.Errorf("shape b: %w", err)
	}

	out := Outcome{Case: c.Name, Op: c.Op}
	exp := c.Expect
	tol := exp.Tol
	if tol <= 0 {
		tol = DefaultTol
	}

	switch c.Op {
	case OpOverlap:
		out.Overlap = d.TestOverlap(a, b)
		if swapped := d.TestOverlap(b, a); swapped != out.Overlap {
			out.fail("overlap is not symmetric: %t vs swapped %t", out.Overlap, swapped)
		}
		if exp.Hit != nil && *exp.Hit != out.Overlap {
			out.fail("overlap = %t, want %t", out.Overlap, *exp.Hit)
		}
	case OpResolve:
		out.MTV = d.GetOverlap(a, b)
		if exp.Distance != nil && !near(out.MTV.Distance, *exp.Distance, tol) {
			out.fail("distance = %g, want %g", out.MTV.Distance, *exp.Distance)
		}
		if exp.Normal != nil && !nearVec(out.MTV.Normal, exp.Normal.Geom(), tol) {
			out.fail("normal = %v, want %v", FromGeom(out.MTV.Normal), *exp.Normal)
		}
		if exp.Separates {
			moved := geom.Translate(a, out.MTV.Normal.Mult(out.MTV.Distance+separationSlack))
			if d.TestOverlap(moved, b) {
				out.fail("%v still overlaps %v after resolving", moved, b)
			}
		}
	case OpSweep:
		out.Sweep = d.Sweep(c.Step.Geom(), a, b)
		if exp.Hit != nil && *exp.Hit != out.Sweep.Hit() {
			out.fail("hit = %t (t=%g), want %t", out.Sweep.Hit(), out.Sweep.T, *exp.Hit)
		}
		if exp.T != nil && !near(out.Sweep.T, *exp.T, tol) {
			out.fail("t = %g, want %g", out.Sweep.T, *exp.T)
		}
		if exp.Normal != nil && !nearVec(out.Sweep.Normal, exp.Normal.Geom(), tol) {
			out.fail("normal = %v, want %v", FromGeom(out.Sweep.Normal), *exp.Normal)
		}
	default:
		return Outcome{}, fmt.Errorf("%w %q", ErrUnknownOp, c.Op)
	}
	return out, nil
}

func (o *Outcome) fail(format string, args ...any) {
	o.Failures = append(o.Failures, fmt.Sprintf(format, args...))
}

func near(got, want, tol float64) bool {
	if math.IsInf(want, 0) || math.IsInf(got, 0) {
		return got == want
	}
	return math.Abs(got-want) <= tol
}

func nearVec(got, want geom.Vec2, tol float64) bool {
	return near(got.X, want.X, tol) && near(got.Y, want.Y, tol)
}
