package scenario

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/milk9111/collide/geom"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedScenariosPass(t *testing.T) {
	names := Names()
	require.NotEmpty(t, names)

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			f, err := LoadFile(name)
			require.NoError(t, err)

			rep, err := f.Run()
			require.NoError(t, err)
			for _, o := range rep.Outcomes {
				require.True(t, o.Passed(), "%s/%s: %v (%s)", rep.Name, o.Case, o.Failures, o)
			}
			require.Zero(t, rep.Failed())
		})
	}
}

func TestEmbeddedScenesBuild(t *testing.T) {
	for _, name := range []string{"playground", "orbit"} {
		f, err := LoadFile(name)
		require.NoError(t, err)
		require.NotNil(t, f.Scene, name)

		mover, obstacles, err := f.Scene.Shapes()
		require.NoError(t, err)
		require.NotNil(t, mover)
		require.NotEmpty(t, obstacles)
	}
}

func TestParseShapes(t *testing.T) {
	f, err := Parse([]byte(`
name: shapes
epsilon: 0.5
cases:
  - name: c
    op: overlap
    a: {circle: {center: [1, 2], r: 3}}
    b: {rect: {min: [0, 0], max: [4, 5]}}
    step: [1.5, -2]
`))
	require.NoError(t, err)
	require.Equal(t, 0.5, f.Detector().Epsilon)
	require.Len(t, f.Cases, 1)

	c := f.Cases[0]
	a, err := c.A.Shape()
	require.NoError(t, err)
	require.Equal(t, geom.Circle{Center: geom.Vec2{X: 1, Y: 2}, R: 3}, a)

	b, err := c.B.Shape()
	require.NoError(t, err)
	require.Equal(t, geom.Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 5}, b)
	require.Equal(t, geom.Vec2{X: 1.5, Y: -2}, c.Step.Geom())
}

func TestParseRejectsBadVec(t *testing.T) {
	_, err := Parse([]byte(`cases: [{name: x, op: sweep, step: [1, 2, 3]}]`))
	require.Error(t, err)

	_, err = Parse([]byte(`cases: [{name: x, op: sweep, step: 4}]`))
	require.Error(t, err)
}

func TestShapeSpecValidation(t *testing.T) {
	cases := []struct {
		name string
		spec ShapeSpec
	}{
		{"empty", ShapeSpec{}},
		{"two_kinds", ShapeSpec{Point: &Vec{}, Circle: &CircleSpec{R: 1}}},
		{"negative_radius", ShapeSpec{Circle: &CircleSpec{R: -1}}},
		{"inverted_rect", ShapeSpec{Rect: &RectSpec{Min: Vec{X: 5, Y: 0}, Max: Vec{X: 1, Y: 1}}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := c.spec.Shape()
			require.ErrorIs(t, err, ErrInvalidShape)
		})
	}
}

func TestRunCaseErrors(t *testing.T) {
	pt := Vec{X: 1, Y: 1}
	_, err := RunCase(geom.Default, Case{Name: "bad", Op: "teleport", A: ShapeSpec{Point: &pt}, B: ShapeSpec{Point: &pt}})
	require.ErrorIs(t, err, ErrUnknownOp)

	_, err = RunCase(geom.Default, Case{Name: "bad", Op: OpOverlap, A: ShapeSpec{}, B: ShapeSpec{Point: &pt}})
	require.ErrorIs(t, err, ErrInvalidShape)

	f := &File{Name: "wrapped", Cases: []Case{{Name: "bad", Op: "teleport", A: ShapeSpec{Point: &pt}, B: ShapeSpec{Point: &pt}}}}
	_, err = f.Run()
	require.ErrorIs(t, err, ErrUnknownOp)
	require.Contains(t, err.Error(), "wrapped")
}

func TestRunCaseReportsFailures(t *testing.T) {
	hit := true
	want := 0.1
	a := Vec{X: 0, Y: 0}
	c := Case{
		Name:   "wrong",
		Op:     OpSweep,
		Step:   Vec{X: 1, Y: 0},
		A:      ShapeSpec{Point: &a},
		B:      ShapeSpec{Rect: &RectSpec{Min: Vec{X: 5, Y: 5}, Max: Vec{X: 6, Y: 6}}},
		Expect: Expect{Hit: &hit, T: &want},
	}
	out, err := RunCase(geom.Default, c)
	require.NoError(t, err)
	require.False(t, out.Passed())
	require.Len(t, out.Failures, 2)
	require.Equal(t, 1.0, out.Sweep.T)
}

func TestMarshalRoundTrip(t *testing.T) {
	f, err := LoadFile("playground")
	require.NoError(t, err)

	data, err := Marshal(f)
	require.NoError(t, err)
	require.Contains(t, string(data), "center: [160, 360]")

	back, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, f, back)
}

func TestSpecOf(t *testing.T) {
	shapes := []geom.Shape{
		geom.Pt(1, 2),
		geom.Circle{Center: geom.Vec2{X: 3, Y: 4}, R: 5},
		geom.Rect{MinX: -1, MinY: -2, MaxX: 3, MaxY: 4},
	}
	for _, s := range shapes {
		got, err := SpecOf(s).Shape()
		require.NoError(t, err)
		require.Equal(t, s, got)
	}
}

func TestLoadPrefersDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-disk\n"), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, "from-disk", f.Name)

	embedded, err := LoadFile("properties")
	require.NoError(t, err)
	require.Equal(t, "properties", embedded.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
}

func TestMotionScript(t *testing.T) {
	m, err := NewMotion(`
math := import("math")
dx = 2
dy = frame * 0.5 + math.floor(y)
`)
	require.NoError(t, err)

	step, err := m.Step(4, geom.Vec2{X: 10, Y: 3.7})
	require.NoError(t, err)
	require.Equal(t, 2.0, step.X)
	require.Equal(t, 5.0, step.Y)

	// globals are reset every frame
	m2, err := NewMotion(`if frame == 0 { dx = 1 }`)
	require.NoError(t, err)
	step, err = m2.Step(0, geom.Vec2{})
	require.NoError(t, err)
	require.Equal(t, 1.0, step.X)
	step, err = m2.Step(1, geom.Vec2{})
	require.NoError(t, err)
	require.Equal(t, 0.0, step.X)
}

func TestMotionScriptOrbit(t *testing.T) {
	f, err := LoadFile("orbit")
	require.NoError(t, err)

	m, err := NewMotion(f.Scene.Script)
	require.NoError(t, err)

	step, err := m.Step(0, geom.Vec2{})
	require.NoError(t, err)
	require.InDelta(t, 6, step.X, 1e-9)
	require.InDelta(t, 0, step.Y, 1e-9)

	step, err = m.Step(10, geom.Vec2{})
	require.NoError(t, err)
	require.InDelta(t, 6, math.Hypot(step.X, step.Y), 1e-9)
}

func TestMotionCompileError(t *testing.T) {
	_, err := NewMotion(`dx = `)
	require.Error(t, err)

	var m *Motion
	_, err = m.Step(0, geom.Vec2{})
	require.Error(t, err)
}

func TestWatcherReportsScenarioWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	target := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: x\n"), 0o644))

	select {
	case change := <-w.Events:
		require.True(t, strings.HasSuffix(change.Path, "scene.yaml"), "unexpected event %s", change.Path)
		require.True(t, change.IsScenario())
		require.False(t, change.Removed)
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for scenario change")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatcherWatchesFileDirectory(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(scene, []byte("name: x\n"), 0o644))
	require.Equal(t, []string{dir}, watchDirs([]string{scene, dir, dir + "/"}))

	w, err := NewWatcher(scene)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Remove(scene))
	select {
	case change := <-w.Events:
		require.Equal(t, scene, change.Path)
		require.True(t, change.Removed)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for removal")
	}

	_, err = NewWatcher(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestChangeOf(t *testing.T) {
	cases := []struct {
		name    string
		event   fsnotify.Event
		ok      bool
		removed bool
	}{
		{"write yaml", fsnotify.Event{Name: "a.yaml", Op: fsnotify.Write}, true, false},
		{"create script", fsnotify.Event{Name: "a.tengo", Op: fsnotify.Create}, true, false},
		{"remove yml", fsnotify.Event{Name: "a.yml", Op: fsnotify.Remove}, true, true},
		{"rename yaml", fsnotify.Event{Name: "a.yaml", Op: fsnotify.Rename}, true, true},
		{"chmod yaml", fsnotify.Event{Name: "a.yaml", Op: fsnotify.Chmod}, false, false},
		{"write text", fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, false, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := changeOf(c.event)
			require.Equal(t, c.ok, ok)
			if ok {
				require.Equal(t, c.event.Name, got.Path)
				require.Equal(t, c.removed, got.Removed)
			}
		})
	}
	require.False(t, Change{Path: "a.tengo"}.IsScenario())
}

func TestDebouncer(t *testing.T) {
	var d debouncer
	start := time.Unix(100, 0)
	require.True(t, d.allow("a.yaml", start))
	require.False(t, d.allow("a.yaml", start.Add(debounce/2)))
	require.True(t, d.allow("b.yaml", start.Add(debounce/2)))
	require.True(t, d.allow("a.yaml", start.Add(debounce)))
}

func TestErrorsWrap(t *testing.T) {
	_, _, err := (&Scene{}).Shapes()
	require.True(t, errors.Is(err, ErrInvalidShape))
}
