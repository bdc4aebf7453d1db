package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/collide/geom"
	"github.com/milk9111/collide/scenario"
	"golang.design/x/clipboard"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720

	// normalLen is the drawn length of contact and MTV normals.
	normalLen = 24
)

type Game struct {
	frames int
	debug  bool
	paused bool

	// overlay draws the chipmunk mirror and its segment query on top.
	overlay      bool
	canClipboard bool

	sceneName string
	input     *Input
	scene     *Scene
	watcher   *scenario.Watcher
	rng       *rand.Rand
	status    string
}

func NewGame(sceneName string, watcher *scenario.Watcher, debug, canClipboard bool) (*Game, error) {
	scene, err := LoadScene(sceneName)
	if err != nil {
		return nil, err
	}
	return &Game{
		debug:        debug,
		overlay:      debug,
		canClipboard: canClipboard,
		sceneName:    sceneName,
		input:        NewInput(),
		scene:        scene,
		watcher:      watcher,
		rng:          rand.New(rand.NewPCG(1, 2)),
	}, nil
}

func (g *Game) Update() error {
	g.frames++

	g.pollWatcher()
	g.input.Update()

	if g.input.CyclePressed {
		g.scene.CycleMover()
		g.scene.Depenetrate()
	}
	if g.input.ScatterPressed {
		g.scene.Scatter(g.rng)
	}
	if g.input.OverlayPressed {
		g.overlay = !g.overlay
	}
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.input.CopyPressed {
		g.copyScene()
	}
	if g.input.MovePressed {
		step, _ := g.scene.Probe(g.input.Cursor)
		res := g.scene.Move(step)
		if g.debug {
			log.Printf("viewer: move %v t=%g normal=%v", step, res.T, res.Normal)
		}
	}

	if !g.paused {
		if _, err := g.scene.StepScript(g.frames); err != nil {
			log.Printf("viewer: script: %v", err)
			g.paused = true
		}
	}

	return nil
}

// pollWatcher reloads the scene when its file changes on disk.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			path := change.Path
			if !change.IsScenario() || !sameScene(path, g.sceneName) {
				continue
			}
			if change.Removed {
				g.status = "scene file removed, keeping last load"
				log.Printf("viewer: %s removed", path)
				continue
			}
			scene, err := LoadScene(path)
			if err != nil {
				log.Printf("viewer: reload %s: %v", path, err)
				g.status = "reload failed: " + err.Error()
				continue
			}
			g.scene = scene
			g.status = "reloaded " + filepath.Base(path)
			log.Printf("viewer: reloaded %s", path)
		case err, ok := <-g.watcher.Errors:
			if ok && err != nil {
				log.Printf("viewer: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) copyScene() {
	b, err := g.scene.YAML()
	if err != nil {
		log.Printf("viewer: copy scene: %v", err)
		return
	}
	if !g.canClipboard {
		g.status = "clipboard unavailable"
		return
	}
	clipboard.Write(clipboard.FmtText, b)
	g.status = "scene copied"
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	s := g.scene
	for _, p := range s.samples {
		vector.FillRect(screen, float32(p.X), float32(p.Y), 1, 1, colornames.Lightslategray, false)
	}

	touching := map[int]bool{}
	for _, i := range s.Contacts() {
		touching[i] = true
	}
	for i, o := range s.obstacles {
		c := color.Color(colornames.Lightsteelblue)
		if touching[i] {
			c = colornames.Tomato
		}
		drawShape(screen, o, c)
	}

	drawShape(screen, s.mover, colornames.Gold)
	for i := range touching {
		mtv := s.detector.GetOverlap(s.mover, s.obstacles[i])
		from := geom.Position(s.mover)
		drawArrow(screen, from, from.Add(mtv.Normal.Mult(mtv.Distance)), colornames.Orange)
	}

	step, res := s.Probe(g.input.Cursor)
	from := geom.Position(s.mover)
	contact := from.Add(step.Mult(res.T))
	vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(g.input.Cursor.X), float32(g.input.Cursor.Y), 1, colornames.Dimgray, true)
	drawShape(screen, geom.Translate(s.mover, step.Mult(res.T)), colornames.Palegoldenrod)
	if res.Hit() {
		vector.FillCircle(screen, float32(contact.X), float32(contact.Y), 3, colornames.Crimson, true)
		drawArrow(screen, contact, contact.Add(res.Normal.Mult(normalLen)), colornames.Crimson)
	}

	if g.overlay {
		s.world.DebugDraw(screen)
		if r, ok := moverRadius(s.mover); ok {
			if ref, _, hit := s.world.SegmentFirst(from, step, r); hit {
				at := from.Add(step.Mult(ref.T))
				vector.StrokeCircle(screen, float32(at.X), float32(at.Y), 5, 1, colornames.Lime, true)
				drawArrow(screen, at, at.Add(ref.Normal.Mult(normalLen)), colornames.Lime)
			}
		}
	}

	hud := fmt.Sprintf("%s  FPS: %.2f  mover: %v\nt=%.4f normal=(%.3f, %.3f)  contacts=%d",
		s.file.Name, ebiten.ActualFPS(), s.mover, res.T, res.Normal.X, res.Normal.Y, len(touching))
	hud += "\nclick: move  space: shape  R: scatter  C: copy  P: chipmunk  S: pause  F12: quit"
	if g.status != "" {
		hud += "\n" + g.status
	}
	ebitenutil.DebugPrint(screen, hud)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

func drawShape(screen *ebiten.Image, s geom.Shape, c color.Color) {
	switch s := s.(type) {
	case geom.Point:
		vector.FillCircle(screen, float32(s.Pos.X), float32(s.Pos.Y), 2.5, c, true)
	case geom.Circle:
		vector.StrokeCircle(screen, float32(s.Center.X), float32(s.Center.Y), float32(s.R), 1.5, c, true)
	case geom.Rect:
		vector.StrokeRect(screen, float32(s.MinX), float32(s.MinY), float32(s.W()), float32(s.H()), 1.5, c, true)
	}
}

func drawArrow(screen *ebiten.Image, from, to geom.Vec2, c color.Color) {
	vector.StrokeLine(screen, float32(from.X), float32(from.Y), float32(to.X), float32(to.Y), 1.5, c, true)
	vector.FillCircle(screen, float32(to.X), float32(to.Y), 2, c, true)
}
