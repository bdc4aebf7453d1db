package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/collide/geom"
)

// Input holds the viewer's per-frame input state.
type Input struct {
	// Cursor is the mouse position in screen pixels.
	Cursor geom.Vec2
	// MovePressed is true on the frame the left mouse button was pressed.
	MovePressed bool
	// CyclePressed swaps the mover's shape kind.
	CyclePressed   bool
	ScatterPressed bool
	CopyPressed    bool
	// OverlayPressed toggles the chipmunk overlay.
	OverlayPressed bool
	// PausePressed toggles scripted motion.
	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls mouse and keyboard.
func (i *Input) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		os.Exit(0)
	}

	mx, my := ebiten.CursorPosition()
	i.Cursor = geom.Vec2{X: float64(mx), Y: float64(my)}

	i.MovePressed = inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.CyclePressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.ScatterPressed = inpututil.IsKeyJustPressed(ebiten.KeyR)
	i.CopyPressed = inpututil.IsKeyJustPressed(ebiten.KeyC)
	i.OverlayPressed = inpututil.IsKeyJustPressed(ebiten.KeyP)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyS)
}
