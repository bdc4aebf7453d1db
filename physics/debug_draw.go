package physics

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
)

// DebugDraw renders the chipmunk shapes, useful for checking that the
// mirrored world lines up with the geom obstacles.
func (w *World) DebugDraw(screen *ebiten.Image) {
	if w == nil || w.space == nil || screen == nil {
		return
	}
	cp.DrawSpace(w.space, &chipmunkDrawer{screen: screen})
}

type chipmunkDrawer struct {
	screen *ebiten.Image
}

func (d *chipmunkDrawer) DrawCircle(pos cp.Vector, angle, radius float64, outline, fill cp.FColor, data interface{}) {
	c := fcolorToRGBA(outline)
	vector.StrokeCircle(d.screen, float32(pos.X), float32(pos.Y), float32(radius), 1, c, true)
	ax := pos.X + math.Cos(angle)*radius
	ay := pos.Y + math.Sin(angle)*radius
	vector.StrokeLine(d.screen, float32(pos.X), float32(pos.Y), float32(ax), float32(ay), 1, c, true)
}

func (d *chipmunkDrawer) DrawSegment(a, b cp.Vector, fill cp.FColor, data interface{}) {
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, fcolorToRGBA(fill), true)
}

func (d *chipmunkDrawer) DrawFatSegment(a, b cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, fcolorToRGBA(outline), true)
	if radius > 0 {
		d.DrawCircle(a, 0, radius, outline, fill, data)
		d.DrawCircle(b, 0, radius, outline, fill, data)
	}
}

func (d *chipmunkDrawer) DrawPolygon(count int, verts []cp.Vector, radius float64, outline, fill cp.FColor, data interface{}) {
	if count == 0 {
		return
	}
	c := fcolorToRGBA(outline)
	for i := 0; i < count; i++ {
		a := verts[i]
		b := verts[(i+1)%count]
		vector.StrokeLine(d.screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, c, true)
	}
}

func (d *chipmunkDrawer) DrawDot(size float64, pos cp.Vector, fill cp.FColor, data interface{}) {
	vector.FillCircle(d.screen, float32(pos.X), float32(pos.Y), float32(size/2), fcolorToRGBA(fill), true)
}

func (d *chipmunkDrawer) Flags() uint {
	return cp.DRAW_SHAPES
}

func (d *chipmunkDrawer) OutlineColor() cp.FColor {
	return cpColor(0.2, 1.0, 0.2, 1.0)
}

func (d *chipmunkDrawer) ShapeColor(shape *cp.Shape, data interface{}) cp.FColor {
	return cpColor(0.4, 0.7, 1.0, 0.6)
}

func (d *chipmunkDrawer) ConstraintColor() cp.FColor {
	return cpColor(0.7, 0.7, 0.7, 1.0)
}

func (d *chipmunkDrawer) CollisionPointColor() cp.FColor {
	return cpColor(1.0, 0.1, 0.1, 1.0)
}

func (d *chipmunkDrawer) Data() interface{} {
	return nil
}

func fcolorToRGBA(c cp.FColor) color.RGBA {
	clamp := func(v float32) uint8 {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		return uint8(v * 255)
	}
	return color.RGBA{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: clamp(c.A)}
}

func cpColor(r, g, b, a float32) cp.FColor {
	return cp.FColor{R: r, G: g, B: b, A: a}
}
