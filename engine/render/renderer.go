package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/survivors-engine/engine/core"
	"github.com/1siamBot/survivors-engine/engine/spatial"
)

var (
	background  = color.RGBA{18, 22, 28, 255}
	gridColor   = color.RGBA{255, 255, 255, 18}
	playerColor = color.RGBA{60, 160, 255, 255}
	hurtColor   = color.RGBA{255, 255, 255, 255}
	enemyColor  = color.RGBA{200, 60, 60, 255}
	bossColor   = color.RGBA{150, 20, 160, 255}
	shotColor   = color.RGBA{255, 220, 90, 255}
	gemColor    = color.RGBA{80, 230, 140, 255}
	auraColor   = color.RGBA{240, 240, 200, 40}
	orbitColor  = color.RGBA{230, 210, 120, 255}
	ringColor   = color.RGBA{80, 230, 140, 60}
)

// WorldRenderer draws the simulation as flat circles, one color per
// category.
type WorldRenderer struct {
	Camera   *Camera
	ShowGrid bool
}

func NewWorldRenderer(screenW, screenH int) *WorldRenderer {
	return &WorldRenderer{Camera: NewCamera(screenW, screenH)}
}

// Draw renders every visible body in w. The spatial grid is drawn under
// them when ShowGrid is set.
func (r *WorldRenderer) Draw(screen *ebiten.Image, w *core.World, grid *spatial.Grid) {
	screen.Fill(background)
	if r.ShowGrid && grid != nil {
		r.drawGrid(screen, grid)
	}

	// hazards first so projectiles and bodies stay readable on top
	for _, id := range w.QueryCategory(core.CatHazard) {
		body, ok := w.Body(id)
		if !ok {
			continue
		}
		if w.Has(id, core.CompAura) {
			r.circle(screen, body, auraColor)
		} else {
			r.circle(screen, body, orbitColor)
		}
	}
	for _, id := range w.QueryCategory(core.CatPickup) {
		if body, ok := w.Body(id); ok {
			r.circle(screen, body, gemColor)
		}
	}
	for _, id := range w.QueryCategory(core.CatEnemy) {
		body, ok := w.Body(id)
		if !ok {
			continue
		}
		clr := enemyColor
		if en, ok := w.Get(id, core.CompEnemy).(*core.Enemy); ok && en.Boss {
			clr = bossColor
		}
		r.circle(screen, body, clr)
		if hp, ok := w.Get(id, core.CompHealth).(*core.Health); ok && hp.Ratio() < 1 {
			r.healthBar(screen, body, hp.Ratio())
		}
	}
	for _, id := range w.QueryCategory(core.CatProjectile) {
		if body, ok := w.Body(id); ok {
			r.circle(screen, body, shotColor)
		}
	}
	for _, id := range w.QueryCategory(core.CatPlayer) {
		body, ok := w.Body(id)
		if !ok {
			continue
		}
		if stats, ok := w.Get(id, core.CompPlayer).(*core.PlayerStats); ok {
			r.ring(screen, body.Pos, stats.AttractionRadius, ringColor)
		}
		clr := playerColor
		if w.Has(id, core.CompInvincible) {
			clr = hurtColor
		}
		r.circle(screen, body, clr)
	}
}

func (r *WorldRenderer) circle(screen *ebiten.Image, b core.Body, clr color.Color) {
	if !r.Camera.OnScreen(b.Pos, b.Radius) {
		return
	}
	sx, sy := r.Camera.WorldToScreen(b.Pos)
	vector.DrawFilledCircle(screen, sx, sy, float32(b.Radius*r.Camera.Zoom), clr, true)
}

func (r *WorldRenderer) ring(screen *ebiten.Image, p core.Vec2, radius float64, clr color.Color) {
	sx, sy := r.Camera.WorldToScreen(p)
	vector.StrokeCircle(screen, sx, sy, float32(radius*r.Camera.Zoom), 1, clr, true)
}

func (r *WorldRenderer) healthBar(screen *ebiten.Image, b core.Body, ratio float64) {
	if !r.Camera.OnScreen(b.Pos, b.Radius) {
		return
	}
	sx, sy := r.Camera.WorldToScreen(b.Pos)
	w := float32(b.Radius * 2 * r.Camera.Zoom)
	y := sy - float32(b.Radius*r.Camera.Zoom) - 5
	vector.DrawFilledRect(screen, sx-w/2, y, w, 3, color.RGBA{40, 40, 40, 200}, false)
	vector.DrawFilledRect(screen, sx-w/2, y, w*float32(ratio), 3, color.RGBA{0, 200, 0, 255}, false)
}

// drawGrid outlines the cells of g that overlap the screen.
func (r *WorldRenderer) drawGrid(screen *ebiten.Image, g *spatial.Grid) {
	lo, hi := r.Camera.Visible(0)
	cs := g.CellSize()
	for x := math.Floor(lo.X/cs) * cs; x <= hi.X; x += cs {
		sx, _ := r.Camera.WorldToScreen(core.Vec2{X: x})
		vector.StrokeLine(screen, sx, 0, sx, float32(r.Camera.ScreenH), 1, gridColor, false)
	}
	for y := math.Floor(lo.Y/cs) * cs; y <= hi.Y; y += cs {
		_, sy := r.Camera.WorldToScreen(core.Vec2{Y: y})
		vector.StrokeLine(screen, 0, sy, float32(r.Camera.ScreenW), sy, 1, gridColor, false)
	}
}
