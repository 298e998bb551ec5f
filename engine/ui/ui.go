package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/survivors-engine/engine/sim"
)

// Overlay is the full-screen message shown over the world
type Overlay uint8

const (
	OverlayNone Overlay = iota
	OverlayPaused
	OverlayGameOver
)

var face = text.NewGoXFace(basicfont.Face7x13)

const lineHeight = 16

// HUD is the heads-up display
type HUD struct {
	ScreenW, ScreenH int
	TopBarHeight     int
	ShowDebug        bool
}

func NewHUD(sw, sh int) *HUD {
	return &HUD{ScreenW: sw, ScreenH: sh, TopBarHeight: 40}
}

// Draw renders the HUD and, if set, the overlay
func (h *HUD) Draw(screen *ebiten.Image, st sim.Stats, overlay Overlay) {
	h.drawTopBar(screen, st)
	if h.ShowDebug {
		for i, line := range DebugLines(st) {
			drawText(screen, line, 10, h.TopBarHeight+10+i*lineHeight, color.RGBA{180, 180, 180, 255})
		}
	}
	switch overlay {
	case OverlayPaused:
		h.drawOverlay(screen, "PAUSED", "press Esc to resume")
	case OverlayGameOver:
		h.drawOverlay(screen, "GAME OVER", fmt.Sprintf("survived %s | level %d | %d kills | Enter to restart", Clock(st.Elapsed), st.Level, st.Kills))
	}
}

func (h *HUD) drawTopBar(screen *ebiten.Image, st sim.Stats) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.TopBarHeight), color.RGBA{0, 0, 0, 180}, false)

	// XP bar across the top edge
	xp := 0.0
	if st.XPToNext > 0 {
		xp = st.XP / st.XPToNext
	}
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW)*float32(xp), 4, color.RGBA{60, 140, 255, 255}, false)

	// HP bar
	hp := 0.0
	if st.MaxHealth > 0 {
		hp = max(st.Health, 0) / st.MaxHealth
	}
	bx, by, bw, bh := float32(10), float32(14), float32(160), float32(14)
	vector.DrawFilledRect(screen, bx, by, bw, bh, color.RGBA{40, 40, 40, 200}, false)
	vector.DrawFilledRect(screen, bx, by, bw*float32(hp), bh, healthColor(hp), false)
	vector.StrokeRect(screen, bx, by, bw, bh, 1, color.RGBA{200, 200, 200, 120}, false)

	drawText(screen, StatusLine(st), 185, 14, color.White)
}

func (h *HUD) drawOverlay(screen *ebiten.Image, title, subtitle string) {
	vector.DrawFilledRect(screen, 0, 0, float32(h.ScreenW), float32(h.ScreenH), color.RGBA{0, 0, 0, 150}, false)
	cx, cy := h.ScreenW/2, h.ScreenH/2
	drawCentered(screen, title, cx, cy-lineHeight, color.RGBA{255, 220, 90, 255})
	drawCentered(screen, subtitle, cx, cy+lineHeight, color.RGBA{220, 220, 220, 255})
}

func healthColor(ratio float64) color.Color {
	switch {
	case ratio < 0.25:
		return color.RGBA{255, 0, 0, 255}
	case ratio < 0.5:
		return color.RGBA{255, 200, 0, 255}
	}
	return color.RGBA{0, 200, 0, 255}
}

func drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}

func drawCentered(screen *ebiten.Image, s string, cx, cy int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(cx), float64(cy))
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	text.Draw(screen, s, face, op)
}

// Clock formats seconds as m:ss.
func Clock(seconds float64) string {
	s := int(max(seconds, 0))
	return fmt.Sprintf("%d:%02d", s/60, s%60)
}

// StatusLine is the always-visible summary next to the health bar.
func StatusLine(st sim.Stats) string {
	return fmt.Sprintf("%s  LV %d  KILLS %d  GOLD %d  x%.1f", Clock(st.Elapsed), st.Level, st.Kills, st.Gold, st.Difficulty)
}

// DebugLines lists the live entity counts.
func DebugLines(st sim.Stats) []string {
	return []string{
		fmt.Sprintf("tick %d", st.Tick),
		fmt.Sprintf("entities %d", st.Entities),
		fmt.Sprintf("enemies %d  projectiles %d", st.Enemies, st.Projectiles),
		fmt.Sprintf("pickups %d  hazards %d", st.Pickups, st.Hazards),
		fmt.Sprintf("hit records %d", st.HitRecords),
	}
}
