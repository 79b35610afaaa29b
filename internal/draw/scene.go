package draw

import (
	"math"
	"strconv"

	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

// Colors used only by the terminal scene.
const (
	colorArenaEdge object.Color = 0x303040
	colorCrosshair object.Color = 0xffffff
	colorShield    object.Color = 0xffff00
	colorCharge    object.Color = 0xffaa00
	colorPreview   object.Color = 0x4080a0
)

// minParticleAlpha hides particles too faded to read at terminal resolution.
const minParticleAlpha = 0.3

// Overlay is the client-side state drawn on top of the match.
type Overlay struct {
	Aim       physics.Vec
	WallStart *physics.Vec // Pending wall drag start, if any
}

func pt(v physics.Vec) Point { return Point{X: v.X, Y: v.Y} }

// Scene draws the whole match onto the canvas. The caller clears the canvas
// and renders it afterwards.
func Scene(c *Canvas, s *game.State, o Overlay) {
	shake := ShakeOffset(s.ScreenShake, s.Frame)
	c.SetShift(shake.X, shake.Y)
	defer c.SetShift(0, 0)

	w, h := s.Arena.Width, s.Arena.Height
	c.DrawPolygon([]Point{{0, 0}, {w - 1, 0}, {w - 1, h - 1}, {0, h - 1}}, colorArenaEdge, false)

	for _, wall := range s.Walls {
		c.DrawLine(pt(wall.Start), pt(wall.End), object.ColorWall)
	}
	for _, p := range s.Powerups {
		c.DrawCircle(pt(p.Pos), p.Radius, p.Kind.Color(), false)
		c.SetFloat(p.Pos.X, p.Pos.Y, p.Kind.Color())
	}
	for _, p := range s.Particles {
		if p.Alpha() >= minParticleAlpha {
			c.SetFloat(p.Pos.X, p.Pos.Y, p.Color)
		}
	}
	for _, e := range s.Enemies {
		c.DrawCircle(pt(e.Pos), e.Radius, e.Color, true)
	}
	for _, p := range s.Projectiles {
		c.DrawCircle(pt(p.Pos), p.Radius, p.Color, true)
	}

	player(c, s)

	if o.WallStart != nil {
		c.DrawLine(pt(*o.WallStart), pt(o.Aim), colorPreview)
	}
	crosshair(c, o.Aim)
}

func player(c *Canvas, s *game.State) {
	p := s.Player
	for _, t := range p.Trail {
		c.SetFloat(t.X, t.Y, colorArenaEdge)
	}

	// Blink while invulnerable.
	if !p.Invulnerable() || s.Frame%4 < 2 {
		c.DrawCircle(pt(p.Pos), p.Radius, object.ColorPlayer, true)
	}
	if p.Shield > 0 {
		c.DrawCircle(pt(p.Pos), p.Radius+6, colorShield, false)
	}
	if charge := p.ChargePercent(s.Now()); charge > 0 {
		c.DrawCircle(pt(p.Pos), p.Radius+12*charge, colorCharge, false)
	}
}

func crosshair(c *Canvas, aim physics.Vec) {
	const arm = 12
	c.DrawLine(Point{aim.X - arm, aim.Y}, Point{aim.X + arm, aim.Y}, colorCrosshair)
	c.DrawLine(Point{aim.X, aim.Y - arm}, Point{aim.X, aim.Y + arm}, colorCrosshair)
}

// ShakeOffset returns the logical screen offset for a shake intensity.
// It is derived from the frame number so replays shake the same way.
func ShakeOffset(intensity float64, frame uint64) physics.Vec {
	if intensity <= 0 {
		return physics.Vec{}
	}
	f := float64(frame)
	return physics.Vec{
		X: math.Sin(f*1.7) * intensity,
		Y: math.Cos(f*2.3) * intensity,
	}
}

// Labels writes the floating texts (damage numbers and powerup
// notifications) over the canvas and marks their cells for repaint.
func Labels(cw *ChunkWriter, c *Canvas, s *game.State) {
	for _, d := range s.DamageNumbers {
		text := strconv.Itoa(d.Value)
		color := object.ColorDamageNumber
		if d.Combo {
			color = object.ColorCombo
		}
		col, row := c.LogicalToTerminal(d.Pos.X, d.Pos.Y+d.OffsetY)
		label(cw, c, col-len(text)/2, row, text, color)
	}

	if len(s.Notifications) == 0 {
		return
	}
	center := c.TerminalWidth() / 2
	for i, n := range s.Notifications {
		if n.Alpha() < minParticleAlpha {
			continue
		}
		label(cw, c, center-len(n.Text)/2, c.TerminalHeight()/4+i, n.Text, n.Color)
	}
}

func label(cw *ChunkWriter, c *Canvas, col, row int, text string, color object.Color) {
	if row < 1 || row > c.TerminalHeight() || col < 1 || col+len(text)-1 > c.TerminalWidth() {
		return
	}
	cw.WriteAt(col, row, FgColor(color)+text+ColorReset)
	c.MarkTextDirty(col, row, len(text))
}
