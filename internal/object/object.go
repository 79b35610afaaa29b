// Package object defines the game entities and their per-tick behavior.
//
// Entities never hold references to one another. The game state owns every
// collection and passes whatever an entity needs into its methods.
package object

import (
	"fmt"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// Color is a 24-bit RGB color tag carried by entities for renderers.
type Color uint32

// Entity colors.
const (
	ColorPlayer       Color = 0x00ffff
	ColorWhite        Color = 0xffffff
	ColorHeal         Color = 0x00ff00
	ColorCombo        Color = 0xffd700
	ColorBoss         Color = 0xff0088
	ColorWall         Color = 0x64c8ff
	ColorDamageNumber Color = 0xffff00
)

// Hex returns the color as a CSS hex string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// RGB splits the color into its channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Arena is the rectangular playfield.
type Arena struct {
	Width, Height float64
}

// DefaultArena returns the standard playfield.
func DefaultArena() Arena {
	return Arena{Width: config.ArenaWidth, Height: config.ArenaHeight}
}

// Clamp keeps p inside the arena, inset by margin on every side.
func (a Arena) Clamp(p physics.Vec, margin float64) physics.Vec {
	return physics.Vec{
		X: physics.Clamp(p.X, margin, a.Width-margin),
		Y: physics.Clamp(p.Y, margin, a.Height-margin),
	}
}

// Center returns the middle of the arena.
func (a Arena) Center() physics.Vec {
	return physics.Vec{X: a.Width / 2, Y: a.Height / 2}
}

// Spawner receives particles created during an update.
type Spawner interface {
	SpawnParticle(p *Particle)
}
