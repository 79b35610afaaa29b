package object

import (
	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// PowerupKind identifies a powerup effect.
type PowerupKind uint8

// Powerup kinds.
const (
	PowerupSpeed PowerupKind = iota
	PowerupRapid
	PowerupShield
	PowerupMultishot
	PowerupSlowmo
	PowerupMagnet
	PowerupHealth
)

// PowerupKinds lists every kind in spawn-table order.
var PowerupKinds = []PowerupKind{
	PowerupSpeed, PowerupRapid, PowerupShield, PowerupMultishot,
	PowerupSlowmo, PowerupMagnet, PowerupHealth,
}

type powerupInfo struct {
	key   string
	name  string
	color Color
}

var powerupInfos = [...]powerupInfo{
	PowerupSpeed:     {"speed", "Speed Boost", 0x00ff00},
	PowerupRapid:     {"rapid", "Rapid Fire", 0x0000ff},
	PowerupShield:    {"shield", "Shield", 0xffff00},
	PowerupMultishot: {"multishot", "Multi-Shot", 0xff00ff},
	PowerupSlowmo:    {"slowmo", "Slow Motion", 0x00ffff},
	PowerupMagnet:    {"magnet", "Magnet", 0xff8800},
	PowerupHealth:    {"health", "Health Pack", 0xff0000},
}

func (k PowerupKind) String() string {
	if int(k) < len(powerupInfos) {
		return powerupInfos[k].key
	}
	return "unknown"
}

// DisplayName is the name shown when the powerup is collected.
func (k PowerupKind) DisplayName() string {
	if int(k) < len(powerupInfos) {
		return powerupInfos[k].name
	}
	return "Unknown"
}

// Color is the powerup's display color.
func (k PowerupKind) Color() Color {
	if int(k) < len(powerupInfos) {
		return powerupInfos[k].color
	}
	return ColorWhite
}

// Timed reports whether the effect lasts for a duration rather than
// applying once on pickup.
func (k PowerupKind) Timed() bool {
	return k != PowerupShield && k != PowerupHealth
}

// Powerup is a collectible lying in the arena.
type Powerup struct {
	Kind     PowerupKind
	Pos      physics.Vec
	Radius   float64
	Rotation float64
	Active   bool
}

// NewPowerup creates a powerup at pos.
func NewPowerup(kind PowerupKind, pos physics.Vec) *Powerup {
	return &Powerup{
		Kind:   kind,
		Pos:    pos,
		Radius: config.PowerupRadius,
		Active: true,
	}
}

// Update spins the powerup and, when magnet is set, pulls it toward the
// player if close enough.
func (p *Powerup) Update(player physics.Vec, magnet bool) {
	p.Rotation += 0.05
	if !magnet {
		return
	}
	if physics.Distance(p.Pos, player) < config.MagnetRange {
		angle := player.Sub(p.Pos).Angle()
		p.Pos = p.Pos.Add(physics.FromAngle(angle, config.MagnetPull))
	}
}
