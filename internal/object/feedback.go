package object

import (
	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/physics"
)

// DamageNumber is a floating number shown where damage was dealt.
type DamageNumber struct {
	Pos     physics.Vec
	Value   int
	Combo   bool // Drawn highlighted while a combo is running
	Life    int  // Ticks remaining
	OffsetY float64
	Active  bool
}

// NewDamageNumber creates a damage number at pos.
func NewDamageNumber(pos physics.Vec, value int, combo bool) *DamageNumber {
	return &DamageNumber{
		Pos:    pos,
		Value:  value,
		Combo:  combo,
		Life:   config.DamageNumberLife,
		Active: true,
	}
}

// Update rises the number and counts down its life.
func (d *DamageNumber) Update() {
	d.Life--
	d.OffsetY--
	if d.Life <= 0 {
		d.Active = false
	}
}

// Notification announces a collected powerup.
type Notification struct {
	Text   string
	Color  Color
	Life   int // Ticks remaining
	Active bool
}

// NewNotification creates a notification for a collected powerup.
func NewNotification(kind PowerupKind) *Notification {
	return &Notification{
		Text:   kind.DisplayName(),
		Color:  kind.Color(),
		Life:   config.NotificationLife,
		Active: true,
	}
}

// Update counts down the notification's life.
func (n *Notification) Update() {
	n.Life--
	if n.Life <= 0 {
		n.Active = false
	}
}

// Alpha fades the notification out over its final half second.
func (n *Notification) Alpha() float64 {
	if n.Life < 30 {
		return float64(n.Life) / 30
	}
	return 1
}
