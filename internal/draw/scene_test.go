package draw

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

func newScene(t *testing.T) (*Canvas, *game.State) {
	t.Helper()
	clock := game.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	s := game.New(game.Options{Clock: clock, Seed: 1})
	return NewScaledCanvas(120, 40, s.Arena.Width, s.Arena.Height), s
}

func TestSceneDrawsEntities(t *testing.T) {
	c, s := newScene(t)
	enemy := object.NewEnemy(object.EnemyTank, physics.Vec{X: 200, Y: 200}, 1)
	s.Enemies = append(s.Enemies, enemy)

	Scene(c, s, Overlay{Aim: physics.Vec{X: 1000, Y: 100}})

	if got := c.Pixel(60, 40); got != object.ColorPlayer {
		t.Errorf("player pixel = %x", got)
	}
	if got := c.Pixel(20, 20); got != enemy.Color {
		t.Errorf("enemy pixel = %x", got)
	}
	if got := c.Pixel(100, 10); got != colorCrosshair {
		t.Errorf("crosshair pixel = %x", got)
	}
}

func TestShakeOffset(t *testing.T) {
	if v := ShakeOffset(0, 10); v != (physics.Vec{}) {
		t.Errorf("no shake moved the view: %+v", v)
	}
	v := ShakeOffset(5, 3)
	if v.Len() == 0 || v.X > 5 || v.X < -5 || v.Y > 5 || v.Y < -5 {
		t.Errorf("shake offset %+v outside intensity 5", v)
	}
}

func TestLabels(t *testing.T) {
	c, s := newScene(t)
	s.DamageNumbers = append(s.DamageNumbers, object.NewDamageNumber(physics.Vec{X: 600, Y: 200}, 150, false))
	s.Notifications = append(s.Notifications, object.NewNotification(object.PowerupShield))

	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	Labels(cw, c, s)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "150") || !strings.Contains(out.String(), "Shield") {
		t.Fatalf("labels output = %q", out.String())
	}
}
