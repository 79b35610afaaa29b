package object

import (
	"math"
	"testing"

	"github.com/tomz197/battlecursor/internal/physics"
)

func TestProjectileBounceBudget(t *testing.T) {
	arena := Arena{Width: 100, Height: 100}
	p := NewProjectile(physics.Vec{X: 50, Y: 50}, 0, 30, 1, true, ColorPlayer)

	crossings := 0
	for i := 0; i < 50 && p.Active; i++ {
		before := p.Bounces
		p.Update(arena)
		if p.Bounces != before {
			crossings++
		}
	}
	if p.Active {
		t.Fatal("projectile still active after many crossings")
	}
	if crossings != 2 || p.Bounces != 2 {
		t.Fatalf("bounced %d times, want 2", p.Bounces)
	}
}

func TestProjectileBounceReflects(t *testing.T) {
	arena := Arena{Width: 100, Height: 100}
	p := NewProjectile(physics.Vec{X: 95, Y: 50}, 0, 10, 1, false, ColorWhite)
	p.Update(arena)
	if p.Vel.X >= 0 || p.Pos.X != 100 {
		t.Fatalf("after bounce pos=%+v vel=%+v", p.Pos, p.Vel)
	}
}

func TestProjectileCornerResolvesXFirst(t *testing.T) {
	arena := Arena{Width: 100, Height: 100}
	p := NewProjectile(physics.Vec{X: 98, Y: 98}, math.Pi/4, 10, 1, true, ColorPlayer)
	p.Update(arena)
	if p.Bounces != 1 || p.Vel.X >= 0 || p.Vel.Y <= 0 {
		t.Fatalf("corner: bounces=%d vel=%+v", p.Bounces, p.Vel)
	}
	p.Update(arena)
	if p.Bounces != 2 || p.Vel.Y >= 0 {
		t.Fatalf("corner second tick: bounces=%d vel=%+v", p.Bounces, p.Vel)
	}
}

func TestHeavyProjectileRadius(t *testing.T) {
	light := NewProjectile(physics.Vec{}, 0, 12, 1, true, ColorPlayer)
	heavy := NewProjectile(physics.Vec{}, 0, 12, 3, true, ColorPlayer)
	if light.Radius != 5 || heavy.Radius != 7.5 {
		t.Fatalf("radii = %v, %v", light.Radius, heavy.Radius)
	}
}

func TestParticleLifecycle(t *testing.T) {
	p := NewParticle(physics.Vec{}, physics.Vec{X: 10}, 3, 2, ColorWhite)
	p.Update()
	if p.Pos.X != 10 || math.Abs(p.Vel.X-9.8) > 1e-9 || !p.Active {
		t.Fatalf("after one update: %+v", p)
	}
	p.Update()
	if p.Active {
		t.Fatal("particle outlived its life")
	}
	p.Release()
}

func TestFeedbackLifetimes(t *testing.T) {
	d := NewDamageNumber(physics.Vec{}, 300, true)
	n := NewNotification(PowerupShield)
	if n.Text != "Shield" || n.Color != 0xffff00 {
		t.Fatalf("notification = %+v", n)
	}
	for i := 0; i < 60; i++ {
		d.Update()
		n.Update()
	}
	if d.Active || d.OffsetY != -60 {
		t.Fatalf("damage number after 60 ticks: %+v", d)
	}
	if !n.Active {
		t.Fatal("notification expired early")
	}
	for i := 0; i < 60; i++ {
		n.Update()
	}
	if n.Active {
		t.Fatal("notification outlived its life")
	}
}
