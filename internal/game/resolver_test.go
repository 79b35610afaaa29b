package game

import (
	"math"
	"testing"
	"time"

	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

func playerShot(x, y, angle float64, damage int) *object.Projectile {
	return object.NewProjectile(physics.Vec{X: x, Y: y}, angle, 12, damage, true, object.ColorPlayer)
}

func TestKillScoresWithCombo(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)

	first := object.NewEnemy(object.EnemyNormal, physics.Vec{X: 700, Y: 400}, 1)
	first.Health = 1
	s.Enemies = append(s.Enemies, first)
	s.Projectiles = append(s.Projectiles, playerShot(680, 400, 0, 1))
	step(s, clock, 1)

	if first.Active || s.Score != 100 || s.Kills != 1 || s.Player.Combo != 1 {
		t.Fatalf("after first kill: active %v score %d kills %d combo %d", first.Active, s.Score, s.Kills, s.Player.Combo)
	}
	if len(s.DamageNumbers) != 1 || s.DamageNumbers[0].Value != 100 || s.DamageNumbers[0].Combo {
		t.Fatalf("damage numbers = %+v", s.DamageNumbers)
	}

	clock.Advance(time.Second)
	second := object.NewEnemy(object.EnemyNormal, physics.Vec{X: 700, Y: 300}, 1)
	second.Health = 1
	s.Enemies = append(s.Enemies, second)
	s.Projectiles = append(s.Projectiles, playerShot(680, 300, 0, 1))
	step(s, clock, 1)

	if second.Active || s.Score != 250 || s.Player.Combo != 2 {
		t.Fatalf("after second kill: score %d combo %d", s.Score, s.Player.Combo)
	}
	if !hasEvent(s.DrainEvents(), EventEnemyKilled) {
		t.Fatal("no kill event")
	}
}

func TestProjectileHitsOnlyFirstEnemy(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)

	a := object.NewEnemy(object.EnemyTank, physics.Vec{X: 700, Y: 400}, 1)
	b := object.NewEnemy(object.EnemyTank, physics.Vec{X: 700, Y: 400}, 1)
	s.Enemies = append(s.Enemies, a, b)
	s.Projectiles = append(s.Projectiles, playerShot(680, 400, 0, 3))
	step(s, clock, 1)

	if a.Health != 5 || b.Health != 8 {
		t.Fatalf("health a=%d b=%d, want 5 and 8", a.Health, b.Health)
	}
	if len(s.Projectiles) != 0 {
		t.Fatalf("projectile survived the hit")
	}
}

func TestSplitterDeathSpawnsChildren(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)

	sp := object.NewEnemy(object.EnemySplitter, physics.Vec{X: 800, Y: 400}, 1)
	sp.Health = 1
	s.Enemies = append(s.Enemies, sp)
	s.Projectiles = append(s.Projectiles, playerShot(780, 400, 0, 1))
	step(s, clock, 1)

	if len(s.Enemies) != 2 {
		t.Fatalf("enemies after split = %d, want 2", len(s.Enemies))
	}
	for _, c := range s.Enemies {
		if c.Kind != object.EnemyNormal || c.Health != 1 {
			t.Fatalf("child = %v health %d", c.Kind, c.Health)
		}
	}
	if s.Score != 200 {
		t.Fatalf("score = %d", s.Score)
	}
}

func TestEnemyContactDamage(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)
	s.Preset.Damage = 1.5

	tank := object.NewEnemy(object.EnemyTank, physics.Vec{X: 620, Y: 400}, 1)
	s.Enemies = append(s.Enemies, tank)
	step(s, clock, 1)

	if s.Player.Health != 3 {
		t.Fatalf("health = %d, want 3", s.Player.Health)
	}
	if tank.Active || len(s.Enemies) != 0 {
		t.Fatal("enemy not consumed on contact")
	}
	if s.Kills != 0 || s.Score != 0 {
		t.Fatal("contact counted as a kill")
	}
	if s.ScreenShake == 0 {
		t.Fatal("no screen shake")
	}
}

func TestContactWhileShielded(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)
	s.Player.Shield = 1

	s.Enemies = append(s.Enemies, object.NewEnemy(object.EnemyKamikaze, physics.Vec{X: 615, Y: 400}, 1))
	step(s, clock, 1)

	if s.Player.Shield != 0 || s.Player.Health != 4 {
		t.Fatalf("shield %d health %d, want 0 and 4", s.Player.Shield, s.Player.Health)
	}
}

func TestKamikazeSplash(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)

	kamikaze := object.NewEnemy(object.EnemyKamikaze, physics.Vec{X: 615, Y: 400}, 1)
	bystander := object.NewEnemy(object.EnemySupport, physics.Vec{X: 645, Y: 400}, 1)
	distant := object.NewEnemy(object.EnemyTank, physics.Vec{X: 900, Y: 400}, 1)
	s.Enemies = append(s.Enemies, kamikaze, bystander, distant)
	step(s, clock, 1)

	if s.Player.Health != 3 {
		t.Fatalf("health = %d, want 3", s.Player.Health)
	}
	if kamikaze.Active || bystander.Active {
		t.Fatal("kamikaze or bystander survived")
	}
	if !distant.Active || distant.Health != 8 {
		t.Fatal("distant enemy caught in the blast")
	}
	if s.Kills != 0 || s.Score != 0 || s.Player.Combo != 0 {
		t.Fatalf("splash credited: kills %d score %d", s.Kills, s.Score)
	}
	if len(s.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1", len(s.Enemies))
	}
}

func TestEnemyProjectileDamageScaled(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)
	s.Preset.Damage = 0.8

	s.Projectiles = append(s.Projectiles,
		object.NewProjectile(physics.Vec{X: 620, Y: 400}, math.Pi, 12, 2, false, object.ColorBoss))
	step(s, clock, 1)

	if s.Player.Health != 3 {
		t.Fatalf("health = %d, want 3", s.Player.Health)
	}
	if !hasEvent(s.DrainEvents(), EventPlayerHurt) {
		t.Fatal("no hurt event")
	}
}

func TestWallBlocksProjectile(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)

	if !s.DragRelease(physics.Vec{X: 650, Y: 300}, physics.Vec{X: 650, Y: 450}) {
		t.Fatal("wall not placed")
	}
	tank := object.NewEnemy(object.EnemyTank, physics.Vec{X: 660, Y: 400}, 1)
	s.Enemies = append(s.Enemies, tank)
	s.Projectiles = append(s.Projectiles, playerShot(640, 400, 0, 1))
	step(s, clock, 1)

	if tank.Health != 8 {
		t.Fatalf("tank hit through wall: health %d", tank.Health)
	}
	if len(s.Projectiles) != 0 {
		t.Fatal("projectile survived the wall")
	}
}

func TestPowerupCollection(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)
	s.Player.Health = 2

	s.Powerups = append(s.Powerups,
		object.NewPowerup(object.PowerupShield, s.Player.Pos),
		object.NewPowerup(object.PowerupHealth, s.Player.Pos),
		object.NewPowerup(object.PowerupSpeed, s.Player.Pos),
	)
	step(s, clock, 1)

	if s.Player.Shield != 3 || s.Player.Health != 4 {
		t.Fatalf("shield %d health %d", s.Player.Shield, s.Player.Health)
	}
	if !s.Player.HasPowerup(object.PowerupSpeed) {
		t.Fatal("speed not active")
	}
	if s.Score != 150 || len(s.Notifications) != 3 || len(s.Powerups) != 0 {
		t.Fatalf("score %d notifications %d powerups %d", s.Score, len(s.Notifications), len(s.Powerups))
	}

	clock.Advance(8 * time.Second)
	s.Step(Input{})
	if s.Player.HasPowerup(object.PowerupSpeed) {
		t.Fatal("speed did not expire")
	}
}

func TestBossCycle(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)
	s.nonBossKills, s.Kills = 9, 9

	e := object.NewEnemy(object.EnemyNormal, physics.Vec{X: 700, Y: 400}, 1)
	e.Health = 1
	s.Enemies = append(s.Enemies, e)
	s.Projectiles = append(s.Projectiles, playerShot(680, 400, 0, 1))
	step(s, clock, 1)
	if s.Boss != nil {
		t.Fatal("boss spawned in the same step as the kill")
	}

	step(s, clock, 1)
	if s.Boss == nil {
		t.Fatal("boss not spawned at 10 kills")
	}
	if s.Boss.MaxHealth != 70 {
		t.Fatalf("boss health = %d, want 70", s.Boss.MaxHealth)
	}
	if !hasEvent(s.DrainEvents(), EventBossSpawned) {
		t.Fatal("no boss spawn event")
	}

	boss := s.Boss
	boss.Pos = physics.Vec{X: 600, Y: 200}
	boss.Health = 1
	s.Projectiles = append(s.Projectiles, playerShot(600, 200, math.Pi/2, 1))
	step(s, clock, 1)

	if s.Boss != nil || boss.Active {
		t.Fatal("boss survived")
	}
	if s.Wave != 2 || s.Kills != 11 || s.nonBossKills != 10 {
		t.Fatalf("wave %d kills %d non-boss %d", s.Wave, s.Kills, s.nonBossKills)
	}
	if s.Score != 100+1500 {
		t.Fatalf("score = %d, want 1600", s.Score)
	}

	step(s, clock, 5)
	if s.Boss != nil {
		t.Fatal("boss respawned without new kills")
	}
}

func TestBossSurvivesContact(t *testing.T) {
	s, clock := newTestState(t)
	quiet(s)
	boss := object.NewBoss(physics.Vec{X: 600, Y: 100}, 1, 1, 1)
	s.Boss = boss
	s.Enemies = append(s.Enemies, boss)

	// Let the opening volley go and clear it so only contact can hurt.
	step(s, clock, 1)
	s.Projectiles = nil

	boss.Pos = physics.Vec{X: 620, Y: 400}
	step(s, clock, 1)
	if !boss.Active || s.Player.Health != 3 {
		t.Fatalf("boss active %v player health %d", boss.Active, s.Player.Health)
	}

	step(s, clock, 1)
	if s.Player.Health != 3 {
		t.Fatalf("contact damage repeated within cooldown: health %d", s.Player.Health)
	}
}
