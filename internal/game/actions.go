package game

import (
	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

// PressFire starts charging a shot.
func (s *State) PressFire() {
	if s.Over {
		return
	}
	s.Player.StartCharge(s.clock.Now())
}

// ReleaseFire fires toward aim: a charged shot if the charge was held long
// enough, otherwise a regular shot if the cooldown allows. Returns the number
// of projectiles fired.
func (s *State) ReleaseFire(aim physics.Vec) int {
	if s.Over {
		return 0
	}
	now := s.clock.Now()

	shots := s.Player.ReleaseCharge(aim, now)
	if len(shots) > 0 {
		s.shake(config.ChargedShotShake)
		s.emit(EventChargedShot, s.Player.Pos, len(shots))
	} else {
		shots = s.Player.Shoot(aim, false, now)
		if len(shots) > 0 {
			s.emit(EventShot, s.Player.Pos, len(shots))
		}
	}

	s.Projectiles = append(s.Projectiles, shots...)
	return len(shots)
}

// Dash moves the player toward aim if the dash is available.
func (s *State) Dash(aim physics.Vec) bool {
	if s.Over {
		return false
	}
	if !s.Player.Dash(aim, s.clock.Now()) {
		return false
	}
	s.emit(EventDash, s.Player.Pos, 0)
	return true
}

// DragRelease ends a drag gesture. A long enough drag places a wall when the
// wall is ready and drops any charge in progress; anything else is treated
// as a fire release aimed at end. Returns true when a wall was placed.
func (s *State) DragRelease(start, end physics.Vec) bool {
	if s.Over {
		return false
	}
	now := s.clock.Now()

	if physics.Distance(start, end) > config.WallMinDrag && s.Player.CanPlaceWall() {
		w := object.NewWall(start, end, now)
		s.Walls = append(s.Walls, w)
		s.Player.StartWallCooldown(now)
		s.Player.CancelCharge()
		s.emit(EventWallPlaced, w.Start, int(w.Length()))
		return true
	}

	s.ReleaseFire(end)
	return false
}
