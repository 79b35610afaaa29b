package game

import (
	"time"

	"github.com/tomz197/battlecursor/internal/object"
)

// Step advances the match by one frame. Timers are checked every frame;
// while slow motion is active the simulation body runs on every other frame.
// Step does nothing once the match is over.
func (s *State) Step(in Input) {
	if s.Over {
		return
	}

	now := s.clock.Now()
	s.elapsed = now.Sub(s.startedAt)
	s.expire(now)

	s.Frame++
	if s.Player.HasPowerup(object.PowerupSlowmo) && s.Frame%2 == 0 {
		return
	}

	s.Player.Move(in.Move)
	s.schedule(now)
	s.updateEnemies(now)
	s.updateProjectiles(now)
	s.updatePowerups(now)
	s.updateFeedback()

	s.compact()
	s.flushSpawned()
}

// expire releases player cooldowns and effects and removes expired walls.
func (s *State) expire(now time.Time) {
	s.Player.Tick(now)
	for _, w := range s.Walls {
		w.Expire(now)
	}
}
