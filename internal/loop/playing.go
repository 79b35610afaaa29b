package loop

import (
	"time"

	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/input"
	"github.com/tomz197/battlecursor/internal/physics"
)

// aimSpeed is how far the arrow keys move the crosshair per frame.
const aimSpeed = 14.0

// updateMenu handles difficulty selection.
func (s *Session) updateMenu() {
	in := s.state.Input
	n := len(s.state.Difficulty)
	if n == 0 {
		return
	}

	if in.Number >= 1 && in.Number <= n {
		s.state.Selected = in.Number - 1
	}

	// Held keys repeat, so only the first frame of a press moves the selection.
	up, down := in.AimUp || in.Up, in.AimDown || in.Down
	if up && !s.state.upHeld {
		s.state.Selected = (s.state.Selected + n - 1) % n
	}
	if down && !s.state.downHeld {
		s.state.Selected = (s.state.Selected + 1) % n
	}
	s.state.upHeld, s.state.downHeld = up, down
	if in.Fire || in.Enter {
		s.startMatch(s.state.Difficulty[s.state.Selected])
	}
}

// startMatch begins a new match on the named difficulty.
func (s *Session) startMatch(difficulty string) {
	preset, err := s.opts.Presets.Lookup(difficulty)
	if err != nil {
		s.logger.Error("Cannot start match", "err", err)
		return
	}

	input.ResetKeyInput(s.inputStream)
	s.state.Match = game.New(game.Options{Preset: preset, Clock: s.opts.Clock, Seed: s.opts.Seed})
	s.state.Aim = s.state.Match.Player.Pos.Add(physics.Vec{X: 100})
	s.state.WallStart = nil
	s.state.DragStart = nil
	s.state.Screen = ScreenPlaying
	s.logger.Info("Match started", "difficulty", preset.Name)
}

// updatePlaying maps this frame's input onto the match and advances it.
func (s *Session) updatePlaying() {
	m := s.state.Match
	in := s.state.Input

	if in.Escape {
		s.logger.Info("Match abandoned", "score", m.Score)
		s.state.Match = nil
		s.state.Screen = ScreenMenu
		return
	}

	s.applyActions(m, in)
	m.Step(game.Input{Move: input.KeyVector(in.Up, in.Down, in.Left, in.Right)})

	for _, e := range m.DrainEvents() {
		switch e.Kind {
		case game.EventBossSpawned:
			s.logger.Debug("Boss spawned", "health", e.Value, "wave", m.Wave)
		case game.EventBossDefeated:
			s.logger.Debug("Boss defeated", "wave", m.Wave)
		}
	}

	if m.Over {
		s.finishMatch(m)
	}
}

// applyActions turns keys and mouse reports into match actions.
//
// Keyboard: space shoots, c starts and releases a charge, e dashes, f marks
// the first wall corner and places the wall on the second press.
// Mouse: left press starts a charge, left release fires or places a wall
// when dragged, right press dashes. Motion moves the crosshair.
func (s *Session) applyActions(m *game.State, in input.Input) {
	var aim physics.Vec
	if in.AimLeft {
		aim.X -= aimSpeed
	}
	if in.AimRight {
		aim.X += aimSpeed
	}
	if in.AimUp {
		aim.Y -= aimSpeed
	}
	if in.AimDown {
		aim.Y += aimSpeed
	}
	s.setAim(m, s.state.Aim.Add(aim))

	for _, ev := range in.Mouse {
		p := s.canvas.TerminalToLogical(ev.Col, ev.Row)
		pos := physics.Vec{X: p.X, Y: p.Y}
		s.setAim(m, pos)

		switch {
		case ev.Motion:
		case ev.Button == input.MouseLeft && ev.Press:
			m.PressFire()
			start := s.state.Aim
			s.state.DragStart = &start
		case ev.Button == input.MouseLeft && !ev.Press:
			if s.state.DragStart != nil {
				m.DragRelease(*s.state.DragStart, s.state.Aim)
				s.state.DragStart = nil
			} else {
				m.ReleaseFire(s.state.Aim)
			}
		case ev.Button == input.MouseRight && ev.Press:
			m.Dash(s.state.Aim)
		}
	}

	if in.Fire {
		m.ReleaseFire(s.state.Aim)
	}
	if in.Charge {
		if m.Player.Charging() {
			m.ReleaseFire(s.state.Aim)
		} else {
			m.PressFire()
		}
	}
	if in.Dash {
		m.Dash(s.state.Aim)
	}
	if in.Wall {
		if s.state.WallStart == nil {
			start := s.state.Aim
			s.state.WallStart = &start
		} else {
			m.DragRelease(*s.state.WallStart, s.state.Aim)
			s.state.WallStart = nil
		}
	}
}

func (s *Session) setAim(m *game.State, p physics.Vec) {
	s.state.Aim = m.Arena.Clamp(p, 0)
}

// finishMatch records the result and shows the summary.
func (s *Session) finishMatch(m *game.State) {
	summary := m.Summary()
	s.state.Summary = summary
	s.state.NewBest = summary.Score > 0 && highscore.Qualifies(s.state.Scores, summary.Score)

	if err := s.opts.Store.Save(summary.Entry(s.opts.Clock.Now())); err != nil {
		s.logger.Error("Failed to save high score", "err", err)
	}
	s.loadScores()

	s.logger.Info("Match over",
		"difficulty", summary.Difficulty,
		"score", summary.Score,
		"kills", summary.Kills,
		"time", summary.TimeSurvived,
		"wave", summary.Wave,
	)
	s.state.Screen = ScreenGameOver
	s.state.overAt = time.Now()
}

// gameOverInputDelay keeps held fire keys from skipping the summary.
const gameOverInputDelay = time.Second

// updateGameOver waits for the player to go back to the menu.
func (s *Session) updateGameOver() {
	if time.Since(s.state.overAt) < gameOverInputDelay {
		return
	}
	if s.state.Input.Fire || s.state.Input.Enter || s.state.Input.Escape {
		input.ResetKeyInput(s.inputStream)
		s.state.Match = nil
		s.state.Screen = ScreenMenu
	}
}
