package game

import (
	"time"

	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/object"
)

// ActivePowerup is a running timed effect.
type ActivePowerup struct {
	Kind      object.PowerupKind
	Remaining time.Duration
}

// HUD is what the heads-up display shows during a match.
type HUD struct {
	Score           int
	Health          int
	MaxHealth       int
	HealthFraction  float64
	Shield          int
	Combo           int
	ComboMultiplier float64
	Wave            int
	Kills           int
	Elapsed         int // Seconds
	ChargePercent   float64
	DashReady       bool
	WallReady       bool
	Powerups        []ActivePowerup
	BossActive      bool
	BossHealth      float64
	BossPhase       int
}

// HUD returns the current display values.
func (s *State) HUD() HUD {
	now := s.clock.Now()
	p := s.Player

	h := HUD{
		Score:           s.Score,
		Health:          p.Health,
		MaxHealth:       p.MaxHealth,
		HealthFraction:  float64(p.Health) / float64(p.MaxHealth),
		Shield:          p.Shield,
		Combo:           p.Combo,
		ComboMultiplier: p.ComboMultiplier(),
		Wave:            s.Wave,
		Kills:           s.Kills,
		Elapsed:         s.ElapsedSeconds(),
		ChargePercent:   p.ChargePercent(now),
		DashReady:       p.CanDash(),
		WallReady:       p.CanPlaceWall(),
	}
	for _, kind := range p.Powerups() {
		h.Powerups = append(h.Powerups, ActivePowerup{Kind: kind, Remaining: p.PowerupRemaining(kind, now)})
	}
	if s.Boss != nil {
		h.BossActive = true
		h.BossHealth = s.Boss.HealthFraction()
		if b, ok := s.Boss.Boss(); ok {
			h.BossPhase = b.Phase
		}
	}
	return h
}

// Summary is the end-of-match report.
type Summary struct {
	Difficulty   string
	Score        int
	Kills        int
	TimeSurvived int // Seconds
	Wave         int
	MaxCombo     int
}

// Summary returns the match results so far.
func (s *State) Summary() Summary {
	return Summary{
		Difficulty:   s.Preset.Name,
		Score:        s.Score,
		Kills:        s.Kills,
		TimeSurvived: s.ElapsedSeconds(),
		Wave:         s.Wave,
		MaxCombo:     s.Player.MaxCombo,
	}
}

// Entry converts the summary to a high score record dated at.
func (sm Summary) Entry(at time.Time) highscore.Entry {
	return highscore.Entry{
		Score:        sm.Score,
		Kills:        sm.Kills,
		TimeSurvived: sm.TimeSurvived,
		Date:         at,
	}
}
