package loop

import (
	"time"

	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/input"
	"github.com/tomz197/battlecursor/internal/physics"
)

// Screen is the session's current phase.
type Screen int

const (
	ScreenMenu     Screen = iota // Difficulty selection and high scores
	ScreenPlaying                // Active match
	ScreenGameOver               // Match summary
)

// sessionState holds everything one terminal session shows.
type sessionState struct {
	Screen     Screen
	prevScreen Screen
	Input      input.Input
	Running    bool

	// Menu
	Selected   int // Index into the difficulty names
	Difficulty []string
	Scores     []highscore.Entry
	upHeld     bool
	downHeld   bool

	// Playing
	Match     *game.State
	Aim       physics.Vec
	WallStart *physics.Vec // Keyboard wall: first corner
	DragStart *physics.Vec // Mouse wall or charge: where the button went down

	// Game over
	Summary game.Summary
	NewBest bool
	overAt  time.Time

	lastInput   time.Time
	isInactive  bool
	wasInactive bool
}

func newSessionState(difficulties []string, defaultName string) *sessionState {
	st := &sessionState{
		Screen:     ScreenMenu,
		prevScreen: -1,
		Running:    true,
		Difficulty: difficulties,
		lastInput:  time.Now(),
	}
	for i, name := range difficulties {
		if name == defaultName {
			st.Selected = i
		}
	}
	return st
}
