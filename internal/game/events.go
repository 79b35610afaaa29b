package game

import "github.com/tomz197/battlecursor/internal/physics"

// EventKind identifies something that happened during a step.
type EventKind uint8

const (
	EventShot EventKind = iota
	EventChargedShot
	EventDash
	EventWallPlaced
	EventWallHit
	EventEnemyHit
	EventEnemyKilled
	EventKamikaze
	EventPlayerHurt
	EventPowerup
	EventBossSpawned
	EventBossDefeated
	EventGameOver
)

var eventNames = [...]string{
	"shot", "charged_shot", "dash", "wall_placed", "wall_hit", "enemy_hit",
	"enemy_killed", "kamikaze", "player_hurt", "powerup", "boss_spawned",
	"boss_defeated", "game_over",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is raised by the simulation for presentation layers (sound, logs).
type Event struct {
	Kind  EventKind
	Pos   physics.Vec
	Value int // Score gained, damage taken or similar, depending on Kind
}

// maxPendingEvents bounds the buffer when nobody drains it.
const maxPendingEvents = 512

func (s *State) emit(kind EventKind, pos physics.Vec, value int) {
	if len(s.events) >= maxPendingEvents {
		copy(s.events, s.events[1:])
		s.events = s.events[:len(s.events)-1]
	}
	s.events = append(s.events, Event{Kind: kind, Pos: pos, Value: value})
}

// DrainEvents returns the events raised since the last call.
func (s *State) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := make([]Event, len(s.events))
	copy(out, s.events)
	s.events = s.events[:0]
	return out
}
