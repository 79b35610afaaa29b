package web

import (
	"strconv"

	"github.com/tomz197/battlecursor/internal/draw"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/input"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

// Client message types.
const (
	MsgInput    = "input"     // Movement and aim
	MsgFireDown = "fire_down" // Button pressed: start charging
	MsgFireUp   = "fire_up"   // Button released: fire toward the aim
	MsgDash     = "dash"
	MsgWall     = "wall"    // Drag released from (sx, sy) to (ex, ey)
	MsgRestart  = "restart" // New match after game over
)

// Server message types.
const (
	TypeSnapshot = "snapshot"
	TypeSummary  = "summary"
)

// ClientMsg is a JSON message from the browser. For MsgInput with Touch set,
// the movement comes from an analog drag from (sx, sy) to (ex, ey) instead
// of (mx, my).
type ClientMsg struct {
	Type  string  `json:"t"`
	MX    float64 `json:"mx"`
	MY    float64 `json:"my"`
	AX    float64 `json:"ax"`
	AY    float64 `json:"ay"`
	SX    float64 `json:"sx"`
	SY    float64 `json:"sy"`
	EX    float64 `json:"ex"`
	EY    float64 `json:"ey"`
	Touch bool    `json:"touch"`
}

// Move returns the normalized movement vector the message asks for.
func (m ClientMsg) Move() physics.Vec {
	if m.Touch {
		return input.DragVector(physics.Vec{X: m.SX, Y: m.SY}, physics.Vec{X: m.EX, Y: m.EY})
	}
	v := physics.Vec{X: m.MX, Y: m.MY}
	if v.Len() > 1 {
		v = v.Normalize()
	}
	return v
}

// Aim returns the aim point.
func (m ClientMsg) Aim() physics.Vec { return physics.Vec{X: m.AX, Y: m.AY} }

// Circle is a round entity. C is a 24-bit RGB color.
type Circle struct {
	X float32 `msgpack:"x"`
	Y float32 `msgpack:"y"`
	R float32 `msgpack:"r"`
	C uint32  `msgpack:"c"`
}

// Segment is a wall.
type Segment struct {
	X1 float32 `msgpack:"x1"`
	Y1 float32 `msgpack:"y1"`
	X2 float32 `msgpack:"x2"`
	Y2 float32 `msgpack:"y2"`
}

// Dot is a particle.
type Dot struct {
	X float32 `msgpack:"x"`
	Y float32 `msgpack:"y"`
	C uint32  `msgpack:"c"`
	A float32 `msgpack:"a"`
}

// Label is floating text. Notifications carry no position.
type Label struct {
	X    float32 `msgpack:"x"`
	Y    float32 `msgpack:"y"`
	Text string  `msgpack:"text"`
	C    uint32  `msgpack:"c"`
	A    float32 `msgpack:"a"`
}

// PlayerView is what the browser needs to draw the player.
type PlayerView struct {
	X            float32      `msgpack:"x"`
	Y            float32      `msgpack:"y"`
	R            float32      `msgpack:"r"`
	Invulnerable bool         `msgpack:"inv"`
	Shield       int          `msgpack:"shield"`
	Trail        [][2]float32 `msgpack:"trail"`
}

// PowerupView is an active timed powerup.
type PowerupView struct {
	Name      string  `msgpack:"name"`
	C         uint32  `msgpack:"c"`
	Remaining float32 `msgpack:"left"` // Seconds
}

// HUDView mirrors game.HUD.
type HUDView struct {
	Score           int           `msgpack:"score"`
	Health          int           `msgpack:"health"`
	MaxHealth       int           `msgpack:"max_health"`
	Shield          int           `msgpack:"shield"`
	Combo           int           `msgpack:"combo"`
	ComboMultiplier float32       `msgpack:"combo_mult"`
	Wave            int           `msgpack:"wave"`
	Kills           int           `msgpack:"kills"`
	Elapsed         int           `msgpack:"elapsed"`
	Charge          float32       `msgpack:"charge"`
	DashReady       bool          `msgpack:"dash"`
	WallReady       bool          `msgpack:"wall"`
	Powerups        []PowerupView `msgpack:"powerups"`
	BossActive      bool          `msgpack:"boss"`
	BossHealth      float32       `msgpack:"boss_health"`
	BossPhase       int           `msgpack:"boss_phase"`
}

// Snapshot is one rendered frame of the match.
type Snapshot struct {
	Type          string     `msgpack:"type"`
	Session       string     `msgpack:"session"`
	Frame         uint64     `msgpack:"frame"`
	Width         float32    `msgpack:"w"`
	Height        float32    `msgpack:"h"`
	ShakeX        float32    `msgpack:"sx"`
	ShakeY        float32    `msgpack:"sy"`
	Player        PlayerView `msgpack:"player"`
	Enemies       []Circle   `msgpack:"enemies"`
	Projectiles   []Circle   `msgpack:"projectiles"`
	Powerups      []Circle   `msgpack:"powerups"`
	Walls         []Segment  `msgpack:"walls"`
	Particles     []Dot      `msgpack:"particles"`
	Damage        []Label    `msgpack:"damage"`
	Notifications []Label    `msgpack:"notes"`
	HUD           HUDView    `msgpack:"hud"`
}

// SummaryMsg ends a match.
type SummaryMsg struct {
	Type         string `msgpack:"type"`
	Difficulty   string `msgpack:"difficulty"`
	Score        int    `msgpack:"score"`
	Kills        int    `msgpack:"kills"`
	TimeSurvived int    `msgpack:"time"`
	Wave         int    `msgpack:"wave"`
	MaxCombo     int    `msgpack:"max_combo"`
	NewBest      bool   `msgpack:"new_best"`
}

func f32(v float64) float32 { return float32(v) }

// NewSnapshot captures the match for the browser.
func NewSnapshot(id string, s *game.State) Snapshot {
	shake := draw.ShakeOffset(s.ScreenShake, s.Frame)
	p := s.Player
	snap := Snapshot{
		Type:    TypeSnapshot,
		Session: id,
		Frame:   s.Frame,
		Width:   f32(s.Arena.Width),
		Height:  f32(s.Arena.Height),
		ShakeX:  f32(shake.X),
		ShakeY:  f32(shake.Y),
		Player: PlayerView{
			X: f32(p.Pos.X), Y: f32(p.Pos.Y), R: f32(p.Radius),
			Invulnerable: p.Invulnerable(),
			Shield:       p.Shield,
		},
		Enemies:     make([]Circle, 0, len(s.Enemies)),
		Projectiles: make([]Circle, 0, len(s.Projectiles)),
		Powerups:    make([]Circle, 0, len(s.Powerups)),
		Walls:       make([]Segment, 0, len(s.Walls)),
		HUD:         newHUDView(s.HUD()),
	}
	for _, t := range p.Trail {
		snap.Player.Trail = append(snap.Player.Trail, [2]float32{f32(t.X), f32(t.Y)})
	}
	for _, e := range s.Enemies {
		snap.Enemies = append(snap.Enemies, Circle{f32(e.Pos.X), f32(e.Pos.Y), f32(e.Radius), uint32(e.Color)})
	}
	for _, pr := range s.Projectiles {
		snap.Projectiles = append(snap.Projectiles, Circle{f32(pr.Pos.X), f32(pr.Pos.Y), f32(pr.Radius), uint32(pr.Color)})
	}
	for _, pu := range s.Powerups {
		snap.Powerups = append(snap.Powerups, Circle{f32(pu.Pos.X), f32(pu.Pos.Y), f32(pu.Radius), uint32(pu.Kind.Color())})
	}
	for _, w := range s.Walls {
		snap.Walls = append(snap.Walls, Segment{f32(w.Start.X), f32(w.Start.Y), f32(w.End.X), f32(w.End.Y)})
	}
	for _, pt := range s.Particles {
		snap.Particles = append(snap.Particles, Dot{f32(pt.Pos.X), f32(pt.Pos.Y), uint32(pt.Color), f32(pt.Alpha())})
	}
	for _, d := range s.DamageNumbers {
		c := object.ColorDamageNumber
		if d.Combo {
			c = object.ColorCombo
		}
		snap.Damage = append(snap.Damage, Label{X: f32(d.Pos.X), Y: f32(d.Pos.Y + d.OffsetY), Text: strconv.Itoa(d.Value), C: uint32(c), A: 1})
	}
	for _, n := range s.Notifications {
		snap.Notifications = append(snap.Notifications, Label{Text: n.Text, C: uint32(n.Color), A: f32(n.Alpha())})
	}
	return snap
}

func newHUDView(h game.HUD) HUDView {
	v := HUDView{
		Score:           h.Score,
		Health:          h.Health,
		MaxHealth:       h.MaxHealth,
		Shield:          h.Shield,
		Combo:           h.Combo,
		ComboMultiplier: f32(h.ComboMultiplier),
		Wave:            h.Wave,
		Kills:           h.Kills,
		Elapsed:         h.Elapsed,
		Charge:          f32(h.ChargePercent),
		DashReady:       h.DashReady,
		WallReady:       h.WallReady,
		BossActive:      h.BossActive,
		BossHealth:      f32(h.BossHealth),
		BossPhase:       h.BossPhase,
	}
	for _, p := range h.Powerups {
		v.Powerups = append(v.Powerups, PowerupView{
			Name:      p.Kind.DisplayName(),
			C:         uint32(p.Kind.Color()),
			Remaining: f32(p.Remaining.Seconds()),
		})
	}
	return v
}

// NewSummaryMsg wraps a match summary.
func NewSummaryMsg(s game.Summary, newBest bool) SummaryMsg {
	return SummaryMsg{
		Type:         TypeSummary,
		Difficulty:   s.Difficulty,
		Score:        s.Score,
		Kills:        s.Kills,
		TimeSurvived: s.TimeSurvived,
		Wave:         s.Wave,
		MaxCombo:     s.MaxCombo,
		NewBest:      newBest,
	}
}
