package tui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/draw"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/physics"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestView(t *testing.T) (*GameView, *game.State) {
	t.Helper()
	clock := game.NewManualClock(t0)
	m := game.New(game.Options{Preset: config.DefaultPresets()["easy"], Clock: clock, Seed: 1})
	return NewGameView().SetMatch(m), m
}

func TestCell(t *testing.T) {
	ch, _ := cell(0, 0)
	if ch != draw.BlockEmpty {
		t.Fatalf("empty cell = %q", ch)
	}

	ch, style := cell(0xff0000, 0x00ff00)
	if ch != draw.BlockUpperHalf {
		t.Fatalf("split cell = %q", ch)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(0, 255, 0) {
		t.Fatalf("colors = %v, %v", fg, bg)
	}
}

func TestMovementKeysHold(t *testing.T) {
	v, _ := newTestView(t)

	v.handleKey(tcell.KeyRune, 'W', t0)
	v.handleKey(tcell.KeyRune, 'd', t0)
	move := v.Move(t0.Add(50 * time.Millisecond))
	if move.X <= 0 || move.Y >= 0 {
		t.Fatalf("move = %v", move)
	}
	if move := v.Move(t0.Add(time.Second)); move != (physics.Vec{}) {
		t.Fatalf("keys still held: %v", move)
	}
}

func TestKeyActions(t *testing.T) {
	v, m := newTestView(t)

	v.handleKey(tcell.KeyRune, ' ', t0)
	if len(m.Projectiles) != 1 {
		t.Fatalf("projectiles = %d after space", len(m.Projectiles))
	}

	v.handleKey(tcell.KeyRune, 'c', t0)
	if !m.Player.Charging() {
		t.Fatal("c did not start a charge")
	}

	before := v.aim
	v.handleKey(tcell.KeyDown, 0, t0)
	if v.aim.Y != before.Y+aimStep {
		t.Fatalf("aim = %v after down arrow", v.aim)
	}

	v.handleKey(tcell.KeyRune, 'f', t0)
	for i := 0; i < 10; i++ {
		v.handleKey(tcell.KeyDown, 0, t0)
	}
	v.handleKey(tcell.KeyRune, 'f', t0)
	if len(m.Walls) != 1 {
		t.Fatalf("walls = %d", len(m.Walls))
	}
	if m.Player.Charging() {
		t.Fatal("wall kept the charge")
	}
}

func TestEscapeAndQuitCallbacks(t *testing.T) {
	v, _ := newTestView(t)
	var escaped, quit bool
	v.SetEscapeFunc(func() { escaped = true }).SetQuitFunc(func() { quit = true })

	v.handleKey(tcell.KeyEscape, 0, t0)
	v.handleKey(tcell.KeyRune, 'q', t0)
	if !escaped || !quit {
		t.Fatalf("escaped = %v, quit = %v", escaped, quit)
	}
}

func TestMouseDrag(t *testing.T) {
	v, m := newTestView(t)

	if !v.handleMouse(tview.MouseLeftDown, physics.Vec{X: 300, Y: 300}) {
		t.Fatal("left press did not start a drag")
	}
	if !m.Player.Charging() {
		t.Fatal("left press did not start a charge")
	}
	v.handleMouse(tview.MouseMove, physics.Vec{X: 400, Y: 300})
	if v.aim.X != 400 {
		t.Fatalf("aim = %v after move", v.aim)
	}
	if v.handleMouse(tview.MouseLeftUp, physics.Vec{X: 500, Y: 300}) {
		t.Fatal("drag still active after release")
	}
	if len(m.Walls) != 1 {
		t.Fatalf("walls = %d", len(m.Walls))
	}
}

func TestRightClickDashes(t *testing.T) {
	v, m := newTestView(t)
	start := m.Player.Pos

	v.handleMouse(tview.MouseRightDown, physics.Vec{X: 1100, Y: start.Y})
	if m.Player.Pos.X <= start.X || m.Player.CanDash() {
		t.Fatalf("dash did not happen: pos = %v", m.Player.Pos)
	}
}

func TestAimClampedToArena(t *testing.T) {
	v, _ := newTestView(t)
	v.handleMouse(tview.MouseMove, physics.Vec{X: -50, Y: 5000})
	if v.aim.X != 0 || v.aim.Y != config.ArenaHeight {
		t.Fatalf("aim = %v", v.aim)
	}
}

func TestDrawIntoSimulationScreen(t *testing.T) {
	v, m := newTestView(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(120, 40)
	v.SetRect(0, 0, 120, 40)

	v.Draw(screen)
	if v.canvas.TerminalWidth() != 120 || v.canvas.TerminalHeight() != 40 {
		t.Fatalf("canvas = %dx%d", v.canvas.TerminalWidth(), v.canvas.TerminalHeight())
	}
	// The player sits at the arena center.
	col, row := v.canvas.LogicalToTerminal(m.Player.Pos.X, m.Player.Pos.Y)
	top := v.canvas.Pixel(col-1, (row-1)*2)
	bottom := v.canvas.Pixel(col-1, (row-1)*2+1)
	if top == 0 && bottom == 0 {
		t.Fatal("player not drawn")
	}
}
