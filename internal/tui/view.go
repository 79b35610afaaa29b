package tui

import (
	"strconv"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/draw"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/input"
	"github.com/tomz197/battlecursor/internal/object"
	"github.com/tomz197/battlecursor/internal/physics"
)

// aimStep is how far one arrow key event moves the crosshair.
const aimStep = 14.0

// GameView is a tview primitive that draws a match with half-block pixels
// and turns keys and mouse events into match actions. It is only touched
// from the application's event goroutine.
type GameView struct {
	*tview.Box

	canvas *draw.Canvas
	match  *game.State
	held   input.Held

	aim       physics.Vec
	dragStart *physics.Vec
	wallStart *physics.Vec

	onEscape func()
	onQuit   func()
}

// NewGameView creates an empty view. Attach a match with SetMatch.
func NewGameView() *GameView {
	return &GameView{
		Box:    tview.NewBox(),
		canvas: draw.NewScaledCanvas(1, 1, config.ArenaWidth, config.ArenaHeight),
	}
}

// SetMatch attaches a match and resets the view's gesture state.
func (v *GameView) SetMatch(m *game.State) *GameView {
	v.match = m
	v.held.Reset()
	v.dragStart, v.wallStart = nil, nil
	if m != nil {
		v.aim = m.Player.Pos.Add(physics.Vec{X: 100})
	}
	return v
}

// SetEscapeFunc sets the handler for the Escape key.
func (v *GameView) SetEscapeFunc(f func()) *GameView {
	v.onEscape = f
	return v
}

// SetQuitFunc sets the handler for the quit key.
func (v *GameView) SetQuitFunc(f func()) *GameView {
	v.onQuit = f
	return v
}

// Move returns the movement direction from the held keys.
func (v *GameView) Move(now time.Time) physics.Vec {
	return input.KeyVector(v.held.Down('w', now), v.held.Down('s', now), v.held.Down('a', now), v.held.Down('d', now))
}

// layout fits the canvas into the inner rect and returns its top-left cell.
func (v *GameView) layout() (x0, y0 int, ok bool) {
	x, y, w, h := v.GetInnerRect()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	width, height := draw.FitArea(w, h, config.ArenaWidth, config.ArenaHeight)
	x0, y0 = x+(w-width)/2, y+(h-height)/2
	v.canvas.Resize(width, height)
	v.canvas.SetOffset(x0, y0)
	return x0, y0, true
}

// Draw implements tview.Primitive.
func (v *GameView) Draw(screen tcell.Screen) {
	v.Box.DrawForSubclass(screen, v)
	x0, y0, ok := v.layout()
	if !ok || v.match == nil {
		return
	}

	v.canvas.Clear()
	overlay := draw.Overlay{Aim: v.aim, WallStart: v.wallStart}
	if overlay.WallStart == nil {
		overlay.WallStart = v.dragStart
	}
	draw.Scene(v.canvas, v.match, overlay)

	for row := 0; row < v.canvas.TerminalHeight(); row++ {
		for col := 0; col < v.canvas.TerminalWidth(); col++ {
			ch, style := cell(v.canvas.Pixel(col, row*2), v.canvas.Pixel(col, row*2+1))
			screen.SetContent(x0+col, y0+row, ch, nil, style)
		}
	}

	for _, d := range v.match.DamageNumbers {
		color := object.ColorDamageNumber
		if d.Combo {
			color = object.ColorCombo
		}
		text := strconv.Itoa(d.Value)
		col, row := v.canvas.LogicalToTerminal(d.Pos.X, d.Pos.Y+d.OffsetY)
		v.label(screen, x0+col-1-len(text)/2, y0+row-1, text, color)
	}
	for i, n := range v.match.Notifications {
		if n.Alpha() < 0.3 {
			continue
		}
		col := x0 + (v.canvas.TerminalWidth()-len(n.Text))/2
		v.label(screen, col, y0+v.canvas.TerminalHeight()/4+i, n.Text, n.Color)
	}
}

// label prints text at an absolute cell when it fits inside the canvas.
func (v *GameView) label(screen tcell.Screen, x, y int, text string, color object.Color) {
	left, top := v.canvas.OffsetCol(), v.canvas.OffsetRow()
	if y < top || y >= top+v.canvas.TerminalHeight() || x < left || x+len(text) > left+v.canvas.TerminalWidth() {
		return
	}
	style := tcell.StyleDefault.Foreground(rgb(color)).Background(tview.Styles.PrimitiveBackgroundColor)
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// cell maps a pixel pair to a screen cell.
func cell(top, bottom object.Color) (rune, tcell.Style) {
	ch, fg, bg := draw.Glyph(top, bottom)
	style := tcell.StyleDefault.Background(tview.Styles.PrimitiveBackgroundColor)
	if fg != 0 {
		style = style.Foreground(rgb(fg))
	}
	if bg != 0 {
		style = style.Background(rgb(bg))
	}
	return ch, style
}

func rgb(c object.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// InputHandler implements tview.Primitive.
func (v *GameView) InputHandler() func(event *tcell.EventKey, setFocus func(p tview.Primitive)) {
	return v.WrapInputHandler(func(event *tcell.EventKey, _ func(p tview.Primitive)) {
		v.handleKey(event.Key(), event.Rune(), time.Now())
	})
}

// handleKey applies one key event. Terminals deliver repeats but no
// releases, so movement keys are tracked as held for a short while.
func (v *GameView) handleKey(key tcell.Key, r rune, now time.Time) {
	switch key {
	case tcell.KeyEscape:
		if v.onEscape != nil {
			v.onEscape()
		}
		return
	case tcell.KeyUp:
		v.moveAim(physics.Vec{Y: -aimStep})
		return
	case tcell.KeyDown:
		v.moveAim(physics.Vec{Y: aimStep})
		return
	case tcell.KeyLeft:
		v.moveAim(physics.Vec{X: -aimStep})
		return
	case tcell.KeyRight:
		v.moveAim(physics.Vec{X: aimStep})
		return
	case tcell.KeyRune:
	default:
		return
	}

	m := v.match
	switch r = unicode.ToLower(r); r {
	case 'w', 'a', 's', 'd':
		v.held.Press(r, now)
	case 'q':
		if v.onQuit != nil {
			v.onQuit()
		}
	case ' ':
		if m != nil {
			m.ReleaseFire(v.aim)
		}
	case 'c':
		if m == nil {
			return
		}
		if m.Player.Charging() {
			m.ReleaseFire(v.aim)
		} else {
			m.PressFire()
		}
	case 'e':
		if m != nil {
			m.Dash(v.aim)
		}
	case 'f':
		if m == nil {
			return
		}
		if v.wallStart == nil {
			start := v.aim
			v.wallStart = &start
			return
		}
		m.DragRelease(*v.wallStart, v.aim)
		v.wallStart = nil
	}
}

func (v *GameView) moveAim(d physics.Vec) {
	v.setAim(v.aim.Add(d))
}

func (v *GameView) setAim(p physics.Vec) {
	if v.match != nil {
		p = v.match.Arena.Clamp(p, 0)
	}
	v.aim = p
}

// MouseHandler implements tview.Primitive. A left press captures the mouse
// until release so drags may leave the view.
func (v *GameView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return v.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		x, y := event.Position()
		if v.dragStart == nil && !v.InRect(x, y) {
			return false, nil
		}
		setFocus(v)

		p := v.canvas.TerminalToLogical(x+1, y+1)
		if v.handleMouse(action, physics.Vec{X: p.X, Y: p.Y}) {
			return true, v
		}
		return true, nil
	})
}

// handleMouse applies one mouse action at a logical position and reports
// whether a drag is in progress.
func (v *GameView) handleMouse(action tview.MouseAction, pos physics.Vec) bool {
	v.setAim(pos)
	m := v.match
	if m == nil {
		return false
	}

	switch action {
	case tview.MouseLeftDown:
		m.PressFire()
		start := v.aim
		v.dragStart = &start
	case tview.MouseLeftUp:
		if v.dragStart != nil {
			m.DragRelease(*v.dragStart, v.aim)
			v.dragStart = nil
		} else {
			m.ReleaseFire(v.aim)
		}
	case tview.MouseRightDown:
		m.Dash(v.aim)
	}
	return v.dragStart != nil
}
