// Package tui runs Battle Cursor as a local full-screen terminal
// application with tview: a difficulty menu with the high score table, the
// match view and a summary dialog, plus sound when an audio device exists.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/draw"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/sound"
)

// Page names.
const (
	pageMenu = "menu"
	pageGame = "game"
	pageOver = "over"
)

// Options configures the application.
type Options struct {
	Presets    config.Presets
	Difficulty string
	Store      highscore.Store
	Sound      *sound.Manager // Optional
	Logger     *log.Logger
	Clock      game.Clock
	Seed       int64
}

// App is the tview application and its pages.
type App struct {
	opts   Options
	logger *log.Logger

	app    *tview.Application
	pages  *tview.Pages
	menu   *tview.List
	scores *tview.Table
	hud    *tview.TextView
	status *tview.TextView
	view   *GameView

	names      []string
	difficulty string
	match      *game.State
}

// New builds the application.
func New(opts Options) *App {
	if opts.Presets == nil {
		opts.Presets = config.DefaultPresets()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DefaultDifficulty
	}
	if opts.Store == nil {
		opts.Store = &highscore.MemoryStore{}
	}
	if opts.Sound == nil {
		opts.Sound = sound.NewManager()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Clock == nil {
		opts.Clock = game.SystemClock{}
	}

	a := &App{
		opts:   opts,
		logger: opts.Logger,
		app:    tview.NewApplication(),
		names:  opts.Presets.Names(),
	}
	a.build()
	return a
}

func setStyles() {
	tview.Styles.PrimitiveBackgroundColor = tcell.ColorBlack
	tview.Styles.ContrastBackgroundColor = tcell.ColorBlack
	tview.Styles.BorderColor = tcell.ColorDarkCyan
	tview.Styles.TitleColor = tcell.ColorAqua
	tview.Styles.PrimaryTextColor = tcell.ColorWhite
	tview.Styles.SecondaryTextColor = tcell.ColorLightGray
}

func (a *App) build() {
	setStyles()

	title := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true).
		SetText("\n[aqua::b]B A T T L E   C U R S O R[-::-]\n[gray]survive the swarm, break the bosses")

	a.menu = tview.NewList()
	a.menu.SetBorder(true).SetTitle(" Difficulty ")
	selected := 0
	for i, name := range a.names {
		p := a.opts.Presets[name]
		detail := fmt.Sprintf("health %d, enemy speed x%.1f, damage x%.1f", p.PlayerHealth, p.EnemySpeed, p.Damage)
		a.menu.AddItem(name, detail, rune('1'+i), nil)
		if name == a.opts.Difficulty {
			selected = i
		}
	}
	a.menu.SetCurrentItem(selected)
	a.menu.SetSelectedFunc(func(i int, _, _ string, _ rune) {
		a.startMatch(a.names[i])
	})

	a.scores = tview.NewTable().SetFixed(1, 0)
	a.scores.SetBorder(true).SetTitle(" High Scores ")

	help := tview.NewTextView().SetTextAlign(tview.AlignCenter).SetDynamicColors(true).
		SetText("[gray]WASD move  arrows/mouse aim  space/click shoot  c/hold charge  e/right click dash  f twice/drag wall  m mute  q quit")

	menuPage := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(title, 4, 0, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexColumn).
			AddItem(a.menu, 0, 1, true).
			AddItem(a.scores, 0, 1, false), 0, 1, true).
		AddItem(help, 1, 0, false)

	a.hud = tview.NewTextView().SetDynamicColors(true)
	a.status = tview.NewTextView().SetDynamicColors(true)
	a.view = NewGameView().
		SetEscapeFunc(a.abandonMatch).
		SetQuitFunc(a.app.Stop)

	gamePage := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.hud, 1, 0, false).
		AddItem(a.view, 0, 1, true).
		AddItem(a.status, 1, 0, false)

	a.pages = tview.NewPages().
		AddPage(pageMenu, menuPage, true, true).
		AddPage(pageGame, gamePage, true, false)

	a.app.SetInputCapture(a.handleGlobalKeys)
	a.refreshScores()
}

func (a *App) handleGlobalKeys(ev *tcell.EventKey) *tcell.EventKey {
	switch {
	case ev.Key() == tcell.KeyCtrlC:
		a.app.Stop()
		return nil
	case ev.Key() == tcell.KeyRune && (ev.Rune() == 'm' || ev.Rune() == 'M'):
		a.opts.Sound.SetMuted(!a.opts.Sound.Muted())
		return nil
	case ev.Key() == tcell.KeyRune && ev.Rune() == 'q' && a.match == nil:
		a.app.Stop()
		return nil
	}
	return ev
}

// Run shows the menu and blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.opts.Sound.Init(); err != nil {
		a.logger.Warn("Sound disabled", "err", err)
	}
	defer a.opts.Sound.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.tickLoop(ctx)

	return a.app.SetRoot(a.pages, true).EnableMouse(true).Run()
}

// tickLoop advances the match on the application goroutine at the tick rate.
func (a *App) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(config.TickTime)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case <-ticker.C:
			a.app.QueueUpdateDraw(a.tick)
		}
	}
}

// tick advances the match one step.
func (a *App) tick() {
	m := a.match
	if m == nil || m.Over {
		return
	}
	m.Step(game.Input{Move: a.view.Move(time.Now())})
	a.opts.Sound.Handle(m.DrainEvents())
	a.hud.SetText(hudText(m.HUD()))
	a.status.SetText(statusText(m.HUD(), a.opts.Sound.Muted()))

	if m.Over {
		a.finishMatch()
	}
}

// startMatch begins a match on the named difficulty.
func (a *App) startMatch(name string) {
	preset, err := a.opts.Presets.Lookup(name)
	if err != nil {
		a.logger.Error("Cannot start match", "err", err)
		return
	}
	a.difficulty = name
	a.match = game.New(game.Options{Preset: preset, Clock: a.opts.Clock, Seed: a.opts.Seed})
	a.view.SetMatch(a.match)
	a.pages.SwitchToPage(pageGame)
	a.app.SetFocus(a.view)
	a.logger.Info("Match started", "difficulty", preset.Name)
}

func (a *App) abandonMatch() {
	if a.match != nil {
		a.logger.Info("Match abandoned", "score", a.match.Score)
	}
	a.showMenu()
}

func (a *App) showMenu() {
	a.match = nil
	a.view.SetMatch(nil)
	a.pages.SwitchToPage(pageMenu)
	a.app.SetFocus(a.menu)
}

// finishMatch saves the result and shows the summary dialog.
func (a *App) finishMatch() {
	summary := a.match.Summary()
	prev, _ := a.opts.Store.Load()
	best := summary.Score > 0 && highscore.Qualifies(prev, summary.Score)

	if err := a.opts.Store.Save(summary.Entry(a.opts.Clock.Now())); err != nil {
		a.logger.Error("Failed to save high score", "err", err)
	}
	a.refreshScores()
	a.logger.Info("Match over", "difficulty", summary.Difficulty, "score", summary.Score, "kills", summary.Kills)

	modal := tview.NewModal().
		SetText(summaryText(summary, best)).
		AddButtons([]string{"Play again", "Menu", "Quit"}).
		SetDoneFunc(func(_ int, label string) {
			a.pages.RemovePage(pageOver)
			switch label {
			case "Play again":
				a.startMatch(a.difficulty)
			case "Quit":
				a.app.Stop()
			default:
				a.showMenu()
			}
		})
	a.pages.AddPage(pageOver, modal, true, true)
	a.app.SetFocus(modal)
}

// refreshScores reloads the high score table.
func (a *App) refreshScores() {
	entries, err := a.opts.Store.Load()
	if err != nil {
		a.logger.Warn("Failed to load high scores", "err", err)
	}
	fillScores(a.scores, entries)
}

func fillScores(t *tview.Table, entries []highscore.Entry) {
	t.Clear()
	for col, h := range []string{"#", "Score", "Kills", "Time", "Date"} {
		t.SetCell(0, col, tview.NewTableCell(h).SetTextColor(tcell.ColorAqua).SetSelectable(false).SetExpansion(1))
	}
	for i, e := range entries {
		row := i + 1
		t.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", row)))
		t.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%d", e.Score)).SetAlign(tview.AlignRight))
		t.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", e.Kills)).SetAlign(tview.AlignRight))
		t.SetCell(row, 3, tview.NewTableCell(clock(e.TimeSurvived)).SetAlign(tview.AlignRight))
		t.SetCell(row, 4, tview.NewTableCell(e.Date.Local().Format("2006-01-02")))
	}
}

func clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func hudText(h game.HUD) string {
	return fmt.Sprintf(" Score [yellow]%d[-]  HP [red]%s[-] %d/%d  Shield %d  Combo %d x%.1f  Wave %d  Kills %d  %s",
		h.Score, draw.Bar(h.HealthFraction, 10), h.Health, h.MaxHealth, h.Shield,
		h.Combo, h.ComboMultiplier, h.Wave, h.Kills, clock(h.Elapsed))
}

func statusText(h game.HUD, muted bool) string {
	var b strings.Builder
	if h.ChargePercent > 0 {
		fmt.Fprintf(&b, " Charge %s ", draw.Bar(h.ChargePercent, 8))
	}
	fmt.Fprintf(&b, " Dash %s  Wall %s", readiness(h.DashReady), readiness(h.WallReady))
	for _, p := range h.Powerups {
		fmt.Fprintf(&b, "  [%s]%s %ds[-]", p.Kind.Color().Hex(), p.Kind.DisplayName(), int(p.Remaining.Seconds()+0.5))
	}
	if h.BossActive {
		fmt.Fprintf(&b, "  [#ff0088]BOSS P%d %s[-]", h.BossPhase, draw.Bar(h.BossHealth, 12))
	}
	if muted {
		b.WriteString("  [gray](muted)[-]")
	}
	return b.String()
}

func readiness(ok bool) string {
	if ok {
		return "[green]ready[-]"
	}
	return "[gray]wait[-]"
}

func summaryText(s game.Summary, best bool) string {
	var b strings.Builder
	b.WriteString("GAME OVER\n\n")
	if best {
		b.WriteString("*** NEW HIGH SCORE ***\n\n")
	}
	fmt.Fprintf(&b, "Difficulty  %s\nScore  %d\nKills  %d\nSurvived  %s\nWave  %d\nBest combo  %d",
		s.Difficulty, s.Score, s.Kills, clock(s.TimeSurvived), s.Wave, s.MaxCombo)
	return b.String()
}
