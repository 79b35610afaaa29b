package loop

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/draw"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/object"
)

// menuScoreRows is how many high scores the menu lists.
const menuScoreRows = 5

// drawFrame draws the current frame.
func (s *Session) drawFrame() error {
	st := s.state

	// On screen or inactivity transitions, clear the terminal so text from
	// the previous screen does not persist.
	if st.Screen != st.prevScreen || st.isInactive != st.wasInactive {
		s.chunkWriter.WriteString("\033[H\033[2J")
		s.canvas.ForceRedraw()
		st.prevScreen = st.Screen
		st.wasInactive = st.isInactive
	}

	s.canvas.Clear()
	if st.Screen == ScreenPlaying && st.Match != nil && !st.isInactive {
		overlay := draw.Overlay{Aim: st.Aim, WallStart: st.WallStart}
		if overlay.WallStart == nil {
			overlay.WallStart = st.DragStart
		}
		draw.Scene(s.canvas, st.Match, overlay)
	}
	s.canvas.Render(s.chunkWriter)

	width, height := s.canvas.TerminalWidth(), s.canvas.TerminalHeight()
	switch {
	case st.isInactive:
		s.drawInactivityScreen(width/2, height/2)
	case st.Screen == ScreenMenu:
		s.drawMenu(width/2, height/2)
	case st.Screen == ScreenPlaying && st.Match != nil:
		draw.Labels(s.chunkWriter, s.canvas, st.Match)
		s.drawHUD(width, height, st.Match.HUD())
	case st.Screen == ScreenGameOver:
		s.drawGameOver(width/2, height/2)
	}

	return s.chunkWriter.Flush()
}

// text writes s at a 1-based render area position if the row is on screen.
func (s *Session) text(col, row int, text string) {
	if row < 1-hudRows || row > s.canvas.TerminalHeight()+statusRows {
		return
	}
	s.chunkWriter.WriteAt(max(col, 1), row, text)
}

func (s *Session) centered(centerX, row int, text string) {
	s.text(centerX-utf8.RuneCountInString(text)/2, row, text)
}

// fit pads or cuts text to exactly width runes, so shorter values overwrite
// longer ones from the previous frame.
func fit(text string, width int) string {
	n := utf8.RuneCountInString(text)
	if n > width {
		return string([]rune(text)[:max(width, 0)])
	}
	return text + strings.Repeat(" ", width-n)
}

func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

var titleArt = []string{
	` ___   _ _____ _____ _    ___    ___ _   _ ___  ___  ___  ___  `,
	`| _ ) /_\_   _|_   _| |  | __|  / __| | | | _ \/ __|/ _ \| _ \ `,
	`| _ \/ _ \| |   | | | |__| _|  | (__| |_| |   /\__ \ (_) |   / `,
	`|___/_/ \_\_|   |_| |____|___|  \___|\___/|_|_\|___/\___/|_|_\ `,
}

// drawMenu draws the title, difficulty selection and best scores.
func (s *Session) drawMenu(centerX, centerY int) {
	st := s.state
	row := centerY - 10
	for i, line := range titleArt {
		s.centered(centerX, row+i, line)
	}
	row += len(titleArt) + 1
	s.centered(centerX, row, "~ Survive the swarm. Break the bosses. ~")

	row += 2
	s.centered(centerX, row, "Difficulty")
	for i, name := range st.Difficulty {
		marker := "  "
		if i == st.Selected {
			marker = "> "
		}
		p := s.opts.Presets[name]
		line := fmt.Sprintf("%s%d. %-8s health %-3d", marker, i+1, name, p.PlayerHealth)
		s.centered(centerX, row+1+i, line)
	}
	row += len(st.Difficulty) + 2

	controls := []string{
		"WASD  . . . . . . . Move",
		"Arrows / mouse  . . Aim",
		"SPACE / click . .  Shoot",
		"C / hold click .  Charge",
		"E / right click  . Dash",
		"F twice / drag  .  Wall",
		"Q . . . . . . . .  Quit",
	}
	for i, line := range controls {
		s.centered(centerX, row+i, line)
	}
	row += len(controls) + 1

	s.drawScores(centerX, row, menuScoreRows)
	row += menuScoreRows + 2

	prompt := ">>  Press SPACE to Start  <<"
	if blinkOn() {
		s.centered(centerX, row, prompt)
	} else {
		s.centered(centerX, row, strings.Repeat(" ", len(prompt)))
	}
}

// drawScores lists up to n high scores starting at row.
func (s *Session) drawScores(centerX, row, n int) {
	s.centered(centerX, row, fmt.Sprintf("%-3s %8s %6s %6s  %-10s", "#", "Score", "Kills", "Time", "Date"))
	for i := 0; i < n; i++ {
		line := fmt.Sprintf("%-3s %8s %6s %6s  %-10s", "-", "", "", "", "")
		if i < len(s.state.Scores) {
			line = scoreLine(i+1, s.state.Scores[i])
		}
		s.centered(centerX, row+1+i, line)
	}
}

func scoreLine(rank int, e highscore.Entry) string {
	return fmt.Sprintf("%-3d %8d %6d %6s  %-10s",
		rank, e.Score, e.Kills, clock(e.TimeSurvived), e.Date.Local().Format("2006-01-02"))
}

// clock formats seconds as m:ss.
func clock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// drawHUD draws the status lines above and below the arena.
// Fields use fixed widths so shrinking values leave no residue.
func (s *Session) drawHUD(width, height int, h game.HUD) {
	top := fmt.Sprintf(" Score %-8d  HP %s %3d/%-3d  Shield %d  Combo %2d x%.1f  Wave %-2d  Kills %-4d  %6s",
		h.Score, draw.Bar(h.HealthFraction, 10), h.Health, h.MaxHealth, h.Shield,
		h.Combo, h.ComboMultiplier, h.Wave, h.Kills, clock(h.Elapsed))
	s.text(1, 0, fit(top, width))

	var b strings.Builder
	if h.ChargePercent > 0 {
		fmt.Fprintf(&b, " Charge %s ", draw.Bar(h.ChargePercent, 8))
	}
	fmt.Fprintf(&b, " Dash %s  Wall %s ", ready(h.DashReady), ready(h.WallReady))
	for _, p := range h.Powerups {
		fmt.Fprintf(&b, " %s%s %ds%s", draw.FgColor(p.Kind.Color()), p.Kind.DisplayName(),
			int(p.Remaining.Seconds()+0.5), draw.ColorReset)
	}
	status := b.String()
	if h.BossActive {
		status += fmt.Sprintf("  %sBOSS P%d %s%s", draw.FgColor(object.ColorBoss), h.BossPhase,
			draw.Bar(h.BossHealth, 12), draw.ColorReset)
	}
	// Color escapes take no columns; pad on the visible length.
	visible := utf8.RuneCountInString(stripEscapes(status))
	if visible < width {
		status += strings.Repeat(" ", width-visible)
	}
	s.text(1, height+1, status)
}

func ready(ok bool) string {
	if ok {
		return "ready"
	}
	return "wait "
}

// stripEscapes removes ANSI CSI sequences.
func stripEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\033' {
			for i < len(s) && s[i] != 'm' {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

var gameOverArt = []string{
	`  ___   _   __  __ ___    _____   _____ ___  `,
	` / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	`| (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	` \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawGameOver draws the match summary.
func (s *Session) drawGameOver(centerX, centerY int) {
	sm := s.state.Summary
	row := centerY - 10
	for i, line := range gameOverArt {
		s.centered(centerX, row+i, line)
	}
	row += len(gameOverArt) + 1

	if s.state.NewBest {
		s.centered(centerX, row, draw.FgColor(object.ColorCombo)+"*** NEW HIGH SCORE ***"+draw.ColorReset)
	}
	row += 2

	lines := []string{
		fmt.Sprintf("Difficulty  %10s", sm.Difficulty),
		fmt.Sprintf("Score       %10d", sm.Score),
		fmt.Sprintf("Kills       %10d", sm.Kills),
		fmt.Sprintf("Survived    %10s", clock(sm.TimeSurvived)),
		fmt.Sprintf("Wave        %10d", sm.Wave),
		fmt.Sprintf("Best combo  %10d", sm.MaxCombo),
	}
	for i, line := range lines {
		s.centered(centerX, row+i, line)
	}
	row += len(lines) + 1

	s.drawScores(centerX, row, menuScoreRows)
	row += menuScoreRows + 2

	prompt := ">>  Press SPACE for the menu  <<"
	if time.Since(s.state.overAt) >= gameOverInputDelay && blinkOn() {
		s.centered(centerX, row, prompt)
	} else {
		s.centered(centerX, row, strings.Repeat(" ", len(prompt)))
	}
}

// drawInactivityScreen draws the inactivity warning.
func (s *Session) drawInactivityScreen(centerX, centerY int) {
	s.centered(centerX, centerY-2, "INACTIVITY WARNING")
	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %3d seconds.",
		int(config.InactivityDisconnectUser-time.Since(s.state.lastInput).Seconds()),
	)
	s.centered(centerX, centerY, msg)
	s.centered(centerX, centerY+2, "Press any key to continue")
}
