// Package loop runs a Battle Cursor session on an ANSI terminal: the menu,
// the match and the game over screen, with the usual Input, Update, Draw
// cycle at a fixed frame rate.
package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/draw"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/input"
)

// Layout rows outside the canvas: one HUD line above, one status line below.
const (
	hudRows    = 1
	statusRows = 1
)

// Options configures a session.
type Options struct {
	Presets      config.Presets
	Difficulty   string // Preselected preset; defaults to config.DefaultDifficulty
	Store        highscore.Store
	Logger       *log.Logger
	TermSizeFunc draw.TermSizeFunc
	Clock        game.Clock // Match clock; defaults to game.SystemClock
	Seed         int64      // Match seed; 0 seeds from the clock
	Username     string
}

// Session handles rendering and input for a single terminal.
type Session struct {
	opts        Options
	state       *sessionState
	canvas      *draw.Canvas
	chunkWriter *draw.ChunkWriter
	writer      io.Writer
	inputStream *input.Stream
	logger      *log.Logger
}

// NewSession creates a session reading keys from r and drawing to w.
func NewSession(r *bufio.Reader, w io.Writer, opts Options) *Session {
	if opts.Presets == nil {
		opts.Presets = config.DefaultPresets()
	}
	if opts.Difficulty == "" {
		opts.Difficulty = config.DefaultDifficulty
	}
	if opts.Store == nil {
		opts.Store = &highscore.MemoryStore{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = draw.DefaultTermSizeFunc
	}
	if opts.Clock == nil {
		opts.Clock = game.SystemClock{}
	}

	logger := opts.Logger
	if opts.Username != "" {
		logger = logger.With("user", opts.Username)
	}

	s := &Session{
		opts:        opts,
		state:       newSessionState(opts.Presets.Names(), opts.Difficulty),
		canvas:      draw.NewScaledCanvas(1, 1, config.ArenaWidth, config.ArenaHeight),
		writer:      w,
		inputStream: input.StartStream(r),
		logger:      logger,
	}
	s.chunkWriter = draw.NewChunkWriter(w, 0, 0)
	s.loadScores()
	return s
}

// Run starts the session loop. It blocks until the user quits, the input
// closes, the user stays inactive too long or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	io.WriteString(s.writer, input.EnableMouse)
	draw.HideCursor(s.writer)
	defer func() {
		io.WriteString(s.writer, input.DisableMouse+draw.ColorReset)
		draw.ClearScreen(s.writer)
		draw.ShowCursor(s.writer)
	}()
	draw.ClearScreen(s.writer)

	for s.state.Running {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		s.processInput()
		s.updateScreen()

		switch s.state.Screen {
		case ScreenMenu:
			s.updateMenu()
		case ScreenPlaying:
			s.updatePlaying()
		case ScreenGameOver:
			s.updateGameOver()
		}

		if err := s.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput reads this frame's input and tracks inactivity.
func (s *Session) processInput() {
	in, open := input.ReadInput(s.inputStream)
	s.state.Input = in
	if !open {
		s.state.Running = false
		return
	}

	idle := time.Since(s.state.lastInput).Seconds()
	switch {
	case len(in.Pressed) > 0:
		s.state.lastInput = time.Now()
		s.state.isInactive = false
	case idle > config.InactivityDisconnectUser:
		s.logger.Info("Disconnecting inactive session")
		s.state.Running = false
	case idle > config.InactivityWarnUser:
		s.state.isInactive = true
	}

	if in.Quit {
		s.state.Running = false
	}
}

// updateScreen fits the canvas to the current terminal size.
func (s *Session) updateScreen() {
	termWidth, termHeight, err := s.opts.TermSizeFunc()
	if err != nil {
		return
	}
	width, height, offCol, offRow := fitTermSize(termWidth, termHeight)

	if width != s.canvas.TerminalWidth() || height != s.canvas.TerminalHeight() ||
		offCol != s.canvas.OffsetCol() || offRow != s.canvas.OffsetRow() {
		s.chunkWriter.WriteString("\033[H\033[2J")
	}
	s.canvas.Resize(width, height)
	s.canvas.SetOffset(offCol, offRow)
	s.chunkWriter.SetOffset(offCol, offRow)
}

// fitTermSize picks the largest render area with the arena's aspect ratio
// that leaves room for the HUD and status lines, centered in the terminal.
// Offsets are 0-based.
func fitTermSize(termWidth, termHeight int) (width, height, offsetCol, offsetRow int) {
	rows := max(termHeight-hudRows-statusRows, 1)
	width, height = draw.FitArea(termWidth, rows, config.ArenaWidth, config.ArenaHeight)

	offsetCol = max((termWidth-width)/2, 0)
	offsetRow = hudRows + max((rows-height)/2, 0)
	return width, height, offsetCol, offsetRow
}

func (s *Session) loadScores() {
	scores, err := s.opts.Store.Load()
	if err != nil {
		s.logger.Warn("Failed to load high scores", "err", err)
		return
	}
	s.state.Scores = scores
}
