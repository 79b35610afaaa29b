package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/loop"
	"github.com/tomz197/battlecursor/internal/sound"
	"github.com/tomz197/battlecursor/internal/tui"
)

func main() {
	var (
		difficulty  = flag.String("difficulty", config.DefaultDifficulty, "preselected difficulty")
		scoresPath  = flag.String("scores", config.GetEnv("SCORES_FILE", "scores.yaml"), "high score file")
		presetsPath = flag.String("presets", config.GetEnv("PRESETS_FILE", ""), "YAML file overriding difficulty presets")
		logPath     = flag.String("log", "", "write logs to this file")
		mute        = flag.Bool("mute", false, "start with sound muted")
		raw         = flag.Bool("raw", false, "draw with plain ANSI escapes instead of the full-screen UI")
		seed        = flag.Int64("seed", 0, "match seed; 0 picks one from the clock")
	)
	flag.Parse()

	// The terminal belongs to the game, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{ReportTimestamp: true, Level: log.DebugLevel})

	presets, err := config.LoadPresets(*presetsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load presets: %v\n", err)
		os.Exit(1)
	}
	if _, err := presets.Lookup(*difficulty); err != nil {
		fmt.Fprintf(os.Stderr, "%v (choose from %v)\n", err, presets.Names())
		os.Exit(2)
	}
	store := highscore.NewFileStore(*scoresPath, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *raw {
		err = runRaw(ctx, loop.Options{
			Presets:    presets,
			Difficulty: *difficulty,
			Store:      store,
			Logger:     logger,
			Seed:       *seed,
		})
	} else {
		snd := sound.NewManager()
		snd.SetMuted(*mute)
		err = tui.New(tui.Options{
			Presets:    presets,
			Difficulty: *difficulty,
			Store:      store,
			Sound:      snd,
			Logger:     logger,
			Seed:       *seed,
		}).Run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

// runRaw plays in the current terminal switched to raw mode, the same way an
// SSH session is served.
func runRaw(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.NewSession(reader, os.Stdout, opts).Run(ctx)
}
