package main

import (
	"bufio"
	"context"
	"errors"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/draw"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultScoresPath  = "/app/data/scores.yaml"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ssh",
	})

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	presets, err := config.LoadPresets(config.GetEnv("PRESETS_FILE", ""))
	if err != nil {
		logger.Fatal("Could not load difficulty presets", "err", err)
	}
	store := highscore.NewFileStore(config.GetEnv("SCORES_FILE", defaultScoresPath), logger)

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithHostKeyPath(hostKeyPath),
		// Frames go out in many small writes; keep Nagle from batching them.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
		wish.WithMiddleware(
			gameMiddleware(store, presets, logger),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		logger.Fatal("Could not create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "host", host, "port", port)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Error("Could not start server", "err", err)
			done <- nil
		}
	}()

	<-done
	logger.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		logger.Error("Could not stop server", "err", err)
	}
}

// gameMiddleware runs one independent game session per SSH connection.
func gameMiddleware(store highscore.Store, presets config.Presets, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				wish.Fatalln(sess, "no active terminal, skipping")
				return
			}
			logger.Info("New game session", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			size := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					size.update(win.Width, win.Height)
				}
			}()

			session := loop.NewSession(bufio.NewReader(sess), sess, loop.Options{
				Presets:      presets,
				Store:        store,
				Logger:       logger,
				TermSizeFunc: size.getSize,
				Username:     sess.User(),
			})
			if err := session.Run(sess.Context()); err != nil {
				logger.Error("Session ended with error", "user", sess.User(), "err", err)
			}
			next(sess)
		}
	}
}

// sizeTracker holds the latest window size reported by the client.
type sizeTracker struct {
	mu            sync.Mutex
	width, height int
}

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (t *sizeTracker) update(width, height int) {
	t.mu.Lock()
	t.width, t.height = width, height
	t.mu.Unlock()
}

func (t *sizeTracker) getSize() (int, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.width, t.height, nil
}
