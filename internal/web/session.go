package web

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/tomz197/battlecursor/internal/config"
	"github.com/tomz197/battlecursor/internal/game"
	"github.com/tomz197/battlecursor/internal/highscore"
	"github.com/tomz197/battlecursor/internal/physics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 1024
	sendBuffer     = 64
	inputBuffer    = 256
)

// session is one browser connection playing one match at a time. Only the
// tick goroutine touches the match; reads arrive over the inputs channel.
type session struct {
	id     string
	conn   *websocket.Conn
	preset config.Preset
	clock  game.Clock
	store  highscore.Store
	logger *log.Logger

	inputs chan ClientMsg
	send   chan []byte

	match *game.State
	move  physics.Vec
	aim   physics.Vec
}

func newSession(id string, conn *websocket.Conn, preset config.Preset, clock game.Clock, store highscore.Store, logger *log.Logger) *session {
	s := &session{
		id:     id,
		conn:   conn,
		preset: preset,
		clock:  clock,
		store:  store,
		logger: logger.With("session", id),
		inputs: make(chan ClientMsg, inputBuffer),
		send:   make(chan []byte, sendBuffer),
	}
	s.newMatch()
	return s
}

func (s *session) newMatch() {
	s.match = game.New(game.Options{Preset: s.preset, Clock: s.clock})
	s.move = physics.Vec{}
	s.aim = s.match.Player.Pos.Add(physics.Vec{X: 100})
	s.logger.Info("Match started", "difficulty", s.preset.Name)
}

// readLoop decodes client messages until the connection fails.
func (s *session) readLoop(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("WebSocket read failed", "err", err)
			}
			return
		}

		var msg ClientMsg
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Debug("Ignoring malformed message", "err", err)
			continue
		}
		select {
		case s.inputs <- msg:
		case <-ctx.Done():
			return
		}
	}
}

// writeLoop sends queued frames and keepalive pings. It closes the
// connection on exit, which also ends readLoop.
func (s *session) writeLoop(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case data := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				s.logger.Warn("WebSocket write failed", "err", err)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// tickLoop owns the match: it applies inputs and steps at the tick rate.
func (s *session) tickLoop(ctx context.Context) {
	ticker := time.NewTicker(config.TickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.inputs:
			s.apply(msg)
		case <-ticker.C:
			s.step()
		}
	}
}

// apply handles one client message.
func (s *session) apply(msg ClientMsg) {
	m := s.match
	if msg.Type == MsgRestart {
		if m.Over {
			s.newMatch()
		}
		return
	}
	if m.Over {
		return
	}

	switch msg.Type {
	case MsgInput:
		s.move = msg.Move()
		s.aim = m.Arena.Clamp(msg.Aim(), 0)
	case MsgFireDown:
		m.PressFire()
	case MsgFireUp:
		m.ReleaseFire(m.Arena.Clamp(msg.Aim(), 0))
	case MsgDash:
		m.Dash(m.Arena.Clamp(msg.Aim(), 0))
	case MsgWall:
		m.DragRelease(physics.Vec{X: msg.SX, Y: msg.SY}, physics.Vec{X: msg.EX, Y: msg.EY})
	default:
		s.logger.Debug("Ignoring unknown message", "type", msg.Type)
	}
}

// step advances the match, queues a snapshot and finishes the match when
// the player dies.
func (s *session) step() {
	m := s.match
	if m.Over {
		return
	}
	m.Step(game.Input{Move: s.move})

	for _, e := range m.DrainEvents() {
		switch e.Kind {
		case game.EventBossSpawned:
			s.logger.Debug("Boss spawned", "health", e.Value, "wave", m.Wave)
		case game.EventBossDefeated:
			s.logger.Debug("Boss defeated", "wave", m.Wave)
		}
	}

	if err := s.queue(NewSnapshot(s.id, m), false); err != nil {
		s.logger.Error("Failed to encode snapshot", "err", err)
	}
	if m.Over {
		s.finish()
	}
}

func (s *session) finish() {
	summary := s.match.Summary()
	prev, err := s.store.Load()
	if err != nil {
		s.logger.Warn("Failed to load high scores", "err", err)
	}
	best := summary.Score > 0 && highscore.Qualifies(prev, summary.Score)
	if err := s.store.Save(summary.Entry(s.clock.Now())); err != nil {
		s.logger.Error("Failed to save high score", "err", err)
	}
	s.logger.Info("Match over", "score", summary.Score, "kills", summary.Kills, "time", summary.TimeSurvived)

	if err := s.queue(NewSummaryMsg(summary, best), true); err != nil {
		s.logger.Error("Failed to encode summary", "err", err)
	}
}

var errSendFull = errors.New("send buffer full")

// queue encodes v and hands it to the writer. Snapshots are dropped when the
// client falls behind; the summary must get through, so it evicts a queued
// snapshot instead.
func (s *session) queue(v any, must bool) error {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case s.send <- data:
		return nil
	default:
	}
	if !must {
		return nil
	}
	select {
	case <-s.send:
	default:
	}
	select {
	case s.send <- data:
		return nil
	default:
		return errSendFull
	}
}
