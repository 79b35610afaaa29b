// Package sound plays synthesized effects for match events.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/battlecursor/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// maxVoices caps simultaneous effects so a busy frame cannot pile up noise.
const maxVoices = 16

// Manager routes game events to the speaker. Every method is safe to call
// before Init or after Close; sound is optional and the game runs without it.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewManager creates a manager. Call Init to open the audio device.
func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

// Init opens the speaker. Calling it twice is a no-op.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Close stops all playing effects.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// SetMuted silences or restores effects.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted reports whether effects are silenced.
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// Play starts the effect for one event kind.
func (m *Manager) Play(kind game.EventKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return
	}
	s := Effect(kind, sampleRate)
	if s == nil {
		return
	}

	speaker.Lock()
	if m.mixer.Len() < maxVoices {
		m.mixer.Add(s)
	}
	speaker.Unlock()
}

// Handle plays one effect per distinct event kind in a frame's events.
func (m *Manager) Handle(events []game.Event) {
	var seen [32]bool
	for _, e := range events {
		if int(e.Kind) < len(seen) && seen[e.Kind] {
			continue
		}
		if int(e.Kind) < len(seen) {
			seen[e.Kind] = true
		}
		m.Play(e.Kind)
	}
}
