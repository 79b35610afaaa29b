package sound

import (
	"testing"
	"time"

	"github.com/tomz197/battlecursor/internal/game"
)

func TestManagerWithoutInit(t *testing.T) {
	m := NewManager()
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("sound call panicked without init: %v", r)
		}
	}()

	m.Play(game.EventShot)
	m.Handle([]game.Event{{Kind: game.EventEnemyKilled}, {Kind: game.EventEnemyKilled}})
	m.SetMuted(true)
	if !m.Muted() {
		t.Error("mute not recorded")
	}
	m.Close()
}

func TestManagerInit(t *testing.T) {
	m := NewManager()
	if err := m.Init(); err != nil {
		t.Logf("no audio device: %v", err)
		return
	}
	if err := m.Init(); err != nil {
		t.Errorf("second init: %v", err)
	}
	m.Play(game.EventPowerup)
	m.Close()
}

func TestEffectsTerminate(t *testing.T) {
	buf := make([][2]float64, 512)
	limit := sampleRate.N(2 * time.Second)

	for kind := game.EventShot; kind <= game.EventGameOver; kind++ {
		s := Effect(kind, sampleRate)
		if s == nil {
			t.Errorf("%v has no sound", kind)
			continue
		}

		total := 0
		for {
			n, ok := s.Stream(buf)
			total += n
			for _, smp := range buf[:n] {
				if smp[0] > 1.0001 || smp[0] < -1.0001 {
					t.Fatalf("%v sample out of range: %v", kind, smp[0])
				}
			}
			if !ok || total > limit {
				break
			}
		}
		if total == 0 || total > limit {
			t.Errorf("%v streamed %d samples", kind, total)
		}
	}
}
