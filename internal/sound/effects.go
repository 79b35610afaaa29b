package sound

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/battlecursor/internal/game"
)

// Effect builds the sound for a game event. Events without a sound return nil.
func Effect(kind game.EventKind, rate beep.SampleRate) beep.Streamer {
	switch kind {
	case game.EventShot:
		d := 60 * time.Millisecond
		return withVolume(shaped(newSweep(1200, 700, d, WaveSquare, rate), d, 40*time.Millisecond, rate), 0.15)

	case game.EventChargedShot:
		d := 220 * time.Millisecond
		return withVolume(shaped(newSweep(300, 90, d, WaveSaw, rate), d, 150*time.Millisecond, rate), 0.35)

	case game.EventDash:
		d := 150 * time.Millisecond
		return withVolume(shaped(newTone(0, d, WaveNoise, rate), d, 120*time.Millisecond, rate), 0.2)

	case game.EventWallPlaced:
		d := 90 * time.Millisecond
		return withVolume(shaped(newTone(160, d, WaveSquare, rate), d, 60*time.Millisecond, rate), 0.25)

	case game.EventWallHit, game.EventEnemyHit:
		d := 30 * time.Millisecond
		return withVolume(shaped(newTone(600, d, WaveSquare, rate), d, 20*time.Millisecond, rate), 0.08)

	case game.EventEnemyKilled:
		d := 180 * time.Millisecond
		return withVolume(shaped(newTone(0, d, WaveNoise, rate), d, 160*time.Millisecond, rate), 0.25)

	case game.EventKamikaze:
		burst, rumble := 150*time.Millisecond, 350*time.Millisecond
		return withVolume(beep.Seq(
			shaped(newTone(0, burst, WaveNoise, rate), burst, 50*time.Millisecond, rate),
			shaped(newSweep(120, 40, rumble, WaveSine, rate), rumble, 300*time.Millisecond, rate),
		), 0.35)

	case game.EventPlayerHurt:
		d := 150 * time.Millisecond
		return withVolume(shaped(newTone(100, d, WaveSaw, rate), d, 80*time.Millisecond, rate), 0.3)

	case game.EventPowerup:
		n1, n2 := 80*time.Millisecond, 160*time.Millisecond
		return withVolume(beep.Seq(
			shaped(newTone(987.77, n1, WaveSquare, rate), n1, 40*time.Millisecond, rate),
			shaped(newTone(1318.51, n2, WaveSquare, rate), n2, 120*time.Millisecond, rate),
		), 0.15)

	case game.EventBossSpawned:
		d := 900 * time.Millisecond
		return withVolume(shaped(newSweep(55, 110, d, WaveSaw, rate), d, 400*time.Millisecond, rate), 0.3)

	case game.EventBossDefeated:
		notes := []float64{523.25, 659.25, 783.99, 1046.5}
		var seq []beep.Streamer
		for _, f := range notes {
			d := 120 * time.Millisecond
			seq = append(seq, shaped(newTone(f, d, WaveSquare, rate), d, 60*time.Millisecond, rate))
		}
		return withVolume(beep.Seq(seq...), 0.2)

	case game.EventGameOver:
		d := 1200 * time.Millisecond
		return withVolume(shaped(newSweep(440, 55, d, WaveSaw, rate), d, 800*time.Millisecond, rate), 0.3)
	}
	return nil
}
