package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gwarsgo/gwars/internal/config"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/game"
	"go.uber.org/zap/zaptest"
)

const rate = beep.SampleRate(8000)

// drain streams s to the end and returns the sample count and peak level.
func drain(t *testing.T, s beep.Streamer, limit int) (int, float64) {
	t.Helper()
	buf := make([][2]float64, 512)
	var total int
	var peak float64
	for {
		n, ok := s.Stream(buf)
		for i := range n {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			break
		}
		if total > limit {
			t.Fatalf("streamer still running after %d samples", total)
		}
	}
	if err := s.Err(); err != nil {
		t.Fatalf("Err = %v", err)
	}
	return total, peak
}

func TestOscillatorWaves(t *testing.T) {
	buf := make([][2]float64, 64)

	sq := newOscillator(WaveSquare, 440, 0, time.Second, rate)
	n, ok := sq.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	for i := range n {
		if v := buf[i][0]; v != 1 && v != -1 {
			t.Fatalf("square sample %d = %v", i, v)
		}
		if buf[i][0] != buf[i][1] {
			t.Fatalf("channels differ at %d", i)
		}
	}

	for _, w := range []Wave{WaveSine, WaveSaw, WaveNoise} {
		osc := newOscillator(w, 300, 100, time.Second, rate)
		n, _ := osc.Stream(buf)
		for i := range n {
			if v := buf[i][0]; v < -1 || v > 1 {
				t.Fatalf("wave %d sample %d = %v out of range", w, i, v)
			}
		}
	}
}

func TestOscillatorStopsAtLength(t *testing.T) {
	osc := newOscillator(WaveSine, 440, 0, 100*time.Millisecond, rate)
	n, _ := drain(t, osc, rate.N(time.Second))
	if want := rate.N(100 * time.Millisecond); n != want {
		t.Fatalf("streamed %d samples, want %d", n, want)
	}
}

func TestEnvelopeShape(t *testing.T) {
	src := newOscillator(WaveSquare, 100, 0, time.Second, rate)
	env := newEnvelope(src, 100*time.Millisecond, 10*time.Millisecond, 10*time.Millisecond, rate)

	buf := make([][2]float64, rate.N(100*time.Millisecond))
	n, _ := env.Stream(buf)
	if n != len(buf) {
		t.Fatalf("streamed %d, want %d", n, len(buf))
	}
	if buf[0][0] != 0 {
		t.Fatalf("first sample = %v, want silent attack start", buf[0][0])
	}
	if mid := math.Abs(buf[n/2][0]); mid != 1 {
		t.Fatalf("sustain level = %v, want 1", mid)
	}
	if last := math.Abs(buf[n-1][0]); last > 0.05 {
		t.Fatalf("last sample = %v, want faded out", last)
	}
	if m, ok := env.Stream(buf); m != 0 || ok {
		t.Fatalf("Stream after end = %d, %v", m, ok)
	}
}

func TestBuildEverySoundEnds(t *testing.T) {
	for s := range soundCount {
		t.Run(s.String(), func(t *testing.T) {
			st, err := Build(s, rate, 1)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			n, peak := drain(t, st, rate.N(2*time.Second))
			if n == 0 || peak == 0 {
				t.Fatalf("samples=%d peak=%v, want audible output", n, peak)
			}
		})
	}

	if _, err := Build(soundCount, rate, 1); err == nil {
		t.Fatal("Build accepted an unknown sound")
	}
}

func TestZeroVolumeIsSilent(t *testing.T) {
	st, err := Build(SoundDeath, rate, 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, peak := drain(t, st, rate.N(2*time.Second)); peak != 0 {
		t.Fatalf("peak = %v at zero volume", peak)
	}
}

func TestManagerFollowsGameEvents(t *testing.T) {
	m := NewManager(config.AudioConfig{Enabled: false, SampleRate: int(rate), Volume: 0.5}, zaptest.NewLogger(t))
	if err := m.Start(); err != nil {
		t.Fatalf("Start on disabled manager: %v", err)
	}
	if m.Started() {
		t.Fatal("disabled manager opened the speaker")
	}

	d := event.NewDispatcher()
	m.Subscribe(d)
	event.Fire(d, game.ShotFired{})
	event.Fire(d, game.ShotFired{})
	event.Fire(d, game.EnemyKilled{Score: 100})
	event.Fire(d, game.WaveStarted{Level: 1, Size: 3})
	event.Fire(d, game.PlayerDied{})

	want := map[Sound]int{SoundShot: 2, SoundExplosion: 1, SoundWave: 1, SoundDeath: 1}
	for s, n := range want {
		if got := m.Played(s); got != n {
			t.Errorf("Played(%v) = %d, want %d", s, got, n)
		}
	}

	m.Close()
	event.Fire(d, game.ShotFired{})
	if got := m.Played(SoundShot); got != 2 {
		t.Fatalf("Played(shot) = %d after Close", got)
	}
}
