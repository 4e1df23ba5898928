// Package audio synthesizes the game's sound effects with beep and plays
// them in response to game events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gwarsgo/gwars/internal/config"
	"github.com/gwarsgo/gwars/internal/core/event"
	"github.com/gwarsgo/gwars/internal/game"
	"github.com/gwarsgo/gwars/internal/scene"
	"go.uber.org/zap"
)

// Manager owns the speaker mixer. Until Start succeeds, Play only counts.
type Manager struct {
	mu      sync.Mutex
	log     *zap.Logger
	rate    beep.SampleRate
	volume  float64
	enabled bool
	started bool
	mixer   *beep.Mixer
	subs    scene.Subscriptions
	played  [soundCount]int
}

func NewManager(cfg config.AudioConfig, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		log:     log,
		rate:    beep.SampleRate(cfg.SampleRate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		mixer:   &beep.Mixer{},
	}
}

// Start opens the audio device. A disabled manager starts as a no-op.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || m.started {
		return nil
	}
	if err := speaker.Init(m.rate, m.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker at %d Hz: %w", int(m.rate), err)
	}
	speaker.Play(m.mixer)
	m.started = true
	m.log.Info("audio started", zap.Int("sample_rate", int(m.rate)), zap.Float64("volume", m.volume))
	return nil
}

func (m *Manager) Started() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

// Subscribe plays effects for game events fired through d.
func (m *Manager) Subscribe(d *event.Dispatcher) {
	scene.On(&m.subs, d, func(game.ShotFired) { m.Play(SoundShot) })
	scene.On(&m.subs, d, func(game.EnemyKilled) { m.Play(SoundExplosion) })
	scene.On(&m.subs, d, func(game.PlayerDied) { m.Play(SoundDeath) })
	scene.On(&m.subs, d, func(game.WaveStarted) { m.Play(SoundWave) })
}

// Play queues s on the mixer.
func (m *Manager) Play(s Sound) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s < 0 || s >= soundCount {
		return
	}
	m.played[s]++
	if !m.started {
		return
	}
	st, err := Build(s, m.rate, m.volume)
	if err != nil {
		m.log.Warn("build sound", zap.Stringer("sound", s), zap.Error(err))
		return
	}
	speaker.Lock()
	m.mixer.Add(st)
	speaker.Unlock()
}

// Played returns how many times s was requested.
func (m *Manager) Played(s Sound) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s < 0 || s >= soundCount {
		return 0
	}
	return m.played[s]
}

// Close drops the event subscriptions and silences the mixer.
func (m *Manager) Close() {
	m.subs.Cancel()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.started = false
}
