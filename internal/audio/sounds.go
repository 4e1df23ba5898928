package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Sound identifies one synthesized effect.
type Sound int

const (
	SoundShot Sound = iota
	SoundExplosion
	SoundDeath
	SoundWave
	soundCount
)

func (s Sound) String() string {
	switch s {
	case SoundShot:
		return "shot"
	case SoundExplosion:
		return "explosion"
	case SoundDeath:
		return "death"
	case SoundWave:
		return "wave"
	default:
		return fmt.Sprintf("sound(%d)", int(s))
	}
}

const (
	shotLength      = 70 * time.Millisecond
	explosionLength = 350 * time.Millisecond
	deathLength     = 900 * time.Millisecond
	waveNoteLength  = 90 * time.Millisecond
)

// Build synthesizes s at the given rate, scaled by vol. Every streamer it
// returns ends on its own.
func Build(s Sound, rate beep.SampleRate, vol float64) (beep.Streamer, error) {
	var st beep.Streamer
	switch s {
	case SoundShot:
		tone, err := generators.SineTone(rate, 1320)
		if err != nil {
			return nil, fmt.Errorf("shot tone: %w", err)
		}
		st = newEnvelope(beep.Take(rate.N(shotLength), tone), shotLength, 2*time.Millisecond, 50*time.Millisecond, rate)
		st = withVolume(st, 0.5)

	case SoundExplosion:
		noise := newEnvelope(newOscillator(WaveNoise, 0, 0, explosionLength, rate),
			explosionLength, 5*time.Millisecond, 300*time.Millisecond, rate)
		rumble := newEnvelope(newOscillator(WaveSine, 90, -50, explosionLength, rate),
			explosionLength, 5*time.Millisecond, 250*time.Millisecond, rate)
		st = beep.Mix(withVolume(noise, 0.4), withVolume(rumble, 0.6))

	case SoundDeath:
		st = newEnvelope(newOscillator(WaveSaw, 440, -380, deathLength, rate),
			deathLength, 10*time.Millisecond, 400*time.Millisecond, rate)
		st = withVolume(st, 0.5)

	case SoundWave:
		note := func(freq float64) beep.Streamer {
			return newEnvelope(newOscillator(WaveSquare, freq, 0, waveNoteLength, rate),
				waveNoteLength, 5*time.Millisecond, 40*time.Millisecond, rate)
		}
		st = withVolume(beep.Seq(note(523.25), note(659.25), note(783.99)), 0.3)

	default:
		return nil, fmt.Errorf("unknown sound %d", int(s))
	}
	return withVolume(st, vol), nil
}
