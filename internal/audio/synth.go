package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator plays a fixed-length waveform. A sweep moves the frequency
// linearly from freq to freq+sweep over the duration.
type oscillator struct {
	wave   Wave
	rate   beep.SampleRate
	freq   float64
	sweep  float64
	phase  float64
	pos    int
	length int
	rng    *rand.Rand
}

func newOscillator(wave Wave, freq, sweep float64, d time.Duration, rate beep.SampleRate) *oscillator {
	return &oscillator{
		wave:   wave,
		rate:   rate,
		freq:   freq,
		sweep:  sweep,
		length: rate.N(d),
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}
		var v float64
		switch o.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (o.phase - 0.5)
		case WaveNoise:
			v = o.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		f := o.freq + o.sweep*float64(o.pos)/float64(o.length)
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades its streamer in over attack and out over release, and
// cuts it at length.
type envelope struct {
	s       beep.Streamer
	pos     int
	attack  int
	release int
	length  int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) *envelope {
	return &envelope{
		s:       s,
		attack:  rate.N(attack),
		release: rate.N(release),
		length:  rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.pos >= e.length {
		return 0, false
	}
	n, ok = e.s.Stream(samples)
	for i := range n {
		if e.pos >= e.length {
			return i, i > 0
		}
		vol := 1.0
		if e.attack > 0 && e.pos < e.attack {
			vol = float64(e.pos) / float64(e.attack)
		}
		if left := e.length - e.pos; e.release > 0 && left < e.release {
			vol = math.Min(vol, float64(left)/float64(e.release))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.s.Err() }

// withVolume scales s linearly by vol. Zero or less is silence.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
