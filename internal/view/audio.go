package view

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/orbitsweep/orbitsweep/internal/core/event"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// tone is a sine or noise source with a linear release.
type tone struct {
	freq  float64
	phase float64
	pos   int
	total int
	noise bool
	rate  beep.SampleRate
	rng   *rand.Rand
}

func newTone(freq float64, d time.Duration, noise bool, rate beep.SampleRate) *tone {
	return &tone{freq: freq, total: rate.N(d), noise: noise, rate: rate, rng: rand.New(rand.NewSource(int64(freq) + 1))}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.pos >= t.total {
			return i, i > 0
		}
		var v float64
		if t.noise {
			v = t.rng.Float64()*2 - 1
		} else {
			v = math.Sin(2 * math.Pi * t.phase)
			t.phase += t.freq / float64(t.rate)
			t.phase -= math.Floor(t.phase)
		}
		v *= 1 - float64(t.pos)/float64(t.total)
		samples[i][0], samples[i][1] = v, v
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func collectSound(points int) beep.Streamer {
	freq := 660.0 + 110*float64(min(points, 4))
	return &effects.Volume{Streamer: newTone(freq, 80*time.Millisecond, false, sampleRate), Base: 2, Volume: -2}
}

func explosionSound() beep.Streamer {
	return &effects.Volume{Streamer: newTone(0, 900*time.Millisecond, true, sampleRate), Base: 2, Volume: -1}
}

// Audio plays cues for simulation events through the speaker.
type Audio struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	log         *zap.Logger
}

func NewAudio(log *zap.Logger) *Audio {
	return &Audio{mixer: &beep.Mixer{}, log: log}
}

// Init opens the audio device. Without it cues are silently dropped.
func (a *Audio) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(a.mixer)
	a.initialized = true
	a.log.Debug("audio initialized", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Subscribe hooks the cues onto the session's events.
func (a *Audio) Subscribe(bus *event.Bus) {
	event.Subscribe(bus, func(e event.GarbageCollected) { a.play(collectSound(e.Points)) })
	event.Subscribe(bus, func(event.CraftDestroyed) { a.play(explosionSound()) })
}

func (a *Audio) play(s beep.Streamer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return
	}
	speaker.Lock()
	a.mixer.Add(s)
	speaker.Unlock()
}

func (a *Audio) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	a.initialized = false
}
