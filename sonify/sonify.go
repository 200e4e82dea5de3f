// Package sonify streams an audible progress cue for long-running
// corr.Compute batches: a tone whose pitch tracks how close the
// worst-tracker's current maximum is to the largest achievable match count
// in the run. It adapts the teacher's ring-buffered portaudio output stream
// (originally feeding pre-rendered APU samples) to a synthesized oscillator
// instead, so corr.Compute only ever has to call a plain
// func(acc int) hook — it has no audio dependency of its own.
package sonify

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"
)

const sampleRate = 44100

// Sonifier renders a sine wave whose frequency is set by SetTarget (or by
// the callback returned by OnNewMax) and streams it to the default audio
// output device.
type Sonifier struct {
	stream  *portaudio.Stream
	channel chan float32
	freqHz  uint64 // math.Float64bits, read/written atomically
	phase   float64
	stop    chan struct{}
}

// New constructs a silent Sonifier; call Start to open the audio device.
func New() *Sonifier {
	s := &Sonifier{
		channel: make(chan float32, sampleRate),
		stop:    make(chan struct{}),
	}
	s.freqHz = math.Float64bits(220) // A3, the idle tone
	return s
}

// SetTarget changes the oscillator's frequency in Hz.
func (s *Sonifier) SetTarget(hz float64) {
	atomic.StoreUint64(&s.freqHz, math.Float64bits(hz))
}

// OnNewMax returns a callback suitable for corr.Options.OnNewMax: it maps
// the new global maximum, as a fraction of maxPossible, onto an audible
// range from 220Hz to 1760Hz (three octaves), so a run that is converging
// toward a perfect match rises in pitch.
func (s *Sonifier) OnNewMax(maxPossible int) func(acc int) {
	if maxPossible <= 0 {
		maxPossible = 1
	}
	return func(acc int) {
		frac := float64(acc) / float64(maxPossible)
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		s.SetTarget(220 * math.Pow(2, 3*frac))
	}
}

// generate runs in its own goroutine, filling channel with oscillator
// samples at whatever frequency SetTarget most recently set, the
// "producer" half of the teacher's producer/callback split (ui/audio.go
// fed its channel from the APU instead).
func (s *Sonifier) generate() {
	for {
		select {
		case <-s.stop:
			return
		default:
		}
		hz := math.Float64frombits(atomic.LoadUint64(&s.freqHz))
		s.phase += 2 * math.Pi * hz / sampleRate
		if s.phase > 2*math.Pi {
			s.phase -= 2 * math.Pi
		}
		sample := float32(math.Sin(s.phase))
		select {
		case s.channel <- sample:
		case <-s.stop:
			return
		}
	}
}

// Start opens the default audio output stream and begins generating tone.
func (s *Sonifier) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("sonify: initializing portaudio: %w", err)
	}
	cb := func(out []float32) {
		for i := range out {
			select {
			case x := <-s.channel:
				out[i] = x * 0.05
			default:
				out[i] = 0
			}
		}
	}
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, 0, cb)
	if err != nil {
		return fmt.Errorf("sonify: opening audio stream: %w", err)
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		return fmt.Errorf("sonify: starting audio stream: %w", err)
	}
	go s.generate()
	return nil
}

// Stop halts the oscillator and closes the audio device.
func (s *Sonifier) Stop() {
	close(s.stop)
	if s.stream != nil {
		s.stream.Close()
	}
	portaudio.Terminate()
}
