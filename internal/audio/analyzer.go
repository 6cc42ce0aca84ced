package audio

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	// DefaultFFTSize is the transform window length; half of it becomes
	// the number of magnitude bins.
	DefaultFFTSize = 256

	smoothing   = 0.8
	minDecibels = -100.0
	maxDecibels = -30.0
)

// Analyzer turns capture buffers into byte frequency magnitudes, one value
// per bin in 0-255. Process runs on the capture goroutine; Snapshot can be
// called from any goroutine and returns the latest bins without blocking.
type Analyzer struct {
	size int
	win  []float64

	mu       sync.RWMutex
	bins     []byte
	smoothed []float64
	scratch  []float64

	stop func() error
}

// NewAnalyzer creates an analyzer for the given transform size. Sizes that
// are not a power of two are padded internally by the FFT, so the usual 256
// is what callers should pass.
func NewAnalyzer(fftSize int) *Analyzer {
	if fftSize <= 0 {
		fftSize = DefaultFFTSize
	}
	return &Analyzer{
		size:     fftSize,
		win:      window.Hann(fftSize),
		bins:     make([]byte, fftSize/2),
		smoothed: make([]float64, fftSize/2),
		scratch:  make([]float64, fftSize),
	}
}

// Bins returns the number of magnitude bins.
func (a *Analyzer) Bins() int { return a.size / 2 }

// Process folds one buffer of mono samples into the magnitude bins. Buffers
// shorter than the transform size are zero padded; longer ones contribute
// their most recent samples.
func (a *Analyzer) Process(samples []float32) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(samples) > a.size {
		samples = samples[len(samples)-a.size:]
	}
	for i := 0; i < a.size; i++ {
		if i < len(samples) {
			a.scratch[i] = float64(samples[i]) * a.win[i]
		} else {
			a.scratch[i] = 0
		}
	}

	spectrum := fft.FFTReal(a.scratch)
	for k := range a.bins {
		mag := cmplx.Abs(spectrum[k]) / float64(a.size)
		s := smoothing*a.smoothed[k] + (1-smoothing)*mag
		a.smoothed[k] = s
		a.bins[k] = toByte(20 * math.Log10(s))
	}
}

// toByte maps a dB magnitude onto 0-255 over [minDecibels, maxDecibels].
// Log10(0) is -Inf and clamps to zero, so silence needs no special case.
func toByte(db float64) byte {
	v := 255 * (db - minDecibels) / (maxDecibels - minDecibels)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}

// Snapshot returns a copy of the latest magnitude bins.
func (a *Analyzer) Snapshot() []byte {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]byte, len(a.bins))
	copy(out, a.bins)
	return out
}

// Close stops the capture feeding this analyzer, if any.
func (a *Analyzer) Close() error {
	if a.stop != nil {
		return a.stop()
	}
	return nil
}
