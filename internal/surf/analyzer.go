package surf

import (
	"context"
	"math"
	"math/cmplx"
	"sync/atomic"
	"time"

	"github.com/mjibson/go-dsp/fft"
)

// AudioBands holds the latest frequency band energies. Replaced wholesale on
// every publish, never partially mutated.
type AudioBands struct {
	Low  float32 // bass
	Mid  float32
	High float32
}

// Analyzer is the FFT analysis worker. It periodically drains the shared
// sample tap, windows it, runs a forward FFT, and publishes the mean bin
// magnitude of the three configured bands.
type Analyzer struct {
	cfg SpectralConfig
	tap *sampleTap

	window []float64 // precomputed Hann coefficients
	frame  []float64 // reused windowed input

	bands atomic.Pointer[AudioBands]
}

func NewAnalyzer(cfg SpectralConfig, tap *sampleTap) *Analyzer {
	a := &Analyzer{
		cfg:    cfg,
		tap:    tap,
		window: make([]float64, cfg.FFTSize),
		frame:  make([]float64, cfg.FFTSize),
	}
	for i := range a.window {
		a.window[i] = hannWindow(i, cfg.FFTSize)
	}
	a.bands.Store(&AudioBands{})
	return a
}

// Bands returns the latest published snapshot. Non-blocking; safe from any
// goroutine.
func (a *Analyzer) Bands() AudioBands {
	return *a.bands.Load()
}

// Run drives analysis cycles on the configured interval until ctx is
// cancelled.
func (a *Analyzer) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(a.cfg.UpdateIntervalMs) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.catchUp()
		}
	}
}

// catchUp runs analysis cycles until the tap no longer holds a full window.
// The driver appends faster than a single half-window drain per interval, so
// a lone cycle would let the tap grow without bound; draining to under one
// window keeps the backlog, and the snapshot's staleness, bounded.
func (a *Analyzer) catchUp() {
	for a.analyzeOnce() {
	}
}

// analyzeOnce runs one full analysis cycle. If the tap holds fewer than
// FFTSize samples it does nothing: a cycle either completes fully or is a
// no-op, so no partial bands are ever published.
func (a *Analyzer) analyzeOnce() bool {
	// 50% overlap: each window reuses the back half of the previous one.
	if !a.tap.TakeWindow(a.frame, a.cfg.FFTSize/2) {
		return false
	}

	for i := range a.frame {
		a.frame[i] *= a.window[i]
	}
	spectrum := fft.FFTReal(a.frame)

	bassLo, bassHi := a.cfg.BassBins()
	midLo, midHi := a.cfg.MidBins()
	highLo, highHi := a.cfg.HighBins()

	a.bands.Store(&AudioBands{
		Low:  bandMean(spectrum, bassLo, bassHi),
		Mid:  bandMean(spectrum, midLo, midHi),
		High: bandMean(spectrum, highLo, highHi),
	})
	return true
}

// bandMean returns the arithmetic mean magnitude of bins [lo, hi). The mean
// (not the sum) keeps bands of different widths comparable.
func bandMean(spectrum []complex128, lo, hi int) float32 {
	if hi > len(spectrum) {
		hi = len(spectrum)
	}
	if lo >= hi {
		return 0
	}
	sum := 0.0
	for _, c := range spectrum[lo:hi] {
		sum += cmplx.Abs(c)
	}
	return float32(sum / float64(hi-lo))
}

// hannWindow is the Hann taper: 0.5 * (1 - cos(2πi/(N-1))).
func hannWindow(i, n int) float64 {
	return 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n-1)))
}
