package surf

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync/atomic"

	"github.com/hajimehoshi/oto/v2"
)

// AudioSystem owns the synthesis engine, the output device, and the FFT
// worker. Construction is fatal on any device or config failure; the process
// does not run without working audio.
type AudioSystem struct {
	ctx      *oto.Context
	player   oto.Player
	analyzer *Analyzer
	cancel   context.CancelFunc
	rec      *Recorder
}

// NewAudioSystem validates the spectral config, opens the output device,
// starts the synthesis stream, and launches the analysis worker. rec may be
// nil (no recording).
func NewAudioSystem(cfg SpectralConfig, engine Engine, rec *Recorder) (*AudioSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spectral config: %w", err)
	}

	octx, ready, err := oto.NewContext(cfg.SampleRateHz, ChannelCount, BitDepth)
	if err != nil {
		return nil, fmt.Errorf("audio device: %w", err)
	}
	<-ready

	tap := &sampleTap{}
	analyzer := NewAnalyzer(cfg, tap)

	runCtx, cancel := context.WithCancel(context.Background())
	go analyzer.Run(runCtx)

	player := octx.NewPlayer(newStreamReader(engine, tap, rec))
	player.Play()

	fmt.Printf("Audio: %dHz, %d-frame blocks, FFT %d @ %dms\n",
		cfg.SampleRateHz, BlockSize, cfg.FFTSize, cfg.UpdateIntervalMs)

	return &AudioSystem{
		ctx:      octx,
		player:   player,
		analyzer: analyzer,
		cancel:   cancel,
		rec:      rec,
	}, nil
}

// Bands returns the latest frequency band snapshot.
func (s *AudioSystem) Bands() AudioBands {
	return s.analyzer.Bands()
}

// Close stops playback, the analysis worker, and the recording sink.
func (s *AudioSystem) Close() {
	s.cancel()
	s.player.Close()
	if s.rec != nil {
		if err := s.rec.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "recorder close: %v\n", err)
		}
	}
}

// streamReader is the audio callback: oto pulls interleaved stereo float32
// frames from Read on the device's clock. Each pull is served from repeated
// fixed-size engine blocks, hard-clipped, tapped for analysis, and forwarded
// to the recorder. A missed or dropped frame is never resynthesized.
type streamReader struct {
	engine Engine
	tap    *sampleTap
	rec    *Recorder

	// Current clamped block and read cursor; leftovers carry across Reads
	// since a pull rarely aligns with the block size.
	left  [BlockSize]float32
	right [BlockSize]float32
	pos   int

	dropped atomic.Uint64 // recorder queue overflows, reported once each
}

func newStreamReader(engine Engine, tap *sampleTap, rec *Recorder) *streamReader {
	return &streamReader{engine: engine, tap: tap, rec: rec, pos: BlockSize}
}

// Read fills p with as many whole frames as fit. It never returns an error:
// the stream is infinite and per-callback problems go to stderr.
func (r *streamReader) Read(p []byte) (int, error) {
	frames := len(p) / 8
	for i := 0; i < frames; i++ {
		if r.pos >= BlockSize {
			r.pullBlock()
		}
		putStereoF32LR(p, i, r.left[r.pos], r.right[r.pos])
		r.pos++
	}
	return frames * 8, nil
}

// pullBlock requests one block from the engine, clips it to the safety
// range, appends the mono (left) samples to the analysis tap, and enqueues
// the stereo pairs for recording.
func (r *streamReader) pullBlock() {
	left, right := r.engine.NextBlock()
	for i := 0; i < BlockSize; i++ {
		r.left[i] = clamp32(left[i], -ClipLimit, ClipLimit)
		r.right[i] = clamp32(right[i], -ClipLimit, ClipLimit)
	}
	r.pos = 0

	r.tap.AppendBlock(r.left[:])

	if r.rec != nil && !r.rec.EnqueueBlock(r.left[:], r.right[:]) {
		if n := r.dropped.Add(1); n == 1 || n%1000 == 0 {
			fmt.Fprintf(os.Stderr, "recorder queue full, dropped %d blocks\n", n)
		}
	}
}

// putStereoF32LR writes independent left/right float32 samples at frame i.
func putStereoF32LR(buf []byte, i int, left, right float32) {
	lv := math.Float32bits(left)
	rv := math.Float32bits(right)
	buf[i*8] = byte(lv)
	buf[i*8+1] = byte(lv >> 8)
	buf[i*8+2] = byte(lv >> 16)
	buf[i*8+3] = byte(lv >> 24)
	buf[i*8+4] = byte(rv)
	buf[i*8+5] = byte(rv >> 8)
	buf[i*8+6] = byte(rv >> 16)
	buf[i*8+7] = byte(rv >> 24)
}
