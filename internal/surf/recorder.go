package surf

import (
	"fmt"
	"os"

	gaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// recorderQueueBlocks bounds the recording queue. At 128-frame blocks this is
// several seconds of headroom before the writer falls behind and blocks drop.
const recorderQueueBlocks = 1024

// Recorder persists the clipped output stream to a WAV file. The audio
// callback only enqueues; a dedicated writer goroutine does the file I/O so
// disk stalls can never delay the real-time path.
type Recorder struct {
	ch   chan [2 * BlockSize]float32
	done chan struct{}

	f    *os.File
	enc  *wav.Encoder
	werr error
}

// NewRecorder creates path and starts the writer goroutine. Samples are
// stored as 16-bit PCM stereo.
func NewRecorder(path string, sampleRate int) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create recording: %w", err)
	}
	r := &Recorder{
		ch:   make(chan [2 * BlockSize]float32, recorderQueueBlocks),
		done: make(chan struct{}),
		f:    f,
		enc:  wav.NewEncoder(f, sampleRate, 16, ChannelCount, 1),
	}
	go r.writeLoop(sampleRate)
	return r, nil
}

// EnqueueBlock hands one interleaved block to the writer without blocking.
// Returns false if the queue is full; the block is lost.
func (r *Recorder) EnqueueBlock(left, right []float32) bool {
	var blk [2 * BlockSize]float32
	for i := 0; i < BlockSize; i++ {
		blk[i*2] = left[i]
		blk[i*2+1] = right[i]
	}
	select {
	case r.ch <- blk:
		return true
	default:
		return false
	}
}

func (r *Recorder) writeLoop(sampleRate int) {
	defer close(r.done)
	buf := &gaudio.IntBuffer{
		Format:         &gaudio.Format{NumChannels: ChannelCount, SampleRate: sampleRate},
		Data:           make([]int, 2*BlockSize),
		SourceBitDepth: 16,
	}
	for blk := range r.ch {
		if r.werr != nil {
			continue // keep draining so the producer never blocks
		}
		for i, s := range blk {
			buf.Data[i] = int(clamp32(s, -1, 1) * 32767)
		}
		if err := r.enc.Write(buf); err != nil {
			r.werr = fmt.Errorf("wav write: %w", err)
		}
	}
}

// Close flushes queued blocks, finalizes the WAV header, and closes the file.
func (r *Recorder) Close() error {
	close(r.ch)
	<-r.done
	if err := r.enc.Close(); err != nil && r.werr == nil {
		r.werr = fmt.Errorf("wav finalize: %w", err)
	}
	if err := r.f.Close(); err != nil && r.werr == nil {
		r.werr = err
	}
	return r.werr
}
