package surf

import "sync"

// sampleTap is the shared mono analysis buffer between the audio driver and
// the FFT worker. The driver appends one block at a time; the worker takes a
// window and drains half of it. Both hold the lock only for the copy.
type sampleTap struct {
	mu      sync.Mutex
	samples []float32
}

// AppendBlock appends one block of mono samples.
func (t *sampleTap) AppendBlock(block []float32) {
	t.mu.Lock()
	t.samples = append(t.samples, block...)
	t.mu.Unlock()
}

// Len reports the number of buffered samples.
func (t *sampleTap) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.samples)
}

// TakeWindow copies the first len(dst) samples into dst and drains the first
// `drain` samples from the front, keeping the rest for the next cycle.
// Returns false (and does nothing) if fewer than len(dst) samples are
// buffered.
func (t *sampleTap) TakeWindow(dst []float64, drain int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.samples) < len(dst) {
		return false
	}
	for i := range dst {
		dst[i] = float64(t.samples[i])
	}
	if drain > len(t.samples) {
		drain = len(t.samples)
	}
	n := copy(t.samples, t.samples[drain:])
	t.samples = t.samples[:n]
	return true
}
