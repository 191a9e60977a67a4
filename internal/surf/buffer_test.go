package surf

import "testing"

func TestSampleTapTakeWindow(t *testing.T) {
	tap := &sampleTap{}

	dst := make([]float64, 8)
	if tap.TakeWindow(dst, 4) {
		t.Fatal("TakeWindow must fail on an empty tap")
	}

	block := make([]float32, 8)
	for i := range block {
		block[i] = float32(i)
	}
	tap.AppendBlock(block[:6])
	if tap.TakeWindow(dst, 4) {
		t.Fatal("TakeWindow must fail with fewer samples than the window")
	}
	if tap.Len() != 6 {
		t.Fatalf("failed TakeWindow must not drain, Len = %d", tap.Len())
	}

	tap.AppendBlock(block[6:])
	if !tap.TakeWindow(dst, 4) {
		t.Fatal("TakeWindow must succeed with a full window buffered")
	}
	for i := range dst {
		if dst[i] != float64(i) {
			t.Fatalf("dst[%d] = %v, want %v", i, dst[i], float64(i))
		}
	}
	if tap.Len() != 4 {
		t.Fatalf("TakeWindow must drain exactly 4, Len = %d", tap.Len())
	}

	// The retained half becomes the front of the next window (50% overlap).
	tap.AppendBlock(block[:4])
	if !tap.TakeWindow(dst, 4) {
		t.Fatal("second TakeWindow must succeed")
	}
	want := []float64{4, 5, 6, 7, 0, 1, 2, 3}
	for i := range dst {
		if dst[i] != want[i] {
			t.Fatalf("overlap window[%d] = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestSampleTapDrainClamps(t *testing.T) {
	tap := &sampleTap{}
	tap.AppendBlock(make([]float32, 4))

	dst := make([]float64, 4)
	if !tap.TakeWindow(dst, 100) {
		t.Fatal("TakeWindow must succeed")
	}
	if tap.Len() != 0 {
		t.Fatalf("over-long drain must empty the tap, Len = %d", tap.Len())
	}
}
