package surf

import "math"

// Engine is the synthesis engine contract: each call produces one block of
// BlockSize stereo frames. The audio driver treats it as a black box and
// pulls blocks until its output buffer is full.
type Engine interface {
	NextBlock() (left, right []float32)
}

// Composition is the script a TrackEngine plays: a chord progression with
// rhythm patterns, sequenced at a fixed tempo.
type Composition struct {
	Tempo         float64 // beats per second
	BeatsPerChord int
	Chords        [][]float64 // chord tones in Hz, low to high

	KickPattern  [16]bool
	SnarePattern [16]bool
	BassPattern  [8]bool
	ArpOrder     [8]int
}

// DefaultComposition is a slow synthwave drift in A minor, tuned so the bass,
// pad, and hat energy land cleanly in the three analysis bands.
func DefaultComposition() Composition {
	return Composition{
		Tempo:         1.8, // 108 BPM
		BeatsPerChord: 4,
		Chords: [][]float64{
			{110.0, 220.0, 261.6, 329.6}, // Am
			{98.0, 196.0, 246.9, 293.7},  // G
			{87.3, 174.6, 220.0, 261.6},  // F
			{82.4, 164.8, 207.7, 246.9},  // E
			{110.0, 220.0, 277.2, 329.6}, // Am(add9 flavor)
			{98.0, 196.0, 246.9, 311.1},  // G variant
			{87.3, 174.6, 220.0, 277.2},  // Fmaj7
			{82.4, 164.8, 207.7, 261.6},  // E7-ish
		},
		KickPattern: [16]bool{
			true, false, false, false,
			true, false, false, false,
			true, false, false, true,
			true, false, false, false,
		},
		SnarePattern: [16]bool{
			false, false, false, false,
			true, false, false, false,
			false, false, false, false,
			true, false, false, false,
		},
		BassPattern: [8]bool{true, false, true, false, true, false, false, true},
		ArpOrder:    [8]int{0, 1, 2, 3, 2, 3, 1, 2},
	}
}

// TrackEngine synthesizes the composition sample by sample. Not safe for
// concurrent use; the audio driver is its only caller.
type TrackEngine struct {
	comp       Composition
	sampleRate float64

	t        float64
	seed     uint64
	panRate  float64 // per-session stereo drift speed in Hz
	measure  int
	chordIdx int
	lp       float64 // shared lowpass state for percussion noise

	left  [BlockSize]float32
	right [BlockSize]float32
}

func NewTrackEngine(comp Composition, sampleRate int, seed uint64) *TrackEngine {
	rng := NewRand(seed)
	return &TrackEngine{
		comp:       comp,
		sampleRate: float64(sampleRate),
		seed:       rng.NextU64() | 1, // scrambled noise seed, never zero
		panRate:    rng.RangeF(0.05, 0.12),
	}
}

// NextBlock renders the next BlockSize frames. The returned slices alias
// internal buffers and are only valid until the next call.
func (e *TrackEngine) NextBlock() (left, right []float32) {
	c := &e.comp
	for i := 0; i < BlockSize; i++ {
		e.t += 1.0 / e.sampleRate

		beatLen := 1.0 / c.Tempo
		trig := math.Mod(e.t, beatLen)
		step16Trig := math.Mod(e.t*c.Tempo*4, 1.0) / (c.Tempo * 4)
		step16 := int(e.t*c.Tempo*4) % 16
		step8 := int(e.t*c.Tempo*2) % 8
		currentBeat := int(e.t * c.Tempo)

		if currentBeat/c.BeatsPerChord != e.measure {
			e.measure = currentBeat / c.BeatsPerChord
			e.chordIdx = (e.chordIdx + 1) % len(c.Chords)
		}
		chord := c.Chords[e.chordIdx]

		// Pad bed: detuned FM voices over the whole chord.
		s := fmPad(e.t, chord, 0.6)

		// Sub bass on the pattern, rooted an octave down.
		if c.BassPattern[step8] {
			bEnv := math.Exp(-math.Mod(e.t*c.Tempo*2, 1.0) * 5)
			s += fmBass(e.t, chord[0]/2, bEnv)
		}

		// Arp on 16ths, upper chord tones.
		arpIdx := c.ArpOrder[step8]
		if arpIdx >= len(chord) {
			arpIdx = len(chord) - 1
		}
		arpEnv := math.Exp(-math.Mod(e.t*c.Tempo*4, 1.0) * 9)
		s += fmArp(e.t, chord[arpIdx]*2, arpEnv) * 0.6

		// Percussion.
		if c.KickPattern[step16] {
			s += kick(step16Trig) * 0.9
		}
		if c.SnarePattern[step16] {
			s += snare(step16Trig, &e.seed) * 0.6
		}
		if step16%2 == 1 {
			s += e.hat(step16Trig) * 0.8
		}

		// Duck everything slightly on the beat, then gentle master saturation.
		duck := 1.0 - 0.12*math.Exp(-trig*18.0)
		s = softSat(s * duck * 0.9)

		// Slow stereo drift.
		pan := 0.10 * math.Sin(2*math.Pi*e.panRate*e.t)
		e.left[i] = float32(softSat(s * (1 - pan)))
		e.right[i] = float32(softSat(s * (1 + pan)))
	}
	return e.left[:], e.right[:]
}

// hat is a closed hi-hat: filtered noise plus metallic partials.
func (e *TrackEngine) hat(trig float64) float64 {
	if trig > 0.05 {
		return 0
	}
	n := lcg(&e.seed)
	e.lp = e.lp*0.4 + n*0.6
	metal := math.Sin(2*math.Pi*7300*trig) + math.Sin(2*math.Pi*9200*trig)*0.6
	return softSat(((n-e.lp)*0.8 + metal*0.2) * math.Exp(-trig*46.0) * 0.07)
}

// ---- Instrument kit (stateless per-sample voices) ------------------------

// softSat applies gentle tanh-like saturation, no harsh clipping.
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack/decay/release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

// fm returns an FM-synthesized sample.
// carrier: base frequency, modRatio: modulator/carrier ratio, modIdx: depth.
func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

// lcg advances an LCG seed and returns a noise sample in [-1,1].
func lcg(seed *uint64) float64 {
	*seed = *seed*6364136223846793005 + 1442695040888963407
	return float64(int64(*seed>>33)-int64(1<<30)) / float64(1<<30)
}

// kick: pitch-swept sine with a transient click and short air tail.
func kick(trig float64) float64 {
	if trig > 0.25 {
		return 0
	}
	phase := 2 * math.Pi * 185 / 12.5 * (1 - math.Exp(-trig*12.5))
	body := math.Sin(phase) * math.Exp(-trig*18.0) * 0.80
	click := math.Sin(2*math.Pi*2100*trig) * math.Exp(-trig*250.0) * 0.24
	air := math.Sin(2*math.Pi*330*trig) * math.Exp(-trig*38.0) * 0.12
	return softSat(body + click + air)
}

// snare: tonal body plus band-limited noise and a high snap.
func snare(trig float64, seed *uint64) float64 {
	if trig > 0.2 {
		return 0
	}
	env := math.Exp(-trig * 26.0)
	body := (math.Sin(2*math.Pi*188*trig)*0.24 + math.Sin(2*math.Pi*356*trig)*0.10) * env
	n1 := lcg(seed)
	n2 := lcg(seed)
	bandNoise := (n1 - n2*0.55) * env * (0.55 + 0.25*math.Exp(-trig*8.0))
	snap := math.Sin(2*math.Pi*2800*trig) * math.Exp(-trig*120.0) * 0.10
	return softSat(body + bandNoise + snap)
}

// fmBass: warm FM bass, low modRatio for smooth tone.
func fmBass(t, freq, env float64) float64 {
	b := fm(t, freq, 0.5, 1.25*env) * env * 0.48
	b += math.Sin(2*math.Pi*freq*t) * env * 0.26
	b += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.10
	return softSat(b)
}

// fmPad: lush pad from a chord, detuned FM oscillators per note.
func fmPad(t float64, chord []float64, env float64) float64 {
	s := 0.0
	detunes := [4]float64{-0.004, -0.001, 0.002, 0.005}
	for _, freq := range chord {
		for _, d := range detunes {
			f := freq * (1 + d)
			vib := 1 + 0.003*math.Sin(2*math.Pi*(0.23+f*0.0007)*t)
			s += fm(t, f*vib, 1.45, 0.75*env) * 0.048
		}
	}
	return softSat(s)
}

// fmArp: plucked FM arpeggio voice for one note.
func fmArp(t, freq, env float64) float64 {
	s := fm(t, freq, 2.0, 3.2*env) * env * 0.20
	s += math.Sin(2*math.Pi*freq*2*t) * env * 0.08
	return softSat(s)
}
