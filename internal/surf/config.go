package surf

import "fmt"

// Audio output format (matches the oto context set up in audio.go).
const (
	SampleRate   = 44100
	ChannelCount = 2
	BitDepth     = 0 // 32-bit float (oto.FormatFloat32LE)
)

// BlockSize is the number of frames the synthesis engine produces per block.
// 128 frames = ~2.9ms at 44.1kHz.
const BlockSize = 128

// ClipLimit is the hard safety limiter applied to every output sample,
// bounding loudness regardless of what the synth produces.
const ClipLimit = 0.5

// Window defaults.
const (
	WindowWidth  = 1280
	WindowHeight = 720
)

// SpectralConfig holds the FFT analysis parameters. Immutable after Validate.
type SpectralConfig struct {
	SampleRateHz     int
	FFTSize          int // must be a power of two
	UpdateIntervalMs int

	// Band boundaries in Hz, low < high.
	BassLowHz, BassHighHz float64
	MidLowHz, MidHighHz   float64
	HighLowHz, HighHighHz float64
}

// DefaultSpectralConfig returns the shipped analysis configuration:
// 1024-point FFT at 44.1kHz, updated every 50ms (20Hz).
func DefaultSpectralConfig() SpectralConfig {
	return SpectralConfig{
		SampleRateHz:     SampleRate,
		FFTSize:          1024,
		UpdateIntervalMs: 50,
		BassLowHz:        20, BassHighHz: 200,
		MidLowHz: 200, MidHighHz: 1000,
		HighLowHz: 1000, HighHighHz: 4000,
	}
}

// Validate rejects configurations that would break the analysis worker.
// Called once at startup; nothing re-validates at runtime.
func (c SpectralConfig) Validate() error {
	if c.FFTSize <= 0 || c.FFTSize&(c.FFTSize-1) != 0 {
		return fmt.Errorf("fft size must be a power of 2, got %d", c.FFTSize)
	}
	if c.SampleRateHz <= 0 {
		return fmt.Errorf("sample rate must be > 0, got %d", c.SampleRateHz)
	}
	if c.UpdateIntervalMs <= 0 {
		return fmt.Errorf("update interval must be > 0, got %dms", c.UpdateIntervalMs)
	}
	for _, b := range [][2]float64{
		{c.BassLowHz, c.BassHighHz},
		{c.MidLowHz, c.MidHighHz},
		{c.HighLowHz, c.HighHighHz},
	} {
		if b[0] >= b[1] {
			return fmt.Errorf("band range %v..%v Hz is empty", b[0], b[1])
		}
	}
	return nil
}

// HzToBin converts a frequency to its FFT bin index.
func (c SpectralConfig) HzToBin(hz float64) int {
	return int(hz * float64(c.FFTSize) / float64(c.SampleRateHz))
}

// BassBins returns the half-open bin range [lo, hi) for the bass band.
func (c SpectralConfig) BassBins() (int, int) {
	return c.HzToBin(c.BassLowHz), c.HzToBin(c.BassHighHz)
}

func (c SpectralConfig) MidBins() (int, int) {
	return c.HzToBin(c.MidLowHz), c.HzToBin(c.MidHighHz)
}

func (c SpectralConfig) HighBins() (int, int) {
	return c.HzToBin(c.HighLowHz), c.HzToBin(c.HighHighHz)
}

// OceanPhysics holds the terrain simulation parameters. Immutable for the
// session.
type OceanPhysics struct {
	// GridSize is the grid resolution in cells per side; the mesh carries
	// (GridSize+1)^2 vertices.
	GridSize int

	// GridSpacing is the distance between adjacent vertices in meters.
	GridSpacing float32

	// WaveSpeed scales elapsed time for the animated detail layer.
	WaveSpeed float32

	// Base terrain: large stable hills used for physics. Immune to audio.
	BaseTerrainAmplitude float32 // meters
	BaseTerrainFrequency float32 // cycles per meter

	// Detail layer: audio-reactive ripples, visual only.
	DetailAmplitude float32 // meters, before audio modulation
	DetailFrequency float32 // cycles per meter

	// BaseLineWidth is the wireframe line width before audio modulation.
	BaseLineWidth float32

	NoiseSeed int64
}

// DefaultOceanPhysics mirrors the shipped tuning: long 100m hills under
// fine 2m audio chop.
func DefaultOceanPhysics() OceanPhysics {
	return OceanPhysics{
		GridSize:             512,
		GridSpacing:          2.0,
		WaveSpeed:            0.5,
		BaseTerrainAmplitude: 100.0,
		BaseTerrainFrequency: 0.003,
		DetailAmplitude:      2.0,
		DetailFrequency:      0.1,
		BaseLineWidth:        0.02,
		NoiseSeed:            42,
	}
}

// AudioReactiveMapping holds the three band-to-parameter gain factors.
// Immutable for the session.
type AudioReactiveMapping struct {
	BassToAmplitude float32 // meters per unit bass energy
	MidToFrequency  float32
	HighToLineWidth float32
}

func DefaultAudioReactiveMapping() AudioReactiveMapping {
	return AudioReactiveMapping{
		BassToAmplitude: 3.0,
		MidToFrequency:  0.15,
		HighToLineWidth: 0.03,
	}
}

// RenderConfig holds projection parameters for the renderer.
type RenderConfig struct {
	FOVDegrees float32
	NearPlane  float32
	FarPlane   float32
}

func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		FOVDegrees: 100.0, // very wide FOV for extreme perspective
		NearPlane:  0.1,
		FarPlane:   2000.0,
	}
}

// RecordingConfig enables capture of the audio output stream to a WAV file.
type RecordingConfig struct {
	DurationSecs float64
	OutputDir    string
}

func NewRecordingConfig(durationSecs float64) RecordingConfig {
	return RecordingConfig{DurationSecs: durationSecs, OutputDir: "recording"}
}

// AudioPath is where the recorded stream lands.
func (c RecordingConfig) AudioPath() string {
	return c.OutputDir + "/audio.wav"
}
