package surf

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

// Options select the camera preset and optional recording mode, normally
// populated from command-line flags.
type Options struct {
	CameraPreset string  // "fixed", "basic", "cinematic", "floating"
	Elevation    float64 // fixed preset: meters above origin
	FloatHeight  float64 // floating preset: meters above terrain
	RecordSecs   float64 // > 0 records audio for this many seconds, then exits
	Seed         uint64  // synth variation seed; 0 = clock
}

// RunDesktop wires the whole pipeline and runs the render loop until the
// window closes, ESC is pressed, or a recording completes.
func RunDesktop(opts Options) error {
	runtime.LockOSThread()

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	fmt.Println("Vibesurfer - audio-reactive infinite ocean")

	physics := DefaultOceanPhysics()
	mapping := DefaultAudioReactiveMapping()
	renderCfg := DefaultRenderConfig()
	spectral := DefaultSpectralConfig()

	ocean := NewOceanSystem(physics, mapping)
	camera := NewCameraSystem(cameraPath(opts, ocean))

	var rec *Recorder
	if opts.RecordSecs > 0 {
		cfg := NewRecordingConfig(opts.RecordSecs)
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return fmt.Errorf("recording dir: %w", err)
		}
		rec, err = NewRecorder(cfg.AudioPath(), spectral.SampleRateHz)
		if err != nil {
			return err
		}
		fmt.Printf("Recording %gs of audio to %s\n", cfg.DurationSecs, cfg.AudioPath())
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	engine := NewTrackEngine(DefaultComposition(), spectral.SampleRateHz, seed)

	// No audio, no show: device failure is fatal by design.
	audio, err := NewAudioSystem(spectral, engine, rec)
	if err != nil {
		return err
	}
	defer audio.Close()

	rend, err := NewRenderer(ocean.Grid)
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(0.02, 0.01, 0.06, 1.0)

	start := glfw.GetTime()
	for !window.ShouldClose() {
		t := glfw.GetTime() - start

		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}
		if opts.RecordSecs > 0 && t >= opts.RecordSecs {
			fmt.Println("Recording complete")
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		bands := audio.Bands()
		flowPos := camera.FlowPos(t)
		params := ocean.Update(float32(t), bands, flowPos)
		viewProj, eye := camera.ViewProj(t, float32(fbW)/float32(fbH), renderCfg)

		// The grid advects against flowPos but renders around the eye, which
		// differs for the fixed preset (stationary eye, flowing surface).
		rend.UploadMesh(ocean.Grid, eye)
		rend.Draw(viewProj, float32(t), params.LineWidth, fbW, fbH)

		window.SwapBuffers()
	}
	return nil
}

// cameraPath resolves the preset name, warning and falling back to fixed on
// anything unknown.
func cameraPath(opts Options, ocean *OceanSystem) CameraPath {
	switch opts.CameraPreset {
	case "basic":
		fmt.Println("Camera: basic (straight-line flight)")
		return DefaultBasicPath()
	case "cinematic":
		fmt.Println("Camera: cinematic (procedural journey)")
		return DefaultJourney()
	case "floating":
		fmt.Printf("Camera: floating (%gm above terrain)\n", opts.FloatHeight)
		p := DefaultFloatingPath(ocean.HeightAt)
		if opts.FloatHeight > 0 {
			p.HeightAboveTerrain = float32(opts.FloatHeight)
		}
		return p
	case "", "fixed":
		fmt.Printf("Camera: fixed (elevation %gm)\n", opts.Elevation)
		c := DefaultFixedCamera()
		if opts.Elevation > 0 {
			c.Position = mgl32.Vec3{0, float32(opts.Elevation), 0}
		}
		return c
	default:
		fmt.Fprintf(os.Stderr, "unknown camera preset %q, using fixed\n", opts.CameraPreset)
		return DefaultFixedCamera()
	}
}
