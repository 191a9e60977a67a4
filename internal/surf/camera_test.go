package surf

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFixedCameraFlow(t *testing.T) {
	cam := NewCameraSystem(DefaultFixedCamera())

	eye0, target0 := DefaultFixedCamera().EyeTarget(0)
	eye5, target5 := DefaultFixedCamera().EyeTarget(5)
	if eye0 != eye5 || target0 != target5 {
		t.Fatal("fixed camera must not move")
	}

	// The grid still flows: simulated velocity drives FlowPos forward.
	p0 := cam.FlowPos(0)
	p2 := cam.FlowPos(2)
	if got := p2.Z() - p0.Z(); !approx32(got, 300, 1e-3) {
		t.Errorf("flow advanced %vm in 2s, want 300 at 150m/s", got)
	}
	if p2.X() != p0.X() || p2.Y() != p0.Y() {
		t.Error("fixed flow must advance along Z only")
	}
}

func TestBasicPathStraightLine(t *testing.T) {
	p := DefaultBasicPath()

	for _, ts := range []float64{0, 1, 2.5, 10} {
		eye, target := p.EyeTarget(ts)
		if eye.X() != 0 || target.X() != 0 {
			t.Fatalf("basic path must fly straight, eye %v target %v", eye, target)
		}
		if eye.Y() != p.Altitude {
			t.Fatalf("basic path altitude drifted: %v", eye.Y())
		}
		if got := target.Z() - eye.Z(); !approx32(got, p.LookAhead, 1e-3) {
			t.Fatalf("look-ahead = %v, want %v", got, p.LookAhead)
		}
		if target.Y() >= eye.Y() {
			t.Fatal("basic path must look downward")
		}
	}

	eye1, _ := p.EyeTarget(1)
	eye3, _ := p.EyeTarget(3)
	if got := eye3.Z() - eye1.Z(); !approx32(got, 2*p.ForwardSpeed, 1e-3) {
		t.Errorf("forward speed = %v/2s, want %v", got, 2*p.ForwardSpeed)
	}
}

func TestJourneyAltitudeClamp(t *testing.T) {
	p := DefaultJourney()
	for ts := 0.0; ts < 120; ts += 0.25 {
		eye, _ := p.EyeTarget(ts)
		if eye.Y() < p.YMinAltitude {
			t.Fatalf("journey dipped to %v at t=%v, floor is %v", eye.Y(), ts, p.YMinAltitude)
		}
	}
}

func TestJourneyMakesProgress(t *testing.T) {
	p := DefaultJourney()
	eye0, _ := p.EyeTarget(0)
	eye60, _ := p.EyeTarget(60)
	// Weave amplitudes total 60m, so 60s of 8m/s forward motion dominates.
	if eye60.Z() <= eye0.Z()+300 {
		t.Errorf("journey barely advanced: %v to %v over 60s", eye0.Z(), eye60.Z())
	}
}

func TestFloatingPathHugsTerrain(t *testing.T) {
	terrain := func(x, z float32) float32 { return 10 * float32(math.Sin(float64(z)*0.01)) }
	p := DefaultFloatingPath(terrain)

	for _, ts := range []float64{0, 1, 4, 9} {
		eye, _ := p.EyeTarget(ts)
		ground := terrain(0, eye.Z())
		if got := eye.Y() - ground; !approx32(got, p.HeightAboveTerrain, 1e-3) {
			t.Fatalf("t=%v: eye %vm above terrain, want %v", ts, got, p.HeightAboveTerrain)
		}
	}
}

func TestViewProjFinite(t *testing.T) {
	cam := NewCameraSystem(DefaultJourney())
	cfg := DefaultRenderConfig()

	vp, eye := cam.ViewProj(3, 16.0/9.0, cfg)
	for i := 0; i < 16; i++ {
		if math.IsNaN(float64(vp[i])) || math.IsInf(float64(vp[i]), 0) {
			t.Fatalf("view-projection has non-finite entry %d: %v", i, vp[i])
		}
	}
	if vp == mgl32.Ident4() {
		t.Fatal("view-projection must not be identity")
	}

	wantEye, _ := DefaultJourney().EyeTarget(3)
	if eye != wantEye {
		t.Errorf("returned eye %v, want %v", eye, wantEye)
	}
}
